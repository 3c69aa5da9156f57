package services

import (
	"archive/tar"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/ulikunitz/xz"

	"github.com/matrix-org/pkgrepo/internal/core/domain"
	"github.com/matrix-org/pkgrepo/internal/core/ports/driven"
	"github.com/matrix-org/pkgrepo/internal/core/ports/driving"
	"github.com/matrix-org/pkgrepo/internal/logger"
)

// Ensure Fetcher implements the interface.
var _ driving.ReleaseFetcher = (*Fetcher)(nil)

// Fetcher downloads the latest upstream release tarball and stages its
// package files for the next process-incoming run.
type Fetcher struct {
	cfg    domain.Config
	source driven.ReleaseSource
}

// NewFetcher creates a release fetcher over the given release source.
func NewFetcher(cfg domain.Config, source driven.ReleaseSource) *Fetcher {
	return &Fetcher{cfg: cfg, source: source}
}

// stageable reports whether a tarball member belongs in the staging
// directory: binary packages and their upload manifests.
func stageable(name string) bool {
	base := filepath.Base(name)
	return strings.HasSuffix(base, ".deb") ||
		strings.HasSuffix(base, ".udeb") ||
		strings.HasSuffix(base, ".changes") ||
		strings.HasSuffix(base, ".buildinfo")
}

// FetchLatest finds the newest release of owner/repo, downloads its
// tarball asset and extracts the package files into the staging
// directory. Extraction happens in a scratch directory on the same
// filesystem so the final rename into incoming/ is atomic per file.
func (f *Fetcher) FetchLatest(ctx context.Context, owner, repo string) (int, error) {
	rel, err := f.source.LatestRelease(ctx, owner, repo)
	if err != nil {
		return 0, fmt.Errorf("find latest release: %w", err)
	}

	asset, ok := rel.Tarball()
	if !ok {
		return 0, fmt.Errorf("%w: release %s", domain.ErrNoAsset, rel.TagName)
	}

	logger.Info("fetching %s from %s/%s release %s", asset.Name, owner, repo, rel.TagName)

	scratch := filepath.Join(f.cfg.IncomingDir(), ".fetch-"+uuid.NewString())
	if err := os.MkdirAll(scratch, 0o755); err != nil {
		return 0, fmt.Errorf("create scratch directory: %w", err)
	}
	defer os.RemoveAll(scratch)

	archivePath := filepath.Join(scratch, asset.Name)
	if err := f.download(ctx, asset, archivePath); err != nil {
		return 0, err
	}

	staged, err := extractPackages(archivePath, scratch)
	if err != nil {
		return 0, fmt.Errorf("extract %s: %w", asset.Name, err)
	}

	count := 0
	for _, p := range staged {
		dest := filepath.Join(f.cfg.IncomingDir(), filepath.Base(p))
		if err := os.Rename(p, dest); err != nil {
			return count, fmt.Errorf("stage %s: %w", filepath.Base(p), err)
		}
		logger.Debug("staged %s", dest)
		count++
	}

	return count, nil
}

func (f *Fetcher) download(ctx context.Context, asset domain.ReleaseAsset, dest string) error {
	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create %s: %w", dest, err)
	}
	defer out.Close()

	if err := f.source.DownloadAsset(ctx, asset, out); err != nil {
		return fmt.Errorf("download %s: %w", asset.Name, err)
	}

	return nil
}

// extractPackages walks the tarball and writes stageable members into
// dir, flattening any leading path components. It returns the written
// file paths.
func extractPackages(archivePath, dir string) ([]string, error) {
	in, err := os.Open(archivePath)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	var raw io.Reader
	switch {
	case strings.HasSuffix(archivePath, ".tar.xz"):
		raw, err = xz.NewReader(in)
		if err != nil {
			return nil, fmt.Errorf("open xz stream: %w", err)
		}
	default:
		gz, err := gzip.NewReader(in)
		if err != nil {
			return nil, fmt.Errorf("open gzip stream: %w", err)
		}
		defer gz.Close()
		raw = gz
	}

	tr := tar.NewReader(raw)
	var staged []string

	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read tar member: %w", err)
		}
		if hdr.Typeflag != tar.TypeReg || !stageable(hdr.Name) {
			continue
		}

		dest := filepath.Join(dir, filepath.Base(hdr.Name))
		out, err := os.Create(dest)
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", dest, err)
		}
		if _, err := io.Copy(out, tr); err != nil {
			out.Close()
			return nil, fmt.Errorf("write %s: %w", dest, err)
		}
		if err := out.Close(); err != nil {
			return nil, err
		}
		staged = append(staged, dest)
	}

	return staged, nil
}
