// Package debpkg assembles the archive-keyring Debian package without
// external packaging tools. The keyring .deb carries the repository's
// public signing key so apt clients can verify Release signatures.
package debpkg

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/blakesmith/ar"

	"github.com/matrix-org/pkgrepo/internal/core/ports/driven"
)

// Package identity. The keyring installs the binary-format key where
// apt's signed-by option expects it.
const (
	PackageName = "matrix-org-archive-keyring"
	KeyringPath = "/usr/share/keyrings/matrix-org-archive-keyring.gpg"
	Maintainer  = "packages.matrix.org team <packages@matrix.org>"
)

// Ensure Builder implements the interface.
var _ driven.DebBuilder = (*Builder)(nil)

// Builder builds keyring packages.
type Builder struct{}

// NewBuilder creates a keyring package builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// BuildKeyringPackage writes PackageName_<version>_all.deb under
// outDir, containing the binary public key parsed from armoredKey.
func (b *Builder) BuildKeyringPackage(_ context.Context, armoredKey, version, outDir string) (string, error) {
	keyBytes, err := exportPublicKeys(armoredKey)
	if err != nil {
		return "", fmt.Errorf("export public key: %w", err)
	}

	debPath := filepath.Join(outDir, fmt.Sprintf("%s_%s_all.deb", PackageName, version))
	f, err := os.Create(debPath)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", debPath, err)
	}
	defer f.Close()

	if err := writeDeb(f, keyBytes, version); err != nil {
		return "", fmt.Errorf("write %s: %w", debPath, err)
	}

	return debPath, nil
}

// exportPublicKeys parses an armored keyring and serializes the public
// part of every entity, concatenated in binary form. Private key
// material, if present, is never written out.
func exportPublicKeys(armoredKey string) ([]byte, error) {
	entities, err := openpgp.ReadArmoredKeyRing(strings.NewReader(armoredKey))
	if err != nil {
		return nil, err
	}
	if len(entities) == 0 {
		return nil, fmt.Errorf("armored input contains no keys")
	}

	var buf bytes.Buffer
	for _, e := range entities {
		if err := e.Serialize(&buf); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// writeDeb assembles the outer ar container: debian-binary first, then
// control.tar.gz, then data.tar.gz.
func writeDeb(w io.Writer, keyBytes []byte, version string) error {
	dataBuf := new(bytes.Buffer)
	md5sum, installedSize, err := buildDataArchive(dataBuf, keyBytes)
	if err != nil {
		return fmt.Errorf("building data archive: %w", err)
	}

	controlBuf := new(bytes.Buffer)
	if err := buildControlArchive(controlBuf, version, md5sum, installedSize); err != nil {
		return fmt.Errorf("building control archive: %w", err)
	}

	arW := ar.NewWriter(w)
	if err := arW.WriteGlobalHeader(); err != nil {
		return fmt.Errorf("writing ar global header: %w", err)
	}

	members := []struct {
		name string
		body []byte
	}{
		{"debian-binary", []byte("2.0\n")},
		{"control.tar.gz", controlBuf.Bytes()},
		{"data.tar.gz", dataBuf.Bytes()},
	}
	for _, m := range members {
		if err := addBufferToAr(arW, m.name, m.body); err != nil {
			return fmt.Errorf("writing %s: %w", m.name, err)
		}
	}

	return nil
}

// buildDataArchive writes the keyring file into data.tar.gz and
// returns its md5 and the installed size in bytes.
func buildDataArchive(w io.Writer, keyBytes []byte) (string, int64, error) {
	gw := gzip.NewWriter(w)
	defer gw.Close()
	tw := tar.NewWriter(gw)
	defer tw.Close()

	now := time.Now()

	// Parent directories first, as dpkg expects.
	for _, dir := range []string{"./usr/", "./usr/share/", "./usr/share/keyrings/"} {
		if err := tw.WriteHeader(&tar.Header{
			Name:     dir,
			Typeflag: tar.TypeDir,
			Mode:     0o755,
			ModTime:  now,
		}); err != nil {
			return "", 0, err
		}
	}

	if err := tw.WriteHeader(&tar.Header{
		Name:    "." + KeyringPath,
		Size:    int64(len(keyBytes)),
		Mode:    0o644,
		ModTime: now,
	}); err != nil {
		return "", 0, err
	}
	if _, err := tw.Write(keyBytes); err != nil {
		return "", 0, err
	}

	hash := md5.Sum(keyBytes)
	return hex.EncodeToString(hash[:]), int64(len(keyBytes)), nil
}

// buildControlArchive writes control and md5sums into control.tar.gz.
func buildControlArchive(w io.Writer, version, md5sum string, installedSize int64) error {
	gw := gzip.NewWriter(w)
	defer gw.Close()
	tw := tar.NewWriter(gw)
	defer tw.Close()

	control := controlFile(version, installedSize)
	md5sums := fmt.Sprintf("%s  %s\n", md5sum, strings.TrimPrefix(KeyringPath, "/"))

	entries := []struct {
		name string
		body string
	}{
		{"./control", control},
		{"./md5sums", md5sums},
	}
	for _, e := range entries {
		if err := tw.WriteHeader(&tar.Header{
			Name:    e.name,
			Size:    int64(len(e.body)),
			Mode:    0o644,
			ModTime: time.Now(),
		}); err != nil {
			return err
		}
		if _, err := tw.Write([]byte(e.body)); err != nil {
			return err
		}
	}

	return nil
}

// controlFile renders the binary package control stanza.
func controlFile(version string, installedSize int64) string {
	// Installed-Size is in KiB, rounded up.
	sizeKiB := (installedSize + 1023) / 1024

	var sb strings.Builder
	fmt.Fprintf(&sb, "Package: %s\n", PackageName)
	fmt.Fprintf(&sb, "Version: %s\n", version)
	sb.WriteString("Architecture: all\n")
	fmt.Fprintf(&sb, "Maintainer: %s\n", Maintainer)
	fmt.Fprintf(&sb, "Installed-Size: %d\n", sizeKiB)
	sb.WriteString("Section: misc\n")
	sb.WriteString("Priority: optional\n")
	sb.WriteString("Description: OpenPGP archive key for packages.matrix.org\n")
	sb.WriteString(" Keyring used by apt to verify the signature of the\n")
	sb.WriteString(" packages.matrix.org Debian repository.\n")
	return sb.String()
}

// addBufferToAr writes a named byte slice as a file entry to the AR archive.
func addBufferToAr(w *ar.Writer, name string, body []byte) error {
	header := &ar.Header{
		Name:    name,
		Size:    int64(len(body)),
		Mode:    0o644,
		ModTime: time.Now(),
	}
	if err := w.WriteHeader(header); err != nil {
		return err
	}
	_, err := w.Write(body)
	return err
}
