package file

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/matrix-org/pkgrepo/internal/core/domain"
	"github.com/matrix-org/pkgrepo/internal/core/ports/driven"
)

// Ensure ManifestStore implements the interface.
var _ driven.DistributionStore = (*ManifestStore)(nil)

// ManifestStore reads the distribution manifest, a YAML file kept next
// to the reprepro conf/ directory listing every published codename.
type ManifestStore struct {
	path string
}

// NewManifestStore creates a manifest store for the given file.
func NewManifestStore(path string) *ManifestStore {
	return &ManifestStore{path: path}
}

// Distributions parses the manifest and returns the published
// distributions.
func (s *ManifestStore) Distributions() ([]domain.Distribution, error) {
	// Internal DTOs for YAML deserialization
	type yamlDistribution struct {
		Codename   string   `yaml:"codename"`
		Components []string `yaml:"components"`
	}
	type yamlManifest struct {
		Distributions []yamlDistribution `yaml:"distributions"`
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read distribution manifest %s: %w", s.path, err)
	}

	var dto yamlManifest
	if err := yaml.Unmarshal(data, &dto); err != nil {
		return nil, fmt.Errorf("parse distribution manifest %s: %w", s.path, err)
	}

	if len(dto.Distributions) == 0 {
		return nil, fmt.Errorf("%w: manifest %s lists no distributions", domain.ErrInvalidInput, s.path)
	}

	dists := make([]domain.Distribution, 0, len(dto.Distributions))
	for _, d := range dto.Distributions {
		if d.Codename == "" {
			return nil, fmt.Errorf("%w: manifest entry without codename", domain.ErrInvalidInput)
		}
		dists = append(dists, domain.Distribution{
			Codename:   d.Codename,
			Components: d.Components,
		})
	}

	return dists, nil
}
