package driven

import "github.com/matrix-org/pkgrepo/internal/core/domain"

// DistributionStore provides the set of published distributions.
// The production adapter reads the YAML manifest next to the reprepro
// configuration.
type DistributionStore interface {
	Distributions() ([]domain.Distribution, error)
}
