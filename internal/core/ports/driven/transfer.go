package driven

import (
	"context"

	"github.com/matrix-org/pkgrepo/internal/core/domain"
)

// Transferrer performs one checksum-based recursive directory transfer.
// The production adapter shells out to rsync; core code only describes
// transfers in domain terms.
type Transferrer interface {
	Transfer(ctx context.Context, t domain.Transfer) error
}
