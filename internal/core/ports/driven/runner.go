package driven

import "context"

// Runner executes an external command with the given argument list,
// inheriting the process's standard streams. A non-zero exit status is
// returned as an error wrapping domain.ErrCommandFailed. There are no
// retries: a single failure aborts the enclosing step.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
}
