package domain

// TransferDirection distinguishes pulls from the master copy from
// pushes back to it. Pushes carry the permission-forcing options.
type TransferDirection int

// Available transfer directions.
const (
	// Pull mirrors a remote tree into a local working copy.
	Pull TransferDirection = iota

	// Push uploads a local tree to the remote publication target.
	Push
)

// Transfer describes one checksum-based recursive directory transfer.
// The rsync adapter turns it into a concrete argument list; the core
// never sees rsync flags.
type Transfer struct {
	// Label names the transfer in user-facing output ("pool", "database", ...).
	Label string

	// Source and Dest follow rsync path semantics: a trailing slash on
	// Source transfers directory contents rather than the directory.
	Source string
	Dest   string

	Direction TransferDirection

	// DryRun reports planned changes without writing any files.
	DryRun bool

	// Excludes are path patterns left out of the transfer.
	Excludes []string
}
