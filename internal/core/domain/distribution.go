package domain

// Component names within a distribution. The keyring package is
// imported into both, so that prerelease-only users still trust the
// archive key.
const (
	ComponentMain       = "main"
	ComponentPrerelease = "prerelease"
)

// Distribution is one published release line: a Debian/Ubuntu codename
// and the components it carries.
type Distribution struct {
	Codename   string
	Components []string
}

// HasComponent reports whether the distribution carries the component.
func (d Distribution) HasComponent(name string) bool {
	for _, c := range d.Components {
		if c == name {
			return true
		}
	}
	return false
}
