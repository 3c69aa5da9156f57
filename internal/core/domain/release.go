package domain

import "strings"

// Release is an upstream release as reported by the hosting API.
type Release struct {
	TagName    string
	Draft      bool
	Prerelease bool
	Assets     []ReleaseAsset
}

// ReleaseAsset is one downloadable file attached to a release.
type ReleaseAsset struct {
	Name string
	URL  string
	Size int64
}

// IsTarball reports whether the asset looks like a source/package tarball.
func (a ReleaseAsset) IsTarball() bool {
	return strings.HasSuffix(a.Name, ".tar.gz") ||
		strings.HasSuffix(a.Name, ".tgz") ||
		strings.HasSuffix(a.Name, ".tar.xz")
}

// Tarball returns the first tarball asset, if any.
func (r Release) Tarball() (ReleaseAsset, bool) {
	for _, a := range r.Assets {
		if a.IsTarball() {
			return a, true
		}
	}
	return ReleaseAsset{}, false
}
