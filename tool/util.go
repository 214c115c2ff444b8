package tool

import (
	"net/url"
)

// ResolveURL resolves ref against the manifest URL u. Absolute references
// are returned unchanged.
func ResolveURL(u *url.URL, ref string) string {
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return u.ResolveReference(r).String()
}
