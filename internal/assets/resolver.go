package assets

import (
	"errors"
	"sort"
)

// Resolver looks a style up in the --asset-path directory first and falls
// back to the built-in styles when the directory has no such file.
type Resolver struct {
	custom  *StyleDir // nil without --asset-path
	builtin *EmbeddedLoader
}

// NewResolver opens assetPath when it is set. An empty assetPath gives a
// Resolver over the built-in styles only.
func NewResolver(assetPath string) (*Resolver, error) {
	r := &Resolver{builtin: NewEmbeddedLoader()}
	if assetPath == "" {
		return r, nil
	}

	dir, err := NewStyleDir(assetPath)
	if err != nil {
		return nil, err
	}
	r.custom = dir
	return r, nil
}

// LoadStyle returns the CSS for name. Only ErrStyleNotFound from the custom
// directory falls through to the built-in styles; a custom file that exists
// but cannot be used is reported as is.
func (r *Resolver) LoadStyle(name string) (string, error) {
	if r.custom == nil {
		return r.builtin.LoadStyle(name)
	}

	css, err := r.custom.LoadStyle(name)
	if err == nil || !errors.Is(err, ErrStyleNotFound) {
		return css, err
	}
	return r.builtin.LoadStyle(name)
}

// StyleNames lists every name LoadStyle accepts, sorted and deduplicated.
func (r *Resolver) StyleNames() []string {
	names := r.builtin.StyleNames()
	if r.custom == nil {
		return names
	}

	seen := make(map[string]bool, len(names))
	for _, n := range names {
		seen[n] = true
	}
	for _, n := range r.custom.StyleNames() {
		if !seen[n] {
			seen[n] = true
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names
}

var _ Loader = (*Resolver)(nil)
