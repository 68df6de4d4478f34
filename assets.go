package wikipreview

import (
	"errors"

	"github.com/alnah/go-wikipreview/internal/assets"
	"github.com/alnah/go-wikipreview/internal/pipeline"
)

// DefaultStyle is the name of the built-in CSS style.
const DefaultStyle = assets.DefaultStyleName

// StyleLoader defines the contract for loading CSS styles by name.
// Implementations may load from filesystem, embedded assets, S3, database, etc.
//
// The library provides NewStyleLoader() for filesystem-based loading with
// fallback to embedded defaults. Implement this interface for custom backends.
type StyleLoader interface {
	// LoadStyle loads a CSS style by name (without .css extension).
	// Returns ErrStyleNotFound if the style doesn't exist.
	LoadStyle(name string) (string, error)
}

// NewStyleLoader creates a StyleLoader for the given base path.
// If basePath is empty, returns a loader using only embedded styles.
// If basePath is set, custom styles take precedence with fallback to embedded.
//
// The basePath directory should contain styles/{name}.css files; names are
// letters, digits, '-' and '_' only.
//
// Returns ErrInvalidAssetPath if basePath is set but not a valid, readable directory.
func NewStyleLoader(basePath string) (StyleLoader, error) {
	resolver, err := assets.NewResolver(basePath)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return &styleLoaderAdapter{resolver: resolver}, nil
}

// BuiltinStyles lists the names of the embedded styles.
func BuiltinStyles() []string {
	return assets.NewEmbeddedLoader().StyleNames()
}

// AvailableStyles lists the style names WithStyle accepts for the given
// asset path: the built-in styles plus {assetPath}/styles/*.css. An
// unusable assetPath yields the built-in styles only.
func AvailableStyles(assetPath string) []string {
	resolver, err := assets.NewResolver(assetPath)
	if err != nil {
		return BuiltinStyles()
	}
	return resolver.StyleNames()
}

// HighlightStyles lists the chroma style names accepted by WithHighlightStyle.
func HighlightStyles() []string {
	return pipeline.HighlightStyles()
}

// styleLoaderAdapter wraps the internal Resolver to return public errors.
type styleLoaderAdapter struct {
	resolver *assets.Resolver
}

func (a *styleLoaderAdapter) LoadStyle(name string) (string, error) {
	content, err := a.resolver.LoadStyle(name)
	if err != nil {
		return "", convertAssetError(err)
	}
	return content, nil
}

// convertAssetError maps internal asset errors to public errors.
func convertAssetError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, assets.ErrInvalidAssetPath),
		errors.Is(err, assets.ErrOutsideAssetPath):
		return wrapError(ErrInvalidAssetPath, err)
	case errors.Is(err, assets.ErrStyleNotFound),
		errors.Is(err, assets.ErrInvalidStyleName),
		errors.Is(err, assets.ErrNotStylesheet):
		return wrapError(ErrStyleNotFound, err)
	default:
		return err
	}
}

// wrapError creates a new error that wraps the original with a public sentinel.
// The resulting error preserves the original message via Error() and supports
// errors.Is() matching against the public sentinel via Unwrap().
func wrapError(sentinel, original error) error {
	return &wrappedAssetError{sentinel: sentinel, original: original}
}

type wrappedAssetError struct {
	sentinel error
	original error
}

func (e *wrappedAssetError) Error() string {
	return e.original.Error()
}

// Unwrap returns the public sentinel for errors.Is() matching.
// Internal errors are not exposed since they're in internal/ packages.
func (e *wrappedAssetError) Unwrap() error {
	return e.sentinel
}
