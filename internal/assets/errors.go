package assets

import "errors"

// Style lookup errors. The root package maps them onto its public
// ErrStyleNotFound and ErrInvalidAssetPath.
var (
	ErrStyleNotFound    = errors.New("style not found")
	ErrInvalidStyleName = errors.New("invalid style name")
	ErrNotStylesheet    = errors.New("style file must have a .css extension")
	ErrStyleTooLarge    = errors.New("style file too large")
	ErrStyleRead        = errors.New("cannot read style")

	// --asset-path problems.
	ErrInvalidAssetPath = errors.New("invalid asset path")
	ErrOutsideAssetPath = errors.New("style resolves outside the asset path")
)
