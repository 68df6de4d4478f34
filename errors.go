package wikipreview

import (
	"errors"

	"github.com/alnah/go-wikipreview/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	// Rendering errors. Render never returns them; they are reported as
	// Result.Reason when the output degrades to the escaped fallback.
	ErrNestingTooDeep = pipeline.ErrNestingTooDeep
	ErrInvalidUTF8    = pipeline.ErrInvalidUTF8
	ErrInternal       = pipeline.ErrInternal

	// Construction errors.
	ErrUnknownHighlightStyle = pipeline.ErrUnknownHighlightStyle

	// Upstream payload errors.
	ErrInvalidConversionResult = errors.New("invalid conversion result")

	// Asset loading errors.
	ErrStyleNotFound    = errors.New("style not found")
	ErrInvalidAssetPath = errors.New("invalid asset path")
)
