package wikipreview

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// maxConversionResultSize limits decoded payloads (default 32MB).
const maxConversionResultSize = 32 << 20

// ConversionResult is the payload returned by the document conversion API:
// the wikitext produced from an uploaded file, the names of the images
// extracted alongside it and any conversion warnings.
type ConversionResult struct {
	ID            string   `json:"id"`
	Filename      string   `json:"filename"`
	MediaWikiText string   `json:"mediawiki_text"`
	Images        []string `json:"images"`
	Warnings      []string `json:"warnings"`
}

// DecodeConversionResult reads one JSON ConversionResult from r.
// Returns ErrInvalidConversionResult for malformed JSON, trailing data or a
// missing id.
func DecodeConversionResult(r io.Reader) (*ConversionResult, error) {
	dec := json.NewDecoder(io.LimitReader(r, maxConversionResultSize))

	var result ConversionResult
	if err := dec.Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConversionResult, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: unexpected data after JSON object", ErrInvalidConversionResult)
	}
	if strings.TrimSpace(result.ID) == "" {
		return nil, fmt.Errorf("%w: missing id", ErrInvalidConversionResult)
	}

	return &result, nil
}
