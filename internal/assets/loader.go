package assets

// Loader returns the CSS of a style given its bare name (no extension).
// Unknown names give ErrStyleNotFound and malformed ones ErrInvalidStyleName.
type Loader interface {
	LoadStyle(name string) (string, error)
}
