package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

//go:embed styles/*
var styles embed.FS

// EmbeddedLoader serves the built-in styles compiled into the binary.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadStyle returns the built-in style called name.
func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	if err := ValidateStyleName(name); err != nil {
		return "", err
	}

	content, err := styles.ReadFile(stylesSubdir + "/" + styleFileName(name))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	}

	return string(content), nil
}

// StyleNames lists the embedded style names in sorted order.
func (e *EmbeddedLoader) StyleNames() []string {
	entries, err := fs.ReadDir(styles, stylesSubdir)
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if name, ok := strings.CutSuffix(entry.Name(), StyleExt); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

var _ Loader = (*EmbeddedLoader)(nil)
