package assets

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

const (
	// StyleExt is the only extension accepted for style files, both under
	// {asset-path}/styles and for a --style file path.
	StyleExt = ".css"

	// MaxStyleSize caps a style file read from disk.
	MaxStyleSize = 1 << 20

	maxStyleNameLength = 64
)

// Names are bare file stems: no separators, no dots, so a name can never
// pick a different extension or directory.
var styleNamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidateStyleName checks a --style value that names a style rather than
// a file.
func ValidateStyleName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidStyleName)
	case len(name) > maxStyleNameLength:
		return fmt.Errorf("%w: longer than %d characters", ErrInvalidStyleName, maxStyleNameLength)
	case !styleNamePattern.MatchString(name):
		return fmt.Errorf("%w: %q (use letters, digits, '-' or '_')", ErrInvalidStyleName, name)
	}
	return nil
}

// styleFileName maps a validated style name onto its file name.
func styleFileName(name string) string {
	return name + StyleExt
}

// ReadStyleFile reads a --style value given as a file path. The file must
// be a regular .css file no larger than MaxStyleSize.
func ReadStyleFile(path string) (string, error) {
	if !strings.EqualFold(filepath.Ext(path), StyleExt) {
		return "", fmt.Errorf("%w: %s", ErrNotStylesheet, path)
	}
	return readStyle(path)
}

// readStyle reads a regular file of at most MaxStyleSize bytes.
func readStyle(path string) (string, error) {
	f, err := os.Open(path) // #nosec G304 -- user-provided style path
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrStyleNotFound, path)
		}
		return "", fmt.Errorf("%w: %v", ErrStyleRead, err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStyleRead, err)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%w: not a regular file: %s", ErrStyleRead, path)
	}

	data, err := io.ReadAll(io.LimitReader(f, MaxStyleSize+1))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStyleRead, err)
	}
	if len(data) > MaxStyleSize {
		return "", fmt.Errorf("%w: %s exceeds %d bytes", ErrStyleTooLarge, path, MaxStyleSize)
	}
	return string(data), nil
}
