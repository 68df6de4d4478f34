package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// stylesSubdir holds custom styles inside an --asset-path directory.
const stylesSubdir = "styles"

// StyleDir loads custom styles from {assetPath}/styles/{name}.css.
// A missing styles subdirectory is not an error: every lookup then reports
// ErrStyleNotFound and the Resolver falls back to the built-in styles.
type StyleDir struct {
	root string // symlink-free absolute asset path
	dir  string // root/styles
}

// NewStyleDir opens an --asset-path directory.
func NewStyleDir(assetPath string) (*StyleDir, error) {
	if assetPath == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidAssetPath)
	}

	root, err := filepath.Abs(assetPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}
	if real, err := filepath.EvalSymlinks(root); err == nil {
		root = real
	}

	info, err := os.Stat(root)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%w: %s does not exist", ErrInvalidAssetPath, assetPath)
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	case !info.IsDir():
		return nil, fmt.Errorf("%w: %s is not a directory", ErrInvalidAssetPath, assetPath)
	}
	if _, err := os.ReadDir(root); err != nil {
		return nil, fmt.Errorf("%w: cannot list %s: %v", ErrInvalidAssetPath, assetPath, err)
	}

	return &StyleDir{root: root, dir: filepath.Join(root, stylesSubdir)}, nil
}

// LoadStyle reads the named custom style.
func (d *StyleDir) LoadStyle(name string) (string, error) {
	if err := ValidateStyleName(name); err != nil {
		return "", err
	}

	path, err := d.contained(filepath.Join(d.dir, styleFileName(name)))
	if err != nil {
		return "", err
	}

	css, err := readStyle(path)
	if err != nil {
		return "", fmt.Errorf("style %q: %w", name, err)
	}
	return css, nil
}

// StyleNames lists the .css stems found in the styles subdirectory, sorted.
// Files whose stem is not a valid style name are skipped.
func (d *StyleDir) StyleNames() []string {
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		stem, ok := strings.CutSuffix(e.Name(), StyleExt)
		if ok && ValidateStyleName(stem) == nil {
			names = append(names, stem)
		}
	}
	sort.Strings(names)
	return names
}

// contained resolves symlinks in path and rejects results that leave the
// asset path. A path that does not exist yet is checked as written.
func (d *StyleDir) contained(path string) (string, error) {
	resolved := path
	if real, err := filepath.EvalSymlinks(path); err == nil {
		resolved = real
	}
	rel, err := filepath.Rel(d.root, resolved)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideAssetPath, path)
	}
	return resolved, nil
}

var _ Loader = (*StyleDir)(nil)
