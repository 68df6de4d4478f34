package assets

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateStyleName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"built-in name", "wiki", false},
		{"hyphen and digits", "dark-2", false},
		{"underscore and capitals", "My_Style", false},
		{"longest accepted", strings.Repeat("a", maxStyleNameLength), false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", maxStyleNameLength+1), true},
		{"extension given", "wiki.css", true},
		{"forward slash", "themes/wiki", true},
		{"backslash", `themes\wiki`, true},
		{"parent traversal", "../secret", true},
		{"hidden file", ".wiki", true},
		{"space", "my style", true},
		{"url", "https://example.org/wiki", true},
		{"inline css", "p{color:red}", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateStyleName(tt.input)
			if !tt.wantErr {
				if err != nil {
					t.Errorf("ValidateStyleName(%q) error = %v", tt.input, err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidStyleName) {
				t.Errorf("ValidateStyleName(%q) error = %v, want ErrInvalidStyleName", tt.input, err)
			}
		})
	}
}

func TestValidateStyleName_MessageNamesInput(t *testing.T) {
	t.Parallel()

	err := ValidateStyleName("../evil")
	if err == nil || !strings.Contains(err.Error(), `"../evil"`) {
		t.Errorf("ValidateStyleName() error = %v, want it to quote the name", err)
	}
}

func TestReadStyleFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	css := write("custom.css", "body { margin: 0; }")
	upper := write("UPPER.CSS", "p {}")
	txt := write("notes.txt", "body {}")
	huge := write("huge.css", strings.Repeat("a", MaxStyleSize+1))
	exact := write("exact.css", strings.Repeat("a", MaxStyleSize))
	if err := os.Mkdir(filepath.Join(dir, "folder.css"), 0o755); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		path    string
		wantLen int
		wantErr error
	}{
		{"css file", css, len("body { margin: 0; }"), nil},
		{"extension case ignored", upper, len("p {}"), nil},
		{"size limit inclusive", exact, MaxStyleSize, nil},
		{"wrong extension", txt, 0, ErrNotStylesheet},
		{"no extension", filepath.Join(dir, "custom"), 0, ErrNotStylesheet},
		{"missing file", filepath.Join(dir, "missing.css"), 0, ErrStyleNotFound},
		{"directory", filepath.Join(dir, "folder.css"), 0, ErrStyleRead},
		{"too large", huge, 0, ErrStyleTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ReadStyleFile(tt.path)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ReadStyleFile(%q) error = %v, want %v", tt.path, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadStyleFile(%q) error = %v", tt.path, err)
			}
			if len(got) != tt.wantLen {
				t.Errorf("ReadStyleFile(%q) length = %d, want %d", tt.path, len(got), tt.wantLen)
			}
		})
	}
}
