package assets

// DefaultStyleName is the built-in style used when --style is not given.
const DefaultStyleName = "wiki"

var builtin = NewEmbeddedLoader()

// LoadStyle returns a built-in style by name.
func LoadStyle(name string) (string, error) {
	return builtin.LoadStyle(name)
}
