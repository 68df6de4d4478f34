// Package assets resolves the --style value of a preview document into CSS.
//
// A style is either a built-in name (wiki, plain), a name found under
// {asset-path}/styles/{name}.css, or a path to a .css file:
//
//	EmbeddedLoader  built-in styles compiled into the binary
//	StyleDir        styles under --asset-path, symlinks kept inside it
//	Resolver        StyleDir first, EmbeddedLoader when the name is missing
//	ReadStyleFile   a --style value that is a file path
//
// Names are restricted to letters, digits, '-' and '_'. Files must carry the
// .css extension and stay under MaxStyleSize.
package assets
