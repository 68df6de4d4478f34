package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-wikipreview"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
	ShellFish Shell = "fish"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = fmt.Errorf("unsupported shell")

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagInt
	flagEnum // has predefined values
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string
	Short    string
	Type     flagType
	Desc     string
	Values   []string // for enum flags
	FileGlob string   // for file flags, comma-separated
}

// commandDef describes a command for completion.
type commandDef struct {
	Name       string
	Desc       string
	Flags      []flagDef
	TakesFiles bool
}

// completionMeta holds completion-specific metadata for flags.
type completionMeta struct {
	Values   func() []string
	FileGlob string
	IsDir    bool
}

// flagCompletionMeta maps flag names to their completion metadata.
// Flag names, types and descriptions come from the FlagSet.
var flagCompletionMeta = map[string]completionMeta{
	"highlight-style": {Values: wikipreview.HighlightStyles},
	"config":          {FileGlob: "*.yaml,*.yml"},
	"style":           {FileGlob: "*.css"},
	"output":          {IsDir: true},
	"image-dir":       {IsDir: true},
	"asset-path":      {IsDir: true},
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{Long: f.Name, Short: f.Shorthand, Desc: f.Usage}

		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int":
			fd.Type = flagInt
		default:
			fd.Type = flagString
		}

		if meta, ok := flagCompletionMeta[f.Name]; ok {
			switch {
			case meta.Values != nil:
				fd.Type = flagEnum
				fd.Values = meta.Values()
			case meta.FileGlob != "":
				fd.Type = flagFile
				fd.FileGlob = meta.FileGlob
			case meta.IsDir:
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry for completion.
func getCommands() []commandDef {
	configFS := flag.NewFlagSet("config", flag.ContinueOnError)
	addCommonFlags(configFS, &commonFlags{})

	return []commandDef{
		{
			Name:       "render",
			Desc:       "Render wikitext files to HTML",
			Flags:      extractFlagsFromFlagSet(newRenderFlagSet(&renderFlags{})),
			TakesFiles: true,
		},
		{Name: "config", Desc: "Print the effective configuration", Flags: extractFlagsFromFlagSet(configFS)},
		{Name: "version", Desc: "Show version information"},
		{Name: "help", Desc: "Show help for a command"},
		{Name: "completion", Desc: "Generate shell completion script"},
	}
}

// GenerateCompletion writes a shell completion script to w.
func GenerateCompletion(w io.Writer, shell Shell) error {
	switch shell {
	case ShellBash:
		return generateBash(w)
	case ShellZsh:
		return generateZsh(w)
	case ShellFish:
		return generateFish(w)
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish)", ErrUnsupportedShell, shell)
	}
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	if err := GenerateCompletion(env.Stdout, Shell(args[0])); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return nil
}

// inputGlobs lists the file patterns offered for positional arguments.
func inputGlobs() []string {
	globs := make([]string, len(inputExtensions))
	for i, ext := range inputExtensions {
		globs[i] = "*" + ext
	}
	return globs
}

func commandNames(cmds []commandDef) string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return strings.Join(names, " ")
}

func generateBash(w io.Writer) error {
	cmds := getCommands()
	var b strings.Builder

	b.WriteString("# bash completion for wikipreview\n")
	b.WriteString("_wikipreview() {\n")
	b.WriteString("    local cur prev cmd\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("    cmd=\"${COMP_WORDS[1]}\"\n\n")
	b.WriteString("    if [[ $COMP_CWORD -eq 1 ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", commandNames(cmds))
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case \"$cmd\" in\n")

	for _, c := range cmds {
		if len(c.Flags) == 0 {
			continue
		}
		fmt.Fprintf(&b, "    %s)\n", c.Name)
		b.WriteString("        case \"$prev\" in\n")
		var words []string
		for _, f := range c.Flags {
			opts := "--" + f.Long
			words = append(words, "--"+f.Long)
			if f.Short != "" {
				opts += "|-" + f.Short
				words = append(words, "-"+f.Short)
			}
			switch f.Type {
			case flagEnum:
				fmt.Fprintf(&b, "            %s) COMPREPLY=($(compgen -W %q -- \"$cur\")); return ;;\n", opts, strings.Join(f.Values, " "))
			case flagFile:
				b.WriteString("            " + opts + ") COMPREPLY=($(compgen -f -- \"$cur\")); return ;;\n")
			case flagDir:
				b.WriteString("            " + opts + ") COMPREPLY=($(compgen -d -- \"$cur\")); return ;;\n")
			case flagString, flagInt:
				b.WriteString("            " + opts + ") return ;;\n")
			}
		}
		b.WriteString("        esac\n")
		b.WriteString("        if [[ \"$cur\" == -* ]]; then\n")
		fmt.Fprintf(&b, "            COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(words, " "))
		if c.TakesFiles {
			b.WriteString("        else\n")
			b.WriteString("            COMPREPLY=($(compgen -f -- \"$cur\"))\n")
		}
		b.WriteString("        fi\n")
		b.WriteString("        ;;\n")
	}

	b.WriteString("    completion)\n")
	fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", "bash zsh fish")
	b.WriteString("        ;;\n")
	b.WriteString("    help)\n")
	fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", commandNames(cmds))
	b.WriteString("        ;;\n")
	b.WriteString("    esac\n")
	b.WriteString("}\n")
	b.WriteString("complete -o filenames -F _wikipreview wikipreview\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// zshEscape escapes a description for use inside zsh brackets.
func zshEscape(s string) string {
	r := strings.NewReplacer("'", "'\\''", "[", "\\[", "]", "\\]", ":", "\\:")
	return r.Replace(s)
}

func generateZsh(w io.Writer) error {
	cmds := getCommands()
	var b strings.Builder

	b.WriteString("#compdef wikipreview\n\n")
	b.WriteString("_wikipreview() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        '%s:%s'\n", c.Name, zshEscape(c.Desc))
	}
	b.WriteString("    )\n\n")
	b.WriteString("    if (( CURRENT == 2 )); then\n")
	b.WriteString("        _describe 'command' commands\n")
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case \"$words[2]\" in\n")

	for _, c := range cmds {
		if len(c.Flags) == 0 {
			continue
		}
		fmt.Fprintf(&b, "    %s)\n", c.Name)
		b.WriteString("        _arguments -s \\\n")
		for _, f := range c.Flags {
			action := ""
			switch f.Type {
			case flagEnum:
				action = ":value:(" + strings.Join(f.Values, " ") + ")"
			case flagFile:
				globs := strings.Split(f.FileGlob, ",")
				action = ":file:_files -g '" + strings.Join(globs, " ") + "'"
			case flagDir:
				action = ":directory:_files -/"
			case flagString, flagInt:
				action = ":value:"
			}
			opt := "--" + f.Long
			if f.Short != "" {
				opt = "{-" + f.Short + ",--" + f.Long + "}"
				fmt.Fprintf(&b, "            %s'[%s]%s' \\\n", opt, zshEscape(f.Desc), action)
				continue
			}
			fmt.Fprintf(&b, "            '%s[%s]%s' \\\n", opt, zshEscape(f.Desc), action)
		}
		if c.TakesFiles {
			fmt.Fprintf(&b, "            '*:input:_files -g \"%s\"'\n", strings.Join(inputGlobs(), " "))
		} else {
			b.WriteString("            && return\n")
		}
		b.WriteString("        ;;\n")
	}

	b.WriteString("    completion)\n")
	b.WriteString("        _values 'shell' bash zsh fish\n")
	b.WriteString("        ;;\n")
	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("compdef _wikipreview wikipreview\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func generateFish(w io.Writer) error {
	cmds := getCommands()
	var b strings.Builder

	b.WriteString("# fish completion for wikipreview\n")
	b.WriteString("complete -c wikipreview -f\n")

	for _, c := range cmds {
		fmt.Fprintf(&b, "complete -c wikipreview -n __fish_use_subcommand -a %s -d '%s'\n", c.Name, strings.ReplaceAll(c.Desc, "'", "\\'"))
	}

	for _, c := range cmds {
		cond := "__fish_seen_subcommand_from " + c.Name
		if c.TakesFiles {
			fmt.Fprintf(&b, "complete -c wikipreview -n '%s' -F\n", cond)
		}

		flags := append([]flagDef(nil), c.Flags...)
		sort.Slice(flags, func(i, j int) bool { return flags[i].Long < flags[j].Long })
		for _, f := range flags {
			line := fmt.Sprintf("complete -c wikipreview -n '%s' -l %s", cond, f.Long)
			if f.Short != "" {
				line += " -s " + f.Short
			}
			switch f.Type {
			case flagEnum:
				line += " -x -a '" + strings.Join(f.Values, " ") + "'"
			case flagFile, flagDir:
				line += " -r -F"
			case flagString, flagInt:
				line += " -x"
			}
			line += " -d '" + strings.ReplaceAll(f.Desc, "'", "\\'") + "'"
			b.WriteString(line + "\n")
		}
	}

	b.WriteString("complete -c wikipreview -n '__fish_seen_subcommand_from completion' -x -a 'bash zsh fish'\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: wikipreview completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(wikipreview completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (before compinit):")
	fmt.Fprintln(w, "    eval \"$(wikipreview completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    wikipreview completion fish > ~/.config/fish/completions/wikipreview.fish")
}
