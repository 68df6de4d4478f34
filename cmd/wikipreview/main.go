package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	env := DefaultEnv()

	undo := setMaxProcs(hasVerboseFlag(os.Args[1:]), env.Stderr)

	ctx, stop := withStopSignals(context.Background())
	code := runMain(ctx, os.Args, env)
	stop()
	undo()

	os.Exit(code)
}

// runMain dispatches the command and maps its error to an exit code.
// A first argument that looks like an input runs render implicitly.
func runMain(ctx context.Context, args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[1], args[2:]

	var err error
	switch {
	case cmd == "render":
		err = runRender(ctx, rest, env)
	case cmd == "config":
		err = runConfig(rest, env)
	case cmd == "completion":
		err = runCompletion(rest, env)
	case cmd == "version" || cmd == "--version":
		fmt.Fprintf(env.Stdout, "wikipreview %s\n", Version)
		return ExitSuccess
	case cmd == "help" || cmd == "-h" || cmd == "--help":
		runHelp(rest, env)
		return ExitSuccess
	case looksLikeInput(cmd):
		err = runRender(ctx, args[1:], env)
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}

	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// looksLikeInput reports whether arg is stdin, a glob, or a wikitext file name.
func looksLikeInput(arg string) bool {
	return arg == stdinArg || isGlob(arg) || hasInputExtension(arg)
}

// hasVerboseFlag reports whether -v or --verbose appears before "--".
func hasVerboseFlag(args []string) bool {
	for _, a := range args {
		if a == "--" {
			return false
		}
		if a == "-v" || a == "--verbose" {
			return true
		}
	}
	return false
}

// setMaxProcs configures GOMAXPROCS from the container CPU quota, logging
// to w only in verbose mode. Returns the function restoring the old value.
func setMaxProcs(verbose bool, w io.Writer) func() {
	logf := func(string, ...interface{}) {}
	if verbose {
		logf = func(format string, args ...interface{}) {
			fmt.Fprintf(w, format+"\n", args...)
		}
	}

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	undo, _ := maxprocs.Set(maxprocs.Logger(logf))
	return undo
}
