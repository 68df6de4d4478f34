package main

import (
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-wikipreview/internal/yamlutil"
)

// runConfig prints the effective configuration as YAML: the config file (if
// any) with WIKIPREVIEW_* overrides applied.
func runConfig(args []string, env *Environment) error {
	flags, err := parseConfigFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	envCfg := loadEnvConfig()
	if !flags.common.quiet {
		warnUnknownEnvVars(env.Stderr)
	}

	cfg, err := loadConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := yamlutil.Encode(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	_, err = env.Stdout.Write(data)
	return err
}
