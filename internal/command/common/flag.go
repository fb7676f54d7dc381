package common

import (
	"github.com/urfave/cli/v2"
)

const (
	FlagInput  = "file"
	FlagOutput = "output"
	FlagKey    = "key"
)

var (
	flagInput = &cli.StringFlag{
		Name:     FlagInput,
		Aliases:  []string{"f", "i"},
		Usage:    "Path to the input document (use '-' for stdin)",
		Required: true,
	}
	flagKey = &cli.StringFlag{
		Name:    FlagKey,
		Aliases: []string{"k"},
		Usage:   "Restrict the command to the object stored under <Kind>.<id>",
	}
)

// WithInputFlags prepends the --file and --key flags.
func WithInputFlags(flags ...cli.Flag) []cli.Flag {
	return append([]cli.Flag{
		flagInput,
		flagKey,
	}, flags...)
}

// OutputFlag returns a --output flag; required outputs have no stdout default.
func OutputFlag(usage string, required bool) cli.Flag {
	return &cli.StringFlag{
		Name:     FlagOutput,
		Aliases:  []string{"o"},
		Usage:    usage,
		Required: required,
	}
}
