package sheet

import (
	"github.com/urfave/cli/v2"
)

// Commands returns the sheet conversion commands.
func Commands() []*cli.Command {
	return []*cli.Command{
		ExportCommand(),
		ImportCommand(),
	}
}
