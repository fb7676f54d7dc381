package record

import (
	"github.com/urfave/cli/v2"
)

// Commands returns the record lifecycle commands.
func Commands() []*cli.Command {
	return []*cli.Command{
		NewCommand(),
		ShowCommand(),
		TouchCommand(),
		ValidateCommand(),
	}
}
