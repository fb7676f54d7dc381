package record

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/rpattn/hbnb/internal/command/common"
)

func ShowCommand() *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: "Print the textual representation of the objects in a document",
		Flags: common.WithInputFlags(),
		Action: func(cCtx *cli.Context) error {
			models, err := common.ReadObjects(cCtx, cCtx.String(common.FlagInput))
			if err != nil {
				return err
			}

			selected, err := common.Select(models, cCtx.String(common.FlagKey))
			if err != nil {
				return err
			}

			for _, m := range selected {
				fmt.Fprintln(cCtx.App.Writer, m.String())
			}
			return nil
		},
	}
}
