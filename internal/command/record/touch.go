package record

import (
	"log/slog"

	"github.com/urfave/cli/v2"

	"github.com/rpattn/hbnb/internal/command/common"
	"github.com/rpattn/hbnb/internal/domain"
)

func TouchCommand() *cli.Command {
	return &cli.Command{
		Name:  "touch",
		Usage: "Refresh updated_at of objects and re-encode the document",
		Flags: common.WithInputFlags(
			common.OutputFlag("Path of the updated document (defaults to stdout)", false),
		),
		Action: func(cCtx *cli.Context) error {
			ctx := cCtx.Context

			models, err := common.ReadObjects(cCtx, cCtx.String(common.FlagInput))
			if err != nil {
				return err
			}

			selected, err := common.Select(models, cCtx.String(common.FlagKey))
			if err != nil {
				return err
			}

			for _, m := range selected {
				m.Touch()
				slog.DebugContext(ctx, "touched record",
					slog.String("object", domain.ObjectKey(m)),
					slog.String("updated_at", domain.FormatTimestamp(m.Base().UpdatedAt())),
				)
			}

			return common.WriteObjects(cCtx, cCtx.String(common.FlagOutput), models)
		},
	}
}
