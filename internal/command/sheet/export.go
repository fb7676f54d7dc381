package sheet

import (
	"log/slog"

	"github.com/bornholm/go-x/slogx"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/rpattn/hbnb/internal/command/common"
	"github.com/rpattn/hbnb/internal/domain"
	"github.com/rpattn/hbnb/internal/tabular"
)

func ExportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Write the objects of a document as a csv or xlsx sheet",
		Flags: common.WithInputFlags(
			common.OutputFlag("Path of the sheet to write (.csv or .xlsx)", true),
		),
		Action: func(cCtx *cli.Context) error {
			output := cCtx.String(common.FlagOutput)
			ctx := slogx.WithAttrs(cCtx.Context, slog.String("sheet", output))

			format, err := tabular.FormatFromPath(output)
			if err != nil {
				return errors.WithStack(err)
			}

			models, err := common.ReadObjects(cCtx, cCtx.String(common.FlagInput))
			if err != nil {
				return err
			}

			selected, err := common.Select(models, cCtx.String(common.FlagKey))
			if err != nil {
				return err
			}

			mappings := make([]map[string]any, 0, len(selected))
			for _, m := range selected {
				mappings = append(mappings, m.ToMapping())
			}

			w, err := common.Create(cCtx, output)
			if err != nil {
				return err
			}

			if err := tabular.Write(w, format, mappings); err != nil {
				_ = w.Close()
				return errors.Wrapf(err, "could not export to %s", output)
			}
			if err := w.Close(); err != nil {
				return errors.WithStack(err)
			}

			slog.InfoContext(ctx, "exported objects", slog.Int("rows", len(mappings)), slog.Any("kinds", kindsOf(selected)))
			return nil
		},
	}
}

func kindsOf(models []domain.Model) []string {
	seen := make(map[string]struct{})
	var kinds []string
	for _, m := range models {
		if _, ok := seen[m.Kind()]; ok {
			continue
		}
		seen[m.Kind()] = struct{}{}
		kinds = append(kinds, m.Kind())
	}
	return kinds
}
