package sheet

import (
	"io"
	"log/slog"

	"github.com/bornholm/go-x/slogx"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/rpattn/hbnb/internal/command/common"
	"github.com/rpattn/hbnb/internal/domain"
	"github.com/rpattn/hbnb/internal/tabular"
	"github.com/rpattn/hbnb/pkg/validator"
)

var ErrDuplicateObject = errors.New("duplicate object in sheet")

func ImportCommand() *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Rehydrate the rows of a csv or xlsx sheet into an object document",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     common.FlagInput,
				Aliases:  []string{"f", "i"},
				Usage:    "Path to the sheet (.csv or .xlsx)",
				Required: true,
			},
			common.OutputFlag("Path of the object document to write (defaults to stdout)", false),
		},
		Action: func(cCtx *cli.Context) error {
			input := cCtx.String(common.FlagInput)
			ctx := slogx.WithAttrs(cCtx.Context, slog.String("sheet", input))

			format, err := tabular.FormatFromPath(input)
			if err != nil {
				return errors.WithStack(err)
			}

			r, err := common.Open(cCtx, input)
			if err != nil {
				return err
			}
			payload, err := io.ReadAll(r)
			_ = r.Close()
			if err != nil {
				return errors.WithStack(err)
			}

			rows, err := tabular.Read(payload, format)
			if err != nil {
				return errors.Wrapf(err, "could not read %s", input)
			}

			v := validator.NewRecordValidator()
			models := make([]domain.Model, 0, len(rows))
			seen := make(map[string]int, len(rows))

			for _, sheetRow := range rows {
				row := sheetRow.Line

				model, err := domain.Rehydrate(sheetRow.Mapping)
				if err != nil {
					slog.WarnContext(ctx, "could not rehydrate row", slog.Int("row", row), slogx.Error(err))
					return errors.Wrapf(err, "row %d", row)
				}

				result := v.Normalize(model)
				if !result.IsValid {
					first := result.Errors[0]
					return errors.Errorf("row %d: %s: %s", row, first.Field, first.Message)
				}

				key := domain.ObjectKey(model)
				if previous, exists := seen[key]; exists {
					return errors.Wrapf(ErrDuplicateObject, "%s on rows %d and %d", key, previous, row)
				}
				seen[key] = row
				models = append(models, model)
			}

			slog.InfoContext(ctx, "imported objects", slog.Int("rows", len(models)))

			return common.WriteObjects(cCtx, cCtx.String(common.FlagOutput), models)
		},
	}
}
