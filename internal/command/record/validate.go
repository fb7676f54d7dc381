package record

import (
	"fmt"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/rpattn/hbnb/internal/command/common"
	"github.com/rpattn/hbnb/internal/domain"
	"github.com/rpattn/hbnb/pkg/validator"
)

var ErrInvalidObjects = errors.New("document holds invalid objects")

func ValidateCommand() *cli.Command {
	return &cli.Command{
		Name:  "validate",
		Usage: "Check every object of a document against the schema of its kind",
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

			v := validator.NewRecordValidator()
			w := cCtx.App.Writer
			invalid := 0

			for _, m := range selected {
				key := domain.ObjectKey(m)
				result := v.ValidateRecord(m)

				for _, e := range result.Errors {
					fmt.Fprintf(w, "%s: error: %s: %s\n", key, e.Field, e.Message)
				}
				for _, warning := range result.Warnings {
					fmt.Fprintf(w, "%s: warning: %s: %s\n", key, warning.Field, warning.Message)
				}
				if !result.IsValid {
					invalid++
					continue
				}
				fmt.Fprintf(w, "%s: ok\n", key)
			}

			if invalid > 0 {
				slog.WarnContext(cCtx.Context, "validation failed", slog.Int("invalid", invalid), slog.Int("total", len(selected)))
				return errors.Wrapf(ErrInvalidObjects, "%d of %d", invalid, len(selected))
			}
			return nil
		},
	}
}
