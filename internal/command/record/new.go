package record

import (
	"log/slog"

	"github.com/bornholm/go-x/slogx"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/rpattn/hbnb/internal/command/common"
	"github.com/rpattn/hbnb/internal/domain"
)

func NewCommand() *cli.Command {
	return &cli.Command{
		Name:      "new",
		Usage:     "Create a fresh record and print its serialized mapping",
		ArgsUsage: "<Kind>",
		Flags: []cli.Flag{
			common.OutputFlag("Write the record as an object document to this path", false),
		},
		Action: func(cCtx *cli.Context) error {
			kind := cCtx.Args().First()
			if kind == "" {
				return errors.Errorf("missing kind, expected one of %v", domain.Kinds())
			}

			model, err := domain.New(kind)
			if err != nil {
				return errors.WithStack(err)
			}

			ctx := slogx.WithAttrs(cCtx.Context, slog.String("object", domain.ObjectKey(model)))
			slog.DebugContext(ctx, "created record")

			output := cCtx.String(common.FlagOutput)
			if output != "" {
				return common.WriteObjects(cCtx, output, []domain.Model{model})
			}

			c, err := common.Codec(cCtx, common.Stdio)
			if err != nil {
				return err
			}
			return c.EncodeMapping(cCtx.App.Writer, model.ToMapping())
		},
	}
}
