package common

import (
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v2"

	"github.com/rpattn/hbnb/internal/codec"
	"github.com/rpattn/hbnb/internal/config"
	"github.com/rpattn/hbnb/internal/domain"
)

const (
	MetadataFs     = "fs"
	MetadataConfig = "config"

	FlagConfig   = "config"
	FlagDebug    = "debug"
	FlagLogLevel = "log-level"
	FlagFormat   = "format"

	// Stdio designates stdin or stdout in place of a file path.
	Stdio = "-"
)

var ErrObjectNotFound = errors.New("no instance found")

// Fs returns the filesystem the application was built with.
func Fs(ctx *cli.Context) afero.Fs {
	if fs, ok := ctx.App.Metadata[MetadataFs].(afero.Fs); ok {
		return fs
	}
	return afero.NewOsFs()
}

// Config returns the configuration loaded by the application Before hook.
func Config(ctx *cli.Context) config.Config {
	if conf, ok := ctx.App.Metadata[MetadataConfig].(config.Config); ok {
		return conf
	}
	return config.DefaultConfig()
}

// Codec picks the document codec for path: from its extension, or from the
// configured output format for stdin/stdout.
func Codec(ctx *cli.Context, path string) (*codec.Codec, error) {
	conf := Config(ctx)

	var (
		format codec.Format
		err    error
	)
	if path == "" || path == Stdio {
		format, err = codec.ParseFormat(conf.Output.Format)
	} else {
		format, err = codec.FormatFromPath(path)
	}
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return codec.New(format, codec.WithIndent(conf.Output.Indent))
}

// Open opens path for reading; "-" reads stdin.
func Open(ctx *cli.Context, path string) (io.ReadCloser, error) {
	if path == Stdio {
		return io.NopCloser(ctx.App.Reader), nil
	}
	file, err := Fs(ctx).Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not open %s", path)
	}
	return file, nil
}

// Create opens path for writing; "" or "-" writes to the application writer.
func Create(ctx *cli.Context, path string) (io.WriteCloser, error) {
	if path == "" || path == Stdio {
		return nopWriteCloser{ctx.App.Writer}, nil
	}
	file, err := Fs(ctx).Create(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not create %s", path)
	}
	return file, nil
}

// ReadObjects decodes the object document at path.
func ReadObjects(ctx *cli.Context, path string) ([]domain.Model, error) {
	c, err := Codec(ctx, path)
	if err != nil {
		return nil, err
	}

	r, err := Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	models, err := c.DecodeObjects(r)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read objects from %s", path)
	}
	return models, nil
}

// WriteObjects encodes models as an object document at path.
func WriteObjects(ctx *cli.Context, path string, models []domain.Model) error {
	c, err := Codec(ctx, path)
	if err != nil {
		return err
	}

	w, err := Create(ctx, path)
	if err != nil {
		return err
	}

	if err := c.EncodeObjects(w, models); err != nil {
		_ = w.Close()
		return errors.Wrapf(err, "could not write objects to %s", path)
	}
	return errors.WithStack(w.Close())
}

// Select keeps the model stored under key, or every model when key is empty.
func Select(models []domain.Model, key string) ([]domain.Model, error) {
	if key == "" {
		return models, nil
	}
	for _, m := range models {
		if domain.ObjectKey(m) == key {
			return []domain.Model{m}, nil
		}
	}
	return nil, errors.Wrapf(ErrObjectNotFound, "%s", key)
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error {
	return nil
}
