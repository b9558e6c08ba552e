package pipeline

import (
	"context"

	"github.com/matzehuels/partynet/pkg/errors"
	pio "github.com/matzehuels/partynet/pkg/io"
	"github.com/matzehuels/partynet/pkg/observability"
)

// Write stores every rendered artifact at its output path. Formats are
// written in opts.Formats order and the first failure stops the run;
// files of formats written before the failure stay in place.
func (r *Runner) Write(ctx context.Context, result *Result, opts Options) error {
	hooks := observability.Output()
	for _, format := range opts.Formats {
		data, ok := result.Artifacts[format]
		if !ok {
			return errors.New(errors.ErrCodeInternal, "format %s was not rendered", format)
		}
		path := opts.OutputPath(format)
		err := r.writeFormat(format, path, data, result)
		hooks.OnWrite(ctx, path, format, len(data), err)
		if err != nil {
			return err
		}
		result.Paths[format] = path
		r.Logger.Info("wrote output", "format", format, "path", path, "bytes", len(data))
	}
	return nil
}

func (r *Runner) writeFormat(format, path string, data []byte, result *Result) error {
	if format == FormatJSON && result.Document != nil {
		return pio.ExportDocument(r.Fs, path, *result.Document)
	}
	return pio.WriteFileAtomic(r.Fs, path, data)
}
