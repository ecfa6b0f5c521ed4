package driver

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"crispy/interpreter-go/pkg/interpreter"
)

// Report is the outcome of statically checking one file.
type Report struct {
	Path        string
	Diagnostics []interpreter.Diagnostic
	// Err is set when the file could not be read.
	Err error
}

// Failed reports whether the file was unreadable or produced diagnostics.
func (r Report) Failed() bool {
	return r.Err != nil || len(r.Diagnostics) > 0
}

// CheckFiles lexes, parses and resolves every path without running any of
// them. At most limit files are checked at once; limit <= 0 uses GOMAXPROCS.
// Reports come back in the order of paths. The error is non-nil only when
// ctx is cancelled.
func CheckFiles(ctx context.Context, paths []string, limit int) ([]Report, error) {
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	reports := make([]Report, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for idx, path := range paths {
		idx, path := idx, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			reports[idx] = checkFile(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

func checkFile(path string) Report {
	report := Report{Path: path}
	source, err := LoadScript(path)
	if err != nil {
		report.Err = err
		return report
	}
	report.Diagnostics = interpreter.Check(source)
	return report
}
