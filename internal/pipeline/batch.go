package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Input is one document handed to BuildAll.
type Input struct {
	Filename string
	Title    string
	Data     []byte
}

// Output pairs an Input with its build result or error.
type Output struct {
	Filename string
	Result   *Result
	Err      error
}

// BuildAll builds every input with at most workers builds in flight.
// Outputs keep the order of inputs; a failed build does not stop the rest.
func (b *Builder) BuildAll(ctx context.Context, inputs []Input, workers int) []Output {
	if workers <= 0 {
		workers = 1
	}
	out := make([]Output, len(inputs))

	var g errgroup.Group
	g.SetLimit(workers)
	for i, in := range inputs {
		g.Go(func() error {
			res, err := b.Build(ctx, in.Data, in.Filename, in.Title)
			out[i] = Output{Filename: in.Filename, Result: res, Err: err}
			return nil
		})
	}
	_ = g.Wait()
	return out
}
