package framework

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRunnerStopsAllOnFailure(t *testing.T) {
	errBoom := errors.New("boom")
	r := NewRunner()
	r.Go(
		NamedRun("failing", RunFunc(func(context.Context) error { return errBoom })),
		RunFunc(func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		}),
	)
	err := r.Wait()
	require.ErrorIs(t, err, errBoom)
	require.Equal(t, "boom", err.Error())
}

func TestNamedRun(t *testing.T) {
	r := NamedRun("hub", RunFunc(func(context.Context) error { return nil }))
	require.Equal(t, "hub", r.(Named).Name())
	require.NoError(t, r.Run(context.Background()))
}

func TestRunnerStop(t *testing.T) {
	r := NewRunner()
	for i := 0; i < 3; i++ {
		r.Go(RunFunc(func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		}))
	}
	time.AfterFunc(10*time.Millisecond, r.Stop)
	require.NoError(t, r.Wait())
}

func TestAggregatedError(t *testing.T) {
	var errs AggregatedError
	require.NoError(t, errs.Add(nil, nil).Aggregate())
	e1, e2 := errors.New("e1"), errors.New("e2")
	err := errs.Add(e1, nil, e2).Aggregate()
	require.Error(t, err)
	require.Equal(t, "multiple errors:\n  e1\n  e2", err.Error())
	require.ErrorIs(t, err, e2)
}
