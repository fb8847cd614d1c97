package harness

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string, size int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
	return path
}

func TestRunClassifiesOversizeWithoutInvokingSolver(t *testing.T) {
	dir := t.TempDir()
	big := writeFile(t, dir, "big.tau", OversizeThreshold+1)

	report, err := Run(context.Background(), StubOracle{}, []string{big}, Options{Parallel: 2})
	require.NoError(t, err)
	require.Equal(t, StatusOversize, report.Results[0].Status)
	require.Equal(t, 1, report.Counts[StatusOversize])
}

func TestRunDemoModeSkipsEverything(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.tau", 10)
	b := writeFile(t, dir, "b.tau", 10)

	report, err := Run(context.Background(), StubOracle{}, []string{a, b}, Options{Parallel: 2, DemoMode: true})
	require.NoError(t, err)
	require.Equal(t, 2, report.Counts[StatusSkipped])
}

func TestRunResultsSortedByComponentNameRegardlessOfCompletionOrder(t *testing.T) {
	dir := t.TempDir()
	names := []string{"c.tau", "a.tau", "b.tau"}
	var paths []string
	for _, n := range names {
		paths = append(paths, writeFile(t, dir, n, 10))
	}
	report, err := Run(context.Background(), StubOracle{}, paths, Options{Parallel: 3})
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c"}, []string{
		report.Results[0].Component, report.Results[1].Component, report.Results[2].Component,
	})
}

type fakeOracle struct{ stdout string }

func (f fakeOracle) Solve(ctx context.Context, path string) (Outcome, error) {
	return Outcome{Stdout: f.stdout}, nil
}

func TestClassifyPrefersUnsatOverSatSubstring(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "x.tau", 10)
	report, err := Run(context.Background(), fakeOracle{stdout: "result: unsat"}, []string{path}, Options{Parallel: 1})
	require.NoError(t, err)
	require.Equal(t, StatusUNSAT, report.Results[0].Status)
}

type hangingOracle struct{}

func (hangingOracle) Solve(ctx context.Context, path string) (Outcome, error) {
	<-ctx.Done()
	return Outcome{}, ctx.Err()
}

func TestRunTimesOutSlowInvocations(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "slow.tau", 10)
	report, err := Run(context.Background(), hangingOracle{}, []string{path}, Options{Parallel: 1, Timeout: 10 * time.Millisecond})
	require.NoError(t, err)
	require.Equal(t, StatusTimeout, report.Results[0].Status)
}

func TestReportAnyFailed(t *testing.T) {
	r := Report{Counts: map[Status]int{StatusSAT: 3}}
	require.False(t, r.AnyFailed())
	r.Counts[StatusUNSAT] = 1
	require.True(t, r.AnyFailed())
}
