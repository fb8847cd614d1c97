package run_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taufold/zkvm/internal/testcli"
)

func TestRunWorkedExample(t *testing.T) {
	tmp := t.TempDir()
	program := filepath.Join(tmp, "add.zkasm")
	require.NoError(t, os.WriteFile(program, []byte("PUSH 5\nPUSH 7\nADD\nWRITE\nHALT\n"), 0o644))

	e := testcli.NewExecutor(t)
	e.Run(t, "zkvmc", "run", "--program", program)
	e.CheckNextLine(t, "^12$")
}

func TestRunWithInputFile(t *testing.T) {
	tmp := t.TempDir()
	program := filepath.Join(tmp, "echo.zkasm")
	require.NoError(t, os.WriteFile(program, []byte("READ\nWRITE\nHALT\n"), 0o644))
	input := filepath.Join(tmp, "input.txt")
	require.NoError(t, os.WriteFile(input, []byte("42\n"), 0o644))

	e := testcli.NewExecutor(t)
	e.Run(t, "zkvmc", "run", "--program", program, "--input", input)
	e.CheckNextLine(t, "^42$")
}

func TestRunFailsOnAssemblyError(t *testing.T) {
	tmp := t.TempDir()
	program := filepath.Join(tmp, "bad.zkasm")
	require.NoError(t, os.WriteFile(program, []byte("FROB 1\n"), 0o644))

	e := testcli.NewExecutor(t)
	e.RunWithError(t, "zkvmc", "run", "--program", program)
}
