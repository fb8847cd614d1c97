package build_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taufold/zkvm/internal/testcli"
	"github.com/taufold/zkvm/pkg/emit"
)

func TestBuildWritesManifestAndComponentFiles(t *testing.T) {
	out := t.TempDir()
	e := testcli.NewExecutor(t)
	e.Run(t, "zkvmc", "build", "--out", out)

	data, err := os.ReadFile(filepath.Join(out, "manifest.json"))
	require.NoError(t, err)

	var m emit.Manifest
	require.NoError(t, json.Unmarshal(data, &m))
	require.NotEmpty(t, m.Instructions)

	// ADD should always decompose; check its component files landed.
	entries, err := os.ReadDir(filepath.Join(out, "ADD"))
	require.NoError(t, err)
	require.NotEmpty(t, entries)
}

func TestBuildWithTestsEmitsSidecar(t *testing.T) {
	out := t.TempDir()
	e := testcli.NewExecutor(t)
	e.Run(t, "zkvmc", "build", "--out", out, "--with-tests")

	_, err := os.Stat(filepath.Join(out, "ADD", "expected.json"))
	require.NoError(t, err)
}
