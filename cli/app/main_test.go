package app_test

import (
	"testing"

	"github.com/taufold/zkvm/cli/app"
	"github.com/taufold/zkvm/internal/testcli"
	"github.com/taufold/zkvm/internal/versionutil"
)

func TestCLIVersion(t *testing.T) {
	app.Version = versionutil.TestVersion
	e := testcli.NewExecutor(t)
	e.Run(t, "zkvmc", "--version")
	e.CheckNextLine(t, "^zkvmc")
	e.CheckNextLine(t, "^Version:")
	e.CheckNextLine(t, "^GoVersion:")
	e.CheckEOF(t)
}
