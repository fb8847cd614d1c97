package limitations_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taufold/zkvm/internal/testcli"
)

func TestShowLimitationsListsMul(t *testing.T) {
	e := testcli.NewExecutor(t)
	e.Run(t, "zkvmc", "show-limitations")
	require.Contains(t, e.Out.String(), "Instructions without a gate-level constraint decomposition:")
	require.Contains(t, e.Out.String(), "MUL")
	require.Contains(t, e.Out.String(), "DIV")
}
