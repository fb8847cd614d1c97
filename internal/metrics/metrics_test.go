package metrics

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/taufold/zkvm/pkg/harness"
)

func TestServiceServesMetrics(t *testing.T) {
	svc := New("127.0.0.1:0", nil)
	// Replace the ephemeral address with a fixed port so the test knows where to scrape.
	svc.server.Addr = "127.0.0.1:19081"
	require.NoError(t, svc.Start())
	defer svc.Shutdown(context.Background())

	svc.Recorder().Observe(harness.StatusSAT, time.Millisecond)

	var resp *http.Response
	var err error
	for i := 0; i < 20; i++ {
		resp, err = http.Get("http://127.0.0.1:19081/metrics")
		if err == nil {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "zkvm_harness_results_total")
}
