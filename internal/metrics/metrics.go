// Package metrics wires the harness's Prometheus collectors to an
// HTTP /metrics endpoint for `validate --metrics-addr` (spec §6.2
// expansion).
package metrics

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/taufold/zkvm/pkg/harness"
)

// Service serves one Prometheus registry over HTTP until Shutdown is
// called, mirroring the teacher's pattern of a small internal service
// with its own listen address (pkg/consensus keeps metrics inline;
// this domain's harness is long enough to warrant its own service).
type Service struct {
	registry *prometheus.Registry
	recorder *harness.PrometheusRecorder
	server   *http.Server
	log      *zap.Logger
}

// New builds a Service bound to addr, not yet listening.
func New(addr string, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	reg := prometheus.NewRegistry()
	rec := harness.NewPrometheusRecorder(reg)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	return &Service{
		registry: reg,
		recorder: rec,
		log:      log,
		server:   &http.Server{Addr: addr, Handler: mux},
	}
}

// Recorder returns the harness.Recorder the validate command should
// pass to harness.Run.
func (s *Service) Recorder() harness.Recorder { return s.recorder }

// Start begins serving in the background. It returns once the
// listener is bound, surfacing bind errors synchronously; runtime
// errors after that are logged.
func (s *Service) Start() error {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return err
	}
	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("metrics server stopped", zap.Error(err))
		}
	}()
	s.log.Info("metrics listening", zap.String("addr", s.server.Addr))
	return nil
}

// Shutdown gracefully stops the server.
func (s *Service) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
