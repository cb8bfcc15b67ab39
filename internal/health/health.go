package health

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/sbilibin2017/gw-assessment/internal/logger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

//go:generate mockgen -source=health.go -destination=health_mock.go -package=health

// Pinger checks a backing store. *sqlx.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// ServiceName is the gRPC health service name reported for the API.
const ServiceName = "gw-assessment"

const checkTimeout = 2 * time.Second

// Checker reports readiness over gRPC health and HTTP.
type Checker struct {
	pingers map[string]Pinger
	server  *health.Server
}

// NewChecker creates a checker over the named pingers. Nil pingers are skipped.
func NewChecker(pingers map[string]Pinger) *Checker {
	active := make(map[string]Pinger, len(pingers))
	for name, p := range pingers {
		if p != nil {
			active[name] = p
		}
	}
	return &Checker{
		pingers: active,
		server:  health.NewServer(),
	}
}

// Check pings every dependency and returns the failed ones keyed by name.
func (c *Checker) Check(ctx context.Context) map[string]string {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	failed := make(map[string]string)
	for name, p := range c.pingers {
		if err := p.PingContext(ctx); err != nil {
			failed[name] = err.Error()
		}
	}
	return failed
}

// Refresh runs Check and publishes the result to the gRPC health server.
func (c *Checker) Refresh(ctx context.Context) bool {
	failed := c.Check(ctx)
	status := healthpb.HealthCheckResponse_SERVING
	if len(failed) > 0 {
		status = healthpb.HealthCheckResponse_NOT_SERVING
		logger.Log.Warnw("health check failed", "failed", failed)
	}
	c.server.SetServingStatus("", status)
	c.server.SetServingStatus(ServiceName, status)
	return len(failed) == 0
}

// Status returns the status currently published for service.
func (c *Checker) Status(ctx context.Context, service string) (healthpb.HealthCheckResponse_ServingStatus, error) {
	resp, err := c.server.Check(ctx, &healthpb.HealthCheckRequest{Service: service})
	if err != nil {
		return healthpb.HealthCheckResponse_UNKNOWN, err
	}
	return resp.GetStatus(), nil
}

// Response is the body of the HTTP health endpoint
// swagger:model HealthResponse
type Response struct {
	Status string            `json:"status"`
	Failed map[string]string `json:"failed,omitempty"`
}

// Handler returns the HTTP health endpoint.
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} health.Response
// @Failure 503 {object} health.Response
// @Router /health [get]
func (c *Checker) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		failed := c.Check(r.Context())

		resp := Response{Status: "ok"}
		code := http.StatusOK
		if len(failed) > 0 {
			resp = Response{Status: "unavailable", Failed: failed}
			code = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		json.NewEncoder(w).Encode(resp)
	}
}

// Run serves gRPC health on addr and refreshes the status every interval until ctx is done.
func (c *Checker) Run(ctx context.Context, addr string, interval time.Duration) error {
	listen, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	srv := grpc.NewServer()
	healthpb.RegisterHealthServer(srv, c.server)

	c.Refresh(ctx)

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				logger.Log.Info("Stopping gRPC health server...")
				c.server.Shutdown()
				srv.GracefulStop()
				return
			case <-ticker.C:
				c.Refresh(ctx)
			}
		}
	}()

	logger.Log.Infow("Starting gRPC health server", "address", addr)

	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
