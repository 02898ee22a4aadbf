// Package telemetry bootstraps tracing and metrics for the gophershop
// binaries: an OTLP/HTTP trace exporter when a collector endpoint is
// configured, W3C propagation, and a prometheus registry that can be served
// on /metrics.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophershop/internal/logging"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

type Options struct {
	ServiceName  string
	OTLPEndpoint string
	MetricsAddr  string
}

// Telemetry owns the providers started by Setup.
type Telemetry struct {
	Registry       *prometheus.Registry
	TracerProvider *sdktrace.TracerProvider

	log        logging.Logger
	metricsSrv *http.Server
	metricsLn  net.Listener
}

// Setup installs the global propagator, and the global tracer provider when
// opts.OTLPEndpoint is set. With opts.MetricsAddr set, the registry is served
// on http://<addr>/metrics until Shutdown.
func Setup(ctx context.Context, opts Options, log logging.Logger) (*Telemetry, error) {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	t := &Telemetry{Registry: reg, log: log}

	if opts.OTLPEndpoint != "" {
		tp, err := newTracerProvider(ctx, opts)
		if err != nil {
			return nil, err
		}
		otel.SetTracerProvider(tp)
		t.TracerProvider = tp
		log.Info(ctx, "tracing enabled", "endpoint", opts.OTLPEndpoint)
	}

	if opts.MetricsAddr != "" {
		if err := t.serveMetrics(opts.MetricsAddr); err != nil {
			_ = t.Shutdown(ctx)
			return nil, err
		}
		log.Info(ctx, "metrics endpoint started", "addr", t.MetricsAddr())
	}
	return t, nil
}

func newTracerProvider(ctx context.Context, opts Options) (*sdktrace.TracerProvider, error) {
	res, err := resource.New(ctx,
		resource.WithAttributes(attribute.String("service.name", opts.ServiceName)),
		resource.WithFromEnv(),
		resource.WithTelemetrySDK(),
		resource.WithHost(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	var exporter *otlptrace.Exporter
	if strings.Contains(opts.OTLPEndpoint, "://") {
		exporter, err = otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(opts.OTLPEndpoint))
	} else {
		exporter, err = otlptracehttp.New(ctx, otlptracehttp.WithEndpoint(opts.OTLPEndpoint), otlptracehttp.WithInsecure())
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.AlwaysSample())),
	), nil
}

// MetricsHandler exposes the registry in the prometheus text format.
func (t *Telemetry) MetricsHandler() http.Handler {
	return promhttp.HandlerFor(t.Registry, promhttp.HandlerOpts{Registry: t.Registry})
}

// MetricsAddr returns the bound metrics address, or "" when not serving.
func (t *Telemetry) MetricsAddr() string {
	if t.metricsLn == nil {
		return ""
	}
	return t.metricsLn.Addr().String()
}

func (t *Telemetry) serveMetrics(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("metrics listen error: %w", err)
	}

	r := chi.NewRouter()
	r.Get("/metrics", t.MetricsHandler().ServeHTTP)

	t.metricsLn = ln
	t.metricsSrv = &http.Server{Handler: r, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := t.metricsSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			t.log.Error(context.Background(), "metrics server stopped", "error", err)
		}
	}()
	return nil
}

// Shutdown stops the metrics server and flushes pending spans.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error
	if t.metricsSrv != nil {
		errs = append(errs, t.metricsSrv.Shutdown(ctx))
	}
	if t.TracerProvider != nil {
		errs = append(errs, t.TracerProvider.Shutdown(ctx))
	}
	return errors.Join(errs...)
}
