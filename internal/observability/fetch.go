package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/PetoAdam/homenavi/weather-widget/internal/models"
	"github.com/PetoAdam/homenavi/weather-widget/internal/visualcrossing"
)

type Fetcher interface {
	Fetch(ctx context.Context, location string) (models.RawWeatherResponse, error)
}

type instrumentedFetcher struct {
	next Fetcher
}

// InstrumentFetcher counts and times every provider fetch and wraps it in a
// span.
func InstrumentFetcher(next Fetcher) Fetcher {
	return instrumentedFetcher{next: next}
}

func (f instrumentedFetcher) Fetch(ctx context.Context, location string) (models.RawWeatherResponse, error) {
	ctx, span := otel.Tracer("weather-widget").Start(ctx, "visualcrossing.fetch")
	defer span.End()
	span.SetAttributes(attribute.String("weather.location", location))

	start := time.Now()
	raw, err := f.next.Fetch(ctx, location)
	fetchDuration.Observe(time.Since(start).Seconds())

	outcome := FetchOutcome(err)
	fetchCounter.WithLabelValues(outcome).Inc()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
	}
	return raw, err
}

// FetchOutcome labels a fetch result: ok, transport, network, decode or
// unknown.
func FetchOutcome(err error) string {
	if err == nil {
		return "ok"
	}
	if kind, ok := visualcrossing.KindOf(err); ok {
		return string(kind)
	}
	return "unknown"
}
