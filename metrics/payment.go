package metrics

import (
	"context"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	ATTEMPT_TTL = time.Minute * 30
)

type PaymentMetrics struct {
	opts metric.MeasurementOption

	attemptCounter        metric.Int64Counter
	attemptTimeHistogram  metric.Float64Histogram
	attemptStartTimeCache *ttlcache.Cache[string, time.Time]

	quoteCounter metric.Int64Counter
}

// NewPaymentMetrics initializes metrics related to payment attempts and quotes
func NewPaymentMetrics(ctx context.Context, meter metric.Meter, opts metric.MeasurementOption) (*PaymentMetrics, error) {
	attemptCounter, err := meter.Int64Counter(
		"x402.PaymentAttempts",
		metric.WithDescription("Number of finished payment attempts by outcome"),
	)
	if err != nil {
		return nil, err
	}

	attemptTimeHistogram, err := meter.Float64Histogram(
		"x402.PaymentAttemptTime",
		metric.WithDescription("Seconds from signing request to a terminal state"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	quoteCounter, err := meter.Int64Counter(
		"x402.Quotes",
		metric.WithDescription("Number of quotes served by source"),
	)
	if err != nil {
		return nil, err
	}

	cache := ttlcache.New(
		ttlcache.WithTTL[string, time.Time](ATTEMPT_TTL),
	)
	go cache.Start()
	go func() {
		<-ctx.Done()
		cache.Stop()
	}()

	return &PaymentMetrics{
		opts:                  opts,
		attemptCounter:        attemptCounter,
		attemptTimeHistogram:  attemptTimeHistogram,
		attemptStartTimeCache: cache,
		quoteCounter:          quoteCounter,
	}, nil
}

func (m *PaymentMetrics) StartAttempt(attemptID string) {
	m.attemptStartTimeCache.Set(attemptID, time.Now(), ttlcache.DefaultTTL)
}

func (m *PaymentMetrics) EndAttempt(attemptID string, outcome string) {
	outcomeOpt := metric.WithAttributes(attribute.String("outcome", outcome))
	m.attemptCounter.Add(context.Background(), 1, m.opts, outcomeOpt)

	startTime := m.attemptStartTimeCache.Get(attemptID)
	if startTime == nil {
		log.Warn().Msgf("Attempt start time with ID %s not found", attemptID)
		return
	}
	m.attemptStartTimeCache.Delete(attemptID)

	m.attemptTimeHistogram.Record(context.Background(), time.Since(startTime.Value()).Seconds(), m.opts, outcomeOpt)
}

func (m *PaymentMetrics) TrackQuote(source string) {
	m.quoteCounter.Add(context.Background(), 1, m.opts, metric.WithAttributes(attribute.String("source", source)))
}
