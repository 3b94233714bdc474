package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/verte-zerg/typedojo/internal/game"
)

const meterName = "github.com/verte-zerg/typedojo"

// Metrics holds the game's metric instruments. It satisfies game.Observer.
type Metrics struct {
	// WordsResolved counts finished words. Use with attribute
	// attribute.String("outcome", ...).
	WordsResolved metric.Int64Counter

	// WordDuration tracks time spent on a word before it resolved.
	WordDuration metric.Float64Histogram

	LevelsCompleted metric.Int64Counter

	// Speed reports the speed reached at the last level completion.
	Speed metric.Float64Gauge

	// DroppedWrites counts stat updates discarded by a full recorder queue.
	DroppedWrites metric.Int64Counter

	// WriteErrors counts stat updates the store rejected.
	WriteErrors metric.Int64Counter
}

var wordBuckets = []float64{
	0.25, 0.5, 0.75, 1, 1.5, 2, 3, 5, 8, 13,
}

// NewMetrics creates the instruments on mp.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.WordsResolved, err = m.Int64Counter("typedojo.words.resolved",
		metric.WithDescription("Words resolved by outcome."),
	); err != nil {
		return nil, err
	}
	if met.WordDuration, err = m.Float64Histogram("typedojo.word.duration",
		metric.WithDescription("Time from word presentation to resolution."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(wordBuckets...),
	); err != nil {
		return nil, err
	}
	if met.LevelsCompleted, err = m.Int64Counter("typedojo.levels.completed",
		metric.WithDescription("Levels completed."),
	); err != nil {
		return nil, err
	}
	if met.Speed, err = m.Float64Gauge("typedojo.speed",
		metric.WithDescription("Speed after the most recent level completion."),
	); err != nil {
		return nil, err
	}
	if met.DroppedWrites, err = m.Int64Counter("typedojo.stats.dropped",
		metric.WithDescription("Word stat updates dropped because the write queue was full."),
	); err != nil {
		return nil, err
	}
	if met.WriteErrors, err = m.Int64Counter("typedojo.stats.errors",
		metric.WithDescription("Word stat updates that failed to persist."),
	); err != nil {
		return nil, err
	}
	return met, nil
}

// WordResolved records a resolved word.
func (m *Metrics) WordResolved(outcome game.Outcome, elapsed time.Duration) {
	ctx := context.Background()
	attrs := metric.WithAttributes(attribute.String("outcome", outcome.String()))
	m.WordsResolved.Add(ctx, 1, attrs)
	if elapsed > 0 {
		m.WordDuration.Record(ctx, elapsed.Seconds(), attrs)
	}
}

// LevelCompleted records a level completion and the new speed.
func (m *Metrics) LevelCompleted(level int, speed float64) {
	ctx := context.Background()
	m.LevelsCompleted.Add(ctx, 1)
	m.Speed.Record(ctx, speed, metric.WithAttributes(attribute.Int("level", level)))
}

// StatDropped is suitable as a recorder drop hook.
func (m *Metrics) StatDropped(string) {
	m.DroppedWrites.Add(context.Background(), 1)
}

// StatFailed is suitable as a recorder error hook.
func (m *Metrics) StatFailed(string, error) {
	m.WriteErrors.Add(context.Background(), 1)
}
