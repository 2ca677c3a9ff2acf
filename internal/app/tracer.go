package app

import (
	"context"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-task-store/internal/metrics"
)

type queryStartKey struct{}

type queryStart struct {
	sql string
	at  time.Time
}

// queryTracer times every statement sent through the pool and reports
// the ones exceeding slowThreshold.
type queryTracer struct {
	logger        zerolog.Logger
	slowThreshold time.Duration
}

func newQueryTracer(logger zerolog.Logger, slowThreshold time.Duration) *queryTracer {
	return &queryTracer{
		logger:        logger,
		slowThreshold: slowThreshold,
	}
}

func (t *queryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, queryStartKey{}, queryStart{
		sql: data.SQL,
		at:  time.Now(),
	})
}

func (t *queryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	start, ok := ctx.Value(queryStartKey{}).(queryStart)
	if !ok {
		return
	}

	elapsed := time.Since(start.at)
	metrics.RecordDBQueryDuration(queryCommand(start.sql), elapsed)

	if t.slowThreshold > 0 && elapsed > t.slowThreshold {
		metrics.IncrementSlowQuery()
		t.logger.Warn().
			Str("sql", strings.Join(strings.Fields(start.sql), " ")).
			Dur("elapsed", elapsed).
			Err(data.Err).
			Msg("slow query")
	}
}

// queryCommand returns the leading SQL keyword, lowercased.
func queryCommand(sql string) string {
	fields := strings.Fields(sql)
	if len(fields) == 0 {
		return "unknown"
	}
	return strings.ToLower(fields[0])
}
