package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordTaskOperation(t *testing.T) {
	before := testutil.ToFloat64(TaskOperations.WithLabelValues(OpCreate, ResultOK))

	RecordTaskOperation(OpCreate, ResultOK, 3*time.Millisecond)
	RecordTaskOperation(OpCreate, ResultOK, time.Millisecond)

	after := testutil.ToFloat64(TaskOperations.WithLabelValues(OpCreate, ResultOK))
	if after-before != 2 {
		t.Fatalf("expected counter to grow by 2, grew by %v", after-before)
	}
}

func TestIncrementSlowQuery(t *testing.T) {
	before := testutil.ToFloat64(DBSlowQueries)
	IncrementSlowQuery()
	if got := testutil.ToFloat64(DBSlowQueries); got-before != 1 {
		t.Fatalf("expected slow query counter to grow by 1, grew by %v", got-before)
	}
}
