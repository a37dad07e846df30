package observability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRecordError(t *testing.T) {
	metrics := NewMetrics()

	metrics.RecordError("/users", "POST", "VALIDATION_ERROR")
	metrics.RecordError("/users", "POST", "VALIDATION_ERROR")

	require.Equal(t, int64(2), metrics.ErrorCount("/users", "POST", "VALIDATION_ERROR"))
	require.Equal(t, int64(0), metrics.ErrorCount("/users", "GET", "VALIDATION_ERROR"))
}

func TestRecordRequestNilSafe(t *testing.T) {
	var metrics *Metrics
	metrics.RecordRequest("/users", "GET", 200, time.Millisecond)
	metrics.RecordError("/users", "GET", "NOT_FOUND")
	require.Equal(t, int64(0), metrics.ErrorCount("/users", "GET", "NOT_FOUND"))
}
