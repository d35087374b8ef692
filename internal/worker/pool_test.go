package worker

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"tokopos/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeJob(t *testing.T) {
	raw, err := encodeJob(JobStockAlert, StockAlertPayload{ProductID: 42}, 2)
	require.NoError(t, err)

	var job Job
	require.NoError(t, json.Unmarshal(raw, &job))
	assert.Equal(t, JobStockAlert, job.Type)
	assert.Equal(t, 2, job.Attempts)
	assert.JSONEq(t, `{"product_id":42}`, string(job.Payload))
}

type stubReconciler struct {
	report *dto.ReconcileResponse
	err    error
	calls  int
}

func (s *stubReconciler) Reconcile(context.Context) (*dto.ReconcileResponse, error) {
	s.calls++
	return s.report, s.err
}

func TestRunReconcile_WithoutRedis(t *testing.T) {
	r := &stubReconciler{report: &dto.ReconcileResponse{
		Consistent: false,
		Mismatches: []dto.StockMismatch{{ProductID: 1, StockQuantity: 4, MovementSum: 1, Drift: 3}},
	}}
	runReconcile(context.Background(), ReconcileCronConfig{Reconciler: r})
	assert.Equal(t, 1, r.calls)

	r.err = errors.New("db down")
	runReconcile(context.Background(), ReconcileCronConfig{Reconciler: r})
	assert.Equal(t, 2, r.calls)
}

func TestStartReconcileCron_ZeroIntervalDisabled(t *testing.T) {
	r := &stubReconciler{report: &dto.ReconcileResponse{Consistent: true}}
	StartReconcileCron(context.Background(), ReconcileCronConfig{Reconciler: r})
	time.Sleep(20 * time.Millisecond)
	assert.Zero(t, r.calls)
}

func TestNewDLQEntry_CarriesProductID(t *testing.T) {
	raw, err := encodeJob(JobStockAlert, StockAlertPayload{ProductID: 42}, 3)
	require.NoError(t, err)
	var job Job
	require.NoError(t, json.Unmarshal(raw, &job))

	entry := newDLQEntry(QueueStockAlert, job, "boom")
	assert.Equal(t, int64(42), entry.ProductID)
	assert.Equal(t, 3, entry.Job.Attempts)
	assert.Equal(t, "boom", entry.Reason)

	other := newDLQEntry(QueueStockAlert, Job{Type: "unknown", Payload: json.RawMessage(`"{not json"`)}, "malformed")
	assert.Zero(t, other.ProductID)
}
