package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_AcceptsPlainDateAndTimestamp(t *testing.T) {
	var req CreateDebtCreditRequest
	require.NoError(t, json.Unmarshal([]byte(`{"due_date":"2026-10-20"}`), &req))
	require.NotNil(t, req.DueDate)
	assert.Equal(t, time.Date(2026, 10, 20, 0, 0, 0, 0, time.Local), req.DueDate.Time)

	require.NoError(t, json.Unmarshal([]byte(`{"due_date":"2026-10-20T08:30:00Z"}`), &req))
	assert.True(t, req.DueDate.Equal(time.Date(2026, 10, 20, 8, 30, 0, 0, time.UTC)))

	var exp CreateExpenseRequest
	require.NoError(t, json.Unmarshal([]byte(`{"expense_date":null}`), &exp))
	assert.Nil(t, exp.ExpenseDate.TimePtr())
}

func TestDate_RejectsGarbage(t *testing.T) {
	for _, raw := range []string{`{"due_date":"20/10/2026"}`, `{"due_date":1760918400}`} {
		var req CreateDebtCreditRequest
		assert.Error(t, json.Unmarshal([]byte(raw), &req), raw)
	}
}
