package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPage(t *testing.T) {
	tests := []struct {
		name      string
		size      int
		total     int64
		wantPages int
	}{
		{"empty", 10, 0, 0},
		{"exact", 10, 20, 2},
		{"partial last page", 10, 25, 3},
		{"zero size", 0, 25, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPage[int](nil, 0, tt.size, tt.total)
			assert.Equal(t, tt.wantPages, p.TotalPages)
			assert.NotNil(t, p.Content, "content should encode as [] rather than null")
		})
	}
}

func TestDateJSON(t *testing.T) {
	d := NewDate(2026, time.March, 7)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2026-03-07"`, string(data))

	var back Date
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, d.String(), back.String())

	require.NoError(t, json.Unmarshal([]byte(`null`), &back))
	assert.True(t, back.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`"07/03/2026"`), &back))
}

func TestDateAfter(t *testing.T) {
	today := NewDate(2026, time.October, 18)
	assert.True(t, NewDate(2026, time.October, 19).After(today))
	assert.False(t, today.After(today))
	assert.False(t, NewDate(2025, time.December, 31).After(today))
}

func TestExpenseAmountEncodesAsNumber(t *testing.T) {
	e := ExpenseRequest{Amount: decimal.RequireFromString("42.50"), CategoryID: 3, Date: NewDate(2026, time.January, 2)}

	data, err := json.Marshal(e)
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":42.5,"categoryId":3,"date":"2026-01-02"}`, string(data))
}
