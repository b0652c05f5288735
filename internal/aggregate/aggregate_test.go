package aggregate

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/models"
)

func TestSummarize(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	at := func(d time.Duration) *time.Time {
		v := now.Add(d)
		return &v
	}
	dec := decimal.RequireFromString

	tests := []struct {
		name       string
		batches    []Batch
		threshold  decimal.Decimal
		wantTotal  string
		wantStatus models.ItemStatus
		wantNext   *time.Time
	}{
		{
			name:       "no batches is critical",
			threshold:  decimal.Zero,
			wantTotal:  "0",
			wantStatus: models.StatusCritical,
		},
		{
			name: "sums fractional quantities exactly",
			batches: []Batch{
				{Quantity: dec("0.1")},
				{Quantity: dec("0.2")},
			},
			threshold:  decimal.Zero,
			wantTotal:  "0.3",
			wantStatus: models.StatusGood,
		},
		{
			name: "deleted batches do not count",
			batches: []Batch{
				{Quantity: dec("2")},
				{Quantity: dec("5"), Deleted: true},
			},
			threshold:  decimal.Zero,
			wantTotal:  "2",
			wantStatus: models.StatusGood,
		},
		{
			name: "at threshold is warning",
			batches: []Batch{
				{Quantity: dec("1")},
			},
			threshold:  dec("1"),
			wantTotal:  "1",
			wantStatus: models.StatusWarning,
		},
		{
			name: "expiring soon is warning and reports earliest expiry",
			batches: []Batch{
				{Quantity: dec("2"), ExpiryDate: at(10 * 24 * time.Hour)},
				{Quantity: dec("1"), ExpiryDate: at(24 * time.Hour)},
			},
			threshold:  decimal.Zero,
			wantTotal:  "3",
			wantStatus: models.StatusWarning,
			wantNext:   at(24 * time.Hour),
		},
		{
			name: "expired stock is critical",
			batches: []Batch{
				{Quantity: dec("2"), ExpiryDate: at(-time.Hour)},
				{Quantity: dec("4")},
			},
			threshold:  decimal.Zero,
			wantTotal:  "6",
			wantStatus: models.StatusCritical,
			wantNext:   at(-time.Hour),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summarize(tt.batches, tt.threshold, now)
			if !got.TotalQuantity.Equal(dec(tt.wantTotal)) {
				t.Errorf("total = %s, want %s", got.TotalQuantity, tt.wantTotal)
			}
			if got.Status != tt.wantStatus {
				t.Errorf("status = %s, want %s", got.Status, tt.wantStatus)
			}
			switch {
			case tt.wantNext == nil && got.NextExpiry != nil:
				t.Errorf("next expiry = %v, want none", got.NextExpiry)
			case tt.wantNext != nil && (got.NextExpiry == nil || !got.NextExpiry.Equal(*tt.wantNext)):
				t.Errorf("next expiry = %v, want %v", got.NextExpiry, tt.wantNext)
			}
		})
	}
}

func TestBatchStatus(t *testing.T) {
	now := time.Now()
	soon := now.Add(time.Hour)
	later := now.Add(30 * 24 * time.Hour)
	past := now.Add(-time.Hour)

	if got := BatchStatus(nil, now); got != models.StatusGood {
		t.Errorf("no expiry: got %s", got)
	}
	if got := BatchStatus(&soon, now); got != models.StatusWarning {
		t.Errorf("soon: got %s", got)
	}
	if got := BatchStatus(&later, now); got != models.StatusGood {
		t.Errorf("later: got %s", got)
	}
	if got := BatchStatus(&past, now); got != models.StatusCritical {
		t.Errorf("past: got %s", got)
	}
}
