// Package aggregate computes the derived item fields from batch records:
// total quantity, stock status and next expiry.
//
// This is server-side logic. The client never calls it on data it is about
// to send or display; it exists for the in-memory backend that stands in for
// the remote store.
package aggregate

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/models"
)

// ExpiryWarningWindow is how close to expiry a batch is flagged as warning.
const ExpiryWarningWindow = 72 * time.Hour

// Batch is the minimal batch information needed for aggregation.
type Batch struct {
	Quantity   decimal.Decimal
	ExpiryDate *time.Time
	Deleted    bool
}

// Summary is the aggregate view of one item.
type Summary struct {
	TotalQuantity decimal.Decimal
	Status        models.ItemStatus
	NextExpiry    *time.Time
}

// BatchStatus grades a single batch by its expiry date.
func BatchStatus(expiry *time.Time, now time.Time) models.ItemStatus {
	switch {
	case expiry == nil:
		return models.StatusGood
	case !expiry.After(now):
		return models.StatusCritical
	case expiry.Sub(now) <= ExpiryWarningWindow:
		return models.StatusWarning
	default:
		return models.StatusGood
	}
}

// Summarize aggregates the non-deleted batches of an item.
//
// Algorithm:
//   - total = sum of quantities of non-deleted batches
//   - next expiry = earliest expiry among non-deleted batches with stock
//   - status = critical when total <= 0 or a stocked batch has expired,
//     warning when total <= threshold or a stocked batch expires within
//     ExpiryWarningWindow, good otherwise
func Summarize(batches []Batch, threshold decimal.Decimal, now time.Time) Summary {
	total := decimal.Zero
	var next *time.Time
	worst := models.StatusGood

	for _, b := range batches {
		if b.Deleted {
			continue
		}
		total = total.Add(b.Quantity)

		if !b.Quantity.IsPositive() || b.ExpiryDate == nil {
			continue
		}
		if next == nil || b.ExpiryDate.Before(*next) {
			exp := *b.ExpiryDate
			next = &exp
		}
		worst = worse(worst, BatchStatus(b.ExpiryDate, now))
	}

	switch {
	case !total.IsPositive():
		worst = models.StatusCritical
	case total.LessThanOrEqual(threshold):
		worst = worse(worst, models.StatusWarning)
	}

	return Summary{TotalQuantity: total, Status: worst, NextExpiry: next}
}

func worse(a, b models.ItemStatus) models.ItemStatus {
	if rank(b) > rank(a) {
		return b
	}
	return a
}

func rank(s models.ItemStatus) int {
	switch s {
	case models.StatusCritical:
		return 2
	case models.StatusWarning:
		return 1
	default:
		return 0
	}
}
