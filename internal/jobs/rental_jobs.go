package jobs

import (
	"context"
	"errors"

	"filmrental-backend/internal/domain"
	"filmrental-backend/internal/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type overdueReport struct {
	Count        int
	TotalLateFee decimal.Decimal
}

// ReportOverdueRentals logs every unreturned rental past its return date with
// the late fee it would be charged right now.
func (jr *JobRunner) ReportOverdueRentals() {
	jr.runWithRecovery("ReportOverdueRentals", func() {
		report, err := jr.reportOverdueRentals(context.Background())
		if err != nil {
			logger.Error("Failed to report overdue rentals", "error", err)
			return
		}
		logger.Info("Overdue rentals reported", "count", report.Count, "total_late_fee", report.TotalLateFee.StringFixed(2))
	})
}

func (jr *JobRunner) reportOverdueRentals(ctx context.Context) (overdueReport, error) {
	report := overdueReport{TotalLateFee: decimal.Zero}

	rentals, err := jr.services.Rental.GetOverdueRentals(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		return report, nil
	}
	if err != nil {
		return report, err
	}

	for _, rental := range rentals {
		fee, err := jr.services.Rental.CalculateLateFee(ctx, rental.ID)
		if err != nil {
			logger.Error("Failed to calculate late fee", "rental_id", rental.ID, "error", err)
			continue
		}
		report.Count++
		report.TotalLateFee = report.TotalLateFee.Add(fee)
		logger.Debug("Overdue rental",
			"rental_id", rental.ID,
			"customer_id", rental.CustomerID,
			"return_date", rental.ReturnDate,
			"late_fee", fee.StringFixed(2))
	}
	return report, nil
}

// CheckUnpaidOverdue warns about every customer holding a rental past its
// return date that has no payment recorded.
func (jr *JobRunner) CheckUnpaidOverdue() {
	jr.runWithRecovery("CheckUnpaidOverdue", func() {
		flagged, err := jr.checkUnpaidOverdue(context.Background())
		if err != nil {
			logger.Error("Failed to check unpaid overdue rentals", "error", err)
			return
		}
		logger.Info("Unpaid overdue check finished", "customers_flagged", len(flagged))
	})
}

func (jr *JobRunner) checkUnpaidOverdue(ctx context.Context) ([]uuid.UUID, error) {
	rentals, err := jr.services.Rental.GetAllRentals(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]bool)
	var flagged []uuid.UUID
	for _, rental := range rentals {
		if seen[rental.CustomerID] {
			continue
		}
		seen[rental.CustomerID] = true

		unpaid, err := jr.services.Rental.HasUnpaidOverdueRentals(ctx, rental.CustomerID)
		if err != nil {
			logger.Error("Failed to check customer", "customer_id", rental.CustomerID, "error", err)
			continue
		}
		if unpaid {
			logger.Warn("Customer has unpaid overdue rentals", "customer_id", rental.CustomerID)
			flagged = append(flagged, rental.CustomerID)
		}
	}
	return flagged, nil
}
