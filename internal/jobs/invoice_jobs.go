package jobs

import (
	"context"
	"time"

	"hess-portal-backend/internal/logger"
)

// MarkOverdueInvoices flips open invoices past their due date to overdue.
func (jr *JobRunner) MarkOverdueInvoices() {
	jr.runWithRecovery("MarkOverdueInvoices", func() {
		ctx := context.Background()

		today := time.Now().Format("2006-01-02")
		count, err := jr.store.InvoiceRepository.MarkOverdue(ctx, today)
		if err != nil {
			logger.Error("Failed to mark overdue invoices", "error", err)
			return
		}
		if count > 0 {
			logger.Info("Marked invoices overdue", "count", count, "as_of", today)
		}
	})
}
