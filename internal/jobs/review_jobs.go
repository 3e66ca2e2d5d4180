package jobs

import (
	"context"
	"strconv"

	"hess-portal-backend/internal/domain"
	"hess-portal-backend/internal/logger"
	"hess-portal-backend/internal/service"
)

// SendPendingReviewReminders emails the consortium admin a daily count of
// submissions waiting for review. Skipped entirely when nothing is pending.
func (jr *JobRunner) SendPendingReviewReminders() {
	jr.runWithRecovery("SendPendingReviewReminders", func() {
		ctx := context.Background()

		updateCount, err := jr.store.UpdateRequestRepository.CountByStatus(ctx, domain.RequestStatusPending)
		if err != nil {
			logger.Error("Failed to count pending update requests", "error", err)
			return
		}
		pendingCount, err := jr.store.PendingRegistrationRepository.CountByStatus(ctx, domain.RequestStatusPending)
		if err != nil {
			logger.Error("Failed to count pending registrations", "error", err)
			return
		}

		if updateCount == 0 && pendingCount == 0 {
			logger.Debug("No pending items, skipping reminder")
			return
		}

		adminEmail := jr.config.SendGrid.AdminEmail
		if adminEmail == "" {
			logger.Warn("No admin email configured, skipping reminder")
			return
		}

		err = jr.emailSvc.Send(ctx, service.EmailTypePendingReviewReminder, adminEmail, map[string]string{
			"update_requests":       strconv.FormatInt(updateCount, 10),
			"pending_registrations": strconv.FormatInt(pendingCount, 10),
		})
		if err != nil {
			logger.Error("Failed to send pending review reminder", "error", err)
			return
		}
		logger.Info("Sent pending review reminder", "update_requests", updateCount, "pending_registrations", pendingCount)
	})
}
