package services

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/PrayNoel/initializers"
	"github.com/doug-martin/goqu/v9"
	"github.com/sirupsen/logrus"
)

const (
	notificationTypePrayed = "PRAYED_FOR_REQUEST"
	prayedDebounceMinutes  = 30
	notificationTimeout    = 30 * time.Second
)

// shouldSendDebounced reports whether a notification of notifType for the
// target and entity falls outside the debounce window, claiming the window
// when it does.
func shouldSendDebounced(ctx context.Context, notifType string, targetUserID int, entityID int, windowMinutes int) bool {
	_, cleanupErr := initializers.DB.Delete("notification_debounce").
		Where(goqu.L("last_triggered_at < NOW() - INTERVAL '24 hours'")).
		Executor().ExecContext(ctx)
	if cleanupErr != nil {
		initializers.Log.WithError(cleanupErr).Warn("debounce cleanup failed")
	}

	query := `
		INSERT INTO notification_debounce (notification_type, target_user_id, entity_id, last_triggered_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (notification_type, target_user_id, entity_id)
		DO UPDATE SET last_triggered_at = NOW()
		WHERE notification_debounce.last_triggered_at < NOW() - ($4 || ' minutes')::INTERVAL
		RETURNING debounce_id
	`

	var debounceID int
	err := initializers.DB.QueryRowContext(ctx, query, notifType, targetUserID, entityID, windowMinutes).Scan(&debounceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false
		}
		initializers.Log.WithError(err).Warn("debounce check failed")
		return true
	}

	return true
}

// NotifyOwnerOfPrayer pushes a "someone prayed" notice to the request owner.
// Repeated prayers on the same request within the debounce window are folded
// into one notice.
func NotifyOwnerOfPrayer(ownerID int, requestID int, title string) {
	pushService := GetPushNotificationService()
	if pushService == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), notificationTimeout)
	defer cancel()

	if !shouldSendDebounced(ctx, notificationTypePrayed, ownerID, requestID, prayedDebounceMinutes) {
		return
	}

	payload := NotificationPayload{
		Title: "Someone prayed for your request",
		Body:  title,
		Sound: "default",
		Data: map[string]string{
			"type":            "prayed_for_request",
			"prayerRequestId": strconv.Itoa(requestID),
		},
	}

	if err := pushService.SendNotificationToUser(ctx, ownerID, payload); err != nil {
		initializers.Log.WithError(err).WithFields(logrus.Fields{
			"user_profile_id":   ownerID,
			"prayer_request_id": requestID,
		}).Warn("prayed push notification failed")
	}
}

// NotifyOwnerOfEncouragement emails the request owner the encouragement text.
func NotifyOwnerOfEncouragement(ownerID int, requestTitle string, content string) {
	mailer := GetEmailService()
	if mailer == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), notificationTimeout)
	defer cancel()

	owner, found, err := GetUserByID(ctx, ownerID)
	if err != nil || !found {
		initializers.Log.WithField("user_profile_id", ownerID).Warn("encouragement email skipped, owner not loaded")
		return
	}

	if err := mailer.SendEncouragementEmail(owner.Email, owner.Username, requestTitle, content); err != nil {
		initializers.Log.WithError(err).WithField("user_profile_id", ownerID).Warn("encouragement email failed")
	}
}

// notifyAsync runs fn in the background when the notifier is configured.
func notifyAsync(enabled bool, fn func()) {
	if !enabled {
		return
	}
	go fn()
}

func pushEnabled() bool {
	return GetPushNotificationService() != nil
}

func emailEnabled() bool {
	return GetEmailService() != nil
}
