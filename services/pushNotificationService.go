package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/PrayNoel/initializers"
	"github.com/PrayNoel/models"
	"github.com/doug-martin/goqu/v9"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

type PushNotificationService struct {
	fcmClient *messaging.Client
}

type NotificationPayload struct {
	Title    string            `json:"title"`
	Body     string            `json:"body"`
	Data     map[string]string `json:"data,omitempty"`
	Sound    string            `json:"sound,omitempty"`
	Badge    string            `json:"badge,omitempty"`
	Priority string            `json:"priority,omitempty"`
}

var pushService *PushNotificationService

func InitPushNotificationService() {
	serviceAccountPath := initializers.Config.FirebaseServiceAccountPath
	if serviceAccountPath == "" {
		initializers.Log.Warn("FIREBASE_SERVICE_ACCOUNT_PATH not set, push notifications are disabled")
		return
	}

	ctx := context.Background()
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(serviceAccountPath))
	if err != nil {
		initializers.Log.WithError(err).Error("failed to initialize Firebase app")
		return
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		initializers.Log.WithError(err).Error("failed to get Firebase messaging client")
		return
	}

	pushService = &PushNotificationService{fcmClient: client}
	initializers.Log.Info("push notification service initialized with FCM")
}

// GetPushNotificationService returns nil when push is not configured.
func GetPushNotificationService() *PushNotificationService {
	return pushService
}

func (s *PushNotificationService) SendNotificationToUser(ctx context.Context, userID int, payload NotificationPayload) error {
	var tokens []models.PushToken
	err := initializers.DB.From("user_push_tokens").
		Where(goqu.C("user_profile_id").Eq(userID)).
		ScanStructsContext(ctx, &tokens)
	if err != nil {
		return fmt.Errorf("failed to get push tokens for user %d: %w", userID, err)
	}

	if len(tokens) == 0 {
		return nil
	}

	for _, token := range tokens {
		if err := s.sendToToken(ctx, token, payload); err != nil {
			initializers.Log.WithError(err).WithFields(logrus.Fields{
				"user_profile_id": userID,
				"platform":        token.Platform,
			}).Warn("push delivery failed")
		}
	}

	return nil
}

// buildMessage shapes an FCM message for the token's platform.
func buildMessage(pushToken models.PushToken, payload NotificationPayload) *messaging.Message {
	message := &messaging.Message{
		Token: pushToken.Push_Token,
		Notification: &messaging.Notification{
			Title: payload.Title,
			Body:  payload.Body,
		},
		Data: payload.Data,
	}

	switch pushToken.Platform {
	case "ios":
		message.APNS = &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Alert: &messaging.ApsAlert{
						Title: payload.Title,
						Body:  payload.Body,
					},
					Sound: payload.Sound,
				},
			},
		}

		if payload.Badge != "" {
			if badgeNum, err := strconv.Atoi(payload.Badge); err == nil {
				message.APNS.Payload.Aps.Badge = &badgeNum
			}
		}

		if payload.Priority == "high" {
			message.APNS.Headers = map[string]string{"apns-priority": "10"}
		}
	case "android":
		message.Android = &messaging.AndroidConfig{
			Priority: "normal",
			Notification: &messaging.AndroidNotification{
				Title: payload.Title,
				Body:  payload.Body,
				Sound: payload.Sound,
			},
		}

		if payload.Priority == "high" {
			message.Android.Priority = "high"
		}
	}

	return message
}

func (s *PushNotificationService) sendToToken(ctx context.Context, pushToken models.PushToken, payload NotificationPayload) error {
	if s.fcmClient == nil {
		return fmt.Errorf("FCM client not initialized")
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	response, err := s.fcmClient.Send(ctx, buildMessage(pushToken, payload))
	if err != nil {
		return fmt.Errorf("failed to send FCM message: %w", err)
	}

	initializers.Log.WithField("message_id", response).Debug("FCM notification sent")
	return nil
}
