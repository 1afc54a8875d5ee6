package notification

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	notiftypes "seventyFiveHardAPI/internal/types/notification"
)

type FCMService struct {
	client *messaging.Client
}

// NewFCMService initializes the FCM client. It first attempts to use
// credentials from the FIREBASE_SERVICE_ACCOUNT_JSON environment variable
// (Base64 encoded), falling back to a local service account key file.
func NewFCMService(localFilePath string) (*FCMService, error) {
	var opt option.ClientOption

	encodedCreds := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON")
	if encodedCreds != "" {
		decoded, err := base64.StdEncoding.DecodeString(encodedCreds)
		if err != nil {
			return nil, fmt.Errorf("failed to decode base64 firebase credentials: %v", err)
		}
		opt = option.WithCredentialsJSON(decoded)
		log.Println("FCM Service: Initializing from FIREBASE_SERVICE_ACCOUNT_JSON environment variable.")
	} else {
		if _, err := os.Stat(localFilePath); os.IsNotExist(err) {
			return nil, fmt.Errorf("local firebase file not found: %s, and FIREBASE_SERVICE_ACCOUNT_JSON environment variable is not set", localFilePath)
		}
		opt = option.WithCredentialsFile(localFilePath)
		log.Printf("FCM Service: Initializing from local file: %s.", localFilePath)
	}

	app, err := firebase.NewApp(context.Background(), nil, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %v", err)
	}

	client, err := app.Messaging(context.Background())
	if err != nil {
		return nil, fmt.Errorf("error getting messaging client: %v", err)
	}

	return &FCMService{client: client}, nil
}

// SendPush delivers one message per registered device. Failures are
// counted and logged; a partial failure is not an error.
func (s *FCMService) SendPush(ctx context.Context, tokens []*notiftypes.DeviceToken, title, body string, data map[string]string) error {
	if len(tokens) == 0 {
		return nil
	}

	successCount := 0
	failureCount := 0

	for _, t := range tokens {
		message := &messaging.Message{
			Token: t.Token,
			Notification: &messaging.Notification{
				Title: title,
				Body:  body,
			},
			Data: data,
			Android: &messaging.AndroidConfig{
				Priority: "high",
				Notification: &messaging.AndroidNotification{
					Sound: "default",
				},
			},
		}

		if _, err := s.client.Send(ctx, message); err != nil {
			failureCount++
			log.Printf("FCM send failed for token %s...: %v", shorten(t.Token), err)
			continue
		}
		successCount++
	}

	log.Printf("FCM push complete: %d sent, %d failed", successCount, failureCount)
	return nil
}

func shorten(token string) string {
	if len(token) > 12 {
		return token[:12]
	}
	return token
}
