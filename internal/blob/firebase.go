package blob

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"os"

	gcs "cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

// FirebaseStorage stores progress photos in the app's Firebase Cloud
// Storage bucket.
type FirebaseStorage struct {
	bucket     *gcs.BucketHandle
	bucketName string
}

// NewFirebaseStorage initializes the storage client. Credentials come from
// the FIREBASE_SERVICE_ACCOUNT_JSON environment variable (Base64 encoded),
// falling back to a local service account key file.
func NewFirebaseStorage(ctx context.Context, localFilePath string) (*FirebaseStorage, error) {
	var opt option.ClientOption

	encodedCreds := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON")
	if encodedCreds != "" {
		decoded, err := base64.StdEncoding.DecodeString(encodedCreds)
		if err != nil {
			return nil, fmt.Errorf("failed to decode base64 firebase credentials: %v", err)
		}
		opt = option.WithCredentialsJSON(decoded)
		log.Println("Firebase Storage: Initializing from FIREBASE_SERVICE_ACCOUNT_JSON environment variable.")
	} else {
		if _, err := os.Stat(localFilePath); os.IsNotExist(err) {
			return nil, fmt.Errorf("local firebase file not found: %s, and FIREBASE_SERVICE_ACCOUNT_JSON environment variable is not set", localFilePath)
		}
		opt = option.WithCredentialsFile(localFilePath)
		log.Printf("Firebase Storage: Initializing from local file: %s.", localFilePath)
	}

	bucketName := os.Getenv("FIREBASE_STORAGE_BUCKET")
	if bucketName == "" {
		return nil, fmt.Errorf("FIREBASE_STORAGE_BUCKET environment variable is not set")
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{StorageBucket: bucketName}, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing firebase app: %v", err)
	}

	client, err := app.Storage(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting storage client: %v", err)
	}

	bucket, err := client.DefaultBucket()
	if err != nil {
		return nil, fmt.Errorf("error getting default bucket: %v", err)
	}

	return &FirebaseStorage{bucket: bucket, bucketName: bucketName}, nil
}

func (s *FirebaseStorage) Save(ctx context.Context, key, contentType string, data []byte) (*Ref, error) {
	w := s.bucket.Object(key).NewWriter(ctx)
	w.ContentType = contentType
	if _, err := w.Write(data); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to write object %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize object %s: %w", key, err)
	}

	return &Ref{
		URL: fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucketName, key),
		Key: key,
	}, nil
}

func (s *FirebaseStorage) Delete(ctx context.Context, key string) error {
	if err := s.bucket.Object(key).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete object %s: %w", key, err)
	}
	return nil
}
