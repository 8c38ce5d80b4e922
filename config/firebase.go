package config

import (
	"context"
	"encoding/base64"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// InitFirebase initializes the Firebase Admin SDK. It returns a nil app when
// no project or credentials are configured.
func InitFirebase(ctx context.Context, cfg *Config) (*firebase.App, error) {
	if cfg.FirebaseProjectID == "" {
		return nil, nil
	}

	var opt option.ClientOption
	switch {
	case cfg.FirebaseCredentials != "":
		zap.S().Info("Using Firebase credentials from base64 environment variable")
		decoded, err := base64.StdEncoding.DecodeString(cfg.FirebaseCredentials)
		if err != nil {
			return nil, fmt.Errorf("decoding base64 credentials: %w", err)
		}
		opt = option.WithCredentialsJSON(decoded)
	case cfg.FirebaseCredFile != "":
		zap.S().Infof("Using Firebase credentials file: %s", cfg.FirebaseCredFile)
		opt = option.WithCredentialsFile(cfg.FirebaseCredFile)
	default:
		return nil, fmt.Errorf("FIREBASE_PROJECT_ID set without FIREBASE_CREDENTIALS_BASE64 or GOOGLE_APPLICATION_CREDENTIALS")
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.FirebaseProjectID}, opt)
	if err != nil {
		return nil, fmt.Errorf("initializing firebase app: %w", err)
	}
	return app, nil
}
