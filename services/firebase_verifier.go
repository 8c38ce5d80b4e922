package services

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
)

// IdentityVerifier checks a client identity token and returns its email
type IdentityVerifier interface {
	VerifyEmail(ctx context.Context, idToken string) (string, error)
}

// FirebaseVerifier verifies Firebase Authentication ID tokens
type FirebaseVerifier struct {
	client *auth.Client
}

// NewFirebaseVerifier creates a verifier from an initialized app
func NewFirebaseVerifier(ctx context.Context, app *firebase.App) (*FirebaseVerifier, error) {
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase auth client: %w", err)
	}
	return &FirebaseVerifier{client: client}, nil
}

func (v *FirebaseVerifier) VerifyEmail(ctx context.Context, idToken string) (string, error) {
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	email, _ := token.Claims["email"].(string)
	if email == "" {
		return "", fmt.Errorf("%w: token has no email", ErrUnauthenticated)
	}
	return email, nil
}
