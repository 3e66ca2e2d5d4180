package service

import (
	"context"
	"fmt"

	"hess-portal-backend/internal/logger"

	"firebase.google.com/go/v4/auth"
)

// firebaseIdentityService adapts the Firebase Admin SDK auth client to the
// IdentityService interface.
type firebaseIdentityService struct {
	client *auth.Client
}

func NewFirebaseIdentityService(client *auth.Client) IdentityService {
	return &firebaseIdentityService{client: client}
}

func (s *firebaseIdentityService) CreateUser(ctx context.Context, email, displayName string) (string, error) {
	params := (&auth.UserToCreate{}).
		Email(email).
		DisplayName(displayName).
		EmailVerified(false)

	logger.ExternalServiceCall("firebase", "CreateUser", "email", email)
	record, err := s.client.CreateUser(ctx, params)
	logger.ExternalServiceResult("firebase", "CreateUser", err, "email", email)
	if err != nil {
		return "", fmt.Errorf("failed to create auth user: %w", err)
	}
	return record.UID, nil
}

func (s *firebaseIdentityService) DeleteUser(ctx context.Context, uid string) error {
	logger.ExternalServiceCall("firebase", "DeleteUser", "uid", uid)
	err := s.client.DeleteUser(ctx, uid)
	logger.ExternalServiceResult("firebase", "DeleteUser", err, "uid", uid)
	if err != nil {
		if auth.IsUserNotFound(err) {
			// Already gone; the cascade treats this as done.
			return nil
		}
		return fmt.Errorf("failed to delete auth user: %w", err)
	}
	return nil
}

func (s *firebaseIdentityService) UpdateUserEmail(ctx context.Context, uid, email string) error {
	params := (&auth.UserToUpdate{}).Email(email).EmailVerified(false)
	_, err := s.client.UpdateUser(ctx, uid, params)
	if err != nil {
		return fmt.Errorf("failed to update auth user email: %w", err)
	}
	return nil
}

func (s *firebaseIdentityService) PasswordResetLink(ctx context.Context, email string) (string, error) {
	link, err := s.client.PasswordResetLink(ctx, email)
	if err != nil {
		return "", fmt.Errorf("failed to generate password reset link: %w", err)
	}
	return link, nil
}

func (s *firebaseIdentityService) VerifyIDToken(ctx context.Context, idToken string) (*IdentityClaims, error) {
	token, err := s.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("failed to verify id token: %w", err)
	}

	claims := &IdentityClaims{UID: token.UID}
	if email, ok := token.Claims["email"].(string); ok {
		claims.Email = email
	}
	if admin, ok := token.Claims["admin"].(bool); ok {
		claims.Admin = admin
	}
	return claims, nil
}
