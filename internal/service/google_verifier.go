package service

import (
	"context"

	"github.com/imarb51/Vetro-Quiz/config"
	"github.com/imarb51/Vetro-Quiz/internal/apperror"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/idtoken"
)

// GoogleClaims is what the Auth Gate needs from a verified Google assertion.
type GoogleClaims struct {
	Subject string
	Email   string
	Name    string
}

// GoogleVerifier validates a Google ID token and extracts the holder's
// identity. Kept as an interface so auth tests can substitute a fake.
type GoogleVerifier interface {
	Verify(ctx context.Context, rawToken string) (*GoogleClaims, error)
}

type googleVerifier struct {
	clientID string
}

func NewGoogleVerifier(cfg *config.Config) GoogleVerifier {
	return &googleVerifier{clientID: cfg.Google.ClientID}
}

// Verify checks the token signature against Google's published keys, the
// audience, and expiry, and requires a verified email address.
func (v *googleVerifier) Verify(ctx context.Context, rawToken string) (*GoogleClaims, error) {
	payload, err := idtoken.Validate(ctx, rawToken, v.clientID)
	if err != nil {
		log.Warn().Err(err).Msg("Google ID token validation failed")
		return nil, apperror.ErrInvalidAssertion
	}

	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	verified, _ := payload.Claims["email_verified"].(bool)

	if email == "" || !verified {
		log.Warn().Str("sub", payload.Subject).Msg("Google token has no verified email")
		return nil, apperror.ErrInvalidAssertion
	}

	return &GoogleClaims{
		Subject: payload.Subject,
		Email:   email,
		Name:    name,
	}, nil
}
