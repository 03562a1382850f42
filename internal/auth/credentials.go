package auth

import (
	"context"
	"crypto/subtle"
	"fmt"

	"github.com/spec-kit/eventhub/internal/config"
	"github.com/spec-kit/eventhub/internal/domain"
	apperrors "github.com/spec-kit/eventhub/pkg/util/errorutil"
)

// CredentialVerifier is the single seam between the session state machine
// and whatever decides that a credential is good. Swap it for a real
// identity provider without touching SessionGuard.
type CredentialVerifier interface {
	VerifyUserCredential(ctx context.Context, email, code string) error
	VerifyAdminCredential(ctx context.Context, email, password string) error
}

// RegistrationLookup is the slice of RegistrationRepository the demo verifier needs.
type RegistrationLookup interface {
	FindByEmail(ctx context.Context, email string) (*domain.Registration, error)
}

// DemoVerifier accepts the fixed demo one-time code for registered emails and
// a single configured admin account.
type DemoVerifier struct {
	registrations RegistrationLookup
	otp           string
	adminEmail    string
	adminHash     string
}

// NewDemoVerifier hashes the configured admin password once at startup.
func NewDemoVerifier(cfg config.AuthConfig, registrations RegistrationLookup) (*DemoVerifier, error) {
	hash, err := HashPassword(cfg.AdminPassword, cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}
	return &DemoVerifier{
		registrations: registrations,
		otp:           cfg.DemoOTP,
		adminEmail:    cfg.AdminEmail,
		adminHash:     hash,
	}, nil
}

func (v *DemoVerifier) VerifyUserCredential(ctx context.Context, email, code string) error {
	reg, err := v.registrations.FindByEmail(ctx, email)
	if err != nil {
		if apperrors.HasCode(err, apperrors.CodeNotFound) {
			return apperrors.NewCredentialError()
		}
		return err
	}
	if subtle.ConstantTimeCompare([]byte(code), []byte(v.otp)) != 1 {
		return apperrors.NewCredentialError()
	}
	if reg.Status == domain.StatusBlocked {
		return apperrors.NewForbidden("this registration has been blocked")
	}
	return nil
}

func (v *DemoVerifier) VerifyAdminCredential(_ context.Context, email, password string) error {
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(v.adminEmail)) == 1
	passwordOK := ComparePassword(v.adminHash, password) == nil
	if !emailOK || !passwordOK {
		return apperrors.NewCredentialError()
	}
	return nil
}
