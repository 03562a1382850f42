package auth

import (
	"context"
	"strings"
	"sync"

	"github.com/spec-kit/eventhub/internal/domain"
	"github.com/spec-kit/eventhub/internal/persistence"
	apperrors "github.com/spec-kit/eventhub/pkg/util/errorutil"
)

// Session keys inside a client namespace.
const (
	KeyUserLoggedIn  = "userLoggedIn"
	KeyAdminLoggedIn = "adminLoggedIn"
	KeyUserEmail     = "userEmail"
)

const flagTrue = "true"

// SessionGuard tracks the user and admin authorization of one storage
// origin. Both roles move independently between logged out and logged in,
// and every transition is written through to the store so a fresh guard over
// the same namespace reconstructs the same state.
type SessionGuard struct {
	store    persistence.Store
	verifier CredentialVerifier

	mu      sync.RWMutex
	session domain.Session
}

// NewSessionGuard builds a logged-out guard. Call Initialize before use.
func NewSessionGuard(store persistence.Store, verifier CredentialVerifier) *SessionGuard {
	return &SessionGuard{store: store, verifier: verifier}
}

// Initialize loads the persisted session flags.
func (g *SessionGuard) Initialize(ctx context.Context) error {
	userFlag, _, err := g.store.Get(ctx, KeyUserLoggedIn)
	if err != nil {
		return err
	}
	adminFlag, _, err := g.store.Get(ctx, KeyAdminLoggedIn)
	if err != nil {
		return err
	}
	email, _, err := g.store.Get(ctx, KeyUserEmail)
	if err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.session = domain.Session{
		// A user flag without an email cannot scope anything; treat it as logged out.
		UserAuthenticated:  userFlag == flagTrue && email != "",
		AdminAuthenticated: adminFlag == flagTrue,
		CurrentUserEmail:   email,
	}
	return nil
}

// CheckUser validates a user credential without touching the session.
func (g *SessionGuard) CheckUser(ctx context.Context, email, code string) error {
	if strings.TrimSpace(email) == "" {
		return apperrors.NewFieldErrors(map[string]string{"email": "Please enter your email address"})
	}
	return g.verifier.VerifyUserCredential(ctx, email, code)
}

// LoginUser verifies the one-time code and marks the user role logged in.
// When the flag cannot be written the previously stored email is put back.
func (g *SessionGuard) LoginUser(ctx context.Context, email, code string) error {
	if err := g.CheckUser(ctx, email, code); err != nil {
		return err
	}
	prev := g.Session()
	if err := g.store.Set(ctx, KeyUserEmail, email); err != nil {
		return err
	}
	if err := g.store.Set(ctx, KeyUserLoggedIn, flagTrue); err != nil {
		_ = g.writeEmail(ctx, prev.CurrentUserEmail)
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.session.UserAuthenticated = true
	g.session.CurrentUserEmail = email
	return nil
}

// RestoreUser writes back the user half of a session captured with Session,
// undoing a login whose follow-up writes failed. Admin state is untouched.
func (g *SessionGuard) RestoreUser(ctx context.Context, prev domain.Session) error {
	var err error
	if prev.UserAuthenticated {
		err = g.store.Set(ctx, KeyUserLoggedIn, flagTrue)
	} else {
		err = g.store.Remove(ctx, KeyUserLoggedIn)
	}
	if err != nil {
		return err
	}
	if err := g.writeEmail(ctx, prev.CurrentUserEmail); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.session.UserAuthenticated = prev.UserAuthenticated
	g.session.CurrentUserEmail = prev.CurrentUserEmail
	return nil
}

func (g *SessionGuard) writeEmail(ctx context.Context, email string) error {
	if email == "" {
		return g.store.Remove(ctx, KeyUserEmail)
	}
	return g.store.Set(ctx, KeyUserEmail, email)
}

// LoginAdmin verifies the admin credential and marks the admin role logged in.
func (g *SessionGuard) LoginAdmin(ctx context.Context, email, password string) error {
	if err := g.verifier.VerifyAdminCredential(ctx, email, password); err != nil {
		return err
	}
	if err := g.store.Set(ctx, KeyAdminLoggedIn, flagTrue); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.session.AdminAuthenticated = true
	return nil
}

// LogoutUser clears the user flag and the current email. Admin state is
// untouched. If the email cannot be removed the flag is written back.
func (g *SessionGuard) LogoutUser(ctx context.Context) error {
	wasLoggedIn := g.IsUserAuthorized()
	if err := g.store.Remove(ctx, KeyUserLoggedIn); err != nil {
		return err
	}
	if err := g.store.Remove(ctx, KeyUserEmail); err != nil {
		if wasLoggedIn {
			_ = g.store.Set(ctx, KeyUserLoggedIn, flagTrue)
		}
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.session.UserAuthenticated = false
	g.session.CurrentUserEmail = ""
	return nil
}

// LogoutAdmin clears the admin flag. User state is untouched.
func (g *SessionGuard) LogoutAdmin(ctx context.Context) error {
	if err := g.store.Remove(ctx, KeyAdminLoggedIn); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.session.AdminAuthenticated = false
	return nil
}

// RememberEmail stores the email used to pre-fill the login form. It does
// not log anyone in, and it is ignored while a user is logged in so the
// current session keeps its own email.
func (g *SessionGuard) RememberEmail(ctx context.Context, email string) error {
	if g.IsUserAuthorized() {
		return nil
	}
	if err := g.store.Set(ctx, KeyUserEmail, email); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.session.CurrentUserEmail = email
	return nil
}

func (g *SessionGuard) IsUserAuthorized() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.session.UserAuthenticated
}

func (g *SessionGuard) IsAdminAuthorized() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.session.AdminAuthenticated
}

// CurrentUserEmail is the logged-in or remembered email, "" when none.
func (g *SessionGuard) CurrentUserEmail() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.session.CurrentUserEmail
}

// Session returns a copy of the in-memory state.
func (g *SessionGuard) Session() domain.Session {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.session
}
