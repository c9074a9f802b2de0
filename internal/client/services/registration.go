package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/plated/internal/client/client"
	"github.com/dmitrijs2005/plated/internal/client/models"
	"github.com/dmitrijs2005/plated/internal/client/session"
	"github.com/dmitrijs2005/plated/internal/logging"
)

// Routes names the screens a flow can send the user to.
type Routes struct {
	Login   string
	Profile string
}

// RegistrationDraft is the profile-completion form.
type RegistrationDraft struct {
	Username    string
	DisplayName string
	ProfilePic  string
}

// RegistrationFlow is the one-time screen shown after OAuth sign-in. It
// consumes the handoff token, pre-fills the form from its claims and
// submits the new profile.
type RegistrationFlow struct {
	api     client.Client
	store   session.TokenStore
	nav     session.Navigator
	checker *AvailabilityChecker
	routes  Routes
	log     logging.Logger

	mu           sync.Mutex
	bootstrapped bool
	draft        RegistrationDraft
	submitting   bool
	errMsg       string
}

func NewRegistrationFlow(api client.Client, store session.TokenStore, nav session.Navigator, checker *AvailabilityChecker, routes Routes, log logging.Logger) *RegistrationFlow {
	return &RegistrationFlow{
		api:     api,
		store:   store,
		nav:     nav,
		checker: checker,
		routes:  routes,
		log:     log.With("flow", "registration"),
	}
}

// Bootstrap consumes the handoff token. Without one the user is sent to
// login and ErrNoHandoffToken is returned. Otherwise the token is stored
// before anything else happens, and the display name and picture are
// pre-filled from its claims when present. A token that cannot be decoded
// still bootstraps the form, just without pre-fill.
func (f *RegistrationFlow) Bootstrap(ctx context.Context, handoff string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.bootstrapped {
		return ErrBootstrapped
	}

	if handoff == "" {
		f.nav.Navigate(f.routes.Login)
		return ErrNoHandoffToken
	}

	if err := f.store.Save(ctx, handoff); err != nil {
		return fmt.Errorf("store handoff token: %w", err)
	}
	f.bootstrapped = true

	claims, err := session.Decode(handoff)
	if err != nil {
		f.log.Warn(ctx, "handoff token has unreadable claims", "err", err)
		return nil
	}
	f.draft.DisplayName = claims.DisplayName
	f.draft.ProfilePic = claims.ProfilePic
	f.log.Info(ctx, "registration started", "email", claims.Email)
	return nil
}

// SetUsername normalizes raw, stores it and schedules an availability
// check. The normalized value is returned.
func (f *RegistrationFlow) SetUsername(ctx context.Context, raw string) string {
	username := NormalizeUsername(raw)

	f.mu.Lock()
	f.draft.Username = username
	f.mu.Unlock()

	f.checker.Update(ctx, username)
	return username
}

func (f *RegistrationFlow) SetDisplayName(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft.DisplayName = name
}

func (f *RegistrationFlow) SetProfilePic(pic string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft.ProfilePic = pic
}

func (f *RegistrationFlow) Draft() RegistrationDraft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// Availability reports the verdict for the current username and whether a
// lookup is outstanding.
func (f *RegistrationFlow) Availability() (Verdict, bool) {
	f.mu.Lock()
	username := f.draft.Username
	f.mu.Unlock()
	return f.checker.VerdictFor(username), f.checker.InFlight()
}

// Checker exposes the availability checker, e.g. to Wait on it.
func (f *RegistrationFlow) Checker() *AvailabilityChecker {
	return f.checker
}

// Error is the message from the last failed submit, if any.
func (f *RegistrationFlow) Error() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errMsg
}

// CanSubmit mirrors the submit button: disabled while submitting, while a
// lookup is outstanding, when the username is known to be taken, or when
// a required field is empty.
func (f *RegistrationFlow) CanSubmit() bool {
	f.mu.Lock()
	d, submitting := f.draft, f.submitting
	f.mu.Unlock()

	if submitting || d.Username == "" || d.DisplayName == "" {
		return false
	}
	if f.checker.InFlight() {
		return false
	}
	return f.checker.VerdictFor(d.Username) != VerdictTaken
}

// Submit validates the form and registers the profile. While an
// availability lookup is outstanding it returns ErrCheckPending. Validation
// failures return a *ValidationError. Neither makes a request. On success the
// user is sent to the profile screen.
func (f *RegistrationFlow) Submit(ctx context.Context) error {
	f.mu.Lock()
	if !f.bootstrapped {
		f.mu.Unlock()
		return ErrNotBootstrapped
	}
	if f.submitting {
		f.mu.Unlock()
		return ErrBusy
	}
	if f.checker.InFlight() {
		f.mu.Unlock()
		return ErrCheckPending
	}
	f.errMsg = ""
	d := f.draft

	err := firstFailing(
		usernameRule(d.Username, false),
		displayNameRule(d.DisplayName),
		notTakenRule(f.checker.VerdictFor(d.Username) == VerdictTaken),
		profilePicRule(d.ProfilePic),
	)
	if err != nil {
		f.errMsg = UserMessage(err, "")
		f.mu.Unlock()
		return err
	}
	f.submitting = true
	f.mu.Unlock()

	err = f.api.RegisterUser(ctx, models.RegisterRequest{
		Username:    d.Username,
		DisplayName: d.DisplayName,
		ProfilePic:  d.ProfilePic,
	})

	f.mu.Lock()
	f.submitting = false
	if err != nil {
		f.errMsg = UserMessage(err, MsgRegistrationFailed)
		f.mu.Unlock()
		f.log.Error(ctx, "registration failed", "err", err)
		return err
	}
	f.mu.Unlock()

	f.log.Info(ctx, "registration complete", "username", d.Username)
	f.checker.Reset()
	f.nav.Navigate(f.routes.Profile)
	return nil
}
