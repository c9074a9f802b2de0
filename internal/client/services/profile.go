package services

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/plated/internal/client/client"
	"github.com/dmitrijs2005/plated/internal/client/models"
	"github.com/dmitrijs2005/plated/internal/client/session"
	"github.com/dmitrijs2005/plated/internal/logging"
)

type ProfileState int

const (
	StateLoading ProfileState = iota
	StateViewing
	StateEditing
	StateLoadFailed
)

func (s ProfileState) String() string {
	switch s {
	case StateViewing:
		return "viewing"
	case StateEditing:
		return "editing"
	case StateLoadFailed:
		return "load-failed"
	default:
		return "loading"
	}
}

// Authenticator is the local session check run before the profile loads.
type Authenticator interface {
	IsAuthenticated(ctx context.Context) bool
}

// ProfileDraft holds the edit form.
type ProfileDraft struct {
	Username    string
	DisplayName string
	ProfilePic  string
}

// ProfileView is a snapshot of what the profile screen shows.
type ProfileView struct {
	State      ProfileState
	Profile    models.UserProfile
	Draft      ProfileDraft
	Verdict    Verdict
	Checking   bool
	Submitting bool
	Error      string
	Success    string
}

// ProfileFlow drives the profile screen: loading -> viewing <-> editing.
type ProfileFlow struct {
	api     client.Client
	auth    Authenticator
	store   session.TokenStore
	nav     session.Navigator
	checker *AvailabilityChecker
	routes  Routes
	log     logging.Logger

	mu         sync.Mutex
	state      ProfileState
	profile    models.UserProfile
	draft      ProfileDraft
	submitting bool
	errMsg     string
	successMsg string
}

func NewProfileFlow(api client.Client, auth Authenticator, store session.TokenStore, nav session.Navigator, checker *AvailabilityChecker, routes Routes, log logging.Logger) *ProfileFlow {
	return &ProfileFlow{
		api:     api,
		auth:    auth,
		store:   store,
		nav:     nav,
		checker: checker,
		routes:  routes,
		log:     log.With("flow", "profile"),
	}
}

// Load checks the local session and fetches the profile. An unauthenticated
// session is sent to login without a request. A 401 has already been
// handled by the API client's policy, so the flow just stays in loading.
// Any other failure moves to StateLoadFailed, from which Load may be
// called again.
func (f *ProfileFlow) Load(ctx context.Context) error {
	if !f.auth.IsAuthenticated(ctx) {
		f.nav.Navigate(f.routes.Login)
		return ErrNotAuthenticated
	}

	f.mu.Lock()
	f.state = StateLoading
	f.errMsg = ""
	f.mu.Unlock()

	p, err := f.api.GetUserProfile(ctx)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		if errors.Is(err, client.ErrUnauthorized) {
			return err
		}
		f.log.Error(ctx, "failed to load profile", "err", err)
		f.state = StateLoadFailed
		f.errMsg = MsgProfileLoadFailed
		return err
	}

	f.profile = *p
	f.state = StateViewing
	return nil
}

// Edit snapshots the current profile into the drafts.
func (f *ProfileFlow) Edit() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateViewing {
		return ErrNotViewing
	}
	f.draft = ProfileDraft{
		Username:    f.profile.Username,
		DisplayName: f.profile.DisplayName,
		ProfilePic:  f.profile.ProfilePic,
	}
	f.errMsg = ""
	f.successMsg = ""
	f.state = StateEditing
	f.refreshAvailabilityLocked(context.Background())
	return nil
}

// SetUsername normalizes raw into the username draft and refreshes the
// availability verdict. The normalized value is returned.
func (f *ProfileFlow) SetUsername(ctx context.Context, raw string) (string, error) {
	username := NormalizeUsername(raw)

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateEditing {
		return "", ErrNotEditing
	}
	f.draft.Username = username
	f.refreshAvailabilityLocked(ctx)
	return username, nil
}

func (f *ProfileFlow) SetDisplayName(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateEditing {
		return ErrNotEditing
	}
	f.draft.DisplayName = name
	return nil
}

func (f *ProfileFlow) SetProfilePic(pic string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateEditing {
		return ErrNotEditing
	}
	f.draft.ProfilePic = pic
	return nil
}

// refreshAvailabilityLocked applies the verdict rules to the username
// draft: too short is unknown, the current username is trivially
// available, anything else goes to the debounced checker.
func (f *ProfileFlow) refreshAvailabilityLocked(ctx context.Context) {
	u := f.draft.Username
	switch {
	case len(u) < MinUsernameLength:
		f.checker.Assume(u, VerdictUnknown)
	case u == f.profile.Username:
		f.checker.Assume(u, VerdictAvailable)
	default:
		f.checker.Update(ctx, u)
	}
}

// Diff builds the update from the drafts: only fields that differ from the
// last saved profile. An empty username draft means "leave it alone".
func (f *ProfileFlow) Diff() models.ProfileUpdate {
	f.mu.Lock()
	defer f.mu.Unlock()
	return diff(f.profile, f.draft)
}

func diff(p models.UserProfile, d ProfileDraft) models.ProfileUpdate {
	var upd models.ProfileUpdate
	if d.Username != "" && d.Username != p.Username {
		u := d.Username
		upd.Username = &u
	}
	if d.DisplayName != p.DisplayName {
		n := d.DisplayName
		upd.DisplayName = &n
	}
	if d.ProfilePic != p.ProfilePic {
		pic := d.ProfilePic
		upd.ProfilePic = &pic
	}
	return upd
}

// CanSave mirrors the save button.
func (f *ProfileFlow) CanSave() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateEditing || f.submitting {
		return false
	}
	return !f.takenLocked()
}

func (f *ProfileFlow) takenLocked() bool {
	u := f.draft.Username
	return u != f.profile.Username && f.checker.VerdictFor(u) == VerdictTaken
}

// Save validates the drafts and sends the diff. An empty diff is a
// *ValidationError. On success only the changed fields are merged into the
// profile and the flow returns to viewing; on failure it stays in editing.
func (f *ProfileFlow) Save(ctx context.Context) error {
	f.mu.Lock()
	if f.state != StateEditing {
		f.mu.Unlock()
		return ErrNotEditing
	}
	if f.submitting {
		f.mu.Unlock()
		return ErrBusy
	}
	f.errMsg = ""
	f.successMsg = ""

	err := firstFailing(
		usernameRule(f.draft.Username, true),
		displayNameRule(f.draft.DisplayName),
		notTakenRule(f.takenLocked()),
		profilePicRule(f.draft.ProfilePic),
	)
	upd := diff(f.profile, f.draft)
	if err == nil && upd.IsEmpty() {
		err = &ValidationError{Message: MsgNoChanges}
	}
	if err != nil {
		f.errMsg = UserMessage(err, "")
		f.mu.Unlock()
		return err
	}
	f.submitting = true
	f.mu.Unlock()

	err = f.api.UpdateUser(ctx, upd)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitting = false
	if err != nil {
		f.log.Error(ctx, "profile update failed", "err", err)
		f.errMsg = UserMessage(err, MsgUpdateFailed)
		return err
	}

	upd.ApplyTo(&f.profile)
	f.draft = ProfileDraft{}
	f.checker.Reset()
	f.state = StateViewing
	f.successMsg = MsgProfileUpdateSuccess
	f.log.Info(ctx, "profile updated")
	return nil
}

// Cancel drops the drafts and the verdict and returns to viewing. No
// request is made.
func (f *ProfileFlow) Cancel() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateEditing {
		return ErrNotEditing
	}
	if f.submitting {
		return ErrBusy
	}
	f.draft = ProfileDraft{}
	f.errMsg = ""
	f.checker.Reset()
	f.state = StateViewing
	return nil
}

// Logout forgets the session locally and sends the user to login.
func (f *ProfileFlow) Logout(ctx context.Context) error {
	f.mu.Lock()
	if f.state == StateEditing {
		f.checker.Reset()
	}
	f.state = StateLoading
	f.profile = models.UserProfile{}
	f.draft = ProfileDraft{}
	f.mu.Unlock()

	if err := f.store.Clear(ctx); err != nil {
		return err
	}
	f.nav.Navigate(f.routes.Login)
	return nil
}

// Checker exposes the availability checker, e.g. to Wait on it.
func (f *ProfileFlow) Checker() *AvailabilityChecker {
	return f.checker
}

// View returns a snapshot of the screen.
func (f *ProfileFlow) View() ProfileView {
	f.mu.Lock()
	defer f.mu.Unlock()

	v := ProfileView{
		State:      f.state,
		Profile:    f.profile,
		Draft:      f.draft,
		Submitting: f.submitting,
		Error:      f.errMsg,
		Success:    f.successMsg,
	}
	if f.state == StateEditing {
		v.Verdict = f.checker.VerdictFor(f.draft.Username)
		v.Checking = f.checker.Checking()
	}
	return v
}
