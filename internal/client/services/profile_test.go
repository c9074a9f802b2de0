package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/plated/internal/client/client"
	"github.com/dmitrijs2005/plated/internal/client/models"
	"github.com/dmitrijs2005/plated/internal/client/session"
	"github.com/dmitrijs2005/plated/internal/logging"
)

func strPtr(s string) *string { return &s }

type profileFixture struct {
	api   *fakeClient
	store *session.MemoryTokenStore
	nav   *recordingNav
	flow  *ProfileFlow
}

func newProfile(t *testing.T, auth Authenticator) *profileFixture {
	t.Helper()
	f := &profileFixture{
		api: &fakeClient{Profile: &models.UserProfile{
			ID: "u1", Email: "alice@example.com", Username: "alice", DisplayName: "A",
		}},
		store: session.NewMemoryTokenStore("tok"),
		nav:   &recordingNav{},
	}
	f.flow = NewProfileFlow(f.api, auth, f.store, f.nav, newChecker(f.api), testRoutes, logging.Nop())
	return f
}

func loadedProfile(t *testing.T) *profileFixture {
	t.Helper()
	f := newProfile(t, staticAuth(true))
	require.NoError(t, f.flow.Load(context.Background()))
	return f
}

func editingProfile(t *testing.T) *profileFixture {
	t.Helper()
	f := loadedProfile(t)
	require.NoError(t, f.flow.Edit())
	return f
}

func TestProfile_UnauthenticatedRedirectsWithoutFetch(t *testing.T) {
	f := newProfile(t, staticAuth(false))

	err := f.flow.Load(context.Background())

	require.ErrorIs(t, err, ErrNotAuthenticated)
	assert.Equal(t, []string{"/login"}, f.nav.Routes())
	assert.Zero(t, f.api.Fetches)
	assert.Equal(t, StateLoading, f.flow.View().State)
}

func TestProfile_LoadShowsProfile(t *testing.T) {
	f := loadedProfile(t)

	v := f.flow.View()
	assert.Equal(t, StateViewing, v.State)
	assert.Equal(t, "alice", v.Profile.Username)
	assert.Empty(t, v.Error)
}

func TestProfile_LoadFailureCanBeRetried(t *testing.T) {
	f := newProfile(t, staticAuth(true))
	f.api.ProfileErr = client.ErrUnavailable

	require.Error(t, f.flow.Load(context.Background()))
	v := f.flow.View()
	assert.Equal(t, StateLoadFailed, v.State)
	assert.Equal(t, MsgProfileLoadFailed, v.Error)
	assert.ErrorIs(t, f.flow.Edit(), ErrNotViewing)

	f.api.ProfileErr = nil
	require.NoError(t, f.flow.Load(context.Background()))
	v = f.flow.View()
	assert.Equal(t, StateViewing, v.State)
	assert.Empty(t, v.Error)
}

func TestProfile_EditSnapshotsProfile(t *testing.T) {
	f := editingProfile(t)

	v := f.flow.View()
	assert.Equal(t, StateEditing, v.State)
	assert.Equal(t, ProfileDraft{Username: "alice", DisplayName: "A"}, v.Draft)
	assert.Equal(t, VerdictAvailable, v.Verdict)
}

func TestProfile_UnchangedUsernameSkipsCheck(t *testing.T) {
	f := editingProfile(t)
	ctx := context.Background()

	_, err := f.flow.SetUsername(ctx, "al")
	require.NoError(t, err)
	assert.Equal(t, VerdictUnknown, f.flow.View().Verdict)

	got, err := f.flow.SetUsername(ctx, "Alice")
	require.NoError(t, err)
	waitChecker(t, f.flow.Checker())

	assert.Equal(t, "alice", got)
	assert.Empty(t, f.api.checks())
	assert.Equal(t, VerdictAvailable, f.flow.View().Verdict)
}

func TestProfile_ChangedUsernameIsChecked(t *testing.T) {
	f := editingProfile(t)
	f.api.Taken = map[string]bool{"bob": true}

	_, err := f.flow.SetUsername(context.Background(), "bob")
	require.NoError(t, err)
	waitChecker(t, f.flow.Checker())

	assert.Equal(t, []string{"bob"}, f.api.checks())
	assert.Equal(t, VerdictTaken, f.flow.View().Verdict)
	assert.False(t, f.flow.CanSave())

	err = f.flow.Save(context.Background())
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, MsgUsernameTaken, verr.Message)
	assert.Empty(t, f.api.Updates)
}

func TestProfile_DiffHoldsOnlyChangedFields(t *testing.T) {
	f := editingProfile(t)
	require.NoError(t, f.flow.SetDisplayName("C"))

	want := models.ProfileUpdate{DisplayName: strPtr("C")}
	if diff := cmp.Diff(want, f.flow.Diff()); diff != "" {
		t.Errorf("diff mismatch (-want +got):\n%s", diff)
	}
}

func TestProfile_EmptyUsernameDraftIsNotSent(t *testing.T) {
	f := editingProfile(t)
	_, err := f.flow.SetUsername(context.Background(), "")
	require.NoError(t, err)
	require.NoError(t, f.flow.SetDisplayName("C"))

	assert.Nil(t, f.flow.Diff().Username)
}

func TestProfile_EmptyDiffIsRejected(t *testing.T) {
	f := editingProfile(t)

	err := f.flow.Save(context.Background())

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, MsgNoChanges, verr.Message)
	assert.Empty(t, f.api.Updates)
	assert.Equal(t, StateEditing, f.flow.View().State)
}

func TestProfile_SaveValidationOrder(t *testing.T) {
	f := editingProfile(t)
	ctx := context.Background()
	_, err := f.flow.SetUsername(ctx, "ab")
	require.NoError(t, err)
	require.NoError(t, f.flow.SetDisplayName(""))

	err = f.flow.Save(ctx)
	assert.EqualError(t, err, MsgUsernameTooShort)

	_, err = f.flow.SetUsername(ctx, "alice")
	require.NoError(t, err)
	err = f.flow.Save(ctx)
	assert.EqualError(t, err, MsgDisplayNameRequired)

	require.NoError(t, f.flow.SetDisplayName("A"))
	require.NoError(t, f.flow.SetProfilePic("nope"))
	err = f.flow.Save(ctx)
	assert.EqualError(t, err, MsgProfilePicInvalid)
	assert.Empty(t, f.api.Updates)
}

func TestProfile_SaveMergesAndReturnsToViewing(t *testing.T) {
	f := editingProfile(t)
	ctx := context.Background()
	require.NoError(t, f.flow.SetDisplayName("C"))

	require.NoError(t, f.flow.Save(ctx))

	assert.Equal(t, []models.ProfileUpdate{{DisplayName: strPtr("C")}}, f.api.Updates)
	v := f.flow.View()
	assert.Equal(t, StateViewing, v.State)
	assert.Equal(t, models.UserProfile{ID: "u1", Email: "alice@example.com", Username: "alice", DisplayName: "C"}, v.Profile)
	assert.Equal(t, MsgProfileUpdateSuccess, v.Success)

	require.NoError(t, f.flow.Edit())
	assert.Empty(t, f.flow.View().Success)
}

func TestProfile_SaveFailureStaysEditing(t *testing.T) {
	f := editingProfile(t)
	f.api.UpdateErr = &client.RejectionError{Status: http.StatusBadRequest, Message: "Display name too long"}
	require.NoError(t, f.flow.SetDisplayName("C"))

	require.Error(t, f.flow.Save(context.Background()))

	v := f.flow.View()
	assert.Equal(t, StateEditing, v.State)
	assert.Equal(t, "Display name too long", v.Error)
	assert.Equal(t, "A", v.Profile.DisplayName)
	assert.Equal(t, "C", v.Draft.DisplayName)
}

func TestProfile_CancelDiscardsDrafts(t *testing.T) {
	f := editingProfile(t)
	f.api.Taken = map[string]bool{"bob": true}
	ctx := context.Background()
	_, err := f.flow.SetUsername(ctx, "bob")
	require.NoError(t, err)
	waitChecker(t, f.flow.Checker())
	checks := len(f.api.checks())

	require.NoError(t, f.flow.Cancel())

	v := f.flow.View()
	assert.Equal(t, StateViewing, v.State)
	assert.Equal(t, ProfileDraft{}, v.Draft)
	_, verdict := f.flow.Checker().Verdict()
	assert.Equal(t, VerdictUnknown, verdict)
	assert.Len(t, f.api.checks(), checks)
	assert.Empty(t, f.api.Updates)
	assert.ErrorIs(t, f.flow.Cancel(), ErrNotEditing)
}

func TestProfile_EditRequiresViewing(t *testing.T) {
	f := newProfile(t, staticAuth(true))
	assert.ErrorIs(t, f.flow.Edit(), ErrNotViewing)

	_, err := f.flow.SetUsername(context.Background(), "x")
	assert.ErrorIs(t, err, ErrNotEditing)
	assert.ErrorIs(t, f.flow.Save(context.Background()), ErrNotEditing)
}

func TestProfile_Logout(t *testing.T) {
	f := loadedProfile(t)

	require.NoError(t, f.flow.Logout(context.Background()))

	assert.Empty(t, storedToken(t, f.store))
	assert.Equal(t, []string{"/login"}, f.nav.Routes())
	assert.Equal(t, models.UserProfile{}, f.flow.View().Profile)
}

// A server-side 401 on the profile fetch must leave the store empty and
// the user on the login route, with nothing rendered.
func TestProfile_ServerUnauthorizedEndToEnd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)

	tok := mintToken(t, testClaims{RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}})
	store := session.NewMemoryTokenStore(tok)
	nav := &recordingNav{}
	log := logging.Nop()

	policy := session.NewUnauthorizedPolicy(store, nav, testRoutes.Login, log)
	api, err := client.NewHTTPClient(srv.URL, store, policy, log)
	require.NoError(t, err)
	guard := session.NewGuard(store, log)
	require.True(t, guard.IsAuthenticated(context.Background()))

	flow := NewProfileFlow(api, guard, store, nav, newChecker(api), testRoutes, log)
	err = flow.Load(context.Background())

	require.ErrorIs(t, err, client.ErrUnauthorized)
	assert.Empty(t, storedToken(t, store))
	assert.Equal(t, []string{"/login"}, nav.Routes())
	v := flow.View()
	assert.Equal(t, StateLoading, v.State)
	assert.Equal(t, models.UserProfile{}, v.Profile)
	assert.False(t, guard.IsAuthenticated(context.Background()))
}

func TestProfileState_String(t *testing.T) {
	assert.Equal(t, "loading", StateLoading.String())
	assert.Equal(t, "viewing", StateViewing.String())
	assert.Equal(t, "editing", StateEditing.String())
	assert.Equal(t, "load-failed", StateLoadFailed.String())
}
