package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/plated/internal/client/models"
	"github.com/dmitrijs2005/plated/internal/client/session"
	"github.com/dmitrijs2005/plated/internal/logging"
)

var testRoutes = Routes{Login: "/login", Profile: "/profile"}

// fakeClient implements client.Client. It is safe for use from the
// checker's timer goroutine.
type fakeClient struct {
	mu sync.Mutex

	Taken map[string]bool
	// Gate, when set, blocks CheckUsername until it is closed or receives.
	Gate     chan struct{}
	CheckErr error

	Profile    *models.UserProfile
	ProfileErr error

	RegisterErr error
	UpdateErr   error

	Checks    []string
	Registers []models.RegisterRequest
	Updates   []models.ProfileUpdate
	Fetches   int
}

func (f *fakeClient) RegisterUser(_ context.Context, req models.RegisterRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Registers = append(f.Registers, req)
	return f.RegisterErr
}

func (f *fakeClient) GetUserProfile(context.Context) (*models.UserProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Fetches++
	if f.ProfileErr != nil {
		return nil, f.ProfileErr
	}
	p := *f.Profile
	return &p, nil
}

func (f *fakeClient) UpdateUser(_ context.Context, upd models.ProfileUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Updates = append(f.Updates, upd)
	return f.UpdateErr
}

func (f *fakeClient) CheckUsername(ctx context.Context, username string) (bool, error) {
	f.mu.Lock()
	f.Checks = append(f.Checks, username)
	gate := f.Gate
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.CheckErr != nil {
		return false, f.CheckErr
	}
	return !f.Taken[username], nil
}

func (f *fakeClient) checks() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.Checks...)
}

type recordingNav struct {
	mu     sync.Mutex
	routes []string
}

func (n *recordingNav) Navigate(route string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.routes = append(n.routes, route)
}

func (n *recordingNav) Routes() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.routes...)
}

type staticAuth bool

func (a staticAuth) IsAuthenticated(context.Context) bool { return bool(a) }

func newChecker(api UsernameChecker) *AvailabilityChecker {
	return NewAvailabilityChecker(api, 10*time.Millisecond, logging.Nop())
}

func waitChecker(t *testing.T, c *AvailabilityChecker) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, c.Wait(ctx))
}

type testClaims struct {
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	ProfilePic  string `json:"profile_pic,omitempty"`
	jwt.RegisteredClaims
}

func mintToken(t *testing.T, c testClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte("irrelevant"))
	require.NoError(t, err)
	return s
}

func storedToken(t *testing.T, store session.TokenStore) string {
	t.Helper()
	tok, err := store.Read(context.Background())
	if err != nil {
		require.ErrorIs(t, err, session.ErrNoToken)
		return ""
	}
	return tok
}
