package client

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/plated/internal/client/session"
	"github.com/dmitrijs2005/plated/internal/common"
	"github.com/dmitrijs2005/plated/internal/logging"
)

// authTransport wraps every API call: outgoing requests get the stored
// token as a bearer credential and a request id; a 401 response triggers
// the unauthorized handler before the response is returned. The token is
// only ever sent to apiHost.
type authTransport struct {
	base           http.RoundTripper
	apiHost        string
	tokens         session.TokenStore
	onUnauthorized UnauthorizedHandler
	log            logging.Logger
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	req = req.Clone(ctx)

	if req.URL.Host == t.apiHost {
		token, err := t.tokens.Read(ctx)
		switch {
		case err == nil:
			req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
		case !errors.Is(err, session.ErrNoToken):
			t.log.Warn(ctx, "sending request without session token", "err", err)
		}
	}

	reqID := uuid.NewString()
	req.Header.Set(common.RequestIDHeaderName, reqID)
	log := t.log.With("request_id", reqID, "method", req.Method, "path", req.URL.Path)

	start := time.Now()
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		log.Warn(ctx, "request failed", "err", err, "took", time.Since(start))
		return nil, err
	}
	log.Debug(ctx, "request done", "status", resp.StatusCode, "took", time.Since(start))

	if resp.StatusCode == http.StatusUnauthorized && t.onUnauthorized != nil {
		t.onUnauthorized.HandleUnauthorized(ctx)
	}

	return resp, nil
}
