package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/watchlist/internal/models"
	"github.com/desertthunder/watchlist/internal/shared"
	"golang.org/x/time/rate"
)

// Gate decides per request whether the caller is the authenticated administrator.
type Gate struct {
	creds   *Credentials
	signer  Signer
	limiter *rate.Limiter
	logger  *log.Logger
}

// GateOpts configures a [Gate]. Limiter and Logger are optional.
type GateOpts struct {
	Credentials *Credentials
	Signer      Signer
	Limiter     *rate.Limiter
	Logger      *log.Logger
}

// NewGate creates a session gate.
func NewGate(opts GateOpts) *Gate {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	return &Gate{
		creds:   opts.Credentials,
		signer:  opts.Signer,
		limiter: opts.Limiter,
		logger:  opts.Logger,
	}
}

// NewLoginLimiter returns a token bucket refilled at perSecond attempts with the given burst.
func NewLoginLimiter(perSecond float64, burst int) *rate.Limiter {
	return rate.NewLimiter(rate.Limit(perSecond), burst)
}

// Login checks username and password against the administrator identity.
//
// Empty fields fail with [shared.ErrInvalidInput]. Every credential mismatch, including a missing
// identity, fails with [shared.ErrInvalidLogin]. On success the returned caller is authenticated
// and token is the signed session token to hand to the client.
func (g *Gate) Login(ctx context.Context, username, password string) (Caller, string, error) {
	if username == "" || password == "" {
		return AnonymousCaller(), "", fmt.Errorf("%w: username and password are required", shared.ErrInvalidInput)
	}

	if g.limiter != nil && !g.limiter.Allow() {
		g.logger.Warn("login throttled")
		return AnonymousCaller(), "", shared.ErrTooManyAttempts
	}

	identity, err := g.creds.Current(ctx)
	switch {
	case errors.Is(err, shared.ErrNotFound):
		g.logger.Warn("login attempted before an administrator exists")
		return AnonymousCaller(), "", shared.ErrInvalidLogin
	case err != nil:
		return AnonymousCaller(), "", err
	}

	// The hash is always checked so a wrong username costs as much as a wrong password.
	passwordOK := g.creds.VerifyPassword(identity, password)
	if identity.Username != username || !passwordOK {
		g.logger.Warn("login failed", "username", username)
		return AnonymousCaller(), "", shared.ErrInvalidLogin
	}

	token, err := g.signer.Issue(identity.ID)
	if err != nil {
		return AnonymousCaller(), "", err
	}

	g.logger.Info("login succeeded", "identity", identity.ID)
	return AuthenticatedCaller(identity), token, nil
}

// Logout always succeeds and returns an anonymous caller. Clearing the client's token is the
// transport's job.
func (g *Gate) Logout() Caller {
	return AnonymousCaller()
}

// Resolve maps a session token to a caller. Missing, forged, expired and stale tokens
// (naming an identity that is no longer the administrator) all resolve to anonymous.
func (g *Gate) Resolve(ctx context.Context, token string) Caller {
	if token == "" {
		return AnonymousCaller()
	}

	id, err := g.signer.Parse(token)
	if err != nil {
		g.logger.Debug("rejected session token", "error", err)
		return AnonymousCaller()
	}

	identity, err := g.creds.Current(ctx)
	if err != nil || identity.ID != id {
		return AnonymousCaller()
	}

	return AuthenticatedCaller(identity)
}

// Current exposes the administrator identity for rendering; nil before bootstrap.
func (g *Gate) Current(ctx context.Context) *models.Identity {
	identity, err := g.creds.Current(ctx)
	if err != nil {
		return nil
	}
	return identity
}
