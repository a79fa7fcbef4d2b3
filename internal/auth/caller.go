package auth

import (
	"context"
	"fmt"

	"github.com/desertthunder/watchlist/internal/models"
	"github.com/desertthunder/watchlist/internal/shared"
)

// State is the authentication state of a request.
type State int

const (
	Anonymous State = iota
	Authenticated
)

func (s State) String() string {
	switch s {
	case Authenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

// Caller is the resolved identity of a request. The zero value is anonymous.
type Caller struct {
	identity *models.Identity
}

// AnonymousCaller returns a caller with no identity.
func AnonymousCaller() Caller { return Caller{} }

// AuthenticatedCaller returns a caller bound to identity; a nil identity yields an anonymous caller.
func AuthenticatedCaller(identity *models.Identity) Caller { return Caller{identity: identity} }

// State reports whether the caller is [Anonymous] or [Authenticated].
func (c Caller) State() State {
	if c.identity == nil {
		return Anonymous
	}
	return Authenticated
}

// Authenticated is shorthand for c.State() == [Authenticated].
func (c Caller) Authenticated() bool { return c.State() == Authenticated }

// Identity returns the bound identity, or nil for anonymous callers.
func (c Caller) Identity() *models.Identity { return c.identity }

// Authorize returns [shared.ErrUnauthorized] unless the caller is authenticated.
func Authorize(c Caller) error {
	if !c.Authenticated() {
		return fmt.Errorf("%w: login required", shared.ErrUnauthorized)
	}
	return nil
}

type callerKey struct{}

// WithCaller stores caller in ctx for the HTTP handler layer.
func WithCaller(ctx context.Context, caller Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, caller)
}

// CallerFrom returns the caller stored by [WithCaller], or an anonymous caller.
func CallerFrom(ctx context.Context) Caller {
	caller, _ := ctx.Value(callerKey{}).(Caller)
	return caller
}
