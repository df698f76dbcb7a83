package interfaces

import "context"

// AuthState reports the identity currently signed in to the hosted backend,
// or nil when signed out.
type AuthState struct {
	UserID string
	Email  string
}

// Authenticator is the consumed contract for the hosted authentication
// service. The admin core never implements it; hosts supply an adapter and
// the editor only observes state transitions to gate its UI.
type Authenticator interface {
	SignIn(ctx context.Context, email, password string) (*AuthState, error)
	SignOut(ctx context.Context) error
	OnStateChange(fn func(state *AuthState)) (unsubscribe func())
}
