package identity

import "context"

// Identity is a verified external identity. The rest of the application only
// consumes the email; the name is used for display backfill.
type Identity struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Provider resolves an OAuth authorization code to a verified identity.
type Provider interface {
	AuthURL(state string) string
	Resolve(ctx context.Context, code string) (Identity, error)
}
