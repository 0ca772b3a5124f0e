package identity

import "context"

// Mock is a mock implementation of the Provider interface for testing.
type Mock struct {
	AuthURLFunc func(state string) string
	ResolveFunc func(ctx context.Context, code string) (Identity, error)
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) AuthURL(state string) string {
	if m.AuthURLFunc != nil {
		return m.AuthURLFunc(state)
	}
	return "https://auth.example.com/consent?state=" + state
}

func (m *Mock) Resolve(ctx context.Context, code string) (Identity, error) {
	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx, code)
	}
	return Identity{Email: "dev@example.com", Name: "Dev User"}, nil
}
