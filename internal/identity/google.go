package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const userinfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// GoogleProvider implements Provider using the Google authorization code flow.
type GoogleProvider struct {
	config *oauth2.Config
}

// NewGoogleProvider creates a provider for the given OAuth app credentials.
// callbackURL must match the redirect URI registered with Google exactly.
func NewGoogleProvider(clientID, clientSecret, callbackURL string) *GoogleProvider {
	return &GoogleProvider{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  callbackURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

// AuthURL returns the consent URL to redirect the user to. The caller is
// responsible for generating and later verifying the state parameter.
func (p *GoogleProvider) AuthURL(state string) string {
	return p.config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// Resolve exchanges the authorization code for a token server-side and fetches
// the userinfo document to obtain a verified email.
func (p *GoogleProvider) Resolve(ctx context.Context, code string) (Identity, error) {
	token, err := p.config.Exchange(ctx, code)
	if err != nil {
		return Identity{}, fmt.Errorf("identity: exchanging OAuth code: %w", err)
	}

	client := p.config.Client(ctx, token)
	resp, err := client.Get(userinfoURL)
	if err != nil {
		return Identity{}, fmt.Errorf("identity: fetching userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Identity{}, fmt.Errorf("identity: userinfo returned status %d", resp.StatusCode)
	}

	var id Identity
	if err := json.NewDecoder(resp.Body).Decode(&id); err != nil {
		return Identity{}, fmt.Errorf("identity: decoding userinfo: %w", err)
	}
	if id.Email == "" {
		return Identity{}, fmt.Errorf("identity: userinfo response carried no email")
	}
	return id, nil
}
