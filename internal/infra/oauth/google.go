package oauth

import (
	"encoding/json"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
)

// NewGoogleProvider configures Google. The userinfo endpoint returns the
// email directly for the scopes requested, so no emails fallback is set.
func NewGoogleProvider(clientID, clientSecret, callbackURL string) *Provider {
	return &Provider{
		name: "google",
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  callbackURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: endpoints.Google,
		},
		profileURL: "https://www.googleapis.com/oauth2/v2/userinfo",
		mapProfile: mapGoogleProfile,
	}
}

func mapGoogleProfile(data []byte) (*Profile, error) {
	var raw struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	name := raw.Name
	if name == "" {
		name = raw.Email
	}

	return &Profile{
		ID:    raw.ID,
		Name:  name,
		Email: raw.Email,
	}, nil
}
