package oauth

import (
	"encoding/json"
	"strconv"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
)

// NewGitHubProvider configures GitHub. GitHub profiles frequently hide the
// email, so the /user/emails fallback is wired in.
func NewGitHubProvider(clientID, clientSecret, callbackURL string) *Provider {
	return &Provider{
		name: "github",
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  callbackURL,
			Scopes:       []string{"user:email"},
			Endpoint:     endpoints.GitHub,
		},
		profileURL: "https://api.github.com/user",
		emailsURL:  "https://api.github.com/user/emails",
		mapProfile: mapGitHubProfile,
	}
}

func mapGitHubProfile(data []byte) (*Profile, error) {
	var raw struct {
		ID    int64  `json:"id"`
		Login string `json:"login"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	name := raw.Name
	if name == "" {
		name = raw.Login
	}

	return &Profile{
		ID:    strconv.FormatInt(raw.ID, 10),
		Name:  name,
		Email: raw.Email,
	}, nil
}
