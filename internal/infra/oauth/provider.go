package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"
)

// Profile is the provider-agnostic identity handed to the login use case.
type Profile struct {
	Provider string
	ID       string
	Name     string
	Email    string
}

// Provider bundles one identity provider's capability set: authorization URL,
// code-for-token exchange and profile fetch. The primary-email fallback is a
// capability too, used or unused per provider, instead of a special case in
// one provider's code path.
type Provider struct {
	name       string
	config     *oauth2.Config
	profileURL string
	emailsURL  string // optional: queried when the profile carries no email
	mapProfile func(data []byte) (*Profile, error)
}

func (p *Provider) Name() string {
	return p.name
}

func (p *Provider) AuthCodeURL(state string) string {
	return p.config.AuthCodeURL(state)
}

func (p *Provider) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	return p.config.Exchange(ctx, code)
}

// FetchProfile retrieves the authenticated user's profile. When the profile
// exposes no email and the provider has an emails endpoint, the entry flagged
// primary is used. An empty Email in the result means the provider genuinely
// has none to give.
func (p *Provider) FetchProfile(ctx context.Context, tok *oauth2.Token) (*Profile, error) {
	client := p.config.Client(ctx, tok)

	data, err := getJSON(ctx, client, p.profileURL)
	if err != nil {
		return nil, err
	}

	profile, err := p.mapProfile(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s profile: %w", p.name, err)
	}
	profile.Provider = p.name

	if profile.Email == "" && p.emailsURL != "" {
		email, err := p.fetchPrimaryEmail(ctx, client)
		if err != nil {
			return nil, err
		}
		profile.Email = email
	}

	return profile, nil
}

func (p *Provider) fetchPrimaryEmail(ctx context.Context, client *http.Client) (string, error) {
	data, err := getJSON(ctx, client, p.emailsURL)
	if err != nil {
		return "", err
	}

	var entries []struct {
		Email    string `json:"email"`
		Primary  bool   `json:"primary"`
		Verified bool   `json:"verified"`
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return "", fmt.Errorf("decode %s emails: %w", p.name, err)
	}

	for _, e := range entries {
		if e.Primary {
			return e.Email, nil
		}
	}

	return "", nil
}

func getJSON(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s returned status %d", url, resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

// Registry maps the provider path segment ("google", "github") to its
// capability set. Built once at startup, read-only afterwards.
type Registry map[string]*Provider

func NewRegistry(providers ...*Provider) Registry {
	r := make(Registry, len(providers))
	for _, p := range providers {
		r[p.Name()] = p
	}
	return r
}

func (r Registry) Lookup(name string) (*Provider, bool) {
	p, ok := r[name]
	return p, ok
}
