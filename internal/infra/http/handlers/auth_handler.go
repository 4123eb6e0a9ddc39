package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/telecrm/internal/infra/http/middleware"
	"github.com/xavierca1/telecrm/internal/infra/oauth"
	"github.com/xavierca1/telecrm/internal/usecase"
)

const stateCookieName = "oauth_state"

type AuthHandler struct {
	RegisterUC *usecase.RegisterUserUseCase
	LoginUC    *usecase.LoginUseCase
	OAuthUC    *usecase.OAuthLoginUseCase
	Providers  oauth.Registry
	ClientURL  string
	CookieTTL  time.Duration
}

func NewAuthHandler(
	registerUC *usecase.RegisterUserUseCase,
	loginUC *usecase.LoginUseCase,
	oauthUC *usecase.OAuthLoginUseCase,
	providers oauth.Registry,
	clientURL string,
	cookieTTL time.Duration,
) *AuthHandler {
	return &AuthHandler{
		RegisterUC: registerUC,
		LoginUC:    loginUC,
		OAuthUC:    oauthUC,
		Providers:  providers,
		ClientURL:  clientURL,
		CookieTTL:  cookieTTL,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input usecase.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, usecase.ValidationErrors{{Field: "body", Message: "invalid JSON"}})
		return
	}

	output, err := h.RegisterUC.Execute(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}

	h.sendTokenResponse(w, output)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input usecase.LoginInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, usecase.ValidationErrors{{Field: "body", Message: "invalid JSON"}})
		return
	}

	output, err := h.LoginUC.Execute(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}

	h.sendTokenResponse(w, output)
}

// VerifyToken sits behind RequireAuth; reaching it means the token is good.
func (h *AuthHandler) VerifyToken(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r.Context())
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    user,
	})
}

// Logout clears the cookie; the token itself stays valid until expiry since
// there is no revocation list.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HttpOnly: true,
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    map[string]any{},
	})
}

// OAuthStart redirects the user agent to the provider's consent screen with
// a random state pinned in a short-lived cookie.
func (h *AuthHandler) OAuthStart(w http.ResponseWriter, r *http.Request) {
	provider, ok := h.Providers.Lookup(chi.URLParam(r, "provider"))
	if !ok {
		writeError(w, &usecase.NotFoundError{Resource: "provider", ID: chi.URLParam(r, "provider")})
		return
	}

	state, err := randomState()
	if err != nil {
		writeError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/",
		Expires:  time.Now().Add(10 * time.Minute),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, provider.AuthCodeURL(state), http.StatusFound)
}

// OAuthCallback completes the federated flow. Failures here redirect to the
// frontend with an error indicator; the user agent is mid-redirect and cannot
// consume a JSON body.
func (h *AuthHandler) OAuthCallback(w http.ResponseWriter, r *http.Request) {
	provider, ok := h.Providers.Lookup(chi.URLParam(r, "provider"))
	if !ok {
		h.redirectError(w, r, "authentication_failed", "unknown provider")
		return
	}

	if errCode := r.URL.Query().Get("error"); errCode != "" {
		h.redirectError(w, r, "authentication_failed", errCode)
		return
	}

	stateCookie, err := r.Cookie(stateCookieName)
	if err != nil || stateCookie.Value == "" || stateCookie.Value != r.URL.Query().Get("state") {
		h.redirectError(w, r, "authentication_failed", "invalid oauth state")
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		h.redirectError(w, r, "authentication_failed", "missing authorization code")
		return
	}

	tok, err := provider.Exchange(r.Context(), code)
	if err != nil {
		h.redirectError(w, r, "authentication_failed", "token exchange failed")
		return
	}

	profile, err := provider.FetchProfile(r.Context(), tok)
	if err != nil {
		h.redirectError(w, r, "authentication_failed", "profile fetch failed")
		return
	}

	output, err := h.OAuthUC.Execute(r.Context(), *profile)
	if err != nil {
		var providerErr *usecase.OAuthProviderError
		if errors.As(err, &providerErr) {
			h.redirectError(w, r, "no_email", providerErr.Message)
			return
		}
		h.redirectError(w, r, "authentication_failed", "authentication failed")
		return
	}

	h.clearStateCookie(w)
	h.setTokenCookie(w, output.Token)

	userJSON, err := json.Marshal(output.User)
	if err != nil {
		h.redirectError(w, r, "authentication_failed", "authentication failed")
		return
	}

	query := url.Values{}
	query.Set("token", output.Token)
	query.Set("user", string(userJSON))
	http.Redirect(w, r, h.ClientURL+"/oauth-success?"+query.Encode(), http.StatusFound)
}

func (h *AuthHandler) OAuthFailure(w http.ResponseWriter, r *http.Request) {
	h.redirectError(w, r, "authentication_failed", "Authentication failed")
}

func (h *AuthHandler) redirectError(w http.ResponseWriter, r *http.Request, code, message string) {
	// The state cookie is single-use either way.
	h.clearStateCookie(w)
	query := url.Values{}
	query.Set("error", code)
	query.Set("message", message)
	http.Redirect(w, r, h.ClientURL+"/oauth-error?"+query.Encode(), http.StatusFound)
}

// sendTokenResponse delivers the credential both ways: response body and
// httpOnly cookie. Either form verifies identically.
func (h *AuthHandler) sendTokenResponse(w http.ResponseWriter, output *usecase.AuthOutput) {
	h.setTokenCookie(w, output.Token)
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"token":   output.Token,
		"user":    output.User,
	})
}

func (h *AuthHandler) setTokenCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.CookieTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearStateCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HttpOnly: true,
	})
}

func randomState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
