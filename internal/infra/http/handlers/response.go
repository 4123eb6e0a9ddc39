package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/xavierca1/telecrm/internal/usecase"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError is the one place API failures turn into JSON. OAuth callback
// failures never come through here; the user agent is mid-redirect and gets
// sent back to the frontend instead.
func writeError(w http.ResponseWriter, err error) {
	var validationErrs usecase.ValidationErrors
	if errors.As(err, &validationErrs) {
		fields := make([]map[string]string, len(validationErrs))
		for i, v := range validationErrs {
			fields[i] = map[string]string{"field": v.Field, "message": v.Message}
		}
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   "validation failed",
			"fields":  fields,
		})
		return
	}

	var status int
	switch err.(type) {
	case *usecase.AuthenticationError:
		status = http.StatusUnauthorized
	case *usecase.AuthorizationError:
		status = http.StatusForbidden
	case *usecase.NotFoundError:
		status = http.StatusNotFound
	case *usecase.ConflictError:
		status = http.StatusConflict
	case *usecase.OAuthProviderError:
		status = http.StatusBadGateway
	default:
		log.Printf("internal error: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"error":   "internal server error",
		})
		return
	}

	writeJSON(w, status, map[string]any{
		"success": false,
		"error":   err.Error(),
	})
}
