package rest

import (
	"encoding/json"
	"net/http"

	"github.com/cockroachdb/errors"
	"github.com/go-chi/chi/v5"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/moodmix/internal/app/playlist"
	domain "github.com/osa030/moodmix/internal/domain/playlist"
	"github.com/osa030/moodmix/internal/infra/store"
)

const (
	msgMoodRequired     = "Mood is required"
	msgInvalidBody      = "Invalid request body"
	msgGenerationFailed = "Failed to generate playlist"
	msgDatabaseMissing  = "Database not available"
	msgFetchFailed      = "Failed to fetch playlists"
	msgDeleteFailed     = "Failed to delete playlist"
	msgPlaylistDeleted  = "Playlist deleted successfully"
	msgHealthy          = "MoodMix API is running"
	maxRequestBodyBytes = 1 << 20
)

// apiError is an error with the HTTP status and message shown to clients.
type apiError struct {
	status  int
	message string
	cause   error
}

func (e *apiError) Error() string {
	if e.cause != nil {
		return e.message + ": " + e.cause.Error()
	}
	return e.message
}

func (e *apiError) Unwrap() error { return e.cause }

func newAPIError(status int, message string, cause error) error {
	return &apiError{status: status, message: message, cause: cause}
}

// handlerFunc is an HTTP handler that returns an error instead of writing one.
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

// handle adapts a handlerFunc, writing {"error": message} on failure.
func handle(h handlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := h(w, r)
		if err == nil {
			return
		}

		var apiErr *apiError
		if !errors.As(err, &apiErr) {
			apiErr = &apiError{status: http.StatusInternalServerError, message: http.StatusText(http.StatusInternalServerError), cause: err}
		}
		if apiErr.status >= http.StatusInternalServerError {
			zlog.Error().Err(apiErr.cause).Msgf("Request failed: method=%s path=%s error=%s", r.Method, r.URL.Path, apiErr.message)
		}
		writeJSON(w, apiErr.status, map[string]string{"error": apiErr.message})
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zlog.Warn().Err(err).Msg("Failed to write response")
	}
}

type handlers struct {
	gen   Generator
	store Store
}

// health handles GET /api/health
func (h *handlers) health(w http.ResponseWriter, r *http.Request) error {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"message": msgHealthy,
	})
	return nil
}

// generatePlaylist handles POST /api/generate-playlist
func (h *handlers) generatePlaylist(w http.ResponseWriter, r *http.Request) error {
	var req domain.Request
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)).Decode(&req); err != nil {
		return newAPIError(http.StatusBadRequest, msgInvalidBody, err)
	}

	p, err := h.gen.Generate(r.Context(), req)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrMoodRequired):
		return newAPIError(http.StatusBadRequest, msgMoodRequired, err)
	default:
		return newAPIError(http.StatusInternalServerError, msgGenerationFailed, err)
	}

	writeJSON(w, http.StatusOK, p)
	return nil
}

// listPlaylists handles GET /api/playlists/{userId}
func (h *handlers) listPlaylists(w http.ResponseWriter, r *http.Request) error {
	userID := chi.URLParam(r, "userId")

	playlists, err := h.store.ListByUser(r.Context(), userID)
	if err != nil {
		return storeError(err, msgFetchFailed)
	}

	writeJSON(w, http.StatusOK, playlists)
	return nil
}

// deletePlaylist handles DELETE /api/playlists/{playlistId}
// No ownership check is made; any caller may delete any playlist by id.
func (h *handlers) deletePlaylist(w http.ResponseWriter, r *http.Request) error {
	id := chi.URLParam(r, "playlistId")

	if err := h.store.Delete(r.Context(), id); err != nil {
		return storeError(err, msgDeleteFailed)
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": msgPlaylistDeleted})
	return nil
}

func storeError(err error, message string) error {
	if errors.Is(err, store.ErrUnavailable) {
		return newAPIError(http.StatusInternalServerError, msgDatabaseMissing, err)
	}
	return newAPIError(http.StatusInternalServerError, message, err)
}

var (
	_ Generator = (*playlist.Service)(nil)
	_ Store     = (*playlist.StoreService)(nil)
)
