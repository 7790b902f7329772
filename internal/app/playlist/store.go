package playlist

import (
	"context"

	domain "github.com/osa030/moodmix/internal/domain/playlist"
	"github.com/osa030/moodmix/internal/infra/store"
)

// Repository persists playlist documents.
type Repository interface {
	Save(ctx context.Context, p domain.Playlist) (string, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Playlist, error)
	Delete(ctx context.Context, id string) error
}

// StoreService gives access to saved playlists.
// Without a repository every operation fails with store.ErrUnavailable.
type StoreService struct {
	repo Repository
}

// NewStoreService creates a new StoreService. repo may be nil.
func NewStoreService(repo Repository) *StoreService {
	return &StoreService{repo: repo}
}

// Available reports whether a repository is connected.
func (s *StoreService) Available() bool {
	return s != nil && s.repo != nil
}

// Save stores the playlist and returns its new ID.
func (s *StoreService) Save(ctx context.Context, p domain.Playlist) (string, error) {
	if !s.Available() {
		return "", store.ErrUnavailable
	}
	return s.repo.Save(ctx, p)
}

// ListByUser returns the user's playlists, newest first.
func (s *StoreService) ListByUser(ctx context.Context, userID string) ([]domain.Playlist, error) {
	if !s.Available() {
		return nil, store.ErrUnavailable
	}
	playlists, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if playlists == nil {
		playlists = []domain.Playlist{}
	}
	return playlists, nil
}

// Delete removes a playlist. Deleting an unknown ID succeeds.
func (s *StoreService) Delete(ctx context.Context, id string) error {
	if !s.Available() {
		return store.ErrUnavailable
	}
	return s.repo.Delete(ctx, id)
}
