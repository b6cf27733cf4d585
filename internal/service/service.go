// Package service holds the business rules: input checks, the ownership
// guard on every mutation, asset uploads and the read-model aggregation.
// Services return *apperr.Error values; handlers only map them to HTTP.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lalith-99/vidora/internal/apperr"
	"github.com/lalith-99/vidora/internal/models"
	"github.com/lalith-99/vidora/internal/repository"
	"github.com/lalith-99/vidora/internal/storage"
	"go.uber.org/zap"
)

// loadOwned fetches an entity and checks that actorID owns it. The
// check runs before anything else in a mutation, so a non-owner never
// learns whether their input would have been valid.
func loadOwned[E any, P interface {
	*E
	models.Owned
}](ctx context.Context, get func(context.Context, uuid.UUID) (P, error), id, actorID uuid.UUID, noun string) (P, error) {
	entity, err := get(ctx, id)
	if err != nil {
		return nil, apperr.Internal("failed to load "+noun, err)
	}
	if entity == nil {
		return nil, notFound(noun)
	}
	if entity.OwnedBy() != actorID {
		return nil, apperr.Forbidden("You are not the owner of this " + noun)
	}
	return entity, nil
}

func notFound(noun string) error {
	return apperr.NotFound(strings.ToUpper(noun[:1]) + noun[1:] + " not found")
}

func isDuplicate(err error) bool {
	return errors.Is(err, repository.ErrDuplicate)
}

// orderByIDs returns the videos in the order of ids. Repeated ids yield
// repeated entries; ids without a video are skipped.
func orderByIDs(ids []uuid.UUID, videos []models.VideoView) []models.VideoView {
	byID := make(map[uuid.UUID]models.VideoView, len(videos))
	for _, v := range videos {
		byID[v.ID] = v
	}

	ordered := make([]models.VideoView, 0, len(ids))
	for _, id := range ids {
		if v, ok := byID[id]; ok {
			ordered = append(ordered, v)
		}
	}
	return ordered
}

// filterVisible drops the videos viewer may not see.
func filterVisible(videos []models.VideoView, viewer uuid.UUID) []models.VideoView {
	out := videos[:0]
	for _, v := range videos {
		if v.VisibleTo(viewer) {
			out = append(out, v)
		}
	}
	return out
}

// assets wraps the asset store with the upload and best-effort cleanup
// rules every service shares.
type assets struct {
	store  storage.AssetStore
	logger *zap.Logger
}

func (a assets) upload(ctx context.Context, folder string, f *storage.File) (string, error) {
	url, err := a.store.Upload(ctx, folder, f.Name, f.ContentType, f.Reader, f.Size)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", folder, err)
	}
	return url, nil
}

// discard deletes objects that are no longer referenced. Failures only
// leave an orphan behind, so they are logged and swallowed.
func (a assets) discard(ctx context.Context, urls ...string) {
	ctx = context.WithoutCancel(ctx)
	for _, url := range urls {
		if url == "" {
			continue
		}
		if err := a.store.Delete(ctx, url); err != nil {
			a.logger.Warn("failed to delete asset", zap.String("url", url), zap.Error(err))
		}
	}
}
