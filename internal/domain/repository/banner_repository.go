package repository

import (
	"context"

	"github.com/mumanal/actualizacion-datos/internal/domain/entity"
)

// BannerStore keeps one pending banner per browser session until it is read or expires.
type BannerStore interface {
	Set(ctx context.Context, sessionID string, b entity.Banner) error
	// Pop returns the pending banner and clears it. ok is false when none is pending.
	Pop(ctx context.Context, sessionID string) (b entity.Banner, ok bool, err error)
}
