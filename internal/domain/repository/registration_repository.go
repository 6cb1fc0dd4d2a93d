package repository

import (
	"context"

	"github.com/mumanal/actualizacion-datos/internal/domain/entity"
)

// RegistrationRepository defines the operations offered by the remote registration sheet.
type RegistrationRepository interface {
	Add(ctx context.Context, r entity.Registration) error
	List(ctx context.Context) ([]entity.RegisteredUser, error)
	Delete(ctx context.Context, id string) error
}
