package templates

import (
	"time"

	"github.com/mumanal/actualizacion-datos/config"
	"github.com/mumanal/actualizacion-datos/internal/domain/entity"
)

// Option pattern
type Option func(*EmailData)

func WithTime(t time.Time) Option {
	return func(d *EmailData) {
		d.Time = t.UTC().Format("02/01/2006 15:04 UTC")
	}
}

// NewBaseEmailData fills the organisation fields from config, then applies opts.
func NewBaseEmailData(cfg *config.Config, name, email string, opts ...Option) EmailData {
	d := EmailData{
		Name:  name,
		Email: email,

		CompanyName: cfg.CompanyName,
		LogoURL:     cfg.LogoURL,
		SupportURL:  cfg.SupportURL,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

// NewRegistrationReceiptData builds the data map for a registration receipt.
func NewRegistrationReceiptData(cfg *config.Config, r entity.Registration, opts ...Option) map[string]any {
	d := NewBaseEmailData(cfg, r.FullName(), r.Email, opts...)
	d.FirstName = r.FirstName
	d.PaternalLastName = r.PaternalLastName
	d.MaternalLastName = r.MaternalLastName
	d.CI = r.CI
	return ToMap(d)
}
