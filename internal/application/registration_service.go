package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/mumanal/actualizacion-datos/config"
	"github.com/mumanal/actualizacion-datos/internal/domain/entity"
	repo "github.com/mumanal/actualizacion-datos/internal/domain/repository"
	"github.com/mumanal/actualizacion-datos/pkg/mailer"
	mailtpl "github.com/mumanal/actualizacion-datos/pkg/mailer/templates"
	"github.com/mumanal/actualizacion-datos/pkg/validation"
)

var (
	ErrInvalidRegistration = errors.New("invalid registration")
	ErrSubmitFailed        = errors.New("registration submit failed")
	ErrListFailed          = errors.New("registration list failed")
	ErrDeleteFailed        = errors.New("registration delete failed")
	ErrMissingID           = errors.New("missing registration id")
)

const (
	defaultSearchSize = 10
	maxSearchSize     = 50
)

// JobPublisher queues an email job for the receipt worker.
type JobPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// Indexer keeps the search index in step with the sheet.
type Indexer interface {
	Index(ctx context.Context, r entity.Registration, at time.Time) error
	DeleteByCI(ctx context.Context, ci string) error
	Search(ctx context.Context, q string, size int) ([]entity.Registration, error)
}

type Service struct {
	Repo     repo.RegistrationRepository
	Receipts JobPublisher // nil disables receipt emails
	Index    Indexer      // nil disables search
	Cfg      *config.Config
	Logger   *logrus.Logger

	inflight singleflight.Group
	now      func() time.Time
}

func NewService(repo repo.RegistrationRepository, receipts JobPublisher, index Indexer, cfg *config.Config, logger *logrus.Logger) *Service {
	return &Service{
		Repo:     repo,
		Receipts: receipts,
		Index:    index,
		Cfg:      cfg,
		Logger:   logger,
		now:      time.Now,
	}
}

// Submit validates r and forwards it to the sheet. Concurrent submissions
// of an identical record share a single upstream call; only the caller that
// made the call sends the receipt and indexes the record.
func (s *Service) Submit(ctx context.Context, r entity.Registration) (entity.Registration, error) {
	r = r.Normalize()
	if err := validation.Struct(r); err != nil {
		metrics.Add(metricInvalid, 1)
		return r, fmt.Errorf("%w: %w", ErrInvalidRegistration, err)
	}

	// detached so a follower is not failed by the leader's client going away;
	// the sheets client timeout still bounds the call
	addCtx := context.WithoutCancel(ctx)
	leader := false
	_, err, _ := s.inflight.Do(submitKey(r), func() (any, error) {
		leader = true
		return nil, s.Repo.Add(addCtx, r)
	})
	if err != nil {
		metrics.Add(metricFailed, 1)
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("ci", r.CI).Error("sheets add failed")
		}
		return r, fmt.Errorf("%w: %w", ErrSubmitFailed, err)
	}
	if !leader {
		metrics.Add(metricShared, 1)
		return r, nil
	}
	metrics.Add(metricSubmitted, 1)

	at := s.now()
	s.sendReceipt(ctx, r, at)
	s.indexRegistration(ctx, r, at)
	if s.Logger != nil {
		s.Logger.WithField("ci", r.CI).Info("registration submitted")
	}
	return r, nil
}

func submitKey(r entity.Registration) string {
	fields := r.Fields()
	vals := make([]string, len(fields))
	for i, kv := range fields {
		vals[i] = kv[1]
	}
	return strings.Join(vals, "\x1f")
}

func (s *Service) List(ctx context.Context) ([]entity.RegisteredUser, error) {
	users, err := s.Repo.List(ctx)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).Warn("sheets list failed")
		}
		return nil, fmt.Errorf("%w: %w", ErrListFailed, err)
	}
	return users, nil
}

// Delete removes row id from the sheet. ci, when known, also drops the search
// document once no remaining row carries it.
func (s *Service) Delete(ctx context.Context, id, ci string) error {
	if id == "" {
		return ErrMissingID
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("id", id).Error("sheets delete failed")
		}
		return fmt.Errorf("%w: %w", ErrDeleteFailed, err)
	}
	metrics.Add(metricDeleted, 1)
	if s.Index != nil && ci != "" && !s.ciStillListed(ctx, ci) {
		if err := s.Index.DeleteByCI(ctx, ci); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("ci", ci).Warn("es delete failed")
		}
	}
	return nil
}

// ciStillListed reports whether another sheet row carries ci. The search
// document is keyed by CI, so it stays while any row needs it. When the sheet
// cannot be read the document is kept.
func (s *Service) ciStillListed(ctx context.Context, ci string) bool {
	users, err := s.Repo.List(ctx)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("ci", ci).Warn("sheets list failed; keeping search document")
		}
		return true
	}
	for _, u := range users {
		if u.CI == ci {
			return true
		}
	}
	return false
}

// Search returns matching registrations, or none when search is not configured.
func (s *Service) Search(ctx context.Context, q string, size int) ([]entity.Registration, error) {
	if s.Index == nil || q == "" {
		return []entity.Registration{}, nil
	}
	switch {
	case size <= 0:
		size = defaultSearchSize
	case size > maxSearchSize:
		size = maxSearchSize
	}
	return s.Index.Search(ctx, q, size)
}

func (s *Service) sendReceipt(ctx context.Context, r entity.Registration, at time.Time) {
	if s.Receipts == nil || s.Cfg == nil {
		return
	}
	job := mailer.EmailJob{
		To:       r.Email,
		Template: mailtpl.RegistrationReceipt,
		Data:     mailtpl.NewRegistrationReceiptData(s.Cfg, r, mailtpl.WithTime(at)),
	}
	if err := s.Receipts.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("ci", r.CI).Warn("failed to publish receipt job")
	}
}

func (s *Service) indexRegistration(ctx context.Context, r entity.Registration, at time.Time) {
	if s.Index == nil {
		return
	}
	if err := s.Index.Index(ctx, r, at); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("ci", r.CI).Warn("es index failed")
	}
}
