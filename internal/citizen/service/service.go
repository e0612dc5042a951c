// Package service orchestrates citizen registry operations: registration,
// batch import, aadhaar linking, and purging of inactive accounts.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"vitaran/internal/audit"
	"vitaran/internal/citizen"
	"vitaran/internal/citizen/metrics"
	"vitaran/pkg/domain"
	dErrors "vitaran/pkg/domain-errors"
	"vitaran/pkg/platform/sentinel"
	"vitaran/pkg/requestcontext"
)

type AuditPublisher interface {
	Emit(ctx context.Context, base audit.Event) error
}

// Service wraps the registry store with validation, auditing, and metrics.
type Service struct {
	store   citizen.Store
	logger  *slog.Logger
	auditor AuditPublisher
	metrics *metrics.Metrics
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditor = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// New constructs a Service.
func New(store citizen.Store, opts ...Option) *Service {
	s := &Service{store: store}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register validates and inserts a single citizen record.
func (s *Service) Register(ctx context.Context, in citizen.InputCitizen) (*citizen.Citizen, error) {
	start := time.Now()
	defer s.observeRegister(start)

	c, err := in.Validate()
	if err != nil {
		return nil, err
	}

	if err := s.store.Insert(ctx, c); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeDuplicateID, "citizen id already registered")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to register citizen")
	}

	s.emitAudit(ctx, audit.Event{
		Action:    audit.ActionCitizenRegistered,
		CitizenID: string(c.ID),
		Scheme:    c.Scheme,
		Amount:    c.Amount,
	})
	if s.metrics != nil {
		s.metrics.CitizensRegistered.Inc()
	}
	return c, nil
}

// RegisterBatch validates and inserts many records as a unit. A single
// invalid or duplicate entry rejects the whole batch.
func (s *Service) RegisterBatch(ctx context.Context, ins []citizen.InputCitizen) ([]*citizen.Citizen, error) {
	start := time.Now()
	defer s.observeRegister(start)

	if len(ins) == 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "batch is empty")
	}

	records := make([]*citizen.Citizen, 0, len(ins))
	seen := make(map[domain.CitizenID]struct{}, len(ins))
	for _, in := range ins {
		c, err := in.Validate()
		if err != nil {
			return nil, err
		}
		if _, dup := seen[c.ID]; dup {
			return nil, dErrors.New(dErrors.CodeDuplicateID, "batch contains duplicate citizen id "+string(c.ID))
		}
		seen[c.ID] = struct{}{}
		records = append(records, c)
	}

	if err := s.store.InsertBatch(ctx, records); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeDuplicateID, "batch contains an already registered citizen id")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to import citizens")
	}

	s.emitAudit(ctx, audit.Event{
		Action: audit.ActionCitizensImported,
		Amount: int64(len(records)),
	})
	if s.metrics != nil {
		s.metrics.CitizensImported.Add(float64(len(records)))
	}
	return records, nil
}

// Get fetches a single record by ID.
func (s *Service) Get(ctx context.Context, rawID string) (*citizen.Citizen, error) {
	start := time.Now()
	defer s.observeLookup(start)

	id, err := domain.ParseCitizenID(rawID)
	if err != nil {
		return nil, err
	}

	c, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "citizen not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load citizen")
	}
	return c, nil
}

// List returns all records in registration order.
func (s *Service) List(ctx context.Context) ([]*citizen.Citizen, error) {
	start := time.Now()
	defer s.observeLookup(start)

	cs, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list citizens")
	}
	return cs, nil
}

// Count reports the registry size.
func (s *Service) Count(ctx context.Context) (int, error) {
	n, err := s.store.Count(ctx)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to count citizens")
	}
	return n, nil
}

// UpdateAadhaarStatus links or unlinks aadhaar for an existing citizen.
func (s *Service) UpdateAadhaarStatus(ctx context.Context, rawID string, status citizen.AadhaarStatus) error {
	id, err := domain.ParseCitizenID(rawID)
	if err != nil {
		return err
	}
	if !status.IsValid() {
		return dErrors.New(dErrors.CodeValidation, "unknown aadhaar status value")
	}

	if err := s.store.UpdateAadhaarStatus(ctx, id, status); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "citizen not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update aadhaar status")
	}

	s.emitAudit(ctx, audit.Event{
		Action:    audit.ActionAadhaarUpdated,
		CitizenID: string(id),
		Decision:  string(status),
	})
	if s.metrics != nil {
		s.metrics.AadhaarUpdates.Inc()
	}
	return nil
}

// PurgeInactive removes every inactive record and reports the count.
// Transaction history for purged citizens is retained.
func (s *Service) PurgeInactive(ctx context.Context) (int, error) {
	removed, err := s.store.DeleteInactive(ctx)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to purge inactive citizens")
	}

	if removed > 0 {
		s.emitAudit(ctx, audit.Event{
			Action: audit.ActionInactivePurged,
			Amount: int64(removed),
		})
		if s.metrics != nil {
			s.metrics.CitizensPurged.Add(float64(removed))
		}
	}
	return removed, nil
}

func (s *Service) emitAudit(ctx context.Context, event audit.Event) {
	if s.logger != nil {
		s.logger.InfoContext(ctx, string(event.Action),
			"citizen_id", event.CitizenID,
			"request_id", requestcontext.RequestID(ctx),
			"log_type", "audit",
		)
	}
	if s.auditor == nil {
		return
	}
	event.RequestID = requestcontext.RequestID(ctx)
	event.ClientIP = requestcontext.ClientIP(ctx)
	event.Channel = requestcontext.Channel(ctx)
	if err := s.auditor.Emit(ctx, event); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "audit emit failed", "error", err)
	}
}

func (s *Service) observeRegister(start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveRegister(start)
	}
}

func (s *Service) observeLookup(start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveLookup(start)
	}
}
