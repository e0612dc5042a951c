// Package service implements claim adjudication: the fixed, short-circuiting
// gate sequence that decides whether a citizen receives a disbursement.
//
// All mutation runs inside a single mutual-exclusion domain. A claim's
// "check gates, commit" sequence is indivisible with respect to every other
// claim, because all citizens compete for the same budget pool. The
// administrative operations (status change, budget reset) serialize against
// in-flight claims through the same lock.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"vitaran/internal/audit"
	"vitaran/internal/citizen"
	"vitaran/internal/claims"
	"vitaran/internal/claims/metrics"
	"vitaran/internal/claims/tracer"
	"vitaran/internal/ledger"
	"vitaran/internal/system"
	"vitaran/internal/txlog"
	"vitaran/pkg/domain"
	dErrors "vitaran/pkg/domain-errors"
	"vitaran/pkg/platform/sentinel"
	"vitaran/pkg/requestcontext"
)

// TxRunner executes fn inside a storage transaction when the backing store
// supports one. The default runner is a passthrough for in-memory stores.
type TxRunner func(ctx context.Context, fn func(ctx context.Context) error) error

func passthroughTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type AuditPublisher interface {
	Emit(ctx context.Context, base audit.Event) error
}

// Service is the claim adjudicator.
type Service struct {
	mu sync.Mutex

	citizens citizen.Store
	budget   ledger.Store
	log      txlog.Store
	control  system.Store

	runTx        TxRunner
	logger       *slog.Logger
	auditor      AuditPublisher
	metrics      *metrics.Metrics
	tracer       *tracer.Tracer
	maxClaims    int
	cooldownDays int
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

func WithTracer(t *tracer.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

// WithTxRunner wraps the commit in a storage transaction.
func WithTxRunner(runner TxRunner) Option {
	return func(s *Service) {
		s.runTx = runner
	}
}

// WithLimits overrides the claim cap and cooldown window.
func WithLimits(maxClaims, cooldownDays int) Option {
	return func(s *Service) {
		s.maxClaims = maxClaims
		s.cooldownDays = cooldownDays
	}
}

// New constructs the adjudicator with default limits: three claims per
// citizen, thirty days apart.
func New(citizens citizen.Store, budget ledger.Store, log txlog.Store, control system.Store, opts ...Option) *Service {
	s := &Service{
		citizens:     citizens,
		budget:       budget,
		log:          log,
		control:      control,
		runTx:        passthroughTx,
		maxClaims:    3,
		cooldownDays: 30,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Adjudicate evaluates one claim. The gate order is fixed: system state,
// lookup, eligibility, budget, frequency. The first failing gate supplies the
// denial reason even when later gates would also fail. Denials append a
// transaction record; system-state rejections and hard errors do not.
func (s *Service) Adjudicate(ctx context.Context, rawID, scheme string, amount int64) (*claims.Decision, error) {
	start := time.Now()
	defer s.observeAdjudicate(start)

	id, err := domain.ParseCitizenID(rawID)
	if err != nil {
		return nil, err
	}
	if amount < 0 {
		return nil, dErrors.New(dErrors.CodeInvalidAmount, "amount must be non-negative")
	}

	span := noopSpan
	if s.tracer != nil {
		ctx, span = s.startSpan(ctx, string(id), scheme)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// System-state check. Not a business denial: nothing is written to the
	// transaction log, but the rejection is still audited.
	status, err := s.control.Get(ctx)
	if err != nil {
		return nil, span.fail(dErrors.Wrap(err, dErrors.CodeInternal, "failed to read system status"))
	}
	if status != system.StatusActive {
		s.emitAudit(ctx, audit.Event{
			Action:    audit.ActionClaimRejected,
			CitizenID: string(id),
			Scheme:    scheme,
			Amount:    amount,
			Reason:    "system is " + string(status),
		})
		if s.metrics != nil {
			s.metrics.ClaimsRejected.Inc()
		}
		return nil, span.fail(dErrors.New(dErrors.CodeInvalidState, "system is "+string(status)))
	}

	c, err := s.citizens.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, span.fail(dErrors.New(dErrors.CodeNotFound, "citizen not found"))
		}
		return nil, span.fail(dErrors.Wrap(err, dErrors.CodeInternal, "failed to load citizen"))
	}

	// The stored scheme and amount are the source of truth. A caller whose
	// copy disagrees is out of sync and must not be silently trusted.
	if scheme != c.Scheme {
		return nil, span.fail(dErrors.New(dErrors.CodeValidation,
			fmt.Sprintf("scheme mismatch: claim names %q, citizen is enrolled in %q", scheme, c.Scheme)))
	}
	if amount != c.Amount {
		return nil, span.fail(dErrors.New(dErrors.CodeValidation,
			fmt.Sprintf("amount mismatch: claim names %d, enrolled amount is %d", amount, c.Amount)))
	}

	now := requestcontext.Now(ctx)

	// Gate 1: eligibility. First failing condition in this order wins.
	if c.AccountStatus != citizen.AccountActive {
		return s.deny(ctx, span, c, now, claims.GateEligibility, "account status is not active")
	}
	if c.AadhaarStatus != citizen.AadhaarLinked {
		return s.deny(ctx, span, c, now, claims.GateEligibility, "aadhaar is not linked")
	}
	if c.Claims >= s.maxClaims {
		return s.deny(ctx, span, c, now, claims.GateEligibility,
			fmt.Sprintf("maximum claims (%d) reached", s.maxClaims))
	}

	// Gate 2: budget.
	remaining, err := s.budget.Budget(ctx)
	if err != nil {
		return nil, span.fail(dErrors.Wrap(err, dErrors.CodeInternal, "failed to read budget"))
	}
	if remaining < c.Amount {
		return s.deny(ctx, span, c, now, claims.GateBudget, "insufficient budget")
	}

	// Gate 3: frequency. Whole 24-hour days, floored; no calendar math.
	if c.LastClaim != nil {
		days := int(now.Sub(*c.LastClaim).Hours() / 24)
		if days < s.cooldownDays {
			return s.deny(ctx, span, c, now, claims.GateFrequency,
				fmt.Sprintf("minimum %d days between claims required; days since last claim: %d", s.cooldownDays, days))
		}
	}

	return s.commit(ctx, span, c, now)
}

// commit executes the approval as one atomic unit: debit the ledger, stamp
// the citizen, append the approved transaction. A debit that loses a
// last-moment race is reported as a budget denial, not a fault.
func (s *Service) commit(ctx context.Context, span spanCloser, c *citizen.Citizen, now time.Time) (*claims.Decision, error) {
	record := &txlog.Transaction{
		ID:        domain.NewTransactionID(),
		CitizenID: c.ID,
		Scheme:    c.Scheme,
		Amount:    c.Amount,
		Timestamp: now,
		Status:    txlog.StatusApproved,
	}

	var raced bool
	err := s.runTx(ctx, func(ctx context.Context) error {
		if err := s.budget.Debit(ctx, c.Amount); err != nil {
			if errors.Is(err, sentinel.ErrInsufficientBudget) {
				raced = true
				return err
			}
			return fmt.Errorf("debit budget: %w", err)
		}
		if err := s.citizens.RecordClaim(ctx, c.ID, now, s.maxClaims); err != nil {
			return fmt.Errorf("record claim: %w", err)
		}
		if err := s.log.Append(ctx, record); err != nil {
			return fmt.Errorf("append transaction: %w", err)
		}
		return nil
	})
	if err != nil {
		if raced {
			return s.deny(ctx, span, c, now, claims.GateBudget, "insufficient budget")
		}
		return nil, span.fail(dErrors.Wrap(err, dErrors.CodeInternal, "claim commit failed"))
	}

	s.emitAudit(ctx, audit.Event{
		Action:    audit.ActionClaimApproved,
		CitizenID: string(c.ID),
		Scheme:    c.Scheme,
		Amount:    c.Amount,
		Decision:  string(txlog.StatusApproved),
	})
	if s.metrics != nil {
		s.metrics.ClaimsApproved.Inc()
		s.metrics.AmountDisbursed.Add(float64(c.Amount))
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "claim approved",
			"citizen_id", string(c.ID),
			"scheme", c.Scheme,
			"amount", c.Amount,
		)
	}

	span.approved(c.Amount)
	return &claims.Decision{Approved: true, Transaction: record}, nil
}

// deny appends the denied transaction and reports the first failing gate.
// Registry and ledger state are left untouched.
func (s *Service) deny(ctx context.Context, span spanCloser, c *citizen.Citizen, now time.Time, gate claims.Gate, reason string) (*claims.Decision, error) {
	record := &txlog.Transaction{
		ID:        domain.NewTransactionID(),
		CitizenID: c.ID,
		Scheme:    c.Scheme,
		Amount:    c.Amount,
		Timestamp: now,
		Status:    txlog.StatusDenied,
		Reason:    reason,
	}
	if err := s.log.Append(ctx, record); err != nil {
		return nil, span.fail(dErrors.Wrap(err, dErrors.CodeInternal, "failed to record denial"))
	}

	s.emitAudit(ctx, audit.Event{
		Action:    audit.ActionClaimDenied,
		CitizenID: string(c.ID),
		Scheme:    c.Scheme,
		Amount:    c.Amount,
		Decision:  string(txlog.StatusDenied),
		Reason:    reason,
	})
	if s.metrics != nil {
		s.metrics.IncrementDenied(string(gate))
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "claim denied",
			"citizen_id", string(c.ID),
			"gate", string(gate),
			"reason", reason,
		)
	}

	span.denied(string(gate))
	return &claims.Decision{Approved: false, Gate: gate, Reason: reason, Transaction: record}, nil
}

// SystemStatus reads the control flag.
func (s *Service) SystemStatus(ctx context.Context) (system.Status, error) {
	status, err := s.control.Get(ctx)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to read system status")
	}
	return status, nil
}

// SetSystemStatus moves the control flag. Serializes against in-flight
// claims so a pause either blocks a claim or loses to it cleanly.
func (s *Service) SetSystemStatus(ctx context.Context, raw string) (system.Status, error) {
	status, ok := system.ParseStatus(raw)
	if !ok {
		return "", dErrors.New(dErrors.CodeValidation, "unknown system status value")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.control.Set(ctx, status); err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to set system status")
	}

	s.emitAudit(ctx, audit.Event{
		Action:   audit.ActionStatusChanged,
		Decision: string(status),
	})
	if s.logger != nil {
		s.logger.InfoContext(ctx, "system status changed", "status", string(status))
	}
	return status, nil
}

// Budget reads the remaining budget.
func (s *Service) Budget(ctx context.Context) (int64, error) {
	remaining, err := s.budget.Budget(ctx)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read budget")
	}
	return remaining, nil
}

// TotalDisbursed reads the cumulative disbursed amount.
func (s *Service) TotalDisbursed(ctx context.Context) (int64, error) {
	total, err := s.budget.TotalDisbursed(ctx)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read total disbursed")
	}
	return total, nil
}

// ResetBudget overwrites the remaining budget. This is the only way to
// restore budget after exhaustion; it never alters TotalDisbursed.
func (s *Service) ResetBudget(ctx context.Context, amount int64) error {
	if amount < 0 {
		return dErrors.New(dErrors.CodeInvalidAmount, "budget must be non-negative")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.budget.Reset(ctx, amount); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to reset budget")
	}

	s.emitAudit(ctx, audit.Event{
		Action: audit.ActionBudgetReset,
		Amount: amount,
	})
	if s.logger != nil {
		s.logger.InfoContext(ctx, "budget reset", "amount", amount)
	}
	return nil
}

// Transactions lists the full log in insertion order.
func (s *Service) Transactions(ctx context.Context) ([]*txlog.Transaction, error) {
	ts, err := s.log.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list transactions")
	}
	return ts, nil
}

// CountTransactions reports the log size.
func (s *Service) CountTransactions(ctx context.Context) (int, error) {
	n, err := s.log.Count(ctx)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to count transactions")
	}
	return n, nil
}

func (s *Service) emitAudit(ctx context.Context, event audit.Event) {
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

func (s *Service) observeAdjudicate(start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveAdjudicate(start)
	}
}
