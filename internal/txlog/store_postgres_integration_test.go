//go:build integration

package txlog_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"vitaran/internal/txlog"
	"vitaran/pkg/domain"
	"vitaran/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *txlog.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.postgres = mgr.GetPostgres(s.T())
	s.store = txlog.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "transactions"))
}

func (s *PostgresStoreSuite) record(status txlog.ClaimStatus, reason string) *txlog.Transaction {
	id, err := domain.ParseCitizenID("123456789012")
	s.Require().NoError(err)
	return &txlog.Transaction{
		ID:        domain.NewTransactionID(),
		CitizenID: id,
		Scheme:    "PM-KISAN",
		Amount:    50_000,
		Timestamp: time.Now().UTC().Truncate(time.Second),
		Status:    status,
		Reason:    reason,
	}
}

func (s *PostgresStoreSuite) TestAppendAndListRoundTrip() {
	ctx := context.Background()
	approved := s.record(txlog.StatusApproved, "")
	denied := s.record(txlog.StatusDenied, "insufficient budget")

	s.Require().NoError(s.store.Append(ctx, approved))
	s.Require().NoError(s.store.Append(ctx, denied))

	ts, err := s.store.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(ts, 2)

	// Insertion order, full fidelity.
	s.Equal(approved.ID, ts[0].ID)
	s.Equal(txlog.StatusApproved, ts[0].Status)
	s.Empty(ts[0].Reason)
	s.Equal(denied.ID, ts[1].ID)
	s.Equal(txlog.StatusDenied, ts[1].Status)
	s.Equal("insufficient budget", ts[1].Reason)

	count, err := s.store.Count(ctx)
	s.Require().NoError(err)
	s.Equal(2, count)
}

func (s *PostgresStoreSuite) TestHistorySurvivesWithoutCitizenRow() {
	// No foreign key: a transaction for a purged citizen remains queryable.
	ctx := context.Background()
	s.Require().NoError(s.store.Append(ctx, s.record(txlog.StatusApproved, "")))

	ts, err := s.store.List(ctx)
	s.Require().NoError(err)
	s.Len(ts, 1)
}
