//go:build integration

package citizen_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"vitaran/internal/citizen"
	"vitaran/pkg/platform/sentinel"
	"vitaran/pkg/testutil"
	"vitaran/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *citizen.PostgresStore
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
	s.store = citizen.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "citizens"))
}

func (s *PostgresStoreSuite) TestInsertAndGetRoundTrip() {
	ctx := context.Background()
	c := testutil.NewCitizen("123456789012").Build()

	s.Require().NoError(s.store.Insert(ctx, c))

	got, err := s.store.Get(ctx, c.ID)
	s.Require().NoError(err)
	s.Equal(c.ID, got.ID)
	s.Equal(c.Name, got.Name)
	s.Equal(c.Scheme, got.Scheme)
	s.Equal(c.Amount, got.Amount)
	s.Equal(citizen.AccountActive, got.AccountStatus)
	s.Equal(citizen.AadhaarLinked, got.AadhaarStatus)
	s.Zero(got.Claims)
	s.Nil(got.LastClaim)
}

func (s *PostgresStoreSuite) TestInsertDuplicateReturnsConflict() {
	ctx := context.Background()
	c := testutil.NewCitizen("123456789012").Build()

	s.Require().NoError(s.store.Insert(ctx, c))
	s.ErrorIs(s.store.Insert(ctx, c), sentinel.ErrConflict)
}

func (s *PostgresStoreSuite) TestGetUnknownReturnsNotFound() {
	_, err := s.store.Get(context.Background(), testutil.NewCitizen("999999999999").Build().ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestInsertBatchIsAllOrNothing() {
	ctx := context.Background()
	existing := testutil.NewCitizen("111111111111").Build()
	s.Require().NoError(s.store.Insert(ctx, existing))

	err := s.store.InsertBatch(ctx, []*citizen.Citizen{
		testutil.NewCitizen("222222222222").Build(),
		existing,
	})
	s.ErrorIs(err, sentinel.ErrConflict)

	// The fresh record must not have landed.
	_, err = s.store.Get(ctx, testutil.NewCitizen("222222222222").Build().ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestListPreservesInsertionOrder() {
	ctx := context.Background()
	ids := []string{"333333333333", "111111111111", "222222222222"}
	for _, id := range ids {
		s.Require().NoError(s.store.Insert(ctx, testutil.NewCitizen(id).Build()))
	}

	cs, err := s.store.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(cs, 3)
	for i, id := range ids {
		s.Equal(id, string(cs[i].ID))
	}
}

func (s *PostgresStoreSuite) TestRecordClaimEnforcesCapAtomically() {
	ctx := context.Background()
	c := testutil.NewCitizen("123456789012").Build()
	s.Require().NoError(s.store.Insert(ctx, c))

	now := time.Now().UTC().Truncate(time.Second)

	// 10 concurrent attempts against a cap of 3: exactly 3 may win.
	result := testutil.RunConcurrent(10, func(int) error {
		return s.store.RecordClaim(ctx, c.ID, now, 3)
	})
	s.Equal(int32(3), result.Successes)

	got, err := s.store.Get(ctx, c.ID)
	s.Require().NoError(err)
	s.Equal(3, got.Claims)
	s.Require().NotNil(got.LastClaim)
	s.WithinDuration(now, *got.LastClaim, time.Second)
}

func (s *PostgresStoreSuite) TestDeleteInactive() {
	ctx := context.Background()
	s.Require().NoError(s.store.Insert(ctx, testutil.NewCitizen("111111111111").Build()))
	s.Require().NoError(s.store.Insert(ctx, testutil.NewCitizen("222222222222").Inactive().Build()))
	s.Require().NoError(s.store.Insert(ctx, testutil.NewCitizen("333333333333").Inactive().Build()))

	removed, err := s.store.DeleteInactive(ctx)
	s.Require().NoError(err)
	s.Equal(2, removed)

	count, err := s.store.Count(ctx)
	s.Require().NoError(err)
	s.Equal(1, count)
}

func (s *PostgresStoreSuite) TestUpdateAadhaarStatus() {
	ctx := context.Background()
	c := testutil.NewCitizen("123456789012").Unlinked().Build()
	s.Require().NoError(s.store.Insert(ctx, c))

	s.Require().NoError(s.store.UpdateAadhaarStatus(ctx, c.ID, citizen.AadhaarLinked))

	got, err := s.store.Get(ctx, c.ID)
	s.Require().NoError(err)
	s.Equal(citizen.AadhaarLinked, got.AadhaarStatus)

	err = s.store.UpdateAadhaarStatus(ctx, testutil.NewCitizen("999999999999").Build().ID, citizen.AadhaarLinked)
	s.ErrorIs(err, sentinel.ErrNotFound)
}
