package service

//go:generate mockgen -destination=../mocks/mocks.go -package=mocks vitaran/internal/citizen Store

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"vitaran/internal/audit"
	"vitaran/internal/citizen"
	"vitaran/internal/citizen/mocks"
	dErrors "vitaran/pkg/domain-errors"
	"vitaran/pkg/platform/sentinel"
)

type CitizenServiceSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	mockStore *mocks.MockStore
	auditSink *audit.InMemoryStore
	service   *Service
}

func TestCitizenServiceSuite(t *testing.T) {
	suite.Run(t, new(CitizenServiceSuite))
}

func (s *CitizenServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockStore = mocks.NewMockStore(s.ctrl)
	s.auditSink = audit.NewInMemoryStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.service = New(
		s.mockStore,
		WithLogger(logger),
		WithAuditPublisher(audit.NewPublisher(s.auditSink)),
	)
}

func (s *CitizenServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *CitizenServiceSuite) SetupSubTest() {
	s.SetupTest()
}

func validInput(id string) citizen.InputCitizen {
	return citizen.InputCitizen{
		ID:            id,
		Name:          "Asha Devi",
		DOB:           time.Date(1985, 4, 12, 0, 0, 0, 0, time.UTC),
		Gender:        citizen.GenderFemale,
		MaritalStatus: citizen.MaritalMarried,
		Scheme:        "PM-KISAN",
		Amount:        50_000,
	}
}

func (s *CitizenServiceSuite) TestRegister() {
	s.Run("valid input inserts and audits", func() {
		s.mockStore.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

		c, err := s.service.Register(context.Background(), validInput("123456789012"))
		s.Require().NoError(err)
		s.Equal("123456789012", string(c.ID))
		s.Equal(citizen.AccountActive, c.AccountStatus)
		s.Equal(citizen.AadhaarUnlinked, c.AadhaarStatus)
		s.Zero(c.Claims)
		s.Nil(c.LastClaim)

		events := s.auditSink.ByAction(audit.ActionCitizenRegistered)
		s.Require().Len(events, 1)
		s.Equal("123456789012", events[0].CitizenID)
	})

	s.Run("malformed id never reaches the store", func() {
		_, err := s.service.Register(context.Background(), validInput("12345"))
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("duplicate id maps conflict to duplicate code", func() {
		s.mockStore.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(sentinel.ErrConflict)

		_, err := s.service.Register(context.Background(), validInput("123456789012"))
		s.True(dErrors.HasCode(err, dErrors.CodeDuplicateID))
	})

	s.Run("store failure maps to internal", func() {
		s.mockStore.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("connection reset"))

		_, err := s.service.Register(context.Background(), validInput("123456789012"))
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})
}

func (s *CitizenServiceSuite) TestRegisterBatch() {
	s.Run("empty batch is rejected", func() {
		_, err := s.service.RegisterBatch(context.Background(), nil)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("one invalid entry rejects the whole batch", func() {
		bad := validInput("not-a-number")
		_, err := s.service.RegisterBatch(context.Background(), []citizen.InputCitizen{
			validInput("111111111111"), bad,
		})
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("internal duplicate rejects the whole batch", func() {
		_, err := s.service.RegisterBatch(context.Background(), []citizen.InputCitizen{
			validInput("111111111111"), validInput("111111111111"),
		})
		s.True(dErrors.HasCode(err, dErrors.CodeDuplicateID))
	})

	s.Run("existing id maps conflict to duplicate code", func() {
		s.mockStore.EXPECT().InsertBatch(gomock.Any(), gomock.Any()).Return(sentinel.ErrConflict)

		_, err := s.service.RegisterBatch(context.Background(), []citizen.InputCitizen{
			validInput("111111111111"), validInput("222222222222"),
		})
		s.True(dErrors.HasCode(err, dErrors.CodeDuplicateID))
	})

	s.Run("valid batch inserts all and audits once", func() {
		s.mockStore.EXPECT().InsertBatch(gomock.Any(), gomock.Len(2)).Return(nil)

		records, err := s.service.RegisterBatch(context.Background(), []citizen.InputCitizen{
			validInput("111111111111"), validInput("222222222222"),
		})
		s.Require().NoError(err)
		s.Len(records, 2)

		events := s.auditSink.ByAction(audit.ActionCitizensImported)
		s.Require().Len(events, 1)
		s.Equal(int64(2), events[0].Amount)
	})
}

func (s *CitizenServiceSuite) TestGet() {
	s.Run("unknown id maps to not found", func() {
		s.mockStore.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, sentinel.ErrNotFound)

		_, err := s.service.Get(context.Background(), "123456789012")
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("malformed id short-circuits", func() {
		_, err := s.service.Get(context.Background(), "12345678901a")
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})
}

func (s *CitizenServiceSuite) TestUpdateAadhaarStatus() {
	s.Run("links an existing citizen and audits", func() {
		s.mockStore.EXPECT().
			UpdateAadhaarStatus(gomock.Any(), gomock.Any(), citizen.AadhaarLinked).
			Return(nil)

		err := s.service.UpdateAadhaarStatus(context.Background(), "123456789012", citizen.AadhaarLinked)
		s.Require().NoError(err)
		s.Len(s.auditSink.ByAction(audit.ActionAadhaarUpdated), 1)
	})

	s.Run("unknown status value is rejected", func() {
		err := s.service.UpdateAadhaarStatus(context.Background(), "123456789012", "pending")
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("unknown citizen maps to not found", func() {
		s.mockStore.EXPECT().
			UpdateAadhaarStatus(gomock.Any(), gomock.Any(), citizen.AadhaarLinked).
			Return(sentinel.ErrNotFound)

		err := s.service.UpdateAadhaarStatus(context.Background(), "123456789012", citizen.AadhaarLinked)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *CitizenServiceSuite) TestPurgeInactive() {
	s.Run("reports removed count and audits", func() {
		s.mockStore.EXPECT().DeleteInactive(gomock.Any()).Return(3, nil)

		removed, err := s.service.PurgeInactive(context.Background())
		s.Require().NoError(err)
		s.Equal(3, removed)

		events := s.auditSink.ByAction(audit.ActionInactivePurged)
		s.Require().Len(events, 1)
		s.Equal(int64(3), events[0].Amount)
	})

	s.Run("no removals emits no audit event", func() {
		s.mockStore.EXPECT().DeleteInactive(gomock.Any()).Return(0, nil)

		removed, err := s.service.PurgeInactive(context.Background())
		s.Require().NoError(err)
		s.Zero(removed)
		s.Empty(s.auditSink.ByAction(audit.ActionInactivePurged))
	})
}
