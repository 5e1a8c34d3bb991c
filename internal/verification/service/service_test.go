package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"

	"curio/internal/item"
	"curio/internal/platform/metrics"
	"curio/internal/user"
	"curio/internal/verification/store"
	id "curio/pkg/domain"
	dErrors "curio/pkg/domain-errors"
)

type VerificationServiceSuite struct {
	suite.Suite
	ctx     context.Context
	svc     *Service
	records *store.Memory
	items   *item.InMemoryStore
	users   *user.InMemoryStore
	userID  id.UserID
	itemID  id.ItemID
	clock   time.Time
}

func TestVerificationServiceSuite(t *testing.T) {
	suite.Run(t, new(VerificationServiceSuite))
}

func (s *VerificationServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.clock = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
	s.records = store.NewMemory(store.WithNow(func() time.Time { return s.clock }))
	s.items = item.NewInMemoryStore()
	s.users = user.NewInMemoryStore()

	u, err := s.users.Create(s.ctx, &user.User{
		Email:     "ana@example.com",
		FirstName: "Ana",
		LastName:  "Silva",
	})
	s.Require().NoError(err)
	s.userID = u.ID

	i, err := s.items.Create(s.ctx, &item.Item{Name: "Escudo 1975", CategoryID: 1})
	s.Require().NoError(err)
	s.itemID = i.ID

	s.svc = NewService(s.records, s.items, s.users, metrics.New(prometheus.NewRegistry()))
	s.svc.now = func() time.Time { return s.clock }
}

func (s *VerificationServiceSuite) addUser(email, first, last string) id.UserID {
	u, err := s.users.Create(s.ctx, &user.User{Email: email, FirstName: first, LastName: last})
	s.Require().NoError(err)
	return u.ID
}

// advanceDay moves the fixture clock into the next UTC calendar day.
func (s *VerificationServiceSuite) advanceDay() {
	s.clock = s.clock.AddDate(0, 0, 1)
}

func (s *VerificationServiceSuite) itemCount() int {
	count, err := s.records.CountByItem(s.ctx, s.itemID)
	s.Require().NoError(err)
	return count
}

// TestVerifyItem walks one user through the day window: a first verification
// succeeds, a repeat on the same day is rejected, and the next day is open
// again.
func (s *VerificationServiceSuite) TestVerifyItem() {
	s.Run("creates a record and increments the count", func() {
		result, err := s.svc.VerifyItem(s.ctx, s.userID, s.itemID, "ok")
		s.Require().NoError(err)
		s.NotZero(result.ID)
		s.Equal(s.userID, result.UserID)
		s.Equal(s.itemID, result.ItemID)
		s.Equal(1, result.VerificationCount)
		s.Equal("Ana Silva", result.UserName)
		s.Equal("Escudo 1975", result.ItemName)
		s.Require().NotNil(result.Note)
		s.Equal("ok", *result.Note)
	})

	s.Run("second same-day attempt is rejected even with a different note", func() {
		_, err := s.svc.VerifyItem(s.ctx, s.userID, s.itemID, "different note")
		s.True(dErrors.Is(err, dErrors.CodeAlreadyVerified))
		s.Equal(1, s.itemCount())
	})

	s.Run("yesterday's record does not block today", func() {
		s.advanceDay()

		result, err := s.svc.VerifyItem(s.ctx, s.userID, s.itemID, "")
		s.Require().NoError(err)
		s.Equal(2, result.VerificationCount)
	})

	s.Run("unknown item creates no record", func() {
		_, err := s.svc.VerifyItem(s.ctx, s.userID, id.ItemID(9999), "")
		s.True(dErrors.Is(err, dErrors.CodeNotFound))

		count, err := s.records.CountByItem(s.ctx, id.ItemID(9999))
		s.Require().NoError(err)
		s.Zero(count)
	})
}

// TestVerifyItemTwoUsers confirms the day window is per user, not per item.
func (s *VerificationServiceSuite) TestVerifyItemTwoUsers() {
	second := s.addUser("rui@example.com", "Rui", "Costa")

	first, err := s.svc.VerifyItem(s.ctx, s.userID, s.itemID, "ok")
	s.Require().NoError(err)
	s.Equal(1, first.VerificationCount)

	other, err := s.svc.VerifyItem(s.ctx, second, s.itemID, "")
	s.Require().NoError(err)
	s.Equal(2, other.VerificationCount)

	_, err = s.svc.VerifyItem(s.ctx, s.userID, s.itemID, "again")
	s.True(dErrors.Is(err, dErrors.CodeAlreadyVerified))
	s.Equal(2, s.itemCount())
}

// TestVerifyItemNotes exercises note normalization. The clock advances a day
// between attempts so the window does not reject them.
func (s *VerificationServiceSuite) TestVerifyItemNotes() {
	s.Run("whitespace-only note is stored as absent", func() {
		result, err := s.svc.VerifyItem(s.ctx, s.userID, s.itemID, "   ")
		s.Require().NoError(err)
		s.Nil(result.Note)
	})

	s.advanceDay()
	s.Run("500 characters is accepted", func() {
		result, err := s.svc.VerifyItem(s.ctx, s.userID, s.itemID, strings.Repeat("a", 500))
		s.Require().NoError(err)
		s.Require().NotNil(result.Note)
	})

	s.advanceDay()
	s.Run("501 characters is rejected before any record is created", func() {
		before := s.itemCount()

		_, err := s.svc.VerifyItem(s.ctx, s.userID, s.itemID, strings.Repeat("a", 501))
		s.True(dErrors.Is(err, dErrors.CodeInvalidInput))
		s.Equal(before, s.itemCount())
	})
}

func (s *VerificationServiceSuite) TestGetVerification() {
	created, err := s.svc.VerifyItem(s.ctx, s.userID, s.itemID, "ok")
	s.Require().NoError(err)

	s.Run("resolves names at read time", func() {
		detail, err := s.svc.GetVerification(s.ctx, created.ID)
		s.Require().NoError(err)
		s.Equal("Ana Silva", detail.UserName)
		s.Equal("Escudo 1975", detail.ItemName)
	})

	s.Run("deleted referent resolves to an empty name", func() {
		s.Require().NoError(s.items.Delete(s.ctx, s.itemID))

		detail, err := s.svc.GetVerification(s.ctx, created.ID)
		s.Require().NoError(err)
		s.Empty(detail.ItemName)
		s.Equal("Ana Silva", detail.UserName)
	})

	s.Run("missing id is not found", func() {
		_, err := s.svc.GetVerification(s.ctx, id.VerificationID(9999))
		s.True(dErrors.Is(err, dErrors.CodeNotFound))
	})
}

func (s *VerificationServiceSuite) TestGetItemVerifications() {
	// Five distinct users verify the item.
	emails := []string{"b@example.com", "c@example.com", "d@example.com", "e@example.com"}
	verifiers := []id.UserID{s.userID}
	for _, email := range emails {
		verifiers = append(verifiers, s.addUser(email, "User", "Test"))
	}
	for _, userID := range verifiers {
		_, err := s.svc.VerifyItem(s.ctx, userID, s.itemID, "")
		s.Require().NoError(err)
		s.clock = s.clock.Add(time.Minute)
	}

	s.Run("limit clamps and total is unclamped", func() {
		listing, err := s.svc.GetItemVerifications(s.ctx, s.itemID, 3)
		s.Require().NoError(err)
		s.Equal(5, listing.TotalCount)
		s.Equal(3, listing.ReturnedCount)
		s.Len(listing.Verifications, 3)
	})

	s.Run("ordering is most recent first", func() {
		listing, err := s.svc.GetItemVerifications(s.ctx, s.itemID, 50)
		s.Require().NoError(err)
		v := listing.Verifications
		for i := 1; i < len(v); i++ {
			s.False(v[i-1].CreatedAt.Before(v[i].CreatedAt))
		}
	})

	s.Run("oversized limit behaves like the cap", func() {
		capped, err := s.svc.GetItemVerifications(s.ctx, s.itemID, 500)
		s.Require().NoError(err)
		atCap, err := s.svc.GetItemVerifications(s.ctx, s.itemID, 200)
		s.Require().NoError(err)
		s.Equal(atCap, capped)
	})
}

func (s *VerificationServiceSuite) TestGetUserVerifications() {
	second, err := s.items.Create(s.ctx, &item.Item{Name: "Real 1850", CategoryID: 1})
	s.Require().NoError(err)

	_, err = s.svc.VerifyItem(s.ctx, s.userID, s.itemID, "")
	s.Require().NoError(err)
	s.clock = s.clock.Add(time.Minute)
	_, err = s.svc.VerifyItem(s.ctx, s.userID, second.ID, "")
	s.Require().NoError(err)

	listing, err := s.svc.GetUserVerifications(s.ctx, s.userID, 50)
	s.Require().NoError(err)
	s.Equal(s.userID, listing.UserID)
	s.Equal(2, listing.Count)
	s.Require().Len(listing.Verifications, 2)
	s.Equal("Real 1850", listing.Verifications[0].ItemName)
	s.Equal("Escudo 1975", listing.Verifications[1].ItemName)
}
