package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"

	"curio/internal/auth/store/revocation"
	"curio/internal/item"
	jwttoken "curio/internal/jwt_token"
	"curio/internal/platform/logger"
	"curio/internal/platform/metrics"
	"curio/internal/user"
	"curio/internal/verification/service"
	"curio/internal/verification/store"
	id "curio/pkg/domain"
)

type VerificationHandlerSuite struct {
	suite.Suite
	router *chi.Mux
	token  string
	userID id.UserID
	itemID id.ItemID
	svc    *service.Service
}

func TestVerificationHandlerSuite(t *testing.T) {
	suite.Run(t, new(VerificationHandlerSuite))
}

func (s *VerificationHandlerSuite) SetupTest() {
	records := store.NewMemory()
	items := item.NewInMemoryStore()
	users := user.NewInMemoryStore()

	u, err := users.Create(context.Background(), &user.User{
		Email:     "ana@example.com",
		FirstName: "Ana",
		LastName:  "Silva",
	})
	s.Require().NoError(err)
	s.userID = u.ID

	i, err := items.Create(context.Background(), &item.Item{Name: "Escudo 1975", CategoryID: 1})
	s.Require().NoError(err)
	s.itemID = i.ID

	jwtService := jwttoken.NewJWTService("test-signing-key", "curio-test")
	s.token, err = jwtService.GenerateAccessToken(u.ID, time.Hour)
	s.Require().NoError(err)

	s.svc = service.NewService(records, items, users, metrics.New(prometheus.NewRegistry()))

	h := New(s.svc, jwttoken.NewJWTServiceAdapter(jwtService), revocation.NewMemoryTRL(), logger.New())

	s.router = chi.NewRouter()
	h.Register(s.router)
}

func (s *VerificationHandlerSuite) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *VerificationHandlerSuite) TestVerify() {
	rec := s.do(http.MethodPost, "/verification/items/"+s.itemID.String()+"/verify", s.token, map[string]string{"note": "ok"})
	s.Require().Equal(http.StatusCreated, rec.Code)

	var body struct {
		VerificationID    int64  `json:"verification_id"`
		UserID            int64  `json:"user_id"`
		ItemID            int64  `json:"item_id"`
		Note              string `json:"note"`
		UserName          string `json:"user_name"`
		ItemName          string `json:"item_name"`
		VerificationCount int    `json:"verification_count"`
	}
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.NotZero(body.VerificationID)
	s.Equal(int64(s.userID), body.UserID)
	s.Equal("ok", body.Note)
	s.Equal("Ana Silva", body.UserName)
	s.Equal("Escudo 1975", body.ItemName)
	s.Equal(1, body.VerificationCount)
}

func (s *VerificationHandlerSuite) TestVerifyRejections() {
	s.Run("missing token is unauthorized", func() {
		rec := s.do(http.MethodPost, "/verification/items/"+s.itemID.String()+"/verify", "", nil)
		s.Equal(http.StatusUnauthorized, rec.Code)
	})

	s.Run("unknown item returns 404", func() {
		rec := s.do(http.MethodPost, "/verification/items/9999/verify", s.token, nil)
		s.Equal(http.StatusNotFound, rec.Code)
	})

	s.Run("oversized note returns invalid_input", func() {
		rec := s.do(http.MethodPost, "/verification/items/"+s.itemID.String()+"/verify", s.token,
			map[string]string{"note": strings.Repeat("a", 501)})
		s.Equal(http.StatusBadRequest, rec.Code)
		s.Contains(rec.Body.String(), "invalid_input")
	})

	s.Run("second same-day verify returns already_verified", func() {
		rec := s.do(http.MethodPost, "/verification/items/"+s.itemID.String()+"/verify", s.token, nil)
		s.Require().Equal(http.StatusCreated, rec.Code)

		rec = s.do(http.MethodPost, "/verification/items/"+s.itemID.String()+"/verify", s.token, nil)
		s.Equal(http.StatusBadRequest, rec.Code)
		s.Contains(rec.Body.String(), "already_verified")
	})
}

func (s *VerificationHandlerSuite) TestGet() {
	created, err := s.svc.VerifyItem(context.Background(), s.userID, s.itemID, "ok")
	s.Require().NoError(err)

	s.Run("existing verification is public", func() {
		rec := s.do(http.MethodGet, "/verification/"+created.ID.String(), "", nil)
		s.Require().Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), "Ana Silva")
	})

	s.Run("missing verification returns 404", func() {
		rec := s.do(http.MethodGet, "/verification/9999", "", nil)
		s.Equal(http.StatusNotFound, rec.Code)
	})

	s.Run("malformed id returns invalid_input", func() {
		rec := s.do(http.MethodGet, "/verification/not-a-number", "", nil)
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *VerificationHandlerSuite) TestListings() {
	_, err := s.svc.VerifyItem(context.Background(), s.userID, s.itemID, "")
	s.Require().NoError(err)

	s.Run("item listing includes counts", func() {
		rec := s.do(http.MethodGet, "/verification/items/"+s.itemID.String(), "", nil)
		s.Require().Equal(http.StatusOK, rec.Code)

		var body struct {
			ItemID        int64             `json:"item_id"`
			Verifications []json.RawMessage `json:"verifications"`
			TotalCount    int               `json:"total_count"`
			ReturnedCount int               `json:"returned_count"`
		}
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
		s.Equal(int64(s.itemID), body.ItemID)
		s.Equal(1, body.TotalCount)
		s.Equal(1, body.ReturnedCount)
		s.Len(body.Verifications, 1)
	})

	s.Run("user listing includes count", func() {
		rec := s.do(http.MethodGet, "/verification/users/"+s.userID.String(), "", nil)
		s.Require().Equal(http.StatusOK, rec.Code)

		var body struct {
			UserID int64 `json:"user_id"`
			Count  int   `json:"count"`
		}
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
		s.Equal(int64(s.userID), body.UserID)
		s.Equal(1, body.Count)
	})

	s.Run("unparsable limit falls back to the default", func() {
		rec := s.do(http.MethodGet, "/verification/items/"+s.itemID.String()+"?limit=abc", "", nil)
		s.Equal(http.StatusOK, rec.Code)
	})
}
