// Package service coordinates item verification: existence checks, the
// once-per-day policy, record creation and response shaping.
package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"curio/internal/item"
	"curio/internal/platform/metrics"
	"curio/internal/user"
	"curio/internal/verification"
	"curio/internal/verification/policy"
	id "curio/pkg/domain"
	dErrors "curio/pkg/domain-errors"
	"curio/pkg/platform/sentinel"
)

const maxLimit = 200

// Directories resolve display names at read time. Names are never stored
// on the record.
type (
	ItemDirectory interface {
		GetByID(ctx context.Context, itemID id.ItemID) (*item.Item, error)
	}
	UserDirectory interface {
		GetByID(ctx context.Context, userID id.UserID) (*user.User, error)
	}
)

// RecordStore is the append-only verification log the service writes to.
type RecordStore interface {
	Create(ctx context.Context, r *verification.Record) (*verification.Record, error)
	GetByID(ctx context.Context, verificationID id.VerificationID) (*verification.Record, error)
	ListByItem(ctx context.Context, itemID id.ItemID, limit int) ([]*verification.Record, error)
	ListByUser(ctx context.Context, userID id.UserID, limit int) ([]*verification.Record, error)
	ExistsForUserItemOnDay(ctx context.Context, userID id.UserID, itemID id.ItemID, dayStart time.Time) (bool, error)
	CountByItem(ctx context.Context, itemID id.ItemID) (int, error)
}

// Detail is a record joined with display names resolved from the current
// referenced user and item.
type Detail struct {
	verification.Record
	UserName string `json:"user_name"`
	ItemName string `json:"item_name"`
}

// VerifyResult is the outcome of a successful verification, including the
// item's new total count.
type VerifyResult struct {
	Detail
	VerificationCount int `json:"verification_count"`
}

// ItemListing is a page of an item's verifications. TotalCount is the full
// unclamped count; ReturnedCount is the number actually included.
type ItemListing struct {
	ItemID        id.ItemID `json:"item_id"`
	Verifications []Detail  `json:"verifications"`
	TotalCount    int       `json:"total_count"`
	ReturnedCount int       `json:"returned_count"`
}

// UserListing is a page of a user's verifications across items.
type UserListing struct {
	UserID        id.UserID `json:"user_id"`
	Verifications []Detail  `json:"verifications"`
	Count         int       `json:"count"`
}

type Service struct {
	records RecordStore
	items   ItemDirectory
	users   UserDirectory
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewService(records RecordStore, items ItemDirectory, users UserDirectory, m *metrics.Metrics) *Service {
	return &Service{
		records: records,
		items:   items,
		users:   users,
		metrics: m,
		now:     time.Now,
	}
}

// VerifyItem records that userID confirms itemID still exists. At most one
// record per user, item and UTC day; the store's unique index backstops
// the check here against concurrent requests.
func (s *Service) VerifyItem(ctx context.Context, userID id.UserID, itemID id.ItemID, note string) (*VerifyResult, error) {
	itm, err := s.items.GetByID(ctx, itemID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.New(dErrors.CodeNotFound, "item "+itemID.String()+" not found")
	}
	if err != nil {
		return nil, dErrors.New(dErrors.CodeInternal, "failed to load item")
	}

	notePtr, err := verification.NormalizeNote(note)
	if err != nil {
		return nil, err
	}

	dayStart := policy.DayStart(s.now())
	verifiedToday, err := s.records.ExistsForUserItemOnDay(ctx, userID, itemID, dayStart)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeInternal, "failed to check verification window")
	}
	if err := policy.Evaluate(verifiedToday); err != nil {
		return nil, err
	}

	created, err := s.records.Create(ctx, &verification.Record{
		UserID: userID,
		ItemID: itemID,
		Note:   notePtr,
	})
	if errors.Is(err, sentinel.ErrConflict) {
		// A concurrent request won the day window between our check and
		// the insert.
		return nil, policy.Evaluate(true)
	}
	if err != nil {
		return nil, dErrors.New(dErrors.CodeInternal, "failed to create verification")
	}

	count, err := s.records.CountByItem(ctx, itemID)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeInternal, "failed to count verifications")
	}

	s.metrics.IncrementVerificationsCreated()

	return &VerifyResult{
		Detail: Detail{
			Record:   *created,
			UserName: s.userName(ctx, userID),
			ItemName: itm.Name,
		},
		VerificationCount: count,
	}, nil
}

func (s *Service) GetVerification(ctx context.Context, verificationID id.VerificationID) (*Detail, error) {
	r, err := s.records.GetByID(ctx, verificationID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.New(dErrors.CodeNotFound, "verification "+verificationID.String()+" not found")
	}
	if err != nil {
		return nil, dErrors.New(dErrors.CodeInternal, "failed to load verification")
	}

	details, err := s.resolve(ctx, []*verification.Record{r})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

func (s *Service) GetItemVerifications(ctx context.Context, itemID id.ItemID, limit int) (*ItemListing, error) {
	limit = clampLimit(limit)

	records, err := s.records.ListByItem(ctx, itemID, limit)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeInternal, "failed to list verifications")
	}
	total, err := s.records.CountByItem(ctx, itemID)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeInternal, "failed to count verifications")
	}

	details, err := s.resolve(ctx, records)
	if err != nil {
		return nil, err
	}

	return &ItemListing{
		ItemID:        itemID,
		Verifications: details,
		TotalCount:    total,
		ReturnedCount: len(details),
	}, nil
}

func (s *Service) GetUserVerifications(ctx context.Context, userID id.UserID, limit int) (*UserListing, error) {
	limit = clampLimit(limit)

	records, err := s.records.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeInternal, "failed to list verifications")
	}

	details, err := s.resolve(ctx, records)
	if err != nil {
		return nil, err
	}

	return &UserListing{
		UserID:        userID,
		Verifications: details,
		Count:         len(details),
	}, nil
}

func clampLimit(limit int) int {
	switch {
	case limit < 1:
		return 1
	case limit > maxLimit:
		return maxLimit
	default:
		return limit
	}
}

// resolve joins records with display names. Unique user and item IDs are
// looked up concurrently; a referent deleted since the record was written
// resolves to an empty name rather than an error.
func (s *Service) resolve(ctx context.Context, records []*verification.Record) ([]Detail, error) {
	userIDs := make(map[id.UserID]struct{}, len(records))
	itemIDs := make(map[id.ItemID]struct{}, len(records))
	for _, r := range records {
		userIDs[r.UserID] = struct{}{}
		itemIDs[r.ItemID] = struct{}{}
	}

	var (
		mu        sync.Mutex
		userNames = make(map[id.UserID]string, len(userIDs))
		itemNames = make(map[id.ItemID]string, len(itemIDs))
	)

	g, gctx := errgroup.WithContext(ctx)
	for userID := range userIDs {
		g.Go(func() error {
			name := s.userName(gctx, userID)
			mu.Lock()
			userNames[userID] = name
			mu.Unlock()
			return nil
		})
	}
	for itemID := range itemIDs {
		g.Go(func() error {
			name := ""
			if itm, err := s.items.GetByID(gctx, itemID); err == nil {
				name = itm.Name
			}
			mu.Lock()
			itemNames[itemID] = name
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, dErrors.New(dErrors.CodeInternal, "failed to resolve names")
	}

	details := make([]Detail, len(records))
	for i, r := range records {
		details[i] = Detail{
			Record:   *r,
			UserName: userNames[r.UserID],
			ItemName: itemNames[r.ItemID],
		}
	}
	return details, nil
}

func (s *Service) userName(ctx context.Context, userID id.UserID) string {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return ""
	}
	return u.FullName()
}
