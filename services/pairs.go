package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"pairdiary/db"
	"pairdiary/models"

	"gorm.io/gorm"
)

type PairService struct{}

func NewPairService() *PairService {
	return &PairService{}
}

// PendingPartnerName is shown while a two-person pair waits for its second
// member, and for solo rooms which have no partner at all.
const PendingPartnerName = "(pending)"

type PairSummary struct {
	ID              int64     `json:"id"`
	PartnerID       *int64    `json:"partner_id"`
	PartnerUsername string    `json:"partner_username"`
	IsSolo          bool      `json:"is_solo"`
	CreatedAt       time.Time `json:"created_at"`
}

type PairDetail struct {
	models.Pair
	PartnerUsername string `json:"partner_username"`
}

// CreatePair opens a half pair waiting for someone to redeem the invite code.
// Code collisions regenerate and retry; only exhaustion surfaces an error.
func (s *PairService) CreatePair(ctx context.Context, userID int64) (*models.Pair, error) {
	var err error
	for attempt := 0; attempt < codeRetryLimit; attempt++ {
		pair := &models.Pair{
			User1ID:    userID,
			InviteCode: newInviteCode(),
		}
		err = db.GetWriteDB(ctx).Create(pair).Error
		if err == nil {
			return pair, nil
		}
		if !isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: creating pair: %v", ErrInternal, err)
		}
	}
	log.Printf("create pair: exhausted invite code retries for user %d: %v", userID, err)
	return nil, fmt.Errorf("%w: could not allocate invite code", ErrInternal)
}

// JoinPair redeems an invite code. The update is conditioned on user2_id
// still being null so two concurrent joiners cannot both win; the loser sees
// ErrConflict exactly as if it had arrived late.
func (s *PairService) JoinPair(ctx context.Context, userID int64, inviteCode string) (int64, error) {
	if inviteCode == "" {
		return 0, fmt.Errorf("%w: invite code is required", ErrValidation)
	}

	var pair models.Pair
	err := db.GetWriteDB(ctx).Where("invite_code = ?", inviteCode).First(&pair).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, fmt.Errorf("%w: invalid invite code", ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("%w: fetching pair: %v", ErrInternal, err)
	}
	if pair.IsSolo {
		// Solo room codes are never redeemable.
		return 0, fmt.Errorf("%w: invalid invite code", ErrNotFound)
	}
	if pair.User2ID != nil {
		return 0, fmt.Errorf("%w: invite code already used", ErrConflict)
	}
	if pair.User1ID == userID {
		return 0, fmt.Errorf("%w: cannot join your own pair", ErrValidation)
	}

	res := db.GetWriteDB(ctx).Model(&models.Pair{}).
		Where("id = ? AND user2_id IS NULL", pair.ID).
		Update("user2_id", userID)
	if res.Error != nil {
		return 0, fmt.Errorf("%w: joining pair: %v", ErrInternal, res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, fmt.Errorf("%w: invite code already used", ErrConflict)
	}
	return pair.ID, nil
}

// ListPairs returns every room the user belongs to, solo room first.
func (s *PairService) ListPairs(ctx context.Context, userID int64) ([]PairSummary, error) {
	type pairRow struct {
		ID              int64
		IsSolo          bool
		CreatedAt       time.Time
		PartnerID       *int64
		PartnerUsername *string
	}
	rows := []pairRow{}
	err := db.GetReadOnlyDB(ctx).
		Table("pairs p").
		Select(`p.id,
			p.is_solo,
			p.created_at,
			CASE WHEN p.is_solo THEN NULL
			     WHEN p.user1_id = ? THEN u2.id
			     ELSE u1.id END AS partner_id,
			CASE WHEN p.is_solo THEN NULL
			     WHEN p.user1_id = ? THEN u2.username
			     ELSE u1.username END AS partner_username`,
			userID, userID).
		Joins("LEFT JOIN users u1 ON p.user1_id = u1.id").
		Joins("LEFT JOIN users u2 ON p.user2_id = u2.id").
		Where("p.user1_id = ? OR p.user2_id = ?", userID, userID).
		Order("p.is_solo DESC, p.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("%w: listing pairs: %v", ErrInternal, err)
	}

	pairs := make([]PairSummary, 0, len(rows))
	for _, r := range rows {
		summary := PairSummary{
			ID:              r.ID,
			PartnerID:       r.PartnerID,
			PartnerUsername: PendingPartnerName,
			IsSolo:          r.IsSolo,
			CreatedAt:       r.CreatedAt,
		}
		if r.PartnerUsername != nil {
			summary.PartnerUsername = *r.PartnerUsername
		}
		pairs = append(pairs, summary)
	}
	return pairs, nil
}

// GetPair returns the pair detail; non-members get a not-found, which keeps
// room ids unprobeable.
func (s *PairService) GetPair(ctx context.Context, pairID, userID int64) (*PairDetail, error) {
	pair, err := s.fetchPair(ctx, pairID)
	if err != nil {
		return nil, err
	}
	if !pair.HasMember(userID) {
		return nil, fmt.Errorf("%w: pair", ErrNotFound)
	}

	detail := &PairDetail{Pair: *pair, PartnerUsername: PendingPartnerName}
	partnerID := pair.User1ID
	if pair.User1ID == userID {
		if pair.User2ID == nil {
			return detail, nil
		}
		partnerID = *pair.User2ID
	}
	var partner models.User
	if err := db.GetReadOnlyDB(ctx).First(&partner, partnerID).Error; err == nil {
		detail.PartnerUsername = partner.Username
	}
	return detail, nil
}

// DeletePair removes the pair and its diaries in one transaction. Cascading
// the diaries is deliberate: the room owns them, and orphan rows behind a
// deleted pair would be unreachable anyway.
func (s *PairService) DeletePair(ctx context.Context, pairID, userID int64) error {
	pair, err := s.fetchPair(ctx, pairID)
	if err != nil {
		return err
	}
	if !pair.HasMember(userID) {
		return fmt.Errorf("%w: not a member of this pair", ErrForbidden)
	}

	err = db.GetWriteDB(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("pair_id = ?", pairID).Delete(&models.Diary{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Pair{}, pairID).Error
	})
	if err != nil {
		return fmt.Errorf("%w: deleting pair: %v", ErrInternal, err)
	}
	return nil
}

func (s *PairService) fetchPair(ctx context.Context, pairID int64) (*models.Pair, error) {
	var pair models.Pair
	err := db.GetReadOnlyDB(ctx).First(&pair, pairID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: pair", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: fetching pair: %v", ErrInternal, err)
	}
	return &pair, nil
}
