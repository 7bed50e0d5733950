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

type RelationService struct{}

func NewRelationService() *RelationService {
	return &RelationService{}
}

type FriendSummary struct {
	FriendshipID    int64     `json:"friendship_id"`
	FriendID        int64     `json:"friend_id"`
	FriendUsername  string    `json:"friend_username"`
	FriendAccountID string    `json:"friend_account_id"`
	PairID          *int64    `json:"pair_id"`
	CreatedAt       time.Time `json:"created_at"`
}

type FriendRequestSummary struct {
	ID          int64     `json:"id"`
	RequesterID int64     `json:"requester_id"`
	Username    string    `json:"username"`
	AccountID   string    `json:"account_id"`
	CreatedAt   time.Time `json:"created_at"`
}

type FriendshipInfo struct {
	ID     int64                   `json:"id"`
	Status models.FriendshipStatus `json:"status"`
}

type UserSearchResult struct {
	User       PublicUser      `json:"user"`
	Friendship *FriendshipInfo `json:"friendship"`
}

type PublicUser struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	AccountID string `json:"account_id"`
}

// SearchUser looks a user up by their public account code and reports any
// existing friendship between them and the requester. Searching yourself is
// rejected.
func (s *RelationService) SearchUser(ctx context.Context, accountID string, requesterID int64) (*UserSearchResult, error) {
	var user models.User
	err := db.GetReadOnlyDB(ctx).Where("account_id = ?", accountID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: user", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: searching user: %v", ErrInternal, err)
	}
	if user.ID == requesterID {
		return nil, fmt.Errorf("%w: cannot search yourself", ErrValidation)
	}

	result := &UserSearchResult{
		User: PublicUser{ID: user.ID, Username: user.Username, AccountID: user.AccountID},
	}
	existing, err := s.findBetween(ctx, requesterID, user.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		result.Friendship = &FriendshipInfo{ID: existing.ID, Status: existing.Status}
	}
	return result, nil
}

// SendRequest creates a pending friendship. At most one record may exist per
// unordered pair of users, whatever its direction or status.
func (s *RelationService) SendRequest(ctx context.Context, requesterID, receiverID int64) (int64, error) {
	if receiverID == 0 {
		return 0, fmt.Errorf("%w: receiver is required", ErrValidation)
	}
	if receiverID == requesterID {
		return 0, fmt.Errorf("%w: cannot send a friend request to yourself", ErrValidation)
	}

	var receiverCount int64
	err := db.GetReadOnlyDB(ctx).Model(&models.User{}).Where("id = ?", receiverID).Count(&receiverCount).Error
	if err != nil {
		return 0, fmt.Errorf("%w: checking receiver: %v", ErrInternal, err)
	}
	if receiverCount == 0 {
		return 0, fmt.Errorf("%w: user", ErrNotFound)
	}

	existing, err := s.findBetween(ctx, requesterID, receiverID)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		if existing.Status == models.FriendshipAccepted {
			return 0, fmt.Errorf("%w: already friends", ErrConflict)
		}
		return 0, fmt.Errorf("%w: friend request already exists", ErrConflict)
	}

	friendship := &models.Friendship{
		RequesterID: requesterID,
		ReceiverID:  receiverID,
		Status:      models.FriendshipPending,
	}
	if err := db.GetWriteDB(ctx).Create(friendship).Error; err != nil {
		return 0, fmt.Errorf("%w: creating friend request: %v", ErrInternal, err)
	}
	return friendship.ID, nil
}

// Accept moves a pending friendship to accepted and creates the shared pair.
// The pair insert and the status update commit together; no reader ever sees
// an accepted friendship without its pair.
func (s *RelationService) Accept(ctx context.Context, friendshipID, actingUserID int64) (int64, error) {
	friendship, err := s.pendingFor(ctx, friendshipID, actingUserID)
	if err != nil {
		return 0, err
	}

	for attempt := 0; attempt < codeRetryLimit; attempt++ {
		pair := &models.Pair{
			User1ID:    friendship.RequesterID,
			User2ID:    &friendship.ReceiverID,
			InviteCode: newInviteCode(),
		}
		err = db.GetWriteDB(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(pair).Error; err != nil {
				return err
			}
			return tx.Model(&models.Friendship{}).Where("id = ?", friendship.ID).
				Updates(map[string]interface{}{
					"status":  models.FriendshipAccepted,
					"pair_id": pair.ID,
				}).Error
		})
		if err == nil {
			return pair.ID, nil
		}
		if !isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: accepting friend request: %v", ErrInternal, err)
		}
	}
	log.Printf("accept: exhausted invite code retries for friendship %d: %v", friendshipID, err)
	return 0, fmt.Errorf("%w: could not allocate invite code", ErrInternal)
}

// Reject deletes a pending request; no terminal rejected state is kept.
func (s *RelationService) Reject(ctx context.Context, friendshipID, actingUserID int64) error {
	friendship, err := s.pendingFor(ctx, friendshipID, actingUserID)
	if err != nil {
		return err
	}
	if err := db.GetWriteDB(ctx).Delete(&models.Friendship{}, friendship.ID).Error; err != nil {
		return fmt.Errorf("%w: rejecting friend request: %v", ErrInternal, err)
	}
	return nil
}

// Remove unfriends. Only the friendship row goes away; the pair and its
// diaries are kept on purpose.
func (s *RelationService) Remove(ctx context.Context, friendshipID, actingUserID int64) error {
	var friendship models.Friendship
	err := db.GetWriteDB(ctx).
		Where("id = ? AND (requester_id = ? OR receiver_id = ?) AND status = ?",
			friendshipID, actingUserID, actingUserID, models.FriendshipAccepted).
		First(&friendship).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: friendship", ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("%w: fetching friendship: %v", ErrInternal, err)
	}
	if err := db.GetWriteDB(ctx).Delete(&models.Friendship{}, friendship.ID).Error; err != nil {
		return fmt.Errorf("%w: removing friendship: %v", ErrInternal, err)
	}
	return nil
}

// ListFriends returns accepted friendships with the other party normalized
// into the friend_* fields regardless of request direction.
func (s *RelationService) ListFriends(ctx context.Context, userID int64) ([]FriendSummary, error) {
	friends := []FriendSummary{}
	err := db.GetReadOnlyDB(ctx).
		Table("friendships f").
		Select(`f.id AS friendship_id,
			f.pair_id,
			f.created_at,
			CASE WHEN f.requester_id = ? THEN f.receiver_id ELSE f.requester_id END AS friend_id,
			CASE WHEN f.requester_id = ? THEN u2.username ELSE u1.username END AS friend_username,
			CASE WHEN f.requester_id = ? THEN u2.account_id ELSE u1.account_id END AS friend_account_id`,
			userID, userID, userID).
		Joins("JOIN users u1 ON f.requester_id = u1.id").
		Joins("JOIN users u2 ON f.receiver_id = u2.id").
		Where("(f.requester_id = ? OR f.receiver_id = ?) AND f.status = ?",
			userID, userID, models.FriendshipAccepted).
		Order("f.created_at DESC").
		Scan(&friends).Error
	if err != nil {
		return nil, fmt.Errorf("%w: listing friends: %v", ErrInternal, err)
	}
	return friends, nil
}

// ListPendingRequests returns requests waiting on userID's decision.
func (s *RelationService) ListPendingRequests(ctx context.Context, userID int64) ([]FriendRequestSummary, error) {
	requests := []FriendRequestSummary{}
	err := db.GetReadOnlyDB(ctx).
		Table("friendships f").
		Select("f.id, f.requester_id, f.created_at, u.username, u.account_id").
		Joins("JOIN users u ON f.requester_id = u.id").
		Where("f.receiver_id = ? AND f.status = ?", userID, models.FriendshipPending).
		Order("f.created_at DESC").
		Scan(&requests).Error
	if err != nil {
		return nil, fmt.Errorf("%w: listing friend requests: %v", ErrInternal, err)
	}
	return requests, nil
}

func (s *RelationService) findBetween(ctx context.Context, a, b int64) (*models.Friendship, error) {
	var friendship models.Friendship
	err := db.GetReadOnlyDB(ctx).
		Where("(requester_id = ? AND receiver_id = ?) OR (requester_id = ? AND receiver_id = ?)",
			a, b, b, a).
		First(&friendship).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: checking friendship: %v", ErrInternal, err)
	}
	return &friendship, nil
}

func (s *RelationService) pendingFor(ctx context.Context, friendshipID, receiverID int64) (*models.Friendship, error) {
	var friendship models.Friendship
	err := db.GetWriteDB(ctx).
		Where("id = ? AND receiver_id = ? AND status = ?", friendshipID, receiverID, models.FriendshipPending).
		First(&friendship).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: friend request", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: fetching friend request: %v", ErrInternal, err)
	}
	return &friendship, nil
}
