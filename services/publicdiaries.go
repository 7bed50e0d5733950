package services

import (
	"context"
	"errors"
	"fmt"

	"pairdiary/db"
	"pairdiary/models"

	"gorm.io/gorm"
)

type PublicDiaryService struct{}

func NewPublicDiaryService() *PublicDiaryService {
	return &PublicDiaryService{}
}

type PublicProfile struct {
	Username  string `json:"username"`
	AccountID string `json:"account_id"`
}

// PublicDiaryEntry is a public diary row with its author attached, as shown
// on the account page.
type PublicDiaryEntry struct {
	models.PublicDiary
	AuthorUsername  string `json:"author_username"`
	AuthorAccountID string `json:"author_account_id"`
}

// ListByAccount is the anonymous account page: the user's published entries,
// newest first. Drafts never appear here, not even for the author.
func (s *PublicDiaryService) ListByAccount(ctx context.Context, accountID string) (*PublicProfile, []models.PublicDiary, error) {
	user, err := s.userByAccount(ctx, accountID)
	if err != nil {
		return nil, nil, err
	}

	diaries := []models.PublicDiary{}
	err = db.GetReadOnlyDB(ctx).
		Where("author_id = ? AND is_draft = ?", user.ID, false).
		Order("created_at DESC").
		Find(&diaries).Error
	if err != nil {
		return nil, nil, fmt.Errorf("%w: listing public diaries: %v", ErrInternal, err)
	}
	return &PublicProfile{Username: user.Username, AccountID: user.AccountID}, diaries, nil
}

// GetByAccount fetches one entry from an account page. viewerID is 0 for
// anonymous readers; a draft is only served when the viewer is its author.
func (s *PublicDiaryService) GetByAccount(ctx context.Context, accountID string, diaryID, viewerID int64) (*PublicDiaryEntry, error) {
	user, err := s.userByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	var entry models.PublicDiary
	err = db.GetReadOnlyDB(ctx).Where("id = ? AND author_id = ?", diaryID, user.ID).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: diary", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: fetching public diary: %v", ErrInternal, err)
	}
	if !CanReadPublicDiary(&entry, viewerID) {
		return nil, fmt.Errorf("%w: this diary is a draft", ErrForbidden)
	}

	return &PublicDiaryEntry{
		PublicDiary:     entry,
		AuthorUsername:  user.Username,
		AuthorAccountID: user.AccountID,
	}, nil
}

// ListOwn returns all of the user's public entries, drafts included.
func (s *PublicDiaryService) ListOwn(ctx context.Context, userID int64) ([]models.PublicDiary, error) {
	diaries := []models.PublicDiary{}
	err := db.GetReadOnlyDB(ctx).
		Where("author_id = ?", userID).
		Order("created_at DESC").
		Find(&diaries).Error
	if err != nil {
		return nil, fmt.Errorf("%w: listing public diaries: %v", ErrInternal, err)
	}
	return diaries, nil
}

func (s *PublicDiaryService) Create(ctx context.Context, authorID int64, params DiaryParams) (*models.PublicDiary, error) {
	if params.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	entry := &models.PublicDiary{
		AuthorID: authorID,
		Title:    params.Title,
		Content:  params.Content,
		IsDraft:  params.IsDraft,
	}
	if params.CreatedAt != nil {
		entry.CreatedAt = *params.CreatedAt
	}
	if err := db.GetWriteDB(ctx).Create(entry).Error; err != nil {
		return nil, fmt.Errorf("%w: creating public diary: %v", ErrInternal, err)
	}
	return entry, nil
}

func (s *PublicDiaryService) Update(ctx context.Context, diaryID, actorID int64, params DiaryParams) error {
	entry, err := s.fetchEntry(ctx, diaryID)
	if err != nil {
		return err
	}
	if !CanWritePublicDiary(entry, actorID) {
		return fmt.Errorf("%w: only the author may edit this diary", ErrForbidden)
	}

	updates := map[string]interface{}{
		"title":    params.Title,
		"content":  params.Content,
		"is_draft": params.IsDraft,
	}
	if params.CreatedAt != nil {
		updates["created_at"] = *params.CreatedAt
	}
	if err := db.GetWriteDB(ctx).Model(&models.PublicDiary{}).Where("id = ?", entry.ID).Updates(updates).Error; err != nil {
		return fmt.Errorf("%w: updating public diary: %v", ErrInternal, err)
	}
	return nil
}

func (s *PublicDiaryService) Delete(ctx context.Context, diaryID, actorID int64) error {
	entry, err := s.fetchEntry(ctx, diaryID)
	if err != nil {
		return err
	}
	if !CanWritePublicDiary(entry, actorID) {
		return fmt.Errorf("%w: only the author may delete this diary", ErrForbidden)
	}
	if err := db.GetWriteDB(ctx).Delete(&models.PublicDiary{}, entry.ID).Error; err != nil {
		return fmt.Errorf("%w: deleting public diary: %v", ErrInternal, err)
	}
	return nil
}

func (s *PublicDiaryService) userByAccount(ctx context.Context, accountID string) (*models.User, error) {
	var user models.User
	err := db.GetReadOnlyDB(ctx).Where("account_id = ?", accountID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: user", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: fetching user: %v", ErrInternal, err)
	}
	return &user, nil
}

func (s *PublicDiaryService) fetchEntry(ctx context.Context, diaryID int64) (*models.PublicDiary, error) {
	var entry models.PublicDiary
	err := db.GetWriteDB(ctx).First(&entry, diaryID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: diary", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: fetching public diary: %v", ErrInternal, err)
	}
	return &entry, nil
}
