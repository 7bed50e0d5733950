package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"pairdiary/db"
	"pairdiary/models"

	"gorm.io/gorm"
)

type DiaryService struct {
	pairs *PairService
}

func NewDiaryService() *DiaryService {
	return &DiaryService{pairs: NewPairService()}
}

// DiaryEntry is a diary row joined with its author's username.
type DiaryEntry struct {
	ID             int64     `json:"id"`
	PairID         int64     `json:"pair_id"`
	AuthorID       int64     `json:"author_id"`
	AuthorUsername string    `json:"author_username"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	IsDraft        bool      `json:"is_draft"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type DiaryParams struct {
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	IsDraft   bool       `json:"is_draft"`
	CreatedAt *time.Time `json:"created_at"`
}

// ListPublished returns the pair's entries ordered by entry date. Non-solo
// pairs see published entries only; in a solo room nothing is hidden, so the
// draft filter is skipped entirely.
func (s *DiaryService) ListPublished(ctx context.Context, pairID, requesterID int64, order string) ([]DiaryEntry, error) {
	pair, err := s.memberPair(ctx, pairID, requesterID)
	if err != nil {
		return nil, err
	}

	sortOrder := "created_at DESC"
	if order == "asc" {
		sortOrder = "created_at ASC"
	}

	query := db.GetReadOnlyDB(ctx).
		Table("diaries d").
		Select("d.id, d.pair_id, d.author_id, d.title, d.content, d.is_draft, d.created_at, d.updated_at, u.username AS author_username").
		Joins("JOIN users u ON d.author_id = u.id").
		Where("d.pair_id = ?", pairID)
	if !pair.IsSolo {
		query = query.Where("d.is_draft = ?", false)
	}

	entries := []DiaryEntry{}
	if err := query.Order("d." + sortOrder).Scan(&entries).Error; err != nil {
		return nil, fmt.Errorf("%w: listing diaries: %v", ErrInternal, err)
	}
	return entries, nil
}

// ListDrafts returns the requester's own drafts. Solo rooms report none:
// their unfiltered listing already shows everything.
func (s *DiaryService) ListDrafts(ctx context.Context, pairID, requesterID int64) ([]DiaryEntry, error) {
	pair, err := s.memberPair(ctx, pairID, requesterID)
	if err != nil {
		return nil, err
	}
	if pair.IsSolo {
		return []DiaryEntry{}, nil
	}

	drafts := []DiaryEntry{}
	err = db.GetReadOnlyDB(ctx).
		Table("diaries d").
		Select("d.id, d.pair_id, d.author_id, d.title, d.content, d.is_draft, d.created_at, d.updated_at, u.username AS author_username").
		Joins("JOIN users u ON d.author_id = u.id").
		Where("d.pair_id = ? AND d.author_id = ? AND d.is_draft = ?", pairID, requesterID, true).
		Order("d.created_at DESC").
		Scan(&drafts).Error
	if err != nil {
		return nil, fmt.Errorf("%w: listing drafts: %v", ErrInternal, err)
	}
	return drafts, nil
}

func (s *DiaryService) Get(ctx context.Context, pairID, diaryID, requesterID int64) (*DiaryEntry, error) {
	pair, err := s.memberPair(ctx, pairID, requesterID)
	if err != nil {
		return nil, err
	}

	var entry DiaryEntry
	err = db.GetReadOnlyDB(ctx).
		Table("diaries d").
		Select("d.id, d.pair_id, d.author_id, d.title, d.content, d.is_draft, d.created_at, d.updated_at, u.username AS author_username").
		Joins("JOIN users u ON d.author_id = u.id").
		Where("d.id = ? AND d.pair_id = ?", diaryID, pairID).
		Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: diary", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: fetching diary: %v", ErrInternal, err)
	}

	diary := models.Diary{ID: entry.ID, PairID: entry.PairID, AuthorID: entry.AuthorID, IsDraft: entry.IsDraft}
	if !CanReadDiary(&diary, pair, requesterID) {
		return nil, fmt.Errorf("%w: drafts are visible to their author only", ErrForbidden)
	}
	return &entry, nil
}

// Create writes a new entry. CreatedAt may be supplied to place the entry on
// a specific calendar day; it defaults to now.
func (s *DiaryService) Create(ctx context.Context, pairID, authorID int64, params DiaryParams) (*models.Diary, error) {
	if _, err := s.memberPair(ctx, pairID, authorID); err != nil {
		return nil, err
	}
	if params.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}

	entry := &models.Diary{
		PairID:   pairID,
		AuthorID: authorID,
		Title:    params.Title,
		Content:  params.Content,
		IsDraft:  params.IsDraft,
	}
	if params.CreatedAt != nil {
		entry.CreatedAt = *params.CreatedAt
	}
	if err := db.GetWriteDB(ctx).Create(entry).Error; err != nil {
		return nil, fmt.Errorf("%w: creating diary: %v", ErrInternal, err)
	}
	return entry, nil
}

// Update rewrites an entry. Author-only, even for members of the pair. A
// patch without created_at keeps the original entry date.
func (s *DiaryService) Update(ctx context.Context, pairID, diaryID, actorID int64, params DiaryParams) error {
	entry, err := s.fetchEntry(ctx, pairID, diaryID)
	if err != nil {
		return err
	}
	if !CanWriteDiary(entry, actorID) {
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
	if err := db.GetWriteDB(ctx).Model(&models.Diary{}).Where("id = ?", entry.ID).Updates(updates).Error; err != nil {
		return fmt.Errorf("%w: updating diary: %v", ErrInternal, err)
	}
	return nil
}

func (s *DiaryService) Delete(ctx context.Context, pairID, diaryID, actorID int64) error {
	entry, err := s.fetchEntry(ctx, pairID, diaryID)
	if err != nil {
		return err
	}
	if !CanWriteDiary(entry, actorID) {
		return fmt.Errorf("%w: only the author may delete this diary", ErrForbidden)
	}
	if err := db.GetWriteDB(ctx).Delete(&models.Diary{}, entry.ID).Error; err != nil {
		return fmt.Errorf("%w: deleting diary: %v", ErrInternal, err)
	}
	return nil
}

// Calendar returns the distinct days of the month that carry entries. Draft
// entries count only in solo rooms, mirroring the listing rules. Days are
// computed in Go so sqlite and postgres agree.
func (s *DiaryService) Calendar(ctx context.Context, pairID, requesterID int64, year, month int) ([]int, error) {
	if month < 1 || month > 12 || year < 1 {
		return nil, fmt.Errorf("%w: invalid year or month", ErrValidation)
	}
	pair, err := s.memberPair(ctx, pairID, requesterID)
	if err != nil {
		return nil, err
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	query := db.GetReadOnlyDB(ctx).Model(&models.Diary{}).
		Where("pair_id = ? AND created_at >= ? AND created_at < ?", pairID, start, end)
	if !pair.IsSolo {
		query = query.Where("is_draft = ?", false)
	}

	var dates []time.Time
	if err := query.Pluck("created_at", &dates).Error; err != nil {
		return nil, fmt.Errorf("%w: reading calendar: %v", ErrInternal, err)
	}

	seen := map[int]bool{}
	days := []int{}
	for _, d := range dates {
		day := d.UTC().Day()
		if !seen[day] {
			seen[day] = true
			days = append(days, day)
		}
	}
	sort.Ints(days)
	return days, nil
}

func (s *DiaryService) memberPair(ctx context.Context, pairID, userID int64) (*models.Pair, error) {
	pair, err := s.pairs.fetchPair(ctx, pairID)
	if err != nil {
		return nil, err
	}
	if !pair.HasMember(userID) {
		return nil, fmt.Errorf("%w: not a member of this pair", ErrForbidden)
	}
	return pair, nil
}

func (s *DiaryService) fetchEntry(ctx context.Context, pairID, diaryID int64) (*models.Diary, error) {
	var entry models.Diary
	err := db.GetWriteDB(ctx).Where("id = ? AND pair_id = ?", diaryID, pairID).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: diary", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: fetching diary: %v", ErrInternal, err)
	}
	return &entry, nil
}
