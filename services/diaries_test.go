package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateDiaryValidation(t *testing.T) {
	setupTestDB(t)
	svc := NewDiaryService()
	alice := registerTestUser(t)
	bob := registerTestUser(t)
	pairID := twoPersonPair(t, alice, bob)

	_, err := svc.Create(context.Background(), pairID, alice.ID, DiaryParams{Content: "no title"})
	assert.ErrorIs(t, err, ErrValidation)

	// Outsiders cannot post into the pair.
	carol := registerTestUser(t)
	_, err = svc.Create(context.Background(), pairID, carol.ID, DiaryParams{Title: "hi"})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Create(context.Background(), 99999, alice.ID, DiaryParams{Title: "hi"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDraftHiddenFromPartnerUntilPublished(t *testing.T) {
	setupTestDB(t)
	svc := NewDiaryService()
	alice := registerTestUser(t)
	bob := registerTestUser(t)
	pairID := twoPersonPair(t, alice, bob)

	draft, err := svc.Create(context.Background(), pairID, alice.ID, DiaryParams{Title: "Secret", IsDraft: true})
	require.NoError(t, err)

	entries, err := svc.ListPublished(context.Background(), pairID, bob.ID, "")
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, err = svc.Get(context.Background(), pairID, draft.ID, bob.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	// The author still sees their own draft.
	got, err := svc.Get(context.Background(), pairID, draft.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, alice.Username, got.AuthorUsername)

	drafts, err := svc.ListDrafts(context.Background(), pairID, alice.ID)
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	drafts, err = svc.ListDrafts(context.Background(), pairID, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, drafts)

	// Publishing flips visibility for the partner.
	require.NoError(t, svc.Update(context.Background(), pairID, draft.ID, alice.ID, DiaryParams{Title: "Secret", IsDraft: false}))

	entries, err = svc.ListPublished(context.Background(), pairID, bob.ID, "")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, alice.Username, entries[0].AuthorUsername)
}

func TestSoloRoomShowsDraftsInline(t *testing.T) {
	setupTestDB(t)
	svc := NewDiaryService()
	alice := registerTestUser(t)
	solo := soloPairOf(t, alice)

	_, err := svc.Create(context.Background(), solo.ID, alice.ID, DiaryParams{Title: "Draft", IsDraft: true})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), solo.ID, alice.ID, DiaryParams{Title: "Published"})
	require.NoError(t, err)

	// The unfiltered listing carries both entries.
	entries, err := svc.ListPublished(context.Background(), solo.ID, alice.ID, "asc")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// So the separate drafts listing stays empty.
	drafts, err := svc.ListDrafts(context.Background(), solo.ID, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, drafts)
}

func TestListPublishedOrdering(t *testing.T) {
	setupTestDB(t)
	svc := NewDiaryService()
	alice := registerTestUser(t)
	solo := soloPairOf(t, alice)

	older := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	newer := time.Date(2025, 3, 5, 12, 0, 0, 0, time.UTC)
	_, err := svc.Create(context.Background(), solo.ID, alice.ID, DiaryParams{Title: "old", CreatedAt: &older})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), solo.ID, alice.ID, DiaryParams{Title: "new", CreatedAt: &newer})
	require.NoError(t, err)

	entries, err := svc.ListPublished(context.Background(), solo.ID, alice.ID, "")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "new", entries[0].Title)

	entries, err = svc.ListPublished(context.Background(), solo.ID, alice.ID, "asc")
	require.NoError(t, err)
	assert.Equal(t, "old", entries[0].Title)
}

func TestDiaryWritesAreAuthorOnly(t *testing.T) {
	setupTestDB(t)
	svc := NewDiaryService()
	alice := registerTestUser(t)
	bob := registerTestUser(t)
	pairID := twoPersonPair(t, alice, bob)

	entry, err := svc.Create(context.Background(), pairID, alice.ID, DiaryParams{Title: "Mine"})
	require.NoError(t, err)

	// Bob shares the pair but did not write the entry.
	err = svc.Update(context.Background(), pairID, entry.ID, bob.ID, DiaryParams{Title: "Tampered"})
	assert.ErrorIs(t, err, ErrForbidden)
	assert.ErrorIs(t, svc.Delete(context.Background(), pairID, entry.ID, bob.ID), ErrForbidden)

	require.NoError(t, svc.Update(context.Background(), pairID, entry.ID, alice.ID, DiaryParams{Title: "Edited", Content: "body"}))
	got, err := svc.Get(context.Background(), pairID, entry.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "Edited", got.Title)

	require.NoError(t, svc.Delete(context.Background(), pairID, entry.ID, alice.ID))
	_, err = svc.Get(context.Background(), pairID, entry.ID, alice.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDiaryScopedToItsPair(t *testing.T) {
	setupTestDB(t)
	svc := NewDiaryService()
	alice := registerTestUser(t)
	bob := registerTestUser(t)
	pairID := twoPersonPair(t, alice, bob)
	solo := soloPairOf(t, alice)

	entry, err := svc.Create(context.Background(), pairID, alice.ID, DiaryParams{Title: "Shared"})
	require.NoError(t, err)

	// The same id under a different room is a miss, not a leak.
	_, err = svc.Get(context.Background(), solo.ID, entry.ID, alice.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCalendar(t *testing.T) {
	setupTestDB(t)
	svc := NewDiaryService()
	alice := registerTestUser(t)
	bob := registerTestUser(t)
	pairID := twoPersonPair(t, alice, bob)

	day3 := time.Date(2025, 4, 3, 9, 0, 0, 0, time.UTC)
	day3evening := time.Date(2025, 4, 3, 21, 0, 0, 0, time.UTC)
	day17 := time.Date(2025, 4, 17, 9, 0, 0, 0, time.UTC)
	day20 := time.Date(2025, 4, 20, 9, 0, 0, 0, time.UTC)
	otherMonth := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)

	for _, d := range []time.Time{day3, day3evening, day17, otherMonth} {
		at := d
		_, err := svc.Create(context.Background(), pairID, alice.ID, DiaryParams{Title: "entry", CreatedAt: &at})
		require.NoError(t, err)
	}
	// A draft does not mark the calendar in a shared pair.
	_, err := svc.Create(context.Background(), pairID, bob.ID, DiaryParams{Title: "draft", IsDraft: true, CreatedAt: &day20})
	require.NoError(t, err)

	days, err := svc.Calendar(context.Background(), pairID, bob.ID, 2025, 4)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 17}, days)

	_, err = svc.Calendar(context.Background(), pairID, bob.ID, 2025, 13)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.Calendar(context.Background(), pairID, registerTestUser(t).ID, 2025, 4)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestSoloCalendarCountsDrafts(t *testing.T) {
	setupTestDB(t)
	svc := NewDiaryService()
	alice := registerTestUser(t)
	solo := soloPairOf(t, alice)

	at := time.Date(2025, 4, 9, 9, 0, 0, 0, time.UTC)
	_, err := svc.Create(context.Background(), solo.ID, alice.ID, DiaryParams{Title: "draft", IsDraft: true, CreatedAt: &at})
	require.NoError(t, err)

	days, err := svc.Calendar(context.Background(), solo.ID, alice.ID, 2025, 4)
	require.NoError(t, err)
	assert.Equal(t, []int{9}, days)
}
