package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicAccountPageShowsPublishedOnly(t *testing.T) {
	setupTestDB(t)
	svc := NewPublicDiaryService()
	alice := registerTestUser(t)

	published, err := svc.Create(context.Background(), alice.ID, DiaryParams{Title: "Hello world"})
	require.NoError(t, err)
	draft, err := svc.Create(context.Background(), alice.ID, DiaryParams{Title: "Unfinished", IsDraft: true})
	require.NoError(t, err)

	profile, diaries, err := svc.ListByAccount(context.Background(), alice.AccountID)
	require.NoError(t, err)
	assert.Equal(t, alice.Username, profile.Username)
	require.Len(t, diaries, 1)
	assert.Equal(t, published.ID, diaries[0].ID)
	assert.NotEqual(t, draft.ID, diaries[0].ID)

	// The author's own listing includes the draft.
	own, err := svc.ListOwn(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Len(t, own, 2)

	_, _, err = svc.ListByAccount(context.Background(), "nope0000")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPublicDraftServedToAuthorOnly(t *testing.T) {
	setupTestDB(t)
	svc := NewPublicDiaryService()
	alice := registerTestUser(t)
	bob := registerTestUser(t)

	draft, err := svc.Create(context.Background(), alice.ID, DiaryParams{Title: "Unfinished", IsDraft: true})
	require.NoError(t, err)

	// Anonymous viewer.
	_, err = svc.GetByAccount(context.Background(), alice.AccountID, draft.ID, 0)
	assert.ErrorIs(t, err, ErrForbidden)

	// Another signed-in user.
	_, err = svc.GetByAccount(context.Background(), alice.AccountID, draft.ID, bob.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	got, err := svc.GetByAccount(context.Background(), alice.AccountID, draft.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, alice.Username, got.AuthorUsername)
	assert.Equal(t, alice.AccountID, got.AuthorAccountID)
}

func TestPublicDiaryScopedToAccount(t *testing.T) {
	setupTestDB(t)
	svc := NewPublicDiaryService()
	alice := registerTestUser(t)
	bob := registerTestUser(t)

	entry, err := svc.Create(context.Background(), alice.ID, DiaryParams{Title: "Mine"})
	require.NoError(t, err)

	// Alice's entry is not addressable under bob's account page.
	_, err = svc.GetByAccount(context.Background(), bob.AccountID, entry.ID, 0)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPublicDiaryWritesAreAuthorOnly(t *testing.T) {
	setupTestDB(t)
	svc := NewPublicDiaryService()
	alice := registerTestUser(t)
	bob := registerTestUser(t)

	entry, err := svc.Create(context.Background(), alice.ID, DiaryParams{Title: "Mine"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Update(context.Background(), entry.ID, bob.ID, DiaryParams{Title: "Tampered"}), ErrForbidden)
	assert.ErrorIs(t, svc.Delete(context.Background(), entry.ID, bob.ID), ErrForbidden)

	require.NoError(t, svc.Update(context.Background(), entry.ID, alice.ID, DiaryParams{Title: "Edited"}))
	require.NoError(t, svc.Delete(context.Background(), entry.ID, alice.ID))
	assert.ErrorIs(t, svc.Delete(context.Background(), entry.ID, alice.ID), ErrNotFound)
}

func TestPublicDiaryCreateValidation(t *testing.T) {
	setupTestDB(t)
	svc := NewPublicDiaryService()
	alice := registerTestUser(t)

	_, err := svc.Create(context.Background(), alice.ID, DiaryParams{Content: "no title"})
	assert.ErrorIs(t, err, ErrValidation)
}
