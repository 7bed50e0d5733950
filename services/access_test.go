package services

import (
	"testing"

	"pairdiary/models"

	"github.com/stretchr/testify/assert"
)

func TestDiaryReadPredicate(t *testing.T) {
	two := int64(2)
	sharedPair := &models.Pair{ID: 1, User1ID: 1, User2ID: &two}
	soloPair := &models.Pair{ID: 2, User1ID: 1, IsSolo: true}

	tests := []struct {
		name   string
		entry  *models.Diary
		pair   *models.Pair
		reader int64
		want   bool
	}{
		{"published visible to both members", &models.Diary{AuthorID: 1}, sharedPair, 2, true},
		{"published hidden from outsiders", &models.Diary{AuthorID: 1}, sharedPair, 3, false},
		{"draft visible to author", &models.Diary{AuthorID: 1, IsDraft: true}, sharedPair, 1, true},
		{"draft hidden from partner", &models.Diary{AuthorID: 1, IsDraft: true}, sharedPair, 2, false},
		{"solo draft visible to owner", &models.Diary{AuthorID: 1, IsDraft: true}, soloPair, 1, true},
		{"solo draft hidden from outsiders", &models.Diary{AuthorID: 1, IsDraft: true}, soloPair, 2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanReadDiary(tt.entry, tt.pair, tt.reader))
		})
	}
}

func TestDiaryWritePredicate(t *testing.T) {
	entry := &models.Diary{AuthorID: 1}
	assert.True(t, CanWriteDiary(entry, 1))
	// Pair membership grants no write access.
	assert.False(t, CanWriteDiary(entry, 2))
}

func TestPublicDiaryPredicates(t *testing.T) {
	published := &models.PublicDiary{AuthorID: 1}
	draft := &models.PublicDiary{AuthorID: 1, IsDraft: true}

	assert.True(t, CanReadPublicDiary(published, 0))
	assert.True(t, CanReadPublicDiary(published, 2))
	assert.True(t, CanReadPublicDiary(draft, 1))
	assert.False(t, CanReadPublicDiary(draft, 2))
	assert.False(t, CanReadPublicDiary(draft, 0))

	assert.True(t, CanWritePublicDiary(draft, 1))
	assert.False(t, CanWritePublicDiary(draft, 2))
}
