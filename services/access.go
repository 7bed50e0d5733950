package services

import "pairdiary/models"

// Read/write rules for diary entries, kept as pure predicates so every route
// shares one definition and the rules stay unit-testable without HTTP or a
// database.
//
// Drafts in a two-person pair are visible to their author only. Solo rooms
// have no publishing concept: the single member sees everything, drafts
// included.

func CanReadDiary(entry *models.Diary, pair *models.Pair, readerID int64) bool {
	if !pair.HasMember(readerID) {
		return false
	}
	if !entry.IsDraft {
		return true
	}
	if pair.IsSolo {
		return true
	}
	return entry.AuthorID == readerID
}

func CanWriteDiary(entry *models.Diary, actorID int64) bool {
	return entry.AuthorID == actorID
}

// CanReadPublicDiary takes viewerID 0 for anonymous readers. Published
// entries are world-readable; drafts only ever show to their author.
func CanReadPublicDiary(entry *models.PublicDiary, viewerID int64) bool {
	if !entry.IsDraft {
		return true
	}
	return viewerID != 0 && entry.AuthorID == viewerID
}

func CanWritePublicDiary(entry *models.PublicDiary, actorID int64) bool {
	return entry.AuthorID == actorID
}
