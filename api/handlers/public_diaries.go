package handlers

import (
	"fmt"

	"pairdiary/services"

	"github.com/gin-gonic/gin"
)

var publicDiaryService = services.NewPublicDiaryService()

// ListPublicDiaries is the anonymous account page.
func ListPublicDiaries(c *gin.Context) {
	accountID := c.Param("accountId")

	profile, diaries, err := publicDiaryService.ListByAccount(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"user": profile, "diaries": diaries})
}

// GetPublicDiary serves a single entry. Auth is optional here: an anonymous
// viewer gets published entries, the author also gets their drafts.
func GetPublicDiary(c *gin.Context) {
	accountID := c.Param("accountId")
	diaryID, ok := pathID(c, "diaryId")
	if !ok {
		return
	}
	viewerID := c.GetInt64("user_id") // zero when anonymous

	entry, err := publicDiaryService.GetByAccount(c.Request.Context(), accountID, diaryID, viewerID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, entry)
}

func ListOwnPublicDiaries(c *gin.Context) {
	userID := c.GetInt64("user_id")
	diaries, err := publicDiaryService.ListOwn(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"diaries": diaries})
}

func CreatePublicDiary(c *gin.Context) {
	var params services.DiaryParams
	if err := c.ShouldBindJSON(&params); err != nil {
		respondError(c, fmt.Errorf("%w: invalid request body", services.ErrValidation))
		return
	}
	userID := c.GetInt64("user_id")

	entry, err := publicDiaryService.Create(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, entry)
}

func UpdatePublicDiary(c *gin.Context) {
	diaryID, ok := pathID(c, "diaryId")
	if !ok {
		return
	}
	var params services.DiaryParams
	if err := c.ShouldBindJSON(&params); err != nil {
		respondError(c, fmt.Errorf("%w: invalid request body", services.ErrValidation))
		return
	}
	userID := c.GetInt64("user_id")

	if err := publicDiaryService.Update(c.Request.Context(), diaryID, userID, params); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, nil)
}

func DeletePublicDiary(c *gin.Context) {
	diaryID, ok := pathID(c, "diaryId")
	if !ok {
		return
	}
	userID := c.GetInt64("user_id")

	if err := publicDiaryService.Delete(c.Request.Context(), diaryID, userID); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, nil)
}
