package handlers

import (
	"fmt"
	"strconv"

	"pairdiary/api/middleware"
	"pairdiary/services"

	"github.com/gin-gonic/gin"
)

var diaryService = services.NewDiaryService()

func ListDiaries(c *gin.Context) {
	pairID, ok := pathID(c, "pairId")
	if !ok {
		return
	}
	userID := c.GetInt64("user_id")
	order := c.DefaultQuery("order", "desc")

	diaries, err := diaryService.ListPublished(c.Request.Context(), pairID, userID, order)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"diaries": diaries})
}

func ListDrafts(c *gin.Context) {
	pairID, ok := pathID(c, "pairId")
	if !ok {
		return
	}
	userID := c.GetInt64("user_id")

	drafts, err := diaryService.ListDrafts(c.Request.Context(), pairID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"drafts": drafts})
}

func DiaryCalendar(c *gin.Context) {
	pairID, ok := pathID(c, "pairId")
	if !ok {
		return
	}
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		respondError(c, fmt.Errorf("%w: invalid year", services.ErrValidation))
		return
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		respondError(c, fmt.Errorf("%w: invalid month", services.ErrValidation))
		return
	}
	userID := c.GetInt64("user_id")

	days, err := diaryService.Calendar(c.Request.Context(), pairID, userID, year, month)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"days": days})
}

func GetDiary(c *gin.Context) {
	pairID, ok := pathID(c, "pairId")
	if !ok {
		return
	}
	diaryID, ok := pathID(c, "diaryId")
	if !ok {
		return
	}
	userID := c.GetInt64("user_id")

	entry, err := diaryService.Get(c.Request.Context(), pairID, diaryID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, entry)
}

func CreateDiary(c *gin.Context) {
	pairID, ok := pathID(c, "pairId")
	if !ok {
		return
	}
	var params services.DiaryParams
	if err := c.ShouldBindJSON(&params); err != nil {
		respondError(c, fmt.Errorf("%w: invalid request body", services.ErrValidation))
		return
	}
	userID := c.GetInt64("user_id")

	entry, err := diaryService.Create(c.Request.Context(), pairID, userID, params)
	if err != nil {
		middleware.RecordDiaryOperation("create", "error", serviceName)
		respondError(c, err)
		return
	}
	middleware.RecordDiaryOperation("create", "ok", serviceName)
	respondOK(c, entry)
}

func UpdateDiary(c *gin.Context) {
	pairID, ok := pathID(c, "pairId")
	if !ok {
		return
	}
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

	if err := diaryService.Update(c.Request.Context(), pairID, diaryID, userID, params); err != nil {
		middleware.RecordDiaryOperation("update", "error", serviceName)
		respondError(c, err)
		return
	}
	middleware.RecordDiaryOperation("update", "ok", serviceName)
	respondOK(c, nil)
}

func DeleteDiary(c *gin.Context) {
	pairID, ok := pathID(c, "pairId")
	if !ok {
		return
	}
	diaryID, ok := pathID(c, "diaryId")
	if !ok {
		return
	}
	userID := c.GetInt64("user_id")

	if err := diaryService.Delete(c.Request.Context(), pairID, diaryID, userID); err != nil {
		middleware.RecordDiaryOperation("delete", "error", serviceName)
		respondError(c, err)
		return
	}
	middleware.RecordDiaryOperation("delete", "ok", serviceName)
	respondOK(c, nil)
}
