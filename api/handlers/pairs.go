package handlers

import (
	"fmt"

	"pairdiary/services"

	"github.com/gin-gonic/gin"
)

var pairService = services.NewPairService()

func CreatePair(c *gin.Context) {
	userID := c.GetInt64("user_id")
	pair, err := pairService.CreatePair(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{
		"pair_id":     pair.ID,
		"invite_code": pair.InviteCode,
	})
}

func JoinPair(c *gin.Context) {
	type req struct {
		InviteCode string `json:"invite_code"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		respondError(c, fmt.Errorf("%w: invalid request body", services.ErrValidation))
		return
	}

	userID := c.GetInt64("user_id")
	pairID, err := pairService.JoinPair(c.Request.Context(), userID, r.InviteCode)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"pair_id": pairID})
}

func ListPairs(c *gin.Context) {
	userID := c.GetInt64("user_id")
	pairs, err := pairService.ListPairs(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"pairs": pairs})
}

func GetPair(c *gin.Context) {
	pairID, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID := c.GetInt64("user_id")
	pair, err := pairService.GetPair(c.Request.Context(), pairID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, pair)
}

func DeletePair(c *gin.Context) {
	pairID, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID := c.GetInt64("user_id")
	if err := pairService.DeletePair(c.Request.Context(), pairID, userID); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, nil)
}
