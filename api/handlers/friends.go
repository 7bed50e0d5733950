package handlers

import (
	"fmt"

	"pairdiary/services"

	"github.com/gin-gonic/gin"
)

var relationService = services.NewRelationService()

func SearchUser(c *gin.Context) {
	accountID := c.Param("accountId")
	userID := c.GetInt64("user_id")

	result, err := relationService.SearchUser(c.Request.Context(), accountID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, result)
}

func SendFriendRequest(c *gin.Context) {
	type req struct {
		ReceiverID int64 `json:"receiver_id"`
	}
	var r req
	if err := c.ShouldBindJSON(&r); err != nil {
		respondError(c, fmt.Errorf("%w: invalid request body", services.ErrValidation))
		return
	}

	userID := c.GetInt64("user_id")
	id, err := relationService.SendRequest(c.Request.Context(), userID, r.ReceiverID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"id": id})
}

func AcceptFriendRequest(c *gin.Context) {
	friendshipID, ok := pathID(c, "friendshipId")
	if !ok {
		return
	}
	userID := c.GetInt64("user_id")
	pairID, err := relationService.Accept(c.Request.Context(), friendshipID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"pair_id": pairID})
}

func RejectFriendRequest(c *gin.Context) {
	friendshipID, ok := pathID(c, "friendshipId")
	if !ok {
		return
	}
	userID := c.GetInt64("user_id")
	if err := relationService.Reject(c.Request.Context(), friendshipID, userID); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, nil)
}

func RemoveFriend(c *gin.Context) {
	friendshipID, ok := pathID(c, "friendshipId")
	if !ok {
		return
	}
	userID := c.GetInt64("user_id")
	if err := relationService.Remove(c.Request.Context(), friendshipID, userID); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, nil)
}

func ListFriends(c *gin.Context) {
	userID := c.GetInt64("user_id")
	friends, err := relationService.ListFriends(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"friends": friends})
}

func ListFriendRequests(c *gin.Context) {
	userID := c.GetInt64("user_id")
	requests, err := relationService.ListPendingRequests(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"requests": requests})
}
