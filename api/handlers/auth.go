package handlers

import (
	"errors"
	"fmt"

	"pairdiary/services"

	"github.com/gin-gonic/gin"
)

var accountService = services.NewAccountService()

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func Register(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, fmt.Errorf("%w: invalid request body", services.ErrValidation))
		return
	}

	user, err := accountService.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, user)
}

func Login(c *gin.Context) {
	var req CredentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, fmt.Errorf("%w: invalid request body", services.ErrValidation))
		return
	}

	user, err := accountService.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	token, err := services.Sessions.Create(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{
		"id":         user.ID,
		"username":   user.Username,
		"account_id": user.AccountID,
		"session_id": token,
	})
}

func Logout(c *gin.Context) {
	token := c.GetString("session_token")
	if err := services.Sessions.Destroy(c.Request.Context(), token); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, nil)
}

func Me(c *gin.Context) {
	userID := c.GetInt64("user_id")
	user, err := accountService.GetByID(c.Request.Context(), userID)
	if err != nil {
		// A session pointing at a vanished user is dead weight; drop it.
		if errors.Is(err, services.ErrNotFound) {
			_ = services.Sessions.Destroy(c.Request.Context(), c.GetString("session_token"))
			respondError(c, services.ErrAuth)
			return
		}
		respondError(c, err)
		return
	}
	respondOK(c, user)
}
