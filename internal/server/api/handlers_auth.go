package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type authResponse struct {
	ID          string `json:"id"`
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Username    string `json:"username"`
	Email       string `json:"email"`
}

// loginForm handles the OAuth2-style form login used by interactive API
// clients: username and password arrive as form fields.
func (a *API) loginForm(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	if username == "" || password == "" {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "username and password are required")
		return
	}

	a.login(c, username, password)
}

// loginJSON handles the JSON login body {username_or_email, password}.
func (a *API) loginJSON(c *gin.Context) {
	var req struct {
		UsernameOrEmail string `json:"username_or_email" binding:"required"`
		Password        string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json")
		return
	}

	a.login(c, req.UsernameOrEmail, req.Password)
}

func (a *API) login(c *gin.Context, usernameOrEmail, password string) {
	res, err := a.auth.Login(c.Request.Context(), usernameOrEmail, password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, authResponse{
		ID:          res.ID,
		AccessToken: res.AccessToken,
		TokenType:   "bearer",
		Username:    res.Username,
		Email:       res.Email,
	})
}
