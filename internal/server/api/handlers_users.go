package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mvaldesc/conecta-api/internal/server/auth"
	"github.com/mvaldesc/conecta-api/internal/server/models"
	"github.com/mvaldesc/conecta-api/internal/server/services"
)

type userResponse struct {
	ID          string     `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
	IsSuperuser bool       `json:"is_superuser"`
}

type userSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func toUserResponse(u *models.User) userResponse {
	r := userResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		CreatedAt:   u.CreatedAt,
		IsSuperuser: u.IsSuperuser,
	}
	if u.UpdatedAt.Valid {
		t := u.UpdatedAt.Time
		r.UpdatedAt = &t
	}
	return r
}

type createUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// createSuperuser is an open endpoint; the superuser key in the body is the
// gate.
func (a *API) createSuperuser(c *gin.Context) {
	var req struct {
		createUserRequest
		SuperuserKey string `json:"superuser_key" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body")
		return
	}

	user, err := a.users.CreateSuperuser(c.Request.Context(), req.Username, req.Email, req.Password, req.SuperuserKey)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

// createUser registers a regular account. Superuser only.
func (a *API) createUser(c *gin.Context) {
	if err := auth.RequireSuperuser(identity(c)); err != nil {
		respondServiceError(c, err)
		return
	}

	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body")
		return
	}

	user, err := a.users.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

func (a *API) getUser(c *gin.Context) {
	user, err := a.users.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

func (a *API) getAllUsers(c *gin.Context) {
	users, err := a.users.GetAll(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	out := make([]userSummary, 0, len(users))
	for _, u := range users {
		out = append(out, userSummary{ID: u.ID, Username: u.Username, Email: u.Email})
	}
	c.JSON(http.StatusOK, out)
}

func (a *API) updateUser(c *gin.Context) {
	var req struct {
		Username *string `json:"username"`
		Email    *string `json:"email" binding:"omitempty,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body")
		return
	}

	user, err := a.users.Update(c.Request.Context(), c.Param("id"),
		services.UserUpdate{Username: req.Username, Email: req.Email})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

// changePassword is allowed for the account owner and for superusers.
func (a *API) changePassword(c *gin.Context) {
	targetID := c.Param("id")
	if err := auth.RequireSuperuserOrOwner(identity(c), targetID); err != nil {
		respondServiceError(c, err)
		return
	}

	var req struct {
		OldPassword string `json:"old_password" binding:"required"`
		NewPassword string `json:"new_password" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body")
		return
	}

	if err := a.users.ChangePassword(c.Request.Context(), targetID, req.OldPassword, req.NewPassword); err != nil {
		respondServiceError(c, err)
		return
	}

	user, err := a.users.GetByID(c.Request.Context(), targetID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

// deleteUser removes an account and its profile. Superuser only.
func (a *API) deleteUser(c *gin.Context) {
	if err := auth.RequireSuperuser(identity(c)); err != nil {
		respondServiceError(c, err)
		return
	}

	if err := a.users.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}
