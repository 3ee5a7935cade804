package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewRouter constructs the gin engine with all routes wired. Profile reads
// are public; everything else sits behind bearer authentication, with
// per-route policy checks inside the handlers.
func (a *API) NewRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := r.Group("/api")
	{
		apiGroup.POST("/auth", a.loginForm)
		apiGroup.POST("/auth/login", a.loginJSON)

		users := apiGroup.Group("/users")
		{
			users.POST("/create_superuser", a.createSuperuser)

			authed := users.Group("", a.AuthRequired())
			{
				authed.POST("", a.createUser)
				authed.GET("", a.getAllUsers)
				authed.GET("/:id", a.getUser)
				authed.PUT("/change_password/:id", a.changePassword)
				authed.PUT("/:id", a.updateUser)
				authed.DELETE("/:id", a.deleteUser)
			}
		}

		profiles := apiGroup.Group("/profiles")
		{
			profiles.GET("", a.getAllProfiles)
			profiles.GET("/me", a.AuthRequired(), a.getMyProfile)
			profiles.GET("/:id", a.getProfile)
			profiles.PUT("/me", a.AuthRequired(), a.updateMyProfile)
			profiles.PUT("/:id", a.AuthRequired(), a.updateProfile)
		}
	}

	return r
}
