package auth

import (
	"errors"
	"net/http"
	"time"

	apierrors "hadron_scholar_backend/internal/errors"
	"hadron_scholar_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// SetupRoutes registers the account endpoints under /auth.
func SetupRoutes(r *gin.Engine, users *services.UserService, secret string, tokenTTL time.Duration) {
	grp := r.Group("/auth")
	{
		grp.POST("/register", registerHandler(users))
		grp.POST("/login", loginHandler(users, secret, tokenTTL))
		grp.POST("/logout", logoutHandler)
		grp.GET("/user", AuthMiddleware(users, secret), currentUserHandler)
		grp.GET("/settings", AuthMiddleware(users, secret), getSettingsHandler)
		grp.PUT("/settings", AuthMiddleware(users, secret), updateSettingsHandler(users))
	}
}

// validationError reports whether err is a user-facing validation failure
// rather than an internal one.
func validationError(err error) bool {
	return errors.Is(err, services.ErrInvalidEmail) ||
		errors.Is(err, services.ErrPasswordTooShort) ||
		errors.Is(err, services.ErrPasswordMismatch) ||
		errors.Is(err, services.ErrEmailTaken)
}

func registerHandler(users *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var request struct {
			Email           string `json:"email" binding:"required"`
			Password        string `json:"password" binding:"required"`
			ConfirmPassword string `json:"confirm_password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&request); err != nil {
			apierrors.HandleError(c, apierrors.New400Error(err.Error()))
			return
		}

		user, err := users.Register(request.Email, request.Password, request.ConfirmPassword)
		if err != nil {
			if validationError(err) {
				apierrors.HandleError(c, apierrors.New400Error(err.Error()))
				return
			}
			apierrors.HandleError(c, apierrors.LogAndReturn500(err))
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": "Registration successful! Please log in.",
			"user":    user,
		})
	}
}

func loginHandler(users *services.UserService, secret string, tokenTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var request struct {
			Email    string `json:"email" binding:"required"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&request); err != nil {
			apierrors.HandleError(c, apierrors.New400Error(err.Error()))
			return
		}

		user, err := users.Authenticate(request.Email, request.Password)
		if err != nil {
			if errors.Is(err, services.ErrInvalidCredentials) {
				apierrors.HandleError(c, apierrors.New400Error(err.Error()))
				return
			}
			apierrors.HandleError(c, apierrors.LogAndReturn500(err))
			return
		}

		token, err := GenerateToken(user, secret, tokenTTL)
		if err != nil {
			apierrors.HandleError(c, apierrors.LogAndReturn500(err))
			return
		}

		c.SetCookie(CookieName, token, int(tokenTTL.Seconds()), "/", "", false, true)
		c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
	}
}

func logoutHandler(c *gin.Context) {
	c.SetCookie(CookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "You have been logged out."})
}

func currentUserHandler(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		apierrors.HandleError(c, apierrors.New401Error())
		return
	}
	c.JSON(http.StatusOK, user)
}

func getSettingsHandler(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		apierrors.HandleError(c, apierrors.New401Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"email_digest_enabled": user.EmailDigestEnabled})
}

func updateSettingsHandler(users *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			apierrors.HandleError(c, apierrors.New401Error())
			return
		}

		var request struct {
			EmailDigestEnabled *bool `json:"email_digest_enabled" binding:"required"`
		}
		if err := c.ShouldBindJSON(&request); err != nil {
			apierrors.HandleError(c, apierrors.New400Error(err.Error()))
			return
		}

		if err := users.SetDigestEnabled(user.ID, *request.EmailDigestEnabled); err != nil {
			apierrors.HandleError(c, apierrors.LogAndReturn500(err))
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":              "Settings updated.",
			"email_digest_enabled": *request.EmailDigestEnabled,
		})
	}
}
