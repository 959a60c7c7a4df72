package api

import (
	"errors"
	"net/http"
	"strconv"

	"hadron_scholar_backend/internal/auth"
	apierrors "hadron_scholar_backend/internal/errors"
	"hadron_scholar_backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func listFavoritesHandler(favorites *services.FavoriteService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := auth.CurrentUser(c)
		if !ok {
			apierrors.HandleError(c, apierrors.New401Error())
			return
		}

		papers, err := favorites.List(user.ID)
		if err != nil {
			apierrors.HandleError(c, apierrors.LogAndReturn500(err))
			return
		}
		c.JSON(http.StatusOK, gin.H{"papers": papers})
	}
}

func addFavoriteHandler(favorites *services.FavoriteService, papers *services.PaperService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := auth.CurrentUser(c)
		if !ok {
			apierrors.HandleError(c, apierrors.New401Error())
			return
		}

		paperID, err := strconv.ParseUint(c.Param("paper_id"), 10, 32)
		if err != nil {
			apierrors.HandleError(c, apierrors.New400Error("invalid paper id"))
			return
		}

		if _, err := papers.GetPaper(uint(paperID)); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				apierrors.HandleError(c, apierrors.New404Error("paper not found"))
				return
			}
			apierrors.HandleError(c, apierrors.LogAndReturn500(err))
			return
		}

		if err := favorites.Add(user.ID, uint(paperID)); err != nil {
			if errors.Is(err, services.ErrAlreadyFavorite) {
				c.JSON(http.StatusOK, gin.H{
					"status":  "success",
					"action":  "exists",
					"message": "Paper already in favorites.",
				})
				return
			}
			apierrors.HandleError(c, apierrors.LogAndReturn500(err))
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "success",
			"action":  "added",
			"message": "Paper added to favorites.",
		})
	}
}

func removeFavoriteHandler(favorites *services.FavoriteService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := auth.CurrentUser(c)
		if !ok {
			apierrors.HandleError(c, apierrors.New401Error())
			return
		}

		paperID, err := strconv.ParseUint(c.Param("paper_id"), 10, 32)
		if err != nil {
			apierrors.HandleError(c, apierrors.New400Error("invalid paper id"))
			return
		}

		if err := favorites.Remove(user.ID, uint(paperID)); err != nil {
			if errors.Is(err, services.ErrNotFavorite) {
				c.JSON(http.StatusOK, gin.H{
					"status":  "success",
					"action":  "missing",
					"message": "Paper not in favorites.",
				})
				return
			}
			apierrors.HandleError(c, apierrors.LogAndReturn500(err))
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":  "success",
			"action":  "removed",
			"message": "Paper removed from favorites.",
		})
	}
}
