package api

import (
	"net/http"
	"strconv"

	"hadron_scholar_backend/internal/auth"
	apierrors "hadron_scholar_backend/internal/errors"
	"hadron_scholar_backend/internal/ingest"
	"hadron_scholar_backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const defaultListLimit = 50

func listPapersHandler(papers *services.PaperService, favorites *services.FavoriteService) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := defaultListLimit
		if raw := c.Query("limit"); raw != "" {
			if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 200 {
				limit = parsed
			}
		}

		results, err := papers.RecentPapers(limit, c.Query("keyword"), c.Query("source"), c.Query("q"))
		if err != nil {
			apierrors.HandleError(c, apierrors.LogAndReturn500(err))
			return
		}

		response := gin.H{"papers": results}
		if user, ok := auth.CurrentUser(c); ok {
			ids, err := favorites.PaperIDs(user.ID)
			if err != nil {
				apierrors.HandleError(c, apierrors.LogAndReturn500(err))
				return
			}
			response["favorite_ids"] = ids
		}

		c.JSON(http.StatusOK, response)
	}
}

func getPaperHandler(papers *services.PaperService, favorites *services.FavoriteService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			apierrors.HandleError(c, apierrors.New400Error("invalid paper id"))
			return
		}

		paper, err := papers.GetPaper(uint(id))
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				apierrors.HandleError(c, apierrors.New404Error("paper not found"))
				return
			}
			apierrors.HandleError(c, apierrors.LogAndReturn500(err))
			return
		}

		response := gin.H{"paper": paper}
		if user, ok := auth.CurrentUser(c); ok {
			isFavorite, err := favorites.IsFavorite(user.ID, paper.ID)
			if err != nil {
				apierrors.HandleError(c, apierrors.LogAndReturn500(err))
				return
			}
			response["is_favorite"] = isFavorite
		}

		c.JSON(http.StatusOK, response)
	}
}

// refreshHandler triggers an on-demand ingestion run and returns the
// per-source report.
func refreshHandler(pipeline *ingest.Pipeline) gin.HandlerFunc {
	return func(c *gin.Context) {
		report := pipeline.Run(c.Request.Context())

		status := http.StatusOK
		if report.Error != "" {
			status = http.StatusInternalServerError
		}
		c.JSON(status, gin.H{
			"sources":        report.Sources,
			"fetched_papers": len(report.Papers),
			"error":          report.Error,
		})
	}
}

func listKeywordsHandler(papers *services.PaperService) gin.HandlerFunc {
	return func(c *gin.Context) {
		counts, err := papers.KeywordCounts()
		if err != nil {
			apierrors.HandleError(c, apierrors.LogAndReturn500(err))
			return
		}
		c.JSON(http.StatusOK, gin.H{"keywords": counts})
	}
}

func listSourcesHandler(papers *services.PaperService) gin.HandlerFunc {
	return func(c *gin.Context) {
		counts, err := papers.SourceCounts()
		if err != nil {
			apierrors.HandleError(c, apierrors.LogAndReturn500(err))
			return
		}
		c.JSON(http.StatusOK, gin.H{"sources": counts})
	}
}
