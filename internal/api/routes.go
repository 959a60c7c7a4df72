package api

import (
	"hadron_scholar_backend/internal/auth"
	"hadron_scholar_backend/internal/ingest"
	"hadron_scholar_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// SetupRoutes registers the paper and favorite endpoints under /api.
func SetupRoutes(
	r *gin.Engine,
	papers *services.PaperService,
	favorites *services.FavoriteService,
	users *services.UserService,
	pipeline *ingest.Pipeline,
	jwtSecret string,
) {
	grp := r.Group("/api")
	{
		grp.GET("/papers", auth.OptionalAuth(users, jwtSecret), listPapersHandler(papers, favorites))
		grp.GET("/papers/:id", auth.OptionalAuth(users, jwtSecret), getPaperHandler(papers, favorites))
		grp.POST("/papers/refresh", refreshHandler(pipeline))
		grp.GET("/keywords", listKeywordsHandler(papers))
		grp.GET("/sources", listSourcesHandler(papers))

		grp.GET("/favorites", auth.AuthMiddleware(users, jwtSecret), listFavoritesHandler(favorites))
		grp.POST("/favorites/:paper_id", auth.AuthMiddleware(users, jwtSecret), addFavoriteHandler(favorites, papers))
		grp.DELETE("/favorites/:paper_id", auth.AuthMiddleware(users, jwtSecret), removeFavoriteHandler(favorites))
	}
}
