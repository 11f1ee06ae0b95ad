package handlers

import (
	"net/http"

	"creatorlink/internal/discovery"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GET /api/creators?search=&country=&city=
func HandleListCreators(hc *Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		criteria := discovery.NewCriteria(c.Query("search"), c.Query("country"), c.Query("city"))

		creators, err := hc.Service.DiscoverCreators(ctx, criteria)
		if err != nil {
			hc.Logger.Error("failed to discover creators",
				zap.Bool("search", criteria.Search != nil),
				zap.Bool("location", criteria.HasLocation()),
				zap.Error(err),
			)
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch creators"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"creators": creators})
	}
}

// GET /api/creators/countries
func HandleCountries(hc *Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		countries, err := hc.Service.Countries(ctx)
		if err != nil {
			respondError(hc, c, err, "Failed to fetch countries")
			return
		}

		c.JSON(http.StatusOK, gin.H{"countries": countries})
	}
}

// GET /api/creators/:username
func HandleGetCreator(hc *Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := requestContext(c)
		defer cancel()

		creator, err := hc.Service.GetCreatorByUsername(ctx, c.Param("username"))
		if err != nil {
			respondError(hc, c, err, "Failed to fetch creator")
			return
		}

		c.JSON(http.StatusOK, gin.H{"creator": creator})
	}
}
