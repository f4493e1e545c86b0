package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const ownerIDKey = "ownerID"

// userIDHeader carries the caller identity, set by the authenticating gateway
// in front of this service. Token verification itself is not this service's
// concern.
const userIDHeader = "X-User-ID"

func NewRouter(handlers *Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	group := router.Group("/api", RequireUser())
	group.GET("/alerts", handlers.ListAlerts)
	group.POST("/alerts", handlers.CreateAlert)
	group.DELETE("/alerts/:id", handlers.DeleteAlert)
	group.GET("/indices", handlers.ListIndices)

	return router
}

func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader(userIDHeader)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing user identity"})
			return
		}
		c.Set(ownerIDKey, userID)
		c.Next()
	}
}

func ownerID(c *gin.Context) string {
	return c.GetString(ownerIDKey)
}
