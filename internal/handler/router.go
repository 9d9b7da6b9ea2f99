package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sanjayganatra/satsang-qa-portal/internal/middleware"
)

type RouterDeps struct {
	Search          *SearchHandler
	SearchRateLimit time.Duration
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	searchGroup := api.Group("")
	if deps.SearchRateLimit > 0 {
		searchGroup.Use(middleware.RateLimit(deps.SearchRateLimit))
	}
	searchGroup.GET("/search", deps.Search.Search)

	api.GET("/browse", deps.Search.Browse)
	api.GET("/keywords", deps.Search.Keywords)
	api.GET("/stats", deps.Search.Stats)
}
