package api

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/portfolio-api/internal/models"
)

// listFilter reads status, featured and limit query parameters.
// Non-numeric or non-positive limits are ignored.
func listFilter(c *gin.Context) models.ListFilter {
	return models.ListFilter{
		PublishedOnly: c.Query("status") == models.StatusPublished,
		FeaturedOnly:  c.Query("featured") == "true",
		Limit:         parseLimit(c.Query("limit")),
	}
}

func parseLimit(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0
	}
	return n
}
