package v1

import (
	"github.com/envelope-zero/budget-analytics/internal/models"
	"github.com/gin-gonic/gin"
)

// resourceOptionsDetail returns the appropriate response for an HTTP OPTIONS request for a specific resource.
func resourceOptionsDetail[R models.Category | models.Income | models.Methodology | models.Transaction](c *gin.Context, resource R, options gin.HandlerFunc) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.WithContext(c).First(&resource, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	options(c)
}

// paginate returns the page of items starting at offset with at most limit items.
// A negative limit returns all remaining items.
func paginate[T any](items []T, offset uint, limit int) []T {
	if int(offset) >= len(items) {
		return []T{}
	}

	items = items[offset:]
	if limit >= 0 && limit < len(items) {
		items = items[:limit]
	}

	return items
}
