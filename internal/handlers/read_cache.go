package handlers

import (
	"net/http"
	"time"

	"github.com/SscSPs/credit_notes_app/internal/core/domain"
	"github.com/SscSPs/credit_notes_app/internal/platform/cache"
	"github.com/gin-gonic/gin"
)

// ReadCaches holds short-lived copies of the small lookup lists served to pickers.
type ReadCaches struct {
	Sections *cache.ReadThrough[[]domain.Section]
	Filters  *cache.ReadThrough[*domain.FilterOptions]
}

func NewReadCaches(size int, ttl time.Duration) *ReadCaches {
	return &ReadCaches{
		Sections: cache.NewReadThrough[[]domain.Section](1, ttl),
		Filters:  cache.NewReadThrough[*domain.FilterOptions](size, ttl),
	}
}

func (rc *ReadCaches) Purge() {
	rc.Sections.Purge()
	rc.Filters.Purge()
}

// purgeOnWrite drops cached lookups after any successful mutating request.
func purgeOnWrite(rc *ReadCaches) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead {
			return
		}
		if c.Writer.Status() < http.StatusBadRequest {
			rc.Purge()
		}
	}
}
