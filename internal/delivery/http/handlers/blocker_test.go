package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentum-hq/momentum-api/internal/domain"
)

func bindFilterQuery(t *testing.T, rawQuery string) (blockerFilterQuery, error) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	registerValidators()

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/api/blockers?"+rawQuery, nil)

	var q blockerFilterQuery
	err := c.ShouldBindQuery(&q)
	return q, err
}

func TestBlockerFilterQuery(t *testing.T) {
	t.Run("all filters reach the domain filter", func(t *testing.T) {
		q, err := bindFilterQuery(t, "category=Technical&severity=High&status=Open&fromDate=2025-06-08T00:00:00Z&limit=25&skip=5")
		require.NoError(t, err)

		f := q.toFilter()
		assert.Equal(t, domain.CategoryTechnical, f.Category)
		assert.Equal(t, domain.SeverityHigh, f.Severity)
		assert.Equal(t, domain.StatusOpen, f.Status)
		assert.Equal(t, time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC), f.FromDate.UTC())
		assert.Equal(t, 25, f.Limit)
		assert.Equal(t, 5, f.Skip)
	})

	t.Run("fromDate omitted stays zero", func(t *testing.T) {
		q, err := bindFilterQuery(t, "status=Open")
		require.NoError(t, err)

		assert.True(t, q.toFilter().FromDate.IsZero())
	})

	t.Run("malformed fromDate rejected", func(t *testing.T) {
		_, err := bindFilterQuery(t, "fromDate=last-week")
		assert.Error(t, err)
	})

	t.Run("unknown category rejected", func(t *testing.T) {
		_, err := bindFilterQuery(t, "category=Weather")
		assert.Error(t, err)
	})
}
