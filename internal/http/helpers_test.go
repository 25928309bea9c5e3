package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func paginationContext(query string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("GET", "/?"+query, nil)
	return c, w
}

func TestParsePagination_Defaults(t *testing.T) {
	c, _ := paginationContext("")

	limit, offset, ok := parsePagination(c)

	assert.True(t, ok)
	assert.Equal(t, defaultPageLimit, limit)
	assert.Equal(t, 0, offset)
}

func TestParsePagination_Valid(t *testing.T) {
	c, _ := paginationContext("limit=10&offset=20")

	limit, offset, ok := parsePagination(c)

	assert.True(t, ok)
	assert.Equal(t, 10, limit)
	assert.Equal(t, 20, offset)
}

func TestParsePagination_CapsLimit(t *testing.T) {
	c, _ := paginationContext("limit=100000")

	limit, _, ok := parsePagination(c)

	assert.True(t, ok)
	assert.Equal(t, maxPageLimit, limit)
}

func TestParsePagination_Invalid(t *testing.T) {
	for _, query := range []string{"limit=abc", "limit=0", "offset=-1", "offset=x"} {
		t.Run(query, func(t *testing.T) {
			c, w := paginationContext(query)

			_, _, ok := parsePagination(c)

			assert.False(t, ok)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestNewPaginatedResponse(t *testing.T) {
	resp := newPaginatedResponse([]int{1, 2}, 5, 2, 0)
	assert.True(t, resp.HasMore)
	assert.Equal(t, 3, resp.TotalPages)

	resp = newPaginatedResponse([]int{5}, 5, 2, 4)
	assert.False(t, resp.HasMore)
}
