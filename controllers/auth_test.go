package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrentUserID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newContext := func() (*gin.Context, *httptest.ResponseRecorder) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		return c, w
	}

	t.Run("valid claim", func(t *testing.T) {
		c, _ := newContext()
		want := uuid.New()
		c.Set("userId", want.String())

		got, ok := currentUserID(c)
		require.True(t, ok)
		assert.Equal(t, want, got)
	})

	t.Run("missing claim", func(t *testing.T) {
		c, w := newContext()

		_, ok := currentUserID(c)
		assert.False(t, ok)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("non-string claim", func(t *testing.T) {
		c, w := newContext()
		c.Set("userId", 12345)

		assert.NotPanics(t, func() {
			_, ok := currentUserID(c)
			assert.False(t, ok)
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed uuid", func(t *testing.T) {
		c, w := newContext()
		c.Set("userId", "not-a-uuid")

		_, ok := currentUserID(c)
		assert.False(t, ok)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
