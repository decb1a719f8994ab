package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"motoshop-be/internal/auth"
	"motoshop-be/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func init() {
	gin.SetMode(gin.TestMode)
}

func token(t *testing.T, caller auth.Caller, ttl time.Duration) string {
	t.Helper()
	tok, err := auth.IssueToken(caller, secret, ttl)
	require.NoError(t, err)
	return tok
}

func adminRouter(seen *auth.Caller) *gin.Engine {
	r := gin.New()
	r.GET("/admin", RequireAdmin(secret), func(c *gin.Context) {
		if caller, ok := auth.CallerFrom(c.Request.Context()); ok {
			*seen = caller
		}
		c.String(http.StatusOK, logger.CallerIDFrom(c.Request.Context()))
	})
	return r
}

func TestRequireAdmin(t *testing.T) {
	t.Run("MissingToken", func(t *testing.T) {
		var seen auth.Caller
		w := httptest.NewRecorder()
		adminRouter(&seen).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "authentication required")
		assert.Empty(t, seen.ID)
	})

	t.Run("InvalidToken", func(t *testing.T) {
		var seen auth.Caller
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer invalid-token")
		w := httptest.NewRecorder()
		adminRouter(&seen).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "invalid token")
	})

	t.Run("ExpiredToken", func(t *testing.T) {
		var seen auth.Caller
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token(t, auth.Caller{ID: "a-1", Role: auth.RoleAdmin}, -time.Hour))
		w := httptest.NewRecorder()
		adminRouter(&seen).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("EmptySecretFailsClosed", func(t *testing.T) {
		r := gin.New()
		r.GET("/admin", RequireAdmin(nil), func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token(t, auth.Caller{ID: "a-1", Role: auth.RoleAdmin}, time.Hour))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("NotAdmin", func(t *testing.T) {
		var seen auth.Caller
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token(t, auth.Caller{ID: "u-1", Role: "user"}, time.Hour))
		w := httptest.NewRecorder()
		adminRouter(&seen).ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("AdminViaCookie", func(t *testing.T) {
		var seen auth.Caller
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.AddCookie(&http.Cookie{Name: auth.AccessTokenCookie, Value: token(t, auth.Caller{ID: "a-1", Role: auth.RoleAdmin}, time.Hour)})
		w := httptest.NewRecorder()
		adminRouter(&seen).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "a-1", w.Body.String())
		assert.Equal(t, "a-1", seen.ID)
	})
}

func TestRateLimiter(t *testing.T) {
	tier := Tier{Name: "test", Limit: 0, Burst: 2}

	t.Run("BurstThenReject", func(t *testing.T) {
		l := NewRateLimiter(time.Minute)
		r := gin.New()
		r.GET("/", l.Limit(tier), func(c *gin.Context) { c.Status(http.StatusOK) })

		codes := make([]int, 0, 3)
		for i := 0; i < 3; i++ {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = "10.0.0.1:1234"
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			codes = append(codes, w.Code)
		}
		assert.Equal(t, []int{200, 200, 429}, codes)
	})

	t.Run("SeparateIdentities", func(t *testing.T) {
		l := NewRateLimiter(time.Minute)
		r := gin.New()
		r.GET("/", l.Limit(Tier{Name: "one", Limit: 0, Burst: 1}), func(c *gin.Context) { c.Status(http.StatusOK) })

		for _, device := range []string{"phone", "laptop"} {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("X-Device-ID", device)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code, device)
		}
	})

	t.Run("Cleanup", func(t *testing.T) {
		l := NewRateLimiter(time.Minute)
		now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		l.now = func() time.Time { return now }

		l.get("ip:1", tier)
		now = now.Add(30 * time.Second)
		l.get("ip:2", tier)
		now = now.Add(45 * time.Second)

		assert.Equal(t, 1, l.Cleanup())
		assert.Len(t, l.visitors, 1)
		assert.Contains(t, l.visitors, "ip:2")
	})
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(Recovery())
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal server error")
}
