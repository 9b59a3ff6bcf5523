package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/folio/folio/internal/sessions"
)

// fakeToken implements Token
type fakeToken struct {
	data map[string]interface{}
}

func (t *fakeToken) Claims(v interface{}) error {
	if mm, ok := v.(*map[string]interface{}); ok {
		*mm = t.data
		return nil
	}
	return fmt.Errorf("unsupported claims type")
}

// fakeVerifier accepts exactly one token.
type fakeVerifier struct {
	good   string
	claims map[string]interface{}
}

func (f *fakeVerifier) Verify(ctx context.Context, raw string) (Token, error) {
	if raw == f.good {
		return &fakeToken{data: f.claims}, nil
	}
	return nil, fmt.Errorf("invalid token")
}

func adminVerifier() *fakeVerifier {
	return &fakeVerifier{good: "goodtoken", claims: map[string]interface{}{"sub": "user1", "email": "test@example.com", "role": "admin"}}
}

func serve(g *gin.Engine, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rw := httptest.NewRecorder()
	g.ServeHTTP(rw, req)
	return rw
}

func TestAuthMiddleware_NoHeader(t *testing.T) {
	g := gin.New()
	g.GET("/", AuthMiddleware(adminVerifier()), func(c *gin.Context) { c.Status(http.StatusOK) })

	rw := serve(g, "")
	require.Equal(t, http.StatusUnauthorized, rw.Code)
	require.JSONEq(t, `{"code":"UNAUTHORIZED","message":"Not authenticated"}`, rw.Body.String())
}

func TestAuthMiddleware_InvalidHeader(t *testing.T) {
	g := gin.New()
	g.GET("/", AuthMiddleware(adminVerifier()), func(c *gin.Context) { c.Status(http.StatusOK) })

	require.Equal(t, http.StatusUnauthorized, serve(g, "BadHeader").Code)
	require.Equal(t, http.StatusUnauthorized, serve(g, "Basic abc").Code)
	require.Equal(t, http.StatusUnauthorized, serve(g, "Bearer wrong").Code)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	g := gin.New()
	g.GET("/", AuthMiddleware(adminVerifier()), func(c *gin.Context) {
		claims, ok := c.Get(ClaimsKey)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"claims": claims, "user_id": c.GetString(UserIDKey), "role": c.GetString(RoleKey), "token": c.GetString(TokenKey)})
	})

	rw := serve(g, "Bearer goodtoken")
	require.Equal(t, http.StatusOK, rw.Code)
	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(rw.Body.Bytes(), &got))
	require.Contains(t, got, "claims")
	require.Equal(t, "user1", got["user_id"])
	require.Equal(t, "admin", got["role"])
	require.Equal(t, "goodtoken", got["token"])
}

func TestAuthMiddleware_RejectsMissingSubject(t *testing.T) {
	g := gin.New()
	ver := &fakeVerifier{good: "nosub", claims: map[string]interface{}{"email": "x@example.com"}}
	g.GET("/", AuthMiddleware(ver), func(c *gin.Context) { c.Status(http.StatusOK) })
	require.Equal(t, http.StatusUnauthorized, serve(g, "Bearer nosub").Code)
}

func TestAuthMiddleware_RejectsBlacklistedToken(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()
	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	defer client.Close()
	bl := sessions.NewRedisBlacklist(client)

	require.NoError(t, bl.Revoke(context.Background(), "goodtoken", 5*time.Second))

	g := gin.New()
	g.GET("/", AuthMiddleware(adminVerifier(), WithRevocations(bl)), func(c *gin.Context) { c.Status(http.StatusOK) })

	rw := serve(g, "Bearer goodtoken")
	require.Equal(t, http.StatusUnauthorized, rw.Code)
	require.Contains(t, rw.Body.String(), "revoked")
}

func TestAuthMiddleware_RejectsWhenBlacklistUnreachable(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: m.Addr(), MaxRetries: -1})
	defer client.Close()
	m.Close()

	g := gin.New()
	g.GET("/", AuthMiddleware(adminVerifier(), WithRevocations(sessions.NewRedisBlacklist(client))), func(c *gin.Context) { c.Status(http.StatusOK) })

	rw := serve(g, "Bearer goodtoken")
	require.Equal(t, http.StatusServiceUnavailable, rw.Code)
	require.JSONEq(t, `{"code":"UNAVAILABLE","message":"Token revocation check unavailable"}`, rw.Body.String())
}

func TestChainVerifier(t *testing.T) {
	first := &fakeVerifier{good: "a", claims: map[string]interface{}{"sub": "from-a"}}
	second := &fakeVerifier{good: "b", claims: map[string]interface{}{"sub": "from-b"}}
	ver := ChainVerifier(first, second)

	tok, err := ver.Verify(context.Background(), "b")
	require.NoError(t, err)
	var claims map[string]interface{}
	require.NoError(t, tok.Claims(&claims))
	require.Equal(t, "from-b", claims["sub"])

	_, err = ver.Verify(context.Background(), "c")
	require.Error(t, err)
	_, err = ChainVerifier().Verify(context.Background(), "a")
	require.Error(t, err)
}

func TestRequireRole(t *testing.T) {
	g := gin.New()
	g.GET("/", func(c *gin.Context) {
		c.Set(RoleKey, c.Query("role"))
		c.Next()
	}, RequireAdmin(), func(c *gin.Context) { c.Status(http.StatusOK) })

	rw := httptest.NewRecorder()
	g.ServeHTTP(rw, httptest.NewRequest(http.MethodGet, "/?role=Admin", nil))
	require.Equal(t, http.StatusOK, rw.Code)

	rw = httptest.NewRecorder()
	g.ServeHTTP(rw, httptest.NewRequest(http.MethodGet, "/?role=viewer", nil))
	require.Equal(t, http.StatusForbidden, rw.Code)

	rw = httptest.NewRecorder()
	g.ServeHTTP(rw, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusForbidden, rw.Code)
}
