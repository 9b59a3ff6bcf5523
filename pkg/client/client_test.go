package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio/folio/internal/models"
	"github.com/folio/folio/internal/testserver"
)

func TestClientAgainstBackend(t *testing.T) {
	srv := testserver.New(t)
	var toLogin int32
	c := New(srv.URL+"/", WithNavigator(NavigatorFunc(func() { atomic.AddInt32(&toLogin, 1) })))
	ctx := context.Background()

	hero, err := c.Hero.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Your Name", hero.Name)

	_, err = c.Hero.Update(ctx, map[string]string{"name": "Ada"})
	require.True(t, IsKind(err, KindUnauthorized))
	assert.Equal(t, int32(1), atomic.LoadInt32(&toLogin))

	_, err = c.Login(ctx, testserver.AdminEmail, testserver.AdminPassword)
	require.NoError(t, err)
	require.NotEmpty(t, c.Tokens().Get())

	me, err := c.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, testserver.AdminEmail, me.Email)

	hero, err = c.Hero.Update(ctx, map[string]string{"name": "Ada"})
	require.NoError(t, err)
	assert.Equal(t, "Ada", hero.Name)
	assert.Equal(t, "Your Job Title", hero.JobTitle)

	p, err := c.Projects.Create(ctx, map[string]interface{}{
		"title": "Folio", "category": "web", "description": "d", "long_description": "ld",
	})
	require.NoError(t, err)
	require.NotEmpty(t, p.ID)
	_, err = c.Projects.Update(ctx, p.ID, map[string]bool{"featured": true})
	require.NoError(t, err)
	list, err := c.Projects.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Featured)

	_, err = c.Projects.Update(ctx, "nope", map[string]bool{"featured": true})
	require.True(t, IsKind(err, KindNotFound))

	_, err = c.Projects.Create(ctx, map[string]string{"title": "no category"})
	require.True(t, IsKind(err, KindValidation))
	var ce *Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "INVALID_ARGUMENT", ce.Code)
	assert.Contains(t, ce.Message, "category")

	require.NoError(t, c.Projects.Delete(ctx, p.ID))

	url, err := c.Upload(ctx, "doc.pdf", strings.NewReader("%PDF-1.4\n1 0 obj\n"), "blog")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/api/files/blog/"))
	files, err := c.ListFiles(ctx, "blog")
	require.NoError(t, err)
	require.Len(t, files, 1)
	require.NoError(t, c.DeleteFile(ctx, files[0].Filename, "blog"))

	_, err = c.SubmitContact(ctx, models.ContactRequest{Name: "V", Email: "v@example.com", Subject: "s", Message: "m"})
	require.NoError(t, err)
	msgs, err := c.ContactMessages(ctx)
	require.NoError(t, err)
	require.Len(t, msgs, 1)

	require.NoError(t, c.Logout(ctx))
	assert.Empty(t, c.Tokens().Get())
	assert.Equal(t, int32(1), atomic.LoadInt32(&toLogin), "logout is not a 401 redirect")
}

func TestClientSendsBearerAndClearsOn401(t *testing.T) {
	seen := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen <- r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"detail":"Could not validate credentials"}`)
	}))
	defer srv.Close()

	store := NewMemoryTokenStore()
	require.NoError(t, store.Set("stale"))
	var cleared []string
	store.Subscribe(func(tok string) { cleared = append(cleared, tok) })
	navigated := false
	c := New(srv.URL, WithTokenStore(store), WithNavigator(NavigatorFunc(func() { navigated = true })))

	_, err := c.About.Get(context.Background())
	require.Error(t, err)
	var ce *Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, KindUnauthorized, ce.Kind)
	assert.Equal(t, "Could not validate credentials", ce.Message)
	assert.Equal(t, "Bearer stale", <-seen)
	assert.Empty(t, store.Get())
	assert.Equal(t, []string{""}, cleared)
	assert.True(t, navigated)
}

func TestClientErrorKinds(t *testing.T) {
	var status int32 = http.StatusInternalServerError
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(int(atomic.LoadInt32(&status)))
	}))
	defer srv.Close()
	c := New(srv.URL)
	ctx := context.Background()

	_, err := c.Blog.List(ctx)
	require.True(t, IsKind(err, KindServer))
	atomic.StoreInt32(&status, http.StatusUnprocessableEntity)
	_, err = c.Blog.List(ctx)
	require.True(t, IsKind(err, KindValidation))

	_, err = c.Blog.Update(ctx, "", nil)
	require.True(t, IsKind(err, KindValidation))

	dead := New("http://127.0.0.1:1")
	_, err = dead.Hero.Get(ctx)
	require.True(t, IsKind(err, KindNetwork))
}

func TestSubmitContactValidatesLocally(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()

	_, err := New(srv.URL).SubmitContact(context.Background(), models.ContactRequest{Name: "x", Email: " "})
	require.True(t, IsKind(err, KindValidation))
	assert.Contains(t, err.Error(), "email, subject, message")
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestFileTokenStorePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "folio", "token.json")
	s, err := NewFileTokenStore(path)
	require.NoError(t, err)
	require.Empty(t, s.Get())
	require.NoError(t, s.Set("abc"))

	reopened, err := NewFileTokenStore(path)
	require.NoError(t, err)
	assert.Equal(t, "abc", reopened.Get())

	var raw map[string]string
	b := mustRead(t, path)
	require.NoError(t, json.Unmarshal(b, &raw))
	assert.Equal(t, "abc", raw[TokenKey])

	require.NoError(t, reopened.Clear())
	again, err := NewFileTokenStore(path)
	require.NoError(t, err)
	assert.Empty(t, again.Get())
}

func TestSubscriptionCancel(t *testing.T) {
	s := NewMemoryTokenStore()
	n := 0
	cancel := s.Subscribe(func(string) { n++ })
	require.NoError(t, s.Set("a"))
	cancel()
	require.NoError(t, s.Set("b"))
	assert.Equal(t, 1, n)
}

func mustRead(t *testing.T, path string) []byte {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return b
}
