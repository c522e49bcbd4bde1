package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/VitaminP8/blogql/internal/config"
	"github.com/VitaminP8/blogql/internal/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig(storage string) *config.Config {
	return &config.Config{
		Storage:    storage,
		Addr:       "127.0.0.1:0",
		JWTSecret:  "test_secret_key_for_jwt",
		TokenTTL:   time.Hour,
		BcryptCost: 4,
		LogLevel:   "info",
	}
}

func newTestApp(t *testing.T, cfg *config.Config) *App {
	t.Helper()

	a, err := New(cfg, zap.NewNop(), prometheus.NewRegistry())
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return a
}

type gqlResponse struct {
	Data   json.RawMessage
	Errors []struct{ Message string }
}

// query шлет GraphQL-запрос на /query; token может быть пустым
func query(t *testing.T, h http.Handler, token, q string, out interface{}) {
	t.Helper()

	body, err := json.Marshal(map[string]interface{}{"query": q})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/query", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp gqlResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Empty(t, resp.Errors)
	require.NoError(t, json.Unmarshal(resp.Data, out))
}

func runBlogFlow(t *testing.T, h http.Handler) {
	var signUp struct {
		SignUp struct {
			UserErrors []struct{ Message string }
			Token      *string
		}
	}
	query(t, h, "", `mutation { signUp(credentials: {email: "e2e@example.com", password: "password1"}, name: "E2E", bio: "bio") { userErrors { message } token } }`, &signUp)
	require.Empty(t, signUp.SignUp.UserErrors)
	require.NotNil(t, signUp.SignUp.Token)
	token := *signUp.SignUp.Token

	type payload struct {
		UserErrors []struct{ Message string }
		Post       *struct {
			ID        string
			Published bool
		}
	}

	// без токена мутация отклоняется
	var anon struct{ PostCreate payload }
	query(t, h, "", `mutation { postCreate(title: "t", content: "c") { userErrors { message } post { id } } }`, &anon)
	require.Len(t, anon.PostCreate.UserErrors, 1)
	assert.Equal(t, "Forbidden access (unauthenticated)", anon.PostCreate.UserErrors[0].Message)

	// испорченный токен = аноним
	query(t, h, token+"x", `mutation { postCreate(title: "t", content: "c") { userErrors { message } post { id } } }`, &anon)
	require.Len(t, anon.PostCreate.UserErrors, 1)

	var created struct{ PostCreate payload }
	query(t, h, token, `mutation { postCreate(title: "Hello", content: "World") { userErrors { message } post { id published } } }`, &created)
	require.Empty(t, created.PostCreate.UserErrors)
	require.NotNil(t, created.PostCreate.Post)
	postID := created.PostCreate.Post.ID

	var published struct{ PostPublish payload }
	query(t, h, token, `mutation { postPublish(postId: "`+postID+`") { userErrors { message } post { id published } } }`, &published)
	require.NotNil(t, published.PostPublish.Post)
	assert.True(t, published.PostPublish.Post.Published)

	var feed struct {
		Posts []struct {
			ID   string
			User *struct{ Name string }
		}
	}
	query(t, h, "", `{ posts { id user { name } } }`, &feed)
	require.Len(t, feed.Posts, 1)
	assert.Equal(t, postID, feed.Posts[0].ID)
	require.NotNil(t, feed.Posts[0].User)
	assert.Equal(t, "E2E", feed.Posts[0].User.Name)

	var unpublished struct{ PostUnpublish payload }
	query(t, h, token, `mutation { postUnpublish(postId: "`+postID+`") { userErrors { message } post { id published } } }`, &unpublished)
	require.NotNil(t, unpublished.PostUnpublish.Post)
	assert.False(t, unpublished.PostUnpublish.Post.Published)

	query(t, h, "", `{ posts { id } }`, &feed)
	assert.Empty(t, feed.Posts)

	var me struct{ Me *struct{ Email string } }
	query(t, h, token, `{ me { email } }`, &me)
	require.NotNil(t, me.Me)
	assert.Equal(t, "e2e@example.com", me.Me.Email)
}

func TestApp_MemoryStorage(t *testing.T) {
	a := newTestApp(t, testConfig(config.StorageMemory))
	runBlogFlow(t, a.Handler())
}

func TestApp_SQLiteStorage(t *testing.T) {
	cfg := testConfig(config.StorageSQLite)
	cfg.SQLitePath = filepath.Join(t.TempDir(), "blogql.db")

	a := newTestApp(t, cfg)
	runBlogFlow(t, a.Handler())
}

func TestApp_InvalidConfig(t *testing.T) {
	cfg := testConfig(config.StorageMemory)
	cfg.BcryptCost = 100

	_, err := New(cfg, zap.NewNop(), prometheus.NewRegistry())
	assert.Error(t, err)
}

func TestRouter_ServiceEndpoints(t *testing.T) {
	a := newTestApp(t, testConfig(config.StorageMemory))
	h := a.Handler()

	t.Run("Health check", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ok", rec.Body.String())
		assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
	})

	t.Run("Playground", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "GraphQL Playground")
	})

	t.Run("Metrics", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "blogql_http_requests_total")
	})
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	a := newTestApp(t, testConfig(config.StorageMemory))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
