//go:build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/revisemaster-backend/internal/adapter/postgres"
	tokenrepo "github.com/heartmarshall/revisemaster-backend/internal/adapter/postgres/token"
	topicrepo "github.com/heartmarshall/revisemaster-backend/internal/adapter/postgres/topic"
	userrepo "github.com/heartmarshall/revisemaster-backend/internal/adapter/postgres/user"
	"github.com/heartmarshall/revisemaster-backend/internal/adapter/postgres/testhelper"
	authpkg "github.com/heartmarshall/revisemaster-backend/internal/auth"
	"github.com/heartmarshall/revisemaster-backend/internal/config"
	authsvc "github.com/heartmarshall/revisemaster-backend/internal/service/auth"
	"github.com/heartmarshall/revisemaster-backend/internal/service/study"
	topicsvc "github.com/heartmarshall/revisemaster-backend/internal/service/topic"
	"github.com/heartmarshall/revisemaster-backend/internal/transport/middleware"
	"github.com/heartmarshall/revisemaster-backend/internal/transport/rest"
	"github.com/jackc/pgx/v5/pgxpool"
)

// testServer wraps the full-stack HTTP server for E2E tests.
type testServer struct {
	URL    string
	Client *http.Client
	Pool   *pgxpool.Pool
	jwt    *authpkg.JWTManager
}

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// setupTestServer bootstraps the full application stack backed by
// a real PostgreSQL container (shared via testhelper).
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)

	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))
	txm := postgres.NewTxManager(pool)

	users := userrepo.New(pool)
	tokens := tokenrepo.New(pool)
	topics := topicrepo.New(pool)

	jwtSecret := "test-secret-at-least-32-chars-long!!"
	jwtMgr := authpkg.NewJWTManager(jwtSecret, "test-issuer", 15*time.Minute)

	authService := authsvc.NewService(logger, users, tokens, txm, jwtMgr, config.AuthConfig{
		JWTSecret:        jwtSecret,
		JWTIssuer:        "test-issuer",
		AccessTokenTTL:   15 * time.Minute,
		RefreshTokenTTL:  720 * time.Hour,
		PasswordHashCost: 4,
	})

	topicService := topicsvc.NewService(logger, topics, txm, config.TopicsConfig{
		MaxTopicsPerUser: 1000,
		MaxNameLength:    200,
		MaxNotesLength:   20000,
	})

	studyService := study.NewService(logger, topics)

	router := rest.NewRouter(
		rest.NewAuthHandler(authService, logger),
		rest.NewTopicHandler(topicService, logger),
		rest.NewStudyHandler(studyService, logger),
		rest.NewHealthHandler(pool, "test-version"),
	)

	handler := middleware.Chain(
		middleware.RequestID,
		middleware.Recovery(logger),
		middleware.CORS(config.CORSConfig{
			AllowedOrigins:   "*",
			AllowedMethods:   "GET,POST,PUT,DELETE,OPTIONS",
			AllowedHeaders:   "Authorization,Content-Type",
			AllowCredentials: true,
			MaxAge:           86400,
		}),
		middleware.Auth(authService),
	)(router)

	srv := httptest.NewServer(handler)
	t.Cleanup(func() { srv.Close() })

	return &testServer{
		URL:    srv.URL,
		Client: srv.Client(),
		Pool:   pool,
		jwt:    jwtMgr,
	}
}

// doJSON sends a request with an optional JSON body and bearer token and
// returns the status code plus the decoded response body.
func (ts *testServer) doJSON(t *testing.T, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		require.NoError(t, err, "marshal request body")
		reader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, ts.URL+path, reader)
	require.NoError(t, err, "create request")
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	require.NoError(t, err, "do request")
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return resp.StatusCode, nil
	}

	// Middleware rejections are plain text, handler responses are JSON.
	var result map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&result)
	return resp.StatusCode, result
}

// registerUser registers a fresh account through the API and returns the
// decoded auth response (tokens plus user object).
func registerUser(t *testing.T, ts *testServer, email string) map[string]any {
	t.Helper()

	status, result := ts.doJSON(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"email":    email,
		"name":     "E2E User",
		"password": "correct horse battery",
	})
	require.Equal(t, http.StatusCreated, status, "register should succeed: %v", result)
	return result
}

func accessToken(t *testing.T, result map[string]any) string {
	t.Helper()
	token, ok := result["accessToken"].(string)
	require.True(t, ok, "expected accessToken in response")
	require.NotEmpty(t, token)
	return token
}

func refreshToken(t *testing.T, result map[string]any) string {
	t.Helper()
	token, ok := result["refreshToken"].(string)
	require.True(t, ok, "expected refreshToken in response")
	require.NotEmpty(t, token)
	return token
}

// createTopic creates a topic through the API and returns its decoded body.
func createTopic(t *testing.T, ts *testServer, token, name string, parentID *string) map[string]any {
	t.Helper()

	body := map[string]any{"name": name}
	if parentID != nil {
		body["parentId"] = *parentID
	}

	status, result := ts.doJSON(t, http.MethodPost, "/api/topics", token, body)
	require.Equal(t, http.StatusCreated, status, "create topic should succeed: %v", result)
	return result
}

func topicID(t *testing.T, topic map[string]any) string {
	t.Helper()
	id, ok := topic["id"].(string)
	require.True(t, ok, "expected topic id")
	return id
}
