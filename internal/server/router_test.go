package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hadithapi/internal/config"
	"hadithapi/internal/repository"
	"hadithapi/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	ErrorCode string          `json:"error_code"`
	Data      json.RawMessage `json:"data"`
	Meta      map[string]any  `json:"meta"`
	Date      string          `json:"date"`
}

type testServer struct {
	t  *testing.T
	db *gorm.DB
	r  *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)
	testutil.Seed(t, db)

	cfg := &config.Config{
		Auth: config.Auth{
			JWTSecret:    "test-secret",
			JWTAccessTTL: 30 * time.Minute,
			BcryptCost:   bcrypt.MinCost,
		},
		CORS:  config.CORS{AllowedOrigins: []string{"*"}},
		Daily: config.Daily{Location: time.UTC},
	}
	return &testServer{t: t, db: db, r: NewRouter(cfg, db, slog.New(slog.DiscardHandler))}
}

func (s *testServer) do(method, path, token string, body any) (int, envelope) {
	s.t.Helper()

	var rdr io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		rdr = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.r.ServeHTTP(w, req)

	var env envelope
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func (s *testServer) signup(email string) string {
	s.t.Helper()
	code, env := s.do(http.MethodPost, "/api/v1/auth/signup", "", gin.H{
		"email":    email,
		"password": testutil.Password,
	})
	require.Equal(s.t, http.StatusCreated, code)

	var tok struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(s.t, json.Unmarshal(env.Data, &tok))
	require.NotEmpty(s.t, tok.AccessToken)
	assert.Equal(s.t, "bearer", tok.TokenType)
	return tok.AccessToken
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	w := httptest.NewRecorder()
	s.r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy","database":"connected"}`, w.Body.String())

	sqlDB, err := s.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	w = httptest.NewRecorder()
	s.r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestDailyIsStable(t *testing.T) {
	s := newTestServer(t)

	code, first := s.do(http.MethodGet, "/api/v1/hadiths/daily?date_param=2024-01-15", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "2024-01-15", first.Date)

	var h struct {
		ID    string `json:"id"`
		Grade string `json:"grade"`
	}
	require.NoError(t, json.Unmarshal(first.Data, &h))
	assert.Equal(t, "riyad-1", h.ID)
	assert.Equal(t, "Sahih", h.Grade)

	for i := 0; i < 3; i++ {
		_, again := s.do(http.MethodGet, "/api/v1/hadiths/daily?date_param=2024-01-15", "", nil)
		assert.JSONEq(t, string(first.Data), string(again.Data))
	}

	code, env := s.do(http.MethodGet, "/api/v1/hadiths/daily?date_param=15-01-2024", "", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "INVALID_DATE", env.ErrorCode)
}

func TestListValidationAndNotFound(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(http.MethodGet, "/api/v1/hadiths?page_size=101", "", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.False(t, env.Success)

	code, _ = s.do(http.MethodGet, "/api/v1/hadiths?page=0", "", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, code)

	code, env = s.do(http.MethodGet, "/api/v1/hadiths?page=92233720368547760&page_size=100", "", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, "VALIDATION_ERROR", env.ErrorCode)
	assert.Empty(t, env.Data)

	code, _ = s.do(http.MethodGet, "/api/v1/hadiths?grade=Strong", "", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, code)

	code, env = s.do(http.MethodGet, "/api/v1/hadiths/collection/does-not-exist", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Contains(t, env.Message, "not found")

	code, env = s.do(http.MethodGet, "/api/v1/hadiths?page=9", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `[]`, string(env.Data))
	assert.EqualValues(t, 4, env.Meta["total_count"])
	assert.Equal(t, false, env.Meta["has_next"])
}

func TestListFilters(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(http.MethodGet, "/api/v1/hadiths?tags=sincerity&tags=heart", "", nil)
	require.Equal(t, http.StatusOK, code)
	var rows []struct {
		ID   string   `json:"id"`
		Tags []string `json:"tags"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "riyad-2", rows[0].ID)

	_, env = s.do(http.MethodGet, "/api/v1/hadiths?tags=sincerity,heart", "", nil)
	require.NoError(t, json.Unmarshal(env.Data, &rows))
	assert.Len(t, rows, 1)

	_, env = s.do(http.MethodGet, "/api/v1/hadiths/collection/riyad?grade=Hasan", "", nil)
	require.NoError(t, json.Unmarshal(env.Data, &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "riyad-2", rows[0].ID)
}

func TestAuthFlow(t *testing.T) {
	s := newTestServer(t)
	token := s.signup("reader@example.com")

	code, env := s.do(http.MethodPost, "/api/v1/auth/signup", "", gin.H{
		"email":    "Reader@example.com",
		"password": testutil.Password,
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "EMAIL_EXISTS", env.ErrorCode)

	code, _ = s.do(http.MethodPost, "/api/v1/auth/signup", "", gin.H{"email": "short@example.com", "password": "1234567"})
	assert.Equal(t, http.StatusUnprocessableEntity, code)

	code, _ = s.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": "reader@example.com", "password": "wrongpass1"})
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = s.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": "reader@example.com", "password": testutil.Password})
	assert.Equal(t, http.StatusOK, code)

	code, env = s.do(http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, code)
	var me struct {
		Email string `json:"email"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &me))
	assert.Equal(t, "reader@example.com", me.Email)

	code, _ = s.do(http.MethodGet, "/api/v1/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = s.do(http.MethodGet, "/api/v1/auth/me", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestInactiveUserIsRejected(t *testing.T) {
	s := newTestServer(t)
	token := s.signup("gone@example.com")

	require.NoError(t, s.db.Exec("UPDATE users SET is_active = ? WHERE email = ?", false, "gone@example.com").Error)

	code, env := s.do(http.MethodGet, "/api/v1/favorites", token, nil)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "INACTIVE_USER", env.ErrorCode)

	code, _ = s.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": "gone@example.com", "password": testutil.Password})
	assert.Equal(t, http.StatusForbidden, code)
}

func TestFavoriteToggleFlow(t *testing.T) {
	s := newTestServer(t)
	token := s.signup("fav@example.com")
	favorites := repository.NewFavoriteRepository(s.db)

	var userID int64
	require.NoError(t, s.db.Raw("SELECT id FROM users WHERE email = ?", "fav@example.com").Scan(&userID).Error)

	wantMessages := []string{"Hadith added to favorites", "Hadith removed from favorites", "Hadith added to favorites"}
	wantRows := []int64{1, 0, 1}
	for i := range wantRows {
		code, env := s.do(http.MethodPost, "/api/v1/favorites/hadith/riyad-1", token, nil)
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, wantMessages[i], env.Message)

		n, err := favorites.CountPair(t.Context(), userID, "riyad-1")
		require.NoError(t, err)
		assert.Equal(t, wantRows[i], n)
	}

	_, env := s.do(http.MethodGet, "/api/v1/hadiths/riyad-1", token, nil)
	var h struct {
		IsFavorite bool `json:"is_favorite"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &h))
	assert.True(t, h.IsFavorite)

	_, env = s.do(http.MethodGet, "/api/v1/hadiths/riyad-1", "", nil)
	require.NoError(t, json.Unmarshal(env.Data, &h))
	assert.False(t, h.IsFavorite)

	code, env := s.do(http.MethodPost, "/api/v1/favorites", token, gin.H{"hadith_id": "riyad-1"})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "ALREADY_FAVORITE", env.ErrorCode)

	code, _ = s.do(http.MethodPost, "/api/v1/favorites/hadith/missing", token, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = s.do(http.MethodPost, "/api/v1/favorites/hadith/riyad-1", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, env = s.do(http.MethodGet, "/api/v1/favorites", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, env.Meta["total_count"])

	code, _ = s.do(http.MethodDelete, "/api/v1/favorites/hadith/riyad-1", token, nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = s.do(http.MethodDelete, "/api/v1/favorites/hadith/riyad-1", token, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestRandomExcludeFavorites(t *testing.T) {
	s := newTestServer(t)
	token := s.signup("rand@example.com")

	for _, id := range []string{"riyad-1", "riyad-2"} {
		code, _ := s.do(http.MethodPost, "/api/v1/favorites/hadith/"+id, token, nil)
		require.Equal(t, http.StatusOK, code)
	}

	for i := 0; i < 10; i++ {
		code, env := s.do(http.MethodGet, "/api/v1/hadiths/random?collection_id=riyad&exclude_favorites=true", token, nil)
		require.Equal(t, http.StatusOK, code)
		var h struct {
			ID string `json:"id"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &h))
		assert.Equal(t, "riyad-3", h.ID)
	}

	code, _ := s.do(http.MethodGet, "/api/v1/hadiths/random?collection_id=nothing", "", nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = s.do(http.MethodGet, "/api/v1/hadiths/random?exclude_favorites=maybe", token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
}

func TestCollections(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(http.MethodGet, "/api/v1/collections", "", nil)
	require.Equal(t, http.StatusOK, code)
	var cols []struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &cols))
	require.Len(t, cols, 2)
	assert.Equal(t, "riyad", cols[0].ID)

	code, _ = s.do(http.MethodGet, "/api/v1/collections/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, env = s.do(http.MethodGet, "/api/v1/collections/riyad/chapters", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 2, env.Meta["total_count"])

	code, _ = s.do(http.MethodGet, "/api/v1/collections/nope/chapters", "", nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = s.do(http.MethodGet, "/api/v1/collections/bukhari/chapters/riyad-1", "", nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = s.do(http.MethodGet, "/api/v1/hadiths/chapter/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
}
