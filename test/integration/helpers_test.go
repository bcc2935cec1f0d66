package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rhyn0/anime-rest-api/internal/app"
	"github.com/rhyn0/anime-rest-api/internal/config"
	"github.com/rhyn0/anime-rest-api/internal/database"
	"github.com/rhyn0/anime-rest-api/internal/tools/seed"
)

// seedBcryptCost keeps the suite fast; production cost is configured
// separately.
const seedBcryptCost = 4

type tokenPairBody struct {
	AccessToken      string `json:"accessToken"`
	RefreshToken     string `json:"refreshToken"`
	ExpiresAt        int64  `json:"expiresAt"`
	RefreshExpiresAt int64  `json:"refreshExpiresAt"`
	Version          int    `json:"version"`
}

type detailBody struct {
	Detail string `json:"detail"`
}

// newTestServer boots the full app against an in-memory sqlite database,
// migrated and seeded with the default accounts and shows.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := seed.Apply(db, seedBcryptCost); err != nil {
		t.Fatalf("seed: %v", err)
	}

	cfg := &config.Config{
		Env:           "test",
		HTTPPort:      "0",
		DatabaseURL:   dsn,
		JWTIssuer:     "anime_api",
		JWTAudience:   "anime_api",
		JWTSecret:     "0123456789abcdef0123456789abcdef",
		JWTAccessTTL:  15 * time.Minute,
		JWTRefreshTTL: 336 * time.Hour,
		BcryptCost:    seedBcryptCost,
		LogLevel:      "error",
	}
	a := app.NewWithDB(cfg, db)

	srv := httptest.NewServer(a.Server.Handler)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body any, token string) (*http.Response, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(buf)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	return resp, raw
}

func login(t *testing.T, baseURL, username, password string) tokenPairBody {
	t.Helper()
	resp, raw := doJSON(t, http.MethodPost, baseURL+"/login",
		map[string]string{"username": username, "password": password}, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login %q: status %d body %s", username, resp.StatusCode, raw)
	}
	var pair tokenPairBody
	if err := json.Unmarshal(raw, &pair); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	return pair
}

func detailFrom(t *testing.T, raw []byte) string {
	t.Helper()
	var d detailBody
	if err := json.Unmarshal(raw, &d); err != nil {
		t.Fatalf("decode error body %s: %v", raw, err)
	}
	return d.Detail
}
