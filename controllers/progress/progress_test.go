package progressController_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"courseapi/config"
	"courseapi/identity"
	"courseapi/models"
	"courseapi/progress"
	progressRoutes "courseapi/routers/progressRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testEnv struct {
	app          *fiber.App
	db           *gorm.DB
	identityHits *int
}

// setupEnv builds the progress routes against an identity-service double that
// accepts "good-token" for user-1 and counts every verification call.
func setupEnv(t *testing.T) *testEnv {
	t.Helper()

	hits := 0
	identitySvc := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if r.Header.Get("Authorization") != "Bearer good-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"user-1"}`)
	}))
	t.Cleanup(identitySvc.Close)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.ProgressRecord{}))

	verifier := identity.NewVerifier(&config.Config{IdentityAPIURL: identitySvc.URL})

	app := fiber.New()
	progressRoutes.SetupProgressRoutes(app, verifier, progress.NewStore(db))

	return &testEnv{app: app, db: db, identityHits: &hits}
}

func (e *testEnv) do(t *testing.T, method, body, authHeader string) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, "/progress", reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	parsed := map[string]interface{}{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &parsed))
	}
	return resp, parsed
}

func TestProgressRequiresAuthorizationHeader(t *testing.T) {
	env := setupEnv(t)

	for _, header := range []string{"", "Token abc", "bearer lowercase", "good-token"} {
		resp, _ := env.do(t, http.MethodGet, "", header)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "header %q", header)
	}

	// Malformed headers are rejected before the identity service is called
	assert.Equal(t, 0, *env.identityHits)
}

func TestProgressRejectsBadTokenWithoutStorageAccess(t *testing.T) {
	env := setupEnv(t)

	resp, _ := env.do(t, http.MethodPost, `{"completed_lessons":["lesson-1"]}`, "Bearer bad-token")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var count int64
	env.db.Model(&models.ProgressRecord{}).Count(&count)
	assert.Zero(t, count)
}

func TestGetProgressDefaultsToEmpty(t *testing.T) {
	env := setupEnv(t)

	resp, body := env.do(t, http.MethodGet, "", "Bearer good-token")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	prog := body["progress"].(map[string]interface{})
	assert.Empty(t, prog["completed_lessons"])
	assert.Nil(t, prog["current_lesson"])
}

func TestSaveThenGetRoundTrip(t *testing.T) {
	env := setupEnv(t)

	resp, body := env.do(t, http.MethodPost,
		`{"completed_lessons":["lesson-1","lesson-2"],"current_lesson":"lesson-3"}`,
		"Bearer good-token")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])

	_, body = env.do(t, http.MethodGet, "", "Bearer good-token")
	prog := body["progress"].(map[string]interface{})
	assert.Equal(t, []interface{}{"lesson-1", "lesson-2"}, prog["completed_lessons"])
	assert.Equal(t, "lesson-3", prog["current_lesson"])
}

func TestSaveReplacesWholeSnapshot(t *testing.T) {
	env := setupEnv(t)

	env.do(t, http.MethodPost, `{"completed_lessons":["lesson-1","lesson-2"]}`, "Bearer good-token")
	env.do(t, http.MethodPost, `{"completed_lessons":["lesson-2"]}`, "Bearer good-token")

	_, body := env.do(t, http.MethodGet, "", "Bearer good-token")
	prog := body["progress"].(map[string]interface{})
	assert.Equal(t, []interface{}{"lesson-2"}, prog["completed_lessons"])
}

func TestSaveRejectsNonSequence(t *testing.T) {
	env := setupEnv(t)

	env.do(t, http.MethodPost, `{"completed_lessons":["lesson-1"]}`, "Bearer good-token")

	for _, payload := range []string{
		`{"completed_lessons":"lesson-1"}`,
		`{"completed_lessons":42}`,
		`{"completed_lessons":null}`,
		`{}`,
	} {
		resp, body := env.do(t, http.MethodPost, payload, "Bearer good-token")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "payload %s", payload)
		assert.Contains(t, body["details"].(map[string]interface{}), "completed_lessons")
	}

	// The stored record survived every rejected save
	_, body := env.do(t, http.MethodGet, "", "Bearer good-token")
	prog := body["progress"].(map[string]interface{})
	assert.Equal(t, []interface{}{"lesson-1"}, prog["completed_lessons"])
}
