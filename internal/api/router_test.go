package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/famscout/activities-backend-go/internal/config"
	"github.com/famscout/activities-backend-go/internal/database"
)

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Open(database.Config{Path: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{
		JWTSecret:        "test-secret",
		DefaultRadiusKm:  25,
		DefaultPriceMax:  500,
		BudgetCeiling:    50,
		ClusterThreshold: 0.001,
		MaxPageSize:      500,
	}
	return SetupRouter(cfg, db)
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func registerUser(t *testing.T, router *gin.Engine) string {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email": "parent@example.com", "name": "Parent", "password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.Token)
	return resp.Data.Token
}

func TestRouter_Health(t *testing.T) {
	router := testRouter(t)

	w := doJSON(t, router, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_AuthFlow(t *testing.T) {
	router := testRouter(t)

	t.Run("protected routes reject anonymous requests", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/v1/children", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	token := registerUser(t, router)

	t.Run("registering the same email twice fails", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", gin.H{
			"email": "parent@example.com", "name": "Parent", "password": "secret123",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("login with wrong password is rejected", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", gin.H{
			"email": "parent@example.com", "password": "wrong",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("token unlocks protected routes", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/v1/children", token, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRouter_ChildrenAndMergedFilter(t *testing.T) {
	router := testRouter(t)
	token := registerUser(t, router)

	w := doJSON(t, router, http.MethodPost, "/api/v1/children", token, gin.H{
		"name": "Maya", "dateOfBirth": "2019-03-01",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var created struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.Data.ID)

	w = doJSON(t, router, http.MethodPut,
		fmt.Sprintf("/api/v1/children/%s/preferences", created.Data.ID), token, gin.H{
			"activityTypes": []string{"swimming"}, "city": "Vancouver",
		})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, router, http.MethodGet, "/api/v1/children/merged-filter", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var merged struct {
		Data struct {
			City          string   `json:"city"`
			ActivityTypes []string `json:"activityTypes"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &merged))
	assert.Equal(t, "Vancouver", merged.Data.City)
	assert.Equal(t, []string{"swimming"}, merged.Data.ActivityTypes)
}

func TestRouter_MapClustersValidation(t *testing.T) {
	router := testRouter(t)
	token := registerUser(t, router)

	w := doJSON(t, router, http.MethodGet, "/api/v1/map/clusters", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, router, http.MethodGet,
		"/api/v1/map/clusters?minLat=49.2&minLon=-123.3&maxLat=49.3&maxLon=-123.1", token, nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}
