package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mutiaradiva/Chachingify-Website/internal/config"
	"github.com/mutiaradiva/Chachingify-Website/internal/database"
	"github.com/mutiaradiva/Chachingify-Website/internal/router"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestServer wires the full router against a fresh in-memory store.
func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	cfg := &config.Config{
		JWT:      config.JWTConfig{Secret: "test-secret", ExpireHours: 1},
		Security: config.SecurityConfig{BcryptCost: bcrypt.MinCost},
		Upload:   config.UploadConfig{Dir: t.TempDir()},
		App:      config.AppSubConfig{PageSize: 20},
	}
	return router.SetupRouter(cfg, db)
}

// doJSON issues a request with an optional bearer token and JSON body.
func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, target interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), target); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

// register creates a user and returns their bearer token.
func register(t *testing.T, r *gin.Engine, email string) string {
	t.Helper()

	rec := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     "Tester",
		"email":    email,
		"password": "rahasia1",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d, body %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Token string `json:"token"`
	}
	decode(t, rec, &body)
	if body.Token == "" {
		t.Fatal("register returned empty token")
	}
	return body.Token
}

// listObjects fetches a JSON array endpoint as raw maps.
func listObjects(t *testing.T, r *gin.Engine, path, token string) []map[string]interface{} {
	t.Helper()

	rec := doJSON(t, r, http.MethodGet, path, token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET %s status = %d, body %s", path, rec.Code, rec.Body.String())
	}
	var items []map[string]interface{}
	decode(t, rec, &items)
	return items
}

// objectID reads the numeric id of a decoded JSON object.
func objectID(t *testing.T, obj map[string]interface{}) int {
	t.Helper()
	id, ok := obj["id"].(float64)
	if !ok {
		t.Fatalf("object has no numeric id: %v", obj)
	}
	return int(id)
}

// defaultAccountID returns the seeded cash account of a fresh user.
func defaultAccountID(t *testing.T, r *gin.Engine, token string) int {
	t.Helper()
	accounts := listObjects(t, r, "/api/accounts", token)
	if len(accounts) != 1 {
		t.Fatalf("seeded account count = %d, want 1", len(accounts))
	}
	return objectID(t, accounts[0])
}

// categoryIDByType returns a seeded category id of the wanted type.
func categoryIDByType(t *testing.T, r *gin.Engine, token, txType string) int {
	t.Helper()
	categories := listObjects(t, r, "/api/categories?type="+txType, token)
	if len(categories) == 0 {
		t.Fatalf("no seeded %s categories", txType)
	}
	return objectID(t, categories[0])
}

// createTransaction posts a transaction and returns its id.
func createTransaction(t *testing.T, r *gin.Engine, token string, categoryID, accountID int, txType, amount, date string) int {
	t.Helper()

	rec := doJSON(t, r, http.MethodPost, "/api/transactions", token, gin.H{
		"category_id": categoryID,
		"account_id":  accountID,
		"type":        txType,
		"amount":      amount,
		"date":        date,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create transaction status = %d, body %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Transaction struct {
			ID int `json:"id"`
		} `json:"transaction"`
	}
	decode(t, rec, &body)
	return body.Transaction.ID
}

// accountBalanceCent fetches the cached balance of an account.
func accountBalanceCent(t *testing.T, r *gin.Engine, token string, accountID int) int64 {
	t.Helper()

	rec := doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/accounts/%d", accountID), token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get account status = %d, body %s", rec.Code, rec.Body.String())
	}
	var body struct {
		BalanceCent int64 `json:"balance_cent"`
	}
	decode(t, rec, &body)
	return body.BalanceCent
}
