package handler_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestDefaultCategoryUndeletable(t *testing.T) {
	r := newTestServer(t)
	token := register(t, r, "dina@example.com")

	id := categoryIDByType(t, r, token, "expense")
	rec := doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/categories/%d", id), token, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("delete default category status = %d, want 400, body %s", rec.Code, rec.Body.String())
	}

	var body map[string]interface{}
	decode(t, rec, &body)
	if body["message"] != "Cannot delete default category" {
		t.Errorf("message = %v, want immutable-entity error", body["message"])
	}
}

func TestCustomCategoryLifecycle(t *testing.T) {
	r := newTestServer(t)
	token := register(t, r, "dina@example.com")

	rec := doJSON(t, r, http.MethodPost, "/api/categories", token, gin.H{
		"name":  "Kopi",
		"type":  "expense",
		"icon":  "☕",
		"color": "#78350f",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create category status = %d, body %s", rec.Code, rec.Body.String())
	}
	var created map[string]interface{}
	decode(t, rec, &created)
	id := objectID(t, created)
	if created["is_default"] != false {
		t.Error("user-created category marked as default")
	}

	rec = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/categories/%d", id), token, gin.H{
		"name": "Kopi & Teh",
		"type": "expense",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update category status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/categories/%d", id), token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete custom category status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/categories/%d", id), token, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("get deleted category status = %d, want 404", rec.Code)
	}
}

func TestCategoryInvalidType(t *testing.T) {
	r := newTestServer(t)
	token := register(t, r, "dina@example.com")

	rec := doJSON(t, r, http.MethodPost, "/api/categories", token, gin.H{
		"name": "Misteri",
		"type": "transfer",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("create category with bad type status = %d, want 400", rec.Code)
	}
}

// Cross-user access must look like not-found, never forbidden.
func TestCategoryOwnershipIsolation(t *testing.T) {
	r := newTestServer(t)
	tokenA := register(t, r, "alice@example.com")
	tokenB := register(t, r, "bob@example.com")

	idA := categoryIDByType(t, r, tokenA, "expense")

	rec := doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/categories/%d", idA), tokenB, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("cross-user get status = %d, want 404", rec.Code)
	}

	rec = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/categories/%d", idA), tokenB, gin.H{
		"name": "Hijack",
		"type": "expense",
	})
	if rec.Code != http.StatusNotFound {
		t.Errorf("cross-user update status = %d, want 404", rec.Code)
	}

	rec = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/categories/%d", idA), tokenB, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("cross-user delete status = %d, want 404", rec.Code)
	}
}
