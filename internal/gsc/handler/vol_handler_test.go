package handler_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/skycater/gsc/internal/config"
	"github.com/skycater/gsc/internal/gsc/handler"
	"github.com/skycater/gsc/internal/gsc/repository"
	"github.com/skycater/gsc/internal/gsc/service"
	"github.com/skycater/gsc/internal/gsc/testutil"
)

func setupVolRouter(t *testing.T) *gin.Engine {
	t.Helper()
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	svc := service.NewServices(repos, nil, &config.Config{}, zap.NewNop())
	h := handler.NewHandlers(svc)

	r := testutil.SetupRouter()
	api := testutil.AuthGroup(r, "/api/v1")
	api.GET("/vols", h.Vol.List)
	api.GET("/vols/:id", h.Vol.Get)
	api.POST("/vols", h.Vol.Create)
	api.PUT("/vols/:id", h.Vol.Update)
	api.DELETE("/vols/:id", h.Vol.Delete)
	return r
}

func TestVolCRUD(t *testing.T) {
	r := setupVolRouter(t)
	token := testutil.DefaultTestToken()

	// Unauthenticated requests are refused.
	w := testutil.DoRequest(r, http.MethodGet, "/api/v1/vols", nil, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}

	create := map[string]interface{}{
		"flight_number":        "AF123",
		"flight_date":          "2026-02-10T00:00:00Z",
		"origin":               "CDG",
		"destination":          "JFK",
		"aircraft":             "A350",
		"zone":                 "International",
		"season":               "hiver",
		"estimated_passengers": 280,
		"duration_minutes":     480,
	}
	w = testutil.DoRequest(r, http.MethodPost, "/api/v1/vols", create, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("create vol: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	volID := data["id"].(string)
	if data["flight_number"] != "AF123" {
		t.Errorf("expected flight AF123, got %v", data["flight_number"])
	}

	// Missing required fields are a 400.
	w = testutil.DoRequest(r, http.MethodPost, "/api/v1/vols", map[string]interface{}{"origin": "CDG"}, token)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing fields, got %d", w.Code)
	}

	w = testutil.DoRequest(r, http.MethodGet, "/api/v1/vols/"+volID, nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("get vol: expected 200, got %d", w.Code)
	}

	w = testutil.DoRequest(r, http.MethodGet, "/api/v1/vols?zone=International", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("list vols: expected 200, got %d", w.Code)
	}
	resp = testutil.ParseResponse(w)
	list := resp["data"].(map[string]interface{})
	items := list["items"].([]interface{})
	if len(items) != 1 {
		t.Errorf("expected 1 vol in zone filter, got %d", len(items))
	}

	update := map[string]interface{}{"actual_passengers": 263}
	w = testutil.DoRequest(r, http.MethodPut, "/api/v1/vols/"+volID, update, token)
	if w.Code != http.StatusOK {
		t.Fatalf("update vol: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp = testutil.ParseResponse(w)
	data = resp["data"].(map[string]interface{})
	if data["actual_passengers"].(float64) != 263 {
		t.Errorf("expected 263 actual passengers, got %v", data["actual_passengers"])
	}

	w = testutil.DoRequest(r, http.MethodDelete, "/api/v1/vols/"+volID, nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("delete vol: expected 200, got %d", w.Code)
	}

	w = testutil.DoRequest(r, http.MethodGet, "/api/v1/vols/"+volID, nil, token)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", w.Code)
	}
}

func TestVolListPagination(t *testing.T) {
	r := setupVolRouter(t)
	token := testutil.DefaultTestToken()

	for i := 0; i < 3; i++ {
		create := map[string]interface{}{
			"flight_number": fmt.Sprintf("AF10%d", i),
			"flight_date":   "2026-03-01T00:00:00Z",
			"zone":          "Europe",
		}
		w := testutil.DoRequest(r, http.MethodPost, "/api/v1/vols", create, token)
		if w.Code != http.StatusCreated {
			t.Fatalf("seed vol %d: got %d", i, w.Code)
		}
	}

	w := testutil.DoRequest(r, http.MethodGet, "/api/v1/vols?page=1&page_size=2", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", w.Code)
	}
	resp := testutil.ParseResponse(w)
	list := resp["data"].(map[string]interface{})
	items := list["items"].([]interface{})
	if len(items) != 2 {
		t.Errorf("expected page of 2, got %d", len(items))
	}
	pagination := list["pagination"].(map[string]interface{})
	if pagination["total"].(float64) != 3 {
		t.Errorf("expected total 3, got %v", pagination["total"])
	}
	if pagination["total_pages"].(float64) != 2 {
		t.Errorf("expected 2 pages, got %v", pagination["total_pages"])
	}
}
