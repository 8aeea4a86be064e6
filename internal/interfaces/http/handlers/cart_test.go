// internal/interfaces/http/handlers/cart_test.go
package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/your-org/shopping-cart-backend/internal/pkg/apperr"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newCartRouter mounts the cart routes on a bare engine. The handler holds a
// nil service, so only request parsing paths that reject before reaching the
// service may be exercised here.
func newCartRouter() *gin.Engine {
	h := &CartHandler{}
	r := gin.New()
	carts := r.Group("/carts")
	carts.GET("/:id", h.GetCart)
	carts.GET("/active/:user_id", h.GetActiveCart)
	carts.PUT("/:id", h.UpdateCart)
	carts.DELETE("/:id", h.DeleteCart)
	items := carts.Group("/:id/items")
	items.POST("", h.AddItem)
	items.PUT("/:product_id", h.UpdateItem)
	items.DELETE("/:product_id", h.RemoveItem)
	items.DELETE("", h.ClearItems)
	return r
}

type errorEnvelope struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

func doRequest(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) errorEnvelope {
	t.Helper()
	var env errorEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("response is not an error envelope: %v (body %q)", err, w.Body.String())
	}
	return env
}

func TestCartRoutesRejectMalformedIDs(t *testing.T) {
	r := newCartRouter()

	cases := []struct {
		name   string
		method string
		path   string
		body   string
	}{
		{"get cart", http.MethodGet, "/carts/not-a-uuid", ""},
		{"get active cart", http.MethodGet, "/carts/active/not-a-uuid", ""},
		{"update cart", http.MethodPut, "/carts/not-a-uuid", `{"status":"abandoned"}`},
		{"delete cart", http.MethodDelete, "/carts/not-a-uuid", ""},
		{"add item", http.MethodPost, "/carts/not-a-uuid/items", `{}`},
		{"update item", http.MethodPut, "/carts/not-a-uuid/items/also-bad", `{}`},
		{"remove item", http.MethodDelete, "/carts/not-a-uuid/items/also-bad", ""},
		{"clear items", http.MethodDelete, "/carts/not-a-uuid/items", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(t, r, tc.method, tc.path, tc.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d (body %q)", w.Code, w.Body.String())
			}
			env := decodeEnvelope(t, w)
			if env.Status != http.StatusBadRequest {
				t.Errorf("envelope status = %d, want %d", env.Status, http.StatusBadRequest)
			}
			if env.Error == "" {
				t.Error("envelope error message is empty")
			}
		})
	}
}

func TestUpdateItemRejectsMalformedProductID(t *testing.T) {
	r := newCartRouter()

	// Valid cart id, malformed product id: the product id check must still
	// fire before any body parsing.
	w := doRequest(t, r, http.MethodPut,
		"/carts/1b4e28ba-2fa1-11d2-883f-0016d3cca427/items/nope", `{"quantity":1}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	env := decodeEnvelope(t, w)
	if !strings.Contains(env.Error, "product id") {
		t.Errorf("error %q should mention the product id", env.Error)
	}
}

func TestAddItemRejectsMalformedBody(t *testing.T) {
	r := newCartRouter()

	w := doRequest(t, r, http.MethodPost,
		"/carts/1b4e28ba-2fa1-11d2-883f-0016d3cca427/items", `{"product_id": 42}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-uuid product_id, got %d", w.Code)
	}
}

func TestRespondErrorStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{apperr.Validation("bad input"), http.StatusBadRequest},
		{apperr.Unauthorized("no token"), http.StatusUnauthorized},
		{apperr.Conflict("duplicate"), http.StatusConflict},
		{apperr.NotFound("missing"), http.StatusNotFound},
		{apperr.Internal("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		respondError(c, tc.err)
		if w.Code != tc.want {
			t.Errorf("respondError(%v) status = %d, want %d", tc.err, w.Code, tc.want)
		}
		var env errorEnvelope
		if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
			t.Fatalf("bad envelope: %v", err)
		}
		if env.Status != tc.want {
			t.Errorf("envelope status = %d, want %d", env.Status, tc.want)
		}
	}
}
