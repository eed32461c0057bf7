// internal/interfaces/http/handlers/errors_test.go
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/your-org/storefront-backend/internal/domain/cart"
)

func TestRespondCartError_StatusAndCode(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{cart.ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND"},
		{cart.ErrProductNotFound, http.StatusNotFound, "PRODUCT_NOT_FOUND"},
		{cart.ErrCartNotFound, http.StatusNotFound, "CART_NOT_FOUND"},
		{cart.ErrOutOfStock, http.StatusConflict, "OUT_OF_STOCK"},
		{cart.ErrInvalidQuantity, http.StatusBadRequest, "INVALID_QUANTITY"},
		{errors.New("connection refused"), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		respondCartError(c, tc.err)

		if w.Code != tc.wantStatus {
			t.Errorf("error %v: status = %d, want %d", tc.err, w.Code, tc.wantStatus)
		}

		var body map[string]interface{}
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("error %v: invalid JSON body: %v", tc.err, err)
		}
		if body["code"] != tc.wantCode {
			t.Errorf("error %v: code = %v, want %s", tc.err, body["code"], tc.wantCode)
		}
	}
}

func TestRespondCartError_WrappedErrorsStillMatch(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondCartError(c, fmt.Errorf("adding item: %w", cart.ErrOutOfStock))

	if w.Code != http.StatusConflict {
		t.Errorf("wrapped out-of-stock error: status = %d, want %d", w.Code, http.StatusConflict)
	}
}

func TestRespondCartError_HidesInternalDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondCartError(c, errors.New("pq: relation \"cart_items\" does not exist"))

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body["error"] != "Internal server error" {
		t.Errorf("internal error message leaked: %v", body["error"])
	}
}
