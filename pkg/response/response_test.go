package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"quizbank/internal/errs"
)

func serve(t *testing.T, err error) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	FromError(c, err)

	var body map[string]any
	if unmarshalErr := json.Unmarshal(w.Body.Bytes(), &body); unmarshalErr != nil {
		t.Fatalf("decoding body %q: %v", w.Body.String(), unmarshalErr)
	}
	return w, body
}

func TestFromError_ConflictCarriesExisting(t *testing.T) {
	existing := map[string]string{"name": "Mythology"}
	w, body := serve(t, errs.NewConflict("Category name already exists", existing))

	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want %d", w.Code, http.StatusConflict)
	}
	if body["status"] != StatusError {
		t.Errorf("envelope status = %v", body["status"])
	}
	results, ok := body["results"].(map[string]any)
	if !ok || results["name"] != "Mythology" {
		t.Errorf("results = %v, want the existing record", body["results"])
	}
}

func TestFromError_StatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", errs.NewNotFound("User not found"), http.StatusNotFound},
		{"unauthorized", errs.NewUnauthorized("Password is invalid"), http.StatusUnauthorized},
		{"validation", errs.NewValidation("Invalid user id"), http.StatusBadRequest},
		{"unsupported media", errs.NewUnsupportedMedia("Only CSV files are allowed"), http.StatusUnsupportedMediaType},
		{"parse", &errs.ParseError{Line: 3, Err: errors.New("wrong number of fields")}, http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, _ := serve(t, tc.err)
			if w.Code != tc.want {
				t.Errorf("status = %d, want %d", w.Code, tc.want)
			}
		})
	}
}

func TestFromError_WrappedErrorStillMatches(t *testing.T) {
	wrapped := fmt.Errorf("creating category: %w", errs.NewNotFound("gone"))
	w, _ := serve(t, wrapped)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestFromError_UnknownErrorHidesDetails(t *testing.T) {
	_, body := serve(t, errors.New("pq: connection refused"))
	if body["message"] != "Something Went Wrong !!" {
		t.Errorf("message = %v, internals must not leak", body["message"])
	}
}
