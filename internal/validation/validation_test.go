package validation

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

type samplePayload struct {
	Name     string `json:"name" binding:"required,max=5"`
	Category string `json:"category" binding:"required,oneof=A B"`
	Email    string `json:"email" binding:"omitempty,email"`
}

func postJSON(t *testing.T, body string) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	req, err := http.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	var dst samplePayload
	ok := BindAndValidateJSON(c, &dst)
	return w, ok
}

func TestBindAndValidateJSON_Valid(t *testing.T) {
	_, ok := postJSON(t, `{"name":"short","category":"A"}`)
	if !ok {
		t.Fatalf("expected valid payload to pass")
	}
}

func TestBindAndValidateJSON_FieldErrors(t *testing.T) {
	w, ok := postJSON(t, `{"name":"much too long","category":"C"}`)
	if ok {
		t.Fatalf("expected validation failure")
	}
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", w.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Code != "VALIDATION_FAILED" {
		t.Errorf("expected code VALIDATION_FAILED, got %q", resp.Code)
	}
	if len(resp.Errors) != 2 {
		t.Fatalf("expected 2 field errors, got %d: %+v", len(resp.Errors), resp.Errors)
	}

	byField := map[string]FieldError{}
	for _, fe := range resp.Errors {
		byField[fe.Field] = fe
	}
	if fe, ok := byField["name"]; !ok || fe.Rule != "max" {
		t.Errorf("expected max error on name, got %+v", byField)
	}
	if fe, ok := byField["category"]; !ok || fe.Rule != "oneof" {
		t.Errorf("expected oneof error on category, got %+v", byField)
	}
}

func TestBindAndValidateJSON_MalformedJSON(t *testing.T) {
	w, ok := postJSON(t, `{"name": "oops"`)
	if ok {
		t.Fatalf("expected syntax failure")
	}
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", w.Code)
	}

	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if len(resp.Errors) != 1 || resp.Errors[0].Rule != "syntax" {
		t.Errorf("expected a single syntax error, got %+v", resp.Errors)
	}
}

func TestBuildMessage(t *testing.T) {
	w, _ := postJSON(t, `{"category":"A","email":"nope"}`)

	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	byField := map[string]string{}
	for _, fe := range resp.Errors {
		byField[fe.Field] = fe.Message
	}
	if byField["name"] != "name is required" {
		t.Errorf("unexpected required message: %q", byField["name"])
	}
	if byField["email"] != "email must be a valid email address" {
		t.Errorf("unexpected email message: %q", byField["email"])
	}
}
