package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestSuccessEnvelope(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) {
		Success(c, http.StatusOK, gin.H{"hello": "world"})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d", w.Code)
	}

	var body struct {
		Data     map[string]string `json:"data"`
		Error    *ErrorBody        `json:"error"`
		Metadata Metadata          `json:"metadata"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data["hello"] != "world" {
		t.Errorf("data: got %v", body.Data)
	}
	if body.Error != nil {
		t.Errorf("error should be omitted, got %v", body.Error)
	}
	if body.Metadata.RequestID == "" {
		t.Error("request id missing")
	}
	if got := w.Header().Get("X-Request-ID"); got != body.Metadata.RequestID {
		t.Errorf("header request id %q != metadata %q", got, body.Metadata.RequestID)
	}
}

func TestFailEnvelope(t *testing.T) {
	r := gin.New()
	r.GET("/", func(c *gin.Context) {
		Fail(c, http.StatusNotFound, ErrNotFound)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("status: got %d", w.Code)
	}

	var body Response
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error == nil || body.Error.Code != ErrNotFound {
		t.Fatalf("error: got %v", body.Error)
	}
	if body.Error.Message == "" {
		t.Error("message missing")
	}
	if body.Metadata.RequestID == "" {
		t.Error("fallback request id missing")
	}
}

func TestFailWithFields(t *testing.T) {
	r := gin.New()
	r.GET("/", func(c *gin.Context) {
		FailWithFields(c, http.StatusBadRequest, ErrValidation, map[string]string{
			"title": "Title is a required field",
		})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

	var body Response
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error == nil || body.Error.Fields["title"] == "" {
		t.Fatalf("fields: got %v", body.Error)
	}
}
