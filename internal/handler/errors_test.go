package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/librisapp/libris-backend/internal/response"
	"github.com/librisapp/libris-backend/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestFailFromError(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   response.ErrCode
	}{
		{service.ErrNotFound, http.StatusNotFound, response.ErrNotFound},
		{service.ErrForbidden, http.StatusForbidden, response.ErrForbidden},
		{service.ErrTextOrFileRequired, http.StatusBadRequest, response.ErrTextOrFileRequired},
		{service.ErrUnsupportedFileType, http.StatusBadRequest, response.ErrUnsupportedFile},
		{service.ErrFileTooLarge, http.StatusBadRequest, response.ErrFileTooLarge},
		{service.ErrEmailTaken, http.StatusConflict, response.ErrEmailTaken},
		{service.ErrInvalidCredentials, http.StatusUnauthorized, response.ErrInvalidCredentials},
		{errors.New("pg connection reset"), http.StatusInternalServerError, response.ErrInternal},
		// Wrapped sentinels still map to their status.
		{fmt.Errorf("get book: %w", service.ErrNotFound), http.StatusNotFound, response.ErrNotFound},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("GET", "/", nil)

		failFromError(c, tc.err)

		if w.Code != tc.status {
			t.Errorf("%v: status got %d, want %d", tc.err, w.Code, tc.status)
		}
		var body response.Response
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("%v: decode: %v", tc.err, err)
		}
		if body.Error == nil || body.Error.Code != tc.code {
			t.Errorf("%v: code got %v, want %s", tc.err, body.Error, tc.code)
		}
	}
}
