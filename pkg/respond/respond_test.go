package respond

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuccess(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		message  string
		data     interface{}
		wantCode int
	}{
		{
			name:     "ok with data",
			code:     http.StatusOK,
			message:  "OK",
			data:     map[string]string{"hello": "world"},
			wantCode: http.StatusOK,
		},
		{
			name:     "created",
			code:     http.StatusCreated,
			message:  "Task created",
			data:     map[string]int{"id": 123},
			wantCode: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/", nil)

			Success(w, r, tt.code, tt.message, tt.data)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

			var got map[string]interface{}
			require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
			assert.Equal(t, true, got["success"])
			assert.Equal(t, tt.message, got["message"])
			assert.NotNil(t, got["data"])
			assert.Nil(t, got["error"])
		})
	}
}

func TestError(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	details := []map[string]string{{"field": "title", "code": "INVALID_TITLE"}}
	Error(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "validation failed", details)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var got struct {
		Success bool `json:"success"`
		Error   struct {
			Code    string              `json:"code"`
			Message string              `json:"message"`
			Details []map[string]string `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.False(t, got.Success)
	assert.Equal(t, "VALIDATION_ERROR", got.Error.Code)
	assert.Equal(t, "validation failed", got.Error.Message)
	require.Len(t, got.Error.Details, 1)
	assert.Equal(t, "title", got.Error.Details[0]["field"])
}

func TestError_NoDetails(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	Error(w, r, http.StatusNotFound, "TASK_NOT_FOUND", "task not found", nil)

	var got map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))

	errObj, ok := got["error"].(map[string]interface{})
	require.True(t, ok)
	_, hasDetails := errObj["details"]
	assert.False(t, hasDetails, "nil details should be omitted")
}
