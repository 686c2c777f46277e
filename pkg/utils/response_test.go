package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRespondError(t *testing.T) {
	resp := httptest.NewRecorder()
	RespondError(resp, http.StatusBadRequest, "bad limit")

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "application/json", resp.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"bad limit"}`, resp.Body.String())
}

func TestRespondJSONEmptySlice(t *testing.T) {
	resp := httptest.NewRecorder()
	RespondJSON(resp, http.StatusOK, []string{})

	assert.Equal(t, "[]\n", resp.Body.String())
}
