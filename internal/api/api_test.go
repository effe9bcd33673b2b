package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestHealthEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := NewRouter(nil, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestNormalizeAllowedOrigins(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		want     []string
		allowAll bool
	}{
		{"empty", nil, nil, false},
		{"single", []string{"https://app.example.com"}, []string{"https://app.example.com"}, false},
		{"comma separated", []string{"https://a.com, https://b.com"}, []string{"https://a.com", "https://b.com"}, false},
		{"wildcard", []string{"*"}, nil, true},
		{"wildcard mixed", []string{"https://a.com,*"}, []string{"https://a.com"}, true},
		{"blank entries", []string{" , ,https://a.com"}, []string{"https://a.com"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, allowAll := normalizeAllowedOrigins(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.allowAll, allowAll)
		})
	}
}
