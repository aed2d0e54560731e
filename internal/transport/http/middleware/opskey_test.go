package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func serveOpsKey(t *testing.T, key, header string) int {
	t.Helper()
	handler := OpsKey(key)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest(http.MethodGet, "/ops/asset-check", nil)
	if header != "" {
		req.Header.Set("X-Ops-Key", header)
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr.Code
}

func TestOpsKey_ValidKey(t *testing.T) {
	assert.Equal(t, http.StatusOK, serveOpsKey(t, "secret", "secret"))
}

func TestOpsKey_WrongKey(t *testing.T) {
	assert.Equal(t, http.StatusUnauthorized, serveOpsKey(t, "secret", "nope"))
}

func TestOpsKey_MissingHeader(t *testing.T) {
	assert.Equal(t, http.StatusUnauthorized, serveOpsKey(t, "secret", ""))
}

func TestOpsKey_Unconfigured_IsUnavailable(t *testing.T) {
	assert.Equal(t, http.StatusServiceUnavailable, serveOpsKey(t, "", "anything"))
}
