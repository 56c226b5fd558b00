package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestWriteProtectReadsStayOpen(t *testing.T) {
	handler := WriteProtectAuth([]string{"secret"})(okHandler())

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/episodes", nil))

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 for unauthenticated GET", w.Code)
	}
}

func TestWriteProtectRequiresKeyForMutations(t *testing.T) {
	handler := WriteProtectAuth([]string{"secret"})(okHandler())

	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete} {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(method, "/episodes", nil))

		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s without key: status = %d, want 401", method, w.Code)
		}
	}
}

func TestWriteProtectRejectsInvalidKey(t *testing.T) {
	handler := WriteProtectAuth([]string{"secret"})(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/episodes", nil)
	req.Header.Set("X-API-KEY", "wrong")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestWriteProtectAcceptsValidKey(t *testing.T) {
	handler := WriteProtectAuth([]string{"secret", "other"})(okHandler())

	req := httptest.NewRequest(http.MethodPost, "/episodes", nil)
	req.Header.Set("X-API-KEY", "other")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestWriteProtectDisabledWithoutKeys(t *testing.T) {
	for _, keys := range [][]string{nil, {}, {""}} {
		handler := WriteProtectAuth(keys)(okHandler())

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/episodes/1", nil))

		if w.Code != http.StatusOK {
			t.Errorf("keys %v: status = %d, want pass-through", keys, w.Code)
		}
	}
}

func TestCorrelationIDFromHeader(t *testing.T) {
	var got string
	handler := CorrelationID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetCorrelationID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Correlation-ID", "abc-123")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if got != "abc-123" {
		t.Errorf("correlation id = %q, want abc-123", got)
	}
	if w.Header().Get("X-Correlation-ID") != "abc-123" {
		t.Errorf("response header = %q", w.Header().Get("X-Correlation-ID"))
	}
}
