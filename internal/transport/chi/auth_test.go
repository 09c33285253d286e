package chi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/kailas-cloud/sectool/internal/domain"
	logpkg "github.com/kailas-cloud/sectool/internal/logger"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func credentials(keys ...string) []domain.Credential {
	out := make([]domain.Credential, 0, len(keys))
	for _, k := range keys {
		out = append(out, domain.NewCredential(k))
	}
	return out
}

func authRequest(path, header string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, path, http.NoBody)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	return req
}

func TestBearerAuth_Disabled(t *testing.T) {
	for name, keys := range map[string][]domain.Credential{
		"nil":          nil,
		"empty values": credentials("", ""),
	} {
		t.Run(name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			BearerAuthMiddleware(keys)(okHandler()).ServeHTTP(rr, authRequest("/v1/tools", ""))
			if rr.Code != http.StatusOK {
				t.Errorf("status = %d, want 200", rr.Code)
			}
		})
	}
}

func TestBearerAuth_Decisions(t *testing.T) {
	handler := BearerAuthMiddleware(credentials("key-one", "", "key-two"))(okHandler())

	tests := []struct {
		name       string
		path       string
		header     string
		wantStatus int
		wantMsg    string
	}{
		{"first key", "/v1/tools", "Bearer key-one", http.StatusOK, ""},
		{"second key", "/v1/full-text", "Bearer key-two", http.StatusOK, ""},
		{"missing header", "/v1/tools", "", http.StatusUnauthorized, "missing authorization header"},
		{"basic scheme", "/v1/tools", "Basic dXNlcjpwYXNz", http.StatusUnauthorized, "authorization header must use Bearer scheme"},
		{"wrong key", "/v1/tools", "Bearer key-three", http.StatusUnauthorized, "invalid api key"},
		{"key prefix", "/v1/tools", "Bearer key-on", http.StatusUnauthorized, "invalid api key"},
		{"empty token", "/v1/tools", "Bearer ", http.StatusUnauthorized, "invalid api key"},
		{"health exempt", "/health", "", http.StatusOK, ""},
		{"metrics exempt", "/metrics", "", http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, authRequest(tt.path, tt.header))

			if rr.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rr.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK {
				return
			}

			var resp ErrorResponse
			if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
				t.Fatalf("decode error response: %v", err)
			}
			if resp.Code != CodeUnauthorized || resp.Message != tt.wantMsg {
				t.Errorf("error = %+v, want %s / %q", resp, CodeUnauthorized, tt.wantMsg)
			}
		})
	}
}

func TestBearerAuth_RejectionRedactsKeys(t *testing.T) {
	const (
		configured = "configured-secret-key"
		presented  = "presented-secret-token"
	)
	core, logs := observer.New(zapcore.DebugLevel)
	handler := BearerAuthMiddleware(credentials(configured))(okHandler())

	req := authRequest("/v1/tools", "Bearer "+presented)
	req = req.WithContext(logpkg.ContextWithLogger(req.Context(), zap.New(core)))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rr.Code)
	}
	body := rr.Body.String()
	for _, secret := range []string{configured, presented} {
		if strings.Contains(body, secret) {
			t.Errorf("response leaks %q: %s", secret, body)
		}
	}

	entries := logs.FilterMessage("Request rejected").All()
	if len(entries) != 1 {
		t.Fatalf("expected one rejection log, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["reason"] != "invalid api key" {
		t.Errorf("reason = %v", fields["reason"])
	}
	if cred, ok := fields["credential"].(map[string]interface{}); !ok || cred["set"] != true {
		t.Errorf("credential field = %#v", fields["credential"])
	}
	for _, e := range logs.All() {
		for k, v := range e.ContextMap() {
			s, _ := json.Marshal(v)
			for _, secret := range []string{configured, presented} {
				if strings.Contains(string(s), secret) {
					t.Errorf("log field %s leaks %q", k, secret)
				}
			}
		}
	}
}
