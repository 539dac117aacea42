package httpapi

import (
	"net/http/httptest"
	"testing"
)

func TestResolveClientIP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{name: "fly header wins", headers: map[string]string{"Fly-Client-IP": "203.0.113.7", "X-Forwarded-For": "198.51.100.1"}, want: "203.0.113.7"},
		{name: "first forwarded hop", headers: map[string]string{"X-Forwarded-For": "198.51.100.1, 10.0.0.1"}, want: "198.51.100.1"},
		{name: "garbage falls through", headers: map[string]string{"X-Real-IP": "not-an-ip"}, remote: "192.0.2.10:5555", want: "192.0.2.10"},
	}

	for _, tc := range tests {
		req := httptest.NewRequest("GET", "/v1/grids/today", nil)
		req.RemoteAddr = tc.remote
		for k, v := range tc.headers {
			req.Header.Set(k, v)
		}
		if got := resolveClientIP(req); got != tc.want {
			t.Fatalf("%s: got %q want %q", tc.name, got, tc.want)
		}
	}
}

func TestResolveCountryCode(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest("GET", "/v1/grids/today", nil)
	if got := resolveCountryCode(req); got != "ZZ" {
		t.Fatalf("expected ZZ without headers, got %q", got)
	}

	req.Header.Set("CF-IPCountry", "ch")
	if got := resolveCountryCode(req); got != "CH" {
		t.Fatalf("expected CH, got %q", got)
	}
}
