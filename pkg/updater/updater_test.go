package updater

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		v1, v2   string
		expected int
	}{
		{"v0.1.0", "v0.1.0", 0},
		{"v0.1.1", "v0.1.0", 1},
		{"v0.10.0", "v0.2.0", 1},
		{"0.2", "v0.2.0", 0},
		{"v1.0.0-rc1", "v1.0.0", -1},
		{"v1.0.0", "v1.0.0-rc1", 1},
		{"v1.0.0-rc2", "v1.0.0-rc1", 1},
		{"v0.9.9", "v1.0.0", -1},
		{" 1.2.3 ", "v1.2.3", 0},
		{"garbage", "v0.0.1", -1},
	}
	for _, tt := range tests {
		if got := compareVersions(tt.v1, tt.v2); got != tt.expected {
			t.Errorf("compareVersions(%q, %q) = %d, want %d", tt.v1, tt.v2, got, tt.expected)
		}
	}
}

func TestCheckForUpdates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"tag_name":"v0.3.0","html_url":"https://example.com/v0.3.0"}`))
	}))
	defer srv.Close()

	tag, url, err := CheckForUpdates(context.Background(), srv.URL, "v0.2.9")
	if err != nil {
		t.Fatalf("CheckForUpdates: %v", err)
	}
	if tag != "v0.3.0" || url != "https://example.com/v0.3.0" {
		t.Errorf("got %q %q", tag, url)
	}

	tag, _, err = CheckForUpdates(context.Background(), srv.URL, "v0.3.0")
	if err != nil || tag != "" {
		t.Errorf("up to date: tag = %q, err = %v", tag, err)
	}
}

func TestCheckForUpdates_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusForbidden)
	}))
	defer srv.Close()

	if _, _, err := CheckForUpdates(context.Background(), srv.URL, "v0.1.0"); err == nil {
		t.Error("expected an error for a non-200 response")
	}
}
