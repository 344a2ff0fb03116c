package browser

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/pinchtab/ariaquery/aria"
	"github.com/pinchtab/ariaquery/dom"
	"github.com/pinchtab/ariaquery/dom/htmltree"
	"github.com/pinchtab/ariaquery/internal/config"
	"github.com/pinchtab/ariaquery/internal/snapshot"
	"github.com/pinchtab/ariaquery/query"
)

func TestCheckURL(t *testing.T) {
	tests := []struct {
		url     string
		wantErr bool
	}{
		{"https://example.com", false},
		{"http://127.0.0.1:8080/x", false},
		{"file:///tmp/page.html", false},
		{"data:text/html,<p>hi</p>", false},
		{"javascript:alert(1)", true},
		{"ftp://example.com", true},
		{"example.com", true},
	}
	for _, tt := range tests {
		err := CheckURL(tt.url)
		if (err != nil) != tt.wantErr {
			t.Errorf("CheckURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrUnsupportedURL) {
			t.Errorf("CheckURL(%q) should wrap ErrUnsupportedURL, got %v", tt.url, err)
		}
	}
}

func TestMarkScriptUsesMarkers(t *testing.T) {
	for _, m := range []string{htmltree.HiddenMarker, snapshot.FocusedMarker} {
		if !strings.Contains(markScript, fmt.Sprintf("%q", m)) {
			t.Errorf("mark script does not set %s", m)
		}
	}
}

func TestAllocatorOptions(t *testing.T) {
	base := len(allocatorOptions(&config.RuntimeConfig{Headless: true}))
	withBinary := len(allocatorOptions(&config.RuntimeConfig{Headless: true, ChromeBinary: "/usr/bin/chromium"}))
	if withBinary != base+1 {
		t.Errorf("binary should add one option: %d vs %d", withBinary, base)
	}
}

func TestCaptureRejectsBadURL(t *testing.T) {
	_, err := Capture(context.Background(), &config.RuntimeConfig{NavigateTimeout: time.Second}, "gopher://x")
	if !errors.Is(err, ErrUnsupportedURL) {
		t.Errorf("expected ErrUnsupportedURL, got %v", err)
	}
}

// TestCaptureLive needs a local Chrome; set ARIAQUERY_LIVE_CHROME=1 to run it.
func TestCaptureLive(t *testing.T) {
	if testing.Short() || os.Getenv("ARIAQUERY_LIVE_CHROME") == "" {
		t.Skip("live Chrome capture disabled")
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><head><style>.gone{display:none}</style></head><body>
			<button id="save">Save</button>
			<button id="ghost" class="gone">Ghost</button>
		</body></html>`)
	}))
	defer srv.Close()

	cfg := config.Load()
	cfg.NavigateTimeout = 30 * time.Second
	doc, err := Capture(context.Background(), cfg, srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	var ids []string
	for n := range query.FindAll[dom.Node](doc.Root(), aria.Hidden(aria.DuoTrue)) {
		ids = append(ids, dom.ID(n))
	}
	found := false
	for _, id := range ids {
		if id == "ghost" {
			found = true
		}
	}
	if !found {
		t.Errorf("stylesheet-hidden button should be marked hidden, got %v", ids)
	}
	if _, ok := query.Find[dom.Node](doc.Root(), aria.RoleButton, query.WithName("Save")); !ok {
		t.Error("expected Save button")
	}
}
