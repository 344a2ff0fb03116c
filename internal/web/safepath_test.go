package web

import (
	"errors"
	"testing"
)

func TestSafePath(t *testing.T) {
	tests := []struct {
		name    string
		base    string
		path    string
		wantErr bool
	}{
		{"valid relative", "/tmp/state", "fixtures/login.html", false},
		{"valid absolute inside", "/tmp/state", "/tmp/state/fixtures/login.html", false},
		{"traversal dotdot", "/tmp/state", "../etc/passwd", true},
		{"traversal absolute", "/tmp/state", "/etc/passwd", true},
		{"traversal hidden", "/tmp/state", "fixtures/../../etc/passwd", true},
		{"base itself", "/tmp/state", "/tmp/state", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SafePath(tt.base, tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("SafePath(%q, %q) error = %v, wantErr %v", tt.base, tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestSafePathSentinel(t *testing.T) {
	_, err := SafePath("/tmp/state", "../x")
	if !errors.Is(err, ErrPathEscape) {
		t.Errorf("expected ErrPathEscape, got %v", err)
	}
}
