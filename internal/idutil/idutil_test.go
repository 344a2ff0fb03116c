package idutil

import "testing"

func TestDocumentID(t *testing.T) {
	a := DocumentID("<p>hello</p>")
	if a != DocumentID("<p>hello</p>") {
		t.Error("same content should give the same id")
	}
	if a == DocumentID("<p>bye</p>") {
		t.Error("different content should give different ids")
	}
	if len(a) != 12 {
		t.Errorf("got %q, want 12 chars", a)
	}
	if !IsValidID(a, DocumentPrefix) {
		t.Errorf("%q should be a valid document id", a)
	}
}

func TestIsValidID(t *testing.T) {
	tests := []struct {
		id, prefix string
		want       bool
	}{
		{"doc_1234abcd", "doc", true},
		{"doc1234", "doc", false},
		{"do", "doc", false},
		{"tab_1234abcd", "doc", false},
	}
	for _, tt := range tests {
		if got := IsValidID(tt.id, tt.prefix); got != tt.want {
			t.Errorf("IsValidID(%q, %q) = %v, want %v", tt.id, tt.prefix, got, tt.want)
		}
	}
}

func TestExtractPrefix(t *testing.T) {
	if got := ExtractPrefix("doc_1234abcd"); got != "doc" {
		t.Errorf("got %q, want doc", got)
	}
	if got := ExtractPrefix("nounderscore"); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}
