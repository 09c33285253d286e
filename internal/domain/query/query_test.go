package query

import (
	"errors"
	"testing"

	"github.com/kailas-cloud/sectool/internal/domain"
)

func TestIsTicker(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"A", true},
		{"TSLA", true},
		{"AAPL", true},
		{"HELLO", true},
		{"GOOGLE", false},
		{"", false},
		{"tsla", false},
		{"Tsla", false},
		{"BRK.B", false},
		{"AB1", false},
		{"AB C", false},
		{"ÄPFEL", false},
		{"artificial intelligence", false},
	}
	for _, tc := range tests {
		if got := IsTicker(tc.in); got != tc.want {
			t.Errorf("IsTicker(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestNew_Empty(t *testing.T) {
	_, err := New("")
	if !errors.Is(err, domain.ErrEmptyQuery) {
		t.Fatalf("expected ErrEmptyQuery, got %v", err)
	}
}

func TestRoute(t *testing.T) {
	tests := []struct {
		in   string
		want Route
	}{
		{"TSLA", Filings},
		{"HELLO", Filings},
		{"artificial intelligence", FullText},
		{"climate risk 10-K", FullText},
		{"MSFTX1", FullText},
	}
	for _, tc := range tests {
		q, err := New(tc.in)
		if err != nil {
			t.Fatalf("New(%q): %v", tc.in, err)
		}
		if got := q.Route(); got != tc.want {
			t.Errorf("Route(%q) = %q, want %q", tc.in, got, tc.want)
		}
		if q.Text() != tc.in {
			t.Errorf("Text() = %q, want %q", q.Text(), tc.in)
		}
	}
}
