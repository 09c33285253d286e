package fulltext

import "testing"

func TestNew_Defaults(t *testing.T) {
	p := New("artificial intelligence")
	if p.Query() != "artificial intelligence" {
		t.Errorf("query = %q", p.Query())
	}
	if p.FormTypes() != nil {
		t.Errorf("form types = %v, want nil", p.FormTypes())
	}
	if p.DateFrom() != "" || p.DateTo() != "" {
		t.Errorf("dates = %q..%q, want empty", p.DateFrom(), p.DateTo())
	}
	if p.Limit() != DefaultLimit {
		t.Errorf("limit = %d, want %d", p.Limit(), DefaultLimit)
	}
}

func TestWithFormTypes_PreservesOrderAndCopies(t *testing.T) {
	forms := []string{"8-K", "10-K"}
	p := New("merger", WithFormTypes(forms...))
	forms[0] = "S-1"

	got := p.FormTypes()
	if len(got) != 2 || got[0] != "8-K" || got[1] != "10-K" {
		t.Fatalf("form types = %v, want [8-K 10-K]", got)
	}
	got[1] = "mutated"
	if p.FormTypes()[1] != "10-K" {
		t.Error("FormTypes must return a copy")
	}
}

func TestWithFormTypes_EmptyStaysNil(t *testing.T) {
	p := New("merger", WithFormTypes())
	if p.FormTypes() != nil {
		t.Errorf("form types = %v, want nil", p.FormTypes())
	}
}

func TestWithLimit(t *testing.T) {
	if got := New("x", WithLimit(3)).Limit(); got != 3 {
		t.Errorf("limit = %d, want 3", got)
	}
	if got := New("x", WithLimit(-1)).Limit(); got != DefaultLimit {
		t.Errorf("limit = %d, want %d", got, DefaultLimit)
	}
}
