package token

import "testing"

// Test looking up keywords succeeds, then fails for a plain identifier.
func TestLookup(t *testing.T) {
	for word, want := range keywords {
		if got, ok := LookupIdentifier(word); !ok || got != want {
			t.Errorf("lookup of %q failed: got %v/%v, want %v/true", word, got, ok, want)
		}
	}

	if k, ok := LookupIdentifier("totallyUnknown"); ok || k != IDENT {
		t.Errorf("expected totallyUnknown to resolve to IDENT, got %v/%v", k, ok)
	}
}

func TestLegacySpellings(t *testing.T) {
	if !IsLegacySpelling("func") {
		t.Errorf("expected 'func' to be a legacy spelling")
	}
	if IsLegacySpelling("function") {
		t.Errorf("'function' is canonical, not legacy")
	}
}

func TestCanonical(t *testing.T) {
	if Canonical(FUNCTION) != "function" {
		t.Errorf("expected canonical spelling of FUNCTION to be 'function'")
	}
}

func TestAggregateError(t *testing.T) {
	if NewAggregateError(nil) != nil {
		t.Errorf("expected nil AggregateError for an empty diagnostic slice")
	}

	d := Diagnostic{Code: CodeUnknownChar, Message: "boom", Line: 3, Col: 4}
	err := NewAggregateError([]Diagnostic{d})
	if err == nil {
		t.Fatalf("expected a non-nil error")
	}
	if err.Error() == "" {
		t.Errorf("expected a non-empty error message")
	}
}
