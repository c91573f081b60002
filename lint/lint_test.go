package lint

import (
	"testing"

	"github.com/skx/source-compiler/lexer"
)

func TestCheckFlagsLegacySpellings(t *testing.T) {
	toks, err := lexer.Tokens(`
start_program
func f() {}
end_program
`)
	if err != nil {
		t.Fatalf("unexpected lex error: %s", err)
	}

	issues := Check(toks)
	if len(issues) != 3 {
		t.Fatalf("expected 3 legacy_keyword issues (start_program, func, end_program), got %d: %v", len(issues), issues)
	}
	for _, iss := range issues {
		if iss.Code != "legacy_keyword" {
			t.Errorf("expected legacy_keyword code, got %s", iss.Code)
		}
	}
}

func TestCheckIgnoresCanonicalSpellings(t *testing.T) {
	toks, err := lexer.Tokens(`
begin
end
`)
	if err != nil {
		t.Fatalf("unexpected lex error: %s", err)
	}

	if issues := Check(toks); len(issues) != 0 {
		t.Fatalf("expected no issues for canonical spellings, got %v", issues)
	}
}
