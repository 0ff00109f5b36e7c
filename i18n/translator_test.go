package i18n

import "testing"

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	data := map[string]string{"keyword": "minimum", "type": "string"}
	// default is en
	if msg := T("illegal_keyword", data); msg != "keyword minimum is not allowed for type string" {
		t.Fatalf("unexpected english message %q", msg)
	}

	SetLanguage("ja")
	if msg := T("illegal_keyword", data); msg == "keyword minimum is not allowed for type string" || msg == "illegal_keyword" {
		t.Fatalf("expected japanese message, got %q", msg)
	}

	// reset to en
	SetLanguage("en")
}

func TestTranslator_UnknownCodeFallsBack(t *testing.T) {
	if msg := T("no_such_code", nil); msg != "no_such_code" {
		t.Fatalf("expected code fallback, got %q", msg)
	}
}

type upper struct{}

func (upper) Message(code string, _ map[string]string) string { return "X:" + code }

func TestTranslator_Custom(t *testing.T) {
	SetTranslator(upper{})
	defer SetTranslator(nil)
	if msg := T("missing_type", nil); msg != "X:missing_type" {
		t.Fatalf("custom translator not used: %q", msg)
	}
}
