package i18n

import "testing"

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	data := map[string]string{"field": "basic_string"}
	if msg := T(NonNullable, data); msg != "Non nullable field 'basic_string' is null!" {
		t.Fatalf("unexpected default message: %q", msg)
	}

	SetLanguage("ja")
	if msg := T(NonNullable, data); msg == "Non nullable field 'basic_string' is null!" || msg == NonNullable {
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

func TestSetTranslator_Custom(t *testing.T) {
	SetTranslator(upper{})
	defer SetTranslator(nil)
	if msg := T(WrongType, nil); msg != "X:wrong_type" {
		t.Fatalf("custom translator not used: %q", msg)
	}
}

func TestRender_PlaceholderValuesAreNotRescanned(t *testing.T) {
	msg := T(WrongType, map[string]string{
		"value":    "'{field}'",
		"field":    "name",
		"expected": "String",
	})
	want := "The value '{field}' from field 'name' is the wrong type, expected: String"
	if msg != want {
		t.Fatalf("got %q want %q", msg, want)
	}
}
