package i18n

import "testing"

func TestToggle(t *testing.T) {
	if ID.Toggle() != EN {
		t.Error("id should toggle to en")
	}
	if EN.Toggle() != ID {
		t.Error("en should toggle to id")
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		tag    string
		want   Language
		wantOK bool
	}{
		{"id", ID, true},
		{"en", EN, true},
		{"en-US", EN, true},
		{"en-GB", EN, true},
		{"id-ID", ID, true},
		{"!!", Default, false},
	}
	for _, tt := range tests {
		got, ok := Parse(tt.tag)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("Parse(%q) = (%q, %v), want (%q, %v)", tt.tag, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestT(t *testing.T) {
	if got := T(EN, LoginErrPasswordRequired); got != "Password cannot be empty" {
		t.Errorf("got %q", got)
	}
	if got := T(ID, LoginErrPasswordRequired); got != "Password tidak boleh kosong" {
		t.Errorf("got %q", got)
	}
	if got := T(Language("fr"), LoginButton); got != "Masuk" {
		t.Errorf("expected Indonesian fallback, got %q", got)
	}
	if got := T(EN, Key("no.such.key")); got != "no.such.key" {
		t.Errorf("expected key fallback, got %q", got)
	}
}

func TestCatalogComplete(t *testing.T) {
	for key, entry := range catalog {
		if entry[ID] == "" || entry[EN] == "" {
			t.Errorf("key %q is missing a translation", key)
		}
	}
}

func TestTranslator(t *testing.T) {
	tr := Translator{Lang: EN}
	if got := tr.T(string(MenuSettings)); got != "Settings" {
		t.Errorf("got %q", got)
	}
}
