package htmlsanitize_test

import (
	"testing"

	"github.com/redescolar/cartelera/internal/app/system/htmlsanitize"
)

func TestText_Empty(t *testing.T) {
	if got := htmlsanitize.Text(""); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestText_PlainText(t *testing.T) {
	if got := htmlsanitize.Text("Más bebederos de agua"); got != "Más bebederos de agua" {
		t.Errorf("expected plain text unchanged, got %q", got)
	}
}

func TestText_StripsMarkup(t *testing.T) {
	if got := htmlsanitize.Text("<p><strong>Aviso</strong> importante</p>"); got != "Aviso importante" {
		t.Errorf("expected markup stripped, got %q", got)
	}
}

func TestText_RemovesScript(t *testing.T) {
	got := htmlsanitize.Text("Hola<script>alert('xss')</script>")
	if got != "Hola" {
		t.Errorf("expected script removed, got %q", got)
	}
}

func TestText_TrimsWhitespace(t *testing.T) {
	if got := htmlsanitize.Text("  hola  "); got != "hola" {
		t.Errorf("expected trimmed text, got %q", got)
	}
}
