package tui

import (
	"testing"

	"github.com/javiermolinar/festplan/internal/config"
	"github.com/javiermolinar/festplan/internal/grid"
)

func TestNewDefaults(t *testing.T) {
	m := New(nil, config.Default())

	if m.day != 1 {
		t.Errorf("day = %d, want 1", m.day)
	}
	if m.zoom != 30 {
		t.Errorf("zoom = %d, want 30", m.zoom)
	}
	if m.mode != ModeNormal || m.view != viewGrid {
		t.Errorf("mode=%v view=%d, want normal grid", modeString(m.mode), m.view)
	}
	if got := len(m.store.Locations()); got != 3 {
		t.Errorf("locations = %d, want the 3 defaults", got)
	}
	if m.Init() != nil {
		t.Error("Init() should not schedule anything")
	}
}

func TestNewZoomFallback(t *testing.T) {
	cfg := testConfig()
	cfg.Grid.Zoom = 0
	m := New(nil, cfg)
	if m.zoom != grid.DefaultZoom {
		t.Errorf("zoom = %d, want %d", m.zoom, grid.DefaultZoom)
	}
}

func TestNewUnknownThemeFallsBack(t *testing.T) {
	cfg := testConfig()
	cfg.UI.Theme = "does-not-exist"
	m := New(nil, cfg)
	if m.styles == nil {
		t.Fatal("styles not built")
	}
	if m.styles.colorBg == "" {
		t.Error("fallback palette has no background")
	}
}

func TestFormInputsUseModalStyles(t *testing.T) {
	m := New(nil, testConfig())
	inputs := map[string]string{
		"title":    m.form.title.TextStyle.Render("x"),
		"speakers": m.form.speakers.TextStyle.Render("x"),
		"start":    m.form.start.TextStyle.Render("x"),
	}
	want := m.styles.ModalInputTextStyle.Render("x")
	for name, got := range inputs {
		if got != want {
			t.Errorf("%s text style = %q, want %q", name, got, want)
		}
	}
	if got, want := m.form.title.PlaceholderStyle.Render("x"), m.styles.ModalPlaceholderStyle.Render("x"); got != want {
		t.Errorf("placeholder style = %q, want %q", got, want)
	}
}

func TestModeString(t *testing.T) {
	tests := []struct {
		mode Mode
		want string
	}{
		{ModeNormal, "Normal"},
		{ModeMove, "Move"},
		{ModePrompt, "Prompt"},
		{ModeModal, "Modal"},
		{Mode(42), "Unknown(42)"},
	}
	for _, tt := range tests {
		if got := modeString(tt.mode); got != tt.want {
			t.Errorf("modeString(%d) = %q, want %q", tt.mode, got, tt.want)
		}
	}
}

func TestTruncateStr(t *testing.T) {
	if got := truncateStr("Hauptbühne", 20); got != "Hauptbühne" {
		t.Errorf("short string changed: %q", got)
	}
	if got := truncateStr("Bühnenprogramm am Abend", 10); got != "Bühnenp..." {
		t.Errorf("truncateStr() = %q", got)
	}
}
