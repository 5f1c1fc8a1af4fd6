package tui

import (
	"strings"
	"testing"
)

func TestNavigationClampsToGrid(t *testing.T) {
	m, _, _ := newTestModel(t)

	m, _ = press(t, m, "h", "k")
	if m.cursor.Loc != 0 || m.cursor.Slot != 0 {
		t.Fatalf("cursor = %+v, want origin", m.cursor)
	}

	m, _ = press(t, m, "l", "l", "l", "l")
	if m.cursor.Loc != 2 {
		t.Errorf("cursor.Loc = %d, want 2", m.cursor.Loc)
	}

	for range 20 {
		m, _ = press(t, m, "j")
	}
	// 09:00 to 13:00 every 30 minutes
	if m.cursor.Slot != 8 {
		t.Errorf("cursor.Slot = %d, want 8", m.cursor.Slot)
	}
}

func TestDayKeys(t *testing.T) {
	m, _, _ := newTestModel(t)

	m, _ = press(t, m, "tab")
	if m.day != 2 {
		t.Errorf("day after tab = %d, want 2", m.day)
	}
	m, _ = press(t, m, "4")
	if m.day != 4 {
		t.Errorf("day after 4 = %d, want 4", m.day)
	}
	m, _ = press(t, m, "tab")
	if m.day != 1 {
		t.Errorf("day after wrapping tab = %d, want 1", m.day)
	}
	m, _ = press(t, m, "9")
	if m.day != 1 {
		t.Errorf("unknown day key changed day to %d", m.day)
	}
}

func TestZoomKeepsCursorTime(t *testing.T) {
	tests := []struct {
		key      string
		wantZoom int
		wantSlot int
	}{
		{key: "+", wantZoom: 15, wantSlot: 4},
		{key: "-", wantZoom: 60, wantSlot: 1},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			m, _, _ := newTestModel(t)
			m, _ = press(t, m, "j", "j") // 10:00
			m, _ = press(t, m, tt.key)

			if m.zoom != tt.wantZoom {
				t.Errorf("zoom = %d, want %d", m.zoom, tt.wantZoom)
			}
			if m.cursor.Slot != tt.wantSlot {
				t.Errorf("cursor.Slot = %d, want %d", m.cursor.Slot, tt.wantSlot)
			}
			if !strings.HasPrefix(m.statusMsg, "Zoom:") {
				t.Errorf("status = %q", m.statusMsg)
			}
		})
	}
}

func TestMoveSession(t *testing.T) {
	m, st, _ := newTestModel(t, sess("s1", "loc-1", "10:00", "11:30", "Keynote"))

	m, _ = press(t, m, "j", "j", "m")
	if m.mode != ModeMove {
		t.Fatalf("mode = %v, want move", modeString(m.mode))
	}

	m, _ = press(t, m, "l", "j", "j", "j", "j")
	if !m.drag.Highlighted("loc-2", "12:30") {
		t.Errorf("expected 12:30 at loc-2 to be highlighted, over=%q", m.drag.Over)
	}
	if m.drag.Highlighted("loc-1", "12:30") {
		t.Error("other location should not be highlighted")
	}

	m, _ = press(t, m, "enter")
	if m.mode != ModeNormal {
		t.Errorf("mode after drop = %v", modeString(m.mode))
	}
	got, err := st.Session("s1")
	if err != nil {
		t.Fatalf("Session() error = %v", err)
	}
	if got.LocationID != "loc-2" || got.StartTime != "12:00" || got.EndTime != "13:30" {
		t.Errorf("moved session = %s %s-%s, want loc-2 12:00-13:30", got.LocationID, got.StartTime, got.EndTime)
	}
	if !strings.HasPrefix(m.statusMsg, "Moved") {
		t.Errorf("status = %q", m.statusMsg)
	}
}

func TestMoveCancel(t *testing.T) {
	m, st, _ := newTestModel(t, sess("s1", "loc-1", "10:00", "11:00", "Keynote"))

	m, _ = press(t, m, "j", "j", "m", "l", "j", "esc")
	if m.mode != ModeNormal || m.drag.Active() {
		t.Fatalf("move not cancelled: mode=%v drag=%+v", modeString(m.mode), m.drag)
	}
	got, _ := st.Session("s1")
	if got.LocationID != "loc-1" || got.StartTime != "10:00" {
		t.Errorf("session moved on cancel: %+v", got)
	}
	if m.statusMsg != "Move cancelled" {
		t.Errorf("status = %q", m.statusMsg)
	}
}

func TestMoveRequiresSession(t *testing.T) {
	m, _, _ := newTestModel(t)
	m, _ = press(t, m, "m")
	if m.mode != ModeNormal {
		t.Errorf("mode = %v, want normal", modeString(m.mode))
	}
	if m.statusMsg != "No session to move" {
		t.Errorf("status = %q", m.statusMsg)
	}
}

func TestCycleOverlappingSessions(t *testing.T) {
	m, _, _ := newTestModel(t,
		sess("a", "loc-1", "09:00", "10:00", "Alpha"),
		sess("b", "loc-1", "09:00", "09:30", "Beta"),
	)

	s, ok := m.selectedSession()
	if !ok || s.ID != "a" {
		t.Fatalf("selected = %+v, want a", s)
	}
	m, _ = press(t, m, "c")
	s, _ = m.selectedSession()
	if s.ID != "b" {
		t.Errorf("selected after cycle = %q, want b", s.ID)
	}
	m, _ = press(t, m, "c")
	s, _ = m.selectedSession()
	if s.ID != "a" {
		t.Errorf("selected after second cycle = %q, want a", s.ID)
	}
}

func TestYankCopiesDay(t *testing.T) {
	m, _, copied := newTestModel(t,
		sess("b", "loc-2", "11:00", "12:00", "Workshop"),
		sess("a", "loc-1", "09:00", "10:00", "Opening"),
	)

	m, _ = press(t, m, "y")
	if len(*copied) != 1 {
		t.Fatalf("clipboard writes = %d, want 1", len(*copied))
	}
	want := "09:00\t10:00\tHauptbühne\tOpening\t\n" +
		"11:00\t12:00\tWorkshop-Raum 1\tWorkshop\t\n"
	if (*copied)[0] != want {
		t.Errorf("clipboard = %q, want %q", (*copied)[0], want)
	}
	if !strings.HasPrefix(m.statusMsg, "Copied 2 sessions") {
		t.Errorf("status = %q", m.statusMsg)
	}
}

func TestYankEmptyDay(t *testing.T) {
	m, _, copied := newTestModel(t)
	m, _ = press(t, m, "y")
	if len(*copied) != 0 {
		t.Errorf("clipboard written for an empty day")
	}
	if m.statusMsg != "Nothing to copy" {
		t.Errorf("status = %q", m.statusMsg)
	}
}

func TestDeleteConfirm(t *testing.T) {
	tests := []struct {
		name    string
		confirm string
		deleted bool
	}{
		{name: "yes", confirm: "y", deleted: true},
		{name: "no", confirm: "n", deleted: false},
		{name: "esc", confirm: "esc", deleted: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, st, _ := newTestModel(t, sess("s1", "loc-1", "09:00", "10:00", "Opening"))

			m, _ = press(t, m, "d")
			if m.modalType != ModalConfirmDelete {
				t.Fatalf("modal = %d, want confirm delete", m.modalType)
			}
			m, _ = press(t, m, tt.confirm)
			if m.mode != ModeNormal {
				t.Errorf("mode = %v, want normal", modeString(m.mode))
			}
			_, err := st.Session("s1")
			if gotDeleted := err != nil; gotDeleted != tt.deleted {
				t.Errorf("deleted = %v, want %v", gotDeleted, tt.deleted)
			}
		})
	}
}

func TestDetailModal(t *testing.T) {
	m, _, _ := newTestModel(t, sess("s1", "loc-1", "09:00", "10:00", "Opening"))

	m, _ = press(t, m, "enter")
	if m.modalType != ModalSessionDetail {
		t.Fatalf("modal = %d, want detail", m.modalType)
	}
	if m.modalSession == nil || m.modalSession.ID != "s1" {
		t.Fatalf("modal session = %+v", m.modalSession)
	}

	m, _ = press(t, m, "e")
	if m.modalType != ModalSessionForm {
		t.Fatalf("modal after e = %d, want form", m.modalType)
	}
	if got := m.form.title.Value(); got != "Opening" {
		t.Errorf("form title = %q", got)
	}
}

func TestEnterOnEmptyCellOpensForm(t *testing.T) {
	m, _, _ := newTestModel(t)
	m, _ = press(t, m, "j", "l", "enter")
	if m.modalType != ModalSessionForm {
		t.Fatalf("modal = %d, want form", m.modalType)
	}
	if got := m.form.start.Value(); got != "09:30" {
		t.Errorf("form start = %q, want 09:30", got)
	}
	if m.form.location != 1 {
		t.Errorf("form location = %d, want 1", m.form.location)
	}
}

func TestListViewSelection(t *testing.T) {
	m, _, _ := newTestModel(t,
		sess("b", "loc-2", "11:00", "12:00", "Workshop"),
		sess("a", "loc-1", "09:00", "10:00", "Opening"),
	)

	m, _ = press(t, m, "v")
	if m.view != viewList {
		t.Fatal("expected list view")
	}
	m, _ = press(t, m, "j", "j", "j")
	if m.listCursor != 1 {
		t.Errorf("listCursor = %d, want 1", m.listCursor)
	}
	s, ok := m.selectedSession()
	if !ok || s.ID != "b" {
		t.Errorf("selected = %+v, want b", s)
	}
}

func TestPromptTabCompletes(t *testing.T) {
	m, _, _ := newTestModel(t)
	m, _ = press(t, m, "/", "rev", "tab")
	if got := m.prompt.Value(); got != "/review " {
		t.Errorf("prompt = %q, want %q", got, "/review ")
	}
	m, _ = press(t, m, "esc")
	if m.mode != ModeNormal || m.prompt.Value() != "" {
		t.Errorf("prompt not closed: mode=%v value=%q", modeString(m.mode), m.prompt.Value())
	}
}
