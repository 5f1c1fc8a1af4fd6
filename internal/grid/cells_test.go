package grid

import (
	"slices"
	"testing"

	"github.com/javiermolinar/festplan/internal/session"
)

func TestGenerateTimeSlots(t *testing.T) {
	slots := GenerateTimeSlots(30, "07:00", "18:00")
	if len(slots) != 23 {
		t.Fatalf("expected 23 slots, got %d", len(slots))
	}
	if slots[0] != "07:00" || slots[1] != "07:30" || slots[len(slots)-1] != "18:00" {
		t.Errorf("unexpected slots %v", slots)
	}

	two := GenerateTimeSlots(120, "07:00", "18:00")
	want := []string{"07:00", "09:00", "11:00", "13:00", "15:00", "17:00"}
	if !slices.Equal(two, want) {
		t.Errorf("GenerateTimeSlots(120) = %v, want %v", two, want)
	}
}

func TestSlotIndex(t *testing.T) {
	slots := GenerateTimeSlots(30, "07:00", "18:00")

	tests := []struct {
		time string
		want int
	}{
		{"07:00", 0},
		{"07:29", 0},
		{"10:15", 6},
		{"18:00", 22},
		{"06:59", -1},
		{"19:00", -1},
	}
	for _, tc := range tests {
		if got := SlotIndex(slots, 30, tc.time); got != tc.want {
			t.Errorf("SlotIndex(%s) = %d, want %d", tc.time, got, tc.want)
		}
	}
}

func TestZoom(t *testing.T) {
	if ZoomIn(30) != 15 || ZoomIn(5) != 5 {
		t.Error("ZoomIn mismatch")
	}
	if ZoomOut(30) != 60 || ZoomOut(120) != 120 {
		t.Error("ZoomOut mismatch")
	}
}

func TestCellSessions(t *testing.T) {
	sessions := []session.Session{
		sess("a", "A", "10:00", "11:00"),
		sess("b", "A", "10:20", "10:50"),
		sess("c", "A", "10:30", "11:00"),
		sess("d", "B", "10:00", "11:00"),
	}

	got := CellSessions(sessions, "A", "10:00", 30)
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "b" {
		t.Errorf("CellSessions = %v", got)
	}

	if got := CellSessions(sessions, "A", "10:00", 60); len(got) != 3 {
		t.Errorf("at 60-minute zoom expected 3 sessions, got %d", len(got))
	}
}

func TestBlockFor(t *testing.T) {
	s := sess("a", "A", "10:15", "11:45")
	b := BlockFor([]session.Session{s}, s, "10:00", 30)

	if b.HeightSlots != 3 {
		t.Errorf("HeightSlots = %.2f, want 3", b.HeightSlots)
	}
	if b.OffsetSlots != 0.5 {
		t.Errorf("OffsetSlots = %.2f, want 0.5", b.OffsetSlots)
	}
	if b.SpanRows() != 4 {
		t.Errorf("SpanRows = %d, want 4", b.SpanRows())
	}
	if b.TotalColumns != 1 {
		t.Errorf("TotalColumns = %d, want 1", b.TotalColumns)
	}
}

func TestCellBlocks_UsesFullListForColumns(t *testing.T) {
	sessions := []session.Session{
		sess("long", "A", "09:00", "12:00"),
		sess("short", "A", "10:00", "10:30"),
	}

	blocks := CellBlocks(sessions, "A", "10:00", 30)
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	if blocks[0].TotalColumns != 2 || blocks[0].ColumnIndex != 1 {
		t.Errorf("got index %d total %d, want 1/2", blocks[0].ColumnIndex, blocks[0].TotalColumns)
	}
}
