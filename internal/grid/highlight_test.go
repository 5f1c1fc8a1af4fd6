package grid

import (
	"slices"
	"testing"

	"github.com/javiermolinar/festplan/internal/session"
)

func TestParseCellID(t *testing.T) {
	tests := []struct {
		id       string
		wantLoc  string
		wantSlot string
		wantOK   bool
	}{
		{"cell-loc-1-10:00", "loc-1", "10:00", true},
		{"cell-A-07:30", "A", "07:30", true},
		{CellID("loc-7f3a", "12:15"), "loc-7f3a", "12:15", true},
		{"cell-loc-1-7:30", "", "", false},
		{"cell-loc-1-25:00", "", "", false},
		{"session-123", "", "", false},
		{"", "", "", false},
	}

	for _, tc := range tests {
		t.Run(tc.id, func(t *testing.T) {
			loc, slot, ok := ParseCellID(tc.id)
			if ok != tc.wantOK || loc != tc.wantLoc || slot != tc.wantSlot {
				t.Errorf("ParseCellID(%q) = (%q, %q, %v), want (%q, %q, %v)",
					tc.id, loc, slot, ok, tc.wantLoc, tc.wantSlot, tc.wantOK)
			}
		})
	}
}

func TestDrag_FootprintMatchesDuration(t *testing.T) {
	dragged := sess("s", "A", "14:00", "15:30") // 90 minutes
	slots := GenerateTimeSlots(30, "07:00", "18:00")

	d := Drag{Session: &dragged, Over: CellID("B", "10:00")}

	got := d.Footprint(slots)
	want := []string{"10:00", "10:30", "11:00"}
	if !slices.Equal(got, want) {
		t.Errorf("Footprint = %v, want %v", got, want)
	}

	for _, slot := range slots {
		if d.Highlighted("A", slot) {
			t.Errorf("cell A %s must not be highlighted", slot)
		}
	}
}

func TestDrag_Highlighted(t *testing.T) {
	dragged := sess("s", "A", "10:00", "10:45")

	tests := []struct {
		name string
		drag Drag
		loc  string
		slot string
		want bool
	}{
		{"hovered cell", Drag{Session: &dragged, Over: "cell-A-12:00"}, "A", "12:00", true},
		{"inside footprint", Drag{Session: &dragged, Over: "cell-A-12:00"}, "A", "12:30", true},
		{"end is exclusive", Drag{Session: &dragged, Over: "cell-A-12:00"}, "A", "12:45", false},
		{"before hover", Drag{Session: &dragged, Over: "cell-A-12:00"}, "A", "11:30", false},
		{"other location", Drag{Session: &dragged, Over: "cell-A-12:00"}, "B", "12:00", false},
		{"no drag", Drag{Over: "cell-A-12:00"}, "A", "12:00", false},
		{"not over a cell", Drag{Session: &dragged}, "A", "12:00", false},
		{"malformed over", Drag{Session: &dragged, Over: "garbage"}, "A", "12:00", false},
		{"malformed slot", Drag{Session: &dragged, Over: "cell-A-12:00"}, "A", "noon", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.drag.Highlighted(tc.loc, tc.slot); got != tc.want {
				t.Errorf("Highlighted(%s, %s) = %v, want %v", tc.loc, tc.slot, got, tc.want)
			}
		})
	}
}

func TestDrag_MissingBoundUsesFallback(t *testing.T) {
	dragged := session.Session{ID: "s", Day: 1, LocationID: "A", StartTime: "10:00"}
	d := Drag{Session: &dragged, Over: "cell-A-10:00"}

	got := d.Footprint(GenerateTimeSlots(15, "09:00", "12:00"))
	want := []string{"10:00", "10:15", "10:30", "10:45"}
	if !slices.Equal(got, want) {
		t.Errorf("Footprint = %v, want %v", got, want)
	}
}
