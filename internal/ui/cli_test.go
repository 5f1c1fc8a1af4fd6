package ui

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/javiermolinar/festplan/internal/config"
	"github.com/javiermolinar/festplan/internal/db"
	"github.com/javiermolinar/festplan/internal/llm"
	"github.com/javiermolinar/festplan/internal/session"
	"github.com/javiermolinar/festplan/internal/store"
)

func TestMain(m *testing.M) {
	DisableColor()
	os.Exit(m.Run())
}

// scriptedClient answers with replies in order, repeating the last one.
type scriptedClient struct {
	replies []string
	calls   int
}

func (c *scriptedClient) next() string {
	reply := c.replies[min(c.calls, len(c.replies)-1)]
	c.calls++
	return reply
}

func (c *scriptedClient) Chat(context.Context, []llm.Message) (string, error) {
	return c.next(), nil
}

func (c *scriptedClient) ChatJSON(_ context.Context, _ []llm.Message, result any) error {
	return json.Unmarshal([]byte(c.next()), result)
}

type testEnv struct {
	cfg    *config.Config
	st     *store.Store
	client llm.Client
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()
	cfg := config.Default()
	cfg.Storage.DBPath = filepath.Join(t.TempDir(), "festplan.db")
	return &testEnv{cfg: cfg, st: store.New()}
}

// run executes one command line against the shared store.
func (e *testEnv) run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	a := NewApp(e.st, e.cfg)
	a.newClient = func(string) (llm.Client, error) {
		if e.client == nil {
			return nil, errors.New("no api key")
		}
		return e.client, nil
	}

	var out, errOut bytes.Buffer
	a.root.SetOut(&out)
	a.root.SetErr(&errOut)
	a.root.SetIn(strings.NewReader(stdin))
	a.root.SetArgs(args)

	err := a.Execute()
	_ = a.Close()
	return out.String(), err
}

func (e *testEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := e.run(t, "", args...)
	if err != nil {
		t.Fatalf("%v: %v", args, err)
	}
	return out
}

func (e *testEnv) add(t *testing.T, title, loc string, day int, start, end string) session.Session {
	t.Helper()
	added, err := e.st.AddSession(session.Session{Title: title, LocationID: loc, Day: day, StartTime: start, EndTime: end})
	if err != nil {
		t.Fatalf("adding %q: %v", title, err)
	}
	return added
}

func assertContains(t *testing.T, out string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestVersion(t *testing.T) {
	env := newEnv(t)
	out := env.mustRun(t, "version")
	assertContains(t, out, "festplan dev (commit: none)")
}

func TestSessionLifecycle(t *testing.T) {
	env := newEnv(t)

	out := env.mustRun(t, "session", "add", "Opening Keynote",
		"--day=1", "--location=Hauptbühne", "--start=10:00", "--duration=90",
		"--speakers=Dr. Anna Schmidt", "--format=Keynote")
	assertContains(t, out, "Added session-", "Opening Keynote", "10:00-11:30 at Hauptbühne")

	sessions := env.st.Sessions()
	if len(sessions) != 1 {
		t.Fatalf("sessions = %d, want 1", len(sessions))
	}
	s := sessions[0]
	if s.LocationID != "loc-1" || s.Speakers != "Dr. Anna Schmidt" || s.Format != "Keynote" {
		t.Errorf("stored session = %+v", s)
	}

	out = env.mustRun(t, "session", "list")
	assertContains(t, out, "Tag 1", "10:00-11:30", "Opening Keynote", "[Keynote]", s.ID)

	out = env.mustRun(t, "session", "show", s.ID)
	assertContains(t, out, "Opening Keynote", "1h 30m", "Hauptbühne", "Dr. Anna Schmidt", "Language:  DE")

	out = env.mustRun(t, "session", "delete", s.ID)
	assertContains(t, out, "Deleted "+s.ID)
	if got := len(env.st.Sessions()); got != 0 {
		t.Errorf("sessions after delete = %d", got)
	}

	out = env.mustRun(t, "session", "list")
	assertContains(t, out, "No sessions found.")
}

func TestSessionAddFirstFreeSlot(t *testing.T) {
	env := newEnv(t)
	env.add(t, "Early", "loc-1", 1, "07:00", "08:00")

	out := env.mustRun(t, "session", "add", "Next", "--location=loc-1", "--duration=30")
	assertContains(t, out, "08:00-08:30")
}

func TestSessionAddOutsideGridNotes(t *testing.T) {
	env := newEnv(t)
	out := env.mustRun(t, "session", "add", "Late Show", "--location=loc-3", "--start=20:00", "--duration=60")
	assertContains(t, out, "Added", "Note: end time is after the grid ends")
}

func TestSessionAddErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"unknown location", []string{"--location=Nowhere", "--start=10:00"}, "location not found"},
		{"not a festival day", []string{"--location=loc-1", "--start=10:00", "--day=9"}, "not a festival day"},
		{"end before start", []string{"--location=loc-1", "--start=10:00", "--end=09:00"}, "end time must be after start time"},
		{"end without start", []string{"--location=loc-1", "--end=10:00"}, "--end needs --start"},
		{"bad start", []string{"--location=loc-1", "--start=25:00"}, "time must be in HH:MM format"},
		{"missing location", []string{"--start=10:00"}, `"location" not set`},
		{"end and duration", []string{"--location=loc-1", "--start=10:00", "--end=11:00", "--duration=30"}, "none of the others"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newEnv(t)
			args := append([]string{"session", "add", "Talk"}, tt.args...)
			_, err := env.run(t, "", args...)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want %q", err, tt.wantErr)
			}
			if got := len(env.st.Sessions()); got != 0 {
				t.Errorf("sessions = %d, want 0", got)
			}
		})
	}
}

func TestSessionEdit(t *testing.T) {
	env := newEnv(t)
	s := env.add(t, "Panel", "loc-1", 1, "10:00", "11:00")

	out := env.mustRun(t, "session", "edit", s.ID, "--title=Closing Panel", "--duration=45", "--language=EN")
	assertContains(t, out, "Updated", "Closing Panel", "10:00-10:45")

	out = env.mustRun(t, "session", "edit", s.ID, "--start=12:00")
	assertContains(t, out, "12:00-12:45")

	got, err := env.st.Session(s.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != "Closing Panel" || got.Language != "EN" || got.EndTime != "12:45" {
		t.Errorf("edited session = %+v", got)
	}

	if _, err := env.run(t, "", "session", "edit", "session-missing", "--title=x"); !errors.Is(err, session.ErrSessionNotFound) {
		t.Errorf("missing session error = %v", err)
	}
}

func TestSessionMove(t *testing.T) {
	env := newEnv(t)
	s := env.add(t, "Opening", "loc-1", 2, "10:00", "11:30")

	out := env.mustRun(t, "session", "move", s.ID, "--location=Workshop-Raum 1", "--start=14:00")
	assertContains(t, out, "Moved Opening to Workshop-Raum 1 14:00-15:30")

	got, _ := env.st.Session(s.ID)
	if got.LocationID != "loc-2" || got.Day != 2 || got.EndTime != "15:30" {
		t.Errorf("moved session = %+v", got)
	}

	// Start only keeps the location.
	env.mustRun(t, "session", "move", s.ID, "--start=09:00")
	got, _ = env.st.Session(s.ID)
	if got.LocationID != "loc-2" || got.StartTime != "09:00" || got.EndTime != "10:30" {
		t.Errorf("moved session = %+v", got)
	}

	if _, err := env.run(t, "", "session", "move", s.ID); err == nil {
		t.Error("move without target should fail")
	}
	if _, err := env.run(t, "", "session", "move", s.ID, "--location=Nowhere"); !errors.Is(err, session.ErrLocationNotFound) {
		t.Errorf("unknown location error = %v", err)
	}

	if _, err := env.run(t, "", "session", "move", s.ID, "--start=23:30"); !errors.Is(err, session.ErrEndBeforeStart) {
		t.Errorf("move past midnight error = %v", err)
	}
	got, _ = env.st.Session(s.ID)
	if got.StartTime != "09:00" || got.EndTime != "10:30" {
		t.Errorf("session changed by a rejected move: %+v", got)
	}
}

func TestLocationCommands(t *testing.T) {
	env := newEnv(t)

	out := env.mustRun(t, "location", "add", "Garden", "--color=#22c55e")
	assertContains(t, out, "Added location Garden")

	if _, err := env.run(t, "", "location", "add", "garden"); err == nil {
		t.Error("duplicate location name should fail")
	}

	garden, ok := session.FindLocationByName(env.st.Locations(), "Garden")
	if !ok || garden.Color != "#22c55e" {
		t.Fatalf("garden = %+v, ok=%v", garden, ok)
	}
	env.add(t, "Picnic", garden.ID, 1, "12:00", "13:00")

	out = env.mustRun(t, "location", "list")
	assertContains(t, out, "1. Hauptbühne", "4. Garden", "1 sessions")

	out = env.mustRun(t, "location", "rename", "Garden", "Rose Garden")
	assertContains(t, out, "Renamed Garden to Rose Garden")

	out = env.mustRun(t, "location", "delete", garden.ID)
	assertContains(t, out, "Deleted location Rose Garden and 1 sessions")
	if got := len(env.st.Locations()); got != 3 {
		t.Errorf("locations = %d, want 3", got)
	}
	if got := len(env.st.Sessions()); got != 0 {
		t.Errorf("sessions = %d, want 0", got)
	}
}

func TestExportImportCSV(t *testing.T) {
	env := newEnv(t)
	env.add(t, "Opening", "loc-1", 1, "10:00", "11:00")
	env.add(t, "Hands-on", "loc-2", 2, "14:00", "15:30")

	path := filepath.Join(t.TempDir(), "program.csv")
	out := env.mustRun(t, "export", path)
	assertContains(t, out, "Exported 2 sessions to "+path)

	other := newEnv(t)
	out = other.mustRun(t, "import", path)
	assertContains(t, out, "Imported 2 sessions from "+path)

	day2 := session.ForDay(other.st.Sessions(), 2)
	if len(day2) != 1 || day2[0].LocationID != "loc-2" || day2[0].EndTime != "15:30" {
		t.Errorf("day 2 = %+v", day2)
	}

	if _, err := other.run(t, "", "import", filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Error("missing file should fail")
	}
}

func TestImportMergesDatabase(t *testing.T) {
	ctx := context.Background()
	sourcePath := filepath.Join(t.TempDir(), "source.db")

	kv, err := db.New(sourcePath)
	if err != nil {
		t.Fatalf("opening source: %v", err)
	}
	p := store.NewPersister(kv, store.KeysForYear(2026), config.DiscardLogger())
	source := store.New(store.WithSnapshot(p.Load(ctx)), store.WithOnChange(p.Hook()))
	garden, err := source.AddLocation(session.Location{Name: "Garden", Color: "#22c55e"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := source.AddSessions([]session.Session{
		{Title: "Picnic", LocationID: garden.ID, Day: 1, StartTime: "12:00", EndTime: "13:00"},
		{Title: "Keynote", LocationID: "loc-1", Day: 1, StartTime: "09:00", EndTime: "10:00"},
	}); err != nil {
		t.Fatal(err)
	}
	if err := kv.Close(); err != nil {
		t.Fatal(err)
	}

	env := newEnv(t)
	out := env.mustRun(t, "import", sourcePath)
	assertContains(t, out, "Imported 2 sessions")

	merged, ok := session.FindLocationByName(env.st.Locations(), "Garden")
	if !ok {
		t.Fatal("garden location not merged")
	}
	if merged.ID == garden.ID {
		t.Error("merged location should get a new id")
	}
	if got := len(session.ForLocation(env.st.Sessions(), merged.ID)); got != 1 {
		t.Errorf("garden sessions = %d, want 1", got)
	}
	if got := len(session.ForLocation(env.st.Sessions(), "loc-1")); got != 1 {
		t.Errorf("Hauptbühne sessions = %d, want 1", got)
	}
}

func TestImportRejectsDatabaseWithoutProgram(t *testing.T) {
	sourcePath := filepath.Join(t.TempDir(), "empty.db")
	kv, err := db.New(sourcePath)
	if err != nil {
		t.Fatalf("opening source: %v", err)
	}
	if err := kv.Close(); err != nil {
		t.Fatal(err)
	}

	env := newEnv(t)
	_, err = env.run(t, "", "import", sourcePath)
	if err == nil || !strings.Contains(err.Error(), "has no 2026 program") {
		t.Fatalf("expected missing program error, got %v", err)
	}
	if got := len(env.st.Locations()); got != 3 {
		t.Errorf("locations changed: %d", got)
	}
}

func TestBackupRestore(t *testing.T) {
	env := newEnv(t)
	env.add(t, "Opening", "loc-1", 1, "10:00", "11:00")

	path := filepath.Join(t.TempDir(), "backup.yaml")
	out := env.mustRun(t, "backup", path)
	assertContains(t, out, "Backed up 1 sessions and 3 locations to "+path)

	other := newEnv(t)
	other.mustRun(t, "location", "add", "Garden")
	out = other.mustRun(t, "restore", path)
	assertContains(t, out, "Restored 1 sessions from "+path)
	if strings.Contains(out, "locations kept") {
		t.Error("full backup should replace locations")
	}
	if got := len(other.st.Locations()); got != 3 {
		t.Errorf("locations = %d, want 3", got)
	}

	list := filepath.Join(t.TempDir(), "sessions.json")
	data := `[{"id":"s1","day":1,"locationId":"loc-1","startTime":"10:00","endTime":"11:00","title":"Solo"}]`
	if err := os.WriteFile(list, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	other.mustRun(t, "location", "add", "Garden")
	out = other.mustRun(t, "restore", list)
	assertContains(t, out, "(locations kept)")
	if got := len(other.st.Locations()); got != 4 {
		t.Errorf("locations = %d, want 4", got)
	}

	if _, err := other.run(t, "", "backup", "--format=xml"); err == nil {
		t.Error("unknown format should fail")
	}
}

func TestStats(t *testing.T) {
	env := newEnv(t)
	env.add(t, "Alpha", "loc-1", 1, "10:00", "11:00")
	env.add(t, "Beta", "loc-1", 1, "10:30", "11:30")
	env.add(t, "Gamma", "loc-2", 2, "10:00", "10:45")

	out := env.mustRun(t, "stats")
	assertContains(t, out, "Festival 2026", "2 sessions", "2 overlapping", "Total: 3 sessions across 3 locations (2h 45m)")
}

func TestLayout(t *testing.T) {
	env := newEnv(t)
	env.add(t, "Alpha", "loc-1", 1, "10:00", "11:00")
	env.add(t, "Beta", "loc-1", 1, "10:30", "11:30")

	out := env.mustRun(t, "layout", "--day=1", "--zoom=60")
	assertContains(t, out, "Tag 1", "60 min", "Hauptbühne", "10:00", "[1/2] Alpha")

	out = env.mustRun(t, "layout", "--day=1", "--columns")
	assertContains(t, out, "col 1/2", "col 2/2", "width  50.0%", "(empty)")

	out = env.mustRun(t, "layout", "--day=1", "--gaps")
	assertContains(t, out, "07:00-10:00", "11:30-18:00", "07:00-18:00")

	if _, err := env.run(t, "", "layout", "--zoom=45"); err == nil {
		t.Error("unsupported zoom should fail")
	}
}

func TestLayoutKeepsDaysApart(t *testing.T) {
	env := newEnv(t)
	env.add(t, "Opening", "loc-1", 1, "10:00", "11:00")
	env.add(t, "Encore", "loc-1", 2, "10:00", "11:00")

	out := env.mustRun(t, "layout", "--day=1", "--columns")
	assertContains(t, out, "col 1/1", "Opening")
	if strings.Contains(out, "Encore") || strings.Contains(out, "/2") {
		t.Errorf("day 2 leaked into day 1 layout:\n%s", out)
	}

	out = env.mustRun(t, "layout", "--day=2", "--zoom=60")
	assertContains(t, out, "Encore")
	if strings.Contains(out, "Opening") {
		t.Errorf("day 1 leaked into day 2 grid:\n%s", out)
	}
}

func TestRenderLayout(t *testing.T) {
	sessions := []session.Session{
		{ID: "a", Day: 1, LocationID: "loc-1", StartTime: "09:00", EndTime: "10:30", Title: "Alpha"},
		{ID: "b", Day: 1, LocationID: "loc-1", StartTime: "09:00", EndTime: "09:30", Title: "Beta"},
	}
	slots := []string{"09:00", "09:30", "10:00", "10:30"}

	out := renderLayout(sessions, session.DefaultLocations(), slots, 30, 120)
	assertContains(t, out, "[1/2] Alpha", "[2/2] Beta", "┆", "Experience Area")

	if cell := layoutCell(sessions, "loc-1", "10:30", 30, 20); cell != "" {
		t.Errorf("cell after the session ends = %q", cell)
	}
	if cell := layoutCell(sessions, "loc-1", "10:00", 30, 20); cell != "┆" {
		t.Errorf("continuation cell = %q", cell)
	}
}

func TestPlanAccept(t *testing.T) {
	env := newEnv(t)
	env.client = &scriptedClient{replies: []string{
		`{"sessions":[{"title":"Panel","day":2,"location":"Hauptbühne","start_time":"10:00","end_time":"11:00","format":"Panel"}],"warnings":["Day 2 starts late"]}`,
	}}

	out, err := env.run(t, "a\n", "plan", "a", "panel", "on", "day", "2")
	if err != nil {
		t.Fatal(err)
	}
	assertContains(t, out, "Drafting sessions...", "Day 2 starts late", "Tag 2", "10:00-11:00", "Panel", "1 sessions added to the program")

	day2 := session.ForDay(env.st.Sessions(), 2)
	if len(day2) != 1 || day2[0].LocationID != "loc-1" || day2[0].Language != "DE" {
		t.Errorf("day 2 = %+v", day2)
	}
}

func TestPlanDryRun(t *testing.T) {
	env := newEnv(t)
	env.client = &scriptedClient{replies: []string{
		`{"sessions":[{"title":"Panel","day":1,"location":"loc-2","start_time":"10:00","end_time":"11:00"}]}`,
	}}

	out := env.mustRun(t, "plan", "--dry-run", "a panel")
	assertContains(t, out, "(Dry run - sessions not saved)")
	if got := len(env.st.Sessions()); got != 0 {
		t.Errorf("sessions = %d, want 0", got)
	}
}

func TestPlanModifyThenCancel(t *testing.T) {
	env := newEnv(t)
	client := &scriptedClient{replies: []string{
		`{"sessions":[{"title":"Long Talk","day":1,"location":"loc-1","start_time":"10:00","end_time":"12:00"}]}`,
		`{"sessions":[{"title":"Short Talk","day":1,"location":"loc-1","start_time":"10:00","end_time":"10:30"}]}`,
	}}
	env.client = client

	out, err := env.run(t, "x\nm\nmake it shorter\nc\n", "plan", "a talk")
	if err != nil {
		t.Fatal(err)
	}
	assertContains(t, out, "Invalid choice", "Redrafting...", "Short Talk", "Draft cancelled.")
	if client.calls != 2 {
		t.Errorf("LLM calls = %d, want 2", client.calls)
	}
	if got := len(env.st.Sessions()); got != 0 {
		t.Errorf("sessions = %d, want 0", got)
	}
}

func TestPlanInvalidDraftCannotBeSaved(t *testing.T) {
	env := newEnv(t)
	env.client = &scriptedClient{replies: []string{
		`{"sessions":[{"title":"Lost","day":1,"location":"Nowhere","start_time":"10:00","end_time":"11:00"}]}`,
	}}

	out, err := env.run(t, "a\nc\n", "plan", "--retries=0", "something")
	if err != nil {
		t.Fatal(err)
	}
	assertContains(t, out, "Validation errors", "'Nowhere' is not a known location", "Cannot save", "Draft cancelled.")
	if got := len(env.st.Sessions()); got != 0 {
		t.Errorf("sessions = %d, want 0", got)
	}
}

func TestPlanClientError(t *testing.T) {
	env := newEnv(t)
	_, err := env.run(t, "", "plan", "anything")
	if err == nil || !strings.Contains(err.Error(), "no api key") {
		t.Errorf("error = %v", err)
	}
}

func TestReview(t *testing.T) {
	env := newEnv(t)
	env.client = &scriptedClient{replies: []string{"THEME: Opening day\n\nNEXT:\n➜  Add a break after the keynote"}}

	out := env.mustRun(t, "review")
	assertContains(t, out, "No sessions to review.")

	env.add(t, "Keynote", "loc-1", 1, "10:00", "11:00")
	out = env.mustRun(t, "review")
	assertContains(t, out, "=== Tag 1 (Do. 11.06.2026) ===", "THEME: Opening day", "  NEXT", "Add a break after the keynote")
	if strings.Contains(out, "Tag 2") {
		t.Error("days without sessions should be skipped")
	}

	if _, err := env.run(t, "", "review", "--day=2"); err == nil {
		t.Error("reviewing an empty day should fail")
	}
}

func TestConfigCommand(t *testing.T) {
	env := newEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")

	out, err := env.run(t, "n\n", "config", "--file", path)
	if err != nil {
		t.Fatal(err)
	}
	assertContains(t, out, "No config file found", "Created "+path, "name      = Festival 2026", "zoom      = 30")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not created: %v", err)
	}

	// Edit the name and the zoom, keep everything else.
	stdin := "y\nSommerfest\n\n\n\n60\n\n\n\n\n\n"
	out, err = env.run(t, stdin, "config", "--file", path)
	if err != nil {
		t.Fatal(err)
	}
	assertContains(t, out, "Configuration saved!")

	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Festival.Name != "Sommerfest" || cfg.Grid.Zoom != 60 || cfg.Grid.DayStart != "07:00" {
		t.Errorf("saved config = %+v", cfg)
	}
}

func TestConfigCommandRejectsInvalidZoom(t *testing.T) {
	env := newEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")

	stdin := "y\n\n\n\n\n45\n\n\n\n\n\n"
	_, err := env.run(t, stdin, "config", "--file", path)
	if err == nil || !strings.Contains(err.Error(), "invalid config") {
		t.Errorf("error = %v", err)
	}
}
