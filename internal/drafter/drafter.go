// Package drafter turns a natural language request into festival sessions.
// It coordinates the LLM, the validator and the program store and keeps the
// conversation so a draft can be refined. Both CLI and TUI use it.
package drafter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/javiermolinar/festplan/internal/config"
	"github.com/javiermolinar/festplan/internal/llm"
	"github.com/javiermolinar/festplan/internal/session"
)

// DefaultMaxRetries is the number of correction rounds after the first attempt.
const DefaultMaxRetries = 2

// ErrNoConversation is returned by Continue before any draft was made.
var ErrNoConversation = errors.New("no active drafting session")

// ErrInvalidDraft is returned by Save for a draft that still has errors.
var ErrInvalidDraft = errors.New("cannot save: draft has validation errors")

// Program is the part of the store the drafter reads and writes.
type Program interface {
	Sessions() []session.Session
	Locations() []session.Location
	AddSessions(batch []session.Session) ([]session.Session, error)
}

// Drafter drafts sessions with an LLM and saves accepted drafts.
type Drafter struct {
	client  llm.Client
	cfg     *config.Config
	program Program

	messages     []llm.Message
	lastResponse *llm.DraftResponse
}

// New creates a Drafter.
func New(client llm.Client, cfg *config.Config, program Program) *Drafter {
	return &Drafter{client: client, cfg: cfg, program: program}
}

// Result is a validated draft ready to show to the user.
type Result struct {
	Sessions []llm.DraftedSession
	Warnings []string // from the LLM
	Clashes  []string // overlaps at one location, allowed but worth a look

	// Populated when retries are exhausted.
	ValidationErrors []ValidationError
}

// HasValidationErrors returns true if there are unresolved validation errors.
func (r *Result) HasValidationErrors() bool {
	return len(r.ValidationErrors) > 0
}

// ByDay groups the drafted sessions by day and returns the days in order.
func (r *Result) ByDay() (map[int][]llm.DraftedSession, []int) {
	groups := make(map[int][]llm.DraftedSession)
	for _, s := range r.Sessions {
		groups[s.Day] = append(groups[s.Day], s)
	}
	days := make([]int, 0, len(groups))
	for d := range groups {
		days = append(days, d)
	}
	slices.Sort(days)
	return groups, days
}

// DraftWithRetry asks the LLM for sessions and validates the answer. Invalid
// answers are sent back with the errors, up to maxRetries times. When the
// retries run out the last draft is returned with ValidationErrors set.
func (d *Drafter) DraftWithRetry(ctx context.Context, input string, maxRetries int) (*Result, error) {
	d.messages = llm.BuildDraftMessages(d.request(input))
	d.lastResponse = nil
	return d.run(ctx, maxRetries)
}

// Continue adds feedback to the conversation and drafts again.
func (d *Drafter) Continue(ctx context.Context, feedback string, maxRetries int) (*Result, error) {
	if len(d.messages) == 0 {
		return nil, ErrNoConversation
	}
	if d.lastResponse != nil {
		d.appendAssistant(d.lastResponse)
	}
	d.messages = append(d.messages, llm.Message{Role: llm.RoleUser, Content: feedback})
	return d.run(ctx, maxRetries)
}

func (d *Drafter) run(ctx context.Context, maxRetries int) (*Result, error) {
	validator := NewValidator(
		d.cfg.DayNumbers(),
		d.cfg.Grid.DayStart,
		d.cfg.Grid.DayEnd,
		d.program.Locations(),
		d.program.Sessions(),
	)

	var last ValidationResult
	for attempt := 0; attempt <= maxRetries; attempt++ {
		resp, err := llm.DraftWithMessages(ctx, d.client, d.messages)
		if err != nil {
			return nil, fmt.Errorf("LLM drafting (attempt %d): %w", attempt+1, err)
		}
		d.lastResponse = resp

		last = validator.Validate(resp.Sessions)
		if last.Valid {
			return buildResult(resp, last, nil), nil
		}

		if attempt < maxRetries {
			d.appendAssistant(resp)
			d.messages = append(d.messages, llm.Message{Role: llm.RoleUser, Content: last.FormatErrors()})
		}
	}
	return buildResult(d.lastResponse, last, last.Errors), nil
}

// Save adds the drafted sessions to the program. Location names are resolved
// to ids; ids are generated.
func (d *Drafter) Save(_ context.Context, result *Result) ([]session.Session, error) {
	if result.HasValidationErrors() {
		return nil, ErrInvalidDraft
	}
	sessions, err := ToSessions(result.Sessions, d.program.Locations())
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return nil, nil
	}
	return d.program.AddSessions(sessions)
}

// ToSessions converts drafted sessions into program sessions.
func ToSessions(drafted []llm.DraftedSession, locations []session.Location) ([]session.Session, error) {
	out := make([]session.Session, 0, len(drafted))
	for _, ds := range drafted {
		loc, ok := session.ResolveLocation(locations, ds.Location)
		if !ok {
			return nil, fmt.Errorf("%w: %s", session.ErrUnknownLocation, ds.Location)
		}
		lang := ds.Language
		if lang == "" {
			lang = session.DefaultLanguage
		}
		out = append(out, session.Session{
			ID:          session.NewSessionID(),
			Day:         ds.Day,
			LocationID:  loc.ID,
			StartTime:   ds.StartTime,
			EndTime:     ds.EndTime,
			Title:       ds.Title,
			Speakers:    ds.Speakers,
			Format:      ds.Format,
			Description: ds.Description,
			Language:    lang,
		})
	}
	return out, nil
}

func (d *Drafter) request(input string) llm.DraftRequest {
	locations := d.program.Locations()
	names := make([]string, len(locations))
	for i, l := range locations {
		names[i] = l.Name
	}

	days := make([]llm.DayContext, 0, len(d.cfg.Festival.Days))
	for _, day := range d.cfg.Festival.Days {
		days = append(days, llm.DayContext{Number: day.Number, Label: d.cfg.DayLabel(day.Number)})
	}

	existing := make([]llm.ExistingSession, 0)
	for _, s := range d.program.Sessions() {
		existing = append(existing, llm.ExistingSession{
			Day:      s.Day,
			Location: session.LocationName(locations, s.LocationID),
			Start:    s.StartTime,
			End:      s.EndTime,
			Title:    s.Title,
		})
	}

	return llm.DraftRequest{
		Input:            input,
		FestivalName:     d.cfg.Festival.Name,
		Days:             days,
		DayStart:         d.cfg.Grid.DayStart,
		DayEnd:           d.cfg.Grid.DayEnd,
		Locations:        names,
		Formats:          session.Formats,
		Languages:        session.Languages,
		Existing:         existing,
		UseCompactPrompt: llm.UsesCompactPrompt(d.cfg.LLM.Provider),
	}
}

func (d *Drafter) appendAssistant(resp *llm.DraftResponse) {
	data, _ := json.Marshal(resp)
	d.messages = append(d.messages, llm.Message{Role: llm.RoleAssistant, Content: string(data)})
}

func buildResult(resp *llm.DraftResponse, v ValidationResult, errs []ValidationError) *Result {
	return &Result{
		Sessions:         resp.Sessions,
		Warnings:         resp.Warnings,
		Clashes:          v.Clashes,
		ValidationErrors: errs,
	}
}
