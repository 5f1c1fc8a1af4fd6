package llm

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
)

const draftPromptFull = `You are a program planner for the festival "%s".

Festival days:
%s
Grid hours: %s to %s (every session must start and end inside these hours)
Locations (use these names exactly):
%s
Session formats: %s
Languages: %s

%s

Rules:
1. Use the day number from the list above in "day".
2. Use 24-hour time format (HH:MM) for start_time and end_time.
3. end_time must be after start_time on the same day.
4. Round times to 5-minute steps.
5. Avoid placing two sessions at the same location at the same time unless the request asks for parallel sessions.
6. If a location is not named in the request, pick the one that fits the format best (keynotes on the main stage, workshops in workshop rooms).
7. Keep speakers as a comma-separated string.
8. Add a warning for anything you could not place or had to guess.

Respond ONLY with valid JSON (no markdown, no explanation):
{
  "sessions": [
    {
      "title": "string",
      "day": 1,
      "location": "location name",
      "start_time": "HH:MM",
      "end_time": "HH:MM",
      "format": "string",
      "speakers": "string",
      "language": "string",
      "description": "string"
    }
  ],
  "warnings": ["string"]
}`

const draftPromptCompact = `You plan sessions for "%s". Return JSON only.

Days: %s
Hours: %s to %s
Locations: %s

%s

Rules:
- Return JSON only (no markdown).
- day is a number from Days, location is a name from Locations.
- start_time and end_time are HH:MM (24-hour) and end_time is after start_time.
- "warnings" must be an array of strings.

JSON schema:
{
  "sessions": [
    {"title": "string", "day": 1, "location": "string", "start_time": "HH:MM", "end_time": "HH:MM", "format": "string", "speakers": "string", "language": "string"}
  ],
  "warnings": ["string"]
}`

// DayContext names a festival day for the prompt.
type DayContext struct {
	Number int
	Label  string // e.g. "Tag 1 (Do. 11.06.2026)"
}

// ExistingSession is a session already in the program, given as context.
type ExistingSession struct {
	Day      int
	Location string
	Start    string // HH:MM
	End      string // HH:MM
	Title    string
}

// DraftRequest contains the input for drafting sessions.
type DraftRequest struct {
	Input            string
	FestivalName     string
	Days             []DayContext
	DayStart         string
	DayEnd           string
	Locations        []string
	Formats          []string
	Languages        []string
	Existing         []ExistingSession
	UseCompactPrompt bool
}

// DraftResponse contains the parsed LLM response.
type DraftResponse struct {
	Sessions []DraftedSession `json:"sessions"`
	Warnings []string         `json:"warnings"`
}

// DraftedSession is a session proposed by the LLM. Location is a name, not an id.
type DraftedSession struct {
	Title       string `json:"title"`
	Day         int    `json:"day"`
	Location    string `json:"location"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Format      string `json:"format,omitempty"`
	Speakers    string `json:"speakers,omitempty"`
	Language    string `json:"language,omitempty"`
	Description string `json:"description,omitempty"`
}

// BuildDraftMessages creates the conversation that starts a drafting request:
// the system prompt with the festival context and the user's request.
func BuildDraftMessages(req DraftRequest) []Message {
	existing := formatExisting(req.Existing)

	var prompt string
	if req.UseCompactPrompt {
		days := make([]string, 0, len(req.Days))
		for _, d := range req.Days {
			days = append(days, fmt.Sprintf("%d=%s", d.Number, d.Label))
		}
		prompt = fmt.Sprintf(draftPromptCompact,
			req.FestivalName,
			strings.Join(days, ", "),
			req.DayStart,
			req.DayEnd,
			strings.Join(req.Locations, ", "),
			existing,
		)
	} else {
		var days strings.Builder
		for _, d := range req.Days {
			fmt.Fprintf(&days, "- %d: %s\n", d.Number, d.Label)
		}
		var locs strings.Builder
		for _, l := range req.Locations {
			fmt.Fprintf(&locs, "- %s\n", l)
		}
		prompt = fmt.Sprintf(draftPromptFull,
			req.FestivalName,
			days.String(),
			req.DayStart,
			req.DayEnd,
			locs.String(),
			strings.Join(req.Formats, ", "),
			strings.Join(req.Languages, ", "),
			existing,
		)
	}

	return []Message{
		{Role: RoleSystem, Content: prompt},
		{Role: RoleUser, Content: req.Input},
	}
}

func formatExisting(sessions []ExistingSession) string {
	if len(sessions) == 0 {
		return "Existing sessions: None"
	}

	sorted := slices.Clone(sessions)
	slices.SortFunc(sorted, func(a, b ExistingSession) int {
		return cmp.Or(
			cmp.Compare(a.Day, b.Day),
			cmp.Compare(a.Location, b.Location),
			cmp.Compare(a.Start, b.Start),
			cmp.Compare(a.Title, b.Title),
		)
	})

	var sb strings.Builder
	sb.WriteString("Existing sessions (already in the program):\n")
	for _, s := range sorted {
		fmt.Fprintf(&sb, "- Day %d %s %s-%s: %s\n", s.Day, s.Location, s.Start, s.End, s.Title)
	}
	return sb.String()
}

// DraftWithMessages asks the model for sessions using a prepared conversation.
// Retry loops append the previous answer and the validation errors to it.
func DraftWithMessages(ctx context.Context, client Client, messages []Message) (*DraftResponse, error) {
	var resp DraftResponse
	if err := client.ChatJSON(ctx, messages, &resp); err != nil {
		return nil, fmt.Errorf("getting draft from LLM: %w", err)
	}
	return &resp, nil
}
