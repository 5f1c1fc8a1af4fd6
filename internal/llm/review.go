package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/javiermolinar/festplan/internal/session"
)

const reviewerSystemPrompt = `You are a festival program editor. Output ONLY the exact format shown - no markdown, no extra text. Be extremely concise.`

const reviewPromptTemplate = `Review this festival day and output EXACTLY this format (no markdown, no code blocks):

THEME: [ 2-4 word theme ]

⚠️  CLASHES: Sessions at the same location that overlap, with times.
🕳️  GAPS: Longest idle stretch per location inside %s-%s.
🔁 BALANCE: One sentence on format and language mix.

NEXT:
➜  First concrete change to the program.
➜  Second concrete change to the program.

Program for %s:
%s

Rules:
- Use the exact emoji prefixes shown (⚠️, 🕳️, 🔁, ➜)
- Keep each line under 70 characters
- Be specific with times and locations from the data
- If no issue exists for a category, omit that line
- Output plain text only, no markdown formatting`

// ReviewRequest is one festival day handed to the reviewer.
type ReviewRequest struct {
	DayLabel  string
	DayStart  string
	DayEnd    string
	Sessions  []session.Session
	Locations []session.Location
}

// Reviewer asks the LLM for an editorial review of a festival day.
type Reviewer struct {
	client Client
}

// NewReviewer creates a new Reviewer with the given LLM client.
func NewReviewer(client Client) *Reviewer {
	return &Reviewer{client: client}
}

// ReviewDay sends the day's program to the LLM and returns its review text.
func (r *Reviewer) ReviewDay(ctx context.Context, req ReviewRequest) (string, error) {
	if len(req.Sessions) == 0 {
		return "", fmt.Errorf("no sessions on %s to review", req.DayLabel)
	}

	prompt := fmt.Sprintf(reviewPromptTemplate,
		req.DayStart, req.DayEnd, req.DayLabel, formatProgram(req.Sessions, req.Locations))

	return r.client.Chat(ctx, []Message{
		{Role: RoleSystem, Content: reviewerSystemPrompt},
		{Role: RoleUser, Content: prompt},
	})
}

// formatProgram lists sessions grouped by location, one line each:
//
//	Hauptbühne
//	  ⚠ 10:00-11:30  Opening [Keynote, DE]  1h 30m
//
// The marker flags sessions that overlap another one at the same location.
func formatProgram(sessions []session.Session, locations []session.Location) string {
	var sb strings.Builder
	sorted := session.SortByStart(sessions)

	for _, loc := range locations {
		here := session.ForLocation(sorted, loc.ID)
		if len(here) == 0 {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(loc.Name + "\n")

		for _, s := range here {
			marker := "  "
			for _, o := range here {
				if o.ID != s.ID && s.Overlaps(o) {
					marker = "⚠ "
					break
				}
			}

			tags := []string{}
			if s.Format != "" {
				tags = append(tags, s.Format)
			}
			tags = append(tags, s.LanguageOrDefault())

			fmt.Fprintf(&sb, "  %s%s-%s  %s [%s]  %s\n",
				marker,
				s.StartTime,
				s.EndTime,
				s.Title,
				strings.Join(tags, ", "),
				session.FormatDuration(s.Duration()))
		}
	}
	return sb.String()
}
