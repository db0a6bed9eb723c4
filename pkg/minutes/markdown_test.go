package minutes_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/arbor/pkg/minutes"
)

func TestRenderStandup(t *testing.T) {
	doc := minutes.StandupDoc{
		Type:      "standup",
		Date:      "2026-08-24",
		Attendees: []string{"dana", "lee"},
		Yesterday: []string{"shipped importer"},
		Today:     []string{"review queue"},
		Blockers:  []string{"waiting on staging"},
		Decisions: []string{"freeze friday"},
	}

	want := `# Stand-up — 2026-08-24

## Attendees
- dana
- lee

## Yesterday
- shipped importer

## Today
- review queue

## Blockers
- waiting on staging

## Decisions
- freeze friday`

	assert.Equal(t, want, minutes.RenderStandup(doc))
}

func TestRenderStandupEmptySections(t *testing.T) {
	got := minutes.RenderStandup(minutes.StandupDoc{Date: "2026-08-24"})

	// Empty sections keep their headings but carry no bullets.
	assert.Contains(t, got, "## Blockers\n\n## Decisions")
}

func TestRenderBrainstorm(t *testing.T) {
	doc := minutes.BrainstormDoc{
		Topic: "onboarding",
		Owner: "dana",
		Ideas: []string{"wizard", "video"},
		Top3:  []string{"wizard", "video", "docs"},
		Decision: minutes.DecisionMemo{
			Problem: "drop-off at signup",
			Option:  "wizard",
			Why:     "cheapest to test",
		},
	}

	want := `# Brainstorm — onboarding

**Facilitator:** dana

## Idea Map
- wizard
- video

## Top-3 Concepts
1. wizard
2. video
3. docs

## Decision Memo
- Problem: drop-off at signup
- Option chosen: wizard
- Why now: cheapest to test`

	assert.Equal(t, want, minutes.RenderBrainstorm(doc))
}

func TestRenderBrainstormWithoutDecision(t *testing.T) {
	got := minutes.RenderBrainstorm(minutes.BrainstormDoc{Topic: "t"})

	assert.Contains(t, got, "## Decision Memo")
	assert.NotContains(t, got, "- Problem:")
}

func TestRenderAllHands(t *testing.T) {
	doc := minutes.AllHandsDoc{
		Week:    "2026-W34",
		Metrics: map[string]string{"nps": "41", "arr": "1.2M"},
		Updates: map[string]string{"platform": "on track"},
		Risks:   []string{"hiring"},
		Lessons: []string{"demo earlier"},
	}

	want := `# All-Hands — 2026-W34

## Metrics
- arr: 1.2M
- nps: 41

## Updates by Workstream
- platform: on track

## Risks & Mitigations
- hiring

## Lessons Learned
- demo earlier`

	// Map-backed sections render in sorted key order.
	assert.Equal(t, want, minutes.RenderAllHands(doc))
}
