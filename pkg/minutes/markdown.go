package minutes

import (
	"fmt"
	"sort"
	"strings"
)

// RenderStandup renders a stand-up document as markdown.
func RenderStandup(m StandupDoc) string {
	lines := []string{fmt.Sprintf("# Stand-up — %s", m.Date), "", "## Attendees"}
	lines = append(lines, bullets(m.Attendees)...)
	lines = append(lines, "", "## Yesterday")
	lines = append(lines, bullets(m.Yesterday)...)
	lines = append(lines, "", "## Today")
	lines = append(lines, bullets(m.Today)...)
	lines = append(lines, "", "## Blockers")
	lines = append(lines, bullets(m.Blockers)...)
	lines = append(lines, "", "## Decisions")
	lines = append(lines, bullets(m.Decisions)...)
	return strings.Join(lines, "\n")
}

// RenderBrainstorm renders a brainstorm document as markdown.
func RenderBrainstorm(d BrainstormDoc) string {
	lines := []string{
		fmt.Sprintf("# Brainstorm — %s", d.Topic),
		"",
		fmt.Sprintf("**Facilitator:** %s", d.Owner),
		"",
		"## Idea Map",
	}
	lines = append(lines, bullets(d.Ideas)...)
	lines = append(lines, "", "## Top-3 Concepts")
	for i, c := range d.Top3 {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, c))
	}
	lines = append(lines, "", "## Decision Memo")
	if d.Decision != (DecisionMemo{}) {
		lines = append(lines,
			fmt.Sprintf("- Problem: %s", d.Decision.Problem),
			fmt.Sprintf("- Option chosen: %s", d.Decision.Option),
			fmt.Sprintf("- Why now: %s", d.Decision.Why),
		)
	}
	return strings.Join(lines, "\n")
}

// RenderAllHands renders an all-hands document as markdown.
func RenderAllHands(d AllHandsDoc) string {
	lines := []string{fmt.Sprintf("# All-Hands — %s", d.Week), "", "## Metrics"}
	lines = append(lines, keyValues(d.Metrics)...)
	lines = append(lines, "", "## Updates by Workstream")
	lines = append(lines, keyValues(d.Updates)...)
	lines = append(lines, "", "## Risks & Mitigations")
	lines = append(lines, bullets(d.Risks)...)
	lines = append(lines, "", "## Lessons Learned")
	lines = append(lines, bullets(d.Lessons)...)
	return strings.Join(lines, "\n")
}

func bullets(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, "- "+item)
	}
	return out
}

// keyValues renders a map as sorted "- key: value" bullets. Sorted so the
// same document always produces the same markdown.
func keyValues(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, fmt.Sprintf("- %s: %s", k, m[k]))
	}
	return out
}
