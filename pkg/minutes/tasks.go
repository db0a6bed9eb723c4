package minutes

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cast"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/ports"
)

// ts produces the timestamp fragment used when a document carries no natural
// name of its own (no date, no week).
func ts() string {
	return time.Now().UTC().Format("20060102-150405")
}

// StandupTask renders and persists daily stand-up minutes. It reads date,
// attendees, yesterday, today, blockers and decisions from the run context,
// coercing tolerantly so JSON-decoded and hand-built contexts both work.
type StandupTask struct {
	store ports.ArtifactStore
}

// NewStandup creates a stand-up task writing through the given store.
func NewStandup(store ports.ArtifactStore) *StandupTask {
	return &StandupTask{store: store}
}

// Execute implements domain.Task.
func (t *StandupTask) Execute(ctx context.Context, rc domain.Context) (map[string]any, error) {
	doc := StandupDoc{
		Type:      "standup",
		Date:      cast.ToString(rc["date"]),
		Attendees: cast.ToStringSlice(rc["attendees"]),
		Yesterday: cast.ToStringSlice(rc["yesterday"]),
		Today:     cast.ToStringSlice(rc["today"]),
		Blockers:  cast.ToStringSlice(rc["blockers"]),
		Decisions: cast.ToStringSlice(rc["decisions"]),
	}

	name := "standup-" + doc.Date
	if doc.Date == "" {
		name = "standup-" + ts()
	}
	return persist(ctx, t.store, name, RenderStandup(doc), doc)
}

// BrainstormTask renders and persists brainstorm minutes from topic, owner,
// ideas, top3 and decision context keys.
type BrainstormTask struct {
	store ports.ArtifactStore
}

// NewBrainstorm creates a brainstorm task writing through the given store.
func NewBrainstorm(store ports.ArtifactStore) *BrainstormTask {
	return &BrainstormTask{store: store}
}

// Execute implements domain.Task.
func (t *BrainstormTask) Execute(ctx context.Context, rc domain.Context) (map[string]any, error) {
	decision := cast.ToStringMapString(rc["decision"])
	doc := BrainstormDoc{
		Type:  "brainstorm",
		Topic: cast.ToString(rc["topic"]),
		Owner: cast.ToString(rc["owner"]),
		Ideas: cast.ToStringSlice(rc["ideas"]),
		Top3:  cast.ToStringSlice(rc["top3"]),
		Decision: DecisionMemo{
			Problem: decision["problem"],
			Option:  decision["option"],
			Why:     decision["why"],
		},
	}

	return persist(ctx, t.store, "brainstorm-"+ts(), RenderBrainstorm(doc), doc)
}

// AllHandsTask renders and persists all-hands minutes from week, metrics,
// updates, risks and lessons context keys.
type AllHandsTask struct {
	store ports.ArtifactStore
}

// NewAllHands creates an all-hands task writing through the given store.
func NewAllHands(store ports.ArtifactStore) *AllHandsTask {
	return &AllHandsTask{store: store}
}

// Execute implements domain.Task.
func (t *AllHandsTask) Execute(ctx context.Context, rc domain.Context) (map[string]any, error) {
	doc := AllHandsDoc{
		Type:    "allhands",
		Week:    cast.ToString(rc["week"]),
		Metrics: cast.ToStringMapString(rc["metrics"]),
		Updates: cast.ToStringMapString(rc["updates"]),
		Risks:   cast.ToStringSlice(rc["risks"]),
		Lessons: cast.ToStringSlice(rc["lessons"]),
	}

	name := "allhands-" + doc.Week
	if doc.Week == "" {
		name = "allhands-" + ts()
	}
	return persist(ctx, t.store, name, RenderAllHands(doc), doc)
}

// persist writes the rendered markdown and the JSON companion, then shapes
// the task output: the document itself, the markdown text and the two
// artifact locations.
func persist(ctx context.Context, store ports.ArtifactStore, name, markdown string, doc any) (map[string]any, error) {
	mdPath, err := store.SaveMarkdown(ctx, name, markdown)
	if err != nil {
		return nil, fmt.Errorf("failed to save markdown for %s: %w", name, err)
	}
	jsonPath, err := store.SaveJSON(ctx, name, doc)
	if err != nil {
		return nil, fmt.Errorf("failed to save json for %s: %w", name, err)
	}
	return map[string]any{
		"minutes":       doc,
		"markdown":      markdown,
		"markdown_path": mdPath,
		"json_path":     jsonPath,
	}, nil
}
