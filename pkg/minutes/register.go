package minutes

import (
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/ports"
	"github.com/aretw0/arbor/pkg/registry"
)

// Kind names for the minutes tasks.
const (
	KindStandup    = "minutes.standup"
	KindBrainstorm = "minutes.brainstorm"
	KindAllHands   = "minutes.allhands"
)

// Register wires the minutes task kinds into a registry, all writing through
// the same artifact store. The tasks take no `with:` configuration; they read
// everything from the run context.
func Register(r *registry.Registry, store ports.ArtifactStore) {
	r.Register(KindStandup, func(config map[string]any) (domain.Task, error) {
		return NewStandup(store), nil
	})
	r.Register(KindBrainstorm, func(config map[string]any) (domain.Task, error) {
		return NewBrainstorm(store), nil
	})
	r.Register(KindAllHands, func(config map[string]any) (domain.Task, error) {
		return NewAllHands(store), nil
	})
}

// MeetingCycle returns the built-in flow chaining the three documents:
// brainstorm feeds standup feeds allhands, each reading its upstream output
// from the shared run context.
func MeetingCycle() domain.FlowSpec {
	return domain.FlowSpec{
		ID:          "meeting-cycle",
		Title:       "Meeting Cycle",
		Description: "Brainstorm, stand-up and all-hands minutes produced in one dependency-ordered run.",
		Nodes: []domain.NodeSpec{
			{ID: "brainstorm", Task: KindBrainstorm},
			{ID: "standup", Task: KindStandup, DependsOn: []string{"brainstorm"}},
			{ID: "allhands", Task: KindAllHands, DependsOn: []string{"standup"}},
		},
	}
}
