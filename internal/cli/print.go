package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/aretw0/arbor/internal/presentation/tui"
	"github.com/aretw0/arbor/pkg/domain"
)

// PrintRecord writes a finished run record to w. In JSON mode the record is
// emitted verbatim for scripting; otherwise a short status summary is printed
// and any markdown the tasks produced is rendered for the terminal.
func PrintRecord(w io.Writer, record domain.RunRecord, jsonMode bool) error {
	if jsonMode {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(record)
	}

	fmt.Fprintf(w, "Run %s (%s): %s\n", record.ID, record.Flow, record.Status)
	if record.Error != "" {
		fmt.Fprintf(w, "Error: %s\n", record.Error)
	}

	render := tui.NewRenderer()
	for _, node := range sortedNodeIDs(record.Results) {
		output := record.Results[node]
		if path, ok := output["markdown_path"].(string); ok {
			fmt.Fprintf(w, "  %s -> %s\n", node, path)
		}
		markdown, ok := output["markdown"].(string)
		if !ok {
			continue
		}
		rendered, err := render(markdown)
		if err != nil {
			// Fall back to the raw markdown on renderer trouble.
			rendered = markdown
		}
		fmt.Fprint(w, rendered)
	}
	return nil
}

func sortedNodeIDs(results domain.Results) []string {
	ids := make([]string, 0, len(results))
	for id := range results {
		ids = append(ids, id)
	}
	sort.Strings(ids) // Stable output for scripting and tests.
	return ids
}
