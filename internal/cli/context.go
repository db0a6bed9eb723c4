package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/aretw0/arbor/pkg/domain"
)

// ParseContext builds the initial run context from the --context and
// --context-file flags. File values load first; the inline JSON overrides
// them key by key.
func ParseContext(inline, file string) (domain.Context, error) {
	out := domain.Context{}

	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read context file: %w", err)
		}
		if err := json.Unmarshal(data, &out); err != nil {
			return nil, fmt.Errorf("failed to parse context file: %w", err)
		}
	}

	if inline != "" {
		overlay := domain.Context{}
		if err := json.Unmarshal([]byte(inline), &overlay); err != nil {
			return nil, fmt.Errorf("invalid --context JSON: %w", err)
		}
		for k, v := range overlay {
			out[k] = v
		}
	}

	return out, nil
}
