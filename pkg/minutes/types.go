package minutes

// StandupDoc captures one daily stand-up.
type StandupDoc struct {
	Type      string   `json:"type"`
	Date      string   `json:"date"`
	Attendees []string `json:"attendees"`
	Yesterday []string `json:"yesterday"`
	Today     []string `json:"today"`
	Blockers  []string `json:"blockers"`
	Decisions []string `json:"decisions"`
}

// DecisionMemo records the outcome of a brainstorm session.
type DecisionMemo struct {
	Problem string `json:"problem,omitempty"`
	Option  string `json:"option,omitempty"`
	Why     string `json:"why,omitempty"`
}

// BrainstormDoc captures a brainstorm session.
type BrainstormDoc struct {
	Type     string       `json:"type"`
	Topic    string       `json:"topic"`
	Owner    string       `json:"owner"`
	Ideas    []string     `json:"ideas"`
	Top3     []string     `json:"top3"`
	Decision DecisionMemo `json:"decision"`
}

// AllHandsDoc captures a weekly all-hands.
type AllHandsDoc struct {
	Type    string            `json:"type"`
	Week    string            `json:"week"`
	Metrics map[string]string `json:"metrics"`
	Updates map[string]string `json:"updates"`
	Risks   []string          `json:"risks"`
	Lessons []string          `json:"lessons"`
}
