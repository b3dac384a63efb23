package types

import (
	"encoding/json"
	"fmt"
)

// Priority ranges 0 (most urgent) through 4 (least urgent).
type Priority int

const (
	PriorityCritical Priority = 0
	PriorityHigh     Priority = 1
	PriorityMedium   Priority = 2
	PriorityLow      Priority = 3
	PriorityBacklog  Priority = 4
)

func (p Priority) IsValid() bool {
	return p >= PriorityCritical && p <= PriorityBacklog
}

func (p Priority) Display() string {
	return fmt.Sprintf("P%d", int(p))
}

func (p Priority) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(p))
}

func (p *Priority) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid priority: %w", err)
	}
	*p = Priority(n)
	return nil
}
