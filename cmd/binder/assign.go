package main

import (
	"encoding/json"
	"fmt"
	"strings"
)

type assignment struct {
	name  string
	value any
}

// assignments implements flag.Value for repeated -set flags.
type assignments []assignment

func (a *assignments) String() string {
	if a == nil {
		return ""
	}
	parts := make([]string, 0, len(*a))
	for _, item := range *a {
		parts = append(parts, fmt.Sprintf("%s=%v", item.name, item.value))
	}
	return strings.Join(parts, ",")
}

func (a *assignments) Set(raw string) error {
	item, err := parseAssignment(raw)
	if err != nil {
		return err
	}
	*a = append(*a, item)
	return nil
}

func parseAssignment(raw string) (assignment, error) {
	name, value, ok := strings.Cut(raw, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return assignment{}, fmt.Errorf("expected name=value, got %q", raw)
	}
	return assignment{name: name, value: parseValue(value)}, nil
}

// parseValue decodes JSON literals and falls back to the raw string.
func parseValue(raw string) any {
	var decoded any
	if err := json.Unmarshal([]byte(raw), &decoded); err == nil {
		return decoded
	}
	return raw
}
