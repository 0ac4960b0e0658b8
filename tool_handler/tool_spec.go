package toolhandler

type ToolSpec struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	InputSchema map[string]any   `json:"input_schema"`
	Examples    []map[string]any `json:"examples,omitempty"`
}

// RequiredArguments lists the schema's "required" entries.
func (s ToolSpec) RequiredArguments() []string {
	var names []string
	switch req := s.InputSchema["required"].(type) {
	case []string:
		names = append(names, req...)
	case []any:
		for _, r := range req {
			if name, ok := r.(string); ok {
				names = append(names, name)
			}
		}
	}
	return names
}
