package hook

import (
	"strings"
	"testing"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantTool  string
		wantAgent string
	}{
		{
			name:      "task payload",
			input:     `{"tool_name":"Task","tool_input":{"subagent_type":"code-quality-reviewer","prompt":"review it"}}`,
			wantTool:  "Task",
			wantAgent: "code-quality-reviewer",
		},
		{
			name:      "edit payload",
			input:     `{"tool_name":"Edit","tool_input":{"file_path":"/tmp/app.js"}}`,
			wantTool:  "Edit",
			wantAgent: "unknown",
		},
		{
			name:      "malformed json",
			input:     `not json at all`,
			wantTool:  "",
			wantAgent: "unknown",
		},
		{
			name:      "empty input",
			input:     ``,
			wantTool:  "",
			wantAgent: "unknown",
		},
		{
			name:      "empty object",
			input:     `{}`,
			wantTool:  "",
			wantAgent: "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := Decode(strings.NewReader(tt.input))
			if in.ToolName != tt.wantTool {
				t.Errorf("ToolName = %q, want %q", in.ToolName, tt.wantTool)
			}
			if in.Agent() != tt.wantAgent {
				t.Errorf("Agent() = %q, want %q", in.Agent(), tt.wantAgent)
			}
		})
	}
}

func TestFlexText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "string response",
			input:    `{"tool_response":"all done"}`,
			expected: "all done",
		},
		{
			name:     "structured response",
			input:    `{"tool_response":{"content":[{"type":"text","text":"first"},{"type":"text","text":"second"}]}}`,
			expected: "first\nsecond",
		},
		{
			name:     "null response",
			input:    `{"tool_response":null}`,
			expected: "",
		},
		{
			name:     "unrecognized object kept as raw json",
			input:    `{"tool_response":{"status":"ok"}}`,
			expected: `{"status":"ok"}`,
		},
		{
			name:     "absent response",
			input:    `{}`,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := Decode(strings.NewReader(tt.input))
			if got := string(in.ToolResponse); got != tt.expected {
				t.Errorf("ToolResponse = %q, want %q", got, tt.expected)
			}
		})
	}
}
