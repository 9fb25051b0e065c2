// Package hook implements chaperone's hook entry points: payload decoding,
// tool dispatch, and the per-hook runners. Runners never fail; malformed
// input or an unreadable source degrades to an advisory Report.
package hook

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/chaperonehq/chaperone/internal/logger"
)

// Input represents the JSON event payload from Claude Code.
//
// See: https://docs.anthropic.com/en/docs/claude-code/hooks
type Input struct {
	SessionID      string        `json:"session_id"`
	TranscriptPath string        `json:"transcript_path"`
	Cwd            string        `json:"cwd"`
	HookEventName  string        `json:"hook_event_name"`
	ToolName       string        `json:"tool_name"`
	ToolInput      ToolInputData `json:"tool_input"`
	ToolResponse   FlexText      `json:"tool_response"`
	ToolUseID      string        `json:"tool_use_id"`
}

// ToolInputData contains the tool parameters relevant to chaperone's hooks.
type ToolInputData struct {
	FilePath     string `json:"file_path,omitempty"`
	SubagentType string `json:"subagent_type,omitempty"`
	Prompt       string `json:"prompt,omitempty"`
	Description  string `json:"description,omitempty"`
}

// FlexText is a string field that also accepts the structured tool_response
// shape ({"content": [{"type": "text", "text": ...}]}). Anything else is
// kept as its raw JSON text.
type FlexText string

func (t *FlexText) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*t = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = FlexText(s)
		return nil
	}

	var structured struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(data, &structured); err == nil && len(structured.Content) > 0 {
		parts := make([]string, 0, len(structured.Content))
		for _, c := range structured.Content {
			if c.Text != "" {
				parts = append(parts, c.Text)
			}
		}
		if len(parts) > 0 {
			*t = FlexText(strings.Join(parts, "\n"))
			return nil
		}
	}

	*t = FlexText(trimmed)
	return nil
}

// Agent returns the subagent type from the payload, defaulting to "unknown".
func (in Input) Agent() string {
	if in.ToolInput.SubagentType == "" {
		return "unknown"
	}
	return in.ToolInput.SubagentType
}

// Decode reads one event payload from r. Malformed or absent JSON is treated
// as an empty payload, never an error.
func Decode(r io.Reader) Input {
	data, err := io.ReadAll(r)
	if err != nil {
		logger.Debug("failed to read hook input", "error", err)
		return Input{}
	}

	var in Input
	if err := json.Unmarshal(data, &in); err != nil {
		logger.Debug("malformed hook input treated as empty", "error", err)
		return Input{}
	}
	return in
}
