package hook

// ToolKind is a closed classification of the tool names chaperone reacts to.
// Free-form tool names map onto it with an explicit Other default so dispatch
// stays exhaustive.
type ToolKind int

const (
	KindOther ToolKind = iota
	KindTask
	KindEdit
	KindWrite
	KindMultiEdit
)

// KindOf classifies a tool_name string.
func KindOf(name string) ToolKind {
	switch name {
	case "Task":
		return KindTask
	case "Edit":
		return KindEdit
	case "Write":
		return KindWrite
	case "MultiEdit":
		return KindMultiEdit
	default:
		return KindOther
	}
}

func (k ToolKind) String() string {
	switch k {
	case KindTask:
		return "Task"
	case KindEdit:
		return "Edit"
	case KindWrite:
		return "Write"
	case KindMultiEdit:
		return "MultiEdit"
	default:
		return "Other"
	}
}

// ModifiesFile reports whether the tool writes file content, i.e. whether
// the file validator applies to it.
func (k ToolKind) ModifiesFile() bool {
	switch k {
	case KindEdit, KindWrite, KindMultiEdit:
		return true
	default:
		return false
	}
}
