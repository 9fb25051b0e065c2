package scan

import (
	"reflect"
	"testing"
)

func TestScanFileHeredocSuppression(t *testing.T) {
	rules := []Rule{
		MustCompileRule(`TODO:`, "TODO marker"),
		MustCompileRule(`debugger;?`, "debugger statement"),
	}

	tests := []struct {
		name     string
		path     string
		content  string
		expected []Finding
	}{
		{
			name: "quoted heredoc content is literal",
			path: "gen.sh",
			content: `cat > notes.md << 'EOF'
TODO: document the rollout
EOF
echo done`,
			expected: nil,
		},
		{
			name: "unquoted heredoc is still scanned",
			path: "gen.sh",
			content: `cat > notes.md << EOF
TODO: document the rollout
EOF`,
			expected: []Finding{
				{Line: 2, Text: "TODO:", Label: "TODO marker"},
			},
		},
		{
			name: "finding outside the heredoc survives",
			path: "gen.sh",
			content: `# TODO: split this script
cat > notes.md << 'EOF'
TODO: inner is literal
EOF`,
			expected: []Finding{
				{Line: 1, Text: "TODO:", Label: "TODO marker"},
			},
		},
		{
			name:    "non-shell files keep heredoc-looking matches",
			path:    "build.js",
			content: "run(`cat << 'EOF'`);\n// TODO: port to make",
			expected: []Finding{
				{Line: 2, Text: "TODO:", Label: "TODO marker"},
			},
		},
		{
			name:    "unparseable shell falls back to plain scan",
			path:    "broken.sh",
			content: "if then fi TODO: broken",
			expected: []Finding{
				{Line: 1, Text: "TODO:", Label: "TODO marker"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScanFile(tt.path, tt.content, rules)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("ScanFile() = %+v, want %+v", got, tt.expected)
			}
		})
	}
}

func TestQuotedHeredocLines(t *testing.T) {
	src := `cat << 'ONE'
a
b
ONE
cat << TWO
c
TWO`
	ranges := quotedHeredocLines(src)
	if len(ranges) != 1 {
		t.Fatalf("expected 1 quoted heredoc range, got %d", len(ranges))
	}
	if ranges[0].start > 2 || ranges[0].end < 3 {
		t.Errorf("range %+v does not cover heredoc body lines 2-3", ranges[0])
	}
}
