// Package scan implements line-oriented forbidden-pattern scanning for
// chaperone. It knows nothing about hook payloads or configuration files;
// callers hand it text and a compiled rule list and get findings back.
package scan

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Rule pairs a compiled regular expression with a human-readable label.
type Rule struct {
	re    *regexp.Regexp
	Label string
}

// CompileRule compiles pattern into a Rule. Matching is case-insensitive,
// mirroring the behavior the rule tables were written against.
func CompileRule(pattern, label string) (Rule, error) {
	re, err := regexp.Compile(`(?i)` + pattern)
	if err != nil {
		return Rule{}, err
	}
	return Rule{re: re, Label: label}, nil
}

// MustCompileRule is like CompileRule but panics on an invalid pattern.
// Intended for test fixtures and embedded defaults.
func MustCompileRule(pattern, label string) Rule {
	r, err := CompileRule(pattern, label)
	if err != nil {
		panic(err)
	}
	return r
}

// Pattern returns the source pattern without the case-insensitivity prefix.
func (r Rule) Pattern() string {
	return strings.TrimPrefix(r.re.String(), `(?i)`)
}

// Matches reports whether the rule matches anywhere in text.
func (r Rule) Matches(text string) bool {
	return r.re.MatchString(text)
}

// Finding is one reported match of a rule against a specific line.
type Finding struct {
	Line  int    // 1-based line number
	Text  string // the matched substring, trimmed
	Label string // the rule's label
}

// Result carries the outcome of one scan. Degraded distinguishes "the scan
// ran and found nothing" from "the scan could not run at all"; the two are
// otherwise indistinguishable to callers that only look at Findings.
type Result struct {
	Findings   []Finding
	Degraded   bool
	Diagnostic string
}

// Clean reports a completed scan with zero findings.
func (r Result) Clean() bool {
	return !r.Degraded && len(r.Findings) == 0
}

// Degrade returns a Result marking the scan as not run, with a diagnostic.
func Degrade(diagnostic string) Result {
	return Result{Degraded: true, Diagnostic: diagnostic}
}

// Scan checks every line of text against every rule. Each rule reports at
// most one finding per line (the first match); a line that trips several
// rules yields several findings. Blank lines are skipped. Output order is
// deterministic: by line, then by rule order.
func Scan(text string, rules []Rule) []Finding {
	if text == "" {
		return nil
	}

	var findings []Finding
	for i, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		for _, rule := range rules {
			m := rule.re.FindString(line)
			if m == "" {
				continue
			}
			findings = append(findings, Finding{
				Line:  i + 1,
				Text:  strings.TrimSpace(m),
				Label: rule.Label,
			})
		}
	}
	return findings
}

// codeExtensions is the default set of extensions treated as code files.
var codeExtensions = map[string]bool{
	".js": true, ".jsx": true, ".ts": true, ".tsx": true,
	".py": true, ".go": true, ".rs": true, ".java": true,
	".c": true, ".cpp": true, ".h": true, ".hpp": true,
	".php": true, ".rb": true, ".swift": true, ".kt": true,
	".sh": true, ".bash": true,
}

// IsCodeFile reports whether path has a recognized code-file extension.
// Paths outside the set are skipped without inspecting content.
func IsCodeFile(path string, extensions map[string]bool) bool {
	if extensions == nil {
		extensions = codeExtensions
	}
	ext := strings.ToLower(filepath.Ext(path))
	return extensions[ext]
}

// DefaultExtensions returns a copy of the built-in code extension set.
func DefaultExtensions() map[string]bool {
	out := make(map[string]bool, len(codeExtensions))
	for k, v := range codeExtensions {
		out[k] = v
	}
	return out
}

// ScanFile scans file content, applying shell-specific suppression for
// shell scripts: matches inside quoted heredocs are literal text (generated
// docs routinely contain markers like "TODO:") and are not reported.
func ScanFile(path, content string, rules []Rule) []Finding {
	findings := Scan(content, rules)
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".sh" && ext != ".bash" {
		return findings
	}
	return suppressHeredocFindings(content, findings)
}
