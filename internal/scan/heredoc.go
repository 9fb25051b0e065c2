package scan

import (
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// lineRange is an inclusive range of 1-based line numbers.
type lineRange struct {
	start, end int
}

// quotedHeredocLines parses a shell script and returns the line ranges of
// heredoc bodies whose delimiter is quoted. Quoted heredocs perform no shell
// expansion, so their content is literal data rather than script text.
// Returns nil if the script does not parse.
func quotedHeredocLines(src string) []lineRange {
	parser := syntax.NewParser()
	prog, err := parser.Parse(strings.NewReader(src), "")
	if err != nil {
		return nil
	}

	var ranges []lineRange
	syntax.Walk(prog, func(node syntax.Node) bool {
		redir, ok := node.(*syntax.Redirect)
		if !ok {
			return true
		}
		if redir.Op != syntax.Hdoc && redir.Op != syntax.DashHdoc {
			return true
		}
		if redir.Word == nil || len(redir.Word.Parts) == 0 {
			return true
		}

		quoted := false
		for _, part := range redir.Word.Parts {
			switch part.(type) {
			case *syntax.SglQuoted, *syntax.DblQuoted:
				quoted = true
			}
		}
		if quoted && redir.Hdoc != nil {
			start := int(redir.Hdoc.Pos().Line())
			end := int(redir.Hdoc.End().Line())
			if start <= end {
				ranges = append(ranges, lineRange{start: start, end: end})
			}
		}
		return true
	})
	return ranges
}

// suppressHeredocFindings drops findings whose line falls inside a quoted
// heredoc body. If src has no quoted heredocs the findings pass through
// unchanged.
func suppressHeredocFindings(src string, findings []Finding) []Finding {
	ranges := quotedHeredocLines(src)
	if len(ranges) == 0 {
		return findings
	}

	kept := findings[:0]
	for _, f := range findings {
		literal := false
		for _, r := range ranges {
			if f.Line >= r.start && f.Line <= r.end {
				literal = true
				break
			}
		}
		if !literal {
			kept = append(kept, f)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	return kept
}
