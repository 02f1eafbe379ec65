package logging

import (
	"regexp"
)

// Stripper removes terminal control sequences from strings before they are
// logged, so a crafted view name cannot repaint the operator's terminal.
type Stripper struct {
	patterns []*regexp.Regexp
}

// NewStripper creates a stripper with the default patterns.
func NewStripper() *Stripper {
	return &Stripper{patterns: defaultPatterns()}
}

func defaultPatterns() []*regexp.Regexp {
	patterns := []string{
		// CSI sequences: colors, cursor movement, mouse modes
		`\x1b\[[0-9;?]*[ -/]*[@-~]`,
		// OSC sequences: titles, hyperlinks, clipboard writes
		`\x1b\][^\x07\x1b]*(\x07|\x1b\\)`,
		// Remaining two-byte escapes
		`\x1b[@-Z\\-_]`,
		// C0 controls other than tab and newline
		`[\x00-\x08\x0b-\x1f\x7f]`,
	}

	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		compiled = append(compiled, regexp.MustCompile(p))
	}
	return compiled
}

// Strip removes control sequences from input.
func (s *Stripper) Strip(input string) string {
	result := input
	for _, pattern := range s.patterns {
		result = pattern.ReplaceAllString(result, "")
	}
	return result
}

// AddPattern adds a custom pattern.
func (s *Stripper) AddPattern(pattern string) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return err
	}
	s.patterns = append(s.patterns, re)
	return nil
}
