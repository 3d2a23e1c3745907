package rule

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Parse reads rules from r, one per line. Leading and trailing whitespace is
// stripped, and lines that end up empty are discarded.
func Parse(r io.Reader) ([]Rule, error) {
	s := bufio.NewScanner(r)
	rules := make([]Rule, 0, 16)

	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" {
			continue
		}

		rules = append(rules, Rule{Raw: line})
	}

	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("scan rules: %w", err)
	}

	return rules, nil
}

// ParseString parses rules from string input.
func ParseString(src string) ([]Rule, error) {
	return Parse(strings.NewReader(src))
}

// ParseFile reads rules from the file at path. A missing or unreadable rule
// file is an error; the caller decides whether that aborts the run.
func ParseFile(path string) ([]Rule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open rule file: %w", err)
	}
	defer f.Close()

	rules, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return rules, nil
}
