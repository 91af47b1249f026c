// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package assemble

import (
	"regexp"
	"strings"
)

// boilerplatePattern matches navigation and promotional markers that appear
// as standalone words in scraped page snippets. Matching is case-sensitive.
var boilerplatePattern = regexp.MustCompile(`\b(Share|Popular|Deep Dive|Advertise|About|Help|Stay connected|Subscribe)\b`)

// newlineRuns matches any run of carriage returns and line feeds.
var newlineRuns = regexp.MustCompile(`[\r\n]+`)

// copyrightPrefixes mark footer lines. "Â©" is © decoded as Latin-1.
var copyrightPrefixes = []string{"©", "Â©"}

// CleanContent strips boilerplate and copyright lines from text, collapses
// newline runs to a single newline and trims the result. If cleaning faults
// for any reason the original text is returned unchanged.
func CleanContent(text string) (cleaned string) {
	defer func() {
		if r := recover(); r != nil {
			cleaned = text
		}
	}()

	normalized := newlineRuns.ReplaceAllString(text, "\n")

	var kept []string
	for _, line := range strings.Split(normalized, "\n") {
		if isBoilerplate(line) {
			continue
		}
		kept = append(kept, line)
	}

	return strings.TrimSpace(strings.Join(kept, "\n"))
}

func isBoilerplate(line string) bool {
	if boilerplatePattern.MatchString(line) {
		return true
	}
	trimmed := strings.TrimSpace(line)
	for _, prefix := range copyrightPrefixes {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}
	return false
}
