package git

import (
	"regexp"
	"strconv"
)

// Hunk represents a single hunk of changes in a diff
type Hunk struct {
	OldStart int    `json:"old_start" yaml:"old_start"` // Line number in old file (1-indexed)
	OldCount int    `json:"old_count" yaml:"old_count"` // Number of lines in old file
	NewStart int    `json:"new_start" yaml:"new_start"` // Line number in new file (1-indexed)
	NewCount int    `json:"new_count" yaml:"new_count"` // Number of lines in new file
	Header   string `json:"header" yaml:"header"`       // The @@ line
	Content  string `json:"content" yaml:"content"`     // The hunk body, header included
}

// Regex to match hunk headers: @@ -old_start,old_count +new_start,new_count @@
// Example: @@ -10,5 +10,6 @@
var hunkHeaderRegex = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@`)

// parseHunkHeader returns the hunk described by an @@ line, or false
func parseHunkHeader(line string) (Hunk, bool) {
	match := hunkHeaderRegex.FindStringSubmatch(line)
	if match == nil {
		return Hunk{}, false
	}
	return Hunk{
		OldStart: atoi(match[1]),
		OldCount: hunkCount(match[2]),
		NewStart: atoi(match[3]),
		NewCount: hunkCount(match[4]),
		Header:   line,
	}, true
}

// hunkCount defaults an omitted count to 1, as unified diff does
func hunkCount(s string) int {
	if s == "" {
		return 1
	}
	return atoi(s)
}

// atoi parses a string matched by \d+
func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
