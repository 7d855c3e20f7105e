package git

import (
	"strings"
	"time"

	gitkiterrors "gitkit.dev/gitkit/internal/errors"
)

// logFields is the number of tab separated fields in logFormat
const logFields = 5

// LogEntry is a commit summary as listed by `git log`
type LogEntry struct {
	Hash    string    `json:"hash" yaml:"hash"`
	Parents []string  `json:"parents,omitempty" yaml:"parents,omitempty"`
	Author  string    `json:"author" yaml:"author"`
	Date    time.Time `json:"date" yaml:"date"`
	Subject string    `json:"subject" yaml:"subject"`
}

// Log is the history of a ref in the order git emitted it (newest first)
type Log struct {
	Ref     string     `json:"ref" yaml:"ref"`
	Branch  *string    `json:"branch,omitempty" yaml:"branch,omitempty"`
	Entries []LogEntry `json:"entries" yaml:"entries"`
}

// Len returns the number of entries
func (l Log) Len() int {
	return len(l.Entries)
}

// ParseLog parses the output of LogArgs
func ParseLog(ref string, branch *string, lines []string) (Log, error) {
	log := Log{Ref: ref, Branch: branch, Entries: make([]LogEntry, 0, len(lines))}
	for i, line := range lines {
		if line == "" {
			continue
		}

		fields := strings.SplitN(line, "\t", logFields)
		if len(fields) != logFields {
			return Log{}, gitkiterrors.NewParseError("log", i+1, line, "expected hash, parents, author, date and subject")
		}
		if !IsHash(fields[0]) {
			return Log{}, gitkiterrors.NewParseError("log", i+1, line, "not an object hash")
		}
		parents, err := parseParents("log", i+1, fields[1])
		if err != nil {
			return Log{}, err
		}
		date, err := time.Parse(time.RFC3339, fields[3])
		if err != nil {
			return Log{}, gitkiterrors.NewParseError("log", i+1, line, "date is not RFC 3339")
		}

		log.Entries = append(log.Entries, LogEntry{
			Hash:    fields[0],
			Parents: parents,
			Author:  fields[2],
			Date:    date,
			Subject: fields[4],
		})
	}
	return log, nil
}
