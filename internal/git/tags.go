package git

import (
	"strings"

	gitkiterrors "gitkit.dev/gitkit/internal/errors"
)

// Tag is a tag as listed by git. Message is nil for lightweight tags.
type Tag struct {
	Name string `json:"name" yaml:"name"`
	// Message is the subject line of an annotated tag's message; any
	// further lines of the annotation are not included.
	Message *string `json:"message,omitempty" yaml:"message,omitempty"`
	Target  string  `json:"target,omitempty" yaml:"target,omitempty"`
}

// IsAnnotated reports whether the tag carries its own message
func (t Tag) IsAnnotated() bool {
	return t.Message != nil
}

// ParseTags parses tag listing output. Each line has one to three
// tab-separated fields: name, target and annotation subject.
func ParseTags(lines []string) ([]Tag, error) {
	tags := make([]Tag, 0, len(lines))
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.SplitN(line, "\t", 3)
		tag := Tag{Name: fields[0]}
		if tag.Name == "" || strings.ContainsAny(tag.Name, " \t") {
			return nil, gitkiterrors.NewParseError("tag", i+1, line, "missing tag name")
		}
		if len(fields) > 1 {
			tag.Target = fields[1]
			if tag.Target != "" && !IsHash(tag.Target) {
				return nil, gitkiterrors.NewParseError("tag", i+1, line, "target is not an object hash")
			}
		}
		if len(fields) > 2 {
			message := fields[2]
			tag.Message = &message
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// FindTag looks a tag up by name
func FindTag(tags []Tag, name string) (Tag, bool) {
	for _, t := range tags {
		if t.Name == name {
			return t, true
		}
	}
	return Tag{}, false
}
