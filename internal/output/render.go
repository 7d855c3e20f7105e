package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"gitkit.dev/gitkit/internal/git"
)

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Renderer prints git entities as styled text, JSON or YAML
type Renderer struct {
	w      io.Writer
	format string
	styles Styles
}

// NewRenderer creates a renderer writing to w. colorMode is "auto", "always" or "never".
func NewRenderer(w io.Writer, format, colorMode string) *Renderer {
	if format == "" {
		format = FormatText
	}
	return &Renderer{
		w:      w,
		format: format,
		styles: NewStyles(w, UseColor(w, colorMode)),
	}
}

// Format returns the output format
func (r *Renderer) Format() string {
	return r.format
}

// Writer returns the destination writer
func (r *Renderer) Writer() io.Writer {
	return r.w
}

// Render prints v in the configured format
func (r *Renderer) Render(v any) error {
	switch r.format {
	case FormatJSON:
		enc := json.NewEncoder(r.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(r.w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case FormatText:
		_, err := io.WriteString(r.w, r.Text(v))
		return err
	default:
		return fmt.Errorf("unknown output format %q", r.format)
	}
}

// Text returns the human readable form of v
func (r *Renderer) Text(v any) string {
	var b strings.Builder
	switch v := v.(type) {
	case []git.Branch:
		for _, branch := range v {
			r.writeBranch(&b, branch)
		}
	case git.Branch:
		r.writeBranch(&b, v)
	case []git.Tag:
		for _, tag := range v {
			r.writeTag(&b, tag)
		}
	case git.Tag:
		r.writeTag(&b, v)
	case git.Commit:
		r.writeCommit(&b, v)
	case git.Log:
		for _, e := range v.Entries {
			fmt.Fprintf(&b, "%s %s %s\n",
				r.styles.Hash.Render(shortHash(e.Hash)),
				e.Subject,
				r.styles.Dim.Render(fmt.Sprintf("(%s, %s)", e.Author, e.Date.Format("2006-01-02"))))
		}
	case *git.Tree:
		for _, e := range v.Entries() {
			r.writeTreeEntry(&b, e)
		}
	case git.TreeEntry:
		r.writeTreeEntry(&b, v)
	case git.Diff:
		for _, chunk := range v.Chunks {
			r.writeChunk(&b, chunk)
		}
	case []git.StatusEntry:
		for _, e := range v {
			style := r.styles.Added
			if e.IsUntracked() || e.Index == ' ' {
				style = r.styles.Untracked
			}
			path := e.Path
			if e.OrigPath != "" {
				path = e.OrigPath + " -> " + e.Path
			}
			fmt.Fprintf(&b, "%s %s\n", style.Render(e.Code()), path)
		}
	case []string:
		for _, line := range v {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	case string:
		b.WriteString(v)
		if v != "" && !strings.HasSuffix(v, "\n") {
			b.WriteByte('\n')
		}
	default:
		fmt.Fprintf(&b, "%v\n", v)
	}
	return b.String()
}

func (r *Renderer) writeBranch(b *strings.Builder, branch git.Branch) {
	if branch.IsCurrent {
		fmt.Fprintf(b, "* %s", r.styles.Current.Render(branch.Name))
	} else {
		fmt.Fprintf(b, "  %s", r.styles.Branch.Render(branch.Name))
	}
	if branch.Commit != "" {
		fmt.Fprintf(b, " %s", r.styles.Hash.Render(shortHash(branch.Commit)))
	}
	b.WriteByte('\n')
}

func (r *Renderer) writeTag(b *strings.Builder, tag git.Tag) {
	b.WriteString(r.styles.Tag.Render(tag.Name))
	if tag.Target != "" {
		fmt.Fprintf(b, " %s", r.styles.Hash.Render(shortHash(tag.Target)))
	}
	if tag.Message != nil {
		subject, _, _ := strings.Cut(*tag.Message, "\n")
		fmt.Fprintf(b, " %s", r.styles.Dim.Render(subject))
	}
	b.WriteByte('\n')
}

func (r *Renderer) writeCommit(b *strings.Builder, c git.Commit) {
	fmt.Fprintf(b, "%s %s\n", r.styles.Dim.Render("commit"), r.styles.Hash.Render(c.Hash))
	if len(c.Parents) > 1 {
		short := make([]string, len(c.Parents))
		for i, p := range c.Parents {
			short[i] = shortHash(p)
		}
		fmt.Fprintf(b, "Merge: %s\n", strings.Join(short, " "))
	}
	fmt.Fprintf(b, "Author: %s\n", c.Author)
	fmt.Fprintf(b, "Date:   %s\n\n", c.Date.Format("Mon Jan 2 15:04:05 2006 -0700"))
	for _, line := range strings.Split(strings.TrimRight(c.Message, "\n"), "\n") {
		fmt.Fprintf(b, "    %s\n", line)
	}
}

func (r *Renderer) writeTreeEntry(b *strings.Builder, e git.TreeEntry) {
	path := e.Path
	if e.IsDir() {
		path = r.styles.Branch.Render(path + "/")
	}
	fmt.Fprintf(b, "%s %s %s\t%s\n", e.Mode.String(), e.Type, r.styles.Hash.Render(e.Hash), path)
}

func (r *Renderer) writeChunk(b *strings.Builder, chunk git.DiffChunk) {
	header := string(chunk.Kind) + " " + chunk.Path
	if chunk.OldPath != "" && chunk.OldPath != chunk.Path {
		header = fmt.Sprintf("%s %s -> %s", chunk.Kind, chunk.OldPath, chunk.Path)
	}
	b.WriteString(r.styles.FileHead.Render(header))
	b.WriteByte('\n')
	if chunk.Binary {
		b.WriteString(r.styles.Dim.Render("Binary files differ"))
		b.WriteByte('\n')
		return
	}
	for _, hunk := range chunk.Hunks {
		for _, line := range strings.Split(strings.TrimRight(hunk.Content, "\n"), "\n") {
			switch {
			case strings.HasPrefix(line, "@@"):
				line = r.styles.HunkHead.Render(line)
			case strings.HasPrefix(line, "+"):
				line = r.styles.Added.Render(line)
			case strings.HasPrefix(line, "-"):
				line = r.styles.Removed.Render(line)
			}
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
}

func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}
