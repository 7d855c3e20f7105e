package git

import (
	"strconv"
	"strings"

	"github.com/go-git/go-git/v5/plumbing"

	gitkiterrors "gitkit.dev/gitkit/internal/errors"
)

// Output formats requested from git. Parsers in this package depend on them.
const (
	branchListFormat = "--format=%(HEAD) %(refname:lstrip=2) %(objectname)"
	tagListFormat    = "--format=%(refname:lstrip=2)%09%(if)%(*objectname)%(then)%(*objectname)%09%(contents:subject)%(else)%(objectname)%(end)"
	showCommitFormat = "--format=%H%n%P%n%an <%ae>%n%aI%n%B"
	logFormat        = "--format=%H%x09%P%x09%an <%ae>%x09%aI%x09%s"
)

// CommitOptions contains options for creating a commit
type CommitOptions struct {
	Message string
	All     bool // stage modified and deleted tracked files first (--all)
	Amend   bool
}

// LogOptions narrows a log query
type LogOptions struct {
	// Branch, when set, excludes commits already reachable from that branch
	Branch *string
	// Limit caps the number of entries; zero means no limit
	Limit int
	// Path, when set, only includes commits touching that path
	Path *string
}

// InitArgs builds `git init`
func InitArgs() []string {
	return []string{"init"}
}

// AddArgs builds `git add` for a single pathspec
func AddArgs(path string) ([]string, error) {
	if err := validatePath("add", "path", path); err != nil {
		return nil, err
	}
	return []string{"add", "--", path}, nil
}

// CommitArgs builds `git commit`. The message is always passed as one token.
func CommitArgs(opts CommitOptions) ([]string, error) {
	if strings.ContainsRune(opts.Message, 0) {
		return nil, gitkiterrors.NewInvalidArgumentError("commit", "message", "contains a NUL byte")
	}

	args := []string{"commit"}
	if opts.All {
		args = append(args, "--all")
	}
	if opts.Amend {
		args = append(args, "--amend")
	}
	args = append(args, "-m", opts.Message)
	return args, nil
}

// StatusArgs builds `git status --porcelain`
func StatusArgs() []string {
	return []string{"status", "--porcelain"}
}

// BranchCreateArgs builds `git branch <name> [<startPoint>]`
func BranchCreateArgs(name string, startPoint *string) ([]string, error) {
	if err := validateBranchName("branch-create", name); err != nil {
		return nil, err
	}
	args := []string{"branch", name}
	if startPoint != nil {
		if err := validateRef("branch-create", "start point", *startPoint); err != nil {
			return nil, err
		}
		args = append(args, *startPoint)
	}
	return args, nil
}

// BranchDeleteArgs builds `git branch -d|-D <name>`
func BranchDeleteArgs(name string, force bool) ([]string, error) {
	if err := validateBranchName("branch-delete", name); err != nil {
		return nil, err
	}
	flag := "-d"
	if force {
		flag = "-D"
	}
	return []string{"branch", flag, name}, nil
}

// BranchListArgs builds the branch listing parsed by ParseBranches
func BranchListArgs() []string {
	return []string{"branch", "--list", "--no-color", branchListFormat}
}

// TagCreateArgs builds `git tag`. A non-nil message creates an annotated tag,
// even when the message is empty.
func TagCreateArgs(name string, startPoint, message *string) ([]string, error) {
	if err := validateTagName("tag-create", name); err != nil {
		return nil, err
	}
	args := []string{"tag"}
	if message != nil {
		if strings.ContainsRune(*message, 0) {
			return nil, gitkiterrors.NewInvalidArgumentError("tag-create", "message", "contains a NUL byte")
		}
		args = append(args, "-a", "-m", *message)
	}
	args = append(args, name)
	if startPoint != nil {
		if err := validateRef("tag-create", "start point", *startPoint); err != nil {
			return nil, err
		}
		args = append(args, *startPoint)
	}
	return args, nil
}

// TagDeleteArgs builds `git tag -d <name>`
func TagDeleteArgs(name string) ([]string, error) {
	if err := validateTagName("tag-delete", name); err != nil {
		return nil, err
	}
	return []string{"tag", "-d", name}, nil
}

// TagListArgs builds the tag listing parsed by ParseTags
func TagListArgs() []string {
	return []string{"tag", "--list", tagListFormat}
}

// CheckoutArgs builds `git checkout <ref>`
func CheckoutArgs(ref string) ([]string, error) {
	if err := validateRef("checkout", "ref", ref); err != nil {
		return nil, err
	}
	return []string{"checkout", ref}, nil
}

// LsTreeArgs builds `git ls-tree` listing the tree at path within ref
func LsTreeArgs(ref, path string) ([]string, error) {
	if err := validateRef("ls-tree", "ref", ref); err != nil {
		return nil, err
	}
	path = cleanTreePath(path)
	if strings.ContainsRune(path, 0) {
		return nil, gitkiterrors.NewInvalidArgumentError("ls-tree", "path", "contains a NUL byte")
	}
	treeish := ref
	if path != "" {
		treeish = ref + ":" + path
	}
	return []string{"ls-tree", treeish}, nil
}

// LsTreeEntryArgs builds `git ls-tree <ref> -- <path>` for a single entry
func LsTreeEntryArgs(ref, path string) ([]string, error) {
	if err := validateRef("ls-tree", "ref", ref); err != nil {
		return nil, err
	}
	path = cleanTreePath(path)
	if err := validatePath("ls-tree", "path", path); err != nil {
		return nil, err
	}
	return []string{"ls-tree", ref, "--", path}, nil
}

// ShowCommitArgs builds the `git show` invocation parsed by ParseCommit.
// Tags are peeled so annotated tag headers never reach the parser.
func ShowCommitArgs(ref string) ([]string, error) {
	if err := validateRef("show", "ref", ref); err != nil {
		return nil, err
	}
	return []string{"show", "--no-patch", "--no-color", showCommitFormat, ref + "^{commit}"}, nil
}

// DiffArgs builds the per-commit patch invocation parsed by ParseDiff
func DiffArgs(commit string, path *string) ([]string, error) {
	if err := validateRef("diff", "commit", commit); err != nil {
		return nil, err
	}
	args := []string{"diff-tree", "-p", "-r", "--root", "--no-commit-id", "--no-color", "--no-ext-diff", commit}
	if path != nil {
		if err := validatePath("diff", "path", *path); err != nil {
			return nil, err
		}
		args = append(args, "--", *path)
	}
	return args, nil
}

// LogArgs builds the `git log` invocation parsed by ParseLog
func LogArgs(ref string, opts LogOptions) ([]string, error) {
	if err := validateRef("log", "ref", ref); err != nil {
		return nil, err
	}
	if opts.Limit < 0 {
		return nil, gitkiterrors.NewInvalidArgumentError("log", "limit", "must not be negative")
	}

	args := []string{"log", "--no-color", logFormat}
	if opts.Limit > 0 {
		args = append(args, "-n", strconv.Itoa(opts.Limit))
	}
	args = append(args, ref)
	if opts.Branch != nil {
		if err := validateRef("log", "branch", *opts.Branch); err != nil {
			return nil, err
		}
		args = append(args, "^"+*opts.Branch)
	}
	if opts.Path != nil {
		if err := validatePath("log", "path", *opts.Path); err != nil {
			return nil, err
		}
		args = append(args, "--", *opts.Path)
	}
	return args, nil
}

// validateRef rejects refs that git would read as an option or that cannot
// be passed through exec at all
func validateRef(op, param, ref string) error {
	switch {
	case ref == "":
		return gitkiterrors.NewInvalidArgumentError(op, param, "must not be empty")
	case strings.HasPrefix(ref, "-"):
		return gitkiterrors.NewInvalidArgumentError(op, param, "must not start with '-'")
	case strings.ContainsAny(ref, "\x00\n"):
		return gitkiterrors.NewInvalidArgumentError(op, param, "contains a control character")
	}
	return nil
}

func validateBranchName(op, name string) error {
	if err := validateRef(op, "branch name", name); err != nil {
		return err
	}
	if err := plumbing.NewBranchReferenceName(name).Validate(); err != nil {
		return gitkiterrors.NewInvalidArgumentError(op, "branch name", err.Error())
	}
	return nil
}

func validateTagName(op, name string) error {
	if err := validateRef(op, "tag name", name); err != nil {
		return err
	}
	if err := plumbing.NewTagReferenceName(name).Validate(); err != nil {
		return gitkiterrors.NewInvalidArgumentError(op, "tag name", err.Error())
	}
	return nil
}

func validatePath(op, param, path string) error {
	if path == "" {
		return gitkiterrors.NewInvalidArgumentError(op, param, "must not be empty")
	}
	if strings.ContainsRune(path, 0) {
		return gitkiterrors.NewInvalidArgumentError(op, param, "contains a NUL byte")
	}
	return nil
}

func cleanTreePath(path string) string {
	path = strings.TrimPrefix(path, "./")
	path = strings.TrimSuffix(path, "/")
	if path == "." {
		return ""
	}
	return path
}
