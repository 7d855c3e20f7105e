package git

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	gitkiterrors "gitkit.dev/gitkit/internal/errors"
)

// DefaultRef is used by lookups that take an optional ref
const DefaultRef = "HEAD"

// DefaultStagePath stages the whole working tree
const DefaultStagePath = "."

// Repository runs git operations against a single working directory.
// Operations on the same absolute path are serialized across all
// Repository values in the process.
type Repository struct {
	path    string
	invoker Invoker
	primary string
	logger  *slog.Logger
	mu      *sync.Mutex
}

// Option configures a Repository
type Option func(*Repository)

// WithInvoker replaces the process invoker
func WithInvoker(invoker Invoker) Option {
	return func(r *Repository) {
		r.invoker = invoker
	}
}

// WithPrimaryBranch sets the branch that sorts first in Branches
func WithPrimaryBranch(name string) Option {
	return func(r *Repository) {
		if name != "" {
			r.primary = name
		}
	}
}

// WithLogger sets the logger used for facade and runner debug output
func WithLogger(logger *slog.Logger) Option {
	return func(r *Repository) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// CommitParams are the optional parts of Repository.Commit
type CommitParams struct {
	// StageAll stages modified and deleted tracked files before committing
	StageAll bool
	// Amend replaces the tip commit
	Amend bool
	// Ref, when set, commits on that ref and then returns to the current branch
	Ref *string
}

// Open returns a Repository for the directory at path. The directory does
// not have to be a git repository yet; see Init.
func Open(path string, opts ...Option) (*Repository, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, gitkiterrors.NewInvalidRepositoryPathError(path, err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return nil, gitkiterrors.NewInvalidRepositoryPathError(absPath, err)
	}
	if !info.IsDir() {
		return nil, gitkiterrors.NewInvalidRepositoryPathError(absPath, fmt.Errorf("not a directory"))
	}

	r := &Repository{
		path:    absPath,
		primary: DefaultPrimaryBranch,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		mu:      lockFor(absPath),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.invoker == nil {
		r.invoker = NewCommandRunner(NewPathLocator(DefaultBinary, DefaultLocatorCacheTTL), WithRunnerLogger(r.logger))
	}
	return r, nil
}

// Path returns the absolute path of the working directory
func (r *Repository) Path() string {
	return r.path
}

// PrimaryBranch returns the branch name sorted first by Branches
func (r *Repository) PrimaryBranch() string {
	return r.primary
}

// run executes argv in the repository directory and returns stdout lines
func (r *Repository) run(ctx context.Context, argv []string) ([]string, error) {
	res, err := r.invoker.Execute(ctx, r.path, argv)
	if err != nil {
		return nil, err
	}
	return res.Stdout, nil
}

// Init creates an empty repository in the working directory
func (r *Repository) Init(ctx context.Context) error {
	unlock := r.lock()
	defer unlock()

	if _, err := r.run(ctx, InitArgs()); err != nil {
		return fmt.Errorf("failed to init repository: %w", err)
	}
	return nil
}

// Stage adds path to the index. An empty path stages everything.
func (r *Repository) Stage(ctx context.Context, path string) error {
	if path == "" {
		path = DefaultStagePath
	}
	args, err := AddArgs(path)
	if err != nil {
		return err
	}

	unlock := r.lock()
	defer unlock()

	if _, err := r.run(ctx, args); err != nil {
		return fmt.Errorf("failed to stage %s: %w", path, err)
	}
	return nil
}

// Commit records a commit. With params.Ref set the ref is checked out first
// and the previously checked-out branch is restored afterwards, whether or
// not the commit succeeded.
func (r *Repository) Commit(ctx context.Context, message string, params CommitParams) (err error) {
	args, err := CommitArgs(CommitOptions{Message: message, All: params.StageAll, Amend: params.Amend})
	if err != nil {
		return err
	}

	unlock := r.lock()
	defer unlock()

	if params.Ref != nil {
		scope, acqErr := r.acquireCheckout(ctx, *params.Ref)
		if acqErr != nil {
			return acqErr
		}
		defer func() {
			err = scope.release(ctx, err)
		}()
	}

	if _, err := r.run(ctx, args); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// Status returns `git status --porcelain` lines with trailing whitespace removed
func (r *Repository) Status(ctx context.Context) ([]string, error) {
	unlock := r.lock()
	defer unlock()

	lines, err := r.run(ctx, StatusArgs())
	if err != nil {
		return nil, fmt.Errorf("failed to get status: %w", err)
	}
	return TrimStatusLines(lines), nil
}

// StatusEntries returns the parsed working tree status
func (r *Repository) StatusEntries(ctx context.Context) ([]StatusEntry, error) {
	lines, err := r.Status(ctx)
	if err != nil {
		return nil, err
	}
	return ParseStatus(lines)
}

// CreateBranch creates a branch at startPoint, or at HEAD when startPoint is nil
func (r *Repository) CreateBranch(ctx context.Context, name string, startPoint *string) error {
	args, err := BranchCreateArgs(name, startPoint)
	if err != nil {
		return err
	}

	unlock := r.lock()
	defer unlock()

	if _, err := r.run(ctx, args); err != nil {
		return fmt.Errorf("failed to create branch %s: %w", name, err)
	}
	return nil
}

// DeleteBranch deletes a fully merged branch
func (r *Repository) DeleteBranch(ctx context.Context, name string) error {
	return r.deleteBranch(ctx, name, false)
}

// ForceDeleteBranch deletes a branch regardless of its merge status
func (r *Repository) ForceDeleteBranch(ctx context.Context, name string) error {
	return r.deleteBranch(ctx, name, true)
}

func (r *Repository) deleteBranch(ctx context.Context, name string, force bool) error {
	args, err := BranchDeleteArgs(name, force)
	if err != nil {
		return err
	}

	unlock := r.lock()
	defer unlock()

	if _, err := r.run(ctx, args); err != nil {
		return fmt.Errorf("failed to delete branch %s: %w", name, err)
	}
	return nil
}

// Branches returns local branches with the primary branch first and all
// others in the order git listed them
func (r *Repository) Branches(ctx context.Context) ([]Branch, error) {
	unlock := r.lock()
	defer unlock()

	branches, err := r.branches(ctx)
	if err != nil {
		return nil, err
	}
	return SortBranches(branches, r.primary), nil
}

func (r *Repository) branches(ctx context.Context) ([]Branch, error) {
	lines, err := r.run(ctx, BranchListArgs())
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}
	return ParseBranches(lines)
}

// MainBranch returns the checked-out branch. Anything other than exactly
// one current branch is an InvariantViolationError.
func (r *Repository) MainBranch(ctx context.Context) (Branch, error) {
	unlock := r.lock()
	defer unlock()

	return r.mainBranch(ctx)
}

func (r *Repository) mainBranch(ctx context.Context) (Branch, error) {
	branches, err := r.branches(ctx)
	if err != nil {
		return Branch{}, err
	}
	return MainBranch(branches)
}

// Branch looks a local branch up by name. A missing branch is not an error.
func (r *Repository) Branch(ctx context.Context, name string) (Branch, bool, error) {
	branches, err := r.Branches(ctx)
	if err != nil {
		return Branch{}, false, err
	}
	branch, found := FindBranch(branches, name)
	return branch, found, nil
}

// CreateTag creates a tag. A non-nil message makes it annotated.
func (r *Repository) CreateTag(ctx context.Context, name string, startPoint, message *string) error {
	args, err := TagCreateArgs(name, startPoint, message)
	if err != nil {
		return err
	}

	unlock := r.lock()
	defer unlock()

	if _, err := r.run(ctx, args); err != nil {
		return fmt.Errorf("failed to create tag %s: %w", name, err)
	}
	return nil
}

// DeleteTag deletes the tag with the given name
func (r *Repository) DeleteTag(ctx context.Context, name string) error {
	args, err := TagDeleteArgs(name)
	if err != nil {
		return err
	}

	unlock := r.lock()
	defer unlock()

	if _, err := r.run(ctx, args); err != nil {
		return fmt.Errorf("failed to delete tag %s: %w", name, err)
	}
	return nil
}

// Tags returns all tags in git's listing order
func (r *Repository) Tags(ctx context.Context) ([]Tag, error) {
	unlock := r.lock()
	defer unlock()

	lines, err := r.run(ctx, TagListArgs())
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return ParseTags(lines)
}

// Tag looks a tag up by name. A missing tag is not an error.
func (r *Repository) Tag(ctx context.Context, name string) (Tag, bool, error) {
	tags, err := r.Tags(ctx)
	if err != nil {
		return Tag{}, false, err
	}
	tag, found := FindTag(tags, name)
	return tag, found, nil
}

// GetCommit returns the commit ref points at. An empty ref means HEAD.
func (r *Repository) GetCommit(ctx context.Context, ref string) (Commit, error) {
	if ref == "" {
		ref = DefaultRef
	}
	args, err := ShowCommitArgs(ref)
	if err != nil {
		return Commit{}, err
	}

	unlock := r.lock()
	defer unlock()

	lines, err := r.run(ctx, args)
	if err != nil {
		return Commit{}, fmt.Errorf("failed to read commit %s: %w", ref, err)
	}
	return ParseCommit(ref, lines)
}

// Log returns the history of ref, newest first
func (r *Repository) Log(ctx context.Context, ref string, opts LogOptions) (Log, error) {
	if ref == "" {
		ref = DefaultRef
	}
	args, err := LogArgs(ref, opts)
	if err != nil {
		return Log{}, err
	}

	unlock := r.lock()
	defer unlock()

	lines, err := r.run(ctx, args)
	if err != nil {
		return Log{}, fmt.Errorf("failed to read log of %s: %w", ref, err)
	}
	return ParseLog(ref, opts.Branch, lines)
}

// Checkout switches the working tree to ref
func (r *Repository) Checkout(ctx context.Context, ref string) error {
	unlock := r.lock()
	defer unlock()

	return r.checkout(ctx, ref)
}

func (r *Repository) checkout(ctx context.Context, ref string) error {
	args, err := CheckoutArgs(ref)
	if err != nil {
		return err
	}
	if _, err := r.run(ctx, args); err != nil {
		return fmt.Errorf("failed to checkout %s: %w", ref, err)
	}
	return nil
}

// Tree lists the tree at path within ref. Defaults are HEAD and the root.
// An empty listing is an empty Tree.
func (r *Repository) Tree(ctx context.Context, ref, path string) (*Tree, error) {
	if ref == "" {
		ref = DefaultRef
	}
	args, err := LsTreeArgs(ref, path)
	if err != nil {
		return nil, err
	}

	unlock := r.lock()
	defer unlock()

	lines, err := r.run(ctx, args)
	if err != nil {
		return nil, fmt.Errorf("failed to list tree %s: %w", ref, err)
	}
	return ParseTree(ref, cleanTreePath(path), lines)
}

// TreeEntry returns the entry for a single path within ref
func (r *Repository) TreeEntry(ctx context.Context, ref, path string) (TreeEntry, error) {
	if ref == "" {
		ref = DefaultRef
	}
	args, err := LsTreeEntryArgs(ref, path)
	if err != nil {
		return TreeEntry{}, err
	}

	unlock := r.lock()
	defer unlock()

	lines, err := r.run(ctx, args)
	if err != nil {
		return TreeEntry{}, fmt.Errorf("failed to look up %s in %s: %w", path, ref, err)
	}
	return ParseTreeEntry(ref, cleanTreePath(path), lines)
}

// CommitDiff returns the patch introduced by commit, optionally limited to path
func (r *Repository) CommitDiff(ctx context.Context, commit string, path *string) (Diff, error) {
	args, err := DiffArgs(commit, path)
	if err != nil {
		return Diff{}, err
	}

	unlock := r.lock()
	defer unlock()

	lines, err := r.run(ctx, args)
	if err != nil {
		return Diff{}, fmt.Errorf("failed to diff %s: %w", commit, err)
	}
	return ParseDiff(commit, path, lines)
}
