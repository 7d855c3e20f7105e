package git

import (
	"context"
	"errors"
	"fmt"
)

// checkoutScope is a temporary switch to another ref. release must be
// called on every path once acquireCheckout has succeeded.
type checkoutScope struct {
	repo     *Repository
	original string
	target   string
}

// acquireCheckout records the current branch and checks out target.
// The caller must hold the repository lock.
func (r *Repository) acquireCheckout(ctx context.Context, target string) (*checkoutScope, error) {
	current, err := r.mainBranch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to record current branch: %w", err)
	}
	if err := r.checkout(ctx, target); err != nil {
		return nil, err
	}
	r.logger.Debug("temporary checkout", "from", current.Name, "to", target)
	return &checkoutScope{repo: r, original: current.Name, target: target}, nil
}

// release checks the original branch out again and joins any restore
// failure with opErr
func (s *checkoutScope) release(ctx context.Context, opErr error) error {
	// The restore must run even when the operation was cancelled.
	restoreCtx := context.WithoutCancel(ctx)
	if err := s.repo.checkout(restoreCtx, s.original); err != nil {
		s.repo.logger.Debug("failed to restore branch", "branch", s.original, "error", err)
		return errors.Join(opErr, fmt.Errorf("failed to restore branch %s: %w", s.original, err))
	}
	return opErr
}
