// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-08-24
// Last Modified: 2026-08-29

package relay

import (
	"context"
	"log/slog"
	"time"

	"github.com/anybox/anyrepo/internal/remote"
)

// Per-remote statuses reported in the response. A remote starts at the
// kind-specific skipped status and is only promoted to done when an
// action actually executed.
const (
	StatusDone           = "done"
	StatusIssuesSkipped  = "issues skipped"
	StatusCommentSkipped = "issue comment skipped"
	StatusError          = "error"
)

// DefaultRemoteTimeout bounds one remote's reconciliation pass when no
// timeout is configured.
const DefaultRemoteTimeout = 30 * time.Second

// Status is one remote's outcome.
type Status struct {
	Status string `json:"status"`
}

// Result maps remote name to outcome and is rendered as the hook
// response body.
type Result map[string]Status

// Engine replays normalized events against candidate remotes. One
// remote's failure never aborts the others: errors are logged with the
// remote's identity and downgraded to an error status for that remote
// alone.
type Engine struct {
	resolver *Resolver
	logger   *slog.Logger
	timeout  time.Duration
}

// NewEngine creates an engine over the configured remotes. A zero
// timeout falls back to DefaultRemoteTimeout.
func NewEngine(remotes []remote.Client, logger *slog.Logger, timeout time.Duration) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = DefaultRemoteTimeout
	}
	return &Engine{
		resolver: NewResolver(remotes),
		logger:   logger,
		timeout:  timeout,
	}
}

// Relay reconciles the event against every candidate remote in turn
// and aggregates the per-remote statuses.
func (e *Engine) Relay(ctx context.Context, ev *Event) Result {
	result := Result{}
	for _, rc := range e.resolver.Candidates(ev.SourceHost) {
		rctx, cancel := context.WithTimeout(ctx, e.timeout)
		status, err := e.relayOne(rctx, rc, ev)
		cancel()

		if err != nil {
			e.logger.Error("reconciliation failed",
				"remote", rc.Name(),
				"kind", string(ev.Kind),
				"action", ev.Action,
				"err", err)
			result[rc.Name()] = Status{Status: StatusError}
			continue
		}
		if status == StatusDone {
			e.logger.Info("reconciled",
				"remote", rc.Name(),
				"kind", string(ev.Kind),
				"action", ev.Action)
		}
		result[rc.Name()] = Status{Status: status}
	}
	return result
}

// relayOne runs the decision table for a single remote.
func (e *Engine) relayOne(ctx context.Context, rc remote.Client, ev *Event) (string, error) {
	skipped := StatusIssuesSkipped
	if ev.Kind == KindComment {
		skipped = StatusCommentSkipped
	}

	project, err := rc.ProjectFromName(ctx, ev.RepoName)
	if err != nil {
		return "", err
	}
	if project == nil {
		return skipped, nil
	}

	issue, err := project.IssueFromTitle(ctx, ev.IssueTitle)
	if err != nil {
		return "", err
	}

	switch ev.Kind {
	case KindComment:
		return e.relayComment(ctx, issue, ev, skipped)
	default:
		return e.relayIssue(ctx, project, issue, ev, skipped)
	}
}

func (e *Engine) relayIssue(ctx context.Context, project remote.Project, issue remote.Issue, ev *Event, skipped string) (string, error) {
	switch {
	case ev.Action == ActionOpened && issue == nil:
		if _, err := project.CreateIssue(ctx, ev.IssueTitle, ev.IssueBody); err != nil {
			return "", err
		}
		return StatusDone, nil

	case ev.Action == ActionOpened && issue != nil && ev.ReopenOnOpen:
		// The origin provider reuses opened for reopen, so an existing
		// mirror must be moved back to the opened state.
		if err := issue.SetState(ctx, remote.StateOpened); err != nil {
			return "", err
		}
		return StatusDone, nil

	case ev.Action == ActionReopened && issue != nil:
		if err := issue.SetState(ctx, remote.StateOpened); err != nil {
			return "", err
		}
		return StatusDone, nil

	case ev.Action == ActionClosed && issue != nil:
		if err := issue.SetState(ctx, remote.StateClosed); err != nil {
			return "", err
		}
		return StatusDone, nil
	}

	return skipped, nil
}

func (e *Engine) relayComment(ctx context.Context, issue remote.Issue, ev *Event, skipped string) (string, error) {
	if issue == nil {
		return skipped, nil
	}

	comment, err := issue.CommentFromBody(ctx, ev.CommentMatch)
	if err != nil {
		return "", err
	}

	switch {
	case ev.Action == ActionCreated && comment == nil:
		if _, err := issue.CreateComment(ctx, ev.CommentBody); err != nil {
			return "", err
		}
		return StatusDone, nil

	case ev.Action == ActionEdited && comment != nil:
		if err := comment.SetBody(ctx, ev.CommentBody); err != nil {
			return "", err
		}
		return StatusDone, nil

	case ev.Action == ActionDeleted && comment != nil:
		if err := comment.Delete(ctx); err != nil {
			return "", err
		}
		return StatusDone, nil
	}

	return skipped, nil
}
