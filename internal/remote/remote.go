// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-08-24
// Last Modified: 2026-08-29

// Package remote defines the capability contract every configured issue
// tracker must satisfy. The relay core only talks to these interfaces;
// the provider-specific clients live in internal/integrations.
package remote

import "context"

// Issue states understood by the relay. Each implementation maps them
// onto its provider's own vocabulary (GitHub edits the issue state,
// GitLab emits a state event).
const (
	StateOpened = "opened"
	StateClosed = "closed"
)

// Client is one configured remote tracker (a mirror target).
type Client interface {
	// Name is the configured remote name, used as the response key.
	Name() string

	// Host is the remote's hostname, used for origin exclusion.
	Host() string

	// ProjectFromName finds a project by its short name.
	// A miss is (nil, nil), never an error.
	ProjectFromName(ctx context.Context, name string) (Project, error)
}

// Project is a name-matched project on a remote.
type Project interface {
	// IssueFromTitle finds an issue by exact title match, any state.
	// A miss is (nil, nil).
	IssueFromTitle(ctx context.Context, title string) (Issue, error)

	// CreateIssue opens a new issue.
	CreateIssue(ctx context.Context, title, body string) (Issue, error)
}

// Issue is a title-matched issue on a remote project.
type Issue interface {
	// CommentFromBody finds a comment by exact body match.
	// A miss is (nil, nil).
	CommentFromBody(ctx context.Context, body string) (Comment, error)

	// CreateComment adds a comment to the issue.
	CreateComment(ctx context.Context, body string) (Comment, error)

	// SetState moves the issue to StateOpened or StateClosed.
	SetState(ctx context.Context, state string) error
}

// Comment is a body-matched comment on a remote issue.
type Comment interface {
	Body() string
	SetBody(ctx context.Context, body string) error
	Delete(ctx context.Context) error
}
