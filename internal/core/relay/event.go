// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-08-24
// Last Modified: 2026-08-29

// Package relay implements the event-to-action reconciliation core:
// provider payloads are normalized into Events, candidate mirrors are
// resolved by hostname exclusion and content matching, and the engine
// replays each event idempotently against every candidate remote.
package relay

// Kind distinguishes issue events from comment events.
type Kind string

const (
	KindIssue   Kind = "issue"
	KindComment Kind = "comment"
)

// Actions carried by normalized events. Issue events use opened,
// reopened and closed; comment events use created, edited and deleted.
// GitLab issue hooks only ever report opened or closed (its webhook
// collapses reopen into opened).
const (
	ActionOpened   = "opened"
	ActionReopened = "reopened"
	ActionClosed   = "closed"
	ActionCreated  = "created"
	ActionEdited   = "edited"
	ActionDeleted  = "deleted"
)

// Event is a provider-neutral view of one webhook delivery. Events are
// built per request and discarded with the response; nothing about
// them is persisted.
type Event struct {
	Kind   Kind
	Action string

	// SourceHost is the hostname of the repository that produced the
	// event. Remotes on the same host are excluded from reconciliation
	// so mirrored pairs cannot echo events back at each other.
	SourceHost string

	// RepoName is the short project name (last path segment). Empty
	// when the payload lacked one; lookups then miss naturally.
	RepoName string

	IssueTitle string
	IssueBody  string

	// CommentBody is the comment content after the event.
	CommentBody string

	// CommentMatch is the content used to locate the mirrored comment.
	// For edits it is the pre-edit body, so the existing mirror is
	// found by what it currently says and then overwritten with
	// CommentBody. Otherwise it equals CommentBody.
	CommentMatch string

	// ReopenOnOpen marks events from providers that reuse the opened
	// action for reopened issues. For those, opened against an
	// existing mirror must also reset its state to opened.
	ReopenOnOpen bool
}
