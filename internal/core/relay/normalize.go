// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-08-24
// Last Modified: 2026-08-29

package relay

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/go-github/v60/github"
	gitlab "gitlab.com/gitlab-org/api/client-go"
)

// NormalizeGitHubIssues parses a GitHub "issues" webhook payload.
func NormalizeGitHubIssues(body []byte) (*Event, error) {
	var payload github.IssuesEvent
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse issues payload: %w", err)
	}

	return &Event{
		Kind:       KindIssue,
		Action:     payload.GetAction(),
		SourceHost: hostOf(payload.GetRepo().GetHTMLURL()),
		RepoName:   lastSegment(payload.GetRepo().GetFullName()),
		IssueTitle: payload.GetIssue().GetTitle(),
		IssueBody:  payload.GetIssue().GetBody(),
	}, nil
}

// NormalizeGitHubIssueComment parses a GitHub "issue_comment" webhook
// payload. When the payload carries changes.body.from, the match
// content is the previous body so the edit is located by what existed
// before it.
func NormalizeGitHubIssueComment(body []byte) (*Event, error) {
	var payload github.IssueCommentEvent
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse issue_comment payload: %w", err)
	}

	match := payload.GetComment().GetBody()
	if from := payload.GetChanges().GetBody(); from != nil && from.From != nil {
		match = *from.From
	}

	return &Event{
		Kind:         KindComment,
		Action:       payload.GetAction(),
		SourceHost:   hostOf(payload.GetRepo().GetHTMLURL()),
		RepoName:     lastSegment(payload.GetRepo().GetFullName()),
		IssueTitle:   payload.GetIssue().GetTitle(),
		IssueBody:    payload.GetIssue().GetBody(),
		CommentBody:  payload.GetComment().GetBody(),
		CommentMatch: match,
	}, nil
}

// NormalizeGitLabIssue parses a GitLab "Issue Hook" payload. The action
// is the issue's current state, not a discrete verb, so opened stands
// for both open and reopen and the event is flagged accordingly.
func NormalizeGitLabIssue(body []byte) (*Event, error) {
	var payload gitlab.IssueEvent
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse Issue Hook payload: %w", err)
	}

	return &Event{
		Kind:         KindIssue,
		Action:       payload.ObjectAttributes.State,
		SourceHost:   hostOf(payload.Project.GitHTTPURL),
		RepoName:     lastSegment(payload.Project.PathWithNamespace),
		IssueTitle:   payload.ObjectAttributes.Title,
		IssueBody:    payload.ObjectAttributes.Description,
		ReopenOnOpen: true,
	}, nil
}

// NormalizeGitLabNote parses a GitLab "Note Hook" payload. GitLab's
// webhook does not distinguish note edits or deletions, so every note
// event carries comment-created semantics. Notes on anything but an
// issue (merge requests, commits, snippets) yield a nil event.
func NormalizeGitLabNote(body []byte) (*Event, error) {
	var payload gitlab.IssueCommentEvent
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse Note Hook payload: %w", err)
	}

	if payload.ObjectAttributes.NoteableType != "Issue" {
		return nil, nil
	}

	note := payload.ObjectAttributes.Note

	return &Event{
		Kind:         KindComment,
		Action:       ActionCreated,
		SourceHost:   hostOf(payload.Project.GitHTTPURL),
		RepoName:     lastSegment(payload.Project.PathWithNamespace),
		IssueTitle:   payload.Issue.Title,
		CommentBody:  note,
		CommentMatch: note,
	}, nil
}

// hostOf extracts the hostname from a repository URL. An unparseable
// or empty URL yields an empty host, which excludes nothing.
func hostOf(rawurl string) string {
	u, err := url.Parse(rawurl)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// lastSegment returns the short project name from a namespaced path
// like "org/repo". Empty input stays empty so project lookups miss.
func lastSegment(path string) string {
	if path == "" {
		return ""
	}
	parts := strings.Split(path, "/")
	return parts[len(parts)-1]
}
