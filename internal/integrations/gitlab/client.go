// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-08-24
// Last Modified: 2026-08-29

// Package gitlab implements the remote capability contract on top of
// the GitLab REST API.
package gitlab

import (
	"context"
	"fmt"
	"net/url"

	gitlab "gitlab.com/gitlab-org/api/client-go"

	"github.com/anybox/anyrepo/internal/remote"
)

const defaultHost = "gitlab.com"

var _ remote.Client = (*Client)(nil)

// Client wraps the GitLab API client behind the remote capability
// interface.
type Client struct {
	name   string
	host   string
	client *gitlab.Client
}

// NewClient creates a GitLab remote named name. baseURL selects a
// self-hosted instance; empty means gitlab.com.
func NewClient(name, baseURL, token string) (*Client, error) {
	host := defaultHost
	opts := []gitlab.ClientOptionFunc{}

	if baseURL != "" {
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
		}
		host = u.Hostname()
		opts = append(opts, gitlab.WithBaseURL(baseURL))
	}

	client, err := gitlab.NewClient(token, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create gitlab client: %w", err)
	}

	return &Client{
		name:   name,
		host:   host,
		client: client,
	}, nil
}

// Name returns the configured remote name.
func (c *Client) Name() string { return c.name }

// Host returns the remote's hostname.
func (c *Client) Host() string { return c.host }

// ProjectFromName finds a project by its short name using the search
// API, keeping only an exact path or name match.
func (c *Client) ProjectFromName(ctx context.Context, name string) (remote.Project, error) {
	if name == "" {
		return nil, nil
	}

	opts := &gitlab.ListProjectsOptions{
		ListOptions: gitlab.ListOptions{PerPage: 100},
		Search:      gitlab.Ptr(name),
	}
	for {
		projects, resp, err := c.client.Projects.ListProjects(opts, gitlab.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("failed to search projects: %w", err)
		}
		for _, project := range projects {
			if project.Path == name || project.Name == name {
				return &Project{client: c.client, id: project.ID}, nil
			}
		}
		if resp.NextPage == 0 {
			return nil, nil
		}
		opts.Page = resp.NextPage
	}
}

// Project is a name-matched GitLab project.
type Project struct {
	client *gitlab.Client
	id     int
}

// IssueFromTitle finds an issue by exact title match, any state.
func (p *Project) IssueFromTitle(ctx context.Context, title string) (remote.Issue, error) {
	opts := &gitlab.ListProjectIssuesOptions{
		ListOptions: gitlab.ListOptions{PerPage: 100},
	}
	for {
		issues, resp, err := p.client.Issues.ListProjectIssues(p.id, opts, gitlab.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("failed to list issues: %w", err)
		}
		for _, issue := range issues {
			if issue.Title == title {
				return &Issue{
					client:    p.client,
					projectID: p.id,
					iid:       issue.IID,
				}, nil
			}
		}
		if resp.NextPage == 0 {
			return nil, nil
		}
		opts.Page = resp.NextPage
	}
}

// CreateIssue opens a new issue in the project.
func (p *Project) CreateIssue(ctx context.Context, title, body string) (remote.Issue, error) {
	issue, _, err := p.client.Issues.CreateIssue(p.id, &gitlab.CreateIssueOptions{
		Title:       gitlab.Ptr(title),
		Description: gitlab.Ptr(body),
	}, gitlab.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to create issue: %w", err)
	}
	return &Issue{
		client:    p.client,
		projectID: p.id,
		iid:       issue.IID,
	}, nil
}

// Issue is a title-matched GitLab issue.
type Issue struct {
	client    *gitlab.Client
	projectID int
	iid       int
}

// CommentFromBody finds a note by exact body match.
func (i *Issue) CommentFromBody(ctx context.Context, body string) (remote.Comment, error) {
	opts := &gitlab.ListIssueNotesOptions{
		ListOptions: gitlab.ListOptions{PerPage: 100},
	}
	for {
		notes, resp, err := i.client.Notes.ListIssueNotes(i.projectID, i.iid, opts, gitlab.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("failed to list notes: %w", err)
		}
		for _, note := range notes {
			if note.Body == body {
				return &Comment{
					client:    i.client,
					projectID: i.projectID,
					issueIID:  i.iid,
					id:        note.ID,
					body:      note.Body,
				}, nil
			}
		}
		if resp.NextPage == 0 {
			return nil, nil
		}
		opts.Page = resp.NextPage
	}
}

// CreateComment adds a note to the issue.
func (i *Issue) CreateComment(ctx context.Context, body string) (remote.Comment, error) {
	note, _, err := i.client.Notes.CreateIssueNote(i.projectID, i.iid, &gitlab.CreateIssueNoteOptions{
		Body: gitlab.Ptr(body),
	}, gitlab.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}
	return &Comment{
		client:    i.client,
		projectID: i.projectID,
		issueIID:  i.iid,
		id:        note.ID,
		body:      note.Body,
	}, nil
}

// SetState reopens or closes the issue via a state event.
func (i *Issue) SetState(ctx context.Context, state string) error {
	event := "close"
	if state == remote.StateOpened {
		event = "reopen"
	}

	_, _, err := i.client.Issues.UpdateIssue(i.projectID, i.iid, &gitlab.UpdateIssueOptions{
		StateEvent: gitlab.Ptr(event),
	}, gitlab.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to update issue state: %w", err)
	}
	return nil
}

// Comment is a body-matched GitLab issue note.
type Comment struct {
	client    *gitlab.Client
	projectID int
	issueIID  int
	id        int
	body      string
}

// Body returns the note body as it was when matched.
func (c *Comment) Body() string { return c.body }

// SetBody overwrites the note body.
func (c *Comment) SetBody(ctx context.Context, body string) error {
	_, _, err := c.client.Notes.UpdateIssueNote(c.projectID, c.issueIID, c.id, &gitlab.UpdateIssueNoteOptions{
		Body: gitlab.Ptr(body),
	}, gitlab.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}
	c.body = body
	return nil
}

// Delete removes the note.
func (c *Comment) Delete(ctx context.Context) error {
	if _, err := c.client.Notes.DeleteIssueNote(c.projectID, c.issueIID, c.id, gitlab.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	return nil
}
