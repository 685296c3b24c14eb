// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-08-24
// Last Modified: 2026-08-29

// Package github implements the remote capability contract on top of
// the GitHub REST API.
package github

import (
	"context"
	"fmt"
	"net/url"

	"github.com/google/go-github/v60/github"
	"golang.org/x/oauth2"

	"github.com/anybox/anyrepo/internal/remote"
)

const defaultHost = "github.com"

var _ remote.Client = (*Client)(nil)

// Client wraps the GitHub API client behind the remote capability
// interface.
type Client struct {
	name   string
	host   string
	client *github.Client
}

// NewClient creates a GitHub remote named name. baseURL selects a
// GitHub Enterprise instance; empty means github.com.
func NewClient(ctx context.Context, name, baseURL, token string) (*Client, error) {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(ctx, ts)

	client := github.NewClient(tc)
	host := defaultHost

	if baseURL != "" {
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
		}
		host = u.Hostname()

		client, err = client.WithEnterpriseURLs(baseURL, baseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to configure enterprise urls: %w", err)
		}
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

// ProjectFromName finds a repository of the authenticated user by its
// short name.
func (c *Client) ProjectFromName(ctx context.Context, name string) (remote.Project, error) {
	if name == "" {
		return nil, nil
	}

	opts := &github.RepositoryListOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	}
	for {
		repos, resp, err := c.client.Repositories.List(ctx, "", opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list repositories: %w", err)
		}
		for _, repo := range repos {
			if repo.GetName() == name {
				return &Project{
					client: c.client,
					owner:  repo.GetOwner().GetLogin(),
					repo:   repo.GetName(),
				}, nil
			}
		}
		if resp.NextPage == 0 {
			return nil, nil
		}
		opts.Page = resp.NextPage
	}
}

// Project is a name-matched GitHub repository.
type Project struct {
	client *github.Client
	owner  string
	repo   string
}

// IssueFromTitle finds an issue by exact title match across all
// states. Pull requests are ignored even though GitHub lists them as
// issues.
func (p *Project) IssueFromTitle(ctx context.Context, title string) (remote.Issue, error) {
	opts := &github.IssueListByRepoOptions{
		State:       "all",
		ListOptions: github.ListOptions{PerPage: 100},
	}
	for {
		issues, resp, err := p.client.Issues.ListByRepo(ctx, p.owner, p.repo, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list issues: %w", err)
		}
		for _, issue := range issues {
			if issue.IsPullRequest() {
				continue
			}
			if issue.GetTitle() == title {
				return &Issue{
					client: p.client,
					owner:  p.owner,
					repo:   p.repo,
					number: issue.GetNumber(),
				}, nil
			}
		}
		if resp.NextPage == 0 {
			return nil, nil
		}
		opts.Page = resp.NextPage
	}
}

// CreateIssue opens a new issue in the repository.
func (p *Project) CreateIssue(ctx context.Context, title, body string) (remote.Issue, error) {
	issue, _, err := p.client.Issues.Create(ctx, p.owner, p.repo, &github.IssueRequest{
		Title: github.String(title),
		Body:  github.String(body),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create issue: %w", err)
	}
	return &Issue{
		client: p.client,
		owner:  p.owner,
		repo:   p.repo,
		number: issue.GetNumber(),
	}, nil
}

// Issue is a title-matched GitHub issue.
type Issue struct {
	client *github.Client
	owner  string
	repo   string
	number int
}

// CommentFromBody finds an issue comment by exact body match.
func (i *Issue) CommentFromBody(ctx context.Context, body string) (remote.Comment, error) {
	opts := &github.IssueListCommentsOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	}
	for {
		comments, resp, err := i.client.Issues.ListComments(ctx, i.owner, i.repo, i.number, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list comments: %w", err)
		}
		for _, comment := range comments {
			if comment.GetBody() == body {
				return &Comment{
					client: i.client,
					owner:  i.owner,
					repo:   i.repo,
					id:     comment.GetID(),
					body:   comment.GetBody(),
				}, nil
			}
		}
		if resp.NextPage == 0 {
			return nil, nil
		}
		opts.Page = resp.NextPage
	}
}

// CreateComment posts a comment on the issue.
func (i *Issue) CreateComment(ctx context.Context, body string) (remote.Comment, error) {
	comment, _, err := i.client.Issues.CreateComment(ctx, i.owner, i.repo, i.number, &github.IssueComment{
		Body: github.String(body),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return &Comment{
		client: i.client,
		owner:  i.owner,
		repo:   i.repo,
		id:     comment.GetID(),
		body:   comment.GetBody(),
	}, nil
}

// SetState opens or closes the issue.
func (i *Issue) SetState(ctx context.Context, state string) error {
	ghState := "closed"
	if state == remote.StateOpened {
		ghState = "open"
	}

	_, _, err := i.client.Issues.Edit(ctx, i.owner, i.repo, i.number, &github.IssueRequest{
		State: github.String(ghState),
	})
	if err != nil {
		return fmt.Errorf("failed to set issue state: %w", err)
	}
	return nil
}

// Comment is a body-matched GitHub issue comment.
type Comment struct {
	client *github.Client
	owner  string
	repo   string
	id     int64
	body   string
}

// Body returns the comment body as it was when matched.
func (c *Comment) Body() string { return c.body }

// SetBody overwrites the comment body.
func (c *Comment) SetBody(ctx context.Context, body string) error {
	_, _, err := c.client.Issues.EditComment(ctx, c.owner, c.repo, c.id, &github.IssueComment{
		Body: github.String(body),
	})
	if err != nil {
		return fmt.Errorf("failed to edit comment: %w", err)
	}
	c.body = body
	return nil
}

// Delete removes the comment.
func (c *Comment) Delete(ctx context.Context) error {
	if _, err := c.client.Issues.DeleteComment(ctx, c.owner, c.repo, c.id); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}
