// Copyright 2026 The Botfactory Authors
// SPDX-License-Identifier: Apache-2.0

package github

import (
	"context"
	"fmt"
	"strings"

	"github.com/VladislavG32/telegram-bot-manager/lib/templates"
)

// GenerateRequest contains the fields for creating a repository from a
// template via POST /repos/{owner}/{repo}/generate.
type GenerateRequest struct {
	// Owner is the account the new repository is created under.
	Owner string `json:"owner"`

	// Name is the new repository's name.
	Name string `json:"name"`

	// Description is the new repository's description.
	Description string `json:"description,omitempty"`

	// Private makes the new repository private.
	Private bool `json:"private"`

	// IncludeAllBranches copies all template branches instead of just
	// the default branch.
	IncludeAllBranches bool `json:"include_all_branches"`
}

// GetRepo fetches a repository by owner and name.
func (client *Client) GetRepo(ctx context.Context, owner, repo string) (*Repository, error) {
	var repository Repository
	path := fmt.Sprintf("/repos/%s/%s", owner, repo)
	if err := client.get(ctx, path, &repository); err != nil {
		return nil, fmt.Errorf("fetching %s/%s: %w", owner, repo, err)
	}
	return &repository, nil
}

// GetAuthenticatedUser returns the identity the configured token
// authenticates as. Useful for verifying the credential at startup and
// before side-effecting calls.
func (client *Client) GetAuthenticatedUser(ctx context.Context) (*User, error) {
	var user User
	if err := client.get(ctx, "/user", &user); err != nil {
		return nil, fmt.Errorf("fetching authenticated user: %w", err)
	}
	return &user, nil
}

// VerifyOperator confirms the configured token authenticates as the
// expected operator account, returning the authenticated identity.
// Called at startup so a token pasted from the wrong account fails the
// process instead of silently provisioning repositories under that
// account. GitHub logins are case-insensitive.
func (client *Client) VerifyOperator(ctx context.Context, operator string) (*User, error) {
	user, err := client.GetAuthenticatedUser(ctx)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(user.Login, operator) {
		return nil, fmt.Errorf("github: token authenticates as %q, want operator %q", user.Login, operator)
	}
	return user, nil
}

// GenerateFromTemplate creates a new repository from a template
// repository. The template must have the is_template flag set and be
// accessible to the configured token.
func (client *Client) GenerateFromTemplate(ctx context.Context, templateOwner, templateRepo string, request GenerateRequest) (*Repository, error) {
	var repository Repository
	path := fmt.Sprintf("/repos/%s/%s/generate", templateOwner, templateRepo)
	if err := client.post(ctx, path, request, &repository); err != nil {
		return nil, fmt.Errorf("generating %s/%s from %s/%s: %w", request.Owner, request.Name, templateOwner, templateRepo, err)
	}
	return &repository, nil
}

// CreateFromTemplate provisions a new private repository named newName
// from the given template coordinate:
//
//  1. Resolve the template and confirm it is actually a template
//     accessible under the configured token.
//  2. Confirm the token's identity (the account repositories will be
//     created under).
//  3. Generate the repository with an auto-generation description.
//
// The operation is not idempotent: generating twice with the same name
// fails the second time with a 422 (name already exists), reported via
// IsInvalidRequest.
func (client *Client) CreateFromTemplate(ctx context.Context, template templates.Coordinate, newName string) (*Repository, error) {
	templateRepository, err := client.GetRepo(ctx, template.Owner, template.Repo)
	if err != nil {
		return nil, fmt.Errorf("resolving template %s: %w", template, err)
	}
	if !templateRepository.IsTemplate {
		// GitHub would reject the generate call anyway; failing here
		// gives a clearer message naming the misconfigured coordinate.
		return nil, fmt.Errorf("resolving template %s: %w", template,
			&APIError{StatusCode: 404, Message: "repository is not marked as a template"})
	}

	user, err := client.GetAuthenticatedUser(ctx)
	if err != nil {
		return nil, err
	}

	repository, err := client.GenerateFromTemplate(ctx, template.Owner, template.Repo, GenerateRequest{
		Owner:       user.Login,
		Name:        newName,
		Description: fmt.Sprintf("Auto-generated Telegram bot: %s", newName),
		Private:     true,
	})
	if err != nil {
		return nil, err
	}

	client.logger.Info("repository created from template",
		"template", template.String(),
		"repository", repository.FullName,
		"url", repository.HTMLURL,
	)
	return repository, nil
}
