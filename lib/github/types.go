// Copyright 2026 The Botfactory Authors
// SPDX-License-Identifier: Apache-2.0

package github

// User is a GitHub user reference. Appears as the authenticated
// identity and as the owner of repositories.
type User struct {
	Login   string `json:"login"`
	ID      int64  `json:"id"`
	HTMLURL string `json:"html_url"`
}

// Repository is a GitHub repository. Carries the fields the
// provisioning flow needs: the canonical URL for the user-facing
// report, the owner and visibility for the combined result, the
// template flag for template resolution, and the default branch for
// the deployment trigger.
type Repository struct {
	Name          string `json:"name"`
	FullName      string `json:"full_name"`
	Owner         User   `json:"owner"`
	Private       bool   `json:"private"`
	HTMLURL       string `json:"html_url"`
	Description   string `json:"description"`
	DefaultBranch string `json:"default_branch"`
	IsTemplate    bool   `json:"is_template"`
}
