// Copyright 2026 The Botfactory Authors
// SPDX-License-Identifier: Apache-2.0

package railway

import (
	"errors"
	"fmt"
)

// DeployRequest identifies the repository whose deployment should be
// triggered.
type DeployRequest struct {
	// Owner and Repo name the GitHub repository the new service is
	// bound to.
	Owner string
	Repo  string

	// Branch is the branch to build. Empty means the repository's
	// default branch.
	Branch string

	// BotToken, when set, is stored as the BOT_TOKEN variable on the
	// created service so the deployed bot can read it from its
	// environment.
	BotToken string
}

// serviceCreateInput is the variables payload for the serviceCreate
// mutation.
type serviceCreateInput struct {
	ProjectID string        `json:"projectId"`
	Name      string        `json:"name"`
	Branch    string        `json:"branch,omitempty"`
	Source    serviceSource `json:"source"`
}

// serviceSource binds a service to a GitHub repository.
type serviceSource struct {
	Repo string `json:"repo"`
}

// variableUpsertInput is the variables payload for the variableUpsert
// mutation.
type variableUpsertInput struct {
	ProjectID     string `json:"projectId"`
	EnvironmentID string `json:"environmentId"`
	ServiceID     string `json:"serviceId"`
	Name          string `json:"name"`
	Value         string `json:"value"`
}

// DeployError represents a rejected deployment trigger: a non-200
// response from the Railway API, or a 200 carrying GraphQL errors.
type DeployError struct {
	// Status is the HTTP response status code.
	Status int

	// Body carries the response body or the joined GraphQL error
	// messages, for diagnostics.
	Body string
}

func (err *DeployError) Error() string {
	return fmt.Sprintf("railway: HTTP %d: %s", err.Status, err.Body)
}

// IsDeployError reports whether err is a *DeployError, extracting it
// when so.
func IsDeployError(err error) (*DeployError, bool) {
	var deployError *DeployError
	ok := errors.As(err, &deployError)
	return deployError, ok
}
