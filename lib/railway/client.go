// Copyright 2026 The Botfactory Authors
// SPDX-License-Identifier: Apache-2.0

package railway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/VladislavG32/telegram-bot-manager/lib/netutil"
)

// defaultBaseURL is the Railway GraphQL v2 endpoint.
const defaultBaseURL = "https://backboard.railway.app/graphql/v2"

// Config holds configuration for creating a Railway API Client.
type Config struct {
	// Token is the Railway API bearer token. Required.
	Token string

	// ProjectID is the Railway project new services are created in.
	// Required.
	ProjectID string

	// EnvironmentID is the Railway environment service variables are
	// set in. Required.
	EnvironmentID string

	// BaseURL is the GraphQL endpoint. Defaults to the public Railway
	// API. Must use HTTPS.
	BaseURL string

	// HTTPClient is used for all HTTP requests. Defaults to
	// http.DefaultClient.
	HTTPClient *http.Client

	// Logger is used for structured logging. Defaults to slog.Default().
	Logger *slog.Logger
}

// Client is a typed Railway GraphQL client covering the deployment
// trigger surface: creating a service bound to a repository (which
// starts the first build) and setting the new service's variables.
type Client struct {
	baseURL       string
	authHeader    string
	projectID     string
	environmentID string
	httpClient    *http.Client
	logger        *slog.Logger
}

// NewClient creates a Railway API client from the given configuration.
func NewClient(config Config) (*Client, error) {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	if !strings.HasPrefix(baseURL, "https://") {
		return nil, fmt.Errorf("railway: API client requires HTTPS (got %q)", baseURL)
	}
	if config.Token == "" {
		return nil, fmt.Errorf("railway: no token configured")
	}
	if config.ProjectID == "" {
		return nil, fmt.Errorf("railway: no project ID configured")
	}
	if config.EnvironmentID == "" {
		return nil, fmt.Errorf("railway: no environment ID configured")
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:       baseURL,
		authHeader:    "Bearer " + config.Token,
		projectID:     config.ProjectID,
		environmentID: config.EnvironmentID,
		httpClient:    httpClient,
		logger:        logger,
	}, nil
}

// graphQLRequest is the JSON body of a GraphQL POST. Queries are fixed
// strings; everything user-controlled travels in the variables object,
// serialized by encoding/json. Nothing is ever spliced into query text.
type graphQLRequest struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName,omitempty"`
	Variables     map[string]any `json:"variables,omitempty"`
}

// graphQLError is a single error from a GraphQL response.
type graphQLError struct {
	Message string `json:"message"`
}

// execute posts a GraphQL request and decodes the data section into
// result. A non-200 status or a non-empty errors array becomes a
// *DeployError.
func (client *Client) execute(ctx context.Context, request graphQLRequest, result any) error {
	encoded, err := json.Marshal(request)
	if err != nil {
		return fmt.Errorf("railway: encoding request: %w", err)
	}

	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodPost, client.baseURL, bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("railway: creating request: %w", err)
	}
	httpRequest.Header.Set("Authorization", client.authHeader)
	httpRequest.Header.Set("Content-Type", "application/json")

	response, err := client.httpClient.Do(httpRequest)
	if err != nil {
		return fmt.Errorf("railway: %s: %w", request.OperationName, err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return &DeployError{Status: response.StatusCode, Body: netutil.ErrorBody(response.Body)}
	}

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []graphQLError  `json:"errors"`
	}
	if err := netutil.DecodeResponse(response.Body, &envelope); err != nil {
		return fmt.Errorf("railway: parsing response: %w", err)
	}
	if len(envelope.Errors) > 0 {
		messages := make([]string, len(envelope.Errors))
		for i, graphQLErr := range envelope.Errors {
			messages[i] = graphQLErr.Message
		}
		return &DeployError{Status: response.StatusCode, Body: strings.Join(messages, "; ")}
	}

	if result != nil {
		if err := json.Unmarshal(envelope.Data, result); err != nil {
			return fmt.Errorf("railway: parsing response data: %w", err)
		}
	}
	return nil
}

// serviceCreateMutation creates a service in the project bound to a
// GitHub repository and branch. Binding the source starts the first
// build immediately. The operation name marks the request as
// bot-originated for audit trails on the Railway side.
const serviceCreateMutation = `mutation BotCreationServiceCreate($input: ServiceCreateInput!) {
  serviceCreate(input: $input) {
    id
    name
  }
}`

// variableUpsertMutation sets one variable on a service. Used to hand
// the freshly provisioned bot its own Telegram token so the deployed
// code can read it from the environment instead of having it committed.
const variableUpsertMutation = `mutation BotCreationVariableUpsert($input: VariableUpsertInput!) {
  variableUpsert(input: $input)
}`

// TriggerDeployment creates a Railway service for the new repository,
// starting a build of its default branch, then sets BOT_TOKEN on the
// service when a bot token is provided.
//
// This is fire-and-forget: the caller learns only whether the trigger
// was accepted. Nothing polls the resulting deployment, and there is
// no compensating action if the repository exists but the trigger
// fails — the caller must surface that asymmetry to the user.
func (client *Client) TriggerDeployment(ctx context.Context, request DeployRequest) error {
	if request.Owner == "" || request.Repo == "" {
		return fmt.Errorf("railway: deploy request needs owner and repo")
	}
	branch := request.Branch
	if branch == "" {
		branch = "main"
	}

	var created struct {
		ServiceCreate struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"serviceCreate"`
	}
	err := client.execute(ctx, graphQLRequest{
		Query:         serviceCreateMutation,
		OperationName: "BotCreationServiceCreate",
		Variables: map[string]any{
			"input": serviceCreateInput{
				ProjectID: client.projectID,
				Name:      request.Repo,
				Branch:    branch,
				Source:    serviceSource{Repo: request.Owner + "/" + request.Repo},
			},
		},
	}, &created)
	if err != nil {
		return err
	}

	client.logger.Info("deployment triggered",
		"service_id", created.ServiceCreate.ID,
		"repository", request.Owner+"/"+request.Repo,
		"branch", branch,
		"cause", "bot_creation",
	)

	if request.BotToken == "" {
		return nil
	}

	// The service exists and its build is running at this point; a
	// variable failure still means the bot will not start, so it is
	// reported as a trigger failure.
	err = client.execute(ctx, graphQLRequest{
		Query:         variableUpsertMutation,
		OperationName: "BotCreationVariableUpsert",
		Variables: map[string]any{
			"input": variableUpsertInput{
				ProjectID:     client.projectID,
				EnvironmentID: client.environmentID,
				ServiceID:     created.ServiceCreate.ID,
				Name:          "BOT_TOKEN",
				Value:         request.BotToken,
			},
		},
	}, nil)
	if err != nil {
		return fmt.Errorf("railway: setting BOT_TOKEN on service %s: %w", created.ServiceCreate.ID, err)
	}

	return nil
}
