// Copyright 2026 The Botfactory Authors
// SPDX-License-Identifier: Apache-2.0

package railway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/VladislavG32/telegram-bot-manager/lib/netutil"
)

func newTestClient(t *testing.T, server *httptest.Server) *Client {
	t.Helper()
	client, err := NewClient(Config{
		Token:         "railway-token",
		ProjectID:     "project-1",
		EnvironmentID: "environment-1",
		BaseURL:       server.URL,
		HTTPClient:    server.Client(),
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

func TestNewClientValidation(t *testing.T) {
	tests := []struct {
		name   string
		config Config
	}{
		{"no token", Config{ProjectID: "p", EnvironmentID: "e"}},
		{"no project", Config{Token: "t", EnvironmentID: "e"}},
		{"no environment", Config{Token: "t", ProjectID: "p"}},
		{"plain HTTP", Config{Token: "t", ProjectID: "p", EnvironmentID: "e", BaseURL: "http://example.com"}},
	}
	for _, test := range tests {
		if _, err := NewClient(test.config); err == nil {
			t.Errorf("%s: expected error", test.name)
		}
	}
}

func TestTriggerDeployment(t *testing.T) {
	var requests []graphQLRequest
	server := httptest.NewTLSServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if got := request.Header.Get("Authorization"); got != "Bearer railway-token" {
			t.Errorf("Authorization = %q", got)
		}
		body, _ := netutil.ReadResponse(request.Body)
		var decoded graphQLRequest
		json.Unmarshal(body, &decoded)
		requests = append(requests, decoded)

		writer.Header().Set("Content-Type", "application/json")
		if strings.Contains(decoded.Query, "serviceCreate") {
			writer.Write([]byte(`{"data":{"serviceCreate":{"id":"svc-1","name":"my-new-bot"}}}`))
		} else {
			writer.Write([]byte(`{"data":{"variableUpsert":true}}`))
		}
	}))
	defer server.Close()

	client := newTestClient(t, server)
	err := client.TriggerDeployment(context.Background(), DeployRequest{
		Owner:    "VladislavG32",
		Repo:     "my-new-bot",
		Branch:   "main",
		BotToken: "624345678901:secret",
	})
	if err != nil {
		t.Fatalf("TriggerDeployment: %v", err)
	}

	if len(requests) != 2 {
		t.Fatalf("got %d requests, want 2", len(requests))
	}

	// User-controlled values travel only in the variables object.
	if strings.Contains(requests[0].Query, "my-new-bot") {
		t.Error("repository name leaked into query text")
	}
	createInput := requests[0].Variables["input"].(map[string]any)
	if createInput["projectId"] != "project-1" {
		t.Errorf("projectId = %v", createInput["projectId"])
	}
	if createInput["name"] != "my-new-bot" {
		t.Errorf("name = %v", createInput["name"])
	}
	source := createInput["source"].(map[string]any)
	if source["repo"] != "VladislavG32/my-new-bot" {
		t.Errorf("source.repo = %v", source["repo"])
	}

	upsertInput := requests[1].Variables["input"].(map[string]any)
	if upsertInput["serviceId"] != "svc-1" {
		t.Errorf("serviceId = %v", upsertInput["serviceId"])
	}
	if upsertInput["environmentId"] != "environment-1" {
		t.Errorf("environmentId = %v", upsertInput["environmentId"])
	}
	if upsertInput["name"] != "BOT_TOKEN" {
		t.Errorf("variable name = %v", upsertInput["name"])
	}
	if upsertInput["value"] != "624345678901:secret" {
		t.Errorf("variable value = %v", upsertInput["value"])
	}
}

func TestTriggerDeploymentSkipsVariableWithoutToken(t *testing.T) {
	var requestCount int
	server := httptest.NewTLSServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		requestCount++
		writer.Header().Set("Content-Type", "application/json")
		writer.Write([]byte(`{"data":{"serviceCreate":{"id":"svc-1","name":"bot"}}}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	if err := client.TriggerDeployment(context.Background(), DeployRequest{Owner: "o", Repo: "bot"}); err != nil {
		t.Fatalf("TriggerDeployment: %v", err)
	}
	if requestCount != 1 {
		t.Errorf("got %d requests, want 1", requestCount)
	}
}

func TestTriggerDeploymentHTTPFailure(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusBadGateway)
		writer.Write([]byte("upstream broke"))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	err := client.TriggerDeployment(context.Background(), DeployRequest{Owner: "o", Repo: "bot"})
	deployError, ok := IsDeployError(err)
	if !ok {
		t.Fatalf("expected *DeployError, got %v", err)
	}
	if deployError.Status != http.StatusBadGateway {
		t.Errorf("Status = %d", deployError.Status)
	}
	if !strings.Contains(deployError.Body, "upstream broke") {
		t.Errorf("Body = %q", deployError.Body)
	}
}

func TestTriggerDeploymentGraphQLErrors(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		writer.Write([]byte(`{"errors":[{"message":"Not Authorized"}]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	err := client.TriggerDeployment(context.Background(), DeployRequest{Owner: "o", Repo: "bot"})
	deployError, ok := IsDeployError(err)
	if !ok {
		t.Fatalf("expected *DeployError, got %v", err)
	}
	if deployError.Status != http.StatusOK {
		t.Errorf("Status = %d", deployError.Status)
	}
	if deployError.Body != "Not Authorized" {
		t.Errorf("Body = %q", deployError.Body)
	}
}

func TestTriggerDeploymentVariableFailure(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		body, _ := netutil.ReadResponse(request.Body)
		writer.Header().Set("Content-Type", "application/json")
		if strings.Contains(string(body), "serviceCreate") {
			writer.Write([]byte(`{"data":{"serviceCreate":{"id":"svc-1","name":"bot"}}}`))
			return
		}
		writer.Write([]byte(`{"errors":[{"message":"Problem processing request"}]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)
	err := client.TriggerDeployment(context.Background(), DeployRequest{Owner: "o", Repo: "bot", BotToken: "624345678901:secret"})
	if _, ok := IsDeployError(err); !ok {
		t.Fatalf("expected *DeployError for variable failure, got %v", err)
	}
	if !strings.Contains(err.Error(), "BOT_TOKEN") {
		t.Errorf("error does not mention the variable: %v", err)
	}
}

func TestDeployRequestValidation(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		t.Error("no request expected for invalid DeployRequest")
	}))
	defer server.Close()

	client := newTestClient(t, server)
	if err := client.TriggerDeployment(context.Background(), DeployRequest{}); err == nil {
		t.Fatal("expected error for empty request")
	}
}
