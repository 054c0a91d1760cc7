// Copyright 2026 The Botfactory Authors
// SPDX-License-Identifier: Apache-2.0

package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/VladislavG32/telegram-bot-manager/lib/netutil"
)

// defaultBaseURL is the base URL for the Telegram Bot API.
const defaultBaseURL = "https://api.telegram.org"

// Config holds configuration for creating a Telegram Bot API Client.
type Config struct {
	// Token is the bot token issued by BotFather. Required.
	Token string

	// BaseURL is the API root. Defaults to "https://api.telegram.org".
	// Must use HTTPS — the token is embedded in every request URL.
	BaseURL string

	// HTTPClient is used for all HTTP requests. Defaults to
	// http.DefaultClient. Long polling holds a connection open for
	// the poll timeout, so the client must not enforce a shorter
	// request timeout than the poll timeout.
	HTTPClient *http.Client

	// Logger is used for structured logging. Defaults to slog.Default().
	Logger *slog.Logger
}

// Client is a typed Telegram Bot API client. Request URLs are built by
// string concatenation ("{base}/bot{token}/{method}"); every call is a
// POST with a JSON body.
type Client struct {
	methodBase string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a Telegram Bot API client from the given
// configuration.
func NewClient(config Config) (*Client, error) {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	if !strings.HasPrefix(baseURL, "https://") {
		return nil, fmt.Errorf("telegram: API client requires HTTPS (got %q)", baseURL)
	}
	if config.Token == "" {
		return nil, fmt.Errorf("telegram: no bot token configured")
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
		methodBase: baseURL + "/bot" + config.Token + "/",
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// APIError represents a non-ok response from the Telegram Bot API.
type APIError struct {
	// Code is the error_code field (mirrors HTTP status codes).
	Code int

	// Description is the human-readable error description.
	Description string
}

func (err *APIError) Error() string {
	return fmt.Sprintf("telegram: API error %d: %s", err.Code, err.Description)
}

// IsAPIError reports whether err is a *APIError with the given code.
func IsAPIError(err error, code int) bool {
	var apiError *APIError
	return errors.As(err, &apiError) && apiError.Code == code
}

// call invokes a Bot API method with a JSON payload and decodes the
// result field into result. The Bot API wraps every response in an
// {ok, result, error_code, description} envelope; a false ok becomes
// an *APIError regardless of the HTTP status.
func (client *Client) call(ctx context.Context, method string, payload any, result any) error {
	var bodyReader io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("telegram: encoding %s payload: %w", method, err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, client.methodBase+method, bodyReader)
	if err != nil {
		return fmt.Errorf("telegram: creating %s request: %w", method, err)
	}
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	response, err := client.httpClient.Do(request)
	if err != nil {
		// The *url.Error from the transport embeds the full request
		// URL, which contains the bot token. Keep only the underlying
		// cause; the method name carries the context.
		var urlError *url.Error
		if errors.As(err, &urlError) {
			err = urlError.Err
		}
		return fmt.Errorf("telegram: %s: %w", method, err)
	}
	defer response.Body.Close()

	var envelope struct {
		OK          bool            `json:"ok"`
		Result      json.RawMessage `json:"result"`
		ErrorCode   int             `json:"error_code"`
		Description string          `json:"description"`
	}
	if err := netutil.DecodeResponse(response.Body, &envelope); err != nil {
		return fmt.Errorf("telegram: parsing %s response: %w", method, err)
	}

	if !envelope.OK {
		return &APIError{Code: envelope.ErrorCode, Description: envelope.Description}
	}

	if result != nil {
		if err := json.Unmarshal(envelope.Result, result); err != nil {
			return fmt.Errorf("telegram: parsing %s result: %w", method, err)
		}
	}
	return nil
}

// GetMe returns the bot's own account. Useful for verifying the
// configured token before serving.
func (client *Client) GetMe(ctx context.Context) (*User, error) {
	var user User
	if err := client.call(ctx, "getMe", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// SendMessage sends a text message, optionally with a reply keyboard.
func (client *Client) SendMessage(ctx context.Context, request SendMessageRequest) (*Message, error) {
	var message Message
	if err := client.call(ctx, "sendMessage", request, &message); err != nil {
		return nil, fmt.Errorf("sending message to chat %d: %w", request.ChatID, err)
	}
	return &message, nil
}

// GetUpdates long-polls for incoming updates. The server holds the
// connection open for up to request.Timeout seconds when no updates
// are pending.
func (client *Client) GetUpdates(ctx context.Context, request GetUpdatesRequest) ([]Update, error) {
	var updates []Update
	if err := client.call(ctx, "getUpdates", request, &updates); err != nil {
		return nil, err
	}
	return updates, nil
}
