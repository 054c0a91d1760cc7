// Copyright 2026 The Botfactory Authors
// SPDX-License-Identifier: Apache-2.0

package telegram

import (
	"context"
	"log/slog"
	"time"

	"github.com/VladislavG32/telegram-bot-manager/lib/clock"
)

// UpdateLoopConfig configures the getUpdates long-poll loop.
type UpdateLoopConfig struct {
	// Timeout is the long-poll timeout in seconds. The server holds
	// the connection open for this duration when no updates are
	// available. Default: 30.
	Timeout int

	// MaxBackoff is the maximum duration between poll attempts after
	// transient errors. The loop uses exponential backoff starting at
	// 1 second. Default: 30 seconds.
	MaxBackoff time.Duration
}

// UpdateHandler is called for each incoming update, in arrival order.
// The next poll starts after the handler returns, so handlers must not
// block on slow work — dispatch it and return.
type UpdateHandler func(ctx context.Context, update Update)

// RunUpdateLoop runs the getUpdates long-poll loop. It polls the Bot
// API and calls handler for each update, advancing the offset so each
// update is delivered once. The loop continues until ctx is cancelled.
//
// On transient errors the loop retries with exponential backoff
// (1 second doubling to config.MaxBackoff). This pacing keeps a broken
// network from spinning the loop; it is not a retry of any
// conversation side effect — failed updates are simply polled again by
// the server's redelivery.
func RunUpdateLoop(ctx context.Context, client *Client, config UpdateLoopConfig, handler UpdateHandler, clk clock.Clock, logger *slog.Logger) {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = 30
	}
	maxBackoff := config.MaxBackoff
	if maxBackoff == 0 {
		maxBackoff = 30 * time.Second
	}

	backoff := time.Second
	var offset int64

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		updates, err := client.GetUpdates(ctx, GetUpdatesRequest{
			Offset:         offset,
			Timeout:        timeout,
			AllowedUpdates: []string{"message"},
		})
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Error("getUpdates failed, retrying", "error", err, "backoff", backoff)
			select {
			case <-ctx.Done():
				return
			case <-clk.After(backoff):
			}
			backoff *= 2
			if backoff > maxBackoff {
				backoff = maxBackoff
			}
			continue
		}

		backoff = time.Second

		for _, update := range updates {
			if update.UpdateID >= offset {
				offset = update.UpdateID + 1
			}
			handler(ctx, update)
		}
	}
}
