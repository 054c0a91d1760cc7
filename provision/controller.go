// Copyright 2026 The Botfactory Authors
// SPDX-License-Identifier: Apache-2.0

package provision

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/VladislavG32/telegram-bot-manager/lib/github"
	"github.com/VladislavG32/telegram-bot-manager/lib/railway"
	"github.com/VladislavG32/telegram-bot-manager/lib/templates"
	"github.com/VladislavG32/telegram-bot-manager/telegram"
)

// Provisioner creates a repository from a template. *github.Client
// satisfies this.
type Provisioner interface {
	CreateFromTemplate(ctx context.Context, template templates.Coordinate, newName string) (*github.Repository, error)
}

// Deployer starts a deployment of a freshly created repository.
// *railway.Client satisfies this.
type Deployer interface {
	TriggerDeployment(ctx context.Context, request railway.DeployRequest) error
}

// Messenger delivers replies to the chat surface. *telegram.Client
// satisfies this.
type Messenger interface {
	SendMessage(ctx context.Context, request telegram.SendMessageRequest) (*telegram.Message, error)
}

// Config carries the controller's dependencies. All fields except
// Logger are required.
type Config struct {
	Registry    *templates.Registry
	Provisioner Provisioner
	Deployer    Deployer
	Messenger   Messenger
	Logger      *slog.Logger
}

// Controller drives the provisioning conversation. It owns the session
// map exclusively: every transition happens inside HandleUpdate or a
// provisioning goroutine it dispatched, so the handler can be called
// from a single update loop without further coordination.
type Controller struct {
	registry    *templates.Registry
	provisioner Provisioner
	deployer    Deployer
	messenger   Messenger
	logger      *slog.Logger

	store    *sessionStore
	inflight sync.WaitGroup
}

// NewController validates the dependencies and builds a Controller.
func NewController(config Config) (*Controller, error) {
	var problems []error
	if config.Registry == nil {
		problems = append(problems, errors.New("provision: Config.Registry is required"))
	}
	if config.Provisioner == nil {
		problems = append(problems, errors.New("provision: Config.Provisioner is required"))
	}
	if config.Deployer == nil {
		problems = append(problems, errors.New("provision: Config.Deployer is required"))
	}
	if config.Messenger == nil {
		problems = append(problems, errors.New("provision: Config.Messenger is required"))
	}
	if err := errors.Join(problems...); err != nil {
		return nil, err
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		registry:    config.Registry,
		provisioner: config.Provisioner,
		deployer:    config.Deployer,
		messenger:   config.Messenger,
		logger:      logger,
		store:       newSessionStore(),
	}, nil
}

// HandleUpdate advances the conversation for one incoming update.
// Quick steps (prompts, validation re-prompts) complete synchronously;
// the naming step dispatches the repository creation and deployment to
// a goroutine so one user's provisioning never blocks another's
// conversation.
func (controller *Controller) HandleUpdate(ctx context.Context, update telegram.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}
	chatID := update.Message.Chat.ID
	text := strings.TrimSpace(update.Message.Text)

	session, active := controller.store.get(chatID)
	if active && session.Provisioning {
		// A creation run is in flight for this chat. Nothing may touch
		// the session until it reports, commands included.
		controller.send(ctx, telegram.SendMessageRequest{
			ChatID: chatID,
			Text:   "Still working on your previous request, hang on.",
		})
		return
	}

	switch {
	case text == "/start":
		controller.handleStart(ctx, chatID)
	case text == "/cancel":
		controller.handleCancel(ctx, chatID, active)
	case !active:
		controller.send(ctx, telegram.SendMessageRequest{
			ChatID: chatID,
			Text:   "Send /start to create a new bot.",
		})
	default:
		controller.handleStep(ctx, chatID, session, text)
	}
}

// Wait blocks until all dispatched provisioning runs have reported.
// Called at shutdown, after the update loop has stopped.
func (controller *Controller) Wait() {
	controller.inflight.Wait()
}

func (controller *Controller) handleStart(ctx context.Context, chatID int64) {
	// /start from any state discards the previous conversation.
	controller.store.put(chatID, Session{State: StateChoosingTemplate})
	labels := controller.registry.Labels()
	controller.send(ctx, telegram.SendMessageRequest{
		ChatID:      chatID,
		Text:        "Hi! Let's create a new bot. Choose a template:",
		ReplyMarkup: telegram.SingleRowKeyboard("Template", labels...),
	})
}

func (controller *Controller) handleCancel(ctx context.Context, chatID int64, active bool) {
	if !active {
		controller.send(ctx, telegram.SendMessageRequest{
			ChatID: chatID,
			Text:   "Nothing to cancel. Send /start to create a new bot.",
		})
		return
	}
	controller.store.delete(chatID)
	controller.send(ctx, telegram.SendMessageRequest{
		ChatID:      chatID,
		Text:        "Cancelled. Send /start whenever you want to try again.",
		ReplyMarkup: telegram.ReplyKeyboardRemove{RemoveKeyboard: true},
	})
}

func (controller *Controller) handleStep(ctx context.Context, chatID int64, session Session, text string) {
	switch session.State {
	case StateChoosingTemplate:
		coordinate, known := controller.registry.Lookup(text)
		if !known {
			controller.send(ctx, telegram.SendMessageRequest{
				ChatID:      chatID,
				Text:        "I don't know that template. Pick one of the options below:",
				ReplyMarkup: telegram.SingleRowKeyboard("Template", controller.registry.Labels()...),
			})
			return
		}
		session.Template = coordinate
		session.State = StateGettingToken
		controller.store.put(chatID, session)
		controller.send(ctx, telegram.SendMessageRequest{
			ChatID:      chatID,
			Text:        "Now send me the bot token you got from @BotFather.",
			ReplyMarkup: telegram.ReplyKeyboardRemove{RemoveKeyboard: true},
		})

	case StateGettingToken:
		if !telegram.ValidateBotToken(text) {
			controller.send(ctx, telegram.SendMessageRequest{
				ChatID: chatID,
				Text:   "That doesn't look like a valid bot token. Send it exactly as @BotFather gave it to you.",
			})
			return
		}
		session.BotToken = text
		session.State = StateNaming
		controller.store.put(chatID, session)
		controller.send(ctx, telegram.SendMessageRequest{
			ChatID: chatID,
			Text:   "Almost done. What should the new repository be called?",
		})

	case StateNaming:
		session.Provisioning = true
		controller.store.put(chatID, session)
		controller.send(ctx, telegram.SendMessageRequest{
			ChatID: chatID,
			Text:   fmt.Sprintf("Creating %s from %s, this can take a moment...", text, session.Template),
		})
		controller.inflight.Add(1)
		// Detach from the update's context: a process shutdown waits
		// for in-flight runs via Wait instead of aborting them halfway
		// through the repository/deployment pair.
		go controller.provision(context.WithoutCancel(ctx), chatID, session, text)
	}
}

// provision runs the repository creation and deployment trigger for
// one chat, reports the combined outcome, and clears the session.
func (controller *Controller) provision(ctx context.Context, chatID int64, session Session, name string) {
	defer controller.inflight.Done()
	defer controller.store.delete(chatID)

	repository, err := controller.provisioner.CreateFromTemplate(ctx, session.Template, name)
	if err != nil {
		controller.logger.Error("repository creation failed",
			"chat_id", chatID,
			"template", session.Template.String(),
			"name", name,
			"error", err)
		controller.send(ctx, telegram.SendMessageRequest{
			ChatID: chatID,
			Text:   creationFailureText(err),
		})
		return
	}

	deployErr := controller.deployer.TriggerDeployment(ctx, railway.DeployRequest{
		Owner:    repository.Owner.Login,
		Repo:     repository.Name,
		Branch:   repository.DefaultBranch,
		BotToken: session.BotToken,
	})
	if deployErr != nil {
		controller.logger.Error("deployment trigger failed",
			"chat_id", chatID,
			"repository", repository.FullName,
			"error", deployErr)
		controller.send(ctx, telegram.SendMessageRequest{
			ChatID: chatID,
			Text: fmt.Sprintf("Repository created: %s\nStarting the deployment failed, though. Deploy it manually from the Railway dashboard.",
				repository.HTMLURL),
		})
		return
	}

	controller.logger.Info("bot provisioned",
		"chat_id", chatID,
		"repository", repository.FullName)
	controller.send(ctx, telegram.SendMessageRequest{
		ChatID: chatID,
		Text:   fmt.Sprintf("Done! Repository created: %s\nDeployment started on Railway.", repository.HTMLURL),
	})
}

// creationFailureText maps a repository-creation error to the
// user-facing report.
func creationFailureText(err error) string {
	switch {
	case github.IsNotFound(err):
		return "The template repository could not be found. It may have been moved or is no longer marked as a template."
	case github.IsUnauthorized(err):
		return "GitHub rejected the configured credentials. The operator needs to check the access token."
	case github.IsInvalidRequest(err):
		return fmt.Sprintf("GitHub rejected the request, most likely the repository name is already taken: %v", err)
	default:
		return fmt.Sprintf("Creating the repository failed: %v", err)
	}
}

// send delivers a reply and logs delivery failures. A lost reply is
// not retried; the conversation state has already moved on.
func (controller *Controller) send(ctx context.Context, request telegram.SendMessageRequest) {
	if _, err := controller.messenger.SendMessage(ctx, request); err != nil {
		controller.logger.Error("sending reply failed", "chat_id", request.ChatID, "error", err)
	}
}
