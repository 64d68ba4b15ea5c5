package usecase

import (
	"context"
	"fmt"
	"time"

	api "github.com/OvyFlash/telegram-bot-api"
	"github.com/iamvkosarev/post-generator-bot/config"
	"github.com/iamvkosarev/post-generator-bot/internal/model"
	"github.com/iamvkosarev/post-generator-bot/pkg/local"
	"github.com/sourcegraph/conc"
	"go.uber.org/zap"
)

const (
	typingRefreshInterval = 5 * time.Second
	generatedImageName    = "generated_image.png"
)

var CommandStartDescription = local.NewSet("Начать заново", local.NewTrans(local.Eng, "Start over"))

type BotAPI interface {
	Send(c api.Chattable) (api.Message, error)
	Request(c api.Chattable) (*api.APIResponse, error)
	GetUpdatesChan(u api.UpdateConfig) api.UpdatesChannel
	StopReceivingUpdates()
}

type MessageHandler interface {
	HandleMessage(ctx context.Context, msg model.IncomingMessage) error
}

type TelegramUsecaseDeps struct {
	Bot BotAPI
}

// TelegramUsecase receives updates by long polling and delivers replies.
type TelegramUsecase struct {
	TelegramUsecaseDeps
	cfg    config.Telegram
	logger *zap.Logger
}

func NewTelegramUsecase(
	cfg config.Telegram,
	language local.Language,
	deps TelegramUsecaseDeps,
	logger *zap.Logger,
) (*TelegramUsecase, error) {
	if _, err := deps.Bot.Request(api.DeleteWebhookConfig{}); err != nil {
		return nil, fmt.Errorf("failed to delete webhook: %w", err)
	}

	_, err := deps.Bot.Request(
		api.NewSetMyCommands(
			api.BotCommand{
				Command:     CommandStart,
				Description: CommandStartDescription.Text(language),
			},
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to set bot commands: %w", err)
	}

	return &TelegramUsecase{
		TelegramUsecaseDeps: deps,
		cfg:                 cfg,
		logger:              logger.Named("telegram"),
	}, nil
}

// Run dispatches text messages to the handler one at a time until ctx is done.
func (t *TelegramUsecase) Run(ctx context.Context, handler MessageHandler) error {
	u := api.NewUpdate(0)
	u.Timeout = t.cfg.PollTimeout

	updates := t.Bot.GetUpdatesChan(u)

	runCtx, cancel := context.WithCancel(ctx)
	wg := conc.NewWaitGroup()
	defer wg.Wait()
	defer cancel()
	wg.Go(
		func() {
			<-runCtx.Done()
			t.Bot.StopReceivingUpdates()
		},
	)

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message == nil || update.Message.From == nil {
				continue
			}
			t.handleUpdateMessage(ctx, handler, update.Message)
		}
	}
}

func (t *TelegramUsecase) handleUpdateMessage(ctx context.Context, handler MessageHandler, message *api.Message) {
	msg := model.IncomingMessage{
		UserID:      message.From.ID,
		ChatID:      message.Chat.ID,
		DisplayName: displayName(message.From),
		Text:        message.Text,
	}
	if message.IsCommand() {
		msg.Command = message.Command()
	}

	t.withTyping(
		ctx, msg.ChatID, func() {
			if err := handler.HandleMessage(ctx, msg); err != nil {
				t.logger.Error(
					"error handling message",
					zap.Error(err),
					zap.Int64("user_id", msg.UserID),
					zap.Int64("chat_id", msg.ChatID),
				)
			}
		},
	)
}

// withTyping keeps the typing indicator visible while fn runs.
func (t *TelegramUsecase) withTyping(ctx context.Context, chatID int64, fn func()) {
	typingCtx, cancel := context.WithCancel(ctx)
	wg := conc.NewWaitGroup()
	wg.Go(
		func() {
			ticker := time.NewTicker(typingRefreshInterval)
			defer ticker.Stop()
			for {
				if _, err := t.Bot.Request(api.NewChatAction(chatID, api.ChatTyping)); err != nil {
					t.logger.Debug("failed to send typing action", zap.Error(err), zap.Int64("chat_id", chatID))
				}
				select {
				case <-typingCtx.Done():
					return
				case <-ticker.C:
				}
			}
		},
	)

	fn()
	cancel()
	wg.Wait()
}

func (t *TelegramUsecase) SendText(ctx context.Context, chatID int64, text string, menu []string) error {
	msg := api.NewMessage(chatID, text)
	if len(menu) > 0 {
		msg.ReplyMarkup = newMenuKeyboard(menu)
	}
	return t.sendToBot(ctx, msg)
}

func (t *TelegramUsecase) SendPhoto(ctx context.Context, chatID int64, image []byte, caption string) error {
	photo := api.NewPhoto(
		chatID, api.FileBytes{
			Name:  generatedImageName,
			Bytes: image,
		},
	)
	photo.Caption = caption
	return t.sendToBot(ctx, photo)
}

func (t *TelegramUsecase) sendToBot(ctx context.Context, c api.Chattable) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := t.Bot.Send(c); err != nil {
		return fmt.Errorf("failed to send message to bot: %w", err)
	}
	return nil
}

func newMenuKeyboard(menu []string) api.ReplyKeyboardMarkup {
	rows := make([][]api.KeyboardButton, 0, len(menu))
	for _, item := range menu {
		rows = append(rows, api.NewKeyboardButtonRow(api.NewKeyboardButton(item)))
	}
	keyboard := api.NewReplyKeyboard(rows...)
	keyboard.ResizeKeyboard = true
	return keyboard
}

func displayName(user *api.User) string {
	if user == nil {
		return ""
	}
	if user.FirstName != "" {
		return user.FirstName
	}
	return user.UserName
}
