package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/iamvkosarev/post-generator-bot/config"
	"github.com/iamvkosarev/post-generator-bot/internal/model"
	"github.com/iamvkosarev/post-generator-bot/pkg/local"
	"github.com/sourcegraph/conc/panics"
	"go.uber.org/zap"
)

const captionEllipsis = "..."

type StyleStorage interface {
	SetTemperature(userID int64, temperature float64)
	GetTemperature(userID int64) (float64, bool)
}

type TextGenerator interface {
	GenerateText(ctx context.Context, topic string, temperature float64) string
}

type ImageGenerator interface {
	GenerateImage(ctx context.Context, topic string) []byte
}

// Messenger delivers replies to a chat. A non-empty menu replaces the
// chat keyboard.
type Messenger interface {
	SendText(ctx context.Context, chatID int64, text string, menu []string) error
	SendPhoto(ctx context.Context, chatID int64, image []byte, caption string) error
}

type PostJournal interface {
	Record(ctx context.Context, post model.Post) error
}

type ConversationUsecaseDeps struct {
	Styles      StyleStorage
	Text        TextGenerator
	Image       ImageGenerator
	Messenger   Messenger
	// Journal and CountTokens are optional.
	Journal     PostJournal
	CountTokens func(text string) (int, error)
}

// ConversationUsecase routes user messages: /start, style selection and
// topics, which go through the text then image generation pipeline.
type ConversationUsecase struct {
	ConversationUsecaseDeps
	styleSelection bool
	language       local.Language
	captionLimit   int
	logger         *zap.Logger
	now            func() time.Time
}

func NewConversationUsecase(deps ConversationUsecaseDeps, cfg config.Bot, logger *zap.Logger) *ConversationUsecase {
	return &ConversationUsecase{
		ConversationUsecaseDeps: deps,
		styleSelection:          cfg.StyleSelection(),
		language:                local.ParseLanguage(cfg.Language, local.Rus),
		captionLimit:            cfg.CaptionLimit,
		logger:                  logger.Named("conversation"),
		now:                     time.Now,
	}
}

func (c *ConversationUsecase) HandleMessage(ctx context.Context, msg model.IncomingMessage) error {
	if msg.Command == CommandStart {
		return c.start(ctx, msg)
	}
	if strings.TrimSpace(msg.Text) == "" {
		return nil
	}

	if !msg.IsCommand() {
		if c.styleSelection {
			if style, ok := model.MatchStyle(msg.Text, c.language); ok {
				return c.selectStyle(ctx, msg, style)
			}
		} else if msg.Text == ButtonGeneratePost.Text(c.language) {
			return c.send(ctx, msg.ChatID, MessageAskTopic.Text(c.language), nil)
		}
	}

	c.generatePost(ctx, msg)
	return nil
}

func (c *ConversationUsecase) start(ctx context.Context, msg model.IncomingMessage) error {
	c.Styles.SetTemperature(msg.UserID, model.DefaultTemperature)

	name := c.displayName(msg)
	if !c.styleSelection {
		return c.send(
			ctx, msg.ChatID, MessageCommandStartSimple.Format(c.language, name),
			[]string{ButtonGeneratePost.Text(c.language)},
		)
	}

	styleLines := strings.Builder{}
	for _, style := range model.Styles() {
		styleLines.WriteString(
			MessageStyleLine.Format(c.language, style.Label.Text(c.language), style.Description.Text(c.language)),
		)
	}
	return c.send(
		ctx, msg.ChatID, MessageCommandStartStyles.Format(c.language, name, styleLines.String()),
		model.StyleLabels(c.language),
	)
}

func (c *ConversationUsecase) selectStyle(ctx context.Context, msg model.IncomingMessage, style model.Style) error {
	c.Styles.SetTemperature(msg.UserID, style.Temperature)
	c.logger.Debug(
		"style selected",
		zap.Int64("user_id", msg.UserID),
		zap.String("style", string(style.ID)),
		zap.Float64("temperature", style.Temperature),
	)
	return c.send(ctx, msg.ChatID, MessageStyleSelected.Format(c.language, style.Label.Text(c.language)), nil)
}

// generatePost runs the pipeline for a topic. Every failure inside it,
// panics included, ends in a single generic error reply.
func (c *ConversationUsecase) generatePost(ctx context.Context, msg model.IncomingMessage) {
	logger := c.logger.With(
		zap.String("request_id", uuid.NewString()),
		zap.Int64("user_id", msg.UserID),
		zap.Int64("chat_id", msg.ChatID),
	)
	name := c.displayName(msg)

	if err := c.send(ctx, msg.ChatID, MessageGenerating.Format(c.language, name), nil); err != nil {
		logger.Warn("failed to send acknowledgment", zap.Error(err))
	}

	var (
		post model.Post
		sent bool
		err  error
	)
	var pc panics.Catcher
	pc.Try(
		func() {
			post, sent, err = c.deliverPost(ctx, logger, msg, name)
		},
	)
	if recovered := pc.Recovered(); recovered != nil {
		err = recovered.AsError()
	}
	if err != nil {
		logger.Error("failed to generate post", zap.Error(err))
		if sendErr := c.send(ctx, msg.ChatID, MessageUnexpectedError.Text(c.language), nil); sendErr != nil {
			logger.Error("failed to send error message", zap.Error(sendErr))
		}
		return
	}
	if !sent {
		return
	}

	if c.Journal != nil {
		if err = c.Journal.Record(ctx, post); err != nil {
			logger.Warn("failed to record post", zap.Error(err))
		}
	}
	logger.Info("post delivered", zap.Bool("has_image", post.HasImage), zap.Int("tokens", post.Tokens))
}

// deliverPost reports sent=false when the text could not be generated and
// the user was told so.
func (c *ConversationUsecase) deliverPost(
	ctx context.Context,
	logger *zap.Logger,
	msg model.IncomingMessage,
	name string,
) (model.Post, bool, error) {
	request := model.GenerationRequest{
		Topic:       msg.Text,
		Temperature: c.temperature(msg.UserID),
	}

	var result model.GenerationResult
	result.Text = c.Text.GenerateText(ctx, request.Topic, request.Temperature)
	if strings.TrimSpace(result.Text) == "" {
		logger.Warn("generated text is empty")
		if err := c.send(ctx, msg.ChatID, MessageEmptyText.Text(c.language), nil); err != nil {
			return model.Post{}, false, fmt.Errorf("failed to send empty text notice: %w", err)
		}
		return model.Post{}, false, nil
	}

	result.Image = c.Image.GenerateImage(ctx, request.Topic)
	if result.HasImage() {
		caption := truncateCaption(result.Text, c.captionLimit)
		if err := c.Messenger.SendPhoto(ctx, msg.ChatID, result.Image, caption); err != nil {
			return model.Post{}, false, fmt.Errorf("failed to send photo: %w", err)
		}
	} else {
		text := MessagePostWithoutImage.Format(c.language, name, result.Text)
		if err := c.send(ctx, msg.ChatID, text, nil); err != nil {
			return model.Post{}, false, fmt.Errorf("failed to send post: %w", err)
		}
	}

	return model.Post{
		ID:          uuid.New(),
		UserID:      msg.UserID,
		Topic:       request.Topic,
		Temperature: request.Temperature,
		TextLength:  utf8.RuneCountInString(result.Text),
		Tokens:      c.countTokens(logger, result.Text),
		HasImage:    result.HasImage(),
		CreatedAt:   c.now(),
	}, true, nil
}

func (c *ConversationUsecase) temperature(userID int64) float64 {
	if temperature, ok := c.Styles.GetTemperature(userID); ok {
		return temperature
	}
	return model.DefaultTemperature
}

func (c *ConversationUsecase) countTokens(logger *zap.Logger, text string) int {
	if c.CountTokens == nil {
		return 0
	}
	tokens, err := c.CountTokens(text)
	if err != nil {
		logger.Warn("failed to count tokens", zap.Error(err))
		return 0
	}
	return tokens
}

func (c *ConversationUsecase) displayName(msg model.IncomingMessage) string {
	if msg.DisplayName != "" {
		return msg.DisplayName
	}
	return MessageDefaultUserName.Text(c.language)
}

func (c *ConversationUsecase) send(ctx context.Context, chatID int64, text string, menu []string) error {
	if err := c.Messenger.SendText(ctx, chatID, text, menu); err != nil {
		return fmt.Errorf("failed to send message to chat %d: %w", chatID, err)
	}
	return nil
}

// truncateCaption cuts text to limit characters and marks the cut with an
// ellipsis.
func truncateCaption(text string, limit int) string {
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	runes := []rune(text)
	return string(runes[:limit]) + captionEllipsis
}
