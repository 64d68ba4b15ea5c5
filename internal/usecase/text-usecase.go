package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/iamvkosarev/post-generator-bot/config"
	"github.com/iamvkosarev/post-generator-bot/pkg/local"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

var (
	ErrNoChoices = errors.New("completion has no choices")
)

// TextUsecase writes post texts through Mistral's OpenAI compatible chat
// completions endpoint.
type TextUsecase struct {
	cfg      config.Mistral
	client   *openai.Client
	language local.Language
	logger   *zap.Logger
}

func NewTextUsecase(cfg config.Mistral, language local.Language, logger *zap.Logger) (*TextUsecase, error) {
	baseURL, err := url.JoinPath(cfg.BaseURL, "/v1")
	if err != nil {
		return nil, fmt.Errorf("failed to build base url: %w", err)
	}
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = baseURL

	return &TextUsecase{
		cfg:      cfg,
		client:   openai.NewClientWithConfig(clientConfig),
		language: language,
		logger:   logger.Named("text"),
	}, nil
}

// GenerateText returns the post text for the topic. Failures are not
// returned: the caller gets a fixed explanatory text instead.
func (t *TextUsecase) GenerateText(ctx context.Context, topic string, temperature float64) string {
	text, err := t.complete(ctx, topic, temperature)
	if err == nil {
		return text
	}

	if isAuthError(err) {
		t.logger.Error("text generation rejected, check api key", zap.Error(err))
		return MessageTextAuthError.Text(t.language)
	}
	t.logger.Error("failed to generate text", zap.Error(err), zap.Float64("temperature", temperature))
	return MessageTextError.Text(t.language)
}

func (t *TextUsecase) complete(ctx context.Context, topic string, temperature float64) (string, error) {
	if t.cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.cfg.RequestTimeout)
		defer cancel()
	}

	req := openai.ChatCompletionRequest{
		Model:       t.cfg.TextModel,
		Temperature: float32(temperature),
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: PromptTextSystem.Text(t.language),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: PromptTextUser.Format(t.language, topic),
			},
		},
	}

	resp, err := t.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}
	return resp.Choices[0].Message.Content, nil
}

func isAuthError(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && isAuthStatus(apiErr.HTTPStatusCode) {
		return true
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && isAuthStatus(reqErr.HTTPStatusCode) {
		return true
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "authenticationerror") ||
		strings.Contains(msg, "invalid api key") ||
		strings.Contains(msg, "unauthorized")
}

func isAuthStatus(code int) bool {
	return code == http.StatusUnauthorized || code == http.StatusForbidden
}
