package app

import (
	"context"
	"fmt"
	"time"

	api "github.com/OvyFlash/telegram-bot-api"
	"github.com/iamvkosarev/post-generator-bot/config"
	in_memory "github.com/iamvkosarev/post-generator-bot/internal/storage/in-memory"
	key_value "github.com/iamvkosarev/post-generator-bot/internal/storage/key-value"
	"github.com/iamvkosarev/post-generator-bot/internal/usecase"
	"github.com/iamvkosarev/post-generator-bot/pkg/local"
	"github.com/iamvkosarev/post-generator-bot/pkg/mistral"
	openai_tools "github.com/iamvkosarev/post-generator-bot/pkg/openai-tools"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const redisPingTimeout = 5 * time.Second

func Run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	language := local.ParseLanguage(cfg.Bot.Language, local.Rus)

	bot, err := api.NewBotAPI(cfg.Telegram.TelegramAPIToken)
	if err != nil {
		return fmt.Errorf("failed to create new bot: %w", err)
	}
	bot.Debug = cfg.Telegram.Debug
	logger.Info("authorized on account", zap.String("username", bot.Self.UserName))

	journal, closeJournal, err := newPostJournal(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeJournal()

	textUsecase, err := usecase.NewTextUsecase(cfg.Mistral, language, logger)
	if err != nil {
		return fmt.Errorf("failed to create text usecase: %w", err)
	}

	mistralClient := mistral.NewClient(cfg.Mistral.APIKey, mistral.WithBaseURL(cfg.Mistral.BaseURL))
	imageUsecase := usecase.NewImageUsecase(cfg.Mistral, mistralClient, language, logger)

	telegramUsecase, err := usecase.NewTelegramUsecase(
		cfg.Telegram, language, usecase.TelegramUsecaseDeps{
			Bot: bot,
		}, logger,
	)
	if err != nil {
		return fmt.Errorf("failed to create telegram usecase: %w", err)
	}

	conversationUsecase := usecase.NewConversationUsecase(
		usecase.ConversationUsecaseDeps{
			Styles:    in_memory.NewStyleStorage(),
			Text:      textUsecase,
			Image:     imageUsecase,
			Messenger: telegramUsecase,
			Journal:   journal,
			CountTokens: func(text string) (int, error) {
				return openai_tools.CountToken(text, cfg.Mistral.TextModel)
			},
		}, cfg.Bot, logger,
	)

	logger.Info(
		"bot started",
		zap.String("flow", cfg.Bot.Flow),
		zap.String("language", string(language)),
		zap.Bool("redis", cfg.Redis.Enabled),
	)
	return telegramUsecase.Run(ctx, conversationUsecase)
}

// newPostJournal picks the Redis journal when enabled, the in-memory one otherwise.
func newPostJournal(ctx context.Context, cfg *config.Config, logger *zap.Logger) (usecase.PostJournal, func(), error) {
	if !cfg.Redis.Enabled {
		journal, err := in_memory.NewPostStorage(cfg.Journal.Size)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create post journal: %w", err)
		}
		return journal, func() {}, nil
	}

	rdb := redis.NewClient(
		&redis.Options{
			Addr: cfg.Redis.Endpoint,
		},
	)
	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, fmt.Errorf("failed to connect to redis %s: %w", cfg.Redis.Endpoint, err)
	}

	journal, err := key_value.NewPostStorage(rdb, cfg.Journal.Size)
	if err != nil {
		_ = rdb.Close()
		return nil, nil, fmt.Errorf("failed to create post journal: %w", err)
	}
	closeJournal := func() {
		if err := rdb.Close(); err != nil {
			logger.Warn("failed to close redis client", zap.Error(err))
		}
	}
	return journal, closeJournal, nil
}
