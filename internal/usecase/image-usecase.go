package usecase

import (
	"context"

	"github.com/iamvkosarev/post-generator-bot/config"
	"github.com/iamvkosarev/post-generator-bot/pkg/local"
	"github.com/iamvkosarev/post-generator-bot/pkg/mistral"
	"go.uber.org/zap"
)

const (
	imageAgentTemperature = 0.5
	imageAgentTopP        = 0.9
)

type ImageClient interface {
	CreateAgent(ctx context.Context, req mistral.AgentRequest) (mistral.Agent, error)
	StartConversation(ctx context.Context, req mistral.ConversationRequest) (mistral.ConversationResponse, error)
	DownloadFile(ctx context.Context, fileID string) ([]byte, error)
}

// ImageUsecase draws a picture for a topic with a Mistral agent that has
// the image generation tool.
type ImageUsecase struct {
	cfg      config.Mistral
	client   ImageClient
	language local.Language
	logger   *zap.Logger
}

func NewImageUsecase(cfg config.Mistral, client ImageClient, language local.Language, logger *zap.Logger) *ImageUsecase {
	return &ImageUsecase{
		cfg:      cfg,
		client:   client,
		language: language,
		logger:   logger.Named("image"),
	}
}

// GenerateImage returns the image bytes, or nil when no image could be
// produced. Failures are logged, never returned.
func (i *ImageUsecase) GenerateImage(ctx context.Context, topic string) []byte {
	temperature, topP := imageAgentTemperature, imageAgentTopP

	var agent mistral.Agent
	err := i.withTimeout(ctx, func(ctx context.Context) (err error) {
		agent, err = i.client.CreateAgent(
			ctx, mistral.AgentRequest{
				Model:        i.cfg.ImageModel,
				Name:         PromptImageAgentName.Text(i.language),
				Description:  PromptImageAgentDescription.Text(i.language),
				Instructions: PromptImageAgentInstructions.Text(i.language),
				Tools:        []mistral.Tool{{Type: mistral.ToolImageGeneration}},
				CompletionArgs: &mistral.CompletionArgs{
					Temperature: &temperature,
					TopP:        &topP,
				},
			},
		)
		return err
	})
	if err != nil {
		i.logger.Error("failed to create image agent", zap.Error(err))
		return nil
	}

	var conversation mistral.ConversationResponse
	err = i.withTimeout(ctx, func(ctx context.Context) (err error) {
		conversation, err = i.client.StartConversation(
			ctx, mistral.ConversationRequest{
				AgentID: agent.ID,
				Inputs:  PromptImageRequest.Format(i.language, topic),
			},
		)
		return err
	})
	if err != nil {
		i.logger.Error("failed to start image conversation", zap.Error(err), zap.String("agent_id", agent.ID))
		return nil
	}

	file, ok := conversation.FirstToolFile()
	if !ok || file.FileID == "" {
		i.logger.Warn(
			"agent did not produce an image or response shape changed",
			zap.String("conversation_id", conversation.ConversationID),
			zap.Int("outputs", len(conversation.Outputs)),
		)
		return nil
	}

	var image []byte
	err = i.withTimeout(ctx, func(ctx context.Context) (err error) {
		image, err = i.client.DownloadFile(ctx, file.FileID)
		return err
	})
	if err != nil {
		i.logger.Error("failed to download image", zap.Error(err), zap.String("file_id", file.FileID))
		return nil
	}
	if len(image) == 0 {
		i.logger.Warn("downloaded image is empty", zap.String("file_id", file.FileID))
		return nil
	}
	return image
}

func (i *ImageUsecase) withTimeout(ctx context.Context, call func(ctx context.Context) error) error {
	if i.cfg.RequestTimeout <= 0 {
		return call(ctx)
	}
	ctx, cancel := context.WithTimeout(ctx, i.cfg.RequestTimeout)
	defer cancel()
	return call(ctx)
}
