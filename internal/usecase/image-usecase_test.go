package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/iamvkosarev/post-generator-bot/config"
	"github.com/iamvkosarev/post-generator-bot/pkg/local"
	"github.com/iamvkosarev/post-generator-bot/pkg/mistral"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeImageClient struct {
	createErr    error
	conversation mistral.ConversationResponse
	startErr     error
	content      []byte
	downloadErr  error
	block        bool

	agentReq      mistral.AgentRequest
	startReq      mistral.ConversationRequest
	downloadedIDs []string
}

func (f *fakeImageClient) CreateAgent(ctx context.Context, req mistral.AgentRequest) (mistral.Agent, error) {
	f.agentReq = req
	if f.block {
		<-ctx.Done()
		return mistral.Agent{}, ctx.Err()
	}
	if f.createErr != nil {
		return mistral.Agent{}, f.createErr
	}
	return mistral.Agent{ID: "ag-1"}, nil
}

func (f *fakeImageClient) StartConversation(
	_ context.Context,
	req mistral.ConversationRequest,
) (mistral.ConversationResponse, error) {
	f.startReq = req
	return f.conversation, f.startErr
}

func (f *fakeImageClient) DownloadFile(_ context.Context, fileID string) ([]byte, error) {
	f.downloadedIDs = append(f.downloadedIDs, fileID)
	return f.content, f.downloadErr
}

func conversationWithFile(fileID string) mistral.ConversationResponse {
	return mistral.ConversationResponse{
		ConversationID: "conv-1",
		Outputs: []mistral.Entry{
			{Type: "tool.execution"},
			{
				Type: "message.output",
				Content: []mistral.Chunk{
					mistral.TextChunk{Text: "done"},
					mistral.ToolFileChunk{Tool: "image_generation", FileID: fileID},
				},
			},
		},
	}
}

func newTestImageUsecase(client ImageClient, timeout time.Duration) (*ImageUsecase, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	cfg := config.Mistral{ImageModel: "mistral-medium-2505", RequestTimeout: timeout}
	return NewImageUsecase(cfg, client, local.Rus, zap.New(core)), logs
}

func TestImageUsecase_GenerateImage(t *testing.T) {
	client := &fakeImageClient{
		conversation: conversationWithFile("file-1"),
		content:      []byte("png-bytes"),
	}
	images, _ := newTestImageUsecase(client, time.Second)

	image := images.GenerateImage(context.Background(), "кофе")
	if string(image) != "png-bytes" {
		t.Errorf("GenerateImage() = %q, want png-bytes", image)
	}

	req := client.agentReq
	if req.Model != "mistral-medium-2505" || req.Name != "Агент генерации изображений" {
		t.Errorf("agent request = %+v", req)
	}
	if len(req.Tools) != 1 || req.Tools[0].Type != mistral.ToolImageGeneration {
		t.Errorf("tools = %+v", req.Tools)
	}
	if *req.CompletionArgs.Temperature != 0.5 || *req.CompletionArgs.TopP != 0.9 {
		t.Errorf("completion args = %v/%v", *req.CompletionArgs.Temperature, *req.CompletionArgs.TopP)
	}
	wantInputs := "Создай уникальное и привлекательное изображение по запросу: 'кофе'. " +
		"Изображение должно соответствовать теме поста. Сгенерируй только одно изображение."
	if client.startReq.AgentID != "ag-1" || client.startReq.Inputs != wantInputs {
		t.Errorf("conversation request = %+v", client.startReq)
	}
	if len(client.downloadedIDs) != 1 || client.downloadedIDs[0] != "file-1" {
		t.Errorf("downloaded = %v", client.downloadedIDs)
	}
}

func TestImageUsecase_Absent(t *testing.T) {
	tests := []struct {
		name      string
		client    *fakeImageClient
		timeout   time.Duration
		wantLog   string
		wantFetch bool
	}{
		{
			name:    "create agent fails",
			client:  &fakeImageClient{createErr: errors.New("401")},
			wantLog: "failed to create image agent",
		},
		{
			name:    "conversation fails",
			client:  &fakeImageClient{startErr: errors.New("rate limited")},
			wantLog: "failed to start image conversation",
		},
		{
			name: "no tool file",
			client: &fakeImageClient{conversation: mistral.ConversationResponse{
				Outputs: []mistral.Entry{{Type: "message.output", Content: []mistral.Chunk{mistral.TextChunk{Text: "no"}}}},
			}},
			wantLog: "agent did not produce an image or response shape changed",
		},
		{
			name: "download fails",
			client: &fakeImageClient{
				conversation: conversationWithFile("file-2"),
				downloadErr:  errors.New("404"),
			},
			wantLog:   "failed to download image",
			wantFetch: true,
		},
		{
			name:      "empty download",
			client:    &fakeImageClient{conversation: conversationWithFile("file-3")},
			wantLog:   "downloaded image is empty",
			wantFetch: true,
		},
		{
			name:    "timeout",
			client:  &fakeImageClient{block: true},
			timeout: 20 * time.Millisecond,
			wantLog: "failed to create image agent",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			timeout := tc.timeout
			if timeout == 0 {
				timeout = time.Second
			}
			images, logs := newTestImageUsecase(tc.client, timeout)

			if image := images.GenerateImage(context.Background(), "topic"); image != nil {
				t.Errorf("GenerateImage() = %q, want nil", image)
			}
			if logs.FilterMessage(tc.wantLog).Len() != 1 {
				t.Errorf("expected log %q, got %v", tc.wantLog, logs.All())
			}
			if fetched := len(tc.client.downloadedIDs) > 0; fetched != tc.wantFetch {
				t.Errorf("download called = %v, want %v", fetched, tc.wantFetch)
			}
		})
	}
}
