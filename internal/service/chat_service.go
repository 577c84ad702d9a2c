package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"hs-chat-be/internal/constant"
	"hs-chat-be/internal/dto"
	"hs-chat-be/internal/pkg/logger"
	"hs-chat-be/pkg/llm"
	"hs-chat-be/pkg/retrieval"
	"hs-chat-be/pkg/retrieval/fetch"
	"hs-chat-be/pkg/scenario"
)

// ErrInvalidInput marks a request with neither text nor image.
var ErrInvalidInput = errors.New("message or image is required")

// Retriever is the grounding-document source for one turn.
type Retriever interface {
	Retrieve(ctx context.Context, message, query string) retrieval.Result
}

// Classifier resolves the turn's scenario label.
type Classifier interface {
	Classify(ctx context.Context, message string, history []llm.Message) scenario.Name
}

// IChatService defines the chat service interface
type IChatService interface {
	SendChat(ctx context.Context, request *dto.SendChatRequest) (*dto.SendChatResponse, error)
}

// chatService runs the per-turn pipeline: validate, intercept,
// classify, retrieve, assemble, generate, finalize.
type chatService struct {
	llmProvider llm.LLMProvider
	classifier  Classifier
	retriever   Retriever
	appLogger   logger.ILogger
	pipeLogger  *log.Logger

	temperature float64
	maxTokens   int
	maxRetries  int
	backoffBase time.Duration
}

func NewChatService(
	llmProvider llm.LLMProvider,
	classifier Classifier,
	retriever Retriever,
	appLogger logger.ILogger,
	temperature float64,
	maxTokens int,
	maxRetries int,
) IChatService {
	return &chatService{
		llmProvider: llmProvider,
		classifier:  classifier,
		retriever:   retriever,
		appLogger:   appLogger,
		pipeLogger:  initPipelineLogger(),
		temperature: temperature,
		maxTokens:   maxTokens,
		maxRetries:  maxRetries,
		backoffBase: time.Second,
	}
}

// initPipelineLogger keeps the chatty per-turn trace out of the main
// application log.
func initPipelineLogger() *log.Logger {
	logPath := filepath.Join(".", "logs", "chat_pipeline.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		log.Printf("Failed to create logs directory: %v", err)
	}
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return log.New(os.Stdout, "[PIPELINE] ", log.LstdFlags)
	}
	return log.New(file, "", log.LstdFlags)
}

func (cs *chatService) SendChat(ctx context.Context, request *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	message := strings.TrimSpace(request.Message)
	if message == "" && request.Image == "" {
		return nil, ErrInvalidInput
	}

	turnID := uuid.New().String()
	cs.pipeLogger.Printf("[TURN %s] message=%q image=%v", turnID, message, request.Image != "")

	// Literal intercepts take precedence over everything else.
	if resp := interceptCatalogue(message); resp != nil {
		return resp, nil
	}
	if resp := interceptEmbed(message); resp != nil {
		return resp, nil
	}

	history := toLLMMessages(request.History)

	label := cs.classifier.Classify(ctx, message, history)

	doc := cs.retrieve(ctx, turnID, message)

	messages := cs.assemble(message, request.Image, label, doc, history)

	answer, err := cs.generateWithRetry(ctx, turnID, messages)
	if err != nil {
		if errors.Is(err, llm.ErrRateLimited) {
			// Out of retries: degrade to the static fallback rather
			// than failing the turn.
			cs.appLogger.Warn("chat", "generation rate limited, using static fallback", map[string]interface{}{"turn_id": turnID})
			return &dto.SendChatResponse{
				Response: fallbackAnswer(message),
				Type:     constant.ResponseTypeText,
				Scenario: string(label),
			}, nil
		}
		return nil, err
	}

	response := &dto.SendChatResponse{
		Response: answer,
		Type:     constant.ResponseTypeText,
		Scenario: string(label),
	}
	if doc != nil {
		response.Response = answer + "\n\nSource: " + doc.URL
		response.Source = doc.URL
	}
	return response, nil
}

// retrieve runs the orchestrator; any internal failure means "no
// grounding", never a failed turn.
func (cs *chatService) retrieve(ctx context.Context, turnID, message string) (doc *fetch.Document) {
	defer func() {
		if r := recover(); r != nil {
			cs.appLogger.Error("chat", "retrieval panicked, continuing without grounding", map[string]interface{}{
				"turn_id": turnID,
				"error":   fmt.Sprint(r),
			})
			doc = nil
		}
	}()

	result := cs.retriever.Retrieve(ctx, message, message)
	if result.BestDoc == nil {
		cs.pipeLogger.Printf("[TURN %s] no grounding document (attempted %d urls)", turnID, len(result.AttemptedURLs))
		return nil
	}
	cs.pipeLogger.Printf("[TURN %s] grounding document: %s (%d chars)", turnID, result.BestDoc.URL, len(result.BestDoc.Text))
	return result.BestDoc
}

// assemble builds the instruction sequence: persona, optional
// grounding excerpt, optional scenario overlay, prior turns, then the
// new user turn.
func (cs *chatService) assemble(message, image string, label scenario.Name, doc *fetch.Document, history []llm.Message) []llm.Message {
	messages := []llm.Message{
		{Role: constant.ChatMessageRoleSystem, Content: constant.SystemPrompt},
	}

	if doc != nil {
		excerpt := fetch.Truncate(doc.Text, fetch.ExcerptMaxChars)
		messages = append(messages, llm.Message{
			Role:    constant.ChatMessageRoleSystem,
			Content: constant.GroundingInstruction + excerpt,
		})
	}

	if overlay := scenario.SystemPromptFor(label); overlay != "" {
		messages = append(messages, llm.Message{
			Role:    constant.ChatMessageRoleSystem,
			Content: overlay,
		})
	}

	messages = append(messages, history...)

	userTurn := llm.Message{Role: constant.ChatMessageRoleUser, Content: message}
	if image != "" {
		userTurn.ImageURL = image
		if userTurn.Content == "" {
			userTurn.Content = "Please describe this image in the context of Harbour.Space University."
		}
	}
	return append(messages, userTurn)
}

// generateWithRetry calls the generation service, retrying only on
// rate limiting with doubling backoff. The final ErrRateLimited is
// returned for the caller to degrade on.
func (cs *chatService) generateWithRetry(ctx context.Context, turnID string, messages []llm.Message) (string, error) {
	var lastErr error
	delay := cs.backoffBase

	for attempt := 0; attempt <= cs.maxRetries; attempt++ {
		answer, err := cs.llmProvider.Chat(ctx, messages,
			llm.WithTemperature(cs.temperature),
			llm.WithMaxTokens(cs.maxTokens),
		)
		if err == nil {
			return answer, nil
		}
		lastErr = err

		if !errors.Is(err, llm.ErrRateLimited) {
			return "", err
		}
		if attempt == cs.maxRetries {
			break
		}

		cs.pipeLogger.Printf("[TURN %s] rate limited, retrying in %s (attempt %d/%d)", turnID, delay, attempt+1, cs.maxRetries)
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
		delay *= 2
	}

	return "", lastErr
}

// fallbackAnswer picks the static keyword-matched message used when
// generation stays rate limited.
func fallbackAnswer(message string) string {
	lower := strings.ToLower(message)
	for _, fb := range constant.RateLimitFallbacks {
		for _, kw := range fb.Keywords {
			if strings.Contains(lower, kw) {
				return fb.Message
			}
		}
	}
	return constant.RateLimitGenericFallback
}

func interceptCatalogue(message string) *dto.SendChatResponse {
	lower := strings.ToLower(message)
	for _, kw := range constant.CatalogueKeywords {
		if lower == kw {
			return &dto.SendChatResponse{
				Response: "Here are our available programmes:",
				Type:     constant.ResponseTypeCatalogue,
				Data:     map[string]interface{}{"programmes": constant.Programmes},
			}
		}
	}
	return nil
}

func interceptEmbed(message string) *dto.SendChatResponse {
	for _, ep := range constant.EmbedPlatforms {
		for _, sub := range ep.Substrings {
			if strings.Contains(message, sub) {
				return &dto.SendChatResponse{
					Response: ep.Response,
					Type:     constant.ResponseTypeEmbed,
					Data:     map[string]interface{}{"url": message, "platform": ep.Platform},
				}
			}
		}
	}
	return nil
}

func toLLMMessages(history []dto.HistoryMessageDTO) []llm.Message {
	messages := make([]llm.Message, 0, len(history))
	for _, h := range history {
		messages = append(messages, llm.Message{Role: h.Role, Content: h.Content})
	}
	return messages
}
