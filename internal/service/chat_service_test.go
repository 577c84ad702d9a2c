package service

import (
	"context"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hs-chat-be/internal/constant"
	"hs-chat-be/internal/dto"
	"hs-chat-be/pkg/llm"
	"hs-chat-be/pkg/retrieval"
	"hs-chat-be/pkg/retrieval/fetch"
	"hs-chat-be/pkg/scenario"
)

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

type mockProvider struct {
	responses []string
	errs      []error
	calls     int
	gotChats  [][]llm.Message
}

func (m *mockProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	idx := m.calls
	m.calls++
	m.gotChats = append(m.gotChats, history)
	if idx >= len(m.responses) {
		idx = len(m.responses) - 1
	}
	return m.responses[idx], m.errs[idx]
}

func (m *mockProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return m.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

type mockClassifier struct {
	label scenario.Name
}

func (m *mockClassifier) Classify(ctx context.Context, message string, history []llm.Message) scenario.Name {
	return m.label
}

type mockRetriever struct {
	doc    *fetch.Document
	called int
	panics bool
}

func (m *mockRetriever) Retrieve(ctx context.Context, message, query string) retrieval.Result {
	m.called++
	if m.panics {
		panic("retrieval blew up")
	}
	return retrieval.Result{BestDoc: m.doc, AttemptedURLs: map[string]bool{}}
}

func newTestService(p llm.LLMProvider, c Classifier, r Retriever) *chatService {
	svc := NewChatService(p, c, r, noopLogger{}, 0.7, 500, 2).(*chatService)
	svc.backoffBase = time.Millisecond
	return svc
}

func okProvider(answer string) *mockProvider {
	return &mockProvider{responses: []string{answer}, errs: []error{nil}}
}

func TestSendChatValidatesInput(t *testing.T) {
	svc := newTestService(okProvider("hi"), &mockClassifier{}, &mockRetriever{})

	_, err := svc.SendChat(context.Background(), &dto.SendChatRequest{Message: "   "})
	assert.ErrorIs(t, err, ErrInvalidInput)

	// An image without text is a valid turn.
	res, err := svc.SendChat(context.Background(), &dto.SendChatRequest{Image: "https://example.com/pic.png"})
	require.NoError(t, err)
	assert.Equal(t, constant.ResponseTypeText, res.Type)
}

func TestSendChatCatalogueIntercept(t *testing.T) {
	retriever := &mockRetriever{}
	provider := okProvider("should not be called")
	svc := newTestService(provider, &mockClassifier{}, retriever)

	for _, msg := range []string{"catalogue", "Catalogue", "CATALOG"} {
		res, err := svc.SendChat(context.Background(), &dto.SendChatRequest{Message: msg})
		require.NoError(t, err)
		assert.Equal(t, constant.ResponseTypeCatalogue, res.Type)
		assert.Contains(t, res.Data, "programmes")
	}
	assert.Zero(t, provider.calls, "catalogue intercept must not reach the model")
	assert.Zero(t, retriever.called, "catalogue intercept must not trigger retrieval")
}

func TestSendChatCatalogueRequiresExactMessage(t *testing.T) {
	provider := okProvider("Here is some info.")
	svc := newTestService(provider, &mockClassifier{}, &mockRetriever{})

	res, err := svc.SendChat(context.Background(), &dto.SendChatRequest{Message: "where is the catalogue?"})
	require.NoError(t, err)
	assert.Equal(t, constant.ResponseTypeText, res.Type, "catalogue inside a sentence is a normal question")
}

func TestSendChatEmbedIntercept(t *testing.T) {
	retriever := &mockRetriever{}
	provider := okProvider("should not be called")
	svc := newTestService(provider, &mockClassifier{}, retriever)

	tests := []struct {
		url      string
		platform string
	}{
		{"https://youtu.be/dQw4w9WgXcQ", "youtube"},
		{"https://www.youtube.com/watch?v=abc", "youtube"},
		{"https://vimeo.com/12345", "vimeo"},
		{"https://www.google.com/maps/place/Barcelona", "maps"},
	}

	for _, tt := range tests {
		res, err := svc.SendChat(context.Background(), &dto.SendChatRequest{Message: tt.url})
		require.NoError(t, err)
		assert.Equal(t, constant.ResponseTypeEmbed, res.Type)
		assert.Equal(t, tt.platform, res.Data["platform"])
		assert.Equal(t, tt.url, res.Data["url"])
	}
	assert.Zero(t, provider.calls)
	assert.Zero(t, retriever.called, "embed intercept must not trigger retrieval")
}

func TestSendChatGroundedAnswerCarriesSource(t *testing.T) {
	doc := &fetch.Document{
		URL:   "https://harbour.space/scholarships",
		Title: "Scholarships",
		Text:  strings.Repeat("Scholarship details. ", 50),
	}
	provider := okProvider("We offer several scholarships.")
	svc := newTestService(provider, &mockClassifier{label: "finance"}, &mockRetriever{doc: doc})

	res, err := svc.SendChat(context.Background(), &dto.SendChatRequest{Message: "do you have scholarships"})
	require.NoError(t, err)

	assert.Contains(t, res.Response, "We offer several scholarships.")
	assert.Contains(t, res.Response, "Source: https://harbour.space/scholarships")
	assert.Equal(t, doc.URL, res.Source)
	assert.Equal(t, "finance", res.Scenario)

	// The grounding excerpt must be in the prompt sent to the model.
	require.Len(t, provider.gotChats, 1)
	var foundExcerpt bool
	for _, m := range provider.gotChats[0] {
		if m.Role == constant.ChatMessageRoleSystem && strings.Contains(m.Content, "Scholarship details.") {
			foundExcerpt = true
		}
	}
	assert.True(t, foundExcerpt, "prompt is missing the grounding excerpt")
}

func TestSendChatExcerptCutIsRuneSafe(t *testing.T) {
	// One leading ASCII byte shifts every 2-byte rune onto an odd
	// offset, so the excerpt cap would land mid-rune if sliced blindly.
	doc := &fetch.Document{
		URL:   "https://harbour.space/cafeteria",
		Title: "Cafeteria",
		Text:  "a" + strings.Repeat("é", fetch.ExcerptMaxChars),
	}
	provider := okProvider("Bon appétit.")
	svc := newTestService(provider, &mockClassifier{}, &mockRetriever{doc: doc})

	_, err := svc.SendChat(context.Background(), &dto.SendChatRequest{Message: "cafeteria menu"})
	require.NoError(t, err)

	require.Len(t, provider.gotChats, 1)
	var checked bool
	for _, m := range provider.gotChats[0] {
		if m.Role == constant.ChatMessageRoleSystem && strings.Contains(m.Content, "é") {
			assert.True(t, utf8.ValidString(m.Content), "excerpt in prompt is not valid UTF-8")
			checked = true
		}
	}
	assert.True(t, checked, "no grounding excerpt found in prompt")
}

func TestSendChatUngroundedAnswerHasNoSource(t *testing.T) {
	provider := okProvider("I am not sure about that.")
	svc := newTestService(provider, &mockClassifier{}, &mockRetriever{doc: nil})

	res, err := svc.SendChat(context.Background(), &dto.SendChatRequest{Message: "who painted the ceiling"})
	require.NoError(t, err)
	assert.Empty(t, res.Source)
	assert.NotContains(t, res.Response, "Source:")
}

func TestSendChatRetrievalPanicDoesNotFailTurn(t *testing.T) {
	provider := okProvider("Answer without grounding.")
	svc := newTestService(provider, &mockClassifier{}, &mockRetriever{panics: true})

	res, err := svc.SendChat(context.Background(), &dto.SendChatRequest{Message: "anything"})
	require.NoError(t, err)
	assert.Equal(t, "Answer without grounding.", res.Response)
	assert.Empty(t, res.Source)
}

func TestSendChatRateLimitRetriesThenSucceeds(t *testing.T) {
	provider := &mockProvider{
		responses: []string{"", "Recovered answer."},
		errs:      []error{llm.ErrRateLimited, nil},
	}
	svc := newTestService(provider, &mockClassifier{}, &mockRetriever{})

	res, err := svc.SendChat(context.Background(), &dto.SendChatRequest{Message: "hello"})
	require.NoError(t, err)
	assert.Equal(t, "Recovered answer.", res.Response)
	assert.Equal(t, 2, provider.calls)
}

func TestSendChatRateLimitExhaustionFallsBack(t *testing.T) {
	provider := &mockProvider{
		responses: []string{"", "", ""},
		errs:      []error{llm.ErrRateLimited, llm.ErrRateLimited, llm.ErrRateLimited},
	}
	svc := newTestService(provider, &mockClassifier{}, &mockRetriever{})

	res, err := svc.SendChat(context.Background(), &dto.SendChatRequest{Message: "what scholarships do you offer"})
	require.NoError(t, err, "rate-limit exhaustion degrades, never fails")
	assert.Equal(t, 3, provider.calls, "one attempt plus two retries")
	assert.NotEmpty(t, res.Response)
	assert.Contains(t, strings.ToLower(res.Response), "scholarship")
}

func TestSendChatRateLimitGenericFallback(t *testing.T) {
	provider := &mockProvider{
		responses: []string{""},
		errs:      []error{llm.ErrRateLimited},
	}
	svc := newTestService(provider, &mockClassifier{}, &mockRetriever{})
	svc.maxRetries = 0

	res, err := svc.SendChat(context.Background(), &dto.SendChatRequest{Message: "zxqv"})
	require.NoError(t, err)
	assert.Equal(t, constant.RateLimitGenericFallback, res.Response)
}

func TestSendChatAuthErrorSurfaces(t *testing.T) {
	provider := &mockProvider{
		responses: []string{""},
		errs:      []error{llm.ErrAuthFailed},
	}
	svc := newTestService(provider, &mockClassifier{}, &mockRetriever{})

	_, err := svc.SendChat(context.Background(), &dto.SendChatRequest{Message: "hello"})
	assert.ErrorIs(t, err, llm.ErrAuthFailed)
	assert.Equal(t, 1, provider.calls, "auth errors are not retried")
}

func TestSendChatHistoryIsForwarded(t *testing.T) {
	provider := okProvider("Following up.")
	svc := newTestService(provider, &mockClassifier{}, &mockRetriever{})

	_, err := svc.SendChat(context.Background(), &dto.SendChatRequest{
		Message: "and the deadline?",
		History: []dto.HistoryMessageDTO{
			{Role: "user", Content: "tell me about scholarships"},
			{Role: "assistant", Content: "We offer merit scholarships."},
		},
	})
	require.NoError(t, err)

	require.Len(t, provider.gotChats, 1)
	var sawHistory bool
	for _, m := range provider.gotChats[0] {
		if m.Content == "We offer merit scholarships." {
			sawHistory = true
		}
	}
	assert.True(t, sawHistory, "prior turns must reach the model")
}

func TestSendChatScenarioOverlayInPrompt(t *testing.T) {
	provider := okProvider("Overlay answer.")
	svc := newTestService(provider, &mockClassifier{label: scenario.Off}, &mockRetriever{})

	_, err := svc.SendChat(context.Background(), &dto.SendChatRequest{Message: "what is the meaning of life"})
	require.NoError(t, err)

	overlay := scenario.SystemPromptFor(scenario.Off)
	require.NotEmpty(t, overlay)

	require.Len(t, provider.gotChats, 1)
	var sawOverlay bool
	for _, m := range provider.gotChats[0] {
		if m.Role == constant.ChatMessageRoleSystem && m.Content == overlay {
			sawOverlay = true
		}
	}
	assert.True(t, sawOverlay, "scenario overlay missing from prompt")
}

func TestFallbackAnswerKeywordRouting(t *testing.T) {
	tests := []struct {
		message  string
		contains string
	}{
		{"tell me about programmes", "programme"},
		{"how do admissions work", "admission"},
		{"where are you located", "Barcelona"},
	}
	for _, tt := range tests {
		got := fallbackAnswer(tt.message)
		assert.Containsf(t, strings.ToLower(got), strings.ToLower(tt.contains), "message %q", tt.message)
	}
	assert.Equal(t, constant.RateLimitGenericFallback, fallbackAnswer("zxqv"))
}
