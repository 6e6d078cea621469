package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	gendto "github.com/Alqudimi/SocialSparkAI/internal/api/generation/dto"
	prefmodels "github.com/Alqudimi/SocialSparkAI/internal/api/preferences/models"
)

// fakeEngine là engine giả lập cho test, trả về text cố định theo prompt
type fakeEngine struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeEngine) GenerateText(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func TestGenerate_EmptyTopicRejectedBeforeEngineCall(t *testing.T) {
	engine := &fakeEngine{response: "should not be called"}
	svc := NewGenerationServiceWithEngine(engine, nil)

	_, err := svc.Generate(context.Background(), primitive.NewObjectID(), &gendto.GenerateContentRequest{
		Topic:    "   ",
		Platform: "twitter",
	})

	require.Error(t, err, "topic rỗng sau khi trim phải bị từ chối")
	assert.Empty(t, engine.prompts, "engine không được gọi khi topic rỗng")
}

func TestBuildPrompt(t *testing.T) {
	prefs := &prefmodels.ContentPreference{
		PostingStyle:  "casual",
		Tone:          "enthusiastic",
		ContentLength: "short",
		IncludeEmojis: true,
	}

	prompt := buildPrompt("AI startups", "twitter", prefs)

	assert.Contains(t, prompt, "Generate a casual twitter post about AI startups.")
	assert.Contains(t, prompt, "Tone: enthusiastic")
	assert.Contains(t, prompt, "Keep it under 100 characters")
	assert.Contains(t, prompt, "Include relevant emojis")
	assert.Contains(t, prompt, "Posting style: casual")
	assert.Contains(t, prompt, "Generate only the post content without any preamble or explanation.")
}

func TestBuildPrompt_NoEmojis(t *testing.T) {
	prefs := &prefmodels.ContentPreference{
		PostingStyle:  "professional",
		Tone:          "formal",
		ContentLength: "long",
		IncludeEmojis: false,
	}

	prompt := buildPrompt("remote work", "linkedin", prefs)

	assert.Contains(t, prompt, "No emojis")
	assert.Contains(t, prompt, "Keep it between 200-280 characters")
}

func TestBuildPrompt_UnknownLengthFallsBack(t *testing.T) {
	prefs := &prefmodels.ContentPreference{
		PostingStyle:  "professional",
		Tone:          "friendly",
		ContentLength: "gigantic",
	}

	prompt := buildPrompt("x", "facebook", prefs)
	assert.Contains(t, prompt, "medium length")
}

func TestGenerateHashtags_ParsesEngineOutput(t *testing.T) {
	engine := &fakeEngine{response: "#golang #backend some noise #api"}
	svc := NewGenerationServiceWithEngine(engine, nil)

	prefs := &prefmodels.ContentPreference{}
	got := svc.generateHashtags(context.Background(), "golang", "twitter", prefs)

	assert.Equal(t, []string{"#golang", "#backend", "#api"}, got)
}

func TestGenerateHashtags_FallbackToPreferences(t *testing.T) {
	engine := &fakeEngine{err: errors.New("engine down")}
	svc := NewGenerationServiceWithEngine(engine, nil)

	prefs := &prefmodels.ContentPreference{
		Hashtags: []string{"marketing", "#growth", "startup", "extra"},
	}
	got := svc.generateHashtags(context.Background(), "golang", "twitter", prefs)

	// Fallback lấy tối đa 3 hashtag đầu, đã chuẩn hóa
	assert.Equal(t, []string{"#marketing", "#growth", "#startup"}, got)
}

func TestGenerateHashtags_NoFallbackAvailable(t *testing.T) {
	engine := &fakeEngine{response: "no hashtags here"}
	svc := NewGenerationServiceWithEngine(engine, nil)

	got := svc.generateHashtags(context.Background(), "golang", "twitter", &prefmodels.ContentPreference{})
	require.NotNil(t, got)
	assert.Len(t, got, 0)
}

func TestGeminiClient_GenerateText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.True(t, strings.Contains(r.URL.Path, ":generateContent"), "path phải là generateContent endpoint, nhận được: %s", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		fmt.Fprint(w, `{"candidates":[{"content":{"parts":[{"text":"Generated post content"}]}}]}`)
	}))
	defer server.Close()

	client := &GeminiClient{
		BaseURL:    server.URL,
		APIKey:     "test-key",
		Model:      "gemini-2.5-flash",
		HTTPClient: &http.Client{Timeout: 5 * time.Second},
	}

	text, err := client.GenerateText(context.Background(), "write something")
	require.NoError(t, err)
	assert.Equal(t, "Generated post content", text)
}

func TestGeminiClient_GenerateText_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"error":{"message":"quota exceeded"}}`)
	}))
	defer server.Close()

	client := &GeminiClient{
		BaseURL:    server.URL,
		APIKey:     "test-key",
		Model:      "gemini-2.5-flash",
		HTTPClient: &http.Client{Timeout: 5 * time.Second},
	}

	_, err := client.GenerateText(context.Background(), "write something")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestGeminiClient_GenerateText_NoAPIKey(t *testing.T) {
	client := &GeminiClient{BaseURL: "http://localhost", Model: "gemini-2.5-flash", HTTPClient: http.DefaultClient}

	_, err := client.GenerateText(context.Background(), "prompt")
	assert.Error(t, err, "thiếu API key phải trả về lỗi thay vì gọi ra ngoài")
}

func TestGeminiClient_GenerateText_EmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"candidates":[]}`)
	}))
	defer server.Close()

	client := &GeminiClient{
		BaseURL:    server.URL,
		APIKey:     "test-key",
		Model:      "gemini-2.5-flash",
		HTTPClient: &http.Client{Timeout: 5 * time.Second},
	}

	_, err := client.GenerateText(context.Background(), "prompt")
	assert.Error(t, err)
}
