// Package service - business logic cho domain generation.
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Alqudimi/SocialSparkAI/config"
	"github.com/Alqudimi/SocialSparkAI/internal/logger"
)

// GenerationEngine là interface trừu tượng hóa engine sinh nội dung bên ngoài
type GenerationEngine interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// GeminiClient gọi Google Gemini API qua REST (generateContent endpoint)
type GeminiClient struct {
	BaseURL    string
	APIKey     string
	Model      string
	HTTPClient *http.Client
}

// NewGeminiClient tạo GeminiClient từ cấu hình server
func NewGeminiClient(cfg *config.Configuration) *GeminiClient {
	return &GeminiClient{
		BaseURL: cfg.GeminiBaseURL,
		APIKey:  cfg.GeminiAPIKey,
		Model:   cfg.GeminiModel,
		// Sinh nội dung có thể chậm, timeout rộng hơn các call HTTP thông thường
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Cấu trúc request/response của Gemini generateContent API
type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiCandidate struct {
	Content geminiContent `json:"content"`
}

type geminiResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}

// GenerateText gửi prompt tới Gemini và trả về text của candidate đầu tiên
func (gc *GeminiClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	log := logger.GetAppLogger()

	if gc.APIKey == "" {
		return "", fmt.Errorf("gemini API key not configured")
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", gc.BaseURL, gc.Model, gc.APIKey)

	payload := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: prompt}}},
		},
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := gc.HTTPClient.Do(req)
	if err != nil {
		log.WithError(err).WithFields(logrus.Fields{
			"model": gc.Model,
		}).Error("🤖 [GEMINI] Lỗi khi gọi Gemini API")
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		log.WithFields(logrus.Fields{
			"model":      gc.Model,
			"statusCode": resp.StatusCode,
			"response":   string(bodyBytes),
		}).Error("🤖 [GEMINI] Gemini API trả về lỗi")
		return "", fmt.Errorf("gemini API returned status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var result geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode gemini response: %w", err)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned empty candidates")
	}

	return result.Candidates[0].Content.Parts[0].Text, nil
}
