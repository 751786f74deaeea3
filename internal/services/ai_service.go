package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"atuna_estate/internal/models"
)

// AIService talks to an OpenAI-compatible chat-completions endpoint for
// property descriptions and contract analysis. The caller is responsible
// for authorizing the underlying entity access first.
type AIService struct {
	endpoint string
	apiKey   string
	model    string
	client   *http.Client
}

func NewAIService() *AIService {
	endpoint := os.Getenv("AI_ENDPOINT")
	if endpoint == "" {
		endpoint = "http://localhost:8002/v1/chat/completions"
	}
	model := os.Getenv("AI_MODEL")
	if model == "" {
		model = "openai/gpt-oss-20b"
	}
	return &AIService{
		endpoint: endpoint,
		apiKey:   os.Getenv("AI_API_KEY"),
		model:    model,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type completionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// GeneratePropertyDescription asks the model for listing copy.
func (s *AIService) GeneratePropertyDescription(ctx context.Context, property *models.Property) (string, error) {
	prompt := fmt.Sprintf(
		"Generate a professional real-estate listing description.\nTitle: %s\nType: %s\nLocation: %s\nPrice: %.2f PHP",
		property.Title, property.Type, property.Location, property.Price,
	)
	return s.complete(ctx, prompt, 300)
}

// AnalyzeContract asks the model for a summary of a lease contract.
func (s *AIService) AnalyzeContract(ctx context.Context, contract *models.Contract) (string, error) {
	prompt := fmt.Sprintf(
		"Analyze this real estate contract and summarize the key points:\n%s",
		contract.Content,
	)
	return s.complete(ctx, prompt, 500)
}

func (s *AIService) complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	body, err := json.Marshal(completionRequest{
		Model:       s.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens:   maxTokens,
		Temperature: 0.7,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		logrus.WithError(err).Error("AI completion request failed")
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("AI endpoint returned status %d", resp.StatusCode)
	}

	var parsed completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("AI endpoint returned no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}
