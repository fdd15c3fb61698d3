// internal/services/imagegen_service.go
package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hanmaru/mall-backend/internal/config"
)

// ImageGenService is a thin passthrough to the external generative image
// API. It adds no behavior beyond request shaping and error translation.
type ImageGenService struct {
	config *config.Config
	client *http.Client
}

type GenerateImageRequest struct {
	Prompt      string `json:"prompt" validate:"required,min=3"`
	Style       string `json:"style,omitempty"`
	AspectRatio string `json:"aspect_ratio,omitempty" validate:"omitempty,oneof=1:1 4:3 3:4 16:9 9:16"`
}

type GenerateImageResult struct {
	URL       string    `json:"url"`
	Model     string    `json:"model"`
	CreatedAt time.Time `json:"created_at"`
}

func NewImageGenService(config *config.Config) *ImageGenService {
	return &ImageGenService{
		config: config,
		client: &http.Client{
			Timeout: time.Duration(config.ImageGen.Timeout) * time.Second,
		},
	}
}

func (s *ImageGenService) GenerateImage(req *GenerateImageRequest) (*GenerateImageResult, error) {
	if s.config.ImageGen.APIURL == "" {
		return nil, fmt.Errorf("image generation API is not configured")
	}

	aspectRatio := req.AspectRatio
	if aspectRatio == "" {
		aspectRatio = "1:1"
	}

	payload := map[string]interface{}{
		"model":        s.config.ImageGen.Model,
		"prompt":       s.buildPrompt(req),
		"aspect_ratio": aspectRatio,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequest(http.MethodPost, s.config.ImageGen.APIURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+s.config.ImageGen.APIKey)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("image API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("image API returned %d: %s", resp.StatusCode, string(data))
	}

	var apiResp struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("failed to decode image API response: %w", err)
	}

	return &GenerateImageResult{
		URL:       apiResp.URL,
		Model:     s.config.ImageGen.Model,
		CreatedAt: time.Now(),
	}, nil
}

func (s *ImageGenService) buildPrompt(req *GenerateImageRequest) string {
	if req.Style == "" {
		return req.Prompt
	}
	return fmt.Sprintf("%s, %s style", req.Prompt, req.Style)
}
