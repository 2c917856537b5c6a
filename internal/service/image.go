package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/lumina-ai/backend/config"
)

// ImageGenerationRequest represents a request to the images API
type ImageGenerationRequest struct {
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	N              int    `json:"n"`
	Size           string `json:"size"`
	Quality        string `json:"quality"`
	ResponseFormat string `json:"response_format"`
}

// ImageGenerationResponse represents the response from the images API
type ImageGenerationResponse struct {
	Created int64 `json:"created"`
	Data    []struct {
		URL           string `json:"url,omitempty"`
		B64JSON       string `json:"b64_json,omitempty"`
		RevisedPrompt string `json:"revised_prompt,omitempty"`
	} `json:"data"`
}

// ImageService handles image generation and storage operations
type ImageService struct {
	apiKey   string
	apiURL   string
	s3Config *config.S3Config
	client   *http.Client
}

// NewImageService creates a new ImageService instance. s3Config may be
// nil, in which case generated images are served from the provider URL.
func NewImageService(s3Config *config.S3Config) (*ImageService, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		apiKeyFile := os.Getenv("OPENAI_API_KEY_FILE")
		if apiKeyFile == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY or OPENAI_API_KEY_FILE must be set")
		}

		apiKeyBytes, err := os.ReadFile(apiKeyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read API key file: %w", err)
		}

		apiKey = strings.TrimSpace(string(apiKeyBytes))
		if apiKey == "" {
			return nil, fmt.Errorf("API key file is empty")
		}
	}

	apiURL := os.Getenv("OPENAI_IMAGES_API_URL")
	if apiURL == "" {
		apiURL = "https://api.openai.com/v1/images/generations"
	}

	return &ImageService{
		apiKey:   apiKey,
		apiURL:   apiURL,
		s3Config: s3Config,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}, nil
}

// GenerateImageFromPrompt generates an image from a text prompt
func (s *ImageService) GenerateImageFromPrompt(ctx context.Context, prompt string, size string) (string, error) {
	const maxRetries = 3

	for attempt := 1; attempt <= maxRetries; attempt++ {
		imageURL, err := s.generateImageAttempt(ctx, prompt, size)
		if err != nil {
			log.Printf("[ImageService] Attempt %d failed: %v", attempt, err)
			if attempt == maxRetries {
				return "", fmt.Errorf("failed to generate image after %d attempts: %w", maxRetries, err)
			}
			time.Sleep(time.Duration(attempt) * time.Second)
			continue
		}
		return imageURL, nil
	}

	return "", fmt.Errorf("failed to generate image after %d attempts", maxRetries)
}

// generateImageAttempt performs a single image generation attempt
func (s *ImageService) generateImageAttempt(ctx context.Context, prompt string, size string) (string, error) {
	reqBody := ImageGenerationRequest{
		Model:          "dall-e-3",
		Prompt:         prompt,
		N:              1,
		Size:           size,
		Quality:        "standard",
		ResponseFormat: "url",
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.apiKey))

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var result ImageGenerationResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Data) == 0 {
		return "", fmt.Errorf("no image data in API response")
	}

	imageURL := result.Data[0].URL
	if imageURL == "" {
		return "", fmt.Errorf("empty image URL in API response")
	}

	if s.s3Config == nil {
		return imageURL, nil
	}

	s3URL, err := s.downloadAndUploadToS3(ctx, imageURL)
	if err != nil {
		log.Printf("[ImageService] Failed to upload to S3, returning provider URL: %v", err)
		return imageURL, nil
	}

	return s3URL, nil
}

// downloadAndUploadToS3 downloads an image from URL and uploads it to S3
func (s *ImageService) downloadAndUploadToS3(ctx context.Context, imageURL string) (string, error) {
	resp, err := s.client.Get(imageURL)
	if err != nil {
		return "", fmt.Errorf("failed to download image: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to download image, status: %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read image data: %w", err)
	}

	fileName := fmt.Sprintf("generated-images/%s.png", uuid.New().String())

	return s.UploadImageToS3(ctx, imageData, fileName)
}

// UploadImageToS3 uploads image data to S3 and returns the public URL
func (s *ImageService) UploadImageToS3(ctx context.Context, imageData []byte, fileName string) (string, error) {
	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(fileName),
		Body:        bytes.NewReader(imageData),
		ContentType: aws.String("image/png"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	publicURL := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, fileName)
	log.Printf("[ImageService] Uploaded image to S3: %s", publicURL)

	return publicURL, nil
}
