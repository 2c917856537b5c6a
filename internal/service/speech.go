package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// SpeechService handles voice transcription and speech synthesis via the
// OpenAI audio APIs.
type SpeechService struct {
	client *openai.Client
}

// NewSpeechService creates a new SpeechService instance
func NewSpeechService() (*SpeechService, error) {
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

	cfg := openai.DefaultConfig(apiKey)
	if baseURL := os.Getenv("OPENAI_API_BASE_URL"); baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &SpeechService{
		client: openai.NewClientWithConfig(cfg),
	}, nil
}

// Transcribe converts uploaded audio to text using Whisper.
func (s *SpeechService) Transcribe(ctx context.Context, audio io.Reader, filename string) (string, error) {
	resp, err := s.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		Reader:   audio,
		FilePath: filename,
	})
	if err != nil {
		return "", fmt.Errorf("failed to transcribe audio: %w", err)
	}
	return strings.TrimSpace(resp.Text), nil
}

// Synthesize converts text to spoken audio (MP3 bytes).
func (s *SpeechService) Synthesize(ctx context.Context, text, voice string) ([]byte, error) {
	v := openai.VoiceAlloy
	if voice != "" {
		v = openai.SpeechVoice(voice)
	}

	resp, err := s.client.CreateSpeech(ctx, openai.CreateSpeechRequest{
		Model: openai.TTSModel1,
		Input: text,
		Voice: v,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to synthesize speech: %w", err)
	}
	defer func() { _ = resp.Close() }()

	data, err := io.ReadAll(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio response: %w", err)
	}
	return data, nil
}
