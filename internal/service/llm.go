package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const chatPromptTemplate = `You are a helpful AI assistant. Please answer the following question or respond to the user's message in a clear, friendly, and informative way.

User's message: %s

Provide a well-formatted, easy-to-read response. Use proper paragraphs and structure your answer clearly.`

const analyzePromptTemplate = `Analyze this content and provide a helpful response.

Content:
%s

IMPORTANT INSTRUCTIONS:
- Write in natural, conversational English
- NO markdown symbols (no ##, **, ###, etc.)
- Use simple headings like "Summary:" or "Key Points:"
- Explain things clearly like talking to a friend
- Use "First," "Second," "Third" instead of numbers
- Write in complete sentences and paragraphs
- Be warm, friendly, and helpful
- Give accurate, detailed information

Structure your response naturally:

SUMMARY:
Give a brief overview in 2-3 sentences.

KEY POINTS:
List the main points in a clear, easy-to-read way.

DETAILED EXPLANATION:
Explain everything thoroughly and clearly.

QUESTIONS AND ANSWERS:
If there are questions in the content, answer each one completely and accurately.

RECOMMENDATIONS:
Suggest helpful next steps or insights.

Write everything in clear, natural language that's easy to understand.`

const customAnalyzeTemplate = `%s

Content:
%s

IMPORTANT: Write in natural, conversational language.
- Use simple, clear sentences
- Explain like you're talking to a friend
- NO markdown symbols (no ##, **, etc.)
- Use "First," "Second," instead of "1." "2."
- Write in paragraphs with proper spacing
- Be conversational and helpful
- Give complete, accurate answers

Make it easy to read and understand.`

const describeImagePrompt = `Analyze this image carefully.

If there is TEXT in the image:
- Extract all text exactly as shown
- Preserve formatting and structure
- List any questions clearly

If there is NO TEXT or very little text:
- Describe what you see in detail
- Explain what the image represents
- Identify objects, people, places, or activities
- Describe colors, setting, and mood
- Explain the context or purpose of the image

Be thorough and descriptive.`

// LLMService handles interactions with the generative-language API
type LLMService struct {
	apiKey string
	apiURL string
	client *http.Client
}

// NewLLMService creates a new LLMService instance
func NewLLMService() (*LLMService, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		apiKeyFile := os.Getenv("GEMINI_API_KEY_FILE")
		if apiKeyFile == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY or GEMINI_API_KEY_FILE must be set")
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

	apiURL := os.Getenv("GEMINI_API_URL")
	if apiURL == "" {
		apiURL = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.5-flash:generateContent"
	}

	return &LLMService{
		apiKey: apiKey,
		apiURL: apiURL,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}, nil
}

// Part is one content part in a generateContent request
type Part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *InlineData `json:"inline_data,omitempty"`
}

// InlineData carries base64-encoded media
type InlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

// Content is one message in a generateContent request
type Content struct {
	Parts []Part `json:"parts"`
}

// GenerateRequest represents a request to the generative-language API
type GenerateRequest struct {
	Contents []Content `json:"contents"`
}

// GenerateResponse represents the API response
type GenerateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Chat sends a general chat message with the conversational prompt.
func (s *LLMService) Chat(ctx context.Context, message string) (string, error) {
	return s.generate(ctx, []Part{{Text: fmt.Sprintf(chatPromptTemplate, message)}})
}

// Analyze runs content analysis; prompt is optional and wraps the
// caller's own instructions when present.
func (s *LLMService) Analyze(ctx context.Context, content, prompt string) (string, error) {
	var full string
	if prompt != "" {
		full = fmt.Sprintf(customAnalyzeTemplate, prompt, content)
	} else {
		full = fmt.Sprintf(analyzePromptTemplate, content)
	}
	return s.generate(ctx, []Part{{Text: full}})
}

// DescribeImage extracts text from or describes an image via the vision
// model.
func (s *LLMService) DescribeImage(ctx context.Context, imageData []byte, mimeType string) (string, error) {
	return s.generate(ctx, []Part{
		{Text: describeImagePrompt},
		{InlineData: &InlineData{
			MimeType: mimeType,
			Data:     base64.StdEncoding.EncodeToString(imageData),
		}},
	})
}

func (s *LLMService) generate(ctx context.Context, parts []Part) (string, error) {
	reqBody := GenerateRequest{
		Contents: []Content{{Parts: parts}},
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
	req.Header.Set("x-goog-api-key", s.apiKey)

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

	var result GenerateResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no candidates in API response")
	}

	return strings.TrimSpace(result.Candidates[0].Content.Parts[0].Text), nil
}
