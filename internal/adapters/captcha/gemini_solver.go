package captcha

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/bnema/euserv-renew/internal/ports"
	"google.golang.org/genai"
)

const (
	DefaultGeminiModel = "gemini-2.5-flash"

	geminiPrompt = "This image is a login captcha. Reply with the characters it shows and nothing else."
)

type generateFunc func(ctx context.Context, image []byte, mimeType string) (string, error)

// GeminiSolver reads captchas with a multimodal Gemini model.
type GeminiSolver struct {
	generate generateFunc
}

var _ ports.CaptchaSolver = (*GeminiSolver)(nil)

func NewGeminiSolver(ctx context.Context, apiKey, model string) (*GeminiSolver, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	if model == "" {
		model = DefaultGeminiModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &GeminiSolver{
		generate: func(ctx context.Context, image []byte, mimeType string) (string, error) {
			contents := []*genai.Content{
				genai.NewContentFromParts([]*genai.Part{
					genai.NewPartFromBytes(image, mimeType),
					genai.NewPartFromText(geminiPrompt),
				}, genai.RoleUser),
			}
			resp, err := client.Models.GenerateContent(ctx, model, contents, nil)
			if err != nil {
				return "", err
			}
			return resp.Text(), nil
		},
	}, nil
}

func (s *GeminiSolver) Solve(ctx context.Context, image []byte) (string, error) {
	if len(image) == 0 {
		return "", errors.New("captcha image is empty")
	}

	text, err := s.generate(ctx, image, http.DetectContentType(image))
	if err != nil {
		return "", fmt.Errorf("generate captcha text: %w", err)
	}
	return normalize(text)
}
