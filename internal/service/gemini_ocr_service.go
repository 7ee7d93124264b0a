package service

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"

	"github.com/BlueAI-edu/blueai-backend/config"
	"github.com/BlueAI-edu/blueai-backend/internal/apperr"
)

const ocrPrompt = "Transcribe the handwritten or printed student answer in this image. " +
	"Return only the transcribed text, preserving line breaks. Do not add commentary."

type geminiOCRService struct {
	client *genai.GenerativeModel
}

// NewGeminiOCRService builds the OCR collaborator on Gemini's vision input.
// Shares the API key with the scorer but keeps its own model handle.
func NewGeminiOCRService(cfg *config.Config) (OCRService, error) {
	if cfg.GeminiAPIKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. OCR will be non-functional.")
		return &geminiOCRService{client: nil}, nil
	}
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(cfg.GeminiAPIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	return &geminiOCRService{client: client.GenerativeModel("gemini-1.5-flash")}, nil
}

func (s *geminiOCRService) ExtractText(ctx context.Context, imageURL string) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("gemini client not initialized: %w", apperr.ErrExternalService)
	}

	imageData, mimeType, err := fetchImageData(ctx, imageURL)
	if err != nil {
		return "", fmt.Errorf("fetching answer image: %v: %w", err, apperr.ErrExternalService)
	}

	resp, err := s.client.GenerateContent(ctx,
		genai.ImageData(mimeType, imageData),
		genai.Text(ocrPrompt),
	)
	if err != nil {
		log.Error().Err(err).Str("imageURL", imageURL).Msg("Gemini API error during OCR")
		return "", fmt.Errorf("gemini ocr call: %v: %w", err, apperr.ErrExternalService)
	}

	text := strings.TrimSpace(flattenResponse(resp))
	if text == "" {
		return "", fmt.Errorf("ocr returned no text: %w", apperr.ErrExternalService)
	}
	return text, nil
}

func fetchImageData(ctx context.Context, imageURL string) ([]byte, string, error) {
	if imageURL == "" {
		return nil, "", fmt.Errorf("image URL is empty")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, "", err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch image from URL %s: %w", imageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("failed to fetch image (status %d) from URL %s", resp.StatusCode, imageURL)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read image data from URL %s: %w", imageURL, err)
	}

	var mimeType string
	if contentType := resp.Header.Get("Content-Type"); contentType != "" {
		parsed, _, parseErr := mime.ParseMediaType(contentType)
		if parseErr == nil && strings.HasPrefix(parsed, "image/") {
			mimeType = parsed
		}
	}
	if mimeType == "" {
		mimeType = mime.TypeByExtension(filepath.Ext(imageURL))
		if mimeType == "" || !strings.HasPrefix(mimeType, "image/") {
			return nil, "", fmt.Errorf("undeterminable image MIME type for %s", imageURL)
		}
	}
	return imageData, mimeType, nil
}
