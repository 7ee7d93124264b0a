package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"

	"github.com/BlueAI-edu/blueai-backend/config"
	"github.com/BlueAI-edu/blueai-backend/internal/apperr"
	"github.com/BlueAI-edu/blueai-backend/internal/model"
	"github.com/BlueAI-edu/blueai-backend/internal/repository"
)

type geminiScorer struct {
	client *genai.GenerativeModel
}

// NewGeminiScorer builds the AI scoring collaborator backed by Gemini. With
// no API key configured the scorer is non-functional and every call reports
// an external service failure, which the pipeline handles like any provider
// outage.
func NewGeminiScorer(cfg *config.Config) (AIScorer, error) {
	if cfg.GeminiAPIKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. AI scoring will be non-functional.")
		return &geminiScorer{client: nil}, nil
	}
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(cfg.GeminiAPIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	return &geminiScorer{client: client.GenerativeModel("gemini-1.5-flash")}, nil
}

func (s *geminiScorer) Score(ctx context.Context, answerText string, question *model.Question) (*repository.MarkingResult, error) {
	if s.client == nil {
		return nil, fmt.Errorf("gemini client not initialized: %w", apperr.ErrExternalService)
	}

	prompt := buildMarkingPrompt(answerText, question)
	resp, err := s.client.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		log.Error().Err(err).Str("questionID", question.ID).Msg("Gemini API error during marking")
		return nil, fmt.Errorf("gemini call: %v: %w", err, apperr.ErrExternalService)
	}

	raw := flattenResponse(resp)
	if raw == "" {
		return nil, fmt.Errorf("gemini returned no text content: %w", apperr.ErrExternalService)
	}

	result, err := parseMarkingResponse(raw)
	if err != nil {
		log.Warn().Err(err).Str("rawResponse", raw).Msg("Failed to parse marking response")
		return nil, fmt.Errorf("parsing marking response: %v: %w", err, apperr.ErrExternalService)
	}
	return result, nil
}

// buildMarkingPrompt follows the examiner prompt the marking flow has always
// used: a strict SCORE/WWW/NEXT_STEPS/FEEDBACK line format keeps parsing
// deterministic.
func buildMarkingPrompt(answerText string, question *model.Question) string {
	var b strings.Builder
	b.WriteString("You are an expert examiner. Mark conservatively and fairly.\n\n")
	fmt.Fprintf(&b, "Subject: %s\n", question.Subject)
	fmt.Fprintf(&b, "Question: %s\n", question.QuestionText)
	fmt.Fprintf(&b, "Mark Scheme: %s\n", question.MarkScheme)
	if question.ModelAnswer != nil && *question.ModelAnswer != "" {
		fmt.Fprintf(&b, "Model Answer: %s\n", *question.ModelAnswer)
	}
	fmt.Fprintf(&b, "Total Marks: %d\n\n", question.MaxMarks)
	b.WriteString("Student's Answer:\n---\n")
	b.WriteString(answerText)
	b.WriteString("\n---\n\n")
	b.WriteString("Provide detailed feedback with:\n")
	fmt.Fprintf(&b, "1. Score (0 to %d)\n", question.MaxMarks)
	b.WriteString("2. What Went Well (WWW) - List 2-3 specific strengths\n")
	b.WriteString("3. Next Steps - List 2-3 specific areas for improvement\n")
	b.WriteString("4. Overall Feedback - One supportive paragraph\n\n")
	b.WriteString("Format your response EXACTLY like this:\n")
	b.WriteString("SCORE: [number]\n")
	b.WriteString("WWW: Point 1; Point 2; Point 3\n")
	b.WriteString("NEXT_STEPS: Step 1; Step 2; Step 3\n")
	b.WriteString("FEEDBACK: [paragraph]\n")
	return b.String()
}

func flattenResponse(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		}
	}
	return b.String()
}

// parseMarkingResponse extracts the structured result from the line-oriented
// provider output. A missing SCORE line is a malformed response.
func parseMarkingResponse(raw string) (*repository.MarkingResult, error) {
	var result repository.MarkingResult
	scoreFound := false
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "SCORE:"):
			scoreStr := strings.TrimSpace(strings.TrimPrefix(line, "SCORE:"))
			if fields := strings.Fields(scoreStr); len(fields) > 0 {
				scoreStr = fields[0]
			}
			score, err := strconv.Atoi(scoreStr)
			if err != nil {
				return nil, fmt.Errorf("unparseable score %q", scoreStr)
			}
			result.Score = score
			scoreFound = true
		case strings.HasPrefix(line, "WWW:"):
			result.WWW = strings.TrimSpace(strings.TrimPrefix(line, "WWW:"))
		case strings.HasPrefix(line, "NEXT_STEPS:"):
			result.NextSteps = strings.TrimSpace(strings.TrimPrefix(line, "NEXT_STEPS:"))
		case strings.HasPrefix(line, "FEEDBACK:"):
			result.OverallFeedback = strings.TrimSpace(strings.TrimPrefix(line, "FEEDBACK:"))
		}
	}
	if !scoreFound {
		return nil, fmt.Errorf("response does not contain a SCORE line")
	}
	return &result, nil
}
