package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// AIService wraps the Gemini client used as a fallback for chat questions
// the FAQ table cannot answer. The whole service is optional: when no API
// key is configured the chat endpoint returns the canned default reply.
type AIService struct {
	Client *genai.Client
}

// NewAIService initializes the Gemini client.
func NewAIService(apiKey string) (*AIService, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &AIService{Client: client}, nil
}

// GenerateResponse asks the model to answer a storefront support question.
// storeContext carries live data worth grounding on (e.g. the current
// delivery rate table) so the model does not invent fees.
func (s *AIService) GenerateResponse(ctx context.Context, userMessage string, storeContext string) (string, error) {
	model := s.Client.GenerativeModel("gemini-1.5-flash")

	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(fmt.Sprintf(`
			You are the PCBulacan support assistant for a PC components store
			in Bulacan, Philippines. Answer briefly and helpfully, in the
			language the customer used (English or Tagalog).
			Store facts you may rely on:
			%s
			If you do not know something (stock levels, order status), tell
			the customer to check the website or contact support@pcbulacan.com.
		`, storeContext))},
	}

	cs := model.StartChat()
	res, err := cs.SendMessage(ctx, genai.Text(userMessage))
	if err != nil {
		return "", fmt.Errorf("error sending message: %w", err)
	}

	if len(res.Candidates) == 0 || len(res.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from model")
	}

	var b strings.Builder
	for _, part := range res.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("no text in model response")
	}
	return b.String(), nil
}
