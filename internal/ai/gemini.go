package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiExtractor implements Extractor using Google's Gemini models.
type GeminiExtractor struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiExtractor initializes a new Gemini client.
// apiKey should be provided from environment variables.
func NewGeminiExtractor(ctx context.Context, apiKey string) (*GeminiExtractor, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	// Gemini 2.0 Flash for low latency and cost efficiency.
	model := client.GenerativeModel("gemini-2.0-flash")

	// Force JSON response for structured parsing.
	model.ResponseMIMEType = "application/json"
	model.SetTemperature(0.4)

	return &GeminiExtractor{
		client: client,
		model:  model,
	}, nil
}

// Close cleans up the Gemini client resources.
func (p *GeminiExtractor) Close() {
	p.client.Close()
}

func (p *GeminiExtractor) ExtractNewOrder(ctx context.Context, userMessage string) (*ExtractionResult, error) {
	raw, err := p.generate(ctx, newOrderPrompt, userMessage)
	if err != nil {
		return nil, err
	}
	return DecodeNewOrder(raw)
}

func (p *GeminiExtractor) ExtractActiveOrder(ctx context.Context, userMessage string) (*ExtractionResult, error) {
	raw, err := p.generate(ctx, activeOrderPrompt, userMessage)
	if err != nil {
		return nil, err
	}
	return DecodeActiveOrder(raw)
}

func (p *GeminiExtractor) generate(ctx context.Context, systemPrompt, userMessage string) ([]byte, error) {
	fullPrompt := fmt.Sprintf("%s\n\nUser Message: %s", systemPrompt, userMessage)

	resp, err := p.model.GenerateContent(ctx, genai.Text(fullPrompt))
	if err != nil {
		return nil, fmt.Errorf("gemini generation error: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("no response candidates from Gemini")
	}

	var responseText strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			responseText.WriteString(string(txt))
		}
	}

	// Strip markdown fences in case the model wraps the JSON anyway.
	return []byte(cleanJSONString(responseText.String())), nil
}

const newOrderPrompt = `You are a helpful assistant that extracts structured delivery-related details from user input.

Always respond with a JSON object in this format:
{
  "intent": "pickup | dropoff | suggestion | suggest-pickup | suggest-dropoff | information | out-of-scope | greetings",
  "pickup-address": "<full pickup address or null>",
  "pickup-place": "<pickup location name or null>",
  "dropoff-address": "<full dropoff address or null>",
  "dropoff-place": "<dropoff location name or null>",
  "items": [{"item": "<item name>", "quantity": <count>}] or null,
  "notes": "<short additional info or null>",
  "topic": "<two or three word topic for this conversation>"
}

Instructions:

1. Use only one of the listed intent values:
   - "pickup": User wants an item picked up from a location and delivered elsewhere.
   - "dropoff": User wants to drop off an item at a location.
   - "suggestion": User asks for a place to get or drop something.
   - "suggest-pickup": User asks where they could have an item picked up from.
   - "suggest-dropoff": User asks where they could send an item.
   - "information": User asks about food, restaurants, delivery, or pickup services.
   - "greetings": Greetings only.
   - "out-of-scope": Unrelated to delivery, food, or location-based tasks.

2. Fill pickup-address / dropoff-address only with full street addresses; use
   pickup-place / dropoff-place for bare business or place names.

3. Use notes only for greetings or information - keep it short and relevant.

4. Do not include any natural language response outside the JSON.
`

const activeOrderPrompt = `You help users modify or cancel active delivery orders. Always reply in this JSON format:

{
  "action": "modify-order" | "cancel-order" | "confirm-order" | "information" | "out-of-scope" | "new-order",
  "pickup-address": "<full address or null>",
  "pickup-place": "<place name or null>",
  "dropoff-address": "<full address or null>",
  "dropoff-place": "<place name or null>",
  "items": [{"type": "add" | "remove" | "replace", "item": "<item name>", "quantity": <count>, "new_item": "<replacement name or null>"}] or null,
  "notes": "<short message or null>"
}

Rules:
1. If the user mentions to cancel the order -> action: "cancel-order".
2. If the user wants to confirm or place the order -> action: "confirm-order".
3. If there's a full address -> fill pickup-address or dropoff-address.
4. If there's only a place name (e.g. "Dominos", "work") -> use pickup-place or dropoff-place.
5. If the message adds, removes, or swaps items -> fill items with one entry per change;
   "replace" entries carry the old name in item and the new name in new_item.
6. Include both items and address/place if both are mentioned.
7. If there's no useful change info -> action: "information" with a message in notes.
8. If the user wants to start over with a different order -> action: "new-order".
9. If unrelated to orders -> action: "out-of-scope" with a brief note in notes.

Only return JSON. No extra text.
`

// cleanJSONString removes markdown code blocks if present (e.g. ```json ... ```)
func cleanJSONString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}
