package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/mempocket/mempocket/internal/config"
	"github.com/mempocket/mempocket/internal/model"
	"github.com/mempocket/mempocket/pkg/anthropic"
)

const classifySystemPrompt = `You are a personal knowledge assistant helping categorize information.

Classify the given content according to these rules:

## Entity (what box does it go in?):
- "project": Something to finish. Has a goal and an end. Examples: "Launch App Q2", "Marathon Training", "Buy House"
- "library": Knowledge & assets. Reference, learn, maintain. Examples: "ReactJS", "Health Records", "Tax Documents", "Cooking"
- "people": Humans & organizations you interact with. Examples: "Alice", "Dr. Chen", "Acme Corp", "Team Engineering"

## Context (which half of life?):
- "work": Career, money, profession, colleagues
- "life": Health, family, hobbies, personal finance

If something is in between, pick whichever dominates the purpose.

Respond ONLY with a valid JSON object (no markdown, no explanation):
{"entity": "project" | "library" | "people", "context": "work" | "life", "confidence": 0.0-1.0, "reason": "Brief explanation", "suggested_title": "A concise title for this entry"}`

const classifyUserPrompt = `Content to classify (first %d chars):

%s`

// maxClassifyChars caps the excerpt sent to the oracle.
const maxClassifyChars = 2000

// defaultConfidence is assumed when the oracle omits a confidence value.
const defaultConfidence = 0.8

// Classifier is the narrow oracle capability the pipeline depends on. Any
// failure — transport, timeout, malformed output — surfaces as an error;
// the pipeline converts errors into the fallback classification rather
// than aborting.
type Classifier interface {
	Classify(ctx context.Context, text string) (model.Classification, error)
}

// OracleClassifier classifies text through the Anthropic API.
type OracleClassifier struct {
	client  anthropic.Client
	model   string
	timeout time.Duration
}

// NewOracleClassifier builds a classifier from the configured oracle settings.
func NewOracleClassifier(client anthropic.Client, cfg config.AnthropicConfig) *OracleClassifier {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &OracleClassifier{
		client:  client,
		model:   cfg.Model,
		timeout: timeout,
	}
}

// Classify sends a bounded excerpt of text to the oracle and parses its
// structured verdict.
func (o *OracleClassifier) Classify(ctx context.Context, text string) (model.Classification, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	resp, err := o.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:     o.model,
		MaxTokens: 256,
		System:    classifySystemPrompt,
		Messages: []anthropic.Message{
			{Role: "user", Content: fmt.Sprintf(classifyUserPrompt, maxClassifyChars, excerpt(text, maxClassifyChars))},
		},
	})
	if err != nil {
		return model.Classification{}, eris.Wrap(err, "classify: oracle call")
	}

	return parseClassification(resp.Text())
}

// parseClassification decodes the oracle's JSON verdict, tolerating markdown
// fences and surrounding prose.
func parseClassification(text string) (model.Classification, error) {
	text = cleanJSON(text)

	var raw struct {
		Entity         string   `json:"entity"`
		Context        string   `json:"context"`
		Confidence     *float64 `json:"confidence"`
		Reason         string   `json:"reason"`
		SuggestedTitle string   `json:"suggested_title"`
	}
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return model.Classification{}, eris.Wrap(err, "classify: parse response")
	}

	entity := model.Entity(strings.ToLower(raw.Entity))
	if !entity.Valid() {
		return model.Classification{}, eris.New(fmt.Sprintf("classify: unknown entity %q", raw.Entity))
	}
	context := model.Context(strings.ToLower(raw.Context))
	if !context.Valid() {
		return model.Classification{}, eris.New(fmt.Sprintf("classify: unknown context %q", raw.Context))
	}

	confidence := defaultConfidence
	if raw.Confidence != nil {
		confidence = *raw.Confidence
	}
	if confidence < 0 || confidence > 1 {
		return model.Classification{}, eris.New(fmt.Sprintf("classify: confidence %v out of range", confidence))
	}

	return model.Classification{
		Entity:         entity,
		Context:        context,
		Confidence:     confidence,
		Reason:         raw.Reason,
		SuggestedTitle: raw.SuggestedTitle,
	}, nil
}

// fallbackClassification is the fixed default used whenever the oracle is
// unreachable, times out, or returns garbage. The failure reason travels in
// the rationale so the run report stays honest.
func fallbackClassification(err error, content string) model.Classification {
	return model.Classification{
		Entity:         model.EntityLibrary,
		Context:        model.ContextLife,
		Confidence:     0.5,
		Reason:         fmt.Sprintf("classification failed: %v; defaulting to library/life", err),
		SuggestedTitle: strings.TrimSpace(excerpt(content, titleFallbackChars)),
	}
}

// cleanJSON attempts to extract a JSON object from text that may contain
// markdown code fences or other wrapping.
func cleanJSON(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		text = text[start : end+1]
	}

	return strings.TrimSpace(text)
}
