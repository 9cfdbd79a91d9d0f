package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/ZaguanLabs/gtlang"
	"github.com/sashabaranov/go-openai"
)

// DefaultModel is used when OpenAIConfig.Model is empty.
const DefaultModel = "gpt-4o-mini"

// OpenAIProvider implements AIProvider using OpenAI's API.
type OpenAIProvider struct {
	client      *openai.Client
	model       string
	temperature float32
}

// OpenAIConfig holds configuration for the OpenAI provider.
type OpenAIConfig struct {
	APIKey      string  // OpenAI API key
	Model       string  // Model to use (default: "gpt-4o-mini")
	Temperature float32 // Temperature for generation (default: 0.2)
	BaseURL     string  // Custom base URL for compatible endpoints (optional)
}

// NewOpenAIProvider creates a new OpenAI provider.
func NewOpenAIProvider(cfg OpenAIConfig) *OpenAIProvider {
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}
	config.HTTPClient = &http.Client{Transport: userAgent{next: http.DefaultTransport}}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = 0.2
	}

	return &OpenAIProvider{
		client:      openai.NewClientWithConfig(config),
		model:       model,
		temperature: temperature,
	}
}

// Model returns the configured model name.
func (p *OpenAIProvider) Model() string {
	return p.model
}

// Translate translates a batch of texts using OpenAI.
func (p *OpenAIProvider) Translate(ctx context.Context, req TranslateRequest) ([]string, error) {
	if len(req.Texts) == 0 {
		return []string{}, nil
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: p.buildSystemPrompt(req)},
			{Role: openai.ChatMessageRoleUser, Content: p.buildUserMessage(req)},
		},
		Temperature: p.temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, &gtlang.ProviderError{
			Message:   "OpenAI API call failed",
			Cause:     err,
			Retryable: isRetryableError(err),
		}
	}

	if len(resp.Choices) == 0 {
		return nil, &gtlang.ProviderError{
			Message:   "no response from OpenAI",
			Retryable: true,
		}
	}

	return p.parseResponse(resp.Choices[0].Message.Content, len(req.Texts))
}

func (p *OpenAIProvider) buildSystemPrompt(req TranslateRequest) string {
	sourceLang := req.SourceLang
	if sourceLang == "" {
		sourceLang = gtlang.DefaultSourceLang
	}
	sourceName := gtlang.GetLanguageName(sourceLang)
	targetName := gtlang.GetLanguageName(req.TargetLang)

	contextText := "The texts are item, block, fluid and machine names plus tooltips from the GregTech Minecraft mod."
	if req.Context != "" {
		contextText += " " + req.Context
	}

	prompt := fmt.Sprintf(`# Role
You translate Minecraft mod language files from %s to %s, following the terminology established by the %s Minecraft community.

# Context
%s

# Task
Translate the provided texts into %s.

# Rules
- **Names**: Item and material names are terms, not prose. Keep them short and consistent with each other.
- **Format codes**: Keep every § formatting code (e.g. §e, §r, §l) exactly where it is.
- **Placeholders**: Do NOT translate or reorder printf placeholders (%%s, %%d, %%1$s) unless the grammar requires reordering, in which case use positional forms.
- **Units and symbols**: Keep units such as EU, EU/t, L, mB, RF and chemical formulas unchanged.
- **Whitespace**: Preserve leading and trailing spaces exactly.
- **Keys**: Each text may come with its language key as context. Use it to tell items, blocks and tooltips apart; never output the key.`,
		sourceName, targetName, targetName, contextText, targetName)

	if hint := gtlang.GetLocaleClarification(req.TargetLang); hint != "" {
		prompt += fmt.Sprintf("\n- **Locale**: %s", hint)
	}

	if len(req.Glossary) > 0 {
		sources := make([]string, 0, len(req.Glossary))
		for source := range req.Glossary {
			sources = append(sources, source)
		}
		sort.Strings(sources)

		prompt += "\n\n# Glossary\nThese translations are already established in this language pack. Reuse them:"
		for _, source := range sources {
			prompt += fmt.Sprintf("\n- \"%s\" → %s", source, req.Glossary[source])
		}
	}

	prompt += `

# Format
Return a valid JSON object with a single key "translations" containing an array of strings in the exact same order as the input.
Example: { "translations": ["translated string 1", "translated string 2"] }
- Do NOT wrap in Markdown code blocks.`

	if len(req.ExcludedTerms) > 0 {
		terms := strings.Join(req.ExcludedTerms, "\n- ")
		prompt += fmt.Sprintf("\n\n# Exclusions\nDo NOT translate the following terms. Keep them exactly as they appear in the source:\n- %s", terms)
	}

	return prompt
}

func (p *OpenAIProvider) buildUserMessage(req TranslateRequest) string {
	hasContexts := false
	for _, ctx := range req.TextContexts {
		if ctx != "" {
			hasContexts = true
			break
		}
	}

	if !hasContexts {
		data, _ := json.Marshal(req.Texts)
		return string(data)
	}

	type item struct {
		Key  string `json:"key,omitempty"`
		Text string `json:"text"`
	}

	items := make([]item, len(req.Texts))
	for i, text := range req.Texts {
		items[i].Text = text
		if i < len(req.TextContexts) {
			items[i].Key = req.TextContexts[i]
		}
	}

	data, _ := json.Marshal(map[string][]item{"items": items})
	return string(data)
}

func (p *OpenAIProvider) parseResponse(content string, expectedCount int) ([]string, error) {
	var objResult map[string]interface{}
	if err := json.Unmarshal([]byte(content), &objResult); err == nil {
		if translations, ok := objResult["translations"]; ok {
			if arr, ok := translations.([]interface{}); ok {
				return toStringSlice(arr, expectedCount)
			}
		}

		// Some models pick their own key.
		for _, v := range objResult {
			if arr, ok := v.([]interface{}); ok {
				return toStringSlice(arr, expectedCount)
			}
		}
	}

	var arrResult []interface{}
	if err := json.Unmarshal([]byte(content), &arrResult); err == nil {
		return toStringSlice(arrResult, expectedCount)
	}

	return nil, &gtlang.ProviderError{
		Message:   "invalid response format from OpenAI",
		Retryable: false,
	}
}

func toStringSlice(arr []interface{}, expectedCount int) ([]string, error) {
	result := make([]string, len(arr))
	for i, v := range arr {
		if s, ok := v.(string); ok {
			result[i] = s
		} else {
			result[i] = fmt.Sprintf("%v", v)
		}
	}

	if len(result) != expectedCount {
		return nil, &gtlang.CountMismatchError{
			Expected: expectedCount,
			Got:      len(result),
		}
	}

	return result, nil
}

func isRetryableError(err error) bool {
	errStr := strings.ToLower(err.Error())
	retryablePatterns := []string{
		"rate limit",
		"timeout",
		"connection refused",
		"temporary",
		"503",
		"502",
		"429",
	}

	for _, pattern := range retryablePatterns {
		if strings.Contains(errStr, pattern) {
			return true
		}
	}
	return false
}

// userAgent tags every request with the gtlang user agent.
type userAgent struct {
	next http.RoundTripper
}

func (u userAgent) RoundTrip(r *http.Request) (*http.Response, error) {
	r = r.Clone(r.Context())
	r.Header.Set("User-Agent", gtlang.UserAgent())
	return u.next.RoundTrip(r)
}

var _ AIProvider = (*OpenAIProvider)(nil)
