package extraction

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/shenikar/crisisflow/internal/models"
)

const systemPrompt = `You are a disaster intelligence agent. Extract the location, hazard type, and severity from this report.
Return ONLY valid JSON in this exact format:
{
    "location": "extracted location or 'Location not specified'",
    "hazard_type": "Fire, Flood, Earthquake, Storm, Tornado, or Unknown",
    "severity": "Low, Medium, or High",
    "confidence_score": 0.0-1.0
}`

const visionPrompt = `Analyze this image of a possible disaster scene together with the attached text, if any.`

// ErrEmptyCompletion - модель вернула ответ без вариантов
var ErrEmptyCompletion = errors.New("extraction: completion has no choices")

// LLMClient обращается к API chat completions, совместимому с OpenAI
type LLMClient struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewLLMClient создает клиента. Таймаут запроса задается контекстом вызывающего.
func NewLLMClient(baseURL, apiKey, model string, httpClient *http.Client) *LLMClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &LLMClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		httpClient: httpClient,
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

// chatMessage.Content - строка либо массив частей для запросов с изображением
type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// llmFields - ответ модели. Числа и строки приходят как есть и нормализуются позже.
type llmFields struct {
	Location        *string  `json:"location"`
	HazardType      *string  `json:"hazard_type"`
	Severity        *string  `json:"severity"`
	ConfidenceScore *float64 `json:"confidence_score"`
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`
}

// ExtractText извлекает поля из текста сообщения
func (c *LLMClient) ExtractText(ctx context.Context, text string) (models.ExtractedFields, error) {
	return c.complete(ctx, []chatMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: text},
	})
}

// ExtractImage извлекает поля из изображения и сопроводительного текста
func (c *LLMClient) ExtractImage(ctx context.Context, text string, image []byte) (models.ExtractedFields, error) {
	dataURL := fmt.Sprintf("data:%s;base64,%s", http.DetectContentType(image), base64.StdEncoding.EncodeToString(image))
	parts := []contentPart{
		{Type: "text", Text: visionPrompt + "\n\n" + text},
		{Type: "image_url", ImageURL: &imageURL{URL: dataURL}},
	}
	return c.complete(ctx, []chatMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: parts},
	})
}

func (c *LLMClient) complete(ctx context.Context, messages []chatMessage) (models.ExtractedFields, error) {
	body, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    messages,
		MaxTokens:   200,
		Temperature: 0.3,
	})
	if err != nil {
		return models.ExtractedFields{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return models.ExtractedFields{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.ExtractedFields{}, fmt.Errorf("completion request: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return models.ExtractedFields{}, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return models.ExtractedFields{}, fmt.Errorf("completion API error: status %d: %s", resp.StatusCode, payload)
	}

	var completion chatResponse
	if err := json.Unmarshal(payload, &completion); err != nil {
		return models.ExtractedFields{}, fmt.Errorf("failed to parse response: %w", err)
	}
	if completion.Error != nil {
		return models.ExtractedFields{}, fmt.Errorf("completion API error: %s", completion.Error.Message)
	}
	if len(completion.Choices) == 0 {
		return models.ExtractedFields{}, ErrEmptyCompletion
	}

	return parseFields(completion.Choices[0].Message.Content)
}

// parseFields разбирает JSON ответа модели, в том числе обернутый в ```json
func parseFields(content string) (models.ExtractedFields, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var raw llmFields
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return models.ExtractedFields{}, fmt.Errorf("failed to parse model output: %w", err)
	}

	fields := models.ExtractedFields{
		Location:        raw.Location,
		HazardType:      raw.HazardType,
		ConfidenceScore: raw.ConfidenceScore,
		Latitude:        raw.Latitude,
		Longitude:       raw.Longitude,
	}
	if raw.Severity != nil {
		if severity, ok := models.ParseSeverity(*raw.Severity); ok {
			fields.Severity = &severity
		}
	}
	return fields, nil
}
