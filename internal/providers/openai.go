package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const defaultOpenAIURL = "https://api.openai.com/v1/chat/completions"

// OpenAI implements the Analyzer interface for OpenAI's API.
type OpenAI struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewOpenAI creates a new OpenAI provider.
func NewOpenAI(model string) (*OpenAI, error) {
	key := os.Getenv("OPENAI_API_KEY")
	if key == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is not set")
	}
	baseURL := os.Getenv("ABLENS_OPENAI_BASE_URL")
	if baseURL == "" {
		baseURL = defaultOpenAIURL
	}
	return &OpenAI{
		apiKey:  key,
		model:   model,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 120 * time.Second},
	}, nil
}

func (o *OpenAI) Name() string { return "openai" }

func (o *OpenAI) Analyze(ctx context.Context, req AnalyzeRequest) (AnalyzeResponse, error) {
	resp, err := chatCompletion(ctx, o.client, o.baseURL, o.apiKey, o.model, req)
	if err != nil {
		return AnalyzeResponse{}, err
	}
	return resp, nil
}

// chatCompletion shapes and performs an OpenAI-compatible chat request.
// Ollama and LM Studio expose the same endpoint, so both providers share
// this path.
func chatCompletion(ctx context.Context, client *http.Client, baseURL, apiKey, model string, req AnalyzeRequest) (AnalyzeResponse, error) {
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = 8192
	}

	parts := make([]openaiPart, 0, len(req.Blocks))
	for _, b := range req.Blocks {
		switch b.Type {
		case BlockImage:
			parts = append(parts, openaiPart{
				Type: "image_url",
				ImageURL: &openaiImageURL{
					URL: fmt.Sprintf("data:%s;base64,%s", b.MediaType, b.Data),
				},
			})
		default:
			parts = append(parts, openaiPart{Type: "text", Text: b.Text})
		}
	}

	messages := []openaiMessage{
		{Role: "system", Content: req.System},
		{Role: "user", ContentParts: parts},
	}

	body := openaiRequest{
		Model:     model,
		Messages:  messages,
		MaxTokens: maxTokens,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return AnalyzeResponse{}, fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", baseURL, bytes.NewReader(payload))
	if err != nil {
		return AnalyzeResponse{}, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+apiKey)
	}

	httpResp, err := client.Do(httpReq)
	if err != nil {
		return AnalyzeResponse{}, fmt.Errorf("sending request: %w", err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return AnalyzeResponse{}, fmt.Errorf("reading response: %w", err)
	}

	if httpResp.StatusCode == 401 || httpResp.StatusCode == 403 {
		return AnalyzeResponse{}, &authError{message: string(respBody)}
	}
	if httpResp.StatusCode != 200 {
		return AnalyzeResponse{}, &APIError{Status: httpResp.StatusCode, Body: string(respBody)}
	}

	var result openaiResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return AnalyzeResponse{}, fmt.Errorf("parsing response: %w", err)
	}

	if len(result.Choices) == 0 {
		return AnalyzeResponse{}, fmt.Errorf("no choices in response")
	}

	return AnalyzeResponse{
		Content:    result.Choices[0].Message.Content,
		TokensUsed: result.Usage.TotalTokens,
	}, nil
}

type openaiRequest struct {
	Model     string          `json:"model"`
	Messages  []openaiMessage `json:"messages"`
	MaxTokens int             `json:"max_tokens"`
}

// openaiMessage marshals Content when set (system messages and
// responses) and ContentParts otherwise (the multimodal user turn).
type openaiMessage struct {
	Role         string       `json:"role"`
	Content      string       `json:"-"`
	ContentParts []openaiPart `json:"-"`
}

func (m openaiMessage) MarshalJSON() ([]byte, error) {
	if len(m.ContentParts) > 0 {
		return json.Marshal(struct {
			Role    string       `json:"role"`
			Content []openaiPart `json:"content"`
		}{m.Role, m.ContentParts})
	}
	return json.Marshal(struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}{m.Role, m.Content})
}

func (m *openaiMessage) UnmarshalJSON(data []byte) error {
	var plain struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	if err := json.Unmarshal(data, &plain); err != nil {
		return err
	}
	m.Role = plain.Role
	m.Content = plain.Content
	return nil
}

type openaiPart struct {
	Type     string          `json:"type"`
	Text     string          `json:"text,omitempty"`
	ImageURL *openaiImageURL `json:"image_url,omitempty"`
}

type openaiImageURL struct {
	URL string `json:"url"`
}

type openaiResponse struct {
	Choices []openaiChoice `json:"choices"`
	Usage   openaiUsage    `json:"usage"`
}

type openaiChoice struct {
	Message openaiMessage `json:"message"`
}

type openaiUsage struct {
	TotalTokens int `json:"total_tokens"`
}
