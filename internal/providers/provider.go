package providers

import (
	"context"
	"fmt"
)

// BlockType discriminates content blocks in an analysis request.
type BlockType string

const (
	BlockText  BlockType = "text"
	BlockImage BlockType = "image"
)

// ContentBlock is one piece of a multimodal request: either text or a
// base64-encoded image with its media type.
type ContentBlock struct {
	Type      BlockType
	Text      string
	MediaType string
	Data      string
}

// TextBlock builds a text content block.
func TextBlock(text string) ContentBlock {
	return ContentBlock{Type: BlockText, Text: text}
}

// ImageBlock builds an image content block.
func ImageBlock(mediaType, data string) ContentBlock {
	return ContentBlock{Type: BlockImage, MediaType: mediaType, Data: data}
}

// AnalyzeRequest contains the data sent to an LLM for analysis.
type AnalyzeRequest struct {
	System    string
	Blocks    []ContentBlock
	MaxTokens int
}

// AnalyzeResponse contains the raw response from an LLM.
type AnalyzeResponse struct {
	Content    string
	TokensUsed int
}

// Analyzer is the provider abstraction interface.
type Analyzer interface {
	Analyze(ctx context.Context, req AnalyzeRequest) (AnalyzeResponse, error)
	Name() string
}

// New creates a provider by name.
func New(provider, model string) (Analyzer, error) {
	switch provider {
	case "anthropic":
		return NewAnthropic(model)
	case "openai":
		return NewOpenAI(model)
	case "gemini", "google":
		return NewGemini(model)
	case "ollama", "lmstudio":
		return NewOllama(model)
	default:
		return nil, fmt.Errorf("unknown provider: %s", provider)
	}
}
