// Package providers implements the Analyzer interface for each supported
// LLM provider.
//
// Supported providers: Anthropic (Claude), OpenAI (GPT), Google (Gemini),
// and Ollama / LMStudio for local models. Requests are multimodal: a
// sequence of text and base64 image content blocks, translated into each
// provider's wire format.
//
// Calls are single-shot. A failed request surfaces immediately; nothing
// here retries, since the caller reports failures verbatim to the user.
// Base URLs are overridable via environment variables so tests can
// redirect calls to local httptest servers.
//
// Use [New] to obtain an Analyzer by provider name and model string.
package providers
