// Package redact strips secrets from variant source files before they are
// sent to any model provider.
//
// Detection uses regex heuristics covering the secret shapes that leak into
// frontend code: hardcoded API keys, bearer tokens, JWTs, private key
// blocks, AWS credentials, and provider-specific tokens (Anthropic, OpenAI,
// GitHub, Slack, Stripe). Files with credential-bearing names (.env
// variants, .pem, credentials files) are withheld wholesale rather than
// scanned.
package redact
