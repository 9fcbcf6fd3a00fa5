package redact

import (
	"path/filepath"
	"regexp"
	"strings"
)

const placeholder = "[REDACTED]"

// secretPatterns are regex heuristics for secret shapes that show up in
// frontend source: hardcoded API keys, tokens baked into fetch calls, JWTs
// left in fixtures, private keys pasted into config files.
var secretPatterns = []*regexp.Regexp{
	// Generic API keys in assignments or object literals
	regexp.MustCompile(`(?i)(api[_-]?key|apikey|api[_-]?secret)\s*[:=]\s*["']?([A-Za-z0-9/+=_-]{20,})["']?`),
	// AWS access key IDs
	regexp.MustCompile(`AKIA[0-9A-Z]{16}`),
	// AWS secret access keys
	regexp.MustCompile(`(?i)(aws[_-]?secret[_-]?access[_-]?key)\s*[:=]\s*["']?([A-Za-z0-9/+=]{40})["']?`),
	// Generic secrets/tokens/passwords in assignments
	regexp.MustCompile(`(?i)(secret|token|password|passwd|credential)\s*[:=]\s*["']([^"']{8,})["']`),
	// Authorization headers with inline bearer tokens
	regexp.MustCompile(`(?i)Bearer\s+[A-Za-z0-9._-]{20,}`),
	// JWTs (three base64url segments separated by dots)
	regexp.MustCompile(`eyJ[A-Za-z0-9_-]{10,}\.eyJ[A-Za-z0-9_-]{10,}\.[A-Za-z0-9_-]{10,}`),
	// Private key blocks
	regexp.MustCompile(`-----BEGIN\s+(RSA\s+)?PRIVATE KEY-----`),
	// GitHub tokens
	regexp.MustCompile(`gh[pousr]_[A-Za-z0-9_]{36,}`),
	// Slack tokens
	regexp.MustCompile(`xox[bporas]-[A-Za-z0-9-]{10,}`),
	// Stripe keys
	regexp.MustCompile(`[sr]k_live_[A-Za-z0-9]{20,}`),
	// Anthropic API keys
	regexp.MustCompile(`sk-ant-[A-Za-z0-9_-]{20,}`),
	// OpenAI API keys
	regexp.MustCompile(`sk-[A-Za-z0-9]{20,}`),
	// Long hex strings assigned to key-like names
	regexp.MustCompile(`(?i)(key|secret|token)\s*[:=]\s*["']?[0-9a-f]{32,}["']?`),
}

// sensitiveNames are file names whose entire content is replaced rather
// than scanned. Matching is against the base name, case-insensitive.
var sensitiveNames = []string{
	".env",
	".env.*",
	"*.pem",
	"*.key",
	"credentials*",
	"secrets.*",
	".npmrc",
	".netlify.toml",
}

// Secrets replaces detected secrets in text with [REDACTED].
func Secrets(text string) string {
	result := text
	for _, pat := range secretPatterns {
		result = pat.ReplaceAllStringFunc(result, func(string) string {
			return placeholder
		})
	}
	return result
}

// IsSensitivePath reports whether a file should be withheld wholesale
// instead of scanned for individual secrets.
func IsSensitivePath(relativePath string) bool {
	base := strings.ToLower(filepath.Base(relativePath))
	for _, pattern := range sensitiveNames {
		if matched, err := filepath.Match(pattern, base); err == nil && matched {
			return true
		}
	}
	return false
}

// File redacts the content of one variant source file. Files with sensitive
// names are replaced entirely; everything else gets pattern scanning.
func File(content, relativePath string) string {
	if IsSensitivePath(relativePath) {
		return placeholder + " (file content withheld)\n"
	}
	return Secrets(content)
}
