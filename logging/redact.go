/*
Copyright © 2026 amictl contributors

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/

package logging

import (
	"regexp"
	"strings"
)

// sensitiveKeyPatterns lists substrings that mark a key as holding a
// credential. Matching is case-insensitive.
var sensitiveKeyPatterns = []string{
	"secret",
	"token",
	"password",
	"credential",
	"session_token",
	"access_key",
	"accesskey",
	"access-key",
}

// sensitiveValuePattern matches key=value pairs carrying credentials.
var sensitiveValuePattern = regexp.MustCompile(`(?i)(password|token|secret|secret_key|access_key|credential)=\S+`)

// IsSensitiveKey returns true if the key name matches known sensitive patterns.
// The check is case-insensitive.
func IsSensitiveKey(key string) bool {
	lowerKey := strings.ToLower(key)
	for _, pattern := range sensitiveKeyPatterns {
		if strings.Contains(lowerKey, pattern) {
			return true
		}
	}
	return false
}

// RedactSensitiveValue returns a redacted version of the value if the key
// is sensitive, otherwise returns the original value.
func RedactSensitiveValue(key, value string) string {
	if IsSensitiveKey(key) {
		return "***"
	}
	return value
}

// RedactSensitivePatterns redacts known sensitive patterns from a string.
// For example: "secret_key=abc123" -> "secret_key=***"
func RedactSensitivePatterns(input string) string {
	return sensitiveValuePattern.ReplaceAllStringFunc(input, func(match string) string {
		parts := strings.SplitN(match, "=", 2)
		if len(parts) == 2 {
			return parts[0] + "=***"
		}
		return match
	})
}

// RedactAccessKeyID masks an AWS access key id, preserving the last four
// characters so a config dump can still identify which key is in use.
func RedactAccessKeyID(id string) string {
	if len(id) <= 4 {
		return "***"
	}
	return "***" + id[len(id)-4:]
}
