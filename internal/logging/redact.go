package logging

import (
	"fmt"
	"log/slog"
	"strings"
)

// SecretKeyPatterns contains substrings that indicate a key likely contains sensitive data.
// Keys are matched case-insensitively.
var SecretKeyPatterns = []string{
	"TOKEN",
	"KEY",
	"SECRET",
	"PASSWORD",
	"AUTH",
	"CREDENTIAL",
	"PRIVATE",
}

// TokenPrefixes contains known API token prefixes. Alias commands often embed
// them inline, e.g. `curl -H "Authorization: token ghp_..."`.
var TokenPrefixes = []string{
	"ghp_",
	"gho_",
	"ghu_",
	"ghs_",
	"ghr_",
	"github_pat_",
	"glpat-",
	"sk-",
	"AKIA",
	"xoxb-",
	"xoxp-",
	"xoxa-",
	"xoxr-",
}

// MaskValue masks a potentially sensitive string value.
// Values with 4 or fewer characters are fully masked as "********".
// Longer values show the last 4 characters: "****xxxx".
func MaskValue(value string) string {
	if len(value) <= 4 {
		return "********"
	}
	return "****" + value[len(value)-4:]
}

// ShouldMask returns true if the key name suggests it contains sensitive data.
func ShouldMask(key string) bool {
	upper := strings.ToUpper(key)
	for _, pattern := range SecretKeyPatterns {
		if strings.Contains(upper, pattern) {
			return true
		}
	}
	return false
}

// HasTokenPrefix returns true if s starts with a known token prefix.
func HasTokenPrefix(s string) bool {
	for _, prefix := range TokenPrefixes {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

// RedactCommand masks every token-looking word inside a shell command while
// leaving the rest readable. Surrounding quotes are kept.
func RedactCommand(cmd string) string {
	fields := strings.Fields(cmd)
	changed := false
	for i, f := range fields {
		word := strings.Trim(f, `"'`)
		if eq := strings.IndexByte(word, '='); eq >= 0 && HasTokenPrefix(word[eq+1:]) {
			fields[i] = strings.Replace(f, word[eq+1:], MaskValue(word[eq+1:]), 1)
			changed = true
			continue
		}
		if HasTokenPrefix(word) {
			fields[i] = strings.Replace(f, word, MaskValue(word), 1)
			changed = true
		}
	}
	if !changed {
		return cmd
	}
	return strings.Join(fields, " ")
}

// Redact returns a with its value masked when the key or value looks secret.
func Redact(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		return a
	}
	if ShouldMask(a.Key) {
		return slog.String(a.Key, MaskValue(fmt.Sprint(a.Value.Any())))
	}
	if a.Value.Kind() == slog.KindString {
		if s := a.Value.String(); strings.ContainsAny(s, " \t") || HasTokenPrefix(s) {
			if r := RedactCommand(s); r != s {
				return slog.String(a.Key, r)
			}
		}
	}
	return a
}
