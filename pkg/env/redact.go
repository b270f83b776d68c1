package env

import (
	"net/url"
	"strings"
)

// RedactSecret masks a secret, showing only the first 4 and last
// 4 characters.
func RedactSecret(secret string) string {
	if len(secret) <= 8 {
		return strings.Repeat("*", len(secret))
	}
	return secret[:4] + strings.Repeat("*", len(secret)-8) + secret[len(secret)-4:]
}

// RedactURL masks the password and token-like query parameters
// of a URL. The masks are inserted after encoding so they read as
// plain asterisks.
func RedactURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	const placeholder = "xredactedx"
	var password string
	if u.User != nil {
		if p, ok := u.User.Password(); ok {
			password = p
			u.User = url.UserPassword(u.User.Username(), placeholder)
		}
	}

	if u.RawQuery != "" {
		parts := strings.Split(u.RawQuery, "&")
		for i, part := range parts {
			key, value, ok := strings.Cut(part, "=")
			if !ok {
				continue
			}
			name, err := url.QueryUnescape(key)
			if err != nil || !sensitiveParam(name) {
				continue
			}
			if decoded, err := url.QueryUnescape(value); err == nil {
				value = decoded
			}
			parts[i] = key + "=" + RedactSecret(value)
		}
		u.RawQuery = strings.Join(parts, "&")
	}

	out := u.String()
	if password != "" {
		out = strings.Replace(out, ":"+placeholder+"@", ":"+RedactSecret(password)+"@", 1)
	}
	return out
}

func sensitiveParam(key string) bool {
	lower := strings.ToLower(key)
	return strings.Contains(lower, "token") ||
		strings.Contains(lower, "key") ||
		strings.Contains(lower, "secret") ||
		strings.Contains(lower, "password")
}

// RedactHeaders masks sensitive header values.
func RedactHeaders(headers map[string]string) map[string]string {
	sensitive := map[string]bool{
		"authorization":       true,
		"x-api-key":           true,
		"api-key":             true,
		"x-auth-token":        true,
		"cookie":              true,
		"proxy-authorization": true,
	}

	result := make(map[string]string, len(headers))
	for k, v := range headers {
		if sensitive[strings.ToLower(k)] {
			result[k] = RedactSecret(v)
		} else {
			result[k] = v
		}
	}
	return result
}
