package assessment

import "strings"

// NormalizeTicker trims and uppercases a user-supplied ticker.
func NormalizeTicker(raw string) (string, error) {
	t := strings.ToUpper(strings.TrimSpace(raw))
	if t == "" {
		return "", &ValidationError{Message: "ticker required"}
	}
	return t, nil
}
