package utils

import "strings"

var placeholderMarkers = []string{"your_", "your-", "placeholder", "changeme", "change_me", "replace_me", "xxxx", "<", "..."}

// IsPlaceholder 判断凭证是否为空或仍是 .env.example 中的示例值。
func IsPlaceholder(value string) bool {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return true
	}
	for _, marker := range placeholderMarkers {
		if strings.Contains(v, marker) {
			return true
		}
	}
	return false
}
