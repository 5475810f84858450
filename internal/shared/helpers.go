// Package shared provides common utility functions used across multiple
// packages in the ros-cargo-build codebase.
package shared

import (
	"fmt"
	"sort"
	"strings"
)

// CommandError wraps a command execution error with its trimmed output
// for cleaner error messages.
func CommandError(output []byte, err error) error {
	trimmed := strings.TrimSpace(string(output))
	if trimmed == "" {
		return err
	}
	return fmt.Errorf("%s: %w", lastLines(trimmed, 20), err)
}

// SplitPathList splits a colon separated prefix list, dropping empty and
// duplicate entries while keeping the first occurrence.
func SplitPathList(value string) []string {
	var result []string
	seen := map[string]struct{}{}
	for _, part := range strings.Split(value, ":") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if _, ok := seen[part]; ok {
			continue
		}
		seen[part] = struct{}{}
		result = append(result, part)
	}
	return result
}

// SortedKeys returns the keys of m in lexical order.
func SortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func lastLines(value string, n int) string {
	lines := strings.Split(value, "\n")
	if len(lines) <= n {
		return value
	}
	return strings.Join(lines[len(lines)-n:], "\n")
}
