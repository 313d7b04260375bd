package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	"github.com/civicforms/lfpappeal/pkg/domain"
	"github.com/civicforms/lfpappeal/pkg/ports"
)

type piiMiddleware struct {
	next     ports.SessionStore
	patterns []*regexp.Regexp
}

// NewPIIMiddleware creates a middleware that masks values whose JSON keys
// match the patterns before the record reaches the store. Typical patterns:
// `^email$`, `^name$`. The in-memory copy the engine works with is left
// untouched.
func NewPIIMiddleware(patternStrings []string) Middleware {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		patterns[i] = regexp.MustCompile(p)
	}
	return func(next ports.SessionStore) ports.SessionStore {
		return &piiMiddleware{next: next, patterns: patterns}
	}
}

func (m *piiMiddleware) Store(ctx context.Context, cookie string, data *domain.ApplicationData, ttl time.Duration) error {
	// Round-trip through JSON so masking sees the same keys the store
	// would persist, regardless of struct shape.
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal session data: %w", err)
	}

	var tree map[string]any
	if err := json.Unmarshal(raw, &tree); err != nil {
		return fmt.Errorf("failed to rebuild session data: %w", err)
	}
	maskMap(tree, m.patterns)

	masked, err := json.Marshal(tree)
	if err != nil {
		return fmt.Errorf("failed to marshal masked session data: %w", err)
	}
	var cloned domain.ApplicationData
	if err := json.Unmarshal(masked, &cloned); err != nil {
		return fmt.Errorf("failed to decode masked session data: %w", err)
	}

	return m.next.Store(ctx, cookie, &cloned, ttl)
}

func (m *piiMiddleware) Load(ctx context.Context, cookie string) (*domain.ApplicationData, error) {
	return m.next.Load(ctx, cookie)
}

func (m *piiMiddleware) Delete(ctx context.Context, cookie string) error {
	return m.next.Delete(ctx, cookie)
}

func (m *piiMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

func maskMap(tree map[string]any, patterns []*regexp.Regexp) {
	for k, v := range tree {
		for _, p := range patterns {
			if p.MatchString(k) {
				if _, isString := v.(string); isString {
					tree[k] = "***"
				}
				break
			}
		}

		switch sub := v.(type) {
		case map[string]any:
			maskMap(sub, patterns)
		case []any:
			for _, item := range sub {
				if subMap, ok := item.(map[string]any); ok {
					maskMap(subMap, patterns)
				}
			}
		}
	}
}
