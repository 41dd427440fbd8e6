package config

import (
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"

	apperrors "github.com/naoray/worktree-kit/internal/errors"
)

// InvalidConfigError lists every problem found in a config file.
type InvalidConfigError struct {
	Path   string
	Issues []string
}

func (e *InvalidConfigError) Error() string {
	where := ""
	if e.Path != "" {
		where = " in " + e.Path
	}
	return fmt.Sprintf("invalid config%s: %s", where, strings.Join(e.Issues, "; "))
}

func (e *InvalidConfigError) Unwrap() error {
	return apperrors.ErrInvalidConfig
}

// Parse validates a decoded JSON document and returns the config with
// defaults applied. Unknown keys are ignored.
func Parse(raw interface{}) (*WorktreeConfig, error) {
	doc, ok := raw.(map[string]interface{})
	if !ok {
		return nil, &InvalidConfigError{Issues: []string{"expected object, received " + typeName(raw)}}
	}

	var issues []string

	switch v := doc["rootDir"].(type) {
	case string:
	case nil:
		if _, present := doc["rootDir"]; present {
			issues = append(issues, "rootDir: expected string, received null")
		} else {
			issues = append(issues, "rootDir: required")
		}
	default:
		issues = append(issues, "rootDir: expected string, received "+typeName(v))
	}

	issues = append(issues, checkStringArray(doc, "copy", "copy")...)

	if hooks, present := doc["hooks"]; present {
		switch h := hooks.(type) {
		case map[string]interface{}:
			issues = append(issues, checkStringArray(h, "post-create", "hooks.post-create")...)
		default:
			issues = append(issues, "hooks: expected object, received "+typeName(h))
		}
	}

	if base, present := doc["defaultBase"]; present {
		s, ok := base.(string)
		if !ok || !validDefaultBase(s) {
			issues = append(issues, fmt.Sprintf("defaultBase: expected one of %s", joinBases()))
		}
	}

	if len(issues) > 0 {
		return nil, &InvalidConfigError{Issues: issues}
	}

	cfg := &WorktreeConfig{}
	if err := mapstructure.Decode(doc, cfg); err != nil {
		return nil, &InvalidConfigError{Issues: []string{err.Error()}}
	}
	if cfg.Copy == nil {
		cfg.Copy = []string{}
	}
	if cfg.Hooks.PostCreate == nil {
		cfg.Hooks.PostCreate = []string{}
	}
	if cfg.DefaultBase == "" {
		cfg.DefaultBase = DefaultBaseAsk
	}
	return cfg, nil
}

func checkStringArray(doc map[string]interface{}, key, label string) []string {
	value, present := doc[key]
	if !present {
		return nil
	}
	items, ok := value.([]interface{})
	if !ok {
		return []string{fmt.Sprintf("%s: expected array, received %s", label, typeName(value))}
	}

	var issues []string
	for i, item := range items {
		if _, ok := item.(string); !ok {
			issues = append(issues, fmt.Sprintf("%s[%d]: expected string, received %s", label, i, typeName(item)))
		}
	}
	return issues
}

func validDefaultBase(s string) bool {
	for _, b := range defaultBases {
		if string(b) == s {
			return true
		}
	}
	return false
}

func joinBases() string {
	names := make([]string, len(defaultBases))
	for i, b := range defaultBases {
		names[i] = string(b)
	}
	return strings.Join(names, ", ")
}

func typeName(v interface{}) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case []interface{}:
		return "array"
	case map[string]interface{}:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
