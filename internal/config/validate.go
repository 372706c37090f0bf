package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"reflect"
	"regexp"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/ariel-frischer/emojilog/internal/commit"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ValidationError points at a config file line or key emojilog rejects.
type ValidationError struct {
	FilePath string
	Line     int
	Column   int
	// Field is the koanf key, with an index for list items ("commits_sort[1]").
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString(e.FilePath)
	if e.Line > 0 {
		fmt.Fprintf(&b, ":%d", e.Line)
		if e.Column > 0 {
			fmt.Fprintf(&b, ":%d", e.Column)
		}
	}
	b.WriteString(": ")
	if e.Field != "" {
		b.WriteString(e.Field + " ")
	}
	b.WriteString(e.Message)
	return b.String()
}

// Keys returns the configuration keys emojilog reads, sorted.
func Keys() []string {
	defaults := GetDefaults()
	keys := make([]string, 0, len(defaults))
	for key := range defaults {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

var yamlLine = regexp.MustCompile(`line (\d+)`)

// ValidateFile checks that a YAML or JSON config file parses and holds a
// single mapping of known keys. A missing or blank file is valid.
func ValidateFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return &ValidationError{FilePath: path, Message: err.Error()}
	}
	if strings.TrimSpace(string(data)) == "" {
		return nil
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return validateJSON(path, data)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		ve := &ValidationError{FilePath: path, Message: strings.TrimPrefix(err.Error(), "yaml: ")}
		if m := yamlLine.FindStringSubmatch(err.Error()); m != nil {
			ve.Line, _ = strconv.Atoi(m[1])
			ve.Message = strings.TrimPrefix(ve.Message, m[0]+": ")
		}
		return ve
	}
	if len(doc.Content) == 0 {
		return nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return &ValidationError{
			FilePath: path,
			Line:     root.Line,
			Column:   root.Column,
			Message:  "must be a mapping of configuration keys",
		}
	}

	for i := 0; i < len(root.Content); i += 2 {
		key := root.Content[i]
		if err := checkKey(path, key.Value); err != nil {
			err.Line, err.Column = key.Line, key.Column
			return err
		}
	}
	return nil
}

func validateJSON(path string, data []byte) error {
	var values map[string]json.RawMessage
	if err := json.Unmarshal(data, &values); err != nil {
		return &ValidationError{FilePath: path, Message: err.Error()}
	}
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if err := checkKey(path, key); err != nil {
			return err
		}
	}
	return nil
}

func checkKey(path, key string) *ValidationError {
	known := Keys()
	if slices.Contains(known, key) {
		return nil
	}
	return &ValidationError{
		FilePath: path,
		Field:    key,
		Message:  "is not a configuration key (known: " + strings.Join(known, ", ") + ")",
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("koanf")
	})
	mustRegister(v, "commitfield", func(fl validator.FieldLevel) bool {
		return slices.Contains(commit.FieldNames(), fl.Field().String())
	})
	mustRegister(v, "linkhost", func(fl validator.FieldLevel) bool {
		u, ok := linkURL(fl.Field().String())
		return ok && strings.Trim(u.Path, "/") == ""
	})
	mustRegister(v, "linkbase", func(fl validator.FieldLevel) bool {
		_, ok := linkURL(fl.Field().String())
		return ok
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("registering %s validation: %v", tag, err))
	}
}

// linkURL parses s as a base for issue, commit and profile links: an
// absolute http(s) URL with a host and no query or fragment.
func linkURL(s string) (*url.URL, bool) {
	u, err := url.Parse(s)
	if err != nil || u.Host == "" || u.RawQuery != "" || u.Fragment != "" {
		return nil, false
	}
	return u, u.Scheme == "http" || u.Scheme == "https"
}

// ValidateConfigValues checks the merged configuration. Every rejected
// value is reported; errors.As finds the first.
func ValidateConfigValues(cfg *Configuration, source string) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &ValidationError{FilePath: source, Message: err.Error()}
	}

	errs := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, &ValidationError{
			FilePath: source,
			Field:    fe.Field(),
			Message:  fieldMessage(fe),
		})
	}
	return errors.Join(errs...)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return fmt.Sprintf("must be one of [%s], got %q", fe.Param(), fe.Value())
	case "commitfield":
		return fmt.Sprintf("must be one of %s, got %q", strings.Join(commit.FieldNames(), ", "), fe.Value())
	case "linkhost":
		return fmt.Sprintf("must be an http(s) URL without a path, such as https://github.com, got %q", fe.Value())
	case "linkbase":
		return fmt.Sprintf("must be an http(s) URL without query or fragment, such as https://git.example.com/team/app, got %q", fe.Value())
	default:
		return fmt.Sprintf("failed the %s check", fe.Tag())
	}
}
