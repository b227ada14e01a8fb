package prop

import (
	"unicode/utf8"

	"github.com/casualjim/tracked/pkg/reflectx"
)

// Violation is what a failing rule reports. The result is a plain string,
// usually the metadata key of the rule that failed.
type Violation struct {
	Result string `json:"result"`
}

// Rule is an advisory validator. Validate returns nil when the value passes.
// Metadata is attached to the broker at construction and can be read back with
// MetadataValue.
type Rule[T any] struct {
	Metadata map[string]any
	Validate func(T) *Violation
}

// Metadata keys used by the builtin rules. Each key is also the Result of the
// violation the rule reports.
const (
	TextMaxLengthKey = "$maxLength"
	TextMinLengthKey = "$minLength"
	IsDefinedKey     = "$isDefined"
)

// TextMaxLength fails when the text has more than maxLength characters.
func TextMaxLength(maxLength int) Rule[string] {
	return Rule[string]{
		Metadata: map[string]any{TextMaxLengthKey: maxLength},
		Validate: func(value string) *Violation {
			if utf8.RuneCountInString(value) > maxLength {
				return &Violation{Result: TextMaxLengthKey}
			}
			return nil
		},
	}
}

// TextMinLength fails when the text has fewer than minLength characters.
func TextMinLength(minLength int) Rule[string] {
	return Rule[string]{
		Metadata: map[string]any{TextMinLengthKey: minLength},
		Validate: func(value string) *Violation {
			if utf8.RuneCountInString(value) < minLength {
				return &Violation{Result: TextMinLengthKey}
			}
			return nil
		},
	}
}

// IsDefined fails for nil values.
func IsDefined[T any]() Rule[T] {
	return Rule[T]{
		Metadata: map[string]any{IsDefinedKey: false},
		Validate: func(value T) *Violation {
			if reflectx.IsNil(any(value)) {
				return &Violation{Result: IsDefinedKey}
			}
			return nil
		},
	}
}
