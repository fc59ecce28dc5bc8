package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// Check reports whether a single field value satisfies a rule.
type Check func(value string) bool

// Rule pairs a predicate over one field's value with the message shown when
// the predicate fails.
type Rule struct {
	Field   string
	Message string
	Check   Check
}

// Passes runs the rule's predicate. A rule without a predicate always passes.
func (r Rule) Passes(value string) bool {
	if r.Check == nil {
		return true
	}
	return r.Check(value)
}

// Accepted CPF and CEP shapes as single expressions, for consumers that
// publish the rules (e.g. the submission contract).
const (
	CPFPattern = `^(\d{3}\.\d{3}\.\d{3}-\d{2}|\d{11})$`
	CEPPattern = `^\d{5}-?\d{3}$`
)

var (
	cpfPunctuatedPattern = regexp.MustCompile(`^\d{3}\.\d{3}\.\d{3}-\d{2}$`)
	cpfDigitsPattern     = regexp.MustCompile(`^\d{11}$`)
	cepPattern           = regexp.MustCompile(CEPPattern)

	// validate is safe for concurrent use and caches tag parsing.
	validate = validator.New()
)

// Required fails when the value is empty or whitespace only.
func Required(field, message string) Rule {
	return Rule{
		Field:   field,
		Message: message,
		Check: func(value string) bool {
			return strings.TrimSpace(value) != ""
		},
	}
}

// Matches passes when the value matches at least one of the expressions.
func Matches(field, message string, patterns ...*regexp.Regexp) Rule {
	return Rule{
		Field:   field,
		Message: message,
		Check: func(value string) bool {
			for _, pattern := range patterns {
				if pattern != nil && pattern.MatchString(value) {
					return true
				}
			}
			return false
		},
	}
}

// MinLength passes when the normalised value holds at least n characters. A
// nil normalise function compares the raw value.
func MinLength(field, message string, n int, normalise func(string) string) Rule {
	return Rule{
		Field:   field,
		Message: message,
		Check: func(value string) bool {
			if normalise != nil {
				value = normalise(value)
			}
			return utf8.RuneCountInString(value) >= n
		},
	}
}

// Email passes when the value looks like an email address.
func Email(field, message string) Rule {
	return Rule{
		Field:   field,
		Message: message,
		Check:   IsEmail,
	}
}

// IsEmail reports whether value has email-address syntax: a dot-atom or
// quoted local part and a domain of hyphen-inner labels.
func IsEmail(value string) bool {
	return validate.Var(value, "email") == nil
}

// IsCPF reports whether value is a CPF written as 000.000.000-00 or
// 00000000000. Check digits are not verified; see CPFCheckDigitsValid.
func IsCPF(value string) bool {
	return cpfPunctuatedPattern.MatchString(value) || cpfDigitsPattern.MatchString(value)
}

// IsCEP reports whether value is a CEP written as 00000-000 or 00000000.
func IsCEP(value string) bool {
	return cepPattern.MatchString(value)
}

// NormalizeCEP rewrites a bare eight digit CEP into its hyphenated form.
// Anything else is returned unchanged.
func NormalizeCEP(value string) string {
	if len(value) == 8 && cepPattern.MatchString(value) {
		return value[:5] + "-" + value[5:]
	}
	return value
}
