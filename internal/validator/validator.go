package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid value")

// Rule names the check that rejected a value.
type Rule string

// Rules reported by the checks.
const (
	RuleNone      Rule = ""
	RuleRequired  Rule = "required"
	RuleFormat    Rule = "format"
	RuleLength    Rule = "length"
	RuleUppercase Rule = "uppercase"
	RuleLowercase Rule = "lowercase"
	RuleDigit     Rule = "digit"
	RuleSymbol    Rule = "symbol"
)

// PasswordSymbols is the set a password must draw at least one symbol from.
const PasswordSymbols = "#?!@$%^&*-"

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 8

var (
	nameRegexp        = regexp.MustCompile(`^[A-Za-z ]{2,30}$`)
	emailRegexp       = regexp.MustCompile(`^[\w.-]+@([\w-]+\.)+[\w-]{2,4}$`)
	phoneRegexp       = regexp.MustCompile(`^\+*\(?[0-9]{1,4}\)?[-\s./0-9]*$`)
	titleRegexp       = regexp.MustCompile(`^.{10,50}$`)
	descriptionRegexp = regexp.MustCompile(`^.{100,500}$`)
)

// Result is the outcome of a check. The zero value is a pass.
type Result struct {
	Field string
	Rule  Rule
}

// Valid reports whether the check passed.
func (r Result) Valid() bool {
	return r.Rule == RuleNone
}

// Err returns nil for a passing result and an *Error otherwise.
func (r Result) Err() error {
	if r.Valid() {
		return nil
	}
	return &Error{Field: r.Field, Rule: r.Rule}
}

// Named relabels the result with the caller's field name.
func (r Result) Named(field string) Result {
	r.Field = field
	return r
}

// Error describes which field failed which rule.
type Error struct {
	Field string
	Rule  Rule
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s rule failed", e.Field, e.Rule)
}

// Unwrap lets callers match any validation failure with errors.Is(err, ErrInvalid).
func (e *Error) Unwrap() error {
	return ErrInvalid
}

func fail(field string, rule Rule) Result {
	return Result{Field: field, Rule: rule}
}

func matchRule(field, value string, re *regexp.Regexp, rule Rule) Result {
	if value == "" {
		return fail(field, RuleRequired)
	}
	if !re.MatchString(value) {
		return fail(field, rule)
	}
	return Result{Field: field}
}

// CheckName accepts 2-30 latin letters and spaces.
func CheckName(name string) Result {
	return matchRule("name", name, nameRegexp, RuleFormat)
}

// CheckEmail accepts a local part, a dotted domain and a 2-4 character top-level segment.
func CheckEmail(email string) Result {
	return matchRule("email", email, emailRegexp, RuleFormat)
}

// CheckPhoneNumber accepts an optional leading '+', an optional parenthesized
// country code and digits with separators.
func CheckPhoneNumber(phone string) Result {
	return matchRule("phone_number", phone, phoneRegexp, RuleFormat)
}

// CheckTitle accepts 10-50 characters.
func CheckTitle(title string) Result {
	return matchRule("title", title, titleRegexp, RuleLength)
}

// CheckDescription accepts 100-500 characters.
func CheckDescription(description string) Result {
	return matchRule("description", description, descriptionRegexp, RuleLength)
}

// CheckPassword reports the first password clause the value violates, in the
// order length, uppercase, lowercase, digit, symbol.
func CheckPassword(password string) Result {
	const field = "password"
	if password == "" {
		return fail(field, RuleRequired)
	}
	if strings.ContainsRune(password, '\n') || utf8.RuneCountInString(password) < MinPasswordLength {
		return fail(field, RuleLength)
	}

	var upper, lower, digit, symbol bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(PasswordSymbols, r):
			symbol = true
		}
	}

	switch {
	case !upper:
		return fail(field, RuleUppercase)
	case !lower:
		return fail(field, RuleLowercase)
	case !digit:
		return fail(field, RuleDigit)
	case !symbol:
		return fail(field, RuleSymbol)
	}
	return Result{Field: field}
}

// IsValidName reports whether CheckName passes.
func IsValidName(name string) bool { return CheckName(name).Valid() }

// IsValidEmail reports whether CheckEmail passes.
func IsValidEmail(email string) bool { return CheckEmail(email).Valid() }

// IsValidPhoneNumber reports whether CheckPhoneNumber passes.
func IsValidPhoneNumber(phone string) bool { return CheckPhoneNumber(phone).Valid() }

// IsValidPassword reports whether CheckPassword passes.
func IsValidPassword(password string) bool { return CheckPassword(password).Valid() }

// IsValidTitle reports whether CheckTitle passes.
func IsValidTitle(title string) bool { return CheckTitle(title).Valid() }

// IsValidDescription reports whether CheckDescription passes.
func IsValidDescription(description string) bool { return CheckDescription(description).Valid() }

// First returns the first failing result, or a passing one when all pass.
func First(results ...Result) Result {
	for _, r := range results {
		if !r.Valid() {
			return r
		}
	}
	return Result{}
}
