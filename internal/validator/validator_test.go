package validator

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantRule Rule
	}{
		{name: "valid", password: "Abcdef1!", wantRule: RuleNone},
		{name: "valid long", password: "Sup3r-Secret-Passphrase", wantRule: RuleNone},
		{name: "empty", password: "", wantRule: RuleRequired},
		{name: "too short", password: "Ab1!xyz", wantRule: RuleLength},
		{name: "no uppercase", password: "abcdefg1", wantRule: RuleUppercase},
		{name: "no lowercase", password: "ABCDEFG1!", wantRule: RuleLowercase},
		{name: "no digit", password: "Abcdefgh!", wantRule: RuleDigit},
		{name: "no symbol", password: "Abcdefg1", wantRule: RuleSymbol},
		{name: "symbol outside set", password: "Abcdefg1+", wantRule: RuleSymbol},
		{name: "newline", password: "Abcdef1!\n", wantRule: RuleLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := CheckPassword(tt.password)
			assert.Equal(t, tt.wantRule, res.Rule)
			assert.Equal(t, tt.wantRule == RuleNone, IsValidPassword(tt.password))
		})
	}
}

func TestCheckPassword_EverySymbolAccepted(t *testing.T) {
	for _, sym := range PasswordSymbols {
		pw := "Abcdefg1" + string(sym)
		assert.True(t, IsValidPassword(pw), "symbol %q", sym)
	}
}

func TestPredicates_EmptyInput(t *testing.T) {
	predicates := map[string]func(string) bool{
		"name":        IsValidName,
		"email":       IsValidEmail,
		"phone":       IsValidPhoneNumber,
		"password":    IsValidPassword,
		"title":       IsValidTitle,
		"description": IsValidDescription,
	}

	for name, fn := range predicates {
		t.Run(name, func(t *testing.T) {
			assert.False(t, fn(""))
		})
	}
}

func TestCheckName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"simple", "John", true},
		{"with space", "Mary Ann", true},
		{"two letters", "Al", true},
		{"one letter", "A", false},
		{"digits", "John2", false},
		{"too long", strings.Repeat("a", 31), false},
		{"thirty", strings.Repeat("a", 30), true},
		{"non latin", "Jürgen", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidName(tt.input))
		})
	}
}

func TestCheckEmail(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"john@example.com", true},
		{"john.doe-1@mail.example.org", true},
		{"j_d@ex-ample.io", true},
		{"john@example", false},
		{"john@example.technology", false},
		{"john.example.com", false},
		{"@example.com", false},
		{"john doe@example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidEmail(tt.input))
		})
	}
}

func TestCheckPhoneNumber(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"+998901234567", true},
		{"+(998) 90-123-45-67", true},
		{"(123) 456.7890", true},
		{"1234", true},
		{"phone", false},
		{"+1 (555) abc", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidPhoneNumber(tt.input))
		})
	}
}

func TestCheckTitleAndDescription(t *testing.T) {
	assert.False(t, IsValidTitle(strings.Repeat("t", 9)))
	assert.True(t, IsValidTitle(strings.Repeat("t", 10)))
	assert.True(t, IsValidTitle(strings.Repeat("t", 50)))
	assert.False(t, IsValidTitle(strings.Repeat("t", 51)))

	assert.False(t, IsValidDescription(strings.Repeat("d", 99)))
	assert.True(t, IsValidDescription(strings.Repeat("d", 100)))
	assert.True(t, IsValidDescription(strings.Repeat("d", 500)))
	assert.False(t, IsValidDescription(strings.Repeat("d", 501)))

	res := CheckTitle("short")
	assert.Equal(t, RuleLength, res.Rule)
	assert.Equal(t, "title", res.Field)
}

func TestResultErr(t *testing.T) {
	assert.NoError(t, CheckName("John").Err())

	err := CheckName("J0hn").Named("first_name").Err()
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalid))

	var vErr *Error
	assert.True(t, errors.As(err, &vErr))
	assert.Equal(t, "first_name", vErr.Field)
	assert.Equal(t, RuleFormat, vErr.Rule)
	assert.Equal(t, "first_name: format rule failed", err.Error())
}

func TestFirst(t *testing.T) {
	res := First(CheckName("John"), CheckEmail("bad"), CheckTitle(""))
	assert.Equal(t, "email", res.Field)
	assert.Equal(t, RuleFormat, res.Rule)

	assert.True(t, First(CheckName("John"), CheckEmail("john@example.com")).Valid())
	assert.True(t, First().Valid())
}
