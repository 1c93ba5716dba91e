package validator

import (
	"testing"
)

type validationTestCase struct {
	name    string
	value   string
	wantErr bool
}

func runValidationTests(t *testing.T, tag string, tests []validationTestCase) {
	v := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateVar(tt.value, tag)
			if (err != nil) != tt.wantErr {
				t.Errorf("%s validation for '%s': error = %v, wantErr %v", tag, tt.value, err, tt.wantErr)
			}
		})
	}
}

// TestMobileValidation tests Chinese mobile phone number validation.
func TestMobileValidation(t *testing.T) {
	tests := []validationTestCase{
		{"valid_13x", "13800138000", false},
		{"valid_19x", "19912345678", false},
		{"invalid_12x", "12345678901", true},
		{"invalid_too_short", "1380013800", true},
		{"invalid_too_long", "138001380000", true},
		{"invalid_letters", "1380013800a", true},
		{"invalid_spaces", "138 0013 8000", true},
		{"empty_string", "", false}, // Empty is valid (let 'required' handle it)
	}

	runValidationTests(t, TagMobile, tests)
}

// TestUsernameValidation tests username format validation.
func TestUsernameValidation(t *testing.T) {
	tests := []validationTestCase{
		{"valid_simple", "alice", false},
		{"valid_with_underscore", "ops_admin", false},
		{"valid_with_digits", "user42", false},
		{"valid_min_length", "abc", false},
		{"invalid_too_short", "ab", true},
		{"invalid_starts_with_digit", "1alice", true},
		{"invalid_starts_with_underscore", "_alice", true},
		{"invalid_hyphen", "ops-admin", true},
		{"invalid_space", "ops admin", true},
		{"empty_string", "", false},
	}

	runValidationTests(t, TagUsername, tests)
}

// TestPasswordValidation tests basic password requirement validation.
func TestPasswordValidation(t *testing.T) {
	tests := []validationTestCase{
		{"valid_letters_and_digits", "password1", false},
		{"valid_mixed", "P4ssword", false},
		{"invalid_too_short", "pass1", true},
		{"invalid_only_letters", "passwordonly", true},
		{"invalid_only_digits", "12345678", true},
		{"empty_string", "", false},
	}

	runValidationTests(t, TagPassword, tests)
}

// TestStrongPasswordValidation tests strong password validation.
func TestStrongPasswordValidation(t *testing.T) {
	tests := []validationTestCase{
		{"valid_strong", "P4ssw0rd!", false},
		{"invalid_no_special", "P4ssw0rd", true},
		{"invalid_no_upper", "p4ssw0rd!", true},
		{"invalid_no_digit", "Password!", true},
		{"invalid_too_short", "P4s!", true},
		{"empty_string", "", false},
	}

	runValidationTests(t, TagStrongPwd, tests)
}

// TestSlugValidation tests slug validation as used by role codes.
func TestSlugValidation(t *testing.T) {
	tests := []validationTestCase{
		{"valid_single_word", "ops", false},
		{"valid_hyphenated", "device-admin", false},
		{"valid_with_digits", "tier2-support", false},
		{"invalid_uppercase", "Ops", true},
		{"invalid_underscore", "device_admin", true},
		{"invalid_leading_hyphen", "-ops", true},
		{"invalid_trailing_hyphen", "ops-", true},
		{"invalid_double_hyphen", "device--admin", true},
		{"empty_string", "", false},
	}

	runValidationTests(t, TagSlug, tests)
}

// TestNoWhitespaceAndTrimmed tests whitespace related rules.
func TestNoWhitespaceAndTrimmed(t *testing.T) {
	runValidationTests(t, TagNoWhitespace, []validationTestCase{
		{"valid_path", "/api/v1/devices", false},
		{"invalid_inner_space", "/api/v1/dev ices", true},
		{"invalid_tab", "/api\tv1", true},
		{"empty_string", "", false},
	})

	runValidationTests(t, TagTrimmed, []validationTestCase{
		{"valid_trimmed", "console", false},
		{"invalid_leading_space", " console", true},
		{"invalid_trailing_space", "console ", true},
		{"empty_string", "", false},
	})
}

// TestValidationTranslations tests that custom rules produce translated messages.
func TestValidationTranslations(t *testing.T) {
	v := New()

	type payload struct {
		Code string `json:"code" validate:"required,slug"`
	}

	errs := v.ValidateWithLang(payload{Code: "Bad_Code"}, LangZH)
	if errs == nil || len(errs.Errors) == 0 {
		t.Fatal("expected validation errors for invalid slug")
	}
	if errs.Errors[0].Field != "code" {
		t.Errorf("expected json field name 'code', got %q", errs.Errors[0].Field)
	}
	if errs.Errors[0].Message == "" {
		t.Error("expected a translated message")
	}
}
