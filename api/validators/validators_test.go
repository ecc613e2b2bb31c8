package validators

import (
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	pkgerrors "github.com/angelmondragon/shopdash/pkg/errors"
)

type customerBody struct {
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone" validate:"required,phone"`
	Language string `json:"preferred_language" validate:"omitempty,bcp47"`
}

func TestDecodeJSONBodyNamesFields(t *testing.T) {
	req := httptest.NewRequest("POST", "/customers", strings.NewReader(`{"name":"","phone":"90000-1111","preferred_language":"not a tag!"}`))
	var body customerBody
	err := DecodeJSONBody(req, &body)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected field details, got %T", typed.Details())
	}
	for _, field := range []string{"name", "phone", "preferred_language"} {
		if details[field] == "" {
			t.Fatalf("expected %s in details %v", field, details)
		}
	}
}

func TestDecodeJSONBodyAcceptsValidInput(t *testing.T) {
	req := httptest.NewRequest("POST", "/customers", strings.NewReader(`{"name":"Asha","phone":"+91 90000 11111","preferred_language":"hi-IN"}`))
	var body customerBody
	if err := DecodeJSONBody(req, &body); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body.Phone != "+91 90000 11111" {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest("POST", "/customers", strings.NewReader(`{"name":"Asha","phone":"1","role":"admin"}`))
	var body customerBody
	if err := DecodeJSONBody(req, &body); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestParseQueryInt(t *testing.T) {
	req := httptest.NewRequest("GET", "/customers?page=3&bad=x&big=500", nil)
	if v, err := ParseQueryInt(req, "page", 1, 1, 100); err != nil || v != 3 {
		t.Fatalf("expected 3, got %d %v", v, err)
	}
	if v, err := ParseQueryInt(req, "missing", 1, 1, 100); err != nil || v != 1 {
		t.Fatalf("expected default, got %d %v", v, err)
	}
	if _, err := ParseQueryInt(req, "bad", 1, 1, 100); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error for non-numeric")
	}
	if _, err := ParseQueryInt(req, "big", 1, 1, 100); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error for out of range")
	}
}

func TestSanitizeString(t *testing.T) {
	if got := SanitizeString("  rice  ", 3); got != "ric" {
		t.Fatalf("unexpected %q", got)
	}
}

func TestSanitizeStringKeepsRunesWhole(t *testing.T) {
	if got := SanitizeString("  rice  ", 0); got != "rice" {
		t.Fatalf("expected trimmed input, got %q", got)
	}
	if got := SanitizeString("basmati rice", 7); got != "basmati" {
		t.Fatalf("expected ascii cut, got %q", got)
	}
	// "चावल" is four runes of three bytes each.
	got := SanitizeString("चावल", 7)
	if got != "चा" {
		t.Fatalf("expected cut on a rune boundary, got %q", got)
	}
	if !utf8.ValidString(got) {
		t.Fatalf("expected valid utf-8, got %q", got)
	}
}
