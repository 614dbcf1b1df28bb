package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNewKnownCode(t *testing.T) {
	err := New("E001")
	if err.Code != "E001" {
		t.Errorf("Code = %q, want E001", err.Code)
	}
	if err.Category != CategoryRender {
		t.Errorf("Category = %q, want render", err.Category)
	}
	if !strings.Contains(err.Error(), "E001") {
		t.Errorf("Error() = %q, should contain code", err.Error())
	}
}

func TestNewUnknownCode(t *testing.T) {
	err := New("E999")
	if err.Message != "Unknown error" {
		t.Errorf("Message = %q, want Unknown error", err.Message)
	}
}

func TestWrapAndUnwrap(t *testing.T) {
	cause := fmt.Errorf("boom")
	err := New("E001").Wrap(cause)

	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("Error() = %q, should contain cause", err.Error())
	}
}

func TestFromErrorNil(t *testing.T) {
	if FromError(nil, "E001") != nil {
		t.Error("FromError(nil) should be nil")
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CategoryCache, "entry %d too big", 7)
	if err.Category != CategoryCache {
		t.Errorf("Category = %q, want cache", err.Category)
	}
	if err.Error() != "entry 7 too big" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestRegisterCustomCode(t *testing.T) {
	Register("X001", ErrorTemplate{Category: CategoryValidation, Message: "custom"})
	err := New("X001")
	if err.Message != "custom" {
		t.Errorf("Message = %q, want custom", err.Message)
	}
}
