package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidColor, "bad value: %s", "zzz")

	if err.Code != ErrCodeInvalidColor {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidColor)
	}

	if err.Message != "bad value: zzz" {
		t.Errorf("Message = %v, want %v", err.Message, "bad value: zzz")
	}

	expected := "INVALID_COLOR: bad value: zzz"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeRenderFailed, cause, "plot failed")

	if err.Code != ErrCodeRenderFailed {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeRenderFailed)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"matching code", New(ErrCodeInvalidLayer, "msg"), ErrCodeInvalidLayer, true},
		{"different code", New(ErrCodeInvalidLayer, "msg"), ErrCodeInvalidColor, false},
		{"wrapped matching", Wrap(ErrCodeMergeFailed, errors.New("x"), "msg"), ErrCodeMergeFailed, true},
		{"plain error", errors.New("plain"), ErrCodeInternal, false},
		{"nil error", nil, ErrCodeInternal, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeInvalidBoard, "msg")); got != ErrCodeInvalidBoard {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeInvalidBoard)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %v, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidColor, "bad color")); got != "bad color" {
		t.Errorf("UserMessage() = %q, want %q", got, "bad color")
	}
	if got := UserMessage(errors.New("plain message")); got != "plain message" {
		t.Errorf("UserMessage(plain) = %q, want %q", got, "plain message")
	}
}
