package xerrors

import (
	"errors"
	"testing"
)

func TestWrap(t *testing.T) {
	// nil 错误应返回 nil
	if err := Wrap(nil, "context"); err != nil {
		t.Errorf("Wrap(nil) = %v，期望 nil", err)
	}

	base := errors.New("base error")
	wrapped := Wrap(base, "context")
	if wrapped.Error() != "context: base error" {
		t.Errorf("Wrap(err).Error() = %q，期望 %q", wrapped.Error(), "context: base error")
	}
	if !errors.Is(wrapped, base) {
		t.Error("errors.Is(wrapped, base) = false，期望 true")
	}
}

func TestWrapf(t *testing.T) {
	if err := Wrapf(nil, "path %s", "a"); err != nil {
		t.Errorf("Wrapf(nil) = %v，期望 nil", err)
	}

	wrapped := Wrapf(ErrNotFound, "generator %q", "email")
	if wrapped.Error() != `generator "email": not found` {
		t.Errorf("Wrapf(err).Error() = %q", wrapped.Error())
	}
	if !Is(wrapped, ErrNotFound) {
		t.Error("Is(wrapped, ErrNotFound) = false，期望 true")
	}
}

func TestWithCode(t *testing.T) {
	if err := WithCode(nil, "CODE"); err != nil {
		t.Errorf("WithCode(nil) = %v，期望 nil", err)
	}

	coded := WithCode(ErrInvalidInput, "invalid_driver")
	if coded.Error() != "[invalid_driver] invalid input" {
		t.Errorf("WithCode(err).Error() = %q", coded.Error())
	}
	if code := GetCode(Wrap(coded, "new counter")); code != "invalid_driver" {
		t.Errorf("GetCode(wrapped) = %q，期望 %q", code, "invalid_driver")
	}
	if !Is(coded, ErrInvalidInput) {
		t.Error("带码错误应保留错误链")
	}
	if code := GetCode(ErrNotFound); code != "" {
		t.Errorf("GetCode(无码错误) = %q，期望空串", code)
	}
}

func TestMust(t *testing.T) {
	if v := Must(42, nil); v != 42 {
		t.Errorf("Must(42, nil) = %d，期望 42", v)
	}

	defer func() {
		if r := recover(); r == nil {
			t.Error("Must(_, err) 未触发 panic")
		}
	}()
	Must(0, ErrInvalidInput)
}

func TestCombine(t *testing.T) {
	if err := Combine(nil, nil); err != nil {
		t.Errorf("Combine(nil, nil) = %v，期望 nil", err)
	}

	a := errors.New("a")
	if err := Combine(nil, a); err != a {
		t.Errorf("Combine(nil, a) = %v，期望原样返回 a", err)
	}

	b := errors.New("b")
	err := Combine(a, b)
	if !errors.Is(err, a) || !errors.Is(err, b) {
		t.Errorf("Combine(a, b) = %v，应同时包含 a 和 b", err)
	}
}
