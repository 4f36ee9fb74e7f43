package fetcher

import (
	"errors"
	"fmt"
)

// Базовые ошибки для классификации через errors.Is.
var (
	ErrNetwork = errors.New("network error")
	ErrDecode  = errors.New("decode error")
)

// Kind — грубая категория ошибки загрузки.
type Kind string

const (
	KindNetwork Kind = "network"
	KindDecode  Kind = "decode"
)

// Error описывает неудачную загрузку: операцию, URL и исходную причину.
type Error struct {
	Op     string
	Kind   Kind
	URL    string
	Status int
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := fmt.Sprintf("%s %s: %s error", e.Op, e.URL, e.Kind)
	if e.Status != 0 {
		msg += fmt.Sprintf(" (status %d)", e.Status)
	}
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is позволяет сравнивать с ErrNetwork и ErrDecode.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrNetwork:
		return e.Kind == KindNetwork
	case ErrDecode:
		return e.Kind == KindDecode
	}
	return false
}

// KindOf возвращает категорию ошибки или пустую строку, если это не *Error.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return ""
}
