package transfer

import "errors"

// Kind tells which business rule rejected a transfer.
type Kind int

const (
	KindUnknown Kind = iota
	KindUserNotFound
	KindInvalidAmount
	KindInsufficientFunds
)

func (k Kind) String() string {
	switch k {
	case KindUserNotFound:
		return "user_not_found"
	case KindInvalidAmount:
		return "invalid_amount"
	case KindInsufficientFunds:
		return "insufficient_funds"
	default:
		return "unknown"
	}
}

// Message is the text shown to API clients.
func (k Kind) Message() string {
	switch k {
	case KindUserNotFound:
		return "Usuário não encontrado"
	case KindInvalidAmount:
		return "Valor inválido"
	case KindInsufficientFunds:
		return "Saldo insuficiente"
	default:
		return "Erro desconhecido"
	}
}

type Error struct {
	Kind Kind
}

func (e *Error) Error() string {
	return e.Kind.Message()
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrUserNotFound      = &Error{Kind: KindUserNotFound}
	ErrInvalidAmount     = &Error{Kind: KindInvalidAmount}
	ErrInsufficientFunds = &Error{Kind: KindInsufficientFunds}
)

// KindOf returns the failure kind carried by err, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
