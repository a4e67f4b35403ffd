package auth

import (
	"context"
	"errors"
)

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrWrongPassword   = errors.New("wrong password")
	ErrUserNotFound    = errors.New("user not found")
	ErrUserExists      = errors.New("user already exists")
)

// Operator is the authenticated user of a request, bound to its session token.
type Operator struct {
	ID    int    `json:"id"`
	Token string `json:"-"`
}

type User struct {
	ID           int
	Username     string
	PasswordHash string
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type operatorCtxKey struct{}

func ContextWithOperator(ctx context.Context, op Operator) context.Context {
	return context.WithValue(ctx, operatorCtxKey{}, op)
}

// OperatorFromContext returns false for anonymous requests.
func OperatorFromContext(ctx context.Context) (Operator, bool) {
	op, ok := ctx.Value(operatorCtxKey{}).(Operator)
	if !ok || op.ID == 0 {
		return Operator{}, false
	}
	return op, true
}
