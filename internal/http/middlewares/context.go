package middlewares

import (
	"context"

	"github.com/praphull/authd/internal/token"
)

type ctxKey int

const (
	ctxKeyRequestID ctxKey = iota
	ctxKeyClaims
)

func setRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID, rid)
}

// GetRequestID devuelve el request ID del contexto, o "".
func GetRequestID(ctx context.Context) string {
	if v, ok := ctx.Value(ctxKeyRequestID).(string); ok {
		return v
	}
	return ""
}

// WithClaims guarda las claims verificadas del token en el contexto.
func WithClaims(ctx context.Context, claims *token.Claims) context.Context {
	return context.WithValue(ctx, ctxKeyClaims, claims)
}

// GetClaims devuelve las claims del contexto, o nil si la ruta no pasó
// por VerifyToken.
func GetClaims(ctx context.Context) *token.Claims {
	if v, ok := ctx.Value(ctxKeyClaims).(*token.Claims); ok {
		return v
	}
	return nil
}

// GetUserID devuelve el uid de las claims, o "" para tokens anónimos.
func GetUserID(ctx context.Context) string {
	if c := GetClaims(ctx); c != nil {
		return c.UID
	}
	return ""
}
