package scope

import (
	"context"
	"encoding/base64"
	"encoding/json"

	"github.com/rodgerswisdom/safegal-guardian-alert/internal/model"
)

type contextKey string

const (
	payloadContextKey contextKey = "scope.payload"
	scopeContextKey   contextKey = "scope.scope"
)

// SetPayloadToContext stores the verified payload in the context.
func SetPayloadToContext(ctx context.Context, payload Payload) context.Context {
	return context.WithValue(ctx, payloadContextKey, payload)
}

// GetPayloadFromContext returns the payload stored in the context, if any.
func GetPayloadFromContext(ctx context.Context) (Payload, bool) {
	payload, ok := ctx.Value(payloadContextKey).(Payload)
	return payload, ok
}

// SetScopeToContext stores the scope in the context.
func SetScopeToContext(ctx context.Context, sc model.Scope) context.Context {
	return context.WithValue(ctx, scopeContextKey, sc)
}

// GetScopeFromContext returns the scope stored in the context, or the zero
// scope when none is set.
func GetScopeFromContext(ctx context.Context) model.Scope {
	sc, ok := ctx.Value(scopeContextKey).(model.Scope)
	if !ok {
		return model.Scope{}
	}
	return sc
}

// CreateScopeHeader serializes a scope for propagation between services.
func CreateScopeHeader(sc model.Scope) (string, error) {
	jsonData, err := json.Marshal(sc)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(jsonData), nil
}

// ParseScopeHeader deserializes a scope header created by CreateScopeHeader.
func ParseScopeHeader(scopeHeader string) (model.Scope, error) {
	jsonData, err := base64.StdEncoding.DecodeString(scopeHeader)
	if err != nil {
		return model.Scope{}, err
	}

	var sc model.Scope
	if err := json.Unmarshal(jsonData, &sc); err != nil {
		return model.Scope{}, err
	}
	return sc, nil
}
