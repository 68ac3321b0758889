package middleware

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"

	apperrors "github.com/examcell/exam-portal-server/internal/errors"
	"github.com/examcell/exam-portal-server/internal/validation"
)

const PayloadContextKey contextKey = "payload"

// GetPayload returns the request body decoded by ValidateBody.
func GetPayload[T any](ctx context.Context) (*T, bool) {
	payload, ok := ctx.Value(PayloadContextKey).(*T)
	return payload, ok
}

// ValidateBody decodes the JSON body into T and checks it against the
// schema tags. The first violation is answered with 400. On success the
// decoded payload is put on the context and the body is left readable.
func ValidateBody[T any](v *validation.Validator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			payload, r, err := decodePayload[T](v, r)
			if err != nil {
				writeError(w, err)
				return
			}
			ctx := context.WithValue(r.Context(), PayloadContextKey, payload)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// decodePayload reuses a payload already on the context, or reads and
// validates the body. The returned request has its body restored.
func decodePayload[T any](v *validation.Validator, r *http.Request) (*T, *http.Request, error) {
	if payload, ok := GetPayload[T](r.Context()); ok {
		return payload, r, nil
	}

	body, err := readBody(r)
	if err != nil {
		return nil, r, err
	}

	var payload T
	if err := v.Decode(body, &payload); err != nil {
		return nil, r, err
	}
	return &payload, r, nil
}

func readBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, apperrors.ValidationError("Invalid request body")
	}

	body, err := io.ReadAll(r.Body)
	r.Body.Close()
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, apperrors.ValidationError("Request body too large")
		}
		return nil, apperrors.ValidationError("Invalid request body").WithCause(err)
	}

	r.Body = io.NopCloser(bytes.NewReader(body))
	return body, nil
}
