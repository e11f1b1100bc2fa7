package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/horarios/admin-console/internal/core/domain"
)

func responseFailure(status int, body string) error {
	return &domain.RequestFailure{
		Op:          "POST /x",
		RequestSent: true,
		Response:    &domain.FailureResponse{Status: status, Body: []byte(body)},
	}
}

func TestNormalize_ResponseBodies(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   domain.UiError
	}{
		{
			name:   "validation map with message",
			status: 422,
			body:   `{"message":"Invalid","errors":{"email":["required"]}}`,
			want:   domain.UiError{Message: "Invalid", Fields: map[string][]string{"email": {"required"}}, Status: 422},
		},
		{
			name:   "validation map without message",
			status: 422,
			body:   `{"errors":{"nombre":"requerido","clave":["corta","única"]},"code":"VALIDATION"}`,
			want: domain.UiError{
				Message: MsgValidation,
				Fields:  map[string][]string{"nombre": {"requerido"}, "clave": {"corta", "única"}},
				Status:  422,
				Code:    "VALIDATION",
			},
		},
		{
			name:   "nested error object",
			status: 401,
			body:   `{"error":{"message":"Credenciales inválidas","code":"AUTH_FAILED"}}`,
			want:   domain.UiError{Message: "Credenciales inválidas", Status: 401, Code: "AUTH_FAILED"},
		},
		{
			name:   "nested error with fields",
			status: 400,
			body:   `{"error":{"fields":{"fecha":["inválida"]}}}`,
			want:   domain.UiError{Message: MsgUnexpected, Fields: map[string][]string{"fecha": {"inválida"}}, Status: 400},
		},
		{
			name:   "nested error falls back to top-level message",
			status: 409,
			body:   `{"message":"Conflicto","error":{"errors":{"aula":"ocupada"}}}`,
			want:   domain.UiError{Message: "Conflicto", Fields: map[string][]string{"aula": {"ocupada"}}, Status: 409},
		},
		{
			name:   "error string",
			status: 403,
			body:   `{"error":"forbidden"}`,
			want:   domain.UiError{Message: "forbidden", Status: 403},
		},
		{
			name:   "plain message",
			status: 401,
			body:   `{"message":"Unauthenticated."}`,
			want:   domain.UiError{Message: "Unauthenticated.", Status: 401},
		},
		{
			name:   "detail",
			status: 404,
			body:   `{"detail":"No encontrado"}`,
			want:   domain.UiError{Message: "No encontrado", Status: 404},
		},
		{
			name:   "empty errors is still present",
			status: 422,
			body:   `{"errors":{}}`,
			want:   domain.UiError{Message: MsgValidation, Status: 422},
		},
		{
			name:   "null errors is absent",
			status: 500,
			body:   `{"errors":null,"message":"Fallo interno"}`,
			want:   domain.UiError{Message: "Fallo interno", Status: 500},
		},
		{
			name:   "unrecognized object",
			status: 500,
			body:   `{"foo":1}`,
			want:   domain.UiError{Message: MsgRequestFail, Status: 500},
		},
		{
			name:   "empty message string is ignored",
			status: 500,
			body:   `{"message":""}`,
			want:   domain.UiError{Message: MsgRequestFail, Status: 500},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(responseFailure(tt.status, tt.body))
			got.Raw = nil
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalize_NonJSONBodyKeepsRaw(t *testing.T) {
	got := Normalize(responseFailure(502, "<html>Bad Gateway</html>"))

	assert.Equal(t, MsgRequestFail, got.Message)
	assert.Equal(t, 502, got.Status)
	assert.Equal(t, "<html>Bad Gateway</html>", got.Raw)
}

func TestNormalize_EmptyBody(t *testing.T) {
	got := Normalize(responseFailure(500, ""))

	assert.Equal(t, domain.UiError{Message: MsgRequestFail, Status: 500}, got)
}

func TestNormalize_NoResponse(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", &domain.RequestFailure{Op: "GET /x", RequestSent: true, Err: errors.New("dial tcp: refused")})

	got := Normalize(err)

	assert.Equal(t, MsgNoConnection, got.Message)
	assert.Zero(t, got.Status)
	assert.Nil(t, got.Fields)
}

func TestNormalize_RequestNeverSent(t *testing.T) {
	got := Normalize(&domain.RequestFailure{Op: "POST /x", Err: errors.New("encode body: unsupported type")})

	assert.Equal(t, "POST /x: encode body: unsupported type", got.Message)
}

func TestNormalize_LocalFailures(t *testing.T) {
	t.Run("validation error", func(t *testing.T) {
		got := Normalize(&domain.ValidationError{Fields: map[string][]string{"username": {"requerido"}}})
		assert.Equal(t, domain.UiError{Message: MsgValidation, Fields: map[string][]string{"username": {"requerido"}}}, got)
	})

	t.Run("plain error", func(t *testing.T) {
		assert.Equal(t, domain.UiError{Message: "boom"}, Normalize(errors.New("boom")))
	})

	t.Run("error with empty message", func(t *testing.T) {
		assert.Equal(t, MsgUnknown, Normalize(errors.New("")).Message)
	})

	t.Run("ui error passes through", func(t *testing.T) {
		in := domain.UiError{Message: "ya normalizado", Status: 409}
		assert.Equal(t, in, Normalize(fmt.Errorf("ctx: %w", in)))
	})

	t.Run("string", func(t *testing.T) {
		assert.Equal(t, domain.UiError{Message: "texto"}, Normalize("texto"))
	})

	t.Run("empty string", func(t *testing.T) {
		assert.Equal(t, MsgUnknown, Normalize("").Message)
	})

	t.Run("nil", func(t *testing.T) {
		assert.Equal(t, domain.UiError{Message: MsgUnknown}, Normalize(nil))
	})

	t.Run("arbitrary value", func(t *testing.T) {
		assert.Equal(t, MsgUnknown, Normalize(42).Message)
	})
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []any{
		responseFailure(422, `{"errors":{"a":["b"]}}`),
		responseFailure(401, `{"error":{"message":"x","code":"C"}}`),
		&domain.RequestFailure{RequestSent: true},
		errors.New("local"),
		nil,
	}
	for _, in := range inputs {
		first := Normalize(in)
		second := Normalize(first)
		assert.Equal(t, first.Message, second.Message)
		assert.Equal(t, first.Fields, second.Fields)
		assert.Equal(t, first.Status, second.Status)
		assert.Equal(t, first.Code, second.Code)
	}
}

func TestNormalize_NeverPanics(t *testing.T) {
	bodies := []string{`null`, `[]`, `"x"`, `{"errors":[1,2]}`, `{"error":123}`, `{"error":{"fields":"no"}}`, `{`}
	for _, body := range bodies {
		assert.NotPanics(t, func() {
			got := Normalize(responseFailure(500, body))
			assert.NotEmpty(t, got.Message)
		}, body)
	}
	var nilFailure *domain.RequestFailure
	assert.NotPanics(t, func() { _ = Normalize(nilFailure) })
}

func TestNormalizeStatus(t *testing.T) {
	assert.Equal(t, domain.UiError{Message: "invalid payload", Status: 400}, NormalizeStatus(400, "invalid payload"))
	assert.Equal(t, domain.UiError{Message: MsgRequestFail, Status: 404}, NormalizeStatus(404, ""))
}
