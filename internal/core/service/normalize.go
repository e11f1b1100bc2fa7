package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/horarios/admin-console/internal/core/domain"
)

// User-facing fallback messages.
const (
	MsgValidation   = "Error de validación"
	MsgUnexpected   = "Ocurrió un error inesperado"
	MsgRequestFail  = "Error al procesar la solicitud"
	MsgNoConnection = "No hay conexión con el servidor"
	MsgUnknown      = "Error desconocido"
)

// envelopeKind tags the shape a backend error body was classified as.
// The order of the constants is the resolution order.
type envelopeKind int

const (
	kindValidation envelopeKind = iota + 1 // {"errors": {...}}
	kindNested                             // {"error": {...}} or {"error": "..."}
	kindMessage                            // {"message": "..."}
	kindDetail                             // {"detail": "..."}
	kindUnrecognized
)

type envelope struct {
	kind    envelopeKind
	message string
	fields  map[string][]string
	code    string
	raw     any
}

// Normalize maps any failure into a UiError. It never panics and the
// returned Message is never empty.
func Normalize(failure any) (out domain.UiError) {
	defer func() {
		if r := recover(); r != nil {
			out = domain.UiError{Message: MsgUnknown}
		}
		if out.Message == "" {
			out.Message = MsgUnknown
		}
	}()

	if err, ok := failure.(error); ok && err != nil {
		var rf *domain.RequestFailure
		if errors.As(err, &rf) && rf != nil {
			switch {
			case rf.Response != nil:
				return fromResponse(rf.Response)
			case rf.RequestSent:
				return domain.UiError{Message: MsgNoConnection}
			}
		}

		var ve *domain.ValidationError
		if errors.As(err, &ve) && ve != nil {
			return domain.UiError{Message: MsgValidation, Fields: copyFields(ve.Fields)}
		}

		var ue domain.UiError
		if errors.As(err, &ue) {
			return ue
		}

		return domain.UiError{Message: err.Error()}
	}

	if s, ok := failure.(string); ok {
		return domain.UiError{Message: s}
	}
	return domain.UiError{Message: MsgUnknown}
}

// NormalizeStatus builds the UiError of a failure raised by the console itself
// with an HTTP status, such as a malformed payload or an unknown route. An
// empty message falls back to MsgRequestFail.
func NormalizeStatus(status int, message string) domain.UiError {
	if message == "" {
		message = MsgRequestFail
	}
	return domain.UiError{Message: message, Status: status}
}

func fromResponse(resp *domain.FailureResponse) domain.UiError {
	env := classify(resp.Body)
	ue := domain.UiError{
		Message: env.message,
		Fields:  env.fields,
		Status:  resp.Status,
		Code:    env.code,
		Raw:     env.raw,
	}
	if env.kind == kindUnrecognized {
		ue.Message = MsgRequestFail
	}
	return ue
}

// classify decodes the body as untyped JSON and probes it in resolution order.
func classify(body []byte) envelope {
	var data any
	if len(body) == 0 {
		return envelope{kind: kindUnrecognized}
	}
	if err := json.Unmarshal(body, &data); err != nil {
		return envelope{kind: kindUnrecognized, raw: string(body)}
	}

	obj, ok := data.(map[string]any)
	if !ok {
		return envelope{kind: kindUnrecognized, raw: data}
	}

	if errs := obj["errors"]; truthy(errs) {
		return envelope{
			kind:    kindValidation,
			message: firstString(obj["message"], MsgValidation),
			fields:  toFields(errs),
			code:    scalarString(obj["code"]),
			raw:     data,
		}
	}

	if nested := obj["error"]; truthy(nested) {
		env := envelope{kind: kindNested, raw: data}
		switch n := nested.(type) {
		case map[string]any:
			env.message = firstString(n["message"], firstString(obj["message"], MsgUnexpected))
			fieldsSrc := n["fields"]
			if !truthy(fieldsSrc) {
				fieldsSrc = n["errors"]
			}
			env.fields = toFields(fieldsSrc)
			env.code = scalarString(n["code"])
		case string:
			env.message = firstString(obj["message"], n)
		default:
			env.message = firstString(obj["message"], MsgUnexpected)
		}
		return env
	}

	if msg, ok := obj["message"].(string); ok && msg != "" {
		return envelope{kind: kindMessage, message: msg, raw: data}
	}

	if detail, ok := obj["detail"].(string); ok && detail != "" {
		return envelope{kind: kindDetail, message: detail, raw: data}
	}

	return envelope{kind: kindUnrecognized, raw: data}
}

// truthy follows the loose JSON truthiness backends rely on: null, false, 0
// and "" are absent; objects and arrays are present even when empty.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0 && !math.IsNaN(t)
	case string:
		return t != ""
	default:
		return true
	}
}

func firstString(v any, fallback string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return fallback
}

func scalarString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// toFields coerces a backend field map. Single strings become one-element
// lists; anything that is not an object yields nil.
func toFields(v any) map[string][]string {
	m, ok := v.(map[string]any)
	if !ok || len(m) == 0 {
		return nil
	}

	out := make(map[string][]string, len(m))
	for k, raw := range m {
		switch val := raw.(type) {
		case nil:
		case string:
			out[k] = []string{val}
		case []any:
			msgs := make([]string, 0, len(val))
			for _, item := range val {
				if item == nil {
					continue
				}
				msgs = append(msgs, stringify(item))
			}
			out[k] = msgs
		default:
			out[k] = []string{stringify(val)}
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	if s := scalarString(v); s != "" {
		return s
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

func copyFields(in map[string][]string) map[string][]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string][]string, len(in))
	for k, v := range in {
		out[k] = append([]string(nil), v...)
	}
	return out
}
