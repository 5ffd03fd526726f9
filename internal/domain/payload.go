package domain

import (
	"fmt"
	"net/url"
)

type PayloadKind int

const (
	PayloadNone PayloadKind = iota
	PayloadRaw
	PayloadForm
	PayloadJSON
)

const (
	ContentTypeForm = "application/x-www-form-urlencoded"
	ContentTypeJSON = "application/json"
)

// Payload is a request body. The zero value carries no body.
type Payload struct {
	kind PayloadKind
	body []byte
}

func RawPayload(body []byte) Payload {
	return Payload{kind: PayloadRaw, body: body}
}

// FormPayload form-encodes values. Non-string values are formatted with fmt.
func FormPayload(values Values) Payload {
	form := make(url.Values, len(values))
	for name, value := range values {
		form.Set(name, formatValue(value))
	}

	return Payload{kind: PayloadForm, body: []byte(form.Encode())}
}

// JSONPayload wraps an already serialized JSON document.
func JSONPayload(body []byte) Payload {
	return Payload{kind: PayloadJSON, body: body}
}

func (p Payload) Kind() PayloadKind {
	return p.kind
}

func (p Payload) Body() []byte {
	return p.body
}

// ContentType returns the content type implied by the payload kind, or ""
// when the caller is responsible for it.
func (p Payload) ContentType() string {
	switch p.kind {
	case PayloadForm:
		return ContentTypeForm
	case PayloadJSON:
		return ContentTypeJSON
	default:
		return ""
	}
}

func formatValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
