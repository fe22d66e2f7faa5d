package supplier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// text accepts strings, numbers and null. Suppliers are not consistent about
// which one they send for ids, amounts and error codes.
type text string

func (t *text) UnmarshalJSON(raw []byte) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		*t = ""
		return nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return err
		}
		*t = text(s)
		return nil
	}
	*t = text(raw)
	return nil
}

func (t text) String() string {
	return strings.TrimSpace(string(t))
}

type layer struct {
	Status  text `json:"status"`
	Error   text `json:"error"`
	Message text `json:"message"`
}

type middleLayer struct {
	layer
	Data json.RawMessage `json:"data"`
}

// envelope is the proxy's three-level response: transport status, supplier call
// status, then the supplier payload T.
type envelope[T any] struct {
	layer
	Data *middleLayer `json:"data"`
}

func (e envelope[T]) outer() layer {
	return e.layer
}

func (e envelope[T]) middle() layer {
	if e.Data == nil {
		return layer{}
	}
	return e.Data.layer
}

func (e envelope[T]) inner() layer {
	var l layer
	if e.Data == nil || isNull(e.Data.Data) {
		return l
	}
	// Payloads that are not objects carry no status fields.
	_ = json.Unmarshal(e.Data.Data, &l)
	return l
}

// payload returns nil when the innermost data is absent or null.
func (e envelope[T]) payload() (*T, error) {
	if e.Data == nil || isNull(e.Data.Data) {
		return nil, nil
	}
	var out T
	if err := json.Unmarshal(e.Data.Data, &out); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	return &out, nil
}

// Each accessor walks inner, middle, outer and returns the most specific value.

func (e envelope[T]) status() string {
	return firstNonEmpty(e.inner().Status, e.middle().Status, e.outer().Status)
}

func (e envelope[T]) code() string {
	return firstNonEmpty(e.inner().Error, e.middle().Error, e.outer().Error)
}

func (e envelope[T]) message() string {
	return firstNonEmpty(e.inner().Message, e.middle().Message, e.outer().Message)
}

func (e envelope[T]) anyStatusIs(want string) bool {
	return statusIs(e.inner().Status, want) || statusIs(e.middle().Status, want) || statusIs(e.outer().Status, want)
}

func firstNonEmpty(values ...text) string {
	for _, value := range values {
		if s := value.String(); s != "" {
			return s
		}
	}
	return ""
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func statusIs(value text, want string) bool {
	return strings.EqualFold(value.String(), want)
}
