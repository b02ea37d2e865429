package payments

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// jsonObjectWriter builds a JSON object whose fields keep the order in which
// they are appended. Its zero value is an empty object.
//
// The first error sticks: later calls do nothing and MarshalJSON returns it.
type jsonObjectWriter struct {
	bytes.Buffer
	err error
}

// Embed merges the fields of the raw JSON object into the one being built.
func (w *jsonObjectWriter) Embed(raw []byte) *jsonObjectWriter {
	if w.err != nil {
		return w
	}
	fields := bytes.TrimSpace(raw)
	fields = bytes.TrimPrefix(fields, []byte("{"))
	fields = bytes.TrimSuffix(fields, []byte("}"))
	if len(fields) > 0 {
		w.Write(fields)
		w.WriteByte(',')
	}
	return w
}

// EmbedFrom marshals v, that must encode as an object, and merges its fields.
// Transactions use it to inline their common fields.
func (w *jsonObjectWriter) EmbedFrom(v any) *jsonObjectWriter {
	if w.err != nil {
		return w
	}
	raw, err := json.Marshal(v)
	if err != nil {
		w.err = fmt.Errorf("cannot embed %T: %w", v, err)
		return w
	}
	return w.Embed(raw)
}

// Append adds the field key with the JSON encoding of value.
func (w *jsonObjectWriter) Append(key string, value any) *jsonObjectWriter {
	if w.err != nil {
		return w
	}
	raw, err := json.Marshal(value)
	if err != nil {
		w.err = fmt.Errorf("cannot marshal field %q: %w", key, err)
		return w
	}
	fmt.Fprintf(w, "%q:", key)
	w.Write(raw)
	w.WriteByte(',')
	return w
}

// MarshalJSON returns the object built so far.
func (w *jsonObjectWriter) MarshalJSON() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	fields := bytes.TrimSuffix(w.Bytes(), []byte(","))
	obj := make([]byte, 0, len(fields)+2)
	obj = append(obj, '{')
	obj = append(obj, fields...)
	return append(obj, '}'), nil
}
