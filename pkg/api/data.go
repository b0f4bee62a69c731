package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
)

// Response is a finished http exchange. Body is nil unless the payload is a JSON object.
type Response struct {
	Code    int
	Header  http.Header
	Body    JSON
	RawBody []byte
}

// Parameter is sent as a url query or as a form encoded body.
type Parameter map[string]string

func (p Parameter) ToReader() (io.Reader, string, error) {
	return strings.NewReader(p.Encode()), "application/x-www-form-urlencoded", nil
}

// Encode returns the parameters sorted by key, with spaces encoded as %20.
func (p Parameter) Encode() string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(strings.ReplaceAll(url.QueryEscape(p[k]), "+", "%20"))
	}

	return sb.String()
}

type JSON map[string]any

func (j JSON) ToReader() (io.Reader, string, error) {
	b, err := json.Marshal(j)
	if err != nil {
		return nil, "", err
	}
	return bytes.NewReader(b), "application/json", nil
}

// Get resolves a dotted path such as "user.username".
func (j JSON) Get(path string) (any, error) {
	var current any = map[string]any(j)
	walked := ""
	for _, key := range strings.Split(path, ".") {
		obj, ok := asObject(current)
		if !ok {
			return nil, fmt.Errorf("field %s is not an object (%T)", walked, current)
		}

		if walked != "" {
			walked += "."
		}
		walked += key

		if current, ok = obj[key]; !ok {
			return nil, fmt.Errorf("not found field %s", walked)
		}
	}

	return current, nil
}

func (j JSON) GetJSON(path string) (JSON, error) {
	value, err := j.Get(path)
	if err != nil || value == nil {
		return nil, err
	}

	obj, ok := asObject(value)
	if !ok {
		return nil, typeError(path, value)
	}
	return obj, nil
}

// GetInt accepts json numbers without a fractional part.
func (j JSON) GetInt(path string) (int, error) {
	value, err := j.Get(path)
	if err != nil {
		return 0, err
	}

	switch n := value.(type) {
	case int:
		return n, nil
	case float64:
		if n == float64(int(n)) {
			return int(n), nil
		}
	}
	return 0, typeError(path, value)
}

func (j JSON) GetBool(path string) (bool, error) {
	return getScalar[bool](j, path)
}

func (j JSON) GetString(path string) (string, error) {
	return getScalar[string](j, path)
}

// GetStringArray treats a missing or null field as an empty array.
func (j JSON) GetStringArray(path string) ([]string, error) {
	value, err := j.Get(path)
	if err != nil || value == nil {
		return []string{}, nil
	}

	items, ok := value.([]any)
	if !ok {
		return nil, typeError(path, value)
	}

	result := make([]string, len(items))
	for i, item := range items {
		if result[i], ok = item.(string); !ok {
			return nil, typeError(fmt.Sprintf("%s[%d]", path, i), item)
		}
	}
	return result, nil
}

func (j JSON) GetBoolMap(path string) (map[string]bool, error) {
	obj, err := j.GetJSON(path)
	if err != nil {
		return nil, err
	}

	result := make(map[string]bool, len(obj))
	for k := range obj {
		if result[k], err = obj.GetBool(k); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	return result, nil
}

// getScalar returns the zero value of T for a null field.
func getScalar[T any](j JSON, path string) (T, error) {
	var zero T
	value, err := j.Get(path)
	if err != nil || value == nil {
		return zero, err
	}

	v, ok := value.(T)
	if !ok {
		return zero, typeError(path, value)
	}
	return v, nil
}

func asObject(v any) (JSON, bool) {
	switch t := v.(type) {
	case JSON:
		return t, true
	case map[string]any:
		return JSON(t), true
	}
	return nil, false
}

func typeError(path string, value any) error {
	return fmt.Errorf("invalid type of field %s (%T)", path, value)
}

// decodeBody returns nil when raw is not a JSON object.
func decodeBody(raw []byte) JSON {
	var body JSON
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil
	}
	return body
}
