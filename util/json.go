// util/json.go
// Copyright(c) 2025 xcscore contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

///////////////////////////////////////////////////////////////////////////
// JSON

// DuplicateJSONKey records an object key that appears more than once in
// the same object.
type DuplicateJSONKey struct {
	Path string // dotted path of the enclosing object, e.g. "sss"
	Key  string
}

// FindDuplicateJSONKeys walks the token stream of data and returns every
// duplicated object key, in the order encountered. encoding/json silently
// keeps the last value for a repeated key, which hides typos in
// hand-edited task files.
func FindDuplicateJSONKeys(data []byte) []DuplicateJSONKey {
	dec := json.NewDecoder(bytes.NewReader(data))
	var dupes []DuplicateJSONKey
	walkJSONValue(dec, nil, &dupes)
	return dupes
}

// walkJSONValue consumes one complete JSON value from dec. It returns
// false if the stream ended or was malformed.
func walkJSONValue(dec *json.Decoder, path []string, dupes *[]DuplicateJSONKey) bool {
	tok, err := dec.Token()
	if err != nil {
		return false
	}

	switch tok {
	case json.Delim('{'):
		seen := make(map[string]bool)
		for dec.More() {
			kt, err := dec.Token()
			if err != nil {
				return false
			}
			key, _ := kt.(string)
			if seen[key] {
				*dupes = append(*dupes, DuplicateJSONKey{Path: strings.Join(path, "."), Key: key})
			}
			seen[key] = true
			if !walkJSONValue(dec, append(path, key), dupes) {
				return false
			}
		}
		_, err = dec.Token() // '}'
		return err == nil

	case json.Delim('['):
		for dec.More() {
			if !walkJSONValue(dec, path, dupes) {
				return false
			}
		}
		_, err = dec.Token() // ']'
		return err == nil

	default:
		return true
	}
}

// UnmarshalJSONBytes unmarshals b into out, translating byte offsets in
// syntax and type errors into line and column numbers.
func UnmarshalJSONBytes[T any](b []byte, out *T) error {
	err := json.Unmarshal(b, out)
	if err == nil {
		return nil
	}

	decodeOffset := func(offset int64) (line, char int) {
		line, char = 1, 1
		for i := 0; i < int(offset) && i < len(b); i++ {
			if b[i] == '\n' {
				line++
				char = 1
			} else {
				char++
			}
		}
		return
	}

	switch jerr := err.(type) {
	case *json.SyntaxError:
		line, char := decodeOffset(jerr.Offset)
		return fmt.Errorf("line %d, character %d: %w", line, char, jerr)

	case *json.UnmarshalTypeError:
		line, char := decodeOffset(jerr.Offset)
		return fmt.Errorf("line %d, character %d: %s value for %s.%s invalid for type %s",
			line, char, jerr.Value, jerr.Struct, jerr.Field, jerr.Type.String())

	default:
		return err
	}
}

///////////////////////////////////////////////////////////////////////////

// CheckJSON checks whether the provided JSON is syntactically valid and
// then typechecks it with respect to the provided type T. Syntax errors,
// duplicate keys and type mismatches are reported to e as errors; object
// members T has no field for are reported as warnings.
func CheckJSON[T any](contents []byte, e *ErrorLogger) {
	defer e.CheckDepth(e.CurrentDepth())

	var items any
	if err := UnmarshalJSONBytes(contents, &items); err != nil {
		e.Error(err)
		return
	}

	for _, d := range FindDuplicateJSONKeys(contents) {
		if d.Path != "" {
			e.ErrorString("%s: key %q is repeated", d.Path, d.Key)
		} else {
			e.ErrorString("key %q is repeated", d.Key)
		}
	}

	ty := reflect.TypeOf((*T)(nil)).Elem()
	typeCheckJSON(items, ty, make(map[reflect.Type]map[string]reflect.Type), e)
}

// JSONChecker is an interface that allows types that implement custom JSON
// unmarshalers to check whether raw unmarshled JSON types are compatible
// with their underlying type.
type JSONChecker interface {
	CheckJSON(json any) bool
}

func typeCheckJSON(json any, ty reflect.Type, structTypeCache map[reflect.Type]map[string]reflect.Type, e *ErrorLogger) {
	for ty.Kind() == reflect.Ptr {
		ty = ty.Elem()
	}
	if json == nil {
		// null is acceptable for anything; validation of required
		// fields happens after unmarshaling.
		return
	}

	// Use the type's JSONChecker, if there is one.
	chty := reflect.TypeOf((*JSONChecker)(nil)).Elem()
	if ty.Implements(chty) || reflect.PointerTo(ty).Implements(chty) {
		checker := reflect.New(ty).Interface().(JSONChecker)
		if !checker.CheckJSON(json) {
			e.ErrorString("unexpected data format provided for object: %s", reflect.TypeOf(json))
		}
		return
	}

	mismatch := func(want string) {
		e.ErrorString("expected %s, got %s", want, jsonKind(json))
	}

	switch ty.Kind() {
	case reflect.String:
		if _, ok := json.(string); !ok {
			mismatch("string")
		}

	case reflect.Bool:
		if _, ok := json.(bool); !ok {
			mismatch("boolean")
		}

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		if _, ok := json.(float64); !ok {
			mismatch("number")
		}

	case reflect.Array, reflect.Slice:
		if array, ok := json.([]any); ok {
			for _, item := range array {
				typeCheckJSON(item, ty.Elem(), structTypeCache, e)
			}
		} else {
			mismatch("array")
		}

	case reflect.Map:
		if m, ok := json.(map[string]any); ok {
			for k, v := range m {
				e.Push(k)
				typeCheckJSON(v, ty.Elem(), structTypeCache, e)
				e.Pop()
			}
		} else {
			mismatch("object")
		}

	case reflect.Struct:
		items, ok := json.(map[string]any)
		if !ok {
			mismatch("object")
			return
		}

		// Map from JSON member name to field type, computed once per
		// struct type.
		types, ok := structTypeCache[ty]
		if !ok {
			types = make(map[string]reflect.Type)
			for _, field := range reflect.VisibleFields(ty) {
				if jtag, ok := field.Tag.Lookup("json"); ok {
					if name, _, _ := strings.Cut(jtag, ","); name != "-" {
						types[name] = field.Type
					}
				}
			}
			structTypeCache[ty] = types
		}

		for _, item := range SortedMapKeys(items) {
			if fty, ok := types[item]; ok {
				e.Push(item)
				typeCheckJSON(items[item], fty, structTypeCache, e)
				e.Pop()
			} else {
				e.WarningString("the entry %q is not an expected JSON object. Is it misspelled?", item)
			}
		}
	}
}

func jsonKind(v any) string {
	switch v.(type) {
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
