package types

import (
	"bytes"
	"encoding/json"
)

// DecodeFlexible unmarshals raw into dest. The value may be the JSON itself or
// a JSON string wrapping the encoded value, which is how the document store
// persists nested attributes. It reports false, leaving dest untouched on a
// best-effort basis, when raw is empty, null, or malformed.
func DecodeFlexible(raw json.RawMessage, dest any) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return false
	}
	if trimmed[0] == '"' {
		var inner string
		if err := json.Unmarshal(trimmed, &inner); err != nil {
			return false
		}
		inner = string(bytes.TrimSpace([]byte(inner)))
		if inner == "" || inner == "null" {
			return false
		}
		trimmed = []byte(inner)
	}
	return json.Unmarshal(trimmed, dest) == nil
}

// IsPresent reports whether raw carries a non-null value.
func IsPresent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}
