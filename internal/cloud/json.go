package cloud

import "encoding/json"

// ValidJSON reports whether data is a well-formed JSON document.
func ValidJSON(data []byte) bool {
	return json.Valid(data)
}
