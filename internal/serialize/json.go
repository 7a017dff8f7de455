package serialize

import (
	"encoding/json"
	"io"
)

func UnMarshalJSON(data []byte, dest any) error {
	return json.Unmarshal(data, dest)
}

// WriteJSON writes data to w as indented JSON followed by a newline.
func WriteJSON(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
