// Package bind converts between Go values and documents using
// reflection, in the spirit of encoding/json.
//
//	type Config struct {
//	    Host string   `eon:"host"`
//	    Port int      `eon:"port"`
//	    Tags []string `eon:"tags,omitempty"`
//	}
//
//	var cfg Config
//	err := bind.Unmarshal(data, &cfg)
//	out, err := bind.Marshal(cfg)
//
// Types implementing encoding.TextMarshaler and TextUnmarshaler are
// written and read as strings. Named variants round-trip through the
// Variant type.
package bind
