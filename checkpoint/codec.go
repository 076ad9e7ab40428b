// Package checkpoint implements CheckpointStore (spec §4.8): periodic
// serialization of the best μ individuals, with three interchangeable
// encodings (spec §6: human-readable text, structured markup, compact
// binary) over the same exported struct tree.
package checkpoint

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	"encoding/xml"
)

// Codec marshals and unmarshals a PopulationState. The three concrete
// codecs below all round-trip the same struct tree (spec §6, "all three
// must round-trip identically").
type Codec interface {
	Name() string
	Marshal(v *PopulationState) ([]byte, error)
	Unmarshal(data []byte, v *PopulationState) error
}

// JSONCodec is the "human-readable text" encoding.
type JSONCodec struct{}

// Name implements Codec.
func (JSONCodec) Name() string { return "json" }

// Marshal implements Codec.
func (JSONCodec) Marshal(v *PopulationState) ([]byte, error) { return json.MarshalIndent(v, "", "  ") }

// Unmarshal implements Codec.
func (JSONCodec) Unmarshal(data []byte, v *PopulationState) error { return json.Unmarshal(data, v) }

// XMLCodec is the "structured markup" encoding.
type XMLCodec struct{}

// Name implements Codec.
func (XMLCodec) Name() string { return "xml" }

// Marshal implements Codec.
func (XMLCodec) Marshal(v *PopulationState) ([]byte, error) { return xml.MarshalIndent(v, "", "  ") }

// Unmarshal implements Codec.
func (XMLCodec) Unmarshal(data []byte, v *PopulationState) error { return xml.Unmarshal(data, v) }

// GobCodec is the "compact binary" encoding; the only one spec §6 requires
// to round-trip bit-exactly.
type GobCodec struct{}

// Name implements Codec.
func (GobCodec) Name() string { return "gob" }

// Marshal implements Codec.
func (GobCodec) Marshal(v *PopulationState) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal implements Codec.
func (GobCodec) Unmarshal(data []byte, v *PopulationState) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}
