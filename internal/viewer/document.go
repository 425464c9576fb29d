package viewer

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformedDocument is returned when an uploaded payload cannot be parsed
// as an animation document. Callers must leave prior state untouched.
var ErrMalformedDocument = errors.New("malformed animation document")

// documentFields is the top-level shape of the animation document format.
// Unknown and extra fields are ignored; missing fields take zero values.
type documentFields struct {
	FrameRate float64           `json:"fr"`
	InFrame   float64           `json:"ip"`
	OutFrame  float64           `json:"op"`
	Width     int               `json:"w"`
	Height    int               `json:"h"`
	Layers    []json.RawMessage `json:"layers"`
	Version   string            `json:"v"`
	Assets    []json.RawMessage `json:"assets"`
}

// ParseDocument parses raw as an animation document and derives its metadata.
// name and len(raw) come from the uploaded file. On parse failure it returns
// ErrMalformedDocument (wrapped with the decode error) and no partial result.
func ParseDocument(name string, raw []byte) (*AnimationDocument, AnimationMetadata, error) {
	var fields documentFields
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, AnimationMetadata{}, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}

	doc := &AnimationDocument{
		Raw:        json.RawMessage(raw),
		FrameRate:  fields.FrameRate,
		InFrame:    fields.InFrame,
		OutFrame:   fields.OutFrame,
		Width:      fields.Width,
		Height:     fields.Height,
		LayerCount: len(fields.Layers),
		Version:    fields.Version,
		AssetCount: len(fields.Assets),
	}

	meta := AnimationMetadata{
		Name:       name,
		ByteSize:   len(raw),
		FrameRate:  doc.FrameRate,
		InFrame:    doc.InFrame,
		OutFrame:   doc.OutFrame,
		Width:      doc.Width,
		Height:     doc.Height,
		LayerCount: doc.LayerCount,
	}

	return doc, meta, nil
}
