package viewer

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseDocument_derives_metadata(t *testing.T) {
	// Pad with trailing whitespace to an exact byte size; still valid JSON.
	raw := validDocument()
	raw = append(raw, bytes.Repeat([]byte(" "), 2048-len(raw))...)

	doc, meta, err := ParseDocument("bounce.json", raw)
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}

	want := AnimationMetadata{
		Name:       "bounce.json",
		ByteSize:   2048,
		FrameRate:  30,
		InFrame:    0,
		OutFrame:   90,
		Width:      512,
		Height:     512,
		LayerCount: 3,
	}
	if diff := cmp.Diff(want, meta); diff != "" {
		t.Errorf("metadata mismatch (-want +got):\n%s", diff)
	}

	if doc.Version != "5.1" {
		t.Errorf("expected version 5.1, got %q", doc.Version)
	}
	if doc.AssetCount != 0 {
		t.Errorf("expected 0 assets, got %d", doc.AssetCount)
	}
	if !bytes.Equal([]byte(doc.Raw), raw) {
		t.Error("document should keep the raw payload verbatim")
	}
}

func TestParseDocument_missing_layers_default_zero(t *testing.T) {
	raw := []byte(`{"fr":24,"ip":0,"op":48,"w":100,"h":100,"v":"5.0"}`)

	_, meta, err := ParseDocument("min.json", raw)
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}
	if meta.LayerCount != 0 {
		t.Errorf("missing layer list should default to 0, got %d", meta.LayerCount)
	}
}

func TestParseDocument_ignores_unknown_fields(t *testing.T) {
	raw := []byte(`{"fr":12,"ip":0,"op":24,"w":10,"h":10,"layers":[{}],"ddd":0,"nm":"logo","extra":{"x":1}}`)

	_, meta, err := ParseDocument("logo.json", raw)
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}
	if meta.FrameRate != 12 || meta.LayerCount != 1 {
		t.Errorf("unexpected metadata: %+v", meta)
	}
}

func TestParseDocument_malformed(t *testing.T) {
	for _, raw := range []string{
		`{not json`,
		`"just a string"`,
		`[1,2,3]`,
	} {
		doc, _, err := ParseDocument("bad.json", []byte(raw))
		if !errors.Is(err, ErrMalformedDocument) {
			t.Errorf("%q: expected ErrMalformedDocument, got %v", raw, err)
		}
		if doc != nil {
			t.Errorf("%q: expected nil document on failure", raw)
		}
	}
}
