package viewer

import "encoding/json"

// Renderer identifies the output technology the playback engine uses.
type Renderer string

const (
	RendererSVG    Renderer = "svg"
	RendererCanvas Renderer = "canvas"
	RendererHTML   Renderer = "html"
)

// Valid reports whether r is one of the known renderer backends.
func (r Renderer) Valid() bool {
	switch r {
	case RendererSVG, RendererCanvas, RendererHTML:
		return true
	}
	return false
}

// AnimationDocument is the loaded animation payload. It is replaced wholesale
// on every upload and never mutated in place. Raw keeps the full serialized
// form for handing to the render engine; the decoded fields alongside it are
// the only parts the viewer itself reads.
type AnimationDocument struct {
	Raw        json.RawMessage
	FrameRate  float64
	InFrame    float64
	OutFrame   float64
	Width      int
	Height     int
	LayerCount int
	Version    string
	AssetCount int
}

// AnimationMetadata is the derived, immutable summary of a document. It is
// recomputed together with the document at load time, never independently.
type AnimationMetadata struct {
	Name       string  `json:"name"`
	ByteSize   int     `json:"byte_size"`
	FrameRate  float64 `json:"frame_rate"`
	InFrame    float64 `json:"in_frame"`
	OutFrame   float64 `json:"out_frame"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	LayerCount int     `json:"layer_count"`
}

// PlaybackSettings holds the user-adjustable presentation options.
// No invariant couples the fields.
type PlaybackSettings struct {
	Loop            bool     `json:"loop"`
	Speed           float64  `json:"speed"`
	BackgroundColor string   `json:"background"`
	Renderer        Renderer `json:"renderer"`
}

// PlayerState is the render session manager's lifecycle state.
type PlayerState string

const (
	// PlayerEmpty means no document is loaded and no session exists.
	PlayerEmpty PlayerState = "empty"
	// PlayerReady means a session exists and is playing or paused.
	PlayerReady PlayerState = "ready"
	// PlayerStopped means a session exists but playback has been stopped.
	PlayerStopped PlayerState = "stopped"
)

// AnalysisStatus tracks the analysis requester's lifecycle.
type AnalysisStatus string

const (
	AnalysisIdle    AnalysisStatus = "idle"
	AnalysisPending AnalysisStatus = "pending"
	AnalysisDone    AnalysisStatus = "done"
)

// AnalysisState is the presentation-facing result of the last analysis
// request. Cleared whenever a new document is loaded.
type AnalysisState struct {
	Status AnalysisStatus `json:"status"`
	Text   string         `json:"text,omitempty"`
}

// View is a snapshot of everything the presentation layer renders.
// It is a pure function of current viewer state.
type View struct {
	Loaded   bool               `json:"loaded"`
	Metadata *AnimationMetadata `json:"metadata,omitempty"`
	Settings PlaybackSettings   `json:"settings"`
	Player   PlayerState        `json:"player"`
	Paused   bool               `json:"paused"`
	Analysis AnalysisState      `json:"analysis"`
}
