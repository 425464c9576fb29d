package viewer

import (
	"context"
	"fmt"
	"strings"
)

// AnalysisFailureMessage is shown verbatim whenever an analysis request fails
// for any reason. The underlying error is logged, never surfaced.
const AnalysisFailureMessage = "Analysis is unavailable right now. Try again in a moment."

// Generator is the text-generation collaborator contract. Implementations
// return either the generated text or an error; the viewer treats them as a
// black box.
type Generator interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
}

// AnalysisProjection is the condensed view of a document sent to the
// text-generation service. It deliberately excludes the geometry and asset
// payloads to bound request size.
type AnalysisProjection struct {
	FrameRate  float64
	Width      int
	Height     int
	LayerCount int
	Version    string
	AssetCount int
}

func projectDocument(doc *AnimationDocument) AnalysisProjection {
	return AnalysisProjection{
		FrameRate:  doc.FrameRate,
		Width:      doc.Width,
		Height:     doc.Height,
		LayerCount: doc.LayerCount,
		Version:    doc.Version,
		AssetCount: doc.AssetCount,
	}
}

// buildAnalysisPrompt renders the projection into the prompt for the
// text-generation service.
func buildAnalysisPrompt(name string, p AnalysisProjection) string {
	var b strings.Builder
	b.WriteString("You are describing a vector animation to a motion designer.\n\n")
	b.WriteString("ANIMATION PROPERTIES:\n")
	fmt.Fprintf(&b, "- File name: %s\n", name)
	fmt.Fprintf(&b, "- Frame rate: %g fps\n", p.FrameRate)
	fmt.Fprintf(&b, "- Dimensions: %dx%d\n", p.Width, p.Height)
	fmt.Fprintf(&b, "- Layer count: %d\n", p.LayerCount)
	fmt.Fprintf(&b, "- Format version: %s\n", p.Version)
	fmt.Fprintf(&b, "- Asset count: %d\n\n", p.AssetCount)
	b.WriteString("TASK:\n")
	b.WriteString("Write a short plain-text summary (2-4 sentences) of what kind of animation ")
	b.WriteString("this is likely to be, based only on the properties above. Mention complexity ")
	b.WriteString("and intended use where the numbers support it. Do not invent visual details ")
	b.WriteString("you cannot know.")
	return b.String()
}
