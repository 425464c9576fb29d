package viewer

import (
	"encoding/json"
	"errors"
)

// ErrEngineUnavailable is returned by Engine.Load when the render engine
// collaborator is not available (e.g. no viewport client is connected).
var ErrEngineUnavailable = errors.New("render engine unavailable")

// LoadOptions is the construction snapshot for a render instance. Renderer
// and Loop are fixed for the instance's lifetime; changing either requires
// a new instance.
type LoadOptions struct {
	Renderer Renderer
	Loop     bool
	Autoplay bool
	Document json.RawMessage
}

// Engine is the capability contract for the external playback engine.
// Implementations construct at most the instances they are asked for and
// never share a viewport between two live instances.
type Engine interface {
	Load(opts LoadOptions) (Instance, error)
}

// Instance is a live render instance bound to the viewport. The viewer never
// inspects an instance beyond this contract. Destroy releases the viewport
// binding; using an instance after Destroy is undefined.
type Instance interface {
	Play()
	Pause()
	Stop()
	GoToAndPlay(frame float64)
	SetSpeed(factor float64)
	Destroy()
}
