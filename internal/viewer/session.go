package viewer

import "encoding/json"

// SessionManager owns at most one live render instance. Every document load
// or construction-affecting setting change destroys the prior instance before
// creating the next one, so two instances are never bound to the viewport at
// the same time.
//
// SessionManager is not safe for concurrent use; the Service serializes all
// access under its own lock.
type SessionManager struct {
	engine Engine
	inst   Instance
	state  PlayerState
	paused bool
}

// NewSessionManager returns a manager in the Empty state.
func NewSessionManager(engine Engine) *SessionManager {
	return &SessionManager{engine: engine, state: PlayerEmpty}
}

// Load destroys any prior session, constructs a new one bound to the
// viewport with autoplay, and applies the speed snapshot. On engine failure
// the manager is left Empty (the prior session is already gone).
func (m *SessionManager) Load(doc json.RawMessage, s PlaybackSettings) error {
	m.Teardown()

	inst, err := m.engine.Load(LoadOptions{
		Renderer: s.Renderer,
		Loop:     s.Loop,
		Autoplay: true,
		Document: doc,
	})
	if err != nil {
		return err
	}
	inst.SetSpeed(s.Speed)

	m.inst = inst
	m.state = PlayerReady
	m.paused = false
	return nil
}

// Pause pauses playback. No-op when no session exists or playback is stopped.
func (m *SessionManager) Pause() {
	if m.inst == nil || m.state != PlayerReady {
		return
	}
	m.inst.Pause()
	m.paused = true
}

// Resume resumes paused playback. No-op when no session exists.
func (m *SessionManager) Resume() {
	if m.inst == nil || m.state != PlayerReady {
		return
	}
	m.inst.Play()
	m.paused = false
}

// Stop halts playback and resets to the first frame; the reset itself is
// delegated to the engine. No-op when no session exists.
func (m *SessionManager) Stop() {
	if m.inst == nil {
		return
	}
	m.inst.Stop()
	m.state = PlayerStopped
	m.paused = false
}

// Restart seeks to frame 0 and resumes playing. Legal only when a session
// exists; no-op otherwise.
func (m *SessionManager) Restart() {
	if m.inst == nil {
		return
	}
	m.inst.GoToAndPlay(0)
	m.state = PlayerReady
	m.paused = false
}

// SetSpeed pushes a new speed factor into the live instance without
// rebuilding it. No-op when no session exists.
func (m *SessionManager) SetSpeed(factor float64) {
	if m.inst == nil {
		return
	}
	m.inst.SetSpeed(factor)
}

// Teardown destroys the session and releases the viewport binding.
// Idempotent: safe to call when no session exists.
func (m *SessionManager) Teardown() {
	if m.inst != nil {
		m.inst.Destroy()
		m.inst = nil
	}
	m.state = PlayerEmpty
	m.paused = false
}

// HasSession reports whether a live instance exists.
func (m *SessionManager) HasSession() bool {
	return m.inst != nil
}

// State returns the manager's lifecycle state.
func (m *SessionManager) State() PlayerState {
	return m.state
}

// Paused reports whether a Ready session is currently paused.
func (m *SessionManager) Paused() bool {
	return m.paused
}
