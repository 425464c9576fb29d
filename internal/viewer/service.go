package viewer

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"lottie-viewer/internal/platform/metrics"
)

// ErrNoDocument is returned by operations that require a loaded document.
var ErrNoDocument = errors.New("no document loaded")

// Service owns all viewer state: the loaded document and its metadata, the
// playback settings, the render session manager, and the analysis state.
// Every mutation happens under one lock, so the destroy-then-create sequence
// of a session rebuild is atomic as far as callers can observe.
type Service struct {
	mu       sync.Mutex
	log      *slog.Logger
	metrics  *metrics.Metrics
	gen      Generator
	model    string
	sessions *SessionManager

	doc      *AnimationDocument
	meta     *AnimationMetadata
	settings PlaybackSettings
	analysis AnalysisState

	// loadSeq increases on every successful load. Asynchronous completions
	// capture it at trigger time and discard their result if a newer
	// document has been loaded since.
	loadSeq uint64
}

// NewService wires the viewer service. Metrics may be nil to disable metric
// recording (e.g. in tests). model is the text-generation model identifier.
func NewService(engine Engine, gen Generator, model string, defaults PlaybackSettings, log *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{
		log:      log,
		metrics:  m,
		gen:      gen,
		model:    model,
		sessions: NewSessionManager(engine),
		settings: defaults,
		analysis: AnalysisState{Status: AnalysisIdle},
	}
}

// LoadDocument parses an uploaded file and, on success, replaces the current
// document wholesale: the prior session is destroyed, a new one is created
// under the current settings snapshot, and the analysis state is cleared.
// On parse failure all prior state is left untouched.
func (s *Service) LoadDocument(name string, raw []byte) (AnimationMetadata, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, meta, err := ParseDocument(name, raw)
	if err != nil {
		if s.metrics != nil {
			s.metrics.IncParseFailures()
		}
		s.log.Info("upload rejected",
			slog.String("name", name),
			slog.Int("byte_size", len(raw)),
			slog.String("error", err.Error()))
		return AnimationMetadata{}, err
	}

	if err := s.sessions.Load(doc.Raw, s.settings); err != nil {
		// The prior session is already gone; fall back to the neutral
		// empty state rather than keeping a document with no session.
		s.doc = nil
		s.meta = nil
		s.analysis = AnalysisState{Status: AnalysisIdle}
		s.log.Error("render session load failed", slog.String("error", err.Error()))
		return AnimationMetadata{}, err
	}

	s.doc = doc
	s.meta = &meta
	s.analysis = AnalysisState{Status: AnalysisIdle}
	s.loadSeq++

	if s.metrics != nil {
		s.metrics.IncDocumentsLoaded()
	}
	s.log.Info("document loaded",
		slog.String("name", meta.Name),
		slog.Int("byte_size", meta.ByteSize),
		slog.Float64("frame_rate", meta.FrameRate),
		slog.Int("layer_count", meta.LayerCount))
	return meta, nil
}

// Pause pauses playback; no-op when no session exists.
func (s *Service) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions.Pause()
}

// Resume resumes paused playback; no-op when no session exists.
func (s *Service) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions.Resume()
}

// Stop halts playback; no-op when no session exists.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions.Stop()
}

// Restart seeks to frame 0 and resumes playing. Returns ErrNoDocument when
// no session exists.
func (s *Service) Restart() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.sessions.HasSession() {
		return ErrNoDocument
	}
	s.sessions.Restart()
	return nil
}

// UpdateSettings applies a partial settings update. Speed changes are pushed
// into the live instance; loop and renderer changes rebuild the session from
// the currently loaded document; background changes only affect the view.
func (s *Service) UpdateSettings(u SettingsUpdate) error {
	if err := u.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next, changed := u.Apply(s.settings)
	if len(changed) == 0 {
		return nil
	}
	s.settings = next

	if s.doc == nil {
		return nil
	}

	if requiresRebuild(changed) {
		if err := s.sessions.Load(s.doc.Raw, s.settings); err != nil {
			s.log.Error("session rebuild failed", slog.String("error", err.Error()))
			return err
		}
		if s.metrics != nil {
			s.metrics.IncSessionRebuilds()
		}
		s.log.Debug("session rebuilt", slog.Any("changed", changed))
		return nil
	}

	if containsField(changed, FieldSpeed) {
		s.sessions.SetSpeed(s.settings.Speed)
		s.log.Debug("speed patched", slog.Float64("speed", s.settings.Speed))
	}
	return nil
}

// RequestAnalysis triggers an asynchronous analysis of the loaded document.
// At most one request is in flight: a trigger while one is pending is a
// no-op. Returns ErrNoDocument when nothing is loaded.
func (s *Service) RequestAnalysis() error {
	s.mu.Lock()

	if s.doc == nil {
		s.mu.Unlock()
		return ErrNoDocument
	}
	if s.analysis.Status == AnalysisPending {
		s.mu.Unlock()
		return nil
	}

	s.analysis = AnalysisState{Status: AnalysisPending}
	seq := s.loadSeq
	name := s.meta.Name
	prompt := buildAnalysisPrompt(name, projectDocument(s.doc))
	s.mu.Unlock()

	go s.runAnalysis(seq, name, prompt)
	return nil
}

func (s *Service) runAnalysis(seq uint64, name, prompt string) {
	text, err := s.gen.Generate(context.Background(), s.model, prompt)

	s.mu.Lock()
	defer s.mu.Unlock()

	// A newer document replaced the one this request was built from; its
	// analysis state has already been cleared, so the result is stale.
	if s.loadSeq != seq {
		s.log.Debug("stale analysis result discarded", slog.String("name", name))
		return
	}

	if err != nil {
		s.analysis = AnalysisState{Status: AnalysisDone, Text: AnalysisFailureMessage}
		if s.metrics != nil {
			s.metrics.IncAnalysisFailures()
		}
		s.log.Error("analysis failed",
			slog.String("name", name),
			slog.String("error", err.Error()))
		return
	}

	s.analysis = AnalysisState{Status: AnalysisDone, Text: text}
	if s.metrics != nil {
		s.metrics.IncAnalyses()
	}
	s.log.Info("analysis completed", slog.String("name", name), slog.Int("chars", len(text)))
}

// Analysis returns the current analysis state.
func (s *Service) Analysis() AnalysisState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.analysis
}

// View returns a snapshot of everything the presentation layer renders.
func (s *Service) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		Loaded:   s.doc != nil,
		Settings: s.settings,
		Player:   s.sessions.State(),
		Paused:   s.sessions.Paused(),
		Analysis: s.analysis,
	}
	if s.meta != nil {
		meta := *s.meta
		v.Metadata = &meta
	}
	return v
}

// ActiveSessionCount returns 1 when a live render session exists, else 0.
// Used for metrics.
func (s *Service) ActiveSessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sessions.HasSession() {
		return 1
	}
	return 0
}

// Teardown destroys any live session and releases the viewport binding.
// Idempotent; called on shutdown.
func (s *Service) Teardown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions.Teardown()
}
