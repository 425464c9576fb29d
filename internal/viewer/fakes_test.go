package viewer

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"
)

// fakeEngine records every create/destroy in order and tracks how many
// instances are live at once.
type fakeEngine struct {
	events    []string
	loads     []LoadOptions
	instances []*fakeInstance
	live      int
	maxLive   int
	loadErr   error
}

func (e *fakeEngine) Load(opts LoadOptions) (Instance, error) {
	if e.loadErr != nil {
		return nil, e.loadErr
	}
	e.events = append(e.events, "create")
	e.loads = append(e.loads, opts)
	e.live++
	if e.live > e.maxLive {
		e.maxLive = e.live
	}
	inst := &fakeInstance{eng: e}
	e.instances = append(e.instances, inst)
	return inst, nil
}

type fakeInstance struct {
	eng    *fakeEngine
	speeds []float64
}

func (i *fakeInstance) Play()  { i.eng.events = append(i.eng.events, "play") }
func (i *fakeInstance) Pause() { i.eng.events = append(i.eng.events, "pause") }
func (i *fakeInstance) Stop()  { i.eng.events = append(i.eng.events, "stop") }

func (i *fakeInstance) GoToAndPlay(frame float64) {
	i.eng.events = append(i.eng.events, "seek")
}

func (i *fakeInstance) SetSpeed(factor float64) {
	i.speeds = append(i.speeds, factor)
	i.eng.events = append(i.eng.events, "speed")
}

func (i *fakeInstance) Destroy() {
	i.eng.events = append(i.eng.events, "destroy")
	i.eng.live--
}

// lastInstance returns the most recently created instance, or nil.
func (e *fakeEngine) lastInstance() *fakeInstance {
	if len(e.instances) == 0 {
		return nil
	}
	return e.instances[len(e.instances)-1]
}

// fakeGenerator counts calls and can block until released to simulate an
// in-flight request.
type fakeGenerator struct {
	mu    sync.Mutex
	calls int
	text  string
	err   error
	block chan struct{}
}

func (g *fakeGenerator) Generate(ctx context.Context, model, prompt string) (string, error) {
	g.mu.Lock()
	g.calls++
	block := g.block
	text, err := g.text, g.err
	g.mu.Unlock()
	if block != nil {
		<-block
	}
	return text, err
}

func (g *fakeGenerator) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func validDocument() []byte {
	return []byte(`{"fr":30,"ip":0,"op":90,"w":512,"h":512,"layers":[{},{},{}],"v":"5.1","assets":[]}`)
}

func mustLoad(t *testing.T, svc *Service, name string, raw []byte) AnimationMetadata {
	t.Helper()
	meta, err := svc.LoadDocument(name, raw)
	if err != nil {
		t.Fatalf("LoadDocument: %v", err)
	}
	return meta
}

// waitForAnalysis polls until the analysis leaves the pending state.
func waitForAnalysis(t *testing.T, svc *Service, want AnalysisStatus) AnalysisState {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if st := svc.Analysis(); st.Status == want {
			return st
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("analysis never reached status %q (last: %+v)", want, svc.Analysis())
	return AnalysisState{}
}
