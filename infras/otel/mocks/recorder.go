package mocks

import (
	"context"
	"sync"

	"hotel/infras/otel"
)

// Recorder is an otel.Otel that keeps the errors traced on each named scope.
type Recorder struct {
	mu     sync.Mutex
	errors map[string][]error
}

func NewRecorder() *Recorder {
	return &Recorder{errors: map[string][]error{}}
}

func (r *Recorder) NewScope(ctx context.Context, _, name string) (context.Context, otel.Scope) {
	return ctx, &recordingScope{name: name, recorder: r}
}

// Errors returns the errors traced on the scope called name.
func (r *Recorder) Errors(name string) []error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]error(nil), r.errors[name]...)
}

func (r *Recorder) record(name string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.errors[name] = append(r.errors[name], err)
}

type recordingScope struct {
	scopeImpl
	name     string
	recorder *Recorder
}

func (s *recordingScope) TraceError(err error) {
	s.recorder.record(s.name, err)
}

func (s *recordingScope) TraceIfError(err error) {
	if err != nil {
		s.TraceError(err)
	}
}
