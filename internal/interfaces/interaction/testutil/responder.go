// Package testutil provides a recording Responder for handler tests.
package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/corporatewarfare/cwbot/internal/interfaces/interaction"
)

// Call is one recorded Responder invocation.
type Call struct {
	Method   string
	Response interaction.Response
	Modal    interaction.Modal
	Choices  []interaction.Choice
}

// Recorder implements interaction.Responder and keeps every call. Set Err
// to make every call fail.
type Recorder struct {
	mu        sync.Mutex
	Calls     []Call
	Err       error
	NoReplies bool

	replied  bool
	deferred bool
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

var _ interaction.Responder = (*Recorder)(nil)

func (r *Recorder) record(c Call) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls = append(r.Calls, c)
	return r.Err
}

func (r *Recorder) CanReply() bool { return !r.NoReplies }

func (r *Recorder) Replied() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.replied
}

func (r *Recorder) Deferred() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.deferred
}

func (r *Recorder) markReplied() {
	r.mu.Lock()
	r.replied = true
	r.mu.Unlock()
}

func (r *Recorder) Reply(_ context.Context, resp interaction.Response) error {
	if err := r.record(Call{Method: "Reply", Response: resp}); err != nil {
		return err
	}
	r.markReplied()
	return nil
}

func (r *Recorder) Defer(_ context.Context, ephemeral bool) error {
	if err := r.record(Call{Method: "Defer", Response: interaction.Response{Ephemeral: ephemeral}}); err != nil {
		return err
	}
	r.mu.Lock()
	r.deferred = true
	r.mu.Unlock()
	return nil
}

func (r *Recorder) DeferUpdate(_ context.Context) error {
	if err := r.record(Call{Method: "DeferUpdate"}); err != nil {
		return err
	}
	r.mu.Lock()
	r.deferred = true
	r.mu.Unlock()
	return nil
}

func (r *Recorder) Update(_ context.Context, resp interaction.Response) error {
	if err := r.record(Call{Method: "Update", Response: resp}); err != nil {
		return err
	}
	r.markReplied()
	return nil
}

func (r *Recorder) Edit(_ context.Context, resp interaction.Response) error {
	if err := r.record(Call{Method: "Edit", Response: resp}); err != nil {
		return err
	}
	r.markReplied()
	return nil
}

func (r *Recorder) Followup(_ context.Context, resp interaction.Response) (string, error) {
	if err := r.record(Call{Method: "Followup", Response: resp}); err != nil {
		return "", err
	}
	return fmt.Sprintf("followup-%d", len(r.Calls)), nil
}

func (r *Recorder) ShowModal(_ context.Context, m interaction.Modal) error {
	if err := r.record(Call{Method: "ShowModal", Modal: m}); err != nil {
		return err
	}
	r.markReplied()
	return nil
}

func (r *Recorder) Autocomplete(_ context.Context, choices []interaction.Choice) error {
	if err := r.record(Call{Method: "Autocomplete", Choices: choices}); err != nil {
		return err
	}
	r.markReplied()
	return nil
}

func (r *Recorder) DeleteOriginal(_ context.Context) error {
	return r.record(Call{Method: "DeleteOriginal"})
}

// Last returns the most recent call, or a zero Call.
func (r *Recorder) Last() Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Calls) == 0 {
		return Call{}
	}
	return r.Calls[len(r.Calls)-1]
}

// Methods lists the recorded method names in order.
func (r *Recorder) Methods() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.Calls))
	for _, c := range r.Calls {
		out = append(out, c.Method)
	}
	return out
}
