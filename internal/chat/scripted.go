package chat

import (
	"context"
	"fmt"
	"sync"
)

// ScriptedGateway is a deterministic Gateway for tests. Replies are matched
// by model id and returned in order; every request is recorded.
type ScriptedGateway struct {
	mu       sync.Mutex
	replies  map[string][]string
	requests []Request

	// Err, when set, is returned for every Send call.
	Err error
}

// NewScriptedGateway creates a gateway with per-model reply queues.
func NewScriptedGateway() *ScriptedGateway {
	return &ScriptedGateway{replies: map[string][]string{}}
}

// Queue appends replies to the queue for a model id.
func (g *ScriptedGateway) Queue(model string, replies ...string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.replies[model] = append(g.replies[model], replies...)
}

func (g *ScriptedGateway) Send(_ context.Context, req Request) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.requests = append(g.requests, req)

	if g.Err != nil {
		return "", &ProviderError{Provider: "scripted", Model: req.Model, Err: g.Err}
	}

	queue := g.replies[req.Model]
	if len(queue) == 0 {
		return "", &ProviderError{Provider: "scripted", Model: req.Model, Err: fmt.Errorf("no scripted reply queued")}
	}

	reply := queue[0]
	g.replies[req.Model] = queue[1:]
	return reply, nil
}

// Requests returns a copy of every request seen so far.
func (g *ScriptedGateway) Requests() []Request {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]Request, len(g.requests))
	copy(out, g.requests)
	return out
}
