package interaction

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/google/uuid"

	apperrors "github.com/corporatewarfare/cwbot/internal/shared/errors"
	"github.com/corporatewarfare/cwbot/internal/shared/logger"
)

// Request travels through the middleware chain to the handler.
type Request struct {
	Ctx     context.Context
	Event   Event
	Class   Class
	TraceID string
	Logger  logger.Interface
	// Values carries state between middleware and the handler.
	Values map[string]any
}

func (r *Request) Base() *Base {
	return r.Event.Common()
}

// Next continues the chain. A middleware that does not call it stops the
// request.
type Next func() error

type Middleware func(req *Request, next Next) error

type Handler func(req *Request) error

type Router struct {
	mu         sync.RWMutex
	handlers   map[Class]Handler
	middleware []Middleware
	logger     logger.Interface
}

func NewRouter(logger logger.Interface) *Router {
	return &Router{
		handlers: make(map[Class]Handler),
		logger:   logger,
	}
}

// Register binds the handler for class, replacing any earlier one.
func (r *Router) Register(class Class, h Handler) {
	r.mu.Lock()
	r.handlers[class] = h
	r.mu.Unlock()
	r.logger.Debugw("registered interaction handler", "class", class)
}

// Use appends a middleware. Middleware runs in registration order.
func (r *Router) Use(m Middleware) {
	r.mu.Lock()
	r.middleware = append(r.middleware, m)
	r.mu.Unlock()
}

// Route classifies e and runs it through the middleware chain and its
// handler. Unclassifiable events and classes without a handler are ignored.
// A handler error or panic is logged, answered with a generic message when
// the user has not been answered yet, and returned.
func (r *Router) Route(ctx context.Context, e Event) (err error) {
	if e == nil {
		return nil
	}
	class, ok := Classify(e)
	if !ok {
		return nil
	}

	r.mu.RLock()
	handler, ok := r.handlers[class]
	chain := make([]Middleware, len(r.middleware))
	copy(chain, r.middleware)
	r.mu.RUnlock()
	if !ok {
		return nil
	}

	traceID := uuid.NewString()
	base := e.Common()
	req := &Request{
		Ctx:     ctx,
		Event:   e,
		Class:   class,
		TraceID: traceID,
		Logger: r.logger.With(
			"trace_id", traceID,
			"class", class,
			"guild_id", base.GuildID,
			"user_id", base.User.ID,
		),
		Values: make(map[string]any),
	}

	defer func() {
		if rec := recover(); rec != nil {
			req.Logger.Errorw("panic recovered in interaction handler",
				"error", rec,
				"stack", string(debug.Stack()))
			err = fmt.Errorf("panic in %s handler: %v", class, rec)
		}
		if err != nil {
			r.reportFailure(req, err)
		}
	}()

	index := 0
	var next Next
	next = func() error {
		switch {
		case index < len(chain):
			m := chain[index]
			index++
			return m(req, next)
		case index == len(chain):
			index++
			return handler(req)
		}
		return nil
	}

	return next()
}

func (r *Router) reportFailure(req *Request, err error) {
	req.Logger.Errorw("interaction failed", "error", err)

	base := req.Base()
	sent, replyErr := Notify(req.Ctx, base.Responder, Response{
		Content:   "❌ " + apperrors.UserMessage(err),
		Ephemeral: true,
	})
	if replyErr != nil {
		req.Logger.Warnw("failed to send failure notice", "error", replyErr)
	} else if sent {
		req.Logger.Debugw("sent failure notice")
	}
}
