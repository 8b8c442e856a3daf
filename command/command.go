// Package command registers Go handlers as chat client commands.
//
// The client dispatches a command by calling back into the script with the
// callback name given at registration. A [Registry] keeps the handlers by
// that name and turns whatever they return, or panic with, into the
// client's return codes so a faulty handler never takes the dispatcher down.
package command

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/stephenafamo/infolist"
)

// ReturnCode is what a command callback answers the client with
type ReturnCode int

const (
	OK    ReturnCode = 0
	Error ReturnCode = -1
)

func (c ReturnCode) String() string {
	switch c {
	case OK:
		return "ok"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("return code %d", int(c))
	}
}

// Spec describes a command the way the client shows it in /help
type Spec struct {
	Name            string
	Description     string
	Args            string
	ArgsDescription string
	Completion      string
}

// Registrar is the part of the client used to register commands
type Registrar interface {
	// HookCommand registers the command, to be dispatched to callback
	HookCommand(spec Spec, callback, data string) error
	// Print writes a message to a buffer, "" being the core buffer
	Print(buffer infolist.Pointer, message string)
}

// Handler runs a command. Returning false reports a failure to the client
// without printing anything; returning an error also prints it.
type Handler func(ctx context.Context, buffer infolist.Pointer, args string) (bool, error)

type hook struct {
	spec    Spec
	handler Handler
}

// Registry dispatches client callbacks to registered handlers
type Registry struct {
	client Registrar
	logger zerolog.Logger

	mu    sync.RWMutex
	hooks map[string]hook
}

// NewRegistry creates a registry registering its commands with client
func NewRegistry(client Registrar, logger zerolog.Logger) *Registry {
	return &Registry{
		client: client,
		logger: logger,
		hooks:  make(map[string]hook),
	}
}

// Register hooks the command with the client and keeps the handler
// under callback for [Registry.Dispatch]
func (r *Registry) Register(spec Spec, callback string, h Handler) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.hooks[callback]; ok {
		return fmt.Errorf("callback %q already registered", callback)
	}

	if err := r.client.HookCommand(spec, callback, ""); err != nil {
		return fmt.Errorf("hooking command %q: %w", spec.Name, err)
	}

	r.hooks[callback] = hook{spec: spec, handler: h}
	return nil
}

// Dispatch runs the handler registered under callback.
// data is the string given at registration and is not used.
func (r *Registry) Dispatch(ctx context.Context, callback, data string, buffer infolist.Pointer, args string) ReturnCode {
	r.mu.RLock()
	h, ok := r.hooks[callback]
	r.mu.RUnlock()

	if !ok {
		r.logger.Error().Str("callback", callback).Msg("dispatch to unknown callback")
		return Error
	}

	return r.run(ctx, h, buffer, args)
}

func (r *Registry) run(ctx context.Context, h hook, buffer infolist.Pointer, args string) (code ReturnCode) {
	defer func() {
		if p := recover(); p != nil {
			r.fail(h.spec.Name, fmt.Errorf("panic: %v", p))
			code = Error
		}
	}()

	ok, err := h.handler(ctx, buffer, args)
	if err != nil {
		r.fail(h.spec.Name, err)
		return Error
	}
	if !ok {
		return Error
	}

	return OK
}

func (r *Registry) fail(name string, err error) {
	r.client.Print("", fmt.Sprintf("%s: %v", name, err))
	r.logger.Error().Err(err).Str("command", name).Msg("command failed")
}
