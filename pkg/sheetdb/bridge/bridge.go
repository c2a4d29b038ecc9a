// Package bridge exposes named functions to remote callers. A call names a
// function and passes JSON arguments; the result or error comes back as JSON
// over HTTP or a WebSocket.
package bridge

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
)

// ErrUnknownFunction indicates a call named a function that is not registered.
var ErrUnknownFunction = errors.New("function not found")

// Call is a request to run a registered function.
type Call struct {
	ID       string            `json:"id,omitempty"`
	Function string            `json:"functionName"`
	Args     []json.RawMessage `json:"args"`
}

// Result is the outcome of a Call. Error is empty on success.
type Result struct {
	ID    string `json:"id,omitempty"`
	Data  any    `json:"data"`
	Error string `json:"error,omitempty"`
}

// Func is a function callable through the bridge.
type Func func(args []json.RawMessage) (any, error)

// Dispatcher routes calls to registered functions. Calls run one at a time.
type Dispatcher struct {
	mu     sync.Mutex
	funcs  map[string]Func
	logger *slog.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger for the dispatcher.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// NewDispatcher creates a dispatcher with no functions.
func NewDispatcher(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		funcs:  make(map[string]Func),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Register adds fn under name, replacing any function already there.
func (d *Dispatcher) Register(name string, fn Func) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.funcs[name] = fn
}

// Names returns the registered function names in sorted order.
func (d *Dispatcher) Names() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	names := make([]string, 0, len(d.funcs))
	for name := range d.funcs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Dispatch runs the call and reports its outcome.
func (d *Dispatcher) Dispatch(call Call) Result {
	d.mu.Lock()
	defer d.mu.Unlock()

	res := Result{ID: call.ID}
	fn, ok := d.funcs[call.Function]
	if !ok {
		res.Error = fmt.Errorf("%w: %q", ErrUnknownFunction, call.Function).Error()
		d.logger.Warn("unknown bridge function", "function", call.Function)
		return res
	}

	data, err := fn(call.Args)
	if err != nil {
		res.Error = err.Error()
		d.logger.Error("bridge call failed", "function", call.Function, "error", err)
		return res
	}
	res.Data = data
	d.logger.Debug("bridge call", "function", call.Function, "args", len(call.Args))
	return res
}
