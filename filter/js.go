package filter

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dop251/goja"
	"github.com/robertkrimen/otto"

	"github.com/ytget/qualitube/types"
)

// Engine selects the JavaScript interpreter used by NewJS.
type Engine string

const (
	EngineGoja Engine = "goja"
	EngineOtto Engine = "otto"
)

// DefaultTimeout bounds a single expression evaluation.
const DefaultTimeout = time.Second

const jsFuncName = "__qualitubeFilter"

// ErrTimeout is returned when an expression runs longer than its timeout.
var ErrTimeout = errors.New("filter expression timed out")

// ParseEngine maps a name to an Engine. Empty selects goja.
func ParseEngine(name string) (Engine, error) {
	switch Engine(strings.ToLower(strings.TrimSpace(name))) {
	case "", EngineGoja:
		return EngineGoja, nil
	case EngineOtto:
		return EngineOtto, nil
	default:
		return "", fmt.Errorf("unknown js engine %q", name)
	}
}

// NewJS compiles a JavaScript expression evaluated once per video with the
// video bound to `video`, e.g.
//
//	video.view_count > 1000 && video.tags && video.tags.indexOf("music") >= 0
//
// Keys are table column names; absent fields are null. The result is
// converted with JavaScript truthiness.
func NewJS(expr string, engine Engine) (Predicate, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, fmt.Errorf("%w: empty expression", ErrSyntax)
	}
	src := "function " + jsFuncName + "(video) { return (" + expr + "\n); }"

	switch engine {
	case EngineGoja, "":
		return newGojaPredicate(src)
	case EngineOtto:
		return newOttoPredicate(src)
	default:
		return nil, fmt.Errorf("unknown js engine %q", engine)
	}
}

type gojaPredicate struct {
	mu      sync.Mutex
	vm      *goja.Runtime
	fn      goja.Callable
	timeout time.Duration
}

func newGojaPredicate(src string) (*gojaPredicate, error) {
	vm := goja.New()
	if _, err := vm.RunScript("filter.js", src); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	fn, ok := goja.AssertFunction(vm.Get(jsFuncName))
	if !ok {
		return nil, fmt.Errorf("%w: filter function not defined", ErrSyntax)
	}
	return &gojaPredicate{vm: vm, fn: fn, timeout: DefaultTimeout}, nil
}

func (p *gojaPredicate) Match(v types.Video) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	obj := p.vm.NewObject()
	for k, val := range record(v) {
		if tags, ok := val.([]string); ok {
			items := make([]interface{}, len(tags))
			for i, t := range tags {
				items[i] = t
			}
			val = p.vm.NewArray(items...)
		}
		if err := obj.Set(k, val); err != nil {
			return false, fmt.Errorf("bind %s: %w", k, err)
		}
	}

	p.vm.ClearInterrupt()
	timer := time.AfterFunc(p.timeout, func() { p.vm.Interrupt(ErrTimeout) })
	res, err := p.fn(goja.Undefined(), obj)
	timer.Stop()
	p.vm.ClearInterrupt()

	if err != nil {
		var interrupted *goja.InterruptedError
		if errors.As(err, &interrupted) {
			return false, ErrTimeout
		}
		return false, fmt.Errorf("evaluate: %w", err)
	}
	return res.ToBoolean(), nil
}

type ottoPredicate struct {
	mu      sync.Mutex
	vm      *otto.Otto
	timeout time.Duration
}

func newOttoPredicate(src string) (*ottoPredicate, error) {
	vm := otto.New()
	if _, err := vm.Run(src); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	fn, err := vm.Get(jsFuncName)
	if err != nil || !fn.IsFunction() {
		return nil, fmt.Errorf("%w: filter function not defined", ErrSyntax)
	}
	return &ottoPredicate{vm: vm, timeout: DefaultTimeout}, nil
}

func (p *ottoPredicate) Match(v types.Video) (ok bool, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	// otto has no native way to build arrays from Go, so the record goes
	// through JSON.parse.
	data, err := json.Marshal(record(v))
	if err != nil {
		return false, fmt.Errorf("encode video: %w", err)
	}

	interrupt := make(chan func(), 1)
	p.vm.Interrupt = interrupt
	timer := time.AfterFunc(p.timeout, func() {
		interrupt <- func() { panic(ErrTimeout) }
	})
	defer timer.Stop()
	defer func() {
		if r := recover(); r != nil {
			if r == ErrTimeout {
				ok, err = false, ErrTimeout
				return
			}
			panic(r)
		}
	}()

	arg, err := p.vm.Call("JSON.parse", nil, string(data))
	if err != nil {
		return false, fmt.Errorf("bind video: %w", err)
	}
	res, err := p.vm.Call(jsFuncName, nil, arg)
	if err != nil {
		return false, fmt.Errorf("evaluate: %w", err)
	}
	return res.ToBoolean()
}
