//go:build !js || !wasm

package jsrunner

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dop251/goja"
)

// gojaRunner is the non-browser sibling of js.go's syscall/js-backed
// runner: it runs small JS macros (scenario generators, fuzz-style
// pointer-event scripts) against an embedded goja VM instead of a
// browser's global scope, so cmd/boardsim and tests can drive the same
// scripting surface headlessly.
type gojaRunner struct {
	mu sync.Mutex
	vm *goja.Runtime
}

type gojaValue struct {
	val goja.Value
}

// NewJSRunner constructs the native goja-backed JSRunner. The wasm
// build of this function lives in js.go behind its own build tag.
func NewJSRunner() JSRunner {
	return &gojaRunner{vm: goja.New()}
}

func (r *gojaRunner) Engine() Engine {
	return Goja
}

func (r *gojaRunner) RunString(code string) (_ JSValue, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	v, err := r.vm.RunString(code)
	if err != nil {
		return nil, fmt.Errorf("jsrunner: run: %w", err)
	}
	return &gojaValue{val: v}, nil
}

func (r *gojaRunner) MustGet(key string) (JSValue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v := r.vm.Get(key)
	if v == nil || goja.IsUndefined(v) {
		return nil, fmt.Errorf("key %q not found in global scope", key)
	}
	defer r.vm.GlobalObject().Delete(key)
	return &gojaValue{val: v}, nil
}

func (r *gojaRunner) NewObject() JSObject {
	r.mu.Lock()
	defer r.mu.Unlock()
	return &gojaValue{val: r.vm.NewObject()}
}

func (r *gojaRunner) Set(name string, value interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if obj, ok := value.(*gojaValue); ok {
		return r.vm.Set(name, obj.val)
	}
	return r.vm.Set(name, value)
}

func (r *gojaRunner) WaitPromise(ctx context.Context, val JSValue) (interface{}, error) {
	gv, ok := val.(*gojaValue)
	if !ok {
		return val.Export(), nil
	}
	promise, ok := gv.val.Export().(*goja.Promise)
	if !ok {
		return gv.Export(), nil
	}

	for {
		switch promise.State() {
		case goja.PromiseStateFulfilled:
			return exportGoja(promise.Result()), nil
		case goja.PromiseStateRejected:
			return nil, fmt.Errorf("promise rejected: %v", promise.Result())
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Millisecond):
		}
	}
}

func (v *gojaValue) String() string {
	return v.val.String()
}

func (v *gojaValue) Export() interface{} {
	return exportGoja(v.val)
}

func exportGoja(v goja.Value) interface{} {
	if v == nil {
		return nil
	}
	return v.Export()
}
