//go:build js && wasm

// Package jsenv exposes the browser's performance bindings as a
// timing.Environment.
package jsenv

import (
	"math"
	"syscall/js"

	timing "github.com/Veerl1br/timing"
)

// isValueNil helper for js.Value
func isValueNil(v js.Value) bool {
	return v.Type() == js.TypeNull || v.Type() == js.TypeUndefined
}

// Env reads bindings from a JS global object.
type Env struct {
	global js.Value
}

// New returns an environment over js.Global().
func New() *Env {
	return &Env{global: js.Global()}
}

// NewWithGlobal returns an environment over an arbitrary global object.
func NewWithGlobal(global js.Value) *Env {
	return &Env{global: global}
}

func (e *Env) Performance(name string) (timing.Performance, bool) {
	if isValueNil(e.global) {
		return nil, false
	}
	v := e.global.Get(name)
	if isValueNil(v) {
		return nil, false
	}
	p := performance{v: v}
	if v.Get("getEntries").Type() == js.TypeFunction {
		return listingPerformance{p}, true
	}
	return p, true
}

func (e *Env) LoadTimes() (timing.LoadTimes, bool) {
	if isValueNil(e.global) {
		return timing.LoadTimes{}, false
	}
	chrome := e.global.Get("chrome")
	if isValueNil(chrome) || chrome.Get("loadTimes").Type() != js.TypeFunction {
		return timing.LoadTimes{}, false
	}
	paint := chrome.Call("loadTimes").Get("firstPaintTime")
	if paint.Type() != js.TypeNumber {
		return timing.LoadTimes{FirstPaintTime: math.NaN()}, true
	}
	return timing.LoadTimes{FirstPaintTime: paint.Float()}, true
}

type performance struct {
	v js.Value
}

func (p performance) Timing() timing.Record {
	t := p.v.Get("timing")
	if !t.Truthy() {
		return nil
	}
	return timing.Record(properties(t))
}

type listingPerformance struct {
	performance
}

func (p listingPerformance) Entries() []timing.Entry {
	list := p.v.Call("getEntries")
	n := list.Length()
	entries := make([]timing.Entry, 0, n)
	for i := 0; i < n; i++ {
		entries = append(entries, timing.Entry(properties(list.Index(i))))
	}
	return entries
}

// properties collects the enumerable-looking properties of v including
// inherited ones, since PerformanceTiming publishes its fields as accessors
// on the prototype. Functions and objects are recorded as nil.
func properties(v js.Value) map[string]any {
	object := js.Global().Get("Object")
	out := map[string]any{}
	for o := v; !isValueNil(o); o = object.Call("getPrototypeOf", o) {
		if o.Equal(object.Get("prototype")) {
			break
		}
		names := object.Call("getOwnPropertyNames", o)
		for i := 0; i < names.Length(); i++ {
			name := names.Index(i).String()
			if _, seen := out[name]; seen || name == "constructor" {
				continue
			}
			out[name] = value(v.Get(name))
		}
	}
	return out
}

func value(v js.Value) any {
	switch v.Type() {
	case js.TypeNumber:
		return v.Float()
	case js.TypeString:
		return v.String()
	case js.TypeBoolean:
		return v.Bool()
	}
	return nil
}
