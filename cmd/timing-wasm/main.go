//go:build js && wasm

package main

import (
	"syscall/js"

	timing "github.com/Veerl1br/timing"
	"github.com/Veerl1br/timing/internal/jsenv"
	"go.uber.org/zap"
)

func options(args []js.Value) timing.Options {
	if len(args) == 0 || args[0].Type() != js.TypeObject {
		return timing.Options{}
	}
	return timing.Options{Simple: args[0].Get("simple").Truthy()}
}

func metricsValue(m timing.Metrics) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func entryValue(e timing.Entry) map[string]any {
	out := make(map[string]any, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// install builds the JS object carrying the reader's operations.
func install(reader *timing.Reader) js.Value {
	api := js.Global().Get("Object").New()

	api.Set("getAll", js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		m, ok := reader.All(options(args))
		if !ok {
			return false
		}
		return metricsValue(m)
	}))
	api.Set("getTime", js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		out := map[string]any{}
		for k, v := range reader.Time().Map() {
			if v == nil {
				out[k] = js.Undefined()
				continue
			}
			out[k] = *v
		}
		return out
	}))
	api.Set("getResourcesTime", js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		entries := reader.ResourcesTime()
		out := make([]any, 0, len(entries))
		for _, e := range entries {
			out = append(out, entryValue(e))
		}
		return out
	}))
	api.Set("printTable", js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		reader.PrintTable(options(args))
		return nil
	}))
	api.Set("printSimpleTable", js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		reader.PrintSimpleTable()
		return nil
	}))

	return api
}

func main() {
	reader := timing.New(jsenv.New(),
		timing.WithLogger(zap.NewNop()),
		timing.WithConsole(jsenv.NewConsole()),
	)

	global := js.Global()
	api := global.Get("timing")
	if !api.Truthy() {
		api = install(reader)
		global.Set("timing", api)
	}

	// CommonJS hosts
	if module := global.Get("module"); module.Truthy() && module.Get("exports").Truthy() {
		module.Set("exports", api)
	}

	// Keep the exported functions alive.
	select {}
}
