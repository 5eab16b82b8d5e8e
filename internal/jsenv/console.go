//go:build js && wasm

package jsenv

import (
	"syscall/js"

	timing "github.com/Veerl1br/timing"
)

// Console prints timing tables with the browser's console.table.
type Console struct {
	console js.Value
}

func NewConsole() *Console {
	return &Console{console: js.Global().Get("console")}
}

// TableValue builds the {name: {ms, s}} object console.table renders.
func TableValue(rows []timing.Row) js.Value {
	table := js.Global().Get("Object").New()
	for _, row := range rows {
		table.Set(row.Name, map[string]any{
			"ms": row.MS,
			"s":  row.S,
		})
	}
	return table
}

func (c *Console) Table(rows []timing.Row) {
	if isValueNil(c.console) {
		return
	}
	if c.console.Get("table").Type() != js.TypeFunction {
		return
	}
	c.console.Call("table", TableValue(rows))
}
