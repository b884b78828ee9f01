package main

import (
	"encoding/json"
	"os"

	"oss.terrastruct.com/util-go/xdefer"

	"oss.terrastruct.com/boardlogic/lib/jsrunner"
)

// sceneEvent is one pointer callback a scenario script describes. It
// mirrors boardinput.PointerEvent field-for-field so decoding it is a
// flat copy, not a translation layer.
type sceneEvent struct {
	Type    string  `json:"type"` // "down" | "move" | "up"
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Button  int     `json:"button"`
	Buttons int     `json:"buttons"`
	Shift   bool    `json:"shift"`
	Ctrl    bool    `json:"ctrl"`
	Meta    bool    `json:"meta"`
	Alt     bool    `json:"alt"`
	Detail  int     `json:"detail"`
}

// loadScenario runs the JS at path through a goja-backed jsrunner and
// decodes its result as a JSON array of sceneEvent. A scenario script
// is expected to end in an expression that evaluates to
// JSON.stringify(events) — the same convention lib/jsrunner's tests
// use — so the same script also runs unmodified under the wasm/
// browser engine, which shares no Go types with goja across the
// syscall/js boundary.
func loadScenario(path string) (events []sceneEvent, err error) {
	defer xdefer.Errorf(&err, "scenario %s", path)

	source, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	runner := jsrunner.NewJSRunner()
	result, err := runner.RunString(string(source))
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(result.String()), &events); err != nil {
		return nil, err
	}
	return events, nil
}
