// Command boardsim is a headless harness for the connector-routing and
// pointer-interaction core: it replays a JS-authored pointer-event
// scenario against a boardinput.Controller wired to the in-memory
// Store and the font-metrics-backed Text/Tile adapters, optionally
// serving a boardcollab websocket relay for external peers, and prints
// the resulting board state. The replayed Controller reports to a
// no-op Collab, so its own cursor/selection updates are not sent to
// that relay. It plays the role the teacher's
// `d2` CLI plays for a D2 diagram: the one binary that exercises every
// package end to end.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"sync/atomic"

	"cdr.dev/slog"
	"cdr.dev/slog/sloggers/sloghuman"
	"github.com/spf13/pflag"

	"oss.terrastruct.com/boardlogic/boardcollab"
	"oss.terrastruct.com/boardlogic/boardgraph"
	"oss.terrastruct.com/boardlogic/boardinput"
	"oss.terrastruct.com/boardlogic/boardtext"
	"oss.terrastruct.com/boardlogic/lib/geo"
)

func main() {
	var (
		scenarioPath = pflag.StringP("scenario", "s", "", "path to a JS scenario script (required)")
		watch        = pflag.BoolP("watch", "w", false, "re-run the scenario whenever the script file changes")
		collabAddr   = pflag.String("collab", "", "if set, also serve a boardcollab websocket endpoint on this address (e.g. :8765)")
		fontPath     = pflag.String("font", "", "optional embedded TTF for boardtext; falls back to the stdlib bitmap face")
	)
	pflag.Parse()

	log := slog.Make(sloghuman.Sink(os.Stderr))
	ctx := context.Background()

	if *scenarioPath == "" {
		log.Error(ctx, "missing required -scenario flag")
		pflag.Usage()
		os.Exit(2)
	}

	metrics, err := newMetrics(*fontPath)
	if err != nil {
		log.Error(ctx, "build text metrics", slog.Error(err))
		os.Exit(1)
	}

	var collab boardgraph.Collab = noopCollab{}
	if *collabAddr != "" {
		hub := boardcollab.NewHub()
		srv := boardcollab.NewServer(hub, log)
		go func() {
			log.Info(ctx, "serving boardcollab websocket", slog.F("addr", *collabAddr))
			if err := http.ListenAndServe(*collabAddr, srv); err != nil {
				log.Error(ctx, "collab server stopped", slog.Error(err))
			}
		}()
	}

	var idCounter int64
	idGen := func() string {
		return "el-" + strconv.FormatInt(atomic.AddInt64(&idCounter, 1), 10)
	}

	runOnce := func() {
		store := boardgraph.NewMemoryStore()
		controller := boardinput.NewController(store, collab, metrics, metrics, idGen)
		controller.Log = log

		events, err := loadScenario(*scenarioPath)
		if err != nil {
			log.Error(ctx, "load scenario", slog.Error(err))
			return
		}
		if err := replay(ctx, controller, events); err != nil {
			log.Error(ctx, "replay scenario", slog.Error(err))
			return
		}

		out, err := boardgraph.SerializeElements(store.Elements())
		if err != nil {
			log.Error(ctx, "serialize result", slog.Error(err))
			return
		}
		fmt.Println(string(out))
	}

	runOnce()
	if *watch {
		if err := watchAndRerun(ctx, log, *scenarioPath, runOnce); err != nil {
			log.Error(ctx, "watch scenario", slog.Error(err))
			os.Exit(1)
		}
	}
}

func newMetrics(fontPath string) (*boardtext.Metrics, error) {
	if fontPath == "" {
		return boardtext.NewMetrics(nil)
	}
	b, err := os.ReadFile(fontPath)
	if err != nil {
		return nil, fmt.Errorf("read font %s: %w", fontPath, err)
	}
	return boardtext.NewMetrics(b)
}

// noopCollab is the Collab every run hands its Controller, with or
// without -collab: every call is a no-op, matching the port's "fire and forget" contract
// trivially.
type noopCollab struct{}

func (noopCollab) UpdateCursor(x, y float64)                  {}
func (noopCollab) UpdateSelected(ids []string)                {}
func (noopCollab) UpdateViewport(pan geo.Point, zoom float64) {}
func (noopCollab) UpdateFollowingUser(id string)              {}
func (noopCollab) UpdateDrawingElement(e *boardgraph.Element) {}

var _ boardgraph.Collab = noopCollab{}
