package main

import (
	"context"
	"fmt"

	"oss.terrastruct.com/boardlogic/boardinput"
)

// replay drives a Controller through a decoded scenario one event at a
// time, in the order boardinput itself expects: PointerDown to start a
// gesture, zero or more PointerMove, a terminating PointerUp. It
// doesn't validate that ordering — a scenario author's JS macro is on
// the hook for producing a sane sequence, same as a real UI's pointer
// callbacks are never guaranteed well-formed by the DOM either.
func replay(ctx context.Context, c *boardinput.Controller, events []sceneEvent) error {
	for i, se := range events {
		ev := boardinput.PointerEvent{
			ClientX: se.X,
			ClientY: se.Y,
			Button:  boardinput.Button(se.Button),
			Buttons: se.Buttons,
			Shift:   se.Shift,
			Ctrl:    se.Ctrl,
			Meta:    se.Meta,
			Alt:     se.Alt,
			Detail:  se.Detail,
		}
		switch se.Type {
		case "down":
			c.PointerDown(ctx, ev)
		case "move":
			c.PointerMove(ctx, ev)
		case "up":
			c.PointerUp(ctx, ev)
		default:
			return fmt.Errorf("scenario event %d: unknown type %q", i, se.Type)
		}
	}
	return nil
}
