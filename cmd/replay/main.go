// Command replay drives a semantics owner from a recorded session file
// and dumps the resulting accessibility tree. A session is a JSON object
// with a "frames" array; each frame is an update batch ({"nodes":[...]}),
// an input event ({"event":"pointerdown", "advanceMs": 100}) fed to the
// gesture arbiter on a manual clock, or a platform feature report
// ({"features": 5}).
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"github.com/urfave/cli/v3"

	"github.com/suhaib0edu/ariabridge/dom"
	"github.com/suhaib0edu/ariabridge/gesture"
	"github.com/suhaib0edu/ariabridge/semantics"
)

const (
	strictKey = "strict"
	htmlKey   = "html"
	jsonKey   = "json"
)

func main() {
	cmd := &cli.Command{
		Name:      "replay",
		Usage:     "Replay a recorded semantics session and dump the tree",
		ArgsUsage: "<session.json>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  strictKey,
				Usage: "Panic on structural inconsistencies instead of skipping them",
			},
			&cli.StringFlag{
				Name:  htmlKey,
				Usage: "Write an HTML snapshot of the tree to this file",
			},
			&cli.StringFlag{
				Name:  jsonKey,
				Usage: "Write a JSON snapshot of the tree to this file",
			},
		},
		Action: replay,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func replay(ctx context.Context, cmd *cli.Command) error {
	path := cmd.Args().First()
	if path == "" {
		return fmt.Errorf("usage: replay <session.json>")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading session: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("session is not valid JSON")
	}

	mount := dom.NewElement("mount")
	owner := semantics.NewOwner(mount, func(err error) {
		log.Printf("skipped: %v", err)
	})
	owner.Strict = cmd.Bool(strictKey)

	clock := gesture.NewManualClock(time.Unix(0, 0))
	arbiter := gesture.NewArbiter(clock)
	arbiter.AddModeListener(func(m gesture.GestureMode) {
		log.Printf("gesture mode -> %s", m)
	})

	frames := gjson.GetBytes(data, "frames")
	if !frames.Exists() {
		// A bare batch is a single-frame session.
		frames = gjson.Parse("[" + string(data) + "]")
	}

	frameNo := 0
	var frameErr error
	frames.ForEach(func(_, frame gjson.Result) bool {
		frameNo++
		if f := frame.Get("features"); f.Exists() {
			arbiter.SetFeatures(semantics.Features(f.Uint()))
			log.Printf("frame %d: features %#x enabled=%v", frameNo, f.Uint(), arbiter.Enabled())
			return true
		}
		if ev := frame.Get("event"); ev.Exists() {
			if ms := frame.Get("advanceMs"); ms.Exists() {
				clock.Advance(time.Duration(ms.Int()) * time.Millisecond)
			}
			t := gesture.EventType(ev.String())
			arbiter.ReceiveGlobalEvent(t)
			log.Printf("frame %d: event %s accept=%v", frameNo, t, arbiter.ShouldAcceptBrowserGesture(t))
			return true
		}
		updates, err := semantics.DecodeBatch([]byte(frame.Raw))
		if err != nil {
			frameErr = fmt.Errorf("frame %d: %w", frameNo, err)
			return false
		}
		owner.UpdateSemantics(updates)
		log.Printf("frame %d: %d updates, stats %+v", frameNo, len(updates), owner.Stats())
		return true
	})
	if frameErr != nil {
		return frameErr
	}
	if err := owner.Validate(); err != nil {
		return fmt.Errorf("final tree is inconsistent: %w", err)
	}

	dumpTable(owner)

	if out := cmd.String(htmlKey); out != "" {
		if err := writeHTML(owner, out); err != nil {
			return err
		}
	}
	if out := cmd.String(jsonKey); out != "" {
		if err := writeJSON(owner, out); err != nil {
			return err
		}
	}
	return nil
}

func sortedIDs(o *semantics.Owner) []int64 {
	ids := o.NodeIDs()
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func dumpTable(o *semantics.Owner) {
	tbl := tablewriter.NewWriter(os.Stdout)
	tbl.SetHeader([]string{"id", "parent", "roles", "label", "value", "children"})
	for _, id := range sortedIDs(o) {
		n := o.Node(id)
		parent := "-"
		if p := n.Parent(); p != nil {
			parent = strconv.FormatInt(p.ID(), 10)
		}
		roles := ""
		for _, k := range n.ActiveRoleKinds().ToSlice() {
			if roles != "" {
				roles += ","
			}
			roles += k.String()
		}
		tbl.Append([]string{
			strconv.FormatInt(id, 10),
			parent,
			roles,
			n.Label(),
			n.Value(),
			fmt.Sprint(n.ChildIDs()),
		})
	}
	tbl.Render()
}

func writeJSON(o *semantics.Owner, path string) error {
	out := []byte(`{"nodes":[]}`)
	var err error
	for _, id := range sortedIDs(o) {
		n := o.Node(id)
		entry := map[string]any{
			"id":       n.ID(),
			"label":    n.Label(),
			"value":    n.Value(),
			"children": n.ChildIDs(),
			"attrs":    n.Element().Attributes(),
		}
		if p := n.Parent(); p != nil {
			entry["parent"] = p.ID()
		}
		out, err = sjson.SetBytes(out, "nodes.-1", entry)
		if err != nil {
			return fmt.Errorf("building snapshot: %w", err)
		}
	}
	return os.WriteFile(path, out, 0o644)
}
