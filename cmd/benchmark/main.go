// Command benchmark measures update-cycle latency for growing trees and
// increasingly shuffled child orders. The interesting number is how the
// move count tracks the shuffle distance while stationary children are
// left alone.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"runtime/pprof"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/suhaib0edu/ariabridge/dom"
	"github.com/suhaib0edu/ariabridge/semantics"
)

var (
	widths   = []int{10, 100, 1_000}
	shuffles = []int{0, 2, 16}
	iters    = 100
)

func main() {
	flag.Parse()

	f, err := os.Create("default.pgo")
	if err != nil {
		log.Fatal(err)
	}
	pprof.StartCPUProfile(f)
	defer pprof.StopCPUProfile()

	log.Printf("warming up")
	benchmarkReconcile(true)
}

// flatBatch builds a root plus its children, traversal order given by
// order.
func flatBatch(order []int64) []semantics.NodeUpdate {
	root := semantics.NewNodeUpdate(0)
	root.ChildrenInTraversalOrder = append([]int64(nil), order...)
	root.ChildrenInHitTestOrder = append([]int64(nil), order...)
	batch := []semantics.NodeUpdate{root}
	for _, id := range order {
		u := semantics.NewNodeUpdate(id)
		u.Label = "node " + humanize.Comma(id)
		batch = append(batch, u)
	}
	return batch
}

func swapSome(rng *rand.Rand, order []int64, n int) {
	for i := 0; i < n; i++ {
		a := rng.Intn(len(order))
		b := rng.Intn(len(order))
		order[a], order[b] = order[b], order[a]
	}
}

func benchmarkReconcile(shouldRender bool) {
	tbl := table.NewWriter()
	tbl.SetTitle("Child Reconciliation")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "moves/iter", "avg", "min", "p75", "p99", "max"})

	rng := rand.New(rand.NewSource(1))
	for _, w := range widths {
		for _, s := range shuffles {
			tach := tachymeter.New(&tachymeter.Config{Size: iters})

			owner := semantics.NewOwner(dom.NewElement("mount"), func(err error) {
				log.Panic(err)
			})
			order := make([]int64, w)
			for i := range order {
				order[i] = int64(i + 1)
			}
			owner.UpdateSemantics(flatBatch(order))

			totalMoves := 0
			for i := 0; i < iters; i++ {
				swapSome(rng, order, s)
				batch := flatBatch(order)
				start := time.Now()
				owner.UpdateSemantics(batch)
				tach.AddTime(time.Since(start))
				totalMoves += owner.Stats().Moves
			}

			calc := tach.Calc()
			tbl.AppendRows([]table.Row{
				{
					fmt.Sprintf("reconcile: %s children, %d swaps", humanize.Comma(int64(w)), s),
					fmt.Sprintf("%.1f", float64(totalMoves)/float64(iters)),
					calc.Time.Avg,
					calc.Time.Min,
					calc.Time.P75,
					calc.Time.P99,
					calc.Time.Max,
				},
			})
		}
	}

	if shouldRender {
		tbl.Render()
	}
}
