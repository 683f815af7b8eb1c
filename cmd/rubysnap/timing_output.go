package main

import (
	"fmt"
	"io"
	"sort"
	"time"

	"rubysnap/internal/harness"
	"rubysnap/internal/observ"
)

const slowestCases = 5

func printTimings(out io.Writer, timer *observ.Timer, results []harness.Result) {
	if out == nil || timer == nil {
		return
	}
	fmt.Fprint(out, timer.Summary())

	slow := append([]harness.Result(nil), results...)
	sort.SliceStable(slow, func(i, j int) bool { return slow[i].Elapsed > slow[j].Elapsed })
	if len(slow) > slowestCases {
		slow = slow[:slowestCases]
	}
	if len(slow) == 0 {
		return
	}
	fmt.Fprintln(out, "slowest cases:")
	for _, r := range slow {
		fmt.Fprintf(out, "  %8.1f ms  %s\n", toMillis(r.Elapsed), r.Name)
	}
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
