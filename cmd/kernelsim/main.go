// Command kernelsim is a small demo harness that drives the memory
// manager and scheduler concurrently, simulating a handful of CPUs
// pulling processes off the scheduler and touching memory through
// them. It is not a real instruction-interpreting process driver —
// it exists to exercise both subsystems end to end for manual
// inspection and smoke testing.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"

	"golang.org/x/sync/errgroup"

	"kernelsim/kernel/addr"
	"kernelsim/kernel/config"
	"kernelsim/kernel/memmgr"
	"kernelsim/kernel/proc"
	"kernelsim/kernel/sched"
)

func main() {
	var (
		layoutPath = flag.String("layout", "", "path to a JSON address-layout config; defaults to a 20/10/5/5 layout")
		numCPUs    = flag.Int("cpus", 4, "number of simulated CPU goroutines")
		numProcs   = flag.Int("procs", 6, "number of processes to admit")
		quanta     = flag.Int("quanta", 20, "scheduler quanta to simulate before stopping")
		verbose    = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	layout := addr.DefaultLayout()
	if *layoutPath != "" {
		loaded, err := config.Load(*layoutPath)
		if err != nil {
			slog.Error("failed to load layout config, falling back to defaults", "err", err)
		} else {
			layout = loaded
		}
	}

	mgr := memmgr.New(layout)
	scheduler := sched.New(layout.MaxQueueSize)

	procs := make([]*proc.PCB, *numProcs)
	for i := range procs {
		p := proc.New(uint32(i+1), uint32(rand.Intn(10)), layout.PageSize())
		procs[i] = p
		scheduler.AddProc(p)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	for cpu := 0; cpu < *numCPUs; cpu++ {
		cpu := cpu
		g.Go(func() error {
			return runCPU(ctx, cpu, scheduler, mgr, *quanta)
		})
	}

	if err := g.Wait(); err != nil {
		slog.Error("simulation failed", "err", err)
		os.Exit(1)
	}

	mgr.Dump(os.Stdout)
}

// runCPU repeatedly fetches a process from the scheduler, "runs" it
// for one simulated quantum by exercising alloc/write/read, and
// re-queues it, until quanta runs out or the scheduler drains.
func runCPU(ctx context.Context, id int, scheduler *sched.Scheduler, mgr *memmgr.Manager, quanta int) error {
	for i := 0; i < quanta; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		p := scheduler.GetProc()
		if p == nil {
			if scheduler.IsEmpty() {
				return nil
			}
			continue
		}

		size := uint32(64 + rand.Intn(200))
		v := mgr.Alloc(size, p)
		if v != memmgr.NullAlloc {
			mgr.Write(v, byte(id), p)
			if b, ok := mgr.Read(v, p); ok {
				slog.Debug("cpu ran process", "cpu", id, "pid", p.Pid, "addr", fmt.Sprintf("%#x", v), "byte", b)
			}
		}

		scheduler.PutProc(p)
	}
	return nil
}
