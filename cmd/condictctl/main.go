// Command condictctl is a small smoke-test / demo binary: it builds each of
// the three table variants from flag-configured settings, runs a fixed
// workload against all three, and logs the resulting sizes. It is not part
// of the library's public API surface.
package main

import (
	"fmt"
	"os"

	"github.com/agilira/flash-flags"
	"go.uber.org/zap"

	"github.com/concurrent-dict/condict/coarse"
	"github.com/concurrent-dict/condict/config"
	"github.com/concurrent-dict/condict/fine"
	"github.com/concurrent-dict/condict/lockfree"
	"github.com/concurrent-dict/condict/logging"
)

func main() {
	fs := flashflags.New("condictctl")
	capacity := fs.Uint64("capacity", 16, "initial bucket capacity")
	loadFactor := fs.Float64("load-factor", 0.75, "max load factor before growth")
	count := fs.Int("count", 1000, "number of keys to insert into each variant")
	dev := fs.Bool("dev", false, "use a human-readable development logger")

	if err := fs.Parse(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "parse flags:", err)
		os.Exit(2)
	}

	cfg := config.Table{Capacity: *capacity, LoadFactor: float32(*loadFactor)}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "invalid config:", err)
		os.Exit(2)
	}

	log := logging.New(*dev)
	defer log.Sync() //nolint:errcheck // best-effort flush on exit

	runDemo(log, cfg, *count)
}

func runDemo(log *zap.SugaredLogger, cfg config.Table, count int) {
	ct := coarse.New[int, int](cfg.Capacity, cfg.LoadFactor, coarse.WithLogger[int, int](log))
	ft := fine.New[int, int](cfg.Capacity, cfg.LoadFactor, fine.WithLogger[int, int](log))
	lt := lockfree.New[int, int](cfg.Capacity, cfg.LoadFactor, lockfree.WithLogger[int, int](log))

	for i := 0; i < count; i++ {
		ct.Insert(i, i)
		ft.Insert(i, i)
		lt.Insert(i, i)
	}

	log.Infow("demo complete",
		"coarse_size", ct.Len(),
		"fine_size", ft.Len(),
		"lockfree_size", lt.Len(),
	)
}
