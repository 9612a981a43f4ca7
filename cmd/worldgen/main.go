// Command worldgen generates a world without a window and reports its
// statistics, checksum and an optional top-down PNG preview.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"time"

	"blockworld/internal/config"
	"blockworld/internal/metrics"
	"blockworld/internal/preview"
	"blockworld/internal/world"

	"github.com/xlab/closer"
)

func main() {
	defer closer.Close()

	var (
		configPath  = flag.String("config", "", "YAML or TOML config file (default $"+config.EnvPath+")")
		seed        = flag.Int64("seed", 0, "world seed (overrides config)")
		size        = flag.Int("size", 0, "width and depth in blocks (overrides config)")
		height      = flag.Int("height", 0, "height in blocks (overrides config)")
		noiseName   = flag.String("noise", "", "perlin or fractal (overrides config)")
		previewPath = flag.String("preview", "", "write a top-down PNG map here")
		scale       = flag.Int("scale", 4, "preview pixels per block")
		dumpConfig  = flag.String("dump-config", "", "write the effective config to this .yaml or .toml file")
		logLevel    = flag.String("log-level", "info", "debug, info, warn or error")
		metricsAddr = flag.String("metrics-addr", "", "serve Prometheus /metrics on this address and wait")
	)
	flag.Parse()

	log, err := config.NewLogger(os.Stderr, *logLevel)
	if err != nil {
		closer.Fatalln(err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatal(log, "Load config", err)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			s := *seed
			cfg.World.Seed = &s
		case "size":
			cfg.World.Width, cfg.World.Depth = *size, *size
			if cfg.World.Sliders != nil {
				cfg.World.Sliders.Size = *size
			}
		case "height":
			cfg.World.Height = *height
			if cfg.World.Sliders != nil {
				cfg.World.Sliders.Height = *height
			}
		case "noise":
			cfg.World.Noise = *noiseName
		}
	})

	var rec *metrics.Recorder
	if *metricsAddr != "" {
		rec = metrics.New()
	}
	opts, err := cfg.Options(log, rec)
	if err != nil {
		fatal(log, "World options", err)
	}

	w := world.New(nil, opts)
	defer w.Dispose()

	if *dumpConfig != "" {
		s := w.Seed()
		cfg.World.Seed = &s
		if err := config.Save(*dumpConfig, cfg); err != nil {
			fatal(log, "Dump config", err)
		}
		log.Info("Config written", "path", *dumpConfig)
	}

	report(w)

	if *previewPath != "" {
		caption := fmt.Sprintf("seed %d  %016x", w.Seed(), w.Checksum())
		if err := preview.Save(*previewPath, preview.Render(w, *scale, caption)); err != nil {
			fatal(log, "Write preview", err)
		}
		log.Info("Preview written", "path", *previewPath)
	}

	if rec != nil {
		srv := rec.Serve(*metricsAddr, log)
		closer.Bind(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		})
		closer.Hold()
	}
}

func report(w *world.World) {
	width, height, depth := w.Dimensions()
	st := w.Stats()
	fmt.Printf("world   %s\n", w.ID())
	fmt.Printf("seed    %d (%s noise)\n", w.Seed(), w.Noise())
	fmt.Printf("size    %dx%dx%d\n", width, height, depth)
	fmt.Printf("solid   %d\n", st.Solid)
	fmt.Printf("trees   %d\n", st.Trees)
	fmt.Printf("quads   %d\n", st.Quads)
	fmt.Printf("digest  %016x\n", w.Checksum())

	names := make([]string, 0, len(st.ByBlock))
	for name := range st.ByBlock {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %-7s %d\n", name, st.ByBlock[name])
	}
}

func fatal(log *slog.Logger, msg string, err error) {
	log.Error(msg, "err", err)
	closer.Fatalln(msg + ": " + err.Error())
}
