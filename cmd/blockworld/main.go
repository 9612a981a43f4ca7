// Command blockworld opens a window onto a generated voxel world.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"runtime"
	"time"

	"blockworld/internal/config"
	"blockworld/internal/game"
	"blockworld/internal/metrics"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/xlab/closer"
)

func init() {
	// GLFW and GL calls must stay on the main thread
	runtime.LockOSThread()
}

func main() {
	defer closer.Close()

	var (
		configPath  = flag.String("config", "", "YAML or TOML config file (default $"+config.EnvPath+")")
		logLevel    = flag.String("log-level", "info", "debug, info, warn or error")
		metricsAddr = flag.String("metrics-addr", "", "serve Prometheus /metrics on this address")
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
	config.ApplyClient(cfg.Client)

	var rec *metrics.Recorder
	addr := *metricsAddr
	if addr == "" {
		addr = cfg.Metrics.Addr
	}
	if addr != "" {
		rec = metrics.New()
		srv := rec.Serve(addr, log)
		closer.Bind(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		})
	}

	opts, err := cfg.Options(log, rec)
	if err != nil {
		fatal(log, "World options", err)
	}

	if err := glfw.Init(); err != nil {
		panic(err)
	}
	defer glfw.Terminate()

	window, err := game.SetupWindow("blockworld")
	if err != nil {
		panic(err)
	}

	app, err := game.NewApp(window, opts, log)
	if err != nil {
		panic(err)
	}
	defer app.Close()

	app.Run()
}

func fatal(log *slog.Logger, msg string, err error) {
	log.Error(msg, "err", err)
	closer.Fatalln(msg + ": " + err.Error())
}
