package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/bluekit/ble-host/hostenv"
	"github.com/bluekit/ble-host/hub"
	_ "github.com/bluekit/ble-host/system"
)

func main() {
	var (
		configFile  = flag.String("config", "", "Path to config file (YAML)")
		serviceName = flag.String("service", "", "Service name to resolve (overrides config)")
		listSvc     = flag.Bool("services", false, "List registered host services and exit")
		scanSec     = flag.Int("scan", 0, "Scan for N seconds and list advertising devices")
		interactive = flag.Bool("i", false, "Interactive monitor with TUI")
	)
	flag.Parse()

	cfg, err := loadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *serviceName != "" {
		cfg.Service = *serviceName
	}

	if *listSvc {
		for _, name := range hostenv.Default().Names() {
			fmt.Println(name)
		}
		return
	}

	// All platform packages have registered by now.
	hostenv.Default().Seal()

	logger, closeLogs, err := buildLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLogs()

	if *scanSec > 0 {
		window := time.Duration(*scanSec) * time.Second
		if err := runScan(cfg, logger, window); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode requires a terminal")
			os.Exit(1)
		}
		if cfg.Log.File == "" {
			// Keep the TTY clean while the monitor owns it.
			logger = zap.NewNop()
		}
		if err := runMonitor(cfg, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(cfg, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *Config, logger *zap.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout())
	defer cancel()

	h := hub.New(hostenv.System(),
		hub.WithLogger(logger),
		hub.WithService(cfg.Service))

	fmt.Printf("Service: %s\n", h.Service())

	if _, err := h.Manager(ctx); err != nil {
		return err
	}
	fmt.Printf("Manager: resolved\n")

	a, err := h.Adapter(ctx)
	if err != nil {
		return err
	}

	addr, err := a.Address()
	if err != nil {
		return fmt.Errorf("read address: %w", err)
	}
	fmt.Printf("Adapter: %s\n", addr)

	return nil
}
