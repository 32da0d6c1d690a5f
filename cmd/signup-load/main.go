package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/okian/signup/internal/loadtest"
	"github.com/okian/signup/pkg/logger"
)

// Default configuration constants.
const (
	defaultStudents    = 100
	defaultWorkers     = 2 // multiplier for runtime.NumCPU()
	defaultTimeout     = 10 * time.Second
	defaultTestTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL    = flag.String("url", "http://localhost:8000", "Base URL of the service")
		activity   = flag.String("activity", "Chess Club", "Activity to sign students up for")
		students   = flag.Int("students", defaultStudents, "Number of students to generate")
		workers    = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		unregister = flag.Bool("unregister", false, "Unregister accepted students afterwards")
		verbose    = flag.Bool("verbose", false, "Log every request outcome")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		loadtest.ShowHelp()
		return
	}

	if err := logger.Init(); err != nil {
		_, _ = os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	if *verbose {
		_ = logger.SetLevelString("debug")
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTestTimeout)
	defer cancel()

	cfg := &loadtest.Config{
		BaseURL:    *baseURL,
		Activity:   *activity,
		Students:   *students,
		Workers:    *workers,
		Timeout:    *timeout,
		Unregister: *unregister,
		Verbose:    *verbose,
	}

	if _, err := loadtest.Run(ctx, cfg); err != nil {
		logger.Get().Error(ctx, "load run failed", logger.Error(err))
		cancel()
		os.Exit(1)
	}
}
