package main

import (
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"mineview/internal/log"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// Set up global panic handler first
	defer func() {
		if r := recover(); r != nil {
			log.Error("GLOBAL PANIC recovered", "error", r, "stack", string(debug.Stack()))
			fmt.Fprintf(os.Stderr, "Application crashed. See %s for details.\n", logFile())
			os.Exit(1)
		}
	}()

	// SIGINT and SIGTERM are left to the commands, which shut down cleanly
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGABRT, syscall.SIGQUIT)
	go func() {
		sig := <-signalChan
		log.Error("SIGNAL RECEIVED", "signal", sig.String(), "stack", string(debug.Stack()))
		fmt.Fprintf(os.Stderr, "Application received signal %s. See %s for details.\n", sig.String(), logFile())
		os.Exit(1)
	}()

	// Deadlock detector for the long running commands
	go func() {
		for {
			time.Sleep(30 * time.Second)
			log.Debug("HEARTBEAT: Application is alive")
		}
	}()

	rootCmd.Version = fmt.Sprintf("%s (commit %s, built %s)", version, commit, date)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		log.Close()
		os.Exit(1)
	}
	log.Close()
}

func logFile() string {
	if cfg != nil && cfg.Log.File != "" {
		return cfg.Log.File
	}
	return "mineview_debug.log"
}
