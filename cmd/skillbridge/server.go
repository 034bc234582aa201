package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/skillbridge/skillbridge/internal/api"
	"github.com/skillbridge/skillbridge/internal/assistant"
	"github.com/skillbridge/skillbridge/internal/config"
	"github.com/skillbridge/skillbridge/internal/roadmap"
	"github.com/skillbridge/skillbridge/internal/storage"
	"github.com/skillbridge/skillbridge/internal/textgen"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the SkillBridge server (foreground)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running SkillBridge server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return stopServer()
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show SkillBridge system status",
	RunE: func(cmd *cobra.Command, args []string) error {
		return showStatus()
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the demo job and resource catalog into storage",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		store, err := storage.Open(cfg.Storage.DataDir)
		if err != nil {
			return fmt.Errorf("opening storage: %w", err)
		}
		defer store.Close()

		empty, err := store.CatalogEmpty()
		if err != nil {
			return fmt.Errorf("checking catalog: %w", err)
		}
		if !empty {
			printWarning("catalog already has data, skipping seed")
			return nil
		}

		if err := store.Seed(); err != nil {
			return fmt.Errorf("seeding catalog: %w", err)
		}
		printSuccess("Seeded demo catalog (jobs, resources, demo user)")
		return nil
	},
}

func pidFilePath(dataDir string) string {
	return filepath.Join(dataDir, "skillbridge.pid")
}

func writePIDFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())), 0o644)
}

func readPIDFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(string(data)))
}

func removePIDFile(path string) {
	os.Remove(path)
}

func runServer() error {
	fmt.Fprintf(os.Stderr, "skillbridge version %s\n", version)

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Initialize structured logging.
	logLevel := slog.LevelInfo
	if strings.EqualFold(cfg.Log.Level, "debug") {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	// Check if server is already running via health endpoint before taking
	// the PID file.
	pidPath := pidFilePath(cfg.Storage.DataDir)
	healthURL := fmt.Sprintf("http://127.0.0.1:%d/health", cfg.Server.Port)
	healthClient := &http.Client{Timeout: 2 * time.Second}
	if resp, err := healthClient.Get(healthURL); err == nil {
		resp.Body.Close()
		if pid, pidErr := readPIDFile(pidPath); pidErr == nil {
			printWarning("skillbridge is already running (PID %d)", pid)
			return fmt.Errorf("server already running (PID %d)", pid)
		}
		printWarning("skillbridge is already running on port %d", cfg.Server.Port)
		return fmt.Errorf("server already running on port %d", cfg.Server.Port)
	}
	if err := writePIDFile(pidPath); err != nil {
		return fmt.Errorf("writing PID file: %w", err)
	}
	defer removePIDFile(pidPath)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Open storage and seed demo data on first run.
	store, err := storage.Open(cfg.Storage.DataDir)
	if err != nil {
		return fmt.Errorf("opening storage: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: closing storage: %v\n", err)
		}
	}()

	empty, err := store.CatalogEmpty()
	if err != nil {
		return fmt.Errorf("checking catalog: %w", err)
	}
	if empty {
		slog.Info("empty catalog, seeding demo data")
		if err := store.Seed(); err != nil {
			return fmt.Errorf("seeding catalog: %w", err)
		}
	}

	// Wire the text generator. Without an API key every generation falls
	// back to the static roadmap templates and the rule-based assistant.
	var gen textgen.Generator = textgen.Disabled{}
	if cfg.Generator.Enabled() {
		gen = textgen.NewClient(cfg.Generator.BaseURL, cfg.Generator.APIKey, cfg.Generator.Model)
		slog.Info("text generation enabled", "model", cfg.Generator.Model)
	} else {
		slog.Info("no generation API key, using static fallbacks")
	}

	selector, err := roadmap.NewSelector()
	if err != nil {
		return fmt.Errorf("loading roadmap templates: %w", err)
	}
	roadmaps := roadmap.NewGenerator(gen, selector)
	bot := assistant.New(gen)

	handler := api.NewHandler(api.Deps{
		Store:     store,
		Roadmaps:  roadmaps,
		Assistant: bot,
		JWTSecret: cfg.Auth.JWTSecret,
		TokenTTL:  cfg.Auth.TokenTTLHours,
	})

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// Build and start MCP server (stdio transport in a goroutine).
	mcpSrv := api.NewMCPServer(api.MCPDeps{
		Store:    store,
		Roadmaps: roadmaps,
	})
	stdioSrv := server.NewStdioServer(mcpSrv)
	go func() {
		if err := stdioSrv.Listen(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("MCP stdio server error", "error", err)
		}
	}()
	slog.Info("MCP server started (stdio transport)")

	// Start server in a goroutine.
	errCh := make(chan error, 1)
	go func() {
		fmt.Fprintf(os.Stderr, "skillbridge listening on %s\n", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for signal or server error.
	select {
	case <-ctx.Done():
		fmt.Fprintln(os.Stderr, "shutting down...")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	// Graceful shutdown with timeout.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func stopServer() error {
	cfg, err := config.Load()
	if err != nil {
		printError("could not load config: %v", err)
		return err
	}

	pidPath := pidFilePath(cfg.Storage.DataDir)
	pid, err := readPIDFile(pidPath)
	if err != nil {
		printError("skillbridge is not running (no PID file)")
		return fmt.Errorf("not running: %w", err)
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		printError("could not find process %d", pid)
		return err
	}

	if err := process.Signal(syscall.SIGTERM); err != nil {
		printError("could not stop skillbridge (PID %d): %v", pid, err)
		removePIDFile(pidPath)
		return err
	}

	printSuccess("Sent stop signal to skillbridge (PID %d)", pid)
	return nil
}

func showStatus() error {
	cfg, err := config.Load()
	if err != nil {
		printError("config error: %v", err)
		return nil
	}

	serverURL := fmt.Sprintf("http://127.0.0.1:%d", cfg.Server.Port)
	client := &http.Client{Timeout: 2 * time.Second}

	resp, err := client.Get(serverURL + "/health")
	if err != nil {
		printStatus("Server", "stopped")
	} else {
		resp.Body.Close()
		if resp.StatusCode == 200 {
			printStatus("Server", "running on port %d", cfg.Server.Port)
		} else {
			printStatus("Server", "error (HTTP %d)", resp.StatusCode)
		}
	}

	if cfg.Generator.Enabled() {
		printStatus("Generation", "enabled (%s)", cfg.Generator.Model)
	} else {
		printStatus("Generation", "disabled, static fallbacks")
	}

	if _, err := loadToken(cfg.Storage.DataDir); err == nil {
		printStatus("Session", "logged in")
	} else {
		printStatus("Session", "not logged in")
	}

	printStatus("Data dir", "%s", cfg.Storage.DataDir)
	return nil
}
