package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dukegpt/llmproxy/internal/config"
)

const probeTimeout = 5 * time.Second

// --- status ---

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show relay status",
	RunE: func(cmd *cobra.Command, args []string) error {
		return showStatus()
	},
}

func showStatus() error {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	if err := newRelayClient(cfg).ping(ctx); err != nil {
		printStatus("Relay", "stopped")
	} else {
		printStatus("Relay", "running on port %d", cfg.Server.Port)
	}
	printStatus("Route", "POST /proxy/llm")
	printStatus("Version", "%s", version)
	return nil
}

// --- check ---

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check relay and upstream reachability",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck()
	},
}

func runCheck() error {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	// Plain errgroup, no shared context cancellation: both probes always run
	// so the operator sees both verdicts.
	var g errgroup.Group

	g.Go(func() error {
		if err := newRelayClient(cfg).ping(ctx); err != nil {
			printError("Relay not reachable on port %d: %v", cfg.Server.Port, err)
			return err
		}
		printSuccess("Relay reachable on port %d", cfg.Server.Port)
		return nil
	})

	g.Go(func() error {
		if err := pingUpstream(ctx, cfg.Upstream.APIURL); err != nil {
			printError("Upstream not reachable: %v", err)
			return err
		}
		printSuccess("Upstream reachable")
		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("check failed")
	}
	return nil
}

// pingUpstream issues an uncredentialed GET to the upstream endpoint. Any
// HTTP response counts as reachable; an unauthenticated GET is expected to
// be rejected, and the credential is never spent on diagnostics.
func pingUpstream(ctx context.Context, apiURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return err
	}
	client := &http.Client{Timeout: probeTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// --- config ---

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()

		for _, k := range config.ShowAll(cfg) {
			fmt.Printf("  %s = %s\n", colorize(colorBold, k.Key), k.Value)
		}
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
}
