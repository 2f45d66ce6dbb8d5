package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/litscout/litscout/internal/dashboard"
	"github.com/litscout/litscout/internal/prefs"
)

var dashboardPort int

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Start the local research dashboard",
	Long: `Starts a local web dashboard for browsing projects, retrieving
articles, screening files, and running extractions. The dashboard binds
to localhost only.`,
	RunE: runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
	dashboardCmd.Flags().IntVar(&dashboardPort, "port", 0, "port to listen on (default from config)")
}

func runDashboard(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	session, err := newSession()
	if err != nil {
		return err
	}

	dashCfg := cfg.Dashboard
	if dashboardPort != 0 {
		dashCfg.Port = dashboardPort
	}

	prefStore, err := prefs.NewDefaultStore()
	if err != nil {
		return fmt.Errorf("opening preferences: %w", err)
	}

	historyStore := openHistory()
	if historyStore != nil {
		defer historyStore.Close()
	}

	client := newClient(cfg, session)
	client.ShowProgress = false
	srv := dashboard.New(dashCfg, client, session, prefStore, historyStore, newNotifier(), newLogger())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		fmt.Fprintln(os.Stderr, "\nShutting down dashboard...")
		srv.Shutdown(context.Background())
	}()

	fmt.Fprintf(os.Stderr, "litscout dashboard v%s on http://127.0.0.1:%d\n", Version, dashCfg.Port)
	return srv.Start()
}
