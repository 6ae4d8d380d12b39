package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vijay-prabhu/foerdercheck/internal/httpapi"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start the HTTP API.

Endpoints:
  POST /v1/evaluate        {"program_id": "...", "profile": {...}}
  POST /v1/evaluate-all    {"profile": {...}, "status": "eligible"}
  POST /v1/recommend       {"profile": {...}, "max_results": 6}
  GET  /v1/programs        ?category=&q=&automatable=true&active=true
  GET  /v1/programs/{id}
  GET  /healthz
  GET  /metrics            (when http.metrics is enabled)

Examples:
  foerdercheck serve
  foerdercheck serve --addr :8080`,
	RunE: runServe,
}

var serveAddr string

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.Close()

	addr := a.cfg.HTTP.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	opts := []httpapi.Option{httpapi.WithLogger(a.logger)}
	if a.db != nil {
		opts = append(opts, httpapi.WithHealthCheck(a.db.Health))
	}
	if a.cfg.HTTP.Metrics {
		opts = append(opts, httpapi.WithMetrics(a.registry))
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return httpapi.New(a.advisor, opts...).ListenAndServe(ctx, addr)
}
