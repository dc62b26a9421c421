package cmd

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/caas-team/kestrel/internal/logger"
	"github.com/caas-team/kestrel/pkg/kestrel"
)

// NewCmdServe creates a new serve command
func NewCmdServe() *cobra.Command {
	flagConfig := NewFlag("config", "config").StringP("c")
	flagInventory := NewFlag("inventory.path", "inventory").StringP("i")
	flagAddress := NewFlag("api.address", "address").String()
	flagInterval := NewFlag("api.interval", "interval").Int()

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the fleet health report",
		Long: "Kestrel periodically regenerates the report and serves it together\n" +
			"with the raw check results via an HTTP API.",
		RunE: runServe,
	}

	flagConfig.Bind(cmd, "", "path to the kestrel config file")
	flagInventory.Bind(cmd, "", "path to the server inventory csv")
	flagAddress.Bind(cmd, "", "api: the address the server is listening on")
	flagInterval.Bind(cmd, 0, "the interval between report generations in seconds")

	return cmd
}

// runServe is the entry point of the serve command
func runServe(cmd *cobra.Command, _ []string) error {
	log := logger.NewLogger()
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = logger.IntoContext(ctx, log)

	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	if v := viper.GetString("api.address"); v != "" {
		cfg.Api.ListeningAddress = v
	}
	if v := viper.GetInt("api.interval"); v > 0 {
		cfg.Api.Interval = time.Duration(v) * time.Second
	}

	k, err := kestrel.New(cfg)
	if err != nil {
		return err
	}

	log.Info("Running kestrel in serve mode", "addr", cfg.Api.ListeningAddress)
	return k.Serve(ctx)
}
