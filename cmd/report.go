package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/caas-team/kestrel/internal/logger"
	"github.com/caas-team/kestrel/pkg/config"
	"github.com/caas-team/kestrel/pkg/kestrel"
)

// NewCmdReport creates a new report command
func NewCmdReport() *cobra.Command {
	flagConfig := NewFlag("config", "config").StringP("c")
	flagInventory := NewFlag("inventory.path", "inventory").StringP("i")
	flagOutput := NewFlag("report.output", "output").StringP("o")
	flagTemplates := NewFlag("report.templateDir", "templates").String()

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate the fleet health report",
		Long: "Kestrel reads the server inventory, runs the checks each server's\n" +
			"role tags enable and writes the results into one HTML report.",
		RunE: runReport,
	}

	flagConfig.Bind(cmd, "", "path to the kestrel config file")
	flagInventory.Bind(cmd, "", "path to the server inventory csv")
	flagOutput.Bind(cmd, "", "path the html report is written to")
	flagTemplates.Bind(cmd, "", "directory with custom report templates")

	return cmd
}

// runReport is the entry point of the report command
func runReport(cmd *cobra.Command, _ []string) error {
	log := logger.NewLogger()
	ctx := logger.IntoContext(cmd.Context(), log)

	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	k, err := kestrel.New(cfg)
	if err != nil {
		return err
	}

	log.Info("Running kestrel")
	rep, err := k.Run(ctx)
	if err != nil {
		return err
	}

	kestrel.PrintSummary(cmd.OutOrStdout(), rep)
	return nil
}

// loadConfig builds the config from defaults, the optional config file
// and the flag overrides bound through viper.
func loadConfig(ctx context.Context) (*config.Config, error) {
	log := logger.FromContext(ctx)

	cfg := config.NewConfig()
	if path := viper.GetString("config"); path != "" {
		if err := cfg.LoadFile(ctx, path); err != nil {
			return nil, err
		}
	}

	if v := viper.GetString("inventory.path"); v != "" {
		cfg.Inventory.Path = v
	}
	if v := viper.GetString("report.output"); v != "" {
		cfg.Report.Output = v
	}
	if v := viper.GetString("report.templateDir"); v != "" {
		cfg.Report.TemplateDir = v
	}

	if err := cfg.Validate(ctx); err != nil {
		log.Error("Error while validating the config", "error", err)
		return nil, err
	}
	return cfg, nil
}
