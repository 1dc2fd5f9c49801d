// Package main is the entrypoint for the per-installation license agent.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/LerianStudio/lib-commons/commons/log"
	"github.com/LerianStudio/lib-commons/commons/zap"
	sdk "github.com/LerianStudio/lib-device-license-go"
	"github.com/LerianStudio/lib-device-license-go/agent"
	"github.com/LerianStudio/lib-device-license-go/model"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "license-agent",
		Short: "License agent of one installation",
		Long: `license-agent keeps the activation record of this installation,
revalidates it periodically against the license server and serves the
local command API (activation, status, recording).

Configuration is read from AGENT_* environment variables.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newRunCmd(),
		newActivateCmd(),
		newStatusCmd(),
	)

	return rootCmd
}

func open() (*sdk.Installation, sdk.Config, log.Logger, error) {
	logger := zap.InitializeLogger()

	cfg, err := sdk.LoadFromEnv()
	if err != nil {
		return nil, cfg, logger, err
	}

	inst, err := sdk.Open(cfg, logger)

	return inst, cfg, logger, err
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Serve the local API and keep the license revalidated",
		RunE: func(cmd *cobra.Command, args []string) error {
			inst, cfg, logger, err := open()
			if err != nil {
				return err
			}
			defer inst.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			handler := agent.NewHandler(inst.Client, cfg.MaxRecordedEvents, logger)

			inst.License.SetTerminationHandler(func(reason model.Reason) {
				logger.Errorf("License deactivated (%s): discarding any running recording", reason)
				handler.Discard()
			})
			inst.License.StartupValidation(ctx)

			app := handler.App()

			errCh := make(chan error, 1)
			go func() {
				logger.Infof("License agent listening on %s", cfg.ListenAddr)
				errCh <- app.Listen(cfg.ListenAddr)
			}()

			select {
			case <-ctx.Done():
			case err := <-errCh:
				return fmt.Errorf("local API stopped: %w", err)
			}

			logger.Info("Shutting down license agent")
			inst.License.ShutdownBackgroundRefresh()

			return app.ShutdownWithTimeout(cfg.HTTPTimeout)
		},
	}
}

func newActivateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "activate KEY",
		Short: "Activate this installation with a license key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inst, _, _, err := open()
			if err != nil {
				return err
			}
			defer inst.Close()

			if err := inst.Client.Activate(cmd.Context(), args[0]); err != nil {
				return err
			}

			return printJSON(cmd, inst.Client.Status(cmd.Context()))
		},
	}
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the local activation state",
		RunE: func(cmd *cobra.Command, args []string) error {
			inst, _, _, err := open()
			if err != nil {
				return err
			}
			defer inst.Close()

			ctx := cmd.Context()

			if err := inst.Client.Initialize(ctx); err != nil {
				return err
			}

			return printJSON(cmd, struct {
				Check  model.CheckResult      `json:"check"`
				Record model.ActivationStatus `json:"record"`
			}{
				Check:  inst.Client.CheckStatus(ctx),
				Record: inst.Client.Status(ctx),
			})
		},
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}
