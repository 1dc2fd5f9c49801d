// Package main is the operator CLI of the license store.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/LerianStudio/lib-commons/commons/zap"
	"github.com/LerianStudio/lib-device-license-go/constant"
	"github.com/LerianStudio/lib-device-license-go/internal/bootstrap"
	"github.com/LerianStudio/lib-device-license-go/internal/config"
	"github.com/LerianStudio/lib-device-license-go/model"
	"github.com/LerianStudio/lib-device-license-go/service"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type app struct {
	databaseURL string
	svc         *service.Service
	stores      *bootstrap.Stores
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "licensectl",
		Short: "Manage licenses and device bindings",
		Long: `licensectl issues licenses, changes their status, frees device slots
and reads the audit trail directly against the license database.

The database is taken from --database-url or LICENSE_DATABASE_URL.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.connect(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.stores != nil {
				a.stores.Close()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.databaseURL, "database-url", "", "PostgreSQL connection URL (overrides LICENSE_DATABASE_URL)")

	rootCmd.AddCommand(
		a.newGenerateCmd(),
		a.newSetStatusCmd(),
		a.newRevokeDeviceCmd(),
		a.newListCmd(),
		a.newDevicesCmd(),
		a.newAuditCmd(),
	)

	return rootCmd
}

func (a *app) connect(cmd *cobra.Command) error {
	logger := zap.InitializeLogger()

	cfg, err := config.LoadServerConfig()
	if err != nil {
		return err
	}

	if a.databaseURL != "" {
		cfg.DatabaseURL = a.databaseURL
	}

	if cfg.DatabaseURL == "" {
		return errors.New("a database URL is required (--database-url or LICENSE_DATABASE_URL)")
	}

	cfg.StoreDriver = constant.StoreDriverPostgres

	stores, err := bootstrap.OpenStores(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}

	a.stores = stores
	a.svc = bootstrap.NewService(stores, cfg, logger)

	return nil
}

func (a *app) newGenerateCmd() *cobra.Command {
	var (
		userID     string
		validFor   time.Duration
		expiresAt  string
		maxDevices int
		metadata   map[string]string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Issue a new license",
		RunE: func(cmd *cobra.Command, args []string) error {
			var expiry *time.Time

			switch {
			case expiresAt != "" && validFor > 0:
				return errors.New("use either --expires-at or --valid-for")
			case expiresAt != "":
				t, err := time.Parse(time.RFC3339, expiresAt)
				if err != nil {
					return fmt.Errorf("invalid --expires-at: %w", err)
				}

				expiry = &t
			case validFor > 0:
				t := time.Now().UTC().Add(validFor)
				expiry = &t
			}

			var opts []service.GenerateOption
			if cmd.Flags().Changed("max-devices") {
				opts = append(opts, service.WithMaxDevices(maxDevices))
			}

			if len(metadata) > 0 {
				md := make(map[string]any, len(metadata))
				for k, v := range metadata {
					md[k] = v
				}

				opts = append(opts, service.WithMetadata(md))
			}

			license, err := a.svc.GenerateLicense(cmd.Context(), userID, expiry, opts...)
			if err != nil {
				return err
			}

			return printJSON(cmd, license)
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "user the license is issued to")
	cmd.Flags().DurationVar(&validFor, "valid-for", 0, "license lifetime from now (e.g. 8760h)")
	cmd.Flags().StringVar(&expiresAt, "expires-at", "", "absolute expiry (RFC3339)")
	cmd.Flags().IntVar(&maxDevices, "max-devices", 0, "maximum number of bound devices")
	cmd.Flags().StringToStringVar(&metadata, "metadata", nil, "metadata key=value pairs")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func (a *app) newSetStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-status LICENSE_ID STATUS",
		Short: "Set a license to active, expired or revoked",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid license id: %w", err)
			}

			status := model.LicenseStatus(args[1])
			if !status.IsValid() {
				return fmt.Errorf("unknown status %q (want active, expired or revoked)", args[1])
			}

			if !a.svc.UpdateLicenseStatus(cmd.Context(), id, status) {
				return fmt.Errorf("status of license %s was not changed", id)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "License %s is now %s\n", id, status)

			return nil
		},
	}
}

func (a *app) newRevokeDeviceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "revoke-device DEVICE_ID",
		Short: "Remove a device registration and free its slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid device id: %w", err)
			}

			if !a.svc.RevokeDevice(cmd.Context(), id) {
				return fmt.Errorf("device %s was not revoked", id)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Device %s revoked\n", id)

			return nil
		},
	}
}

func (a *app) newListCmd() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List licenses",
		RunE: func(cmd *cobra.Command, args []string) error {
			licenses, err := a.svc.ListLicenses(cmd.Context(), userID)
			if err != nil {
				return err
			}

			return printJSON(cmd, licenses)
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "only licenses of this user")

	return cmd
}

func (a *app) newDevicesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "devices LICENSE_ID",
		Short: "List the devices bound to a license",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid license id: %w", err)
			}

			devices, err := a.svc.ListDevices(cmd.Context(), id)
			if err != nil {
				return err
			}

			return printJSON(cmd, devices)
		},
	}
}

func (a *app) newAuditCmd() *cobra.Command {
	var limit, offset int

	cmd := &cobra.Command{
		Use:   "audit LICENSE_ID",
		Short: "Show the audit trail of a license, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid license id: %w", err)
			}

			entries, err := a.svc.ListAuditLogs(cmd.Context(), id, limit, offset)
			if err != nil {
				return err
			}

			return printJSON(cmd, entries)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "page size")
	cmd.Flags().IntVar(&offset, "offset", 0, "entries to skip")

	return cmd
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}
