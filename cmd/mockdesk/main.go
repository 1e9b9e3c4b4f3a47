// Package main provides the mockdesk CLI: a local Zendesk-compatible
// ticketing API emulator for testing helpdesk client code.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/goatkit/mockdesk/internal/api"
	"github.com/goatkit/mockdesk/internal/config"
	"github.com/goatkit/mockdesk/internal/core"
	"github.com/goatkit/mockdesk/internal/store"
	"github.com/goatkit/mockdesk/internal/triggers"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:   "mockdesk",
		Short: "Local Zendesk-compatible ticketing API emulator",
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default: ./mockdesk.yaml)")

	root.AddCommand(serveCmd(), resetCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the emulator HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			st, err := store.Open(cfg.StateFile, storeSeed(cfg))
			if err != nil {
				return err
			}

			svc := core.NewService(cfg, triggers.NewRunner())
			engine := gin.Default()
			api.NewRouter(cfg, st, svc).RegisterRoutes(engine)

			addr := fmt.Sprintf(":%d", cfg.Port)
			log.Printf("mockdesk listening on %s (state: %s)", addr, cfg.StateFile)
			return engine.Run(addr)
		},
	}
}

func resetCmd() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear persisted tickets and comments (--all clears users and jobs too)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			st, err := store.Open(cfg.StateFile, storeSeed(cfg))
			if err != nil {
				return err
			}
			if all {
				if err := st.ResetAll(); err != nil {
					return err
				}
				log.Printf("reset all state in %s", cfg.StateFile)
				return nil
			}
			if err := st.ResetTickets(); err != nil {
				return err
			}
			log.Printf("reset tickets and comments in %s", cfg.StateFile)
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "also remove users and jobs")
	return cmd
}

func storeSeed(cfg *config.Config) store.Seed {
	return store.Seed{
		AdminID:    cfg.DefaultAdminID,
		AdminName:  cfg.DefaultAdminName,
		AdminEmail: cfg.DefaultAdminEmail,
	}
}
