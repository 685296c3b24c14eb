// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-08-24
// Last Modified: 2026-08-29

package commands

import (
	"fmt"
	"net/url"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the configuration without starting the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck()
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck() error {
	_ = godotenv.Load()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Printf("Config OK\n")
	fmt.Printf("  addr:           %s\n", cfg.Addr)
	fmt.Printf("  log level:      %s\n", cfg.LogLevel)
	fmt.Printf("  remote timeout: %s\n", time.Duration(cfg.RemoteTimeout))

	fmt.Printf("Remotes (%d):\n", len(cfg.Remotes))
	for _, r := range cfg.Remotes {
		host := r.Kind + ".com"
		if r.URL != "" {
			if u, err := url.Parse(r.URL); err == nil {
				host = u.Hostname()
			}
		}
		fmt.Printf("  %-16s %-7s %s\n", r.Name, r.Kind, host)
	}

	fmt.Printf("Hooks (%d):\n", len(cfg.Hooks))
	for _, h := range cfg.Hooks {
		fmt.Printf("  %-7s POST %s\n", h.Kind, h.Endpoint)
	}

	return nil
}
