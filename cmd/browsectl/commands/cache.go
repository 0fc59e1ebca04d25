package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"plugin-browser/cmd/browsectl/internal/output"
	"plugin-browser/domain"
	"plugin-browser/driver/browse_api_client"
	"plugin-browser/middleware"
	"plugin-browser/port/browse_client_port"
)

// mintedTokenTTL bounds tokens signed on the fly for a single command.
const mintedTokenTTL = 5 * time.Minute

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and clear the proxy query cache",
	Long: `Admin operations on the proxy's query cache.

Authenticate with --token (or admin.token in config), or let browsectl
sign a short-lived token from admin.secret.

Examples:
  browsectl cache list
  browsectl cache clear --token $TOKEN
  browsectl cache token --ttl 24h`,
}

var cacheListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached browse responses",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := adminClient(cmd)
		if err != nil {
			return err
		}
		return listCache(cmd, client)
	},
}

func listCache(cmd *cobra.Command, admin browse_client_port.CacheAdminPort) error {
	entries, err := admin.ListCache(cmd.Context())
	if err != nil {
		return adminError(err)
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		type entryView struct {
			Key        string `json:"key"`
			Items      int    `json:"items"`
			Results    int    `json:"results"`
			TTLSeconds int64  `json:"ttl_seconds"`
		}
		views := make([]entryView, 0, len(entries))
		for _, e := range entries {
			views = append(views, entryView{e.Key, e.Items, e.Results, int64(e.TTL.Seconds())})
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(views)
	}

	printer := newPrinter(cmd)
	printer.Header("Query cache")
	if len(entries) == 0 {
		printer.Info("Cache is empty")
		return nil
	}
	return renderEntries(printer, entries)
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cached browse response",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := adminClient(cmd)
		if err != nil {
			return err
		}
		return clearCache(cmd, client)
	},
}

func clearCache(cmd *cobra.Command, admin browse_client_port.CacheAdminPort) error {
	deleted, err := admin.ClearCache(cmd.Context())
	if err != nil {
		return adminError(err)
	}
	newPrinter(cmd).Success("Cleared %d cache entries", deleted)
	return nil
}

var cacheTokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Sign an admin token from admin.secret",
	RunE: func(cmd *cobra.Command, args []string) error {
		ttl, _ := cmd.Flags().GetDuration("ttl")
		token, err := middleware.IssueAdminToken(adminSecret(cmd), cfg.Admin.Issuer, ttl)
		if err != nil {
			return fmt.Errorf("sign admin token: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheListCmd, cacheClearCmd, cacheTokenCmd)

	cacheCmd.PersistentFlags().String("token", "", "admin bearer token")
	cacheCmd.PersistentFlags().String("secret", "", "admin signing secret (overrides config)")
	cacheListCmd.Flags().Bool("json", false, "output in JSON format")
	cacheTokenCmd.Flags().Duration("ttl", time.Hour, "token lifetime")
}

func adminSecret(cmd *cobra.Command) string {
	if s, _ := cmd.Flags().GetString("secret"); s != "" {
		return s
	}
	return cfg.Admin.Secret
}

// adminClient picks the explicit token first, then the configured one, and
// finally signs one from the secret.
func adminClient(cmd *cobra.Command) (browse_client_port.CacheAdminPort, error) {
	token, _ := cmd.Flags().GetString("token")
	if token == "" {
		token = cfg.Admin.Token
	}
	if token == "" {
		if secret := adminSecret(cmd); secret != "" {
			var err error
			token, err = middleware.IssueAdminToken(secret, cfg.Admin.Issuer, mintedTokenTTL)
			if err != nil {
				return nil, fmt.Errorf("sign admin token: %w", err)
			}
			cliLog.Debug("signed short-lived admin token", "issuer", cfg.Admin.Issuer)
		}
	}
	return newBrowseClient(browse_api_client.WithAdminToken(token)), nil
}

func adminError(err error) error {
	var httpErr *domain.ExternalHTTPError
	if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("admin token rejected: set admin.token or admin.secret: %w", err)
	}
	return err
}

func renderEntries(printer *output.Printer, entries []domain.CacheEntrySummary) error {
	table := output.NewTable(printer.Out(), []string{"Key", "Items", "Results", "Expires In"})
	for _, e := range entries {
		table.AddRow([]string{
			e.Key,
			strconv.Itoa(e.Items),
			strconv.Itoa(e.Results),
			e.TTL.Round(time.Second).String(),
		})
	}
	if err := table.Render(); err != nil {
		return err
	}
	printer.Print("%d entries", len(entries))
	return nil
}
