// Command plannerctl is a terminal client for the event planner API.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Shivanand-hulikatti/event-planner/internal/client"
	"github.com/Shivanand-hulikatti/event-planner/internal/config"
)

var (
	v          = config.New()
	jsonOutput bool
	cfg        *config.Config
	api        *client.Client
)

var rootCmd = &cobra.Command{
	Use:           "plannerctl <command>",
	Short:         "Browse packages, book events and manage payments",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if path, _ := cmd.Flags().GetString("config"); path != "" {
			v.SetConfigFile(path)
		}
		c, err := config.Load(v)
		if err != nil {
			return err
		}
		cfg = c
		api = client.New(cfg.Client.APIURL, cfg.Client.Timeout)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file (default ./planner.toml or $PLANNER_CONFIG)")
	rootCmd.PersistentFlags().String("api-url", "", "planner API base URL")
	rootCmd.PersistentFlags().Duration("timeout", 0, "HTTP request timeout")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	_ = v.BindPFlag("client.api_url", rootCmd.PersistentFlags().Lookup("api-url"))
	_ = v.BindPFlag("client.timeout", rootCmd.PersistentFlags().Lookup("timeout"))

	rootCmd.AddGroup(
		&cobra.Group{ID: "lists", Title: "Lists:"},
		&cobra.Group{ID: "forms", Title: "Forms:"},
	)
	cobra.EnableCommandSorting = false

	rootCmd.AddCommand(packagesCmd, bookingsCmd, paymentsCmd, reviewsCmd, browseCmd)
	rootCmd.AddCommand(bookCmd, cancelCmd, payCmd, receiptCmd, recommendCmd, exportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
