// Package main is the georefctl operations CLI: index migrations and
// publishing test events to the place resolution stream.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/georef-api/internal/config"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for georefctl.
var rootCmd = &cobra.Command{
	Use:           "georefctl",
	Short:         "Operations tooling for georef-api",
	SilenceUsage:  true,
	SilenceErrors: true,
	Long: `georefctl manages the georef-api index database and talks to the
place resolution worker through Redis Streams.

Configuration is read the same way the services read it: an optional .env
file (see --env-file) overlaid by environment variables.`,
}

func init() {
	rootCmd.PersistentFlags().String("env-file", ".env", "env file with service configuration")
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version of georefctl",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("georefctl %s\n", version)
		},
	})
}

// loadConfig reads service configuration using the --env-file flag.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("env-file")
	return config.LoadFile(path)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
