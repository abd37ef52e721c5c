// Package cli provides the command-line interface for swatch.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/palette"
	"github.com/jmylchreest/swatch/internal/version"
)

// Environment variables consulted for flag defaults.
const (
	envColours  = "SWATCH_COLOURS"
	envSeedMode = "SWATCH_SEED_MODE"
)

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "swatch",
		Short: "Extract dominant colour palettes from images",
		Long: `swatch extracts a palette of dominant colours from an image.

The image is sampled onto a fixed grid, translucent pixels are dropped, and the
remaining colours are clustered with k-means in CIE Lab space. Each cluster is
reported as a hex colour with its share of the image.`,
		Version:      version.Short(),
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().Bool("log-json", false, "write logs as JSON")

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newExtractCmd())
	rootCmd.AddCommand(newBatchCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit, build date, Go version and platform of this binary.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := version.GetInfo()
			if !asJSON {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), info.String())
				return err
			}
			data, err := json.MarshalIndent(info, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode version: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print version information as JSON")

	return cmd
}

// newLogger builds the command logger from the persistent flags. Logs go to
// stderr so that stdout carries only the palette.
func newLogger(cmd *cobra.Command) hclog.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	quiet, _ := cmd.Flags().GetBool("quiet")
	jsonFormat, _ := cmd.Flags().GetBool("log-json")

	level := hclog.Warn
	switch {
	case verbose:
		level = hclog.Debug
	case quiet:
		level = hclog.Error
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:       "swatch",
		Output:     cmd.ErrOrStderr(),
		Level:      level,
		JSONFormat: jsonFormat,
		Color:      hclog.AutoColor,
	})
}

// defaultColours returns the colour count default, honouring SWATCH_COLOURS.
func defaultColours() int {
	if v := os.Getenv(envColours); v != "" {
		if n, err := strconv.Atoi(v); err == nil && palette.ValidateCount(n) == nil {
			return n
		}
	}
	return palette.DefaultColours
}

// defaultSeedMode returns the seed mode default, honouring SWATCH_SEED_MODE.
func defaultSeedMode() string {
	if v := os.Getenv(envSeedMode); v != "" {
		return v
	}
	return "random"
}
