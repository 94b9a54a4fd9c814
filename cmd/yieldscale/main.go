// Command yieldscale rescales recipe yield text from the command line.
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/yieldscale/backend/internal/usecase"
)

// Version is overridden by ldflags at build time
var Version = "1.0.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "yieldscale",
		Short:         "Rescale recipe yields",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.AddCommand(newScaleCmd(), newFractionCmd(), newVersionCmd())
	return rootCmd
}

type scaleOutput struct {
	Original string  `json:"original"`
	Scaled   string  `json:"scaled"`
	Scale    float64 `json:"scale"`
}

func newScaleCmd() *cobra.Command {
	var (
		scale      float64
		plain      bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "scale [text...]",
		Short: "Scale the first quantity in a yield string",
		Long: `Scale the first number in a yield string, e.g. "4 servings" or "1 1/2 loaves".

With no arguments each line of standard input is scaled.`,
		Example: `  yieldscale scale --scale 2 "3 servings"
  yieldscale scale --scale 0.5 --plain "1 1/2 cups"
  cat yields.txt | yieldscale scale --scale 3`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !usecase.IsValidScale(scale) {
				return fmt.Errorf("--scale must be a positive number, got %v", scale)
			}

			emit := func(text string) error {
				scaled := usecase.RescaleYield(text, scale, !plain)
				if jsonOutput {
					return writeJSON(cmd.OutOrStdout(), scaleOutput{Original: text, Scaled: scaled, Scale: scale})
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout(), scaled)
				return err
			}

			if len(args) > 0 {
				return emit(strings.Join(args, " "))
			}

			scanner := bufio.NewScanner(cmd.InOrStdin())
			for scanner.Scan() {
				if err := emit(scanner.Text()); err != nil {
					return err
				}
			}
			return scanner.Err()
		},
	}

	cmd.Flags().Float64VarP(&scale, "scale", "s", 1, "Scale factor")
	cmd.Flags().BoolVar(&plain, "plain", false, "Render fractions as plain text (\"1 1/2\") instead of markup")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output JSON")

	return cmd
}

func newFractionCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "fraction <value>",
		Short: "Approximate a decimal as a mixed fraction",
		Long:  "Approximate a non-negative decimal below 2^53 as a whole number plus a fraction.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid number %q: %w", args[0], err)
			}
			if math.IsNaN(x) || x < 0 || x >= usecase.MaxExactWhole {
				return fmt.Errorf("value must be between 0 and %d, got %s", int64(usecase.MaxExactWhole), args[0])
			}

			frac := usecase.LowestFraction(x)
			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), frac)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), frac.String())
			return err
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output JSON")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "yieldscale version %s\n", Version)
		},
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
