package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/pborges/ogal"
	"github.com/pborges/ogal/internal/gal"
	"github.com/pborges/ogal/internal/hdl"
)

var (
	chipRef    string
	configPath string
	namesFirst bool
	countOrder string
	verbose    bool

	configs = gal.NewConfigCache()
	logger  = log.New(io.Discard, "ogal: ", 0)
)

var rootCmd = &cobra.Command{
	Use:   "ogal",
	Short: "Compile pin, table and boolean descriptions into GAL JEDEC files",
	Long: `ogal compiles a small hardware description language into the fuse map
of a GAL chip and writes it as a JEDEC file a device programmer accepts.

A source file declares pins, then describes each output either as a
boolean function or as a truth table:

    pin 13 = i0; pin 11 = i1; pin 17 = and;
    table(i0, i1 -> and) { 00 0  01 0  10 0  11 1 }
`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logger.SetOutput(os.Stderr)
		}
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&chipRef, "chip", "g22v10", "built-in chip layout")
	pf.StringVar(&configPath, "config", "", "JSON chip description, overrides --chip")
	pf.BoolVar(&namesFirst, "names-first", false, "read pin declarations as pin <name> = <number>;")
	pf.StringVar(&countOrder, "count-order", "row", "bit order of .count tables: row or column")
	pf.BoolVarP(&verbose, "verbose", "v", false, "log progress to stderr")

	rootCmd.AddCommand(versionCmd, devicesCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), ogal.Banner())
	},
}

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List the built-in chip layouts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range gal.Chips() {
			cfg, err := gal.ParseChip(name)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%-10s %2d pins %5d fuses %2d outputs\n",
				name, cfg.NumPins, cfg.NumFuses, len(cfg.Outputs))
		}
		return nil
	},
}

func compileOptions() (hdl.Options, error) {
	order, err := hdl.ParseCountOrder(countOrder)
	if err != nil {
		return hdl.Options{}, err
	}
	return hdl.Options{NamesFirst: namesFirst, CountOrder: order}, nil
}

func chipConfig() (gal.Config, error) {
	if configPath != "" {
		return configs.Load(configPath)
	}
	return configs.Load(chipRef)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}
