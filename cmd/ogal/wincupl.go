package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/pborges/ogal/internal/gal"
	"github.com/pborges/ogal/internal/wincupl"
)

var (
	wincuplOut    string
	wincuplHeader []string
)

var wincuplCmd = &cobra.Command{
	Use:   "wincupl source|tables.json",
	Short: "Translate a source or truth table JSON into WinCUPL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			tables []gal.TableData
			err    error
		)
		if strings.EqualFold(replaceExt(args[0], ".json"), args[0]) {
			tables, err = readTables(args[0])
		} else {
			opts, oerr := compileOptions()
			if oerr != nil {
				return oerr
			}
			tables, err = compileFile(args[0], opts)
		}
		if err != nil {
			return err
		}
		text, err := wincupl.Export(tables, strings.Join(wincuplHeader, "\n"))
		if err != nil {
			return err
		}
		return writeOutput(outOrDefault(wincuplOut, args[0], ".pld"), []byte(text))
	},
}

func init() {
	wincuplCmd.Flags().StringVarP(&wincuplOut, "out", "o", "", "output file, - for stdout")
	wincuplCmd.Flags().StringArrayVar(&wincuplHeader, "header", nil, "line to copy in front of the pin list (repeatable)")
	rootCmd.AddCommand(wincuplCmd)
}
