package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/pborges/ogal/internal/gal"
	"github.com/pborges/ogal/internal/jed"
)

var tdOut string

var tdCmd = &cobra.Command{
	Use:   "td source",
	Short: "Write the truth tables of a source as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := compileOptions()
		if err != nil {
			return err
		}
		tables, err := compileFile(args[0], opts)
		if err != nil {
			return err
		}
		data, err := gal.MarshalTables(tables)
		if err != nil {
			return err
		}
		return writeOutput(outOrDefault(tdOut, args[0], ".json"), data)
	},
}

var td2jedecCmd = &cobra.Command{
	Use:   "td2jedec tables.json",
	Short: "Build a JEDEC file from truth tables written by td",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tables, err := readTables(args[0])
		if err != nil {
			return err
		}
		cfg, err := chipConfig()
		if err != nil {
			return err
		}
		fuses, err := gal.Build(tables, cfg)
		if err != nil {
			return errors.Wrap(err, args[0])
		}
		text := jed.MakeJEDEC(jed.Config{Header: buildHeader}, fuses)
		return writeOutput(outOrDefault(tdOut, args[0], ".jed"), []byte(text))
	},
}

func init() {
	for _, c := range []*cobra.Command{tdCmd, td2jedecCmd} {
		c.Flags().StringVarP(&tdOut, "out", "o", "", "output file, - for stdout")
	}
	td2jedecCmd.Flags().StringArrayVar(&buildHeader, "header", nil, "comment line to add to the JEDEC file (repeatable)")
	rootCmd.AddCommand(tdCmd, td2jedecCmd)
}

func readTables(path string) ([]gal.TableData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	tables, err := gal.UnmarshalTables(data)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return tables, nil
}

func outOrDefault(out, src, ext string) string {
	if out != "" {
		return out
	}
	if def := replaceExt(src, ext); def != src {
		return def
	}
	return src + ext
}
