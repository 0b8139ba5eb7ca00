package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/pborges/ogal/internal/gal"
	"github.com/pborges/ogal/internal/hdl"
	"github.com/pborges/ogal/internal/jed"
)

var (
	buildOut    string
	buildHeader []string
)

var buildCmd = &cobra.Command{
	Use:   "build source...",
	Short: "Compile sources into JEDEC files",
	Long: `Build compiles each source into a JEDEC file next to it, replacing
the extension with .jed. Several sources are compiled in parallel; -o
names the output when a single source is given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if buildOut != "" && len(args) > 1 {
			return errors.New("-o needs exactly one source")
		}
		opts, err := compileOptions()
		if err != nil {
			return err
		}
		cfg, err := chipConfig()
		if err != nil {
			return err
		}

		var g errgroup.Group
		g.SetLimit(runtime.NumCPU())
		for _, src := range args {
			src := src
			out := outOrDefault(buildOut, src, ".jed")
			g.Go(func() error {
				return buildOne(src, out, opts, cfg)
			})
		}
		return g.Wait()
	},
}

func init() {
	buildCmd.Flags().StringVarP(&buildOut, "out", "o", "", "output JEDEC file")
	buildCmd.Flags().StringArrayVar(&buildHeader, "header", nil, "comment line to add to the JEDEC file (repeatable)")
	rootCmd.AddCommand(buildCmd)
}

func buildOne(src, out string, opts hdl.Options, cfg gal.Config) error {
	tables, err := compileFile(src, opts)
	if err != nil {
		return err
	}
	fuses, err := gal.Build(tables, cfg)
	if err != nil {
		return errors.Wrap(err, src)
	}
	text := jed.MakeJEDEC(jed.Config{Header: buildHeader}, fuses)
	logger.Printf("%s: %d outputs on %s", src, len(tables), cfg.Name)
	return writeOutput(out, []byte(text))
}

// sourceError ties a front-end error to the file it came from.
type sourceError struct {
	path string
	src  []byte
	err  error
}

func (e *sourceError) Error() string { return e.path + ": " + e.err.Error() }
func (e *sourceError) Unwrap() error { return e.err }
func (e *sourceError) Cause() error  { return e.err }

func compileFile(path string, opts hdl.Options) ([]gal.TableData, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	tables, err := hdl.Compile(src, opts)
	if err != nil {
		return nil, &sourceError{path: path, src: src, err: err}
	}
	return tables, nil
}

// writeOutput writes data to path, or to stdout when path is "-".
func writeOutput(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return errors.WithStack(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.WithStack(err)
	}
	logger.Printf("wrote %s (%s)", path, humanize.Bytes(uint64(len(data))))
	return nil
}

func replaceExt(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

func printError(w io.Writer, err error) {
	fmt.Fprintln(w, "error:", err)
	var se *sourceError
	if errors.As(err, &se) {
		if ex := hdl.Excerpt(se.src, se.err); ex != "" {
			fmt.Fprint(w, ex)
		}
	}
}
