// Command ras inspects, queries and converts RAS documents.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/raspy-format/ras"
)

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "ras:", err)
		os.Exit(1)
	}
}

// env is the state shared by all commands once flags and config are loaded.
type env struct {
	cfg    Config
	logger *slog.Logger
	parser *ras.Parser
}

func newApp(stdout, stderr io.Writer) *cli.App {
	e := &env{}

	return &cli.App{
		Name:      "ras",
		Usage:     "inspect, query and convert RAS documents",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "path to a TOML config file",
				EnvVars: []string{"RAS_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error (overrides the config file)",
			},
		},
		Before: func(c *cli.Context) error {
			return e.setup(c, stderr)
		},
		Commands: []*cli.Command{
			{
				Name:      "get",
				Usage:     "print one value",
				ArgsUsage: "FILE LIST ITEM SUB_ITEM",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "type", Aliases: []string{"t"}, Usage: "print the value kind before the value"},
				},
				Action: e.get,
			},
			{
				Name:      "convert",
				Usage:     "convert a RAS file to JSON, YAML or TOML",
				ArgsUsage: "FILE",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "to", Usage: "output format: json, yaml or toml (default from config)"},
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output path (default stdout)"},
				},
				Action: e.convert,
			},
			{
				Name:      "lists",
				Usage:     "list the names, record counts and lines of all lists",
				ArgsUsage: "FILE",
				Action:    e.lists,
			},
			{
				Name:      "check",
				Usage:     "parse files and report the first error",
				ArgsUsage: "FILE...",
				Action:    e.check,
			},
		},
	}
}

func (e *env) setup(c *cli.Context, stderr io.Writer) error {
	cfg, err := LoadConfig(c.String("config"))
	if err != nil {
		return err
	}
	if lvl := c.String("log-level"); lvl != "" {
		cfg.LogLevel = lvl
	}

	level, err := parseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}

	e.cfg = cfg
	e.logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	e.parser = ras.NewParser().
		WithMaxLineSize(cfg.MaxLineSize).
		WithBoolTokens(cfg.TrueToken, cfg.FalseToken).
		WithLogger(e.logger)
	return nil
}

func (e *env) get(c *cli.Context) error {
	if c.Args().Len() != 4 {
		return fmt.Errorf("get: want 4 arguments (FILE LIST ITEM SUB_ITEM), got %d", c.Args().Len())
	}
	path, list := c.Args().Get(0), c.Args().Get(1)

	item, err := strconv.Atoi(c.Args().Get(2))
	if err != nil {
		return fmt.Errorf("get: item index: %w", err)
	}
	sub, err := strconv.Atoi(c.Args().Get(3))
	if err != nil {
		return fmt.Errorf("get: sub-item index: %w", err)
	}

	doc, err := e.parser.Load(path)
	if err != nil {
		return err
	}
	v, err := doc.Get(list, item, sub)
	if err != nil {
		return err
	}

	if c.Bool("type") {
		_, err = fmt.Fprintf(c.App.Writer, "%s\t%s\n", v.Kind(), v)
		return err
	}
	_, err = fmt.Fprintln(c.App.Writer, v)
	return err
}

func (e *env) convert(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("convert: want 1 argument (FILE), got %d", c.Args().Len())
	}
	src := c.Args().First()

	name := c.String("to")
	if name == "" {
		name = e.cfg.Format
	}
	format, err := ras.ParseFormat(name)
	if err != nil {
		return err
	}

	out := c.String("out")
	if out != "" {
		if err := e.parser.ConvertFile(src, out, format); err != nil {
			return err
		}
		e.logger.Info("converted", "src", src, "dst", out, "format", format)
		return nil
	}

	doc, err := e.parser.Load(src)
	if err != nil {
		return err
	}
	return ras.Encode(c.App.Writer, doc, format)
}

func (e *env) lists(c *cli.Context) error {
	if c.Args().Len() != 1 {
		return fmt.Errorf("lists: want 1 argument (FILE), got %d", c.Args().Len())
	}

	doc, err := e.parser.Load(c.Args().First())
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "LIST\tRECORDS\tLINE")
	for _, l := range doc.Lists() {
		fmt.Fprintf(tw, "%s\t%d\t%d\n", l.Name(), l.Len(), l.Line())
	}
	return tw.Flush()
}

func (e *env) check(c *cli.Context) error {
	if c.Args().Len() == 0 {
		return fmt.Errorf("check: want at least one FILE")
	}

	for _, path := range c.Args().Slice() {
		doc, err := e.parser.Load(path)
		if err != nil {
			return err
		}
		e.logger.Debug("checked", "file", path, "lists", doc.Len())
		fmt.Fprintf(c.App.Writer, "%s: ok (%d lists)\n", path, doc.Len())
	}
	return nil
}
