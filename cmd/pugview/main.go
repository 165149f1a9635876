package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/goliatone/go-pugview/internal/prompt"
	"github.com/goliatone/go-pugview/pkg/options"
	"github.com/goliatone/go-pugview/pkg/render"
)

type cliConfig struct {
	templates   string
	template    string
	dataFile    string
	configFile  string
	engine      string
	output      string
	interactive bool
	verbose     bool
}

func main() {
	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatalf("invalid arguments: %v", err)
	}

	var driver prompt.Driver
	if cfg.interactive {
		driver = prompt.NewSurveyDriver()
	}

	if err := run(context.Background(), cfg, driver, os.Stdout); err != nil {
		log.Fatalf("Failed to render template: %v", err)
	}
}

func parseFlags(args []string) (cliConfig, error) {
	var cfg cliConfig
	fs := flag.NewFlagSet("pugview", flag.ContinueOnError)
	fs.StringVar(&cfg.templates, "templates", "", "template directory (falls back to templates.path in -config)")
	fs.StringVar(&cfg.template, "template", "", "template to render, relative to the template directory")
	fs.StringVar(&cfg.dataFile, "data", "", "YAML or JSON file holding template variables")
	fs.StringVar(&cfg.configFile, "config", "", "YAML file holding renderer options")
	fs.StringVar(&cfg.engine, "engine", "", "template engine (pug, ace, pongo2)")
	fs.StringVar(&cfg.output, "output", "", "output file (stdout if empty)")
	fs.BoolVar(&cfg.interactive, "interactive", false, "prompt for missing template, engine and variables")
	fs.BoolVar(&cfg.verbose, "verbose", false, "log engine selection and fetches")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func run(ctx context.Context, cfg cliConfig, driver prompt.Driver, stdout io.Writer) error {
	opts := options.New()
	if cfg.configFile != "" {
		loaded, err := options.LoadFile(cfg.configFile)
		if err != nil {
			return err
		}
		opts = loaded
	}
	if cfg.templates != "" {
		opts.Set(render.OptionTemplatesPath, cfg.templates)
	}

	data := map[string]any{}
	if cfg.dataFile != "" {
		loaded, err := options.LoadFile(cfg.dataFile)
		if err != nil {
			return fmt.Errorf("load data: %w", err)
		}
		data = loaded.Map()
	}

	engineName := cfg.engine
	if engineName == "" {
		engineName, _ = opts.String(render.OptionRenderer)
	}

	if driver != nil {
		dir, _ := opts.String(render.OptionTemplatesPath)
		if dir == "" {
			return errors.New("-interactive needs -templates or templates.path in -config")
		}
		req, err := prompt.Collect(ctx, driver, os.DirFS(dir), render.DefaultRegistry().List(), prompt.Request{
			Engine:   engineName,
			Template: cfg.template,
			Data:     data,
		})
		if err != nil {
			return err
		}
		engineName, cfg.template, data = req.Engine, req.Template, req.Data
	}

	if engineName != "" {
		opts.Set(render.OptionRenderer, engineName)
	}
	if cfg.template == "" {
		return errors.New("missing -template")
	}

	logger := zap.NewNop()
	if cfg.verbose {
		dev, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("build logger: %w", err)
		}
		defer func() { _ = dev.Sync() }()
		logger = dev
	}

	r, err := render.NewFromOptions(opts, nil, render.WithLogger(logger))
	if err != nil {
		return err
	}

	if cfg.output == "" {
		_, err := r.Render(stdout, cfg.template, data)
		return err
	}

	out, err := r.Fetch(cfg.template, data)
	if err != nil {
		return err
	}
	if err := os.WriteFile(cfg.output, []byte(out), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Fprintf(stdout, "Template written to %s\n", cfg.output)
	return nil
}
