package main

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/schedtools/slurmspec/internal/config"
	"github.com/schedtools/slurmspec/internal/docmodel"
	"github.com/schedtools/slurmspec/internal/fetch"
	"github.com/schedtools/slurmspec/internal/spec"
	"github.com/spf13/cobra"
)

type generateOptions struct {
	url        string
	input      string
	serverURL  string
	output     string
	format     string
	expandRefs bool
	validate   bool
}

func newGenerateCmd() *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Fetch API documentation and write an OpenAPI specification",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.url, "url", config.DefaultDocsURL, "documentation URL to fetch")
	cmd.Flags().StringVar(&opts.input, "input", "", "read documentation from a local file instead of fetching")
	cmd.Flags().StringVar(&opts.serverURL, "server-url", "http://localhost:6820", "API server URL stamped into the spec")
	cmd.Flags().StringVar(&opts.output, "output", "openapi_spec_v44.json", "output file path")
	cmd.Flags().StringVar(&opts.format, "format", "json", "output format: json or yaml")
	cmd.Flags().BoolVar(&opts.expandRefs, "expand-refs", false, "expand $ref references to inline schemas")
	cmd.Flags().BoolVar(&opts.validate, "validate", false, "validate the generated spec against the OpenAPI 3.0 rules")

	return cmd
}

func runGenerate(ctx context.Context, opts generateOptions) error {
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if opts.format != "json" && opts.format != "yaml" {
		return fmt.Errorf("unknown format %q", opts.format)
	}

	var (
		data     []byte
		err      error
		markdown bool
	)
	if opts.input != "" {
		log.Info("reading documentation", "path", opts.input)
		data, err = os.ReadFile(opts.input)
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		ext := strings.ToLower(filepath.Ext(opts.input))
		markdown = ext == ".md" || ext == ".markdown"
	} else {
		log.Info("fetching documentation", "url", opts.url)
		data, err = fetch.NewClient(0).Get(ctx, opts.url)
		if err != nil {
			return err
		}
		markdown = strings.HasSuffix(strings.ToLower(opts.url), ".md")
	}

	var doc *docmodel.Document
	if markdown {
		doc, err = docmodel.ParseMarkdown(data)
	} else {
		doc, err = docmodel.Parse(bytes.NewReader(data))
	}
	if err != nil {
		return err
	}

	log.Info("parsing documentation")
	generated := spec.Generate(doc, spec.Options{
		ServerURL:  opts.serverURL,
		ExpandRefs: opts.expandRefs,
	})
	log.Info("parsed documentation",
		"endpoints", len(generated.Paths),
		"schemas", len(generated.Components.Schemas),
		"server_url", opts.serverURL,
	)

	if opts.validate {
		if err := generated.Validate(ctx); err != nil {
			return err
		}
		log.Info("spec validated")
	}

	f, err := os.Create(opts.output)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer f.Close()

	if opts.format == "yaml" {
		err = spec.EncodeYAML(f, generated)
	} else {
		err = spec.EncodeJSON(f, generated)
	}
	if err != nil {
		return err
	}

	log.Info("wrote specification", "path", opts.output)
	return nil
}
