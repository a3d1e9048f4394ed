package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/usestring/hargen/internal/cache"
	"github.com/usestring/hargen/internal/capindex"
	"github.com/usestring/hargen/pkg/clientgen"
	"github.com/usestring/hargen/pkg/harfile"
	"github.com/usestring/hargen/pkg/modelgen"
	"github.com/usestring/hargen/pkg/render"
)

// scopeFlags are the capture filters shared by all subcommands.
type scopeFlags struct {
	jq          string
	method      string
	host        string
	statusClass int
	validate    bool
}

func (f *scopeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.jq, "jq", "", "gojq expression over the captured calls")
	cmd.Flags().StringVar(&f.method, "method", "", "only this HTTP method")
	cmd.Flags().StringVar(&f.host, "host", "", "only this host (supports *.example.com)")
	cmd.Flags().IntVar(&f.statusClass, "status-class", 0, "only this status class (2 for 2xx, ...)")
	cmd.Flags().BoolVar(&f.validate, "validate", false, "validate captures against the HAR schema")
}

// loadCalls reads one or more HAR files and applies the scope filters.
func (f *scopeFlags) loadCalls(ctx context.Context, paths []string) ([]harfile.CapturedCall, error) {
	var opts []harfile.Option
	if f.validate || cfg.ValidateHAR {
		opts = append(opts, harfile.WithValidation())
	}
	if cfg.MaxCallsPerCapture > 0 {
		opts = append(opts, harfile.WithMaxCalls(cfg.MaxCallsPerCapture))
	}
	if cfg.MaxBodyBytes > 0 {
		opts = append(opts, harfile.WithMaxBodyBytes(cfg.MaxBodyBytes))
	}

	loadCtx, cancel := context.WithTimeout(ctx, cfg.LoadTimeout)
	defer cancel()

	calls, err := harfile.LoadAll(loadCtx, paths, opts...)
	if err != nil {
		return nil, err
	}

	if f.jq != "" {
		calls, err = harfile.FilterJQ(calls, f.jq)
		if err != nil {
			return nil, fmt.Errorf("bad jq expression: %w", err)
		}
	}

	if f.method == "" && f.host == "" && f.statusClass == 0 {
		return calls, nil
	}

	idx := capindex.Build(calls)
	return idx.Calls(capindex.Scope{
		Method:      f.method,
		Host:        f.host,
		StatusClass: f.statusClass,
	}), nil
}

// writeOutput writes source text to the given path, or stdout when empty.
func writeOutput(out, source string) error {
	if out == "" {
		_, err := fmt.Print(source)
		return err
	}
	return os.WriteFile(out, []byte(source), 0644)
}

func newModelsCmd() *cobra.Command {
	var (
		scope scopeFlags
		lang  string
		out   string
	)

	cmd := &cobra.Command{
		Use:   "models <capture.har> [more.har...]",
		Short: "Infer data models from the JSON responses in a capture",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := render.New(lang)
			if err != nil {
				return err
			}

			calls, err := scope.loadCalls(cmd.Context(), args)
			if err != nil {
				return err
			}

			gen := modelgen.NewGenerator(
				modelgen.WithReservedWords(renderer.ReservedWords()),
				modelgen.WithBodyCache(newBodyCache()),
			)
			table, err := gen.GenerateModels(calls)
			if err != nil {
				return err
			}

			return writeOutput(out, renderer.ModelFile(table))
		},
	}

	scope.register(cmd)
	cmd.Flags().StringVar(&lang, "lang", cfgLanguage(), "target language (python or go)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}

func newClientCmd() *cobra.Command {
	var (
		scope      scopeFlags
		lang       string
		out        string
		clientName string
		annotate   bool
	)

	cmd := &cobra.Command{
		Use:   "client <capture.har> [more.har...]",
		Short: "Synthesize a replayable HTTP client from a capture",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := render.New(lang)
			if err != nil {
				return err
			}

			calls, err := scope.loadCalls(cmd.Context(), args)
			if err != nil {
				return err
			}

			bodyCache := newBodyCache()
			opts := []clientgen.Option{
				clientgen.WithClientName(clientName),
				clientgen.WithBodyCache(bodyCache),
			}
			if annotate {
				mgen := modelgen.NewGenerator(
					modelgen.WithReservedWords(renderer.ReservedWords()),
					modelgen.WithBodyCache(bodyCache),
				)
				table, err := mgen.GenerateModels(calls)
				if err != nil {
					return err
				}
				opts = append(opts, clientgen.WithModels(table))
			}

			cgen := clientgen.NewGenerator(opts...)
			def, err := cgen.Generate(calls)
			if err != nil {
				return err
			}

			return writeOutput(out, renderer.Client(def))
		},
	}

	scope.register(cmd)
	cmd.Flags().StringVar(&lang, "lang", cfgLanguage(), "target language (python or go)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&clientName, "name", "HarClient", "generated client type name")
	cmd.Flags().BoolVar(&annotate, "annotate", true, "annotate methods with model return types")
	return cmd
}

func newEndpointsCmd() *cobra.Command {
	var scope scopeFlags

	cmd := &cobra.Command{
		Use:   "endpoints <capture.har> [more.har...]",
		Short: "List the client methods a capture would generate",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			calls, err := scope.loadCalls(cmd.Context(), args)
			if err != nil {
				return err
			}

			idx := capindex.Build(calls)
			for _, ep := range idx.Endpoints(capindex.Scope{}) {
				fmt.Printf("%-40s %-6s calls=%-4d %s\n", ep.Name, ep.Method, ep.CallCount, ep.URL)
			}
			return nil
		},
	}

	scope.register(cmd)
	return cmd
}

func newBodyCache() modelgen.BodyCache {
	c, err := cache.NewBodyCache(cfg.BodyCacheMaxItems)
	if err != nil {
		return nil
	}
	return c
}

func cfgLanguage() string {
	if cfg != nil {
		return cfg.Language
	}
	return "python"
}
