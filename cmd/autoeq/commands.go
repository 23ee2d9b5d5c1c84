package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/RMahshie/soundmax/internal/bootstrap"
	"github.com/RMahshie/soundmax/internal/catalog"
	"github.com/RMahshie/soundmax/internal/config"
	"github.com/RMahshie/soundmax/internal/curve"
	"github.com/RMahshie/soundmax/internal/fetcher"
	"github.com/RMahshie/soundmax/internal/processing"
	"github.com/RMahshie/soundmax/internal/storage"
	"github.com/RMahshie/soundmax/pkg/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// app carries state shared by all subcommands
type app struct {
	output  string
	verbose bool

	cfg     *config.Config
	catalog *catalog.Catalog

	newStore func(ctx context.Context, cfg *config.Config) (storage.ObjectStore, error)
}

type profileOutput struct {
	Headphone models.HeadphoneRef `json:"headphone" yaml:"headphone"`
	Locator   string              `json:"locator" yaml:"locator"`
	Bands     []models.BandGain   `json:"bands,omitempty" yaml:"bands,omitempty"`
	ErrorKind string              `json:"error_kind,omitempty" yaml:"error_kind,omitempty"`
	Error     string              `json:"error,omitempty" yaml:"error,omitempty"`
}

func newRootCmd() *cobra.Command {
	return (&app{newStore: bootstrap.NewObjectStore}).rootCmd()
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "autoeq",
		Short:         "Headphone correction curves resampled to a 10-band EQ",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
			switch a.output {
			case "text", "json", "yaml":
			default:
				return fmt.Errorf("unknown output format %q (want text, json or yaml)", a.output)
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			a.cfg = cfg

			a.catalog, err = bootstrap.NewCatalog(cfg)
			return err
		},
	}
	root.PersistentFlags().StringVarP(&a.output, "output", "o", "text", "output format: text, json or yaml")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(a.searchCmd(), a.getCmd(), a.batchCmd(), a.mirrorCmd())
	return root
}

func (a *app) searchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search [query]",
		Short: "Search the headphone catalog",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			matches := a.catalog.Search(query)

			if a.output != "text" {
				return a.encode(cmd.OutOrStdout(), matches)
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSOURCE\tTYPE")
			for _, h := range matches {
				fmt.Fprintf(w, "%s\t%s\t%s\n", h.Name, h.Source, h.Category.DisplayName())
			}
			return w.Flush()
		},
	}
}

func (a *app) getCmd() *cobra.Command {
	var source, category string

	cmd := &cobra.Command{
		Use:   "get <name>",
		Short: "Fetch one headphone's correction profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := a.resolve(args[0], source, category)
			if err != nil {
				return err
			}

			svc, err := a.service(cmd.Context())
			if err != nil {
				return err
			}

			// The fetch runs off the command goroutine; the command just waits
			res := <-svc.GetCorrectionAsync(cmd.Context(), ref)
			if err := a.printResults(cmd.OutOrStdout(), []processing.Result{res}); err != nil {
				return err
			}
			return res.Err
		},
	}
	cmd.Flags().StringVar(&source, "source", "", "measurement source (defaults to the catalog entry)")
	cmd.Flags().StringVar(&category, "type", "", "over-ear, in-ear or on-ear (defaults to the catalog entry)")
	return cmd
}

func (a *app) batchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "batch <name>...",
		Short: "Fetch correction profiles for several catalog headphones",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			refs := make([]models.HeadphoneRef, 0, len(args))
			for _, name := range args {
				ref, err := a.resolve(name, "", "")
				if err != nil {
					return err
				}
				refs = append(refs, ref)
			}

			svc, err := a.service(cmd.Context())
			if err != nil {
				return err
			}

			results := svc.GetCorrections(cmd.Context(), refs, a.cfg.Lookup.BatchConcurrency)
			if err := a.printResults(cmd.OutOrStdout(), results); err != nil {
				return err
			}

			failed := 0
			for _, res := range results {
				if res.Err != nil {
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d lookups failed", failed, len(results))
			}
			return nil
		},
	}
}

func (a *app) mirrorCmd() *cobra.Command {
	var only string

	cmd := &cobra.Command{
		Use:   "mirror",
		Short: "Copy catalog documents from the HTTP archive into the object-store mirror",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if a.cfg.Archive.Backend == config.BackendHTTP {
				return fmt.Errorf("mirror needs ARCHIVE_BACKEND=s3 or minio")
			}

			store, err := a.newStore(ctx, a.cfg)
			if err != nil {
				return err
			}

			locators := curve.NewLocatorBuilder(a.cfg.Archive.Root)
			source := fetcher.NewHTTPFetcher(nil)
			keys := fetcher.NewArchiveFetcher(store, locators.Root(), a.cfg.Archive.Prefix)

			copied, skipped := 0, 0
			for _, ref := range a.catalog.Search(only) {
				locator := locators.Build(ref)
				doc, err := source.Fetch(ctx, locator)
				if err != nil {
					log.Warn().Err(err).Str("headphone", ref.Name).Msg("Skipping document")
					skipped++
					continue
				}

				key, err := keys.ObjectKey(locator)
				if err != nil {
					return err
				}
				if err := store.PutObject(ctx, key, []byte(doc), "text/plain; charset=utf-8"); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "mirrored %s -> %s\n", ref.Name, key)
				copied++
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d copied, %d skipped\n", copied, skipped)
			return nil
		},
	}
	cmd.Flags().StringVar(&only, "match", "", "only mirror catalog entries whose name contains this text")
	return cmd
}

func (a *app) service(ctx context.Context) (processing.CorrectionService, error) {
	docFetcher, err := bootstrap.NewFetcher(ctx, a.cfg)
	if err != nil {
		return nil, err
	}
	// The CLI does not keep a lookup log
	return processing.NewCorrectionService(curve.NewLocatorBuilder(a.cfg.Archive.Root), docFetcher, nil), nil
}

// resolve builds a HeadphoneRef from the catalog, letting flags override
// or replace the catalog entry
func (a *app) resolve(name, source, category string) (models.HeadphoneRef, error) {
	ref, found := a.catalog.Find(name)
	if !found {
		if source == "" || category == "" {
			return ref, fmt.Errorf("%q is not in the catalog; pass --source and --type", name)
		}
		ref.Name = strings.TrimSpace(name)
	}

	if source != "" {
		ref.Source = source
	}
	if category != "" {
		c, err := models.ParseCategory(category)
		if err != nil {
			return ref, err
		}
		ref.Category = c
	}
	return ref, nil
}

func (a *app) printResults(w io.Writer, results []processing.Result) error {
	grid := models.TargetGrid()

	outputs := make([]profileOutput, len(results))
	for i, res := range results {
		out := profileOutput{Headphone: res.Ref, Locator: res.Locator.String()}
		if res.Err != nil {
			var e *processing.Error
			if errors.As(res.Err, &e) {
				out.ErrorKind, out.Error = string(e.Kind), e.Message()
			} else {
				out.Error = res.Err.Error()
			}
		} else {
			out.Bands = res.Profile.Bands(grid)
		}
		outputs[i] = out
	}

	if a.output != "text" {
		if len(outputs) == 1 {
			return a.encode(w, outputs[0])
		}
		return a.encode(w, outputs)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, out := range outputs {
		fmt.Fprintf(tw, "%s\n", out.Headphone)
		if out.Error != "" {
			fmt.Fprintf(tw, "  error:\t%s\n", out.Error)
			continue
		}
		for _, b := range out.Bands {
			fmt.Fprintf(tw, "  %s\t%+.2f dB\n", formatHz(b.FrequencyHz), b.GainDB)
		}
	}
	return tw.Flush()
}

func (a *app) encode(w io.Writer, v any) error {
	if a.output == "yaml" {
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(v)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatHz(hz float64) string {
	if hz >= 1000 {
		return fmt.Sprintf("%gk", hz/1000)
	}
	return fmt.Sprintf("%g", hz)
}
