package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/italianiuk/italianiuk-server/internal/domain"
	domainerrors "github.com/italianiuk/italianiuk-server/internal/errors"
	"github.com/italianiuk/italianiuk-server/internal/metrics"
	"github.com/italianiuk/italianiuk-server/internal/present"
	"github.com/italianiuk/italianiuk-server/internal/search"
	"github.com/italianiuk/italianiuk-server/internal/service"
	"github.com/italianiuk/italianiuk-server/internal/store"
	"github.com/italianiuk/italianiuk-server/internal/validation"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// === cities ===

func newCitiesCmd(opts *options) *cobra.Command {
	var text, category string

	cmd := &cobra.Command{
		Use:   "cities",
		Short: "List cities as the directory page shows them",
		Example: `  dirctl cities
  dirctl cities --cat delis -l it
  dirctl cities -q lon`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.load(cmd)
			if err != nil {
				return err
			}
			page := a.directory.Directory(cmd.Context(), a.locale, domain.NewQuery(category, text))
			return printDirectory(cmd.OutOrStdout(), page)
		},
	}

	cmd.Flags().StringVarP(&text, "query", "q", "", "city name or key fragment")
	cmd.Flags().StringVar(&category, "cat", string(domain.CategoryAll), "all, restaurants, delis or shops")

	return cmd
}

func printDirectory(w io.Writer, page *present.DirectoryPage) error {
	fmt.Fprintln(w, page.Summary)
	if page.Empty != nil {
		fmt.Fprintln(w, page.Empty.Message)
		return nil
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "\tKEY\tCITY\tTOTAL\tCATEGORIES")
	rows := func(marker string, cards []present.CityCard) {
		for _, c := range cards {
			badges := make([]string, 0, len(c.Badges))
			for _, b := range c.Badges {
				badges = append(badges, b.Label+" "+strconv.Itoa(b.Count))
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n", marker, c.Key, c.Label, c.Total, strings.Join(badges, ", "))
		}
	}
	rows("*", page.Featured)
	rows("", page.Remaining)
	return tw.Flush()
}

// === city ===

func newCityCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "city <key>",
		Short:   "Show the listings of one city",
		Example: "  dirctl city london -l it",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.load(cmd)
			if err != nil {
				return err
			}
			page, err := a.directory.City(cmd.Context(), a.locale, strings.ToLower(args[0]))
			if err != nil {
				return err
			}
			printCity(cmd.OutOrStdout(), page)
			return nil
		},
	}
}

func printCity(w io.Writer, page *present.CityPage) {
	fmt.Fprintf(w, "%s (%s)\n", page.Label, page.TotalText)
	for _, section := range page.Sections {
		fmt.Fprintf(w, "\n%s\n", section.Label)
		if section.ComingSoon != nil {
			fmt.Fprintf(w, "  %s\n", section.ComingSoon.Message)
			continue
		}
		for _, l := range section.Listings {
			fmt.Fprintf(w, "  - %s, %s\n    %s\n", l.Name, l.Address, l.Href)
		}
	}
}

// === search ===

func newSearchCmd(opts *options) *cobra.Command {
	var params search.SearchParams
	var category string

	cmd := &cobra.Command{
		Use:     "search [text]",
		Short:   "Full-text search over listings",
		Example: `  dirctl search pasta --city london`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.load(cmd)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				params.Query = args[0]
			}
			params.Category = domain.Category(strings.ToLower(category))

			res, err := runSearch(cmd.Context(), a, params)
			if err != nil {
				return err
			}
			return printSearch(cmd.OutOrStdout(), res)
		},
	}

	cmd.Flags().StringVar(&category, "cat", "", "restrict to a category")
	cmd.Flags().StringVar(&params.City, "city", "", "restrict to a city key")
	cmd.Flags().IntVarP(&params.Limit, "limit", "n", search.DefaultLimit, "max hits")

	return cmd
}

func runSearch(ctx context.Context, a *app, params search.SearchParams) (*search.SearchResult, error) {
	index, err := search.NewListingIndex(search.Options{Logger: a.log.Logger})
	if err != nil {
		return nil, err
	}
	defer index.Close()

	svc := service.NewSearchService(index, a.store, metrics.New(), a.log.Logger)
	if err := svc.Reindex(ctx); err != nil {
		return nil, err
	}
	return svc.Search(ctx, params)
}

func printSearch(w io.Writer, res *search.SearchResult) error {
	fmt.Fprintf(w, "%d hits\n", res.Total)
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tADDRESS")
	for _, h := range res.Hits {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", h.ID, h.Name, h.Address)
	}
	return tw.Flush()
}

// === validate ===

func newValidateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Check a listing data file",
		Long:  "Decodes the file strictly and validates every listing. Prints each problem and exits non-zero when any are found.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.dataPath
			if len(args) == 1 {
				path = args[0]
			}

			st, err := store.Open(path, validation.New())
			if err != nil {
				printProblems(cmd.ErrOrStderr(), err)
				return err
			}

			source := path
			if source == "" {
				source = "embedded data"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok, %d cities, %d listings\n", source, st.CityCount(), st.ListingCount())
			return nil
		},
	}
}

func printProblems(w io.Writer, err error) {
	var domainErr *domainerrors.Error
	if !errors.As(err, &domainErr) {
		return
	}
	problems, ok := domainErr.Details.(map[string]string)
	if !ok {
		return
	}
	for _, path := range slices.Sorted(maps.Keys(problems)) {
		fmt.Fprintf(w, "  %s: %s\n", path, problems[path])
	}
}

// === export ===

func newExportCmd(opts *options) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every listing as CSV or YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := opts.load(cmd)
			if err != nil {
				return err
			}
			switch format {
			case "csv":
				return exportCSV(cmd.OutOrStdout(), a.store)
			case "yaml":
				return exportYAML(cmd.OutOrStdout(), a.store)
			default:
				return fmt.Errorf("unknown format %q (want csv or yaml)", format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "csv", "csv or yaml")

	return cmd
}

var csvHeader = []string{"id", "city", "category", "slug", "name", "address", "short", "image", "website", "maps_url"} //nolint:gochecknoglobals // Fixed column order

func exportCSV(w io.Writer, st *store.Store) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, ref := range st.Listings() {
		l := ref.Listing
		record := []string{ref.ID(), ref.City, string(ref.Category), l.Slug, l.Name, l.Address, l.Short, l.Image, l.Website, l.MapsURL}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// exportYAML writes the snapshot in the data file layout, so the output can
// be loaded again with --data.
func exportYAML(w io.Writer, st *store.Store) error {
	cities := make(map[string]domain.CityBucket, st.CityCount())
	for _, key := range st.CityKeys() {
		bucket, _ := st.City(key)
		cities[key] = bucket
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(map[string]any{"cities": cities}); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}
