package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/italianiuk/italianiuk-server/internal/config"
	"github.com/italianiuk/italianiuk-server/internal/domain"
	"github.com/italianiuk/italianiuk-server/internal/i18n"
	"github.com/italianiuk/italianiuk-server/internal/logger"
	"github.com/italianiuk/italianiuk-server/internal/metrics"
	"github.com/italianiuk/italianiuk-server/internal/present"
	"github.com/italianiuk/italianiuk-server/internal/service"
	"github.com/italianiuk/italianiuk-server/internal/store"
	"github.com/italianiuk/italianiuk-server/internal/validation"
)

// options holds the persistent flags shared by every command.
type options struct {
	dataPath string
	locale   string
	verbose  bool
}

// app is the loaded snapshot and the services built on it.
type app struct {
	store     *store.Store
	locale    domain.Locale
	directory *service.DirectoryService
	log       *logger.Logger
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "dirctl",
		Short:         "Inspect and validate the Italiani UK directory data",
		Long:          "dirctl runs the directory pipeline against a listing data file (or the embedded data) without starting the server.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.dataPath, "data", "", "listing data file (default: embedded data)")
	root.PersistentFlags().StringVarP(&opts.locale, "locale", "l", string(domain.DefaultLocale), "output locale (en or it)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging on stderr")

	root.AddCommand(
		newCitiesCmd(opts),
		newCityCmd(opts),
		newSearchCmd(opts),
		newValidateCmd(opts),
		newExportCmd(opts),
	)

	return root
}

func newLogger(opts *options, w io.Writer) *logger.Logger {
	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	return logger.New(logger.Config{
		Writer:      w,
		Format:      logger.FormatPretty,
		Environment: "development",
		Level:       level,
	})
}

// load opens the snapshot and builds the directory service.
func (o *options) load(cmd *cobra.Command) (*app, error) {
	locale, ok := domain.ParseLocale(o.locale)
	if !ok {
		return nil, fmt.Errorf("unknown locale %q (want en or it)", o.locale)
	}

	log := newLogger(o, cmd.ErrOrStderr())

	st, err := store.Open(o.dataPath, validation.New())
	if err != nil {
		return nil, err
	}
	log.Debug("listing snapshot loaded", "cities", st.CityCount(), "listings", st.ListingCount())

	tr, err := i18n.New()
	if err != nil {
		return nil, err
	}
	presenter := present.New(tr, present.Options{SuggestionEmail: config.DefaultSuggestionEmail})

	return &app{
		store:  st,
		locale: locale,
		directory: service.NewDirectoryService(st, presenter, metrics.New(), log.Logger, service.DirectoryOptions{
			PlaceholderImage: config.DefaultPlaceholderImage,
		}),
		log: log,
	}, nil
}
