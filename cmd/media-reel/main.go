package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"media-reel/internal/filesystem"
	"media-reel/internal/gallery"
	"media-reel/internal/inference"
	"media-reel/internal/startup"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "media-reel",
		Short:         "Serve a gallery of dated media rows from a directory tree",
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runServe(configPath)
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML config file (default: $CONFIG_FILE)")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP server",
			Args:  cobra.NoArgs,
			RunE: func(_ *cobra.Command, _ []string) error {
				return runServe(configPath)
			},
		},
		newIndexCmd(&configPath),
		&cobra.Command{
			Use:   "version",
			Short: "Print build information",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, _ []string) {
				info := startup.GetBuildInfo()
				fmt.Fprintf(cmd.OutOrStdout(), "media-reel %s (commit %s, built %s, %s %s/%s)\n",
					info.Version, info.Commit, info.BuildTime, info.GoVersion, info.OS, info.Arch)
			},
		},
	)

	return root
}

func newIndexCmd(configPath *string) *cobra.Command {
	var pretty bool

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Scan the media directory once and print the gallery JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := startup.LoadConfig(*configPath)
			if err != nil {
				return err
			}

			g, err := newIndexer(cfg).Build(cmd.Context())
			if err != nil {
				return fmt.Errorf("building gallery: %w", err)
			}

			out := cmd.OutOrStdout()
			if !pretty {
				pretty = isTerminal(out)
			}
			return writeGallery(out, g, pretty)
		},
	}
	cmd.Flags().BoolVar(&pretty, "pretty", false, "indent the output (default when stdout is a terminal)")

	return cmd
}

// newIndexer wires the gallery indexer and its inference engine from config.
func newIndexer(cfg *startup.Config) *gallery.Indexer {
	retry := filesystem.DefaultRetryConfig()
	retry.Timeout = cfg.ScanTimeout

	opts := inference.Options{
		Location:   cfg.Location,
		FutureSkew: cfg.UnixFutureSkew,
		Stat:       gallery.StatFunc(retry),
	}
	if cfg.EmbeddedDates {
		opts.Open = gallery.OpenFunc(retry)
	}

	return gallery.New(gallery.Options{
		MediaDir:         cfg.MediaDir,
		Categories:       cfg.Categories,
		HeroDir:          cfg.HeroDir,
		SidecarName:      cfg.SidecarName,
		GalleryURLPrefix: cfg.GalleryURLPrefix,
		HeroURLPrefix:    cfg.HeroURLPrefix,
		Workers:          cfg.ScanWorkers,
		Retry:            retry,
		Engine:           inference.New(opts),
	})
}

func writeGallery(w io.Writer, g gallery.Gallery, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(g)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
