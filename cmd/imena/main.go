package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/nauchpop/imena/pkg/imena"
	"github.com/nauchpop/imena/pkg/imena/config"
	"github.com/nauchpop/imena/pkg/imena/ingest"
	"github.com/nauchpop/imena/pkg/imena/internalerr"
)

var version = "0.1.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type options struct {
	configPath string
	envFile    string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "imena",
		Short: "Person name extraction for Russian popular-science texts",
		Long: `imena runs texts through an external morphological tagger, drops
common words and place names from the tagged candidates and adds known
full names found in the text.

Configuration is read from a YAML file (--config) and IMENA_* environment
variables. A .env file in the working directory is loaded first.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := godotenv.Load(opts.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("load %s: %w", opts.envFile, err)
			}
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file with IMENA_* overrides")

	rootCmd.AddCommand(extractCmd(opts))
	rootCmd.AddCommand(markupCmd(opts))
	rootCmd.AddCommand(uploadCmd(opts))
	rootCmd.AddCommand(processCmd(opts))
	rootCmd.AddCommand(listCmd(opts))
	return rootCmd
}

func extractCmd(opts *options) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "extract [text]",
		Short: "Print the names found in a text",
		Long: `Print the names found in a text, joined by ", ".

The text is taken from the arguments, from --file, or from stdin.

Example:
  imena extract "Вчера Иван Петров приехал в Москву."
  imena extract --file article.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(args, file, cmd.InOrStdin())
			if err != nil {
				return err
			}
			loader, err := newLoader(opts)
			if err != nil {
				return err
			}
			comp, err := loadComponents(loader)
			if err != nil {
				return err
			}
			res := comp.Pipeline.Extract(cmd.Context(), text)
			fmt.Fprintln(cmd.OutOrStdout(), res.String())
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "read text from file")
	return cmd
}

func markupCmd(opts *options) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "markup [text]",
		Short: "Print a text with found names wrapped in " + ingest.MarkOpen + "…" + ingest.MarkClose,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(args, file, cmd.InOrStdin())
			if err != nil {
				return err
			}
			loader, err := newLoader(opts)
			if err != nil {
				return err
			}
			comp, err := loadComponents(loader)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), comp.Pipeline.Markup(cmd.Context(), text))
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "read text from file")
	return cmd
}

func uploadCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "upload <file>...",
		Short: "Store text files for later processing",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), opts, false, func(svc *imena.Service) error {
				for _, path := range args {
					data, err := os.ReadFile(path)
					if err != nil {
						return err
					}
					info, err := svc.Upload(cmd.Context(), filepath.Base(path), data)
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", info.FileID, info.FileSize)
				}
				return nil
			})
		},
	}
}

func processCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "process [file-id]...",
		Short: "Extract names from uploaded files",
		Long: `Extract names from uploaded files and store the results under
processed/. Without arguments every uploaded file is processed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd.Context(), opts, true, func(svc *imena.Service) error {
				results, err := svc.Process(cmd.Context(), args)
				if err != nil {
					return err
				}
				for _, p := range results {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", p.FileID, p.ProcessedKey, p.Result.Status)
				}
				return nil
			})
		},
	}
}

func listCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list [prefix]",
		Short: "List stored documents",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefix := ""
			if len(args) > 0 {
				prefix = args[0]
			}
			return withService(cmd.Context(), opts, false, func(svc *imena.Service) error {
				keys, err := svc.List(cmd.Context(), prefix)
				if err != nil {
					return err
				}
				for _, k := range keys {
					fmt.Fprintln(cmd.OutOrStdout(), k)
				}
				return nil
			})
		},
	}
}

func newLoader(opts *options) (*config.Loader, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &config.Loader{Config: cfg}, nil
}

func loadComponents(loader *config.Loader) (*config.Components, error) {
	comp, err := loader.Load()
	if errors.Is(err, internalerr.ErrLexiconLoad) {
		// Nothing can be extracted without the word lists.
		log.Fatalf("imena: %v", err)
	}
	return comp, err
}

// withService runs fn against the configured store. The lexicon, morph
// dictionary and tagger are loaded only when extract is set; upload and
// list never touch them.
func withService(ctx context.Context, opts *options, extract bool, fn func(*imena.Service) error) error {
	loader, err := newLoader(opts)
	if err != nil {
		return err
	}
	svcOpts := imena.Options{Workers: loader.Config.Workers}
	if extract {
		comp, err := loadComponents(loader)
		if err != nil {
			return err
		}
		svcOpts.Pipeline = comp.Pipeline
	}
	svcOpts.Store, err = loader.OpenStore(ctx)
	if err != nil {
		return err
	}

	svc := imena.New(svcOpts)
	defer svc.Close()
	return fn(svc)
}

// readInput returns the text to work on: joined args, the named file, or
// all of stdin, in that order of preference.
func readInput(args []string, file string, stdin io.Reader) (string, error) {
	switch {
	case len(args) > 0:
		return strings.Join(args, " "), nil
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}
