// Command sysctl-docs parses kernel parameter documentation into the cache
// used by sysctl-control and inspects what is stored there.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/atomicstack/sysctl-control/internal/cache"
	"github.com/atomicstack/sysctl-control/internal/docs"
	"github.com/atomicstack/sysctl-control/internal/logging"
	"github.com/atomicstack/sysctl-control/internal/sysctl"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type rootOptions struct {
	cachePath string
	logFile   string
	trace     bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "sysctl-docs",
		Short: "Manage the kernel parameter documentation cache",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Configure(opts.logFile)
			logging.SetTraceEnabled(opts.trace)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logging.Sync()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.cachePath, "cache", "", "cache database (default is the user cache dir)")
	root.PersistentFlags().StringVar(&opts.logFile, "log-file", "", "path to the log file")
	root.PersistentFlags().BoolVar(&opts.trace, "trace", false, "enable verbose JSON trace logging")
	root.AddCommand(newParseCmd(opts), newShowCmd(opts), newLabelsCmd(opts), newDeleteCmd(opts))
	return root
}

func newParseCmd(root *rootOptions) *cobra.Command {
	var (
		base    string
		glob    string
		pattern string
		label   string
		dryRun  bool
	)
	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Parse a documentation tree and store it in the cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if base == "" {
				found, ok := sysctl.FindDocs(sysctl.DocsCandidates)
				if !ok {
					return fmt.Errorf("no documentation directory found; pass --base")
				}
				base = found
			}
			parser, err := docs.NewParser(glob, pattern)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			documents, err := parser.Parse(ctx, base)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			printSummary(out, documents)
			if dryRun {
				return nil
			}
			store, err := openCache(root.cachePath)
			if err != nil {
				return err
			}
			defer store.Close()
			if label == "" {
				label = parser.Label(base)
			}
			if err := store.Store(ctx, label, documents); err != nil {
				return err
			}
			fmt.Fprintf(out, "stored %d documents as %s in %s\n", len(documents), label, store.Path())
			return nil
		},
	}
	cmd.Flags().StringVar(&base, "base", "", "documentation directory (default searches the usual locations)")
	cmd.Flags().StringVar(&glob, "glob", sysctl.DefaultDocsGlob, "glob selecting documentation files")
	cmd.Flags().StringVar(&pattern, "pattern", sysctl.DefaultDocsPattern, "regular expression matching headings")
	cmd.Flags().StringVar(&label, "label", "", "cache label (default matches the one sysctl-control looks up)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "parse without storing")
	return cmd
}

func newShowCmd(root *rootOptions) *cobra.Command {
	var label string
	cmd := &cobra.Command{
		Use:   "show [filter]",
		Short: "Print the cached paragraph headings",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openCache(root.cachePath)
			if err != nil {
				return err
			}
			defer store.Close()
			ctx := cmd.Context()
			if label == "" {
				label, err = latestLabel(ctx, store)
				if err != nil {
					return err
				}
			}
			documents, err := store.Load(ctx, label)
			if err != nil {
				return err
			}
			filter := ""
			if len(args) == 1 {
				filter = strings.ToLower(args[0])
			}
			out := cmd.OutOrStdout()
			for _, doc := range documents {
				for _, paragraph := range doc.Paragraphs {
					heading := paragraph.Heading()
					if filter != "" && !strings.Contains(strings.ToLower(heading), filter) {
						continue
					}
					fmt.Fprintf(out, "%s\t%s\n", heading, doc.Path)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&label, "label", "", "cache label (default is the most recent)")
	return cmd
}

func newLabelsCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "labels",
		Short: "List cached documentation trees",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openCache(root.cachePath)
			if err != nil {
				return err
			}
			defer store.Close()
			entries, err := store.Labels(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, entry := range entries {
				fmt.Fprintf(out, "%s\t%s\n", entry.StoredAt.UTC().Format(time.RFC3339), entry.Label)
			}
			return nil
		},
	}
}

func newDeleteCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <label>...",
		Short: "Remove cached documentation trees",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openCache(root.cachePath)
			if err != nil {
				return err
			}
			defer store.Close()
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			for _, label := range args {
				if err := store.Delete(ctx, label); err != nil {
					return err
				}
				fmt.Fprintf(out, "deleted %s\n", label)
			}
			return nil
		},
	}
}

func printSummary(out io.Writer, documents []docs.Document) {
	paragraphs := 0
	for _, doc := range documents {
		paragraphs += len(doc.Paragraphs)
		fmt.Fprintf(out, "%s: %d paragraphs\n", doc.Path, len(doc.Paragraphs))
	}
	fmt.Fprintf(out, "%d documents, %d paragraphs\n", len(documents), paragraphs)
}

func latestLabel(ctx context.Context, store *cache.Cache) (string, error) {
	entries, err := store.Labels(ctx)
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return "", fmt.Errorf("cache %s is empty", store.Path())
	}
	return entries[0].Label, nil
}

func openCache(path string) (*cache.Cache, error) {
	if path == "" {
		resolved, err := cache.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = resolved
	}
	return cache.Open(path)
}
