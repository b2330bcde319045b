package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	taskbookmarks "github.com/alx-zhu/task-bookmarks"
	"github.com/alx-zhu/task-bookmarks/internal/platform"
	"github.com/alx-zhu/task-bookmarks/pkg/query"
)

var (
	verbose    bool
	storePath  string
	adapter    string
	configPath string
	noSeed     bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "taskbm",
	Short: "Task-grouped bookmarks with a keyboard-first workflow",
	Long: `taskbm manages bookmarks grouped under tasks, the same store the
browser overlay reads and writes. Collections live as JSON under a local
store directory (or a bbolt database with --adapter bolt).`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&storePath, "store", "", "Store location (default ~/.taskbm)")
	rootCmd.PersistentFlags().StringVar(&adapter, "adapter", "", "Storage adapter: fs or bolt")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.taskbm.yaml)")
	rootCmd.PersistentFlags().BoolVar(&noSeed, "no-seed", false, "Start fresh collections empty instead of with the starter dataset")
}

// newClient resolves config file and flags into a data client. Flags
// win over the config file.
func newClient() (*query.Client, error) {
	home, _ := os.UserHomeDir()

	cfgPath := configPath
	if cfgPath == "" && home != "" {
		cfgPath = filepath.Join(home, ".taskbm.yaml")
	}
	cfg, err := platform.LoadConfig(cfgPath)
	if err != nil {
		return nil, err
	}

	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	opts = append(opts, taskbookmarks.WithLogger(slog.Default()))

	if adapter != "" {
		opts = append(opts, taskbookmarks.WithAdapter(adapter))
	}
	if noSeed {
		opts = append(opts, taskbookmarks.WithNoSeed(true))
	}

	uri := storePath
	if uri == "" {
		uri = cfg.Store
	}
	if uri == "" {
		if home == "" {
			return nil, fmt.Errorf("cannot resolve home directory; pass --store")
		}
		uri = filepath.Join(home, ".taskbm")
	}

	return taskbookmarks.New(uri, opts...)
}

func fatal(msg string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
	os.Exit(1)
}
