package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/brpctl/internal/cache"
	"github.com/blackwell-systems/brpctl/internal/config"
	"github.com/blackwell-systems/brpctl/internal/content"
	"github.com/blackwell-systems/brpctl/internal/logger"
	"github.com/blackwell-systems/brpctl/internal/plan"
	"github.com/blackwell-systems/brpctl/internal/store"
	"github.com/blackwell-systems/brpctl/internal/util"
)

var (
	cfg      *config.Config
	log      *slog.Logger
	cacheMgr *cache.Manager
	fetcher  *content.Fetcher
	db       *store.Store

	flagNoColor       bool
	flagNoInteractive bool
	flagConfig        string
	flagProfile       string
	flagLogLevel      string

	// now is replaced in tests.
	now = time.Now
)

var rootCmd = &cobra.Command{
	Use:   "brpctl",
	Short: "Follow a multi-track Bible reading plan from the terminal",
	Long: `brpctl assigns every reading track a chapter for each day and fetches
the chapter text through a local cache.

A track is an ordered list of books read as one repeating cycle. Each
profile has its own tracks and start date.

Run 'brpctl today' to see today's readings.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called from main.
func Execute() {
	defer closeStore()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error:"), err)
		closeStore()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagNoInteractive, "no-interactive", false, "Disable interactive TUI mode")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/brpctl/config.yml)")
	rootCmd.PersistentFlags().StringVar(&flagProfile, "profile", "", "Profile to use (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Diagnostic log level: debug, info, warn, error")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		util.InitColor(flagNoColor)

		var err error
		cfg, err = config.Load(flagConfig)
		if err != nil {
			// init must be able to repair a broken config.
			if cmd.Name() != "init" {
				return fmt.Errorf("loading config: %w", err)
			}
			cfg = config.Defaults()
		}

		level := cfg.Log.Level
		if flagLogLevel != "" {
			level = flagLogLevel
		}
		lvl, err := logger.ParseLevel(level)
		if err != nil {
			return err
		}
		log = logger.New(logger.Config{Format: cfg.Log.Format, Level: lvl})

		cacheMgr = cache.New(cfg.Defaults.CacheDir, cfg.Source.Translation)
		client := content.New(cfg.Source.APIBase, cfg.Source.Version, cfg.Source.TimeoutDuration())
		fetcher = content.NewFetcher(cacheMgr, client, log)
		return nil
	}

	rootCmd.AddCommand(
		newInitCmd(),
		newTodayCmd(),
		newReadCmd(),
		newDatesCmd(),
		newTracksCmd(),
		newBooksCmd(),
		newProfilesCmd(),
		newCacheCmd(),
		newVersionCmd(),
		newCompletionCmd(),
	)
}

// openStore opens the reading-state database once per process.
func openStore() (*store.Store, error) {
	if db != nil {
		return db, nil
	}
	if err := util.EnsureParentDir(cfg.Defaults.DBPath); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	s, err := store.Open(cfg.Defaults.DBPath, log)
	if err != nil {
		return nil, err
	}
	db = s
	return db, nil
}

func closeStore() {
	if db != nil {
		_ = db.Close()
		db = nil
	}
}

// profileName returns --profile or the configured default.
func profileName() string {
	if flagProfile != "" {
		return flagProfile
	}
	return cfg.Defaults.Profile
}

// currentProfile opens the store and returns the active profile, creating it
// with the default tracks on first use.
func currentProfile(ctx context.Context) (*store.Store, *store.Profile, error) {
	s, err := openStore()
	if err != nil {
		return nil, nil, err
	}
	p, created, err := s.EnsureProfile(ctx, profileName())
	if err != nil {
		return nil, nil, fmt.Errorf("loading profile: %w", err)
	}
	if created {
		ok("Created profile %q with the default tracks", p.Name)
	}
	return s, p, nil
}

// today returns the current date in the configured zone.
func today() time.Time {
	return plan.Today(now(), cfg.Defaults.UTCOffset)
}

// ok prints a green success line.
func ok(format string, a ...interface{}) {
	fmt.Println(color.GreenString("✓"), fmt.Sprintf(format, a...))
}

// warn prints a yellow warning line.
func warn(format string, a ...interface{}) {
	fmt.Fprintln(os.Stderr, color.YellowString("!"), fmt.Sprintf(format, a...))
}

// header prints a cyan section heading.
func header(format string, a ...interface{}) {
	fmt.Println(color.CyanString(fmt.Sprintf(format, a...)))
}
