package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/gosuri/uitable"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ensigniasec/countdown/internal/config"
	"github.com/ensigniasec/countdown/internal/countdown"
	"github.com/ensigniasec/countdown/internal/selector"
	"github.com/ensigniasec/countdown/internal/tui"
)

//nolint:gochecknoglobals // Cobra requires package-level vars for flag bindings in current structure.
var (
	// Version metadata populated at build time via -ldflags.
	releaseVersion = "dev"
	commit         = "none"
	date           = "unknown"

	// Used for flags.
	configFile = config.DefaultPath
	verbose    bool
	jsonOutput bool
	dateFlag   string
	timeFlag   string
	startNow   bool

	rootCmd = &cobra.Command{
		Use:   "countdown",
		Short: "A terminal countdown to a single deadline.",
		Long:  `Pick a date and a time of day and watch the days, hours, minutes and seconds left tick down. The display turns urgent under an hour, critical under ten minutes, and announces when time is up.`,
		Args:  cobra.NoArgs,
		Run:   runInteractive,
	}
)

//nolint:gochecknoinits // Cobra command wiring performed in init in current structure.
func init() {
	// Route logs to stderr to avoid polluting stdout, especially for --json output.
	logrus.SetOutput(os.Stderr)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable detailed logging output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output the remaining time in JSON format instead of text")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", config.DefaultPath, "Path to the settings file")

	rootCmd.Flags().StringVar(&dateFlag, "date", "", "Optional: preselect the deadline date (YYYY-MM-DD)")
	rootCmd.Flags().StringVar(&timeFlag, "time", "", "Optional: preselect the deadline time of day (HH:MM, 24h)")
	rootCmd.Flags().BoolVar(&startNow, "start", false, "Start counting down immediately (requires --date)")

	for _, c := range []*cobra.Command{watchCmd, remainingCmd} {
		c.Flags().StringVar(&dateFlag, "date", "", "Deadline date (YYYY-MM-DD)")
		c.Flags().StringVar(&timeFlag, "time", "", "Deadline time of day (HH:MM, 24h). Defaults to the configured default_time")
		_ = c.MarkFlagRequired("date")
	}

	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(remainingCmd)
	rootCmd.AddCommand(configCmd)

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)

	// Built-in version flag: set version string and a custom template.
	rootCmd.Version = releaseVersion
	rootCmd.Annotations = map[string]string{"commit": commit, "date": date}
	rootCmd.SetVersionTemplate("{{printf \"%s %s\\ncommit: %s\\ndate: %s\\n\" .DisplayName .Version (index .Annotations \"commit\") (index .Annotations \"date\")}}")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Fatal(err)
	}
}

func main() {
	Execute()
}

// setLogLevel applies --verbose.
func setLogLevel() {
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}
}

// loadSettings reads the settings file, falling back to defaults.
func loadSettings() config.Settings {
	c, err := config.NewConfig(configFile)
	if err != nil {
		logrus.Warnf("Unable to read config %s, using defaults: %v", configFile, err)
		return config.Defaults()
	}
	return c.Settings
}

// selectionFromFlags builds the form selection from --date and --time.
func selectionFromFlags(settings config.Settings) (selector.Selection, error) {
	sel := selector.New(settings.DefaultTime)
	if timeFlag != "" {
		sel = sel.WithTime(timeFlag)
	}
	if dateFlag == "" {
		return sel, nil
	}
	d, err := selector.ParseDate(dateFlag, time.Local)
	if err != nil {
		return sel, err
	}
	return sel.WithDate(d), nil
}

// deadlineFromFlags confirms --date and --time into a deadline.
func deadlineFromFlags(settings config.Settings) (time.Time, error) {
	sel, err := selectionFromFlags(settings)
	if err != nil {
		return time.Time{}, err
	}
	return sel.Confirm(time.Local)
}

func runInteractive(cmd *cobra.Command, _ []string) {
	if jsonOutput {
		logrus.Fatal("Cannot use --json with the interactive timer; use `countdown remaining --json`")
	}
	setLogLevel()

	settings := loadSettings()
	sel, err := selectionFromFlags(settings)
	if err != nil {
		logrus.Fatal(err)
	}
	if startNow && !sel.CanConfirm() {
		logrus.Fatal("--start requires --date")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	if err := tui.Run(ctx, tui.Options{Settings: settings, Selection: sel, Start: startNow}); err != nil {
		logrus.Fatalf("TUI mode failed: %v", err)
	}
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print the remaining time every second until the deadline passes",
	Long:  "Count down to a deadline without the interactive interface. On a terminal the line is redrawn in place; otherwise one line is written per second.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if jsonOutput {
			logrus.Fatal("Cannot use --json with watch; use `countdown remaining --json`")
		}
		setLogLevel()

		settings := loadSettings()
		deadline, err := deadlineFromFlags(settings)
		if err != nil {
			logrus.Fatal(err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		if err := watch(ctx, os.Stdout, deadline, settings.FinishedMessage, isTerminal(os.Stdout)); err != nil {
			logrus.Fatal(err)
		}
	},
}

// watch writes one snapshot per tick to w until the deadline passes or ctx is done.
func watch(ctx context.Context, w io.Writer, deadline time.Time, finishedMessage string, redraw bool) error {
	expired := make(chan struct{})
	var (
		once     sync.Once
		writeErr error
	)
	runner := countdown.NewRunner(countdown.SystemClock{}, countdown.TickInterval, func(s countdown.Snapshot) {
		line := countdown.Line(s, finishedMessage)
		var err error
		switch {
		case redraw && s.State == countdown.StateExpired:
			_, err = fmt.Fprintf(w, "\r\033[K%s\n", line)
		case redraw:
			_, err = fmt.Fprintf(w, "\r\033[K%s", line)
		default:
			_, err = fmt.Fprintln(w, line)
		}
		if err != nil && writeErr == nil {
			writeErr = err
		}
		if s.State == countdown.StateExpired {
			once.Do(func() { close(expired) })
		}
	})

	logrus.Debugf("Watching deadline %s", selector.FormatDeadline(deadline))
	runner.Set(deadline)

	interrupted := false
	select {
	case <-expired:
	case <-ctx.Done():
		interrupted = true
	}
	runner.Stop()

	// Leave the cursor below a redrawn line that never reached expiry.
	if interrupted && redraw {
		_, _ = fmt.Fprintln(w)
	}
	return writeErr
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var remainingCmd = &cobra.Command{
	Use:   "remaining",
	Short: "Print the time left until a deadline once",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if jsonOutput && !verbose {
			logrus.SetLevel(logrus.WarnLevel)
		}
		setLogLevel()

		settings := loadSettings()
		deadline, err := deadlineFromFlags(settings)
		if err != nil {
			logrus.Fatal(err)
		}
		snap := countdown.Evaluate(deadline, time.Now())
		if err := countdown.PrintSnapshot(os.Stdout, snap, settings.FinishedMessage, jsonOutput); err != nil {
			logrus.Fatal(err)
		}
	},
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage display settings",
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective settings",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel()
		c, err := config.NewConfig(configFile)
		if err != nil {
			logrus.Fatal(err)
		}
		if jsonOutput {
			out := make(map[string]string, len(c.Rows()))
			for _, row := range c.Rows() {
				out[row[0]] = row[1]
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(out); err != nil {
				logrus.Fatal(err)
			}
			return
		}
		table := uitable.New()
		table.MaxColWidth = 80
		table.AddRow("KEY", "VALUE")
		for _, row := range c.Rows() {
			table.AddRow(row[0], row[1])
		}
		fmt.Fprintf(os.Stdout, "# %s\n%s\n", c.Path, table)
	},
}

//nolint:gochecknoglobals // Cobra command is defined at package scope in current structure.
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default settings file if none exists",
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel()
		c, err := config.NewOrExistingConfig(configFile)
		if err != nil {
			logrus.Fatal(err)
		}
		fmt.Fprintf(os.Stdout, "Config at %s\n", c.Path)
	},
}
