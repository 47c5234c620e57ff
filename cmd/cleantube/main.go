// Package main provides the CLI entrypoint for cleantube.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/cleantube/internal/config"
	"github.com/verte-zerg/cleantube/internal/logging"
	"github.com/verte-zerg/cleantube/internal/model"
	"github.com/verte-zerg/cleantube/internal/relay"
	"github.com/verte-zerg/cleantube/internal/state"
	"github.com/verte-zerg/cleantube/internal/stats"
	"github.com/verte-zerg/cleantube/internal/statsui"
	"github.com/verte-zerg/cleantube/internal/tracker"
	"github.com/verte-zerg/cleantube/internal/tui"
	"github.com/verte-zerg/cleantube/internal/youtube"
)

var (
	flagMpv       string
	flagMpvArgs   []string
	flagStatePath string
	flagLogPath   string
	flagAutoplay  bool
	flagDebug     bool

	statsPlain bool
	statsWidth int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "cleantube",
		Short:         "Distraction-free YouTube watching with local progress tracking",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runWatchCmd,
	}

	rootCmd.PersistentFlags().StringVar(&flagStatePath, "state", "", "state file path (default: XDG data dir)")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", "log file path (default: XDG data dir)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")

	rootCmd.Flags().StringVar(&flagMpv, "mpv", "", "mpv binary (default: mpv from PATH)")
	rootCmd.Flags().StringArrayVar(&flagMpvArgs, "mpv-arg", nil, "extra mpv argument (repeatable)")
	rootCmd.Flags().BoolVar(&flagAutoplay, "autoplay", true, "start playback immediately on selection")

	rootCmd.AddCommand(newAddCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func resolveConfig(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}

	cfg := model.Config{
		Mpv:       flagMpv,
		MpvArgs:   flagMpvArgs,
		StatePath: flagStatePath,
		LogPath:   flagLogPath,
		Autoplay:  flagAutoplay,
		Debug:     flagDebug,
	}
	applyStringConfig(cmd, "mpv", &cfg.Mpv, fileCfg.Player.Mpv)
	applyBoolConfig(cmd, "autoplay", &cfg.Autoplay, fileCfg.Player.Autoplay)
	applyStringConfig(cmd, "state", &cfg.StatePath, fileCfg.State.Path)
	applyStringConfig(cmd, "log", &cfg.LogPath, fileCfg.State.LogPath)
	applyBoolConfig(cmd, "debug", &cfg.Debug, fileCfg.State.Debug)
	if !cmd.Flags().Changed("mpv-arg") && len(fileCfg.Player.MpvArgs) > 0 {
		cfg.MpvArgs = fileCfg.Player.MpvArgs
	}
	if cfg.StatePath == "" {
		cfg.StatePath = config.DefaultStatePath()
	}
	if cfg.LogPath == "" {
		cfg.LogPath = config.DefaultLogPath()
	}
	return cfg, nil
}

func openStore(cfg model.Config) (*state.Store, func(), error) {
	st, err := state.Open(cfg.StatePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open state: %w", err)
	}
	closer := func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close state: %v\n", cerr)
		}
	}
	return st, closer, nil
}

func runWatchCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	log, closeLog, err := logging.Open(cfg.LogPath, cfg.Debug)
	if err != nil {
		return fmt.Errorf("failed to open log: %w", err)
	}
	defer func() {
		if cerr := closeLog(); cerr != nil {
			logErrf("failed to close log: %v\n", cerr)
		}
	}()

	st, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	player, err := relay.StartMpv(cfg.Mpv, cfg.MpvArgs, log)
	if err != nil {
		return fmt.Errorf("failed to start player: %w", err)
	}
	rl := relay.New(player, log)
	rl.Start()
	defer rl.Stop()

	tr := tracker.New(st)
	m := tui.NewModel(st, tr, rl, log, cfg.Autoplay)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	if err := st.Save(); err != nil {
		log.Warn("final save failed", "error", err)
	}
	return nil
}

func newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <url-or-id>...",
		Short: "Save videos or playlists without opening the TUI",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runAddCmd,
	}
}

func runAddCmd(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	st, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	for _, arg := range args {
		parsed := youtube.ParseInput(arg)
		if parsed == nil {
			return fmt.Errorf("not a YouTube link, video ID or playlist link: %q", arg)
		}
		item, added := st.AddItem(parsed.Item())
		if !added {
			fmt.Fprintf(cmd.OutOrStdout(), "already saved: %s %s\n", item.Type, item.ID)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "added %s %s\n", item.Type, item.URL)
	}
	if err := st.Save(); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved videos and playlists",
		Args:  cobra.NoArgs,
		RunE:  runListCmd,
	}
}

func runListCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	st, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	renderItemTable(cmd.OutOrStdout(), st)
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show watch-time analytics",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print a plain report instead of the TUI")
	cmd.Flags().IntVar(&statsWidth, "width", 0, "plot width for plain output (default: terminal width)")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	st, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	if statsPlain || !isatty.IsTerminal(os.Stdout.Fd()) {
		report := stats.BuildReport(st, time.Now())
		out := cmd.OutOrStdout()
		stats.RenderDailyTable(out, report)
		return stats.PlotSeries(out, "Watch time, last 7 days (minutes)",
			[]stats.Series{report.TrendSeries()}, statsWidth, 10)
	}

	m := statsui.NewModel(st)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return `# cleantube configuration
# Uncomment a value to enable it. CLI flags override config values.

[player]
# mpv = "mpv"                      # mpv binary
# mpv-args = ["--volume=70"]       # Extra mpv arguments
# autoplay = true                  # Start playback immediately on selection

[state]
# path = ""                        # State file path (default: XDG data dir)
# log-path = ""                    # Log file path (default: XDG data dir)
# debug = false                    # Debug logging
`
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
