// Package cli implements the blockboard command line.
//
// The root command opens the interactive canvas. Flags override values from
// the TOML config file, which in turn override the built-in defaults.
package cli

import (
	"context"
	"fmt"
	"image"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"blockboard/internal/config"
	"blockboard/internal/graph"
	"blockboard/internal/ui"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// SetVersion sets the build information shown by --version.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

type options struct {
	configPath  string
	logFile     string
	verbose     bool
	blockWidth  int
	blockHeight int
	seed        uint64
}

// Execute runs the blockboard CLI.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	var opts options

	root := &cobra.Command{
		Use:          "blockboard",
		Short:        "A terminal canvas of draggable, connected blocks",
		Long:         `blockboard opens a canvas with a single block. Click a block's [+] to spawn a child, drag blocks with the mouse, and watch the dashed connectors follow.`,
		Version:      version,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, opts)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("blockboard %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.Flags().StringVar(&opts.configPath, "config", config.DefaultPath(), "config file")
	root.Flags().StringVar(&opts.logFile, "log-file", "", "write logs to this file")
	root.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	root.Flags().IntVar(&opts.blockWidth, "block-width", 0, "block width in cells")
	root.Flags().IntVar(&opts.blockHeight, "block-height", 0, "block height in cells")
	root.Flags().Uint64Var(&opts.seed, "seed", 0, "placement seed (0 = random)")

	root.AddCommand(newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "blockboard %s (commit %s, built %s)\n", version, commit, date)
		},
	}
}

// resolveConfig layers flags that were set over the config file.
func resolveConfig(cmd *cobra.Command, opts options) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("log-file") {
		cfg.LogFile = opts.logFile
	}
	if opts.verbose {
		cfg.LogLevel = "debug"
	}
	if flags.Changed("block-width") {
		cfg.BlockWidth = opts.blockWidth
	}
	if flags.Changed("block-height") {
		cfg.BlockHeight = opts.blockHeight
	}
	if flags.Changed("seed") {
		cfg.Seed = opts.seed
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// terminalSize reports the size of out when it is a terminal.
func terminalSize(out io.Writer) (int, int, bool) {
	f, ok := out.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0, 0, false
	}
	w, h, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0, 0, false
	}
	return w, h, true
}

func run(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer) error {
	logger, closer, err := openLog(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer closer.Close()

	var uiOpts []ui.Option
	viewport := image.Pt(80, 23)
	if w, h, ok := terminalSize(out); ok {
		uiOpts = append(uiOpts, ui.WithSize(w, h))
		viewport = image.Pt(w, h-1)
	}

	store := graph.New(
		graph.WithBlockSize(cfg.BlockSize()),
		graph.WithViewport(viewport),
		graph.WithPlacer(graph.NewRandomPlacer(cfg.Seed)),
	)
	root, _ := store.Snapshot().Root()
	logger.Info("canvas ready", "root", root.Position, "block", cfg.BlockSize(), "viewport", viewport)

	p := tea.NewProgram(
		ui.New(store, cfg, logger, uiOpts...),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
	)
	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(ui.Model); ok {
		logger.Info("canvas closed", "blocks", m.Store().Snapshot().Len())
	}
	return nil
}
