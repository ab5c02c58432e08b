package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/medlux/wardgrid/internal/app"
	"github.com/medlux/wardgrid/internal/catalog"
	"github.com/medlux/wardgrid/internal/export"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "wardgrid: %v\n", err)
		return 1
	}
	return 0
}

type rootFlags struct {
	configPath string
	sources    map[string]string
	rows       int
}

func newRootCommand() *cobra.Command {
	flags := &rootFlags{}
	tui := tuiFlags{}

	root := &cobra.Command{
		Use:           "wardgrid",
		Short:         "Searchable, paginated ward tables in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context(), flags, tui)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file (default ~/.config/wardgrid/config.toml)")
	pf.StringToStringVar(&flags.sources, "source", nil, "screen=spec data source, repeatable (file, sqlite:// or http(s)://)")
	pf.IntVar(&flags.rows, "rows", 0, "rows per page (default from config)")

	bindTUIFlags(root, &tui)
	root.AddCommand(
		newTUICommand(flags),
		newRenderCommand(flags),
		newScreensCommand(),
	)
	return root
}

type tuiFlags struct {
	prefsPath string
	screen    string
	poll      int
}

func bindTUIFlags(cmd *cobra.Command, f *tuiFlags) {
	cmd.Flags().StringVar(&f.prefsPath, "prefs", "", "preferences file (default ~/.config/wardgrid/prefs.toml)")
	cmd.Flags().StringVar(&f.screen, "screen", "", "initial screen")
	cmd.Flags().IntVar(&f.poll, "poll", 0, "refresh interval in seconds for remote sources (negative disables)")
}

func newTUICommand(root *rootFlags) *cobra.Command {
	f := tuiFlags{}
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Start the interactive table browser (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(cmd.Context(), root, f)
		},
	}
	bindTUIFlags(cmd, &f)
	return cmd
}

func runTUI(ctx context.Context, root *rootFlags, f tuiFlags) error {
	return app.Run(ctx, app.Options{
		ConfigPath:  root.configPath,
		PrefsPath:   f.prefsPath,
		Screen:      f.screen,
		Sources:     root.sources,
		RowsPerPage: root.rows,
		PollSeconds: f.poll,
	})
}

func newRenderCommand(root *rootFlags) *cobra.Command {
	var (
		query  string
		page   int
		all    bool
		format string
	)
	cmd := &cobra.Command{
		Use:   "render <screen>",
		Short: "Write one page of a screen as text, json, csv or html",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			return app.Render(cmd.Context(), cmd.OutOrStdout(), app.RenderOptions{
				ConfigPath:  root.configPath,
				Sources:     root.sources,
				Screen:      args[0],
				Query:       query,
				Page:        page,
				RowsPerPage: root.rows,
				All:         all,
				Format:      f,
			})
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "search text matched against every field")
	cmd.Flags().IntVarP(&page, "page", "p", 1, "page number (clamped to the available pages)")
	cmd.Flags().BoolVar(&all, "all", false, "render the entire filtered view")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json, csv or html")
	return cmd
}

func newScreensCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "screens",
		Short: "List the available screens",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), screensTable())
			return err
		},
	}
}

func screensTable() string {
	header := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("NAME", "TITLE", "DESCRIPTION").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
	for _, s := range catalog.All() {
		t.Row(s.Name, s.Title, s.Subtitle)
	}
	return t.Render()
}
