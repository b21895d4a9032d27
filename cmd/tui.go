package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jwein/deals4me/internal/api"
	"github.com/jwein/deals4me/internal/filter"
	"github.com/jwein/deals4me/internal/match"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse this week's saved deals interactively",
	Example: `  deals4me tui
  deals4me tui --week 101625 --store market_basket --sort price`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
	registerDealFilterFlags(tuiCmd.Flags())
}

func runTUI(cmd *cobra.Command, _ []string) error {
	if err := validateSortMode(); err != nil {
		return err
	}
	if !isInteractiveSession(cmd.InOrStdin(), cmd.OutOrStdout()) {
		return invalidArgsError(
			"`deals4me tui` requires an interactive terminal",
			"Use `deals4me --json` in pipelines.",
		)
	}

	opts, err := currentFilterOptions()
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	model := newLoadingDealsTUIModel(tuiLoadConfig{
		ctx:         cmd.Context(),
		client:      client,
		weekCode:    flagWeek,
		initialOpts: opts,
	})

	program := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	final, err := program.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(dealsTUIModel); ok && m.fatalErr != nil {
		return m.fatalErr
	}
	return nil
}

func isInteractiveSession(stdin io.Reader, stdout io.Writer) bool {
	inputFile, ok := stdin.(*os.File)
	if !ok {
		return false
	}
	if !term.IsTerminal(int(inputFile.Fd())) {
		return false
	}
	return isTTY(stdout)
}

// loadTUIData resolves the flyer week and runs the fetch-and-match pipeline
// for the interactive explorer.
func loadTUIData(ctx context.Context, client *api.Client, weekCode string) (string, []filter.Deal, error) {
	if weekCode == "" {
		latest, err := client.FetchLatestWeek(ctx)
		if err != nil {
			return "", nil, upstreamError("finding flyer weeks", err)
		}
		if latest == "" {
			return "", nil, notFoundError(
				"no flyer weeks have been ingested yet",
				"Run the ingestion pipeline, or pass --week explicitly.",
			)
		}
		weekCode = latest
	}

	saved, err := client.FetchSavedItems(ctx)
	if err != nil {
		return "", nil, upstreamError("fetching saved items", err)
	}
	if len(saved) == 0 {
		return "", nil, notFoundError(
			"you have no saved items to match against",
			"Add items in the deals-4me app first.",
		)
	}

	offers, err := client.FetchOffers(ctx, weekCode, "")
	if err != nil {
		return "", nil, upstreamError("fetching offers", err)
	}
	if len(offers) == 0 {
		return "", nil, notFoundError(
			fmt.Sprintf("no flyer items found for week %s", weekCode),
			"Check the week code, or wait for ingestion to finish.",
		)
	}

	matcher := match.NewMatcher(api.SavedItems(saved))
	deals := filter.Collect(offers, matcher)
	if len(deals) == 0 {
		return "", nil, notFoundError(
			fmt.Sprintf("none of your saved items are on sale in week %s", weekCode),
			"Broaden your saved items, or try another week with --week.",
		)
	}
	return weekCode, deals, nil
}
