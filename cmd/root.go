package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jwein/deals4me/internal/api"
	"github.com/jwein/deals4me/internal/display"
	"github.com/jwein/deals4me/internal/filter"
	"github.com/jwein/deals4me/internal/match"
)

var (
	flagWeek     string
	flagStore    string
	flagCategory string
	flagQuery    string
	flagUnder    string
	flagSort     string
	flagLimit    int
	flagJSON     bool
)

var rootCmd = &cobra.Command{
	Use:   "deals4me",
	Short: "Match your saved grocery items against this week's flyers",
	Long: "CLI for the deals-4me grocery tracker. Fetches your saved items and the\n" +
		"current week's flyer rows from the deals-4me datastore, runs the saved-item\n" +
		"matcher, and shows which stores have your items on sale.\n\n" +
		"Agent-friendly mode: minor syntax issues are auto-corrected when intent is clear " +
		"(for example: -week 101625, week=101625, --weeek 101625).",
	Example: `  deals4me
  deals4me --week 101625 --store market_basket
  deals4me --category "meat seafood" --sort price
  deals4me counts --week 101625
  deals4me compare --week 101625 --json`,
	RunE: runDeals,
}

func init() {
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flagWeek, "week", "w", "", "Flyer week code (e.g., 101625; default: latest ingested)")
	pf.BoolVar(&flagJSON, "json", false, "Output as JSON")

	registerDealFilterFlags(rootCmd.Flags())
}

// Execute runs the root command.
func Execute() {
	os.Exit(runCLI(os.Args[1:], os.Stdout, os.Stderr))
}

func runCLI(args []string, stdout, stderr io.Writer) int {
	resetCLIState()
	_ = godotenv.Load()

	normalizedArgs, notes := normalizeCLIArgs(args)
	for _, note := range notes {
		fmt.Fprintf(stderr, "note: %s\n", note)
	}

	if len(normalizedArgs) == 0 {
		if err := printQuickStart(stdout, !isTTY(stdout)); err != nil {
			cliErr := classifyCLIError(err)
			fmt.Fprintln(stderr, formatCLIErrorText(cliErr))
			return cliErr.ExitCode
		}
		return ExitSuccess
	}

	if shouldAutoJSON(normalizedArgs, isTTY(stdout)) {
		normalizedArgs = append(normalizedArgs, "--json")
	}

	setCommandIO(rootCmd, stdout, stderr)
	rootCmd.SetArgs(normalizedArgs)

	if err := rootCmd.Execute(); err != nil {
		cliErr := classifyCLIError(err)
		if hasJSONPreference(normalizedArgs) {
			if jerr := printCLIErrorJSON(stderr, cliErr); jerr != nil {
				fmt.Fprintln(stderr, formatCLIErrorText(classifyCLIError(jerr)))
				return ExitInternal
			}
		} else {
			fmt.Fprintln(stderr, formatCLIErrorText(cliErr))
		}
		return cliErr.ExitCode
	}
	return ExitSuccess
}

func setCommandIO(cmd *cobra.Command, stdout, stderr io.Writer) {
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	for _, child := range cmd.Commands() {
		setCommandIO(child, stdout, stderr)
	}
}

func resetCLIState() {
	flagWeek = ""
	flagStore = ""
	flagCategory = ""
	flagQuery = ""
	flagUnder = ""
	flagSort = ""
	flagLimit = 0
	flagCompareCount = 5
	flagJSON = false
}

func registerDealFilterFlags(f *pflag.FlagSet) {
	f.StringVarP(&flagStore, "store", "s", "", "Filter by store slug (e.g., market_basket)")
	f.StringVarP(&flagCategory, "category", "c", "", "Filter by saved-item category (e.g., \"meat seafood\")")
	f.StringVarP(&flagQuery, "query", "q", "", "Search matched deals by keyword in the item name")
	f.StringVar(&flagUnder, "under", "", "Only deals at or below this price (e.g., 4.99)")
	f.StringVar(&flagSort, "sort", "", "Sort deals by relevance, price, or store")
	f.IntVarP(&flagLimit, "limit", "n", 0, "Limit number of results (0 = all)")
}

func validateSortMode() error {
	switch strings.ToLower(strings.TrimSpace(flagSort)) {
	case "", "relevance", "price", "cheapest", "store", "stores":
		return nil
	default:
		return invalidArgsError(
			"invalid value for --sort (use relevance, price, or store)",
			"deals4me --sort price",
			"deals4me --sort store",
		)
	}
}

// parseUnderCents converts a "--under" dollar amount like "4.99" to cents.
func parseUnderCents() (int, error) {
	raw := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(flagUnder), "$"))
	if raw == "" {
		return 0, nil
	}
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil || amount <= 0 {
		return 0, invalidArgsError(
			"invalid value for --under (use a dollar amount like 4.99)",
			"deals4me --under 4.99",
		)
	}
	return int(amount*100 + 0.5), nil
}

func newClient() (*api.Client, error) {
	client, err := api.NewClientFromEnv()
	if err != nil {
		return nil, configError(err)
	}
	return client, nil
}

// resolveWeek picks the flyer week to query: --week wins, otherwise the
// latest ingested week.
func resolveWeek(cmd *cobra.Command, client *api.Client) (string, error) {
	if flagWeek != "" {
		return flagWeek, nil
	}

	week, err := client.FetchLatestWeek(cmd.Context())
	if err != nil {
		return "", upstreamError("finding flyer weeks", err)
	}
	if week == "" {
		return "", notFoundError(
			"no flyer weeks have been ingested yet",
			"Run the ingestion pipeline, or pass --week explicitly.",
		)
	}
	if !flagJSON {
		display.PrintWeekContext(cmd.OutOrStdout(), week, true)
	}
	return week, nil
}

func currentFilterOptions() (filter.Options, error) {
	underCents, err := parseUnderCents()
	if err != nil {
		return filter.Options{}, err
	}
	return filter.Options{
		Store:      flagStore,
		Category:   flagCategory,
		Query:      flagQuery,
		UnderCents: underCents,
		Sort:       flagSort,
		Limit:      flagLimit,
	}, nil
}

// loadMatchedDeals runs the shared fetch-and-match pipeline behind the root,
// counts, compare, and tui commands.
func loadMatchedDeals(cmd *cobra.Command, client *api.Client, weekCode string) ([]filter.Deal, error) {
	saved, err := client.FetchSavedItems(cmd.Context())
	if err != nil {
		return nil, upstreamError("fetching saved items", err)
	}
	if len(saved) == 0 {
		return nil, notFoundError(
			"you have no saved items to match against",
			"Add items in the deals-4me app first.",
		)
	}

	offers, err := client.FetchOffers(cmd.Context(), weekCode, "")
	if err != nil {
		return nil, upstreamError("fetching offers", err)
	}
	if len(offers) == 0 {
		return nil, notFoundError(
			fmt.Sprintf("no flyer items found for week %s", weekCode),
			"Check the week code, or wait for ingestion to finish.",
		)
	}

	matcher := match.NewMatcher(api.SavedItems(saved))
	return filter.Collect(offers, matcher), nil
}

func runDeals(cmd *cobra.Command, _ []string) error {
	if err := validateSortMode(); err != nil {
		return err
	}
	opts, err := currentFilterOptions()
	if err != nil {
		return err
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	weekCode, err := resolveWeek(cmd, client)
	if err != nil {
		return err
	}

	deals, err := loadMatchedDeals(cmd, client, weekCode)
	if err != nil {
		return err
	}
	if len(deals) == 0 {
		return notFoundError(
			fmt.Sprintf("none of your saved items are on sale in week %s", weekCode),
			"Broaden your saved items, or try another week with --week.",
		)
	}

	deals = filter.Apply(deals, opts)
	if len(deals) == 0 {
		return notFoundError(
			"no saved deals match your filters",
			"Relax filters like --store/--category/--query/--under.",
		)
	}

	if flagJSON {
		return display.PrintDealsJSON(cmd.OutOrStdout(), deals)
	}
	display.PrintDeals(cmd.OutOrStdout(), deals, weekCode)
	return nil
}
