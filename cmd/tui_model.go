package cmd

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jwein/deals4me/internal/api"
	"github.com/jwein/deals4me/internal/display"
	"github.com/jwein/deals4me/internal/filter"
)

const (
	minTUIWidth  = 92
	minTUIHeight = 24
)

var (
	tuiHeaderStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	tuiMetaStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	tuiHintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	tuiValueStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	tuiDealStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	tuiLabelStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	tuiMutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	tuiSectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))
)

type tuiLoadConfig struct {
	ctx         context.Context
	client      *api.Client
	weekCode    string
	initialOpts filter.Options
}

type tuiDataLoadedMsg struct {
	weekCode    string
	allDeals    []filter.Deal
	initialOpts filter.Options
}

type tuiDataLoadErrMsg struct {
	err error
}

type tuiFocus int

const (
	tuiFocusList tuiFocus = iota
	tuiFocusDetail
)

type tuiGroupItem struct {
	slug    string
	name    string
	count   int
	ordinal int
}

func (g tuiGroupItem) FilterValue() string { return strings.ToLower(g.name) }
func (g tuiGroupItem) Title() string       { return fmt.Sprintf("%d. %s", g.ordinal, g.name) }
func (g tuiGroupItem) Description() string {
	return fmt.Sprintf("Store section • %d deals", g.count)
}

type tuiDealItem struct {
	deal        filter.Deal
	group       string
	title       string
	description string
	filterValue string
}

func (d tuiDealItem) FilterValue() string { return d.filterValue }
func (d tuiDealItem) Title() string       { return d.title }
func (d tuiDealItem) Description() string { return d.description }

type dealsTUIModel struct {
	loading  bool
	spinner  spinner.Model
	loadCmd  tea.Cmd
	fatalErr error

	weekCode string
	allDeals []filter.Deal

	opts        filter.Options
	initialOpts filter.Options

	sortChoices  []string
	sortIndex    int
	storeChoices []string
	storeIndex   int
	limitChoices []int
	limitIndex   int

	list   list.Model
	detail viewport.Model

	focus      tuiFocus
	showHelp   bool
	selectedID string

	groupStarts  []int
	visibleDeals int

	width, height   int
	bodyHeight      int
	listPaneWidth   int
	detailPaneWidth int
	tooSmall        bool
}

func newLoadingDealsTUIModel(cfg tuiLoadConfig) dealsTUIModel {
	delegate := list.NewDefaultDelegate()
	delegate.SetHeight(2)
	delegate.SetSpacing(1)

	lst := list.New([]list.Item{}, delegate, 0, 0)
	lst.Title = "Saved deals"
	lst.SetStatusBarItemName("deal", "deals")
	lst.SetShowStatusBar(true)
	lst.SetFilteringEnabled(true)
	lst.SetShowHelp(false)
	lst.SetShowPagination(true)
	lst.DisableQuitKeybindings()

	detail := viewport.New(0, 0)
	detail.KeyMap.PageDown.SetKeys("f", "pgdown")
	detail.KeyMap.PageUp.SetKeys("b", "pgup")
	detail.KeyMap.HalfPageDown.SetKeys("d")
	detail.KeyMap.HalfPageUp.SetKeys("u")

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))

	return dealsTUIModel{
		loading:     true,
		spinner:     spin,
		loadCmd:     loadTUIDataCmd(cfg),
		initialOpts: cfg.initialOpts,
		opts:        cfg.initialOpts,
		list:        lst,
		detail:      detail,
		focus:       tuiFocusList,
	}
}

func loadTUIDataCmd(cfg tuiLoadConfig) tea.Cmd {
	return func() tea.Msg {
		weekCode, allDeals, err := loadTUIData(cfg.ctx, cfg.client, cfg.weekCode)
		if err != nil {
			return tuiDataLoadErrMsg{err: err}
		}
		return tuiDataLoadedMsg{
			weekCode:    weekCode,
			allDeals:    allDeals,
			initialOpts: cfg.initialOpts,
		}
	}
}

func (m dealsTUIModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCmd)
}

func (m dealsTUIModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tuiDataLoadedMsg:
		m.loading = false
		m.weekCode = msg.weekCode
		m.allDeals = msg.allDeals
		m.initialOpts = canonicalizeTUIOptions(msg.initialOpts)
		m.opts = m.initialOpts
		m.initializeInlineChoices()
		m.applyCurrentFilters(true)
		m.resize()
		return m, nil

	case tuiDataLoadErrMsg:
		m.loading = false
		m.fatalErr = msg.err
		return m, tea.Quit

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	keyMsg, isKey := msg.(tea.KeyMsg)
	if isKey {
		if keyMsg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.loading {
			if keyMsg.String() == "q" {
				return m, tea.Quit
			}
			return m, nil
		}
	}

	if m.loading {
		return m, nil
	}

	if isKey {
		filtering := m.list.FilterState() == list.Filtering
		key := keyMsg.String()

		switch key {
		case "q":
			if !filtering {
				return m, tea.Quit
			}
		case "tab":
			if !filtering {
				if m.focus == tuiFocusList {
					m.focus = tuiFocusDetail
				} else {
					m.focus = tuiFocusList
				}
				return m, nil
			}
		case "esc":
			if m.focus == tuiFocusDetail && !filtering {
				m.focus = tuiFocusList
				return m, nil
			}
		case "?":
			if !filtering {
				m.showHelp = !m.showHelp
				m.resize()
				return m, nil
			}
		case "s":
			if !filtering {
				m.cycleSortMode()
				return m, nil
			}
		case "t":
			if !filtering {
				m.cycleStore()
				return m, nil
			}
		case "l":
			if !filtering {
				m.cycleLimit()
				return m, nil
			}
		case "r":
			if !filtering {
				m.opts = m.initialOpts
				m.syncChoiceIndexesFromOptions()
				m.applyCurrentFilters(false)
				return m, nil
			}
		case "]":
			if !filtering {
				if m.list.IsFiltered() {
					return m, m.list.NewStatusMessage("Clear fuzzy filter before section jumps.")
				}
				m.jumpSection(1)
				return m, nil
			}
		case "[":
			if !filtering {
				if m.list.IsFiltered() {
					return m, m.list.NewStatusMessage("Clear fuzzy filter before section jumps.")
				}
				m.jumpSection(-1)
				return m, nil
			}
		}

		if !filtering && len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if m.list.IsFiltered() {
				return m, m.list.NewStatusMessage("Clear fuzzy filter before section jumps.")
			}
			m.jumpToSection(int(key[0] - '1'))
			return m, nil
		}

		if m.focus == tuiFocusDetail && !filtering {
			var cmd tea.Cmd
			m.detail, cmd = m.detail.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	m.refreshDetail(false)
	return m, cmd
}

func (m dealsTUIModel) View() string {
	if m.loading {
		return m.loadingView()
	}
	if m.width == 0 || m.height == 0 {
		return tuiMetaStyle.Render("Loading interface...")
	}
	if m.tooSmall {
		return lipgloss.NewStyle().
			Padding(1, 2).
			Render(
				fmt.Sprintf(
					"Terminal too small (%dx%d).\nResize to at least %dx%d for the two-pane deal explorer.",
					m.width, m.height, minTUIWidth, minTUIHeight,
				),
			)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.headerView(),
		m.bodyView(),
		m.footerView(),
	)
}

func (m dealsTUIModel) loadingView() string {
	width := m.width
	if width == 0 {
		width = 80
	}
	skeletonStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240"))

	lines := []string{
		tuiHeaderStyle.Render("deals4me tui"),
		tuiMetaStyle.Render("Preparing interactive interface..."),
		"",
		fmt.Sprintf("%s Fetching saved items and flyer offers", m.spinner.View()),
		tuiHintStyle.Render("Tip: press q to cancel."),
		"",
		skeletonStyle.Render("┌──────────────────────────────┬─────────────────────────────────────────┐"),
		skeletonStyle.Render("│  Loading deal list...        │  Loading detail panel...               │"),
		skeletonStyle.Render("│  • store sections            │  • price and size metadata             │"),
		skeletonStyle.Render("│  • matched labels            │  • wrapped notes text                  │"),
		skeletonStyle.Render("│  • filter index              │  • scroll viewport                     │"),
		skeletonStyle.Render("└──────────────────────────────┴─────────────────────────────────────────┘"),
	}

	return lipgloss.NewStyle().
		Width(width).
		Padding(1, 2).
		Render(strings.Join(lines, "\n"))
}

func (m *dealsTUIModel) resize() {
	if m.width == 0 || m.height == 0 {
		return
	}
	if m.loading {
		return
	}

	m.tooSmall = m.width < minTUIWidth || m.height < minTUIHeight
	if m.tooSmall {
		return
	}

	headerH := 3
	footerH := 2
	if m.showHelp {
		footerH = 7
	}
	m.bodyHeight = maxInt(8, m.height-headerH-footerH-1)

	listWidth := maxInt(40, int(float64(m.width)*0.43))
	if listWidth > m.width-42 {
		listWidth = m.width / 2
	}
	detailWidth := m.width - listWidth - 1
	if detailWidth < 36 {
		detailWidth = 36
		listWidth = m.width - detailWidth - 1
	}

	m.listPaneWidth = listWidth
	m.detailPaneWidth = detailWidth

	listInnerWidth := maxInt(24, listWidth-4)
	detailInnerWidth := maxInt(24, detailWidth-4)
	panelInnerHeight := maxInt(6, m.bodyHeight-2)

	m.list.SetSize(listInnerWidth, panelInnerHeight)
	m.detail.Width = detailInnerWidth
	m.detail.Height = panelInnerHeight
	m.refreshDetail(false)
}

func (m dealsTUIModel) headerView() string {
	focus := "list"
	if m.focus == tuiFocusDetail {
		focus = "detail"
	}

	top := fmt.Sprintf("deals4me tui  |  week %s", m.weekCode)
	bottom := fmt.Sprintf(
		"deals: %d visible / %d total  |  filters: %s  |  focus: %s",
		m.visibleDeals, len(m.allDeals), m.activeFilterSummary(), focus,
	)

	return lipgloss.NewStyle().
		Width(m.width).
		Padding(0, 1).
		Render(tuiHeaderStyle.Render(top) + "\n" + tuiMetaStyle.Render(bottom))
}

func (m dealsTUIModel) bodyView() string {
	listBorder := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("241")).
		Padding(0, 1)
	detailBorder := listBorder

	if m.focus == tuiFocusList {
		listBorder = listBorder.BorderForeground(lipgloss.Color("86"))
	} else {
		detailBorder = detailBorder.BorderForeground(lipgloss.Color("86"))
	}

	left := listBorder.
		Width(m.listPaneWidth).
		Height(m.bodyHeight).
		Render(m.list.View())
	right := detailBorder.
		Width(m.detailPaneWidth).
		Height(m.bodyHeight).
		Render(m.detail.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
}

func (m dealsTUIModel) footerView() string {
	base := "Tab switch pane • / fuzzy filter • s sort • t store • l limit • r reset • [/] section jump • 1-9 section index • q quit"
	if m.focus == tuiFocusDetail {
		base = "Detail: j/k or ↑/↓ scroll • u/d half-page • b/f page • esc list • ? help • q quit"
	}

	if !m.showHelp {
		return lipgloss.NewStyle().Padding(0, 1).Render(tuiHintStyle.Render(base))
	}

	lines := []string{
		"Key Help",
		"list pane: ↑/↓ or j/k move • / fuzzy filter • t store • s sort • l limit",
		"group jumps: ] next section • [ previous section • 1..9 jump to numbered store section",
		"detail pane: j/k or ↑/↓ scroll • u/d half-page • b/f page up/down",
		"global: tab switch pane • esc list • r reset inline options • ? toggle help • q quit • ctrl+c force quit",
	}
	return lipgloss.NewStyle().
		Padding(0, 1).
		Render(tuiHintStyle.Render(strings.Join(lines, "\n")))
}

func (m *dealsTUIModel) initializeInlineChoices() {
	m.opts = canonicalizeTUIOptions(m.opts)

	m.sortChoices = []string{"", "price", "store"}
	m.storeChoices = buildStoreChoices(m.allDeals, m.opts.Store)
	m.limitChoices = buildLimitChoices(m.opts.Limit)

	m.syncChoiceIndexesFromOptions()
}

func (m *dealsTUIModel) syncChoiceIndexesFromOptions() {
	m.sortIndex = indexOfString(m.sortChoices, canonicalTUISortMode(m.opts.Sort))
	if m.sortIndex < 0 {
		m.sortIndex = 0
	}
	m.opts.Sort = m.sortChoices[m.sortIndex]

	m.storeIndex = indexOfStringFold(m.storeChoices, m.opts.Store)
	if m.storeIndex < 0 {
		m.storeIndex = 0
		m.opts.Store = ""
	} else {
		m.opts.Store = m.storeChoices[m.storeIndex]
	}

	m.limitIndex = indexOfInt(m.limitChoices, m.opts.Limit)
	if m.limitIndex < 0 {
		m.limitIndex = 0
		m.opts.Limit = m.limitChoices[m.limitIndex]
	}
}

func (m *dealsTUIModel) cycleSortMode() {
	if len(m.sortChoices) == 0 {
		return
	}
	m.sortIndex = (m.sortIndex + 1) % len(m.sortChoices)
	m.opts.Sort = m.sortChoices[m.sortIndex]
	m.applyCurrentFilters(false)
}

func (m *dealsTUIModel) cycleStore() {
	if len(m.storeChoices) == 0 {
		return
	}
	m.storeIndex = (m.storeIndex + 1) % len(m.storeChoices)
	m.opts.Store = m.storeChoices[m.storeIndex]
	m.applyCurrentFilters(false)
}

func (m *dealsTUIModel) cycleLimit() {
	if len(m.limitChoices) == 0 {
		return
	}
	m.limitIndex = (m.limitIndex + 1) % len(m.limitChoices)
	m.opts.Limit = m.limitChoices[m.limitIndex]
	m.applyCurrentFilters(false)
}

func (m dealsTUIModel) activeFilterSummary() string {
	parts := []string{}
	if m.opts.Store != "" {
		parts = append(parts, "store:"+m.opts.Store)
	}
	if m.opts.Category != "" {
		parts = append(parts, "category:"+m.opts.Category)
	}
	if m.opts.Query != "" {
		parts = append(parts, "query:"+m.opts.Query)
	}
	if m.opts.UnderCents > 0 {
		parts = append(parts, fmt.Sprintf("under:%s", display.FormatPrice(&m.opts.UnderCents)))
	}
	if m.opts.Sort != "" {
		parts = append(parts, "sort:"+m.opts.Sort)
	}
	if m.opts.Limit > 0 {
		parts = append(parts, fmt.Sprintf("limit:%d", m.opts.Limit))
	}
	if fuzzy := strings.TrimSpace(m.list.FilterValue()); fuzzy != "" {
		parts = append(parts, "fuzzy:"+fuzzy)
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ", ")
}

func (m *dealsTUIModel) applyCurrentFilters(resetSelection bool) {
	currentID := m.selectedID
	filtered := filter.Apply(m.allDeals, m.opts)
	m.visibleDeals = len(filtered)

	items, starts := buildGroupedListItems(filtered)
	m.groupStarts = starts

	m.list.Title = fmt.Sprintf("Saved deals • %d visible", m.visibleDeals)
	m.list.SetItems(items)

	target := -1
	if !resetSelection && currentID != "" {
		target = findItemIndexByID(items, currentID)
	}
	if target < 0 {
		target = firstDealItemIndex(items)
	}
	if target < 0 && len(items) > 0 {
		target = 0
	}
	if target >= 0 {
		m.list.Select(target)
	}

	m.refreshDetail(true)
}

func (m *dealsTUIModel) refreshDetail(resetScroll bool) {
	var content string
	nextID := ""

	if selected := m.list.SelectedItem(); selected != nil {
		switch item := selected.(type) {
		case tuiDealItem:
			content = renderDealDetailContent(item.deal, m.detail.Width)
			nextID = stableIDForDeal(item.deal)
		case tuiGroupItem:
			content = m.renderGroupDetail(item)
			nextID = stableIDForGroup(item.slug)
		}
	}
	if content == "" {
		content = "No deals match the current inline filters.\n\nTry pressing r to reset filters."
	}

	if resetScroll || nextID != m.selectedID {
		m.detail.GotoTop()
	}
	m.selectedID = nextID
	m.detail.SetContent(content)
}

func (m dealsTUIModel) renderGroupDetail(group tuiGroupItem) string {
	preview := m.groupPreviewTitles(group.name, 5)

	lines := []string{
		tuiSectionStyle.Render(fmt.Sprintf("Section %d: %s", group.ordinal, group.name)),
		tuiMetaStyle.Render(fmt.Sprintf("%d saved deals at this store", group.count)),
		"",
		tuiMetaStyle.Render("Jump keys:"),
		"- `]` next section, `[` previous section",
		"- `1..9` jump directly to section number",
	}
	if len(preview) > 0 {
		lines = append(lines, "")
		lines = append(lines, tuiMetaStyle.Render("Preview:"))
		for _, title := range preview {
			lines = append(lines, "• "+title)
		}
	}

	return strings.Join(lines, "\n")
}

func (m dealsTUIModel) groupPreviewTitles(group string, max int) []string {
	out := make([]string, 0, max)
	for _, item := range m.list.Items() {
		deal, ok := item.(tuiDealItem)
		if !ok || deal.group != group {
			continue
		}
		out = append(out, deal.title)
		if len(out) >= max {
			break
		}
	}
	return out
}

func (m *dealsTUIModel) jumpToSection(index int) {
	if index < 0 || index >= len(m.groupStarts) {
		return
	}

	target := firstDealIndexFrom(m.list.Items(), m.groupStarts[index])
	if target < 0 {
		target = m.groupStarts[index]
	}
	m.list.Select(target)
	m.refreshDetail(true)
}

func (m *dealsTUIModel) jumpSection(delta int) {
	if len(m.groupStarts) == 0 {
		return
	}

	current := m.currentSectionIndex()
	if current < 0 {
		current = 0
	}
	next := current + delta
	if next < 0 {
		next = len(m.groupStarts) - 1
	}
	if next >= len(m.groupStarts) {
		next = 0
	}
	m.jumpToSection(next)
}

func (m dealsTUIModel) currentSectionIndex() int {
	if len(m.groupStarts) == 0 {
		return -1
	}
	cursor := m.list.GlobalIndex()
	current := 0
	for i, start := range m.groupStarts {
		if start <= cursor {
			current = i
			continue
		}
		break
	}
	return current
}

func buildGroupedListItems(deals []filter.Deal) (items []list.Item, starts []int) {
	if len(deals) == 0 {
		return nil, nil
	}

	groups := map[string][]filter.Deal{}
	for _, deal := range deals {
		groups[deal.Offer.StoreSlug] = append(groups[deal.Offer.StoreSlug], deal)
	}

	type groupMeta struct {
		slug  string
		count int
	}

	metas := make([]groupMeta, 0, len(groups))
	for slug, deals := range groups {
		metas = append(metas, groupMeta{slug: slug, count: len(deals)})
	}
	sort.Slice(metas, func(i, j int) bool {
		if metas[i].count != metas[j].count {
			return metas[i].count > metas[j].count
		}
		return metas[i].slug < metas[j].slug
	})

	items = make([]list.Item, 0, len(deals)+len(metas))
	starts = make([]int, 0, len(metas))
	for idx, meta := range metas {
		starts = append(starts, len(items))

		items = append(items, tuiGroupItem{
			slug:    meta.slug,
			name:    display.HumanizeSlug(meta.slug),
			count:   meta.count,
			ordinal: idx + 1,
		})
		for _, deal := range groups[meta.slug] {
			items = append(items, buildTUIDealItem(deal, display.HumanizeSlug(meta.slug)))
		}
	}

	return items, starts
}

func buildTUIDealItem(deal filter.Deal, group string) tuiDealItem {
	title := topDealTitle(deal)
	price := display.FormatPrice(deal.Offer.PriceCents)
	if price == "" {
		price = "No price listed"
	}
	size := strings.TrimSpace(api.Deref(deal.Offer.Size))

	descParts := []string{price}
	if size != "" {
		descParts = append(descParts, size)
	}
	if len(deal.Labels) > 0 {
		descParts = append(descParts, "matches "+deal.Labels[0])
	}

	filterTokens := []string{
		title,
		price,
		size,
		api.Deref(deal.Offer.Unit),
		api.Deref(deal.Offer.Notes),
		strings.Join(deal.Labels, " "),
		group,
	}

	return tuiDealItem{
		deal:        deal,
		group:       group,
		title:       title,
		description: strings.Join(descParts, "  •  "),
		filterValue: strings.ToLower(strings.Join(filterTokens, " ")),
	}
}

func renderDealDetailContent(deal filter.Deal, width int) string {
	maxWidth := maxInt(24, width)

	title := topDealTitle(deal)
	price := display.FormatPrice(deal.Offer.PriceCents)
	if price == "" {
		price = "No price listed"
	}

	lines := []string{
		tuiDealStyle.Render(wrapText(title, maxWidth)),
		tuiMetaStyle.Render(fmt.Sprintf("%s • week %s", display.HumanizeSlug(deal.Offer.StoreSlug), deal.Offer.WeekCode)),
		"",
		fmt.Sprintf("%s %s", tuiMetaStyle.Render("Price:"), tuiValueStyle.Render(price)),
	}

	if size := strings.TrimSpace(api.Deref(deal.Offer.Size)); size != "" {
		lines = append(lines, fmt.Sprintf("%s %s", tuiMetaStyle.Render("Size:"), size))
	}
	if unit := strings.TrimSpace(api.Deref(deal.Offer.Unit)); unit != "" {
		lines = append(lines, fmt.Sprintf("%s %s", tuiMetaStyle.Render("Unit:"), unit))
	}

	if notes := strings.TrimSpace(api.Deref(deal.Offer.Notes)); notes != "" {
		lines = append(lines, "")
		lines = append(lines, tuiMetaStyle.Render("Notes:"))
		lines = append(lines, wrapText(notes, maxWidth))
	}

	lines = append(lines, "")
	lines = append(lines, tuiLabelStyle.Render("Matched saved items:"))
	for _, label := range deal.Labels {
		lines = append(lines, "• "+label)
	}

	lines = append(lines, "")
	lines = append(lines, tuiMutedStyle.Render(fmt.Sprintf("Offer ID: %d", deal.Offer.ID)))

	return strings.Join(lines, "\n")
}

func wrapText(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}
	if width < 12 {
		width = 12
	}

	line := words[0]
	lines := make([]string, 0, len(words)/6+1)
	for _, w := range words[1:] {
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
			continue
		}
		line += " " + w
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}

func canonicalizeTUIOptions(opts filter.Options) filter.Options {
	opts.Sort = canonicalTUISortMode(opts.Sort)
	if opts.Store != "" {
		opts.Store = strings.TrimSpace(opts.Store)
	}
	if opts.Category != "" {
		opts.Category = strings.TrimSpace(opts.Category)
	}
	if opts.Query != "" {
		opts.Query = strings.TrimSpace(opts.Query)
	}
	return opts
}

func canonicalTUISortMode(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "price", "cheapest":
		return "price"
	case "store", "stores":
		return "store"
	default:
		return ""
	}
}

func buildStoreChoices(deals []filter.Deal, current string) []string {
	counts := map[string]int{}
	for _, deal := range deals {
		slug := strings.TrimSpace(deal.Offer.StoreSlug)
		if slug == "" {
			continue
		}
		counts[slug]++
	}

	values := make([]string, 0, len(counts))
	for slug := range counts {
		values = append(values, slug)
	}
	if current != "" && indexOfStringFold(values, current) < 0 {
		values = append(values, current)
	}
	sort.Strings(values)
	sort.SliceStable(values, func(i, j int) bool {
		left := counts[values[i]]
		right := counts[values[j]]
		if left != right {
			return left > right
		}
		return values[i] < values[j]
	})
	return append([]string{""}, values...)
}

func buildLimitChoices(current int) []int {
	values := []int{0, 10, 25, 50, 100}
	if current > 0 && indexOfInt(values, current) < 0 {
		values = append(values, current)
		sort.Ints(values)
	}
	return values
}

func indexOfString(values []string, target string) int {
	for i, value := range values {
		if value == target {
			return i
		}
	}
	return -1
}

func indexOfStringFold(values []string, target string) int {
	for i, value := range values {
		if strings.EqualFold(value, target) {
			return i
		}
	}
	return -1
}

func indexOfInt(values []int, target int) int {
	for i, value := range values {
		if value == target {
			return i
		}
	}
	return -1
}

func findItemIndexByID(items []list.Item, stableID string) int {
	for i, item := range items {
		if stableIDForItem(item) == stableID {
			return i
		}
	}
	return -1
}

func firstDealItemIndex(items []list.Item) int {
	return firstDealIndexFrom(items, 0)
}

func firstDealIndexFrom(items []list.Item, start int) int {
	for i := start; i < len(items); i++ {
		if _, ok := items[i].(tuiDealItem); ok {
			return i
		}
	}
	return -1
}

func stableIDForItem(item list.Item) string {
	switch value := item.(type) {
	case tuiDealItem:
		return stableIDForDeal(value.deal)
	case tuiGroupItem:
		return stableIDForGroup(value.slug)
	default:
		return ""
	}
}

func stableIDForDeal(deal filter.Deal) string {
	if deal.Offer.ID != 0 {
		return fmt.Sprintf("deal:%d", deal.Offer.ID)
	}
	if name := strings.TrimSpace(api.Deref(deal.Offer.ItemName)); name != "" {
		return "deal:name:" + strings.ToLower(name)
	}
	return "deal:unknown"
}

func stableIDForGroup(slug string) string {
	return "group:" + strings.ToLower(strings.TrimSpace(slug))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
