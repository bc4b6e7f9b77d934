// Package tui provides the interactive Bubble Tea dashboard for regimen.
// Every screen is drawn from the session's view model; key presses become
// session actions.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/regimen/internal/config"
	"github.com/theirongolddev/regimen/internal/logger"
	"github.com/theirongolddev/regimen/internal/pipeline"
	"github.com/theirongolddev/regimen/internal/session"
	"github.com/theirongolddev/regimen/internal/tui/components"
	"github.com/theirongolddev/regimen/internal/tui/theme"
	"github.com/theirongolddev/regimen/internal/view"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// DataLoadedMsg is sent when the catalog pipeline finishes.
type DataLoadedMsg struct {
	Result   *pipeline.LoadResult
	Err      error
	LoadTime time.Duration
}

// ProgressMsg reports catalog loading progress.
type ProgressMsg struct {
	Stage   string
	Current int
	Total   int
}

// actionMsg carries the outcome of one session action.
type actionMsg struct {
	resp session.Response
	err  error
}

// Options configures the dashboard.
type Options struct {
	Load         pipeline.LoadOptions
	CalorieGoal  float64
	EventsBuffer int
	NeedSetup    bool
}

// Tab indexes, matching components.Tabs.
const (
	tabDaily = iota
	tabFitness
	tabFood
	tabPresence
	tabSettings
)

var tabScreens = map[int]string{
	tabDaily:    session.ScreenDaily,
	tabFitness:  session.ScreenFitness,
	tabFood:     session.ScreenFood,
	tabPresence: session.ScreenPresence,
}

// App is the root Bubble Tea model.
type App struct {
	ctx  context.Context
	opts Options

	// Data
	sess     *session.Session
	vm       view.ViewModel
	loaded   bool
	loadErr  error
	loadTime time.Duration
	source   string
	message  string // last rejected action, shown in the status bar

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	// Per-tab state
	daily    dailyState
	fitness  fitnessState
	food     foodState
	presence presenceState
	settings settingsState

	// Config form (first-run setup or settings edit)
	form      *huh.Form
	formVals  formValues
	needSetup bool

	// Loading
	spinner     spinner.Model
	stage       string
	progress    int
	progressMax int
	loadSub     chan tea.Msg
}

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 160
	minContentHeight = 5
)

// NewApp creates a new TUI app model. The session it starts runs until
// ctx is canceled.
func NewApp(ctx context.Context, opts Options) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	return App{
		ctx:       ctx,
		opts:      opts,
		needSetup: opts.NeedSetup,
		spinner:   sp,
		food:      newFoodState(),
		presence:  newPresenceState(),
		loadSub:   make(chan tea.Msg, 1),
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadDataCmd(a.ctx, a.opts.Load, a.loadSub),
		a.spinner.Tick,
	)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.form != nil {
			a.form = a.form.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || a.form != nil {
			return a, nil
		}
		if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress && msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
		return a, nil

	case tea.KeyMsg:
		return a.updateKey(msg)

	case ProgressMsg:
		a.stage = msg.Stage
		a.progress = msg.Current
		a.progressMax = msg.Total
		return a, waitForLoadMsg(a.loadSub)

	case DataLoadedMsg:
		return a.dataLoaded(msg)

	case actionMsg:
		if msg.err != nil {
			a.message = msg.err.Error()
			return a, nil
		}
		a.vm = msg.resp.View
		a.message = msg.resp.Error
		if msg.resp.Screen != tabScreens[a.activeTab] {
			for tab, screen := range tabScreens {
				if screen == msg.resp.Screen {
					a.activeTab = tab
				}
			}
		}
		a.clampCursors()
		return a, nil

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Forward unhandled messages to the form (cursor blinks, etc.)
	if a.form != nil {
		return a.updateForm(msg)
	}
	return a, nil
}

func (a App) dataLoaded(msg DataLoadedMsg) (tea.Model, tea.Cmd) {
	a.loaded = true
	a.loadTime = msg.LoadTime
	if msg.Err != nil {
		a.loadErr = msg.Err
		return a, nil
	}

	sess, err := session.New(session.Config{
		Catalog:      msg.Result.Catalog,
		CalorieGoal:  a.opts.CalorieGoal,
		EventsBuffer: a.opts.EventsBuffer,
	})
	if err != nil {
		a.loadErr = err
		return a, nil
	}
	go func() {
		if err := sess.Run(a.ctx); err != nil {
			logger.Error("session stopped", "err", err)
		}
	}()

	a.sess = sess
	a.vm = sess.View()
	a.source = msg.Result.FoodSource
	logger.Info("dashboard ready", "session", sess.ID(), "foods", msg.Result.FoodCount, "source", a.source)

	if a.needSetup {
		return a, a.openForm(true)
	}
	return a, nil
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return a, tea.Quit
	}
	if !a.loaded {
		return a, nil
	}
	if a.loadErr != nil {
		if key == "q" || key == "esc" {
			return a, tea.Quit
		}
		return a, nil
	}
	if a.form != nil {
		return a.updateForm(msg)
	}

	// Text inputs take every key while focused.
	switch {
	case a.activeTab == tabFood && a.food.input.Focused():
		return a.updateFoodSearch(msg)
	case a.activeTab == tabPresence && a.presence.input.Focused():
		return a.updatePresenceSearch(msg)
	}

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	var (
		handled bool
		cmd     tea.Cmd
	)
	switch a.activeTab {
	case tabDaily:
		a, handled, cmd = a.updateDaily(key)
	case tabFitness:
		a, handled, cmd = a.updateFitness(key)
	case tabFood:
		a, handled, cmd = a.updateFood(key)
	case tabPresence:
		a, handled, cmd = a.updatePresence(key)
	case tabSettings:
		if key == "enter" || key == "e" {
			return a, a.openForm(false)
		}
	}
	if handled {
		return a, cmd
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "left", "shift+tab":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
	case "right", "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
	default:
		if r := []rune(key); len(r) == 1 {
			if tab := components.TabIdxByKey(r[0]); tab >= 0 {
				a.activeTab = tab
			}
		}
	}
	return a, nil
}

// apply sends one action for the active screen to the session.
func (a App) apply(screen, action, payload string) tea.Cmd {
	sess, ctx := a.sess, a.ctx
	if sess == nil {
		return nil
	}
	req := session.Request{Screen: screen, Action: action, Payload: payload}
	return func() tea.Msg {
		resp, err := sess.Apply(ctx, req)
		return actionMsg{resp: resp, err: err}
	}
}

func (a *App) clampCursors() {
	a.daily.cursor = clamp(a.daily.cursor, len(a.vm.Daily.Tasks))
	a.food.cursor = clamp(a.food.cursor, len(a.vm.Food.Results))
	a.food.logCursor = clamp(a.food.logCursor, len(a.vm.Food.Entries))
	if a.vm.Fitness.Plan != nil {
		a.fitness.workoutCursor = clamp(a.fitness.workoutCursor, len(a.vm.Fitness.Plan.Workouts))
	}
	a.fitness.goalCursor = clamp(a.fitness.goalCursor, len(a.vm.Fitness.Goals))
	if a.vm.Presence.Results != nil {
		a.presence.cursor = clamp(a.presence.cursor, len(a.vm.Presence.Results.Categories))
	}
}

// clamp keeps a list cursor inside [0, n).
func clamp(cursor, n int) int {
	return max(min(cursor, n-1), 0)
}

func moveCursor(cursor, n int, key string) (int, bool) {
	switch key {
	case "j", "down":
		return clamp(cursor+1, n), true
	case "k", "up":
		return clamp(cursor-1, n), true
	case "g", "home":
		return 0, true
	case "G", "end":
		return clamp(n-1, n), true
	}
	return cursor, false
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if !a.loaded {
		return a.viewLoading()
	}
	if a.loadErr != nil {
		return a.viewError()
	}
	if a.form != nil {
		return a.form.View()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  regimen needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) centeredCard(body string) string {
	t := theme.Active
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3).
		Render(body)
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewLoading() string {
	t := theme.Active

	logoStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	subtitleStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ regimen"))
	b.WriteString(subtitleStyle.Render(" · daily protocol, fitness & food"))
	b.WriteString("\n\n")
	b.WriteString(a.spinner.View())

	if a.progressMax > 0 {
		b.WriteString(subtitleStyle.Render(fmt.Sprintf(" Loading %s\n\n", a.stage)))
		barW := min(max(a.width-40, 20), 40)
		b.WriteString(components.ProgressBar(float64(a.progress)/float64(a.progressMax), barW))
	} else {
		b.WriteString(subtitleStyle.Render(" Loading catalog..."))
	}
	return a.centeredCard(b.String())
}

func (a App) viewError() string {
	t := theme.Active
	errStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	return a.centeredCard(
		errStyle.Render("Could not start regimen") + "\n\n" +
			dimStyle.Render(a.loadErr.Error()) + "\n\n" +
			dimStyle.Render("Press q to quit"),
	)
}

func (a App) viewHelp() string {
	t := theme.Active

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	sections := []struct {
		title    string
		bindings [][2]string
	}{
		{"Navigation", [][2]string{
			{"d f o p x", "Jump to tab"},
			{"← →", "Previous / Next tab"},
			{"j k", "Move in lists"},
		}},
		{"Screens", [][2]string{
			{"space", "Toggle daily task"},
			{"n", "Daily: open food · Presence: new search"},
			{"1-9", "Fitness: run listed action"},
			{"[ ]", "Fitness: previous / next day"},
			{"/", "Search foods or topics"},
			{"enter", "Add / Open / Confirm"},
			{"tab", "Food: switch search / log"},
			{"d del", "Remove logged food"},
			{"esc", "Back"},
		}},
		{"General", [][2]string{
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, s := range sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(s.title))
		b.WriteString("\n")
		for _, bind := range s.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", bind[0])),
				descStyle.Render(bind[1]))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))
	return a.centeredCard(b.String())
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()

	header := components.RenderTabBar(a.activeTab, w)
	info := fmt.Sprintf("%s · %s · loaded in %s", a.vm.Fitness.Step, a.source, a.loadTime.Round(time.Millisecond))
	statusBar := components.RenderStatusBar(w, info, a.message)

	contentH := max(a.height-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	var content string
	switch a.activeTab {
	case tabDaily:
		content = a.renderDailyTab(cw)
	case tabFitness:
		content = a.renderFitnessTab(cw)
	case tabFood:
		content = a.renderFoodTab(cw)
	case tabPresence:
		content = a.renderPresenceTab(cw)
	case tabSettings:
		content = a.renderSettingsTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, a.height, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Helpers ────────────────────────────────────────────────────

// loadDataCmd starts the catalog pipeline in a background goroutine.
// It streams ProgressMsg updates and a final DataLoadedMsg through sub.
func loadDataCmd(ctx context.Context, opts pipeline.LoadOptions, sub chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		go func() {
			start := time.Now()

			// Non-blocking send; the next update catches up.
			progressFn := func(stage string, current, total int) {
				select {
				case sub <- ProgressMsg{Stage: stage, Current: current, Total: total}:
				default:
				}
			}

			result, err := pipeline.Load(ctx, opts, progressFn)
			sub <- DataLoadedMsg{Result: result, Err: err, LoadTime: time.Since(start)}
		}()

		return <-sub
	}
}

// waitForLoadMsg blocks until the next message arrives from the loader goroutine.
func waitForLoadMsg(sub chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-sub
	}
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
	}
	return strings.Join(lines, "\n")
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes use the same widths as RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW + 1 // separator
	}
	return -1
}

// ─── Config form ────────────────────────────────────────────────

func (a *App) openForm(firstRun bool) tea.Cmd {
	cfg := loadConfigOrDefault()
	a.formVals = formValuesFrom(cfg)
	a.form = newConfigForm(&a.formVals, firstRun)
	if a.width > 0 {
		a.form = a.form.WithWidth(a.width).WithHeight(a.height)
	}
	return a.form.Init()
}

func (a App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" {
		a.form = nil
		a.needSetup = false
		return a, nil
	}

	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	switch a.form.State {
	case huh.StateCompleted:
		a.settings.saveErr = a.saveForm()
		a.settings.saved = a.settings.saveErr == nil
		a.form = nil
		a.needSetup = false
		return a, nil
	case huh.StateAborted:
		a.form = nil
		a.needSetup = false
		return a, nil
	}
	return a, cmd
}

// loadConfigOrDefault loads config, returning defaults on error so the
// dashboard can always start.
func loadConfigOrDefault() config.Config {
	cfg, err := config.Load()
	if err != nil {
		return config.DefaultConfig()
	}
	return cfg
}
