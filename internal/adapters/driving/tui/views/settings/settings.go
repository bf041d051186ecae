// Package settings provides the settings configuration view for the TUI.
package settings

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/tarika/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/tarika/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/tarika/internal/core/domain"
	"github.com/custodia-labs/tarika/internal/core/ports/driving"
)

// Section tracks which settings section is active.
type Section int

const (
	SectionOverview Section = iota
	SectionLanguage
	SectionRate
	SectionLLM
)

// rateStep is how far one keypress moves the extraction rate.
const rateStep = 5

// Key constants for key handling.
const (
	keyDown  = "down"
	keyEnter = "enter"
	keyTab   = "tab"
)

// View is the settings configuration view.
type View struct {
	styles          *styles.Styles
	settingsService driving.SettingsService

	settings *domain.AppSettings
	err      error

	section      Section
	selected     int // selection within current section
	focusedField int // 1 when the API key input has focus
	rate         int // pending requests-per-minute while editing

	llmAPIKeyInput textinput.Model

	width  int
	height int
	ready  bool
}

// NewView creates a new settings view.
func NewView(s *styles.Styles, settingsService driving.SettingsService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	llmAPIKeyInput := textinput.New()
	llmAPIKeyInput.Placeholder = "Enter API key"
	llmAPIKeyInput.EchoMode = textinput.EchoPassword
	llmAPIKeyInput.CharLimit = 256

	return &View{
		styles:          s,
		settingsService: settingsService,
		section:         SectionOverview,
		llmAPIKeyInput:  llmAPIKeyInput,
	}
}

// Init initialises the view and loads settings.
func (v *View) Init() tea.Cmd {
	return v.loadSettings()
}

// loadSettings returns a command that loads current settings.
func (v *View) loadSettings() tea.Cmd {
	svc := v.settingsService
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingsLoaded{Err: fmt.Errorf("settings service not available")}
		}
		settings, err := svc.Get()
		return messages.SettingsLoaded{Settings: settings, Err: err}
	}
}

// Update handles messages for the settings view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.SettingsLoaded:
		if msg.Err != nil {
			v.err = msg.Err
		} else {
			v.settings = msg.Settings
			v.err = nil
		}
		return v, nil

	case messages.SettingsSaved:
		if msg.Err != nil {
			v.err = msg.Err
			return v, nil
		}
		v.Reset()
		return v, v.loadSettings()

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

// handleKeyMsg handles key presses based on current section.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.String() == "esc" {
		if v.section == SectionOverview {
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		}
		v.Reset()
		return v, nil
	}

	if v.settings == nil {
		return v, nil
	}

	switch v.section {
	case SectionOverview:
		return v.handleOverviewKeys(msg)
	case SectionLanguage:
		return v.handleLanguageKeys(msg)
	case SectionRate:
		return v.handleRateKeys(msg)
	case SectionLLM:
		return v.handleLLMKeys(msg)
	}

	return v, nil
}

func (v *View) handleOverviewKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	// Language, Extraction rate, LLM provider
	maxItems := 3

	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case keyDown, "j":
		if v.selected < maxItems-1 {
			v.selected++
		}
	case keyEnter:
		switch v.selected {
		case 0:
			v.section = SectionLanguage
			v.selected = v.languageIndex()
		case 1:
			v.section = SectionRate
			v.rate = v.settings.Extraction.RequestsPerMinute
		case 2:
			v.section = SectionLLM
			v.selected = v.llmProviderIndex()
		}
	}
	return v, nil
}

func (v *View) handleLanguageKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	langs := domain.AllLanguages()

	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case keyDown, "j":
		if v.selected < len(langs)-1 {
			v.selected++
		}
	case keyEnter:
		if v.selected >= 0 && v.selected < len(langs) {
			return v, v.setLanguage(langs[v.selected])
		}
	}
	return v, nil
}

func (v *View) handleRateKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k", "right", "l", "+":
		v.rate += rateStep
	case keyDown, "j", "left", "h", "-":
		if v.rate-rateStep >= 1 {
			v.rate -= rateStep
		} else {
			v.rate = 1
		}
	case keyEnter:
		return v, v.setRate(v.rate)
	}
	return v, nil
}

func (v *View) handleLLMKeys(msg tea.KeyMsg) (*View, tea.Cmd) {
	providers := domain.AllLLMProviders()

	if v.focusedField == 1 {
		switch msg.String() {
		case keyTab, "shift+tab":
			v.focusedField = 0
			v.llmAPIKeyInput.Blur()
			return v, nil
		case keyEnter:
			if v.selected >= 0 && v.selected < len(providers) {
				return v, v.setLLMProvider(providers[v.selected], v.llmAPIKeyInput.Value())
			}
		default:
			var cmd tea.Cmd
			v.llmAPIKeyInput, cmd = v.llmAPIKeyInput.Update(msg)
			return v, cmd
		}
		return v, nil
	}

	switch msg.String() {
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case keyDown, "j":
		if v.selected < len(providers)-1 {
			v.selected++
		}
	case keyTab, keyEnter:
		if v.selected < 0 || v.selected >= len(providers) {
			return v, nil
		}
		provider := providers[v.selected]
		if provider.RequiresAPIKey() {
			v.focusedField = 1
			return v, v.llmAPIKeyInput.Focus()
		}
		if msg.String() == keyEnter {
			return v, v.setLLMProvider(provider, "")
		}
	}
	return v, nil
}

// Commands to update settings.

func (v *View) setLanguage(lang domain.Language) tea.Cmd {
	svc := v.settingsService
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingsSaved{Err: fmt.Errorf("settings service not available")}
		}
		return messages.SettingsSaved{Err: svc.SetLanguage(lang)}
	}
}

func (v *View) setRate(n int) tea.Cmd {
	svc := v.settingsService
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingsSaved{Err: fmt.Errorf("settings service not available")}
		}
		return messages.SettingsSaved{Err: svc.SetRequestsPerMinute(n)}
	}
}

func (v *View) setLLMProvider(provider domain.AIProvider, apiKey string) tea.Cmd {
	svc := v.settingsService
	return func() tea.Msg {
		if svc == nil {
			return messages.SettingsSaved{Err: fmt.Errorf("settings service not available")}
		}
		model := domain.DefaultLLMModels()[provider]
		return messages.SettingsSaved{Err: svc.SetLLMProvider(provider, model, apiKey)}
	}
}

func (v *View) languageIndex() int {
	for i, l := range domain.AllLanguages() {
		if l == v.settings.Report.Language {
			return i
		}
	}
	return 0
}

func (v *View) llmProviderIndex() int {
	for i, p := range domain.AllLLMProviders() {
		if p == v.settings.LLM.Provider {
			return i
		}
	}
	return 0
}

// View renders the settings view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Settings"))
	b.WriteString("\n\n")

	if v.err != nil {
		b.WriteString(v.styles.Error.Render(fmt.Sprintf("Error: %s", v.err.Error())))
		b.WriteString("\n\n")
	}

	if v.settings == nil {
		b.WriteString(v.styles.Muted.Render("Loading settings..."))
		return b.String()
	}

	switch v.section {
	case SectionOverview:
		b.WriteString(v.renderOverview())
	case SectionLanguage:
		b.WriteString(v.renderLanguageSelect())
	case SectionRate:
		b.WriteString(v.renderRate())
	case SectionLLM:
		b.WriteString(v.renderLLMSelect())
	}

	b.WriteString("\n")
	b.WriteString(v.renderHelp())

	return b.String()
}

func (v *View) renderOverview() string {
	var b strings.Builder

	llmValue := "Not Set (records only)"
	if v.settings.LLM.Provider != "" {
		llmValue = fmt.Sprintf("%s (%s)", v.settings.LLM.Provider.Description(), v.settings.LLM.Model)
	}

	items := []struct {
		label  string
		value  string
		status string
	}{
		{label: "Report Language", value: v.settings.Report.Language.Description()},
		{label: "Extraction Rate", value: fmt.Sprintf("%d requests/minute", v.settings.Extraction.RequestsPerMinute)},
		{label: "LLM Provider", value: llmValue, status: v.llmStatus()},
	}

	for i, item := range items {
		v.writeOption(&b, i == v.selected, fmt.Sprintf("%s: %s", item.label, item.value), item.status)
	}

	b.WriteString("\n")
	if v.settingsService != nil {
		if err := v.settingsService.Validate(); err != nil {
			b.WriteString(v.styles.Pending.Render(fmt.Sprintf("Warning: %s", err.Error())))
		} else {
			b.WriteString(v.styles.Authorized.Render("Configuration is valid"))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (v *View) llmStatus() string {
	if v.settings.LLM.Provider == "" {
		return ""
	}
	if v.settings.LLM.IsConfigured() {
		return v.styles.Authorized.Render("[configured]")
	}
	return v.styles.Pending.Render("[needs API key]")
}

func (v *View) writeOption(b *strings.Builder, selected bool, label, suffix string) {
	indicator := "  "
	if selected {
		indicator = "> "
	}
	line := indicator + label
	if suffix != "" {
		line += " " + suffix
	}
	if selected {
		b.WriteString(v.styles.Selected.Render(line))
	} else {
		b.WriteString(v.styles.Normal.Render(line))
	}
	b.WriteString("\n")
}

func (v *View) renderLanguageSelect() string {
	var b strings.Builder

	b.WriteString(v.styles.Subtitle.Render("Select Report Language"))
	b.WriteString("\n\n")

	for i, lang := range domain.AllLanguages() {
		current := ""
		if lang == v.settings.Report.Language {
			current = v.styles.Authorized.Render("(current)")
		}
		v.writeOption(&b, i == v.selected, lang.Description(), current)
	}

	return b.String()
}

func (v *View) renderRate() string {
	var b strings.Builder

	b.WriteString(v.styles.Subtitle.Render("Extraction Rate Limit"))
	b.WriteString("\n\n")
	b.WriteString(v.styles.Selected.Render(fmt.Sprintf("  < %d requests/minute >", v.rate)))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf("    Current: %d", v.settings.Extraction.RequestsPerMinute)))
	b.WriteString("\n")

	return b.String()
}

func (v *View) renderLLMSelect() string {
	var b strings.Builder

	b.WriteString(v.styles.Subtitle.Render("Select LLM Provider"))
	b.WriteString("\n\n")

	providers := domain.AllLLMProviders()
	defaults := domain.DefaultLLMModels()
	for i, provider := range providers {
		current := ""
		if provider == v.settings.LLM.Provider {
			current = v.styles.Authorized.Render("(current)")
		}
		v.writeOption(&b, i == v.selected && v.focusedField == 0, provider.Description(), current)

		if model, ok := defaults[provider]; ok {
			b.WriteString(v.styles.Muted.Render(fmt.Sprintf("    Model: %s", model)))
			b.WriteString("\n")
		}
	}

	if v.selected >= 0 && v.selected < len(providers) && providers[v.selected].RequiresAPIKey() {
		b.WriteString("\n")
		b.WriteString(v.styles.Normal.Render("API Key:"))
		b.WriteString("\n")
		b.WriteString(v.llmAPIKeyInput.View())
		b.WriteString("\n")
	}

	return b.String()
}

func (v *View) renderHelp() string {
	switch v.section {
	case SectionOverview:
		return v.styles.Help.Render("[j/k] navigate  [enter] edit  [esc] back")
	case SectionLanguage:
		return v.styles.Help.Render("[j/k] navigate  [enter] select  [esc] back")
	case SectionRate:
		return v.styles.Help.Render("[+/-] adjust  [enter] save  [esc] back")
	case SectionLLM:
		if v.focusedField == 1 {
			return v.styles.Help.Render("[tab] back to list  [enter] save  [esc] back")
		}
		return v.styles.Help.Render("[j/k] navigate  [tab] API key  [enter] select  [esc] back")
	default:
		return ""
	}
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Section returns the active section.
func (v *View) Section() Section {
	return v.section
}

// Settings returns the loaded settings.
func (v *View) Settings() *domain.AppSettings {
	return v.settings
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

// Reset returns the view to the overview.
func (v *View) Reset() {
	v.section = SectionOverview
	v.selected = 0
	v.focusedField = 0
	v.rate = 0
	v.err = nil
	v.llmAPIKeyInput.SetValue("")
	v.llmAPIKeyInput.Blur()
}
