// This file implements the interactive single-page interface using bubbletea.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"textsmith/cmd/textsmith/config"
	"textsmith/cmd/textsmith/ui"
	"textsmith/internal/gemini"
	"textsmith/internal/prompt"
	"textsmith/internal/session"
)

// clipboardWriteAll is a package-level variable to allow mocking in tests.
var clipboardWriteAll = clipboard.WriteAll

// focusArea identifies which control receives typed input.
type focusArea int

const (
	focusInput focusArea = iota
	focusKey
)

// Messages for tea updates.
type (
	generateDoneMsg struct{ text string }
	generateFailMsg struct{ err error }
	statusExpireMsg struct{ seq uint64 }
)

// tuiModel is the bubbletea model for the single-page interface. All
// interaction state lives in the session controller; the model holds only
// presentation concerns.
type tuiModel struct {
	textarea textarea.Model
	keyInput textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	styles   ui.Styles
	renderer *glamour.TermRenderer

	sess   *session.State
	cfg    config.Config
	logger *zap.Logger

	focus  focusArea
	width  int
	height int
	ready  bool
}

func newTUIModel(cfg config.Config, logger *zap.Logger) tuiModel {
	styles := ui.DefaultStyles()
	if cfg.Theme == "dark" {
		styles = ui.NewStyles(ui.DarkTheme())
	}

	ta := textarea.New()
	ta.Placeholder = "Paste or type the text to transform..."
	ta.CharLimit = 0
	ta.SetWidth(80)
	ta.SetHeight(6)
	ta.Focus()

	ki := textinput.New()
	ki.Placeholder = "Gemini API key"
	ki.EchoMode = textinput.EchoPassword
	ki.EchoCharacter = '•'
	ki.Prompt = "│ "
	ki.PromptStyle = styles.Prompt
	ki.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	vp := viewport.New(80, 10)
	vp.SetContent("")

	var renderer *glamour.TermRenderer
	if styles.Theme.IsDark {
		renderer, _ = glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(80),
		)
	} else {
		renderer, _ = glamour.NewTermRenderer(
			glamour.WithStylePath("light"),
			glamour.WithWordWrap(80),
		)
	}

	sess := session.New()
	sess.APIKey = os.Getenv("GEMINI_API_KEY")
	ki.SetValue(sess.APIKey)

	if logger == nil {
		logger = zap.NewNop()
	}

	return tuiModel{
		textarea: ta,
		keyInput: ki,
		viewport: vp,
		spinner:  sp,
		styles:   styles,
		renderer: renderer,
		sess:     sess,
		cfg:      cfg,
		logger:   logger,
		focus:    focusInput,
	}
}

func (m tuiModel) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.spinner.Tick)
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		taCmd tea.Cmd
		kiCmd tea.Cmd
		vpCmd tea.Cmd
		spCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyTab:
			m.toggleFocus()
			return m, nil

		case tea.KeyCtrlS:
			return m.trigger(prompt.ModeSummarize)

		case tea.KeyCtrlP:
			return m.trigger(prompt.ModeParaphrase)

		case tea.KeyCtrlY:
			m.sess.CopyResult(clipboardWriteAll)
			return m, m.armStatus()

		case tea.KeyCtrlX:
			m.sess.ClearInput()
			m.textarea.Reset()
			m.viewport.SetContent("")
			return m, m.armStatus()

		case tea.KeyCtrlL:
			if !m.sess.Busy {
				m.sess.SummaryLength = cycleLength(m.sess.SummaryLength)
			}
			return m, nil

		case tea.KeyCtrlT:
			if !m.sess.Busy {
				m.sess.ParaphraseStyle = cycleStyle(m.sess.ParaphraseStyle)
			}
			return m, nil

		case tea.KeyPgUp, tea.KeyPgDown:
			m.viewport, vpCmd = m.viewport.Update(msg)
			return m, vpCmd
		}

		// Regular typing goes to the focused control; input controls are
		// frozen while a call is in flight.
		if !m.sess.Busy {
			if m.focus == focusInput {
				m.textarea, taCmd = m.textarea.Update(msg)
				m.sess.Input = m.textarea.Value()
			} else {
				m.keyInput, kiCmd = m.keyInput.Update(msg)
				m.sess.APIKey = m.keyInput.Value()
			}
		}
		return m, tea.Batch(taCmd, kiCmd)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.ready = true

	case spinner.TickMsg:
		if m.sess.Busy {
			m.spinner, spCmd = m.spinner.Update(msg)
			return m, spCmd
		}

	case generateDoneMsg:
		m.sess.FinishSuccess(msg.text)
		m.setResult(msg.text)
		return m, m.armStatus()

	case generateFailMsg:
		m.logger.Debug("generation failed", zap.Error(msg.err))
		m.sess.FinishFailure(msg.err)
		return m, m.armStatus()

	case statusExpireMsg:
		m.sess.ExpireStatus(msg.seq)
		return m, nil
	}

	m.viewport, vpCmd = m.viewport.Update(msg)
	return m, vpCmd
}

func (m *tuiModel) toggleFocus() {
	if m.focus == focusInput {
		m.focus = focusKey
		m.textarea.Blur()
		m.keyInput.Focus()
	} else {
		m.focus = focusInput
		m.keyInput.Blur()
		m.textarea.Focus()
	}
}

// trigger starts a generate action. The session controller does all the
// validation; the model only schedules the network call and the banner timer.
func (m tuiModel) trigger(mode prompt.Mode) (tea.Model, tea.Cmd) {
	m.sess.Input = m.textarea.Value()
	m.sess.APIKey = m.keyInput.Value()

	p, ok := m.sess.Begin(mode)
	if !ok {
		return m, m.armStatus()
	}
	m.viewport.SetContent("")
	return m, tea.Batch(m.spinner.Tick, m.generateCmd(p))
}

// generateCmd runs the external call off the update loop and posts the
// outcome back as a message.
func (m tuiModel) generateCmd(p string) tea.Cmd {
	client := gemini.NewClientWithConfig(gemini.Config{
		APIKey:  m.sess.APIKey,
		BaseURL: m.cfg.BaseURL,
		Model:   m.cfg.Model,
		Timeout: m.cfg.Timeout.Std(),
		Logger:  m.logger,
	})
	return func() tea.Msg {
		text, err := client.Generate(context.Background(), p)
		if err != nil {
			return generateFailMsg{err: err}
		}
		return generateDoneMsg{text: text}
	}
}

// armStatus schedules the auto-dismiss for the currently displayed banner.
// The sequence number travels with the timer so a superseded banner's timer
// cannot clear its successor.
func (m tuiModel) armStatus() tea.Cmd {
	if m.sess.Status.Kind == session.StatusNone {
		return nil
	}
	seq := m.sess.Status.Seq
	return tea.Tick(session.StatusTTL, func(time.Time) tea.Msg {
		return statusExpireMsg{seq: seq}
	})
}

func (m *tuiModel) setResult(text string) {
	if m.renderer != nil {
		if rendered, err := m.renderer.Render(text); err == nil {
			m.viewport.SetContent(rendered)
			m.viewport.GotoTop()
			return
		}
	}
	m.viewport.SetContent(text)
	m.viewport.GotoTop()
}

func (m *tuiModel) layout() {
	contentWidth := m.width - 4
	if contentWidth < 20 {
		contentWidth = 20
	}

	m.textarea.SetWidth(contentWidth)
	m.keyInput.Width = contentWidth

	// Header(1) + key(1) + options(2) + banner(1) + footer(1) + borders.
	chrome := 14
	resultHeight := m.height - m.textarea.Height() - chrome
	if resultHeight < 3 {
		resultHeight = 3
	}
	m.viewport.Width = contentWidth
	m.viewport.Height = resultHeight

	if m.renderer != nil {
		wrap := contentWidth
		if wrap > 100 {
			wrap = 100
		}
		if m.styles.Theme.IsDark {
			m.renderer, _ = glamour.NewTermRenderer(
				glamour.WithAutoStyle(),
				glamour.WithWordWrap(wrap),
			)
		} else {
			m.renderer, _ = glamour.NewTermRenderer(
				glamour.WithStylePath("light"),
				glamour.WithWordWrap(wrap),
			)
		}
	}
}

func cycleLength(l prompt.SummaryLength) prompt.SummaryLength {
	for i, v := range prompt.SummaryLengths {
		if v == l {
			return prompt.SummaryLengths[(i+1)%len(prompt.SummaryLengths)]
		}
	}
	return prompt.LengthStandard
}

func cycleStyle(s prompt.ParaphraseStyle) prompt.ParaphraseStyle {
	for i, v := range prompt.ParaphraseStyles {
		if v == s {
			return prompt.ParaphraseStyles[(i+1)%len(prompt.ParaphraseStyles)]
		}
	}
	return prompt.StyleFormal
}

func (m tuiModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	header := m.styles.Header.Render("textsmith — summarize & paraphrase")

	inputPane := m.styles.BlurredPane.Render(m.textarea.View())
	if m.focus == focusInput {
		inputPane = m.styles.FocusedPane.Render(m.textarea.View())
	}

	keyLabel := m.styles.Muted.Render("API key ")
	keyLine := keyLabel + m.keyInput.View()
	if m.focus == focusKey {
		keyLine = m.styles.Title.Render("API key ") + m.keyInput.View()
	}

	options := lipgloss.JoinVertical(lipgloss.Left,
		m.renderLengthOptions(),
		m.renderStyleOptions(),
	)

	resultTitle := m.styles.Title.Render("Result")
	if m.sess.Busy {
		resultTitle = m.spinner.View() + m.styles.Muted.Render(" Generating...")
	}
	resultPane := m.styles.BlurredPane.Render(m.viewport.View())

	banner := m.renderBanner()

	help := m.styles.Footer.Render(
		"tab: focus • ctrl+s: summarize • ctrl+p: paraphrase • ctrl+l/t: options • ctrl+y: copy • ctrl+x: clear • esc: quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		inputPane,
		keyLine,
		options,
		resultTitle,
		resultPane,
		banner,
		help,
	)
}

func (m tuiModel) renderLengthOptions() string {
	parts := make([]string, 0, len(prompt.SummaryLengths))
	for _, l := range prompt.SummaryLengths {
		label := string(l)
		if l == m.sess.SummaryLength {
			parts = append(parts, m.styles.OptionSelected.Render(label))
		} else {
			parts = append(parts, m.styles.Option.Render(label))
		}
	}
	return m.styles.Muted.Render("Summary length:   ") + strings.Join(parts, m.styles.Muted.Render(" | "))
}

func (m tuiModel) renderStyleOptions() string {
	parts := make([]string, 0, len(prompt.ParaphraseStyles))
	for _, s := range prompt.ParaphraseStyles {
		label := string(s)
		if s == m.sess.ParaphraseStyle {
			parts = append(parts, m.styles.OptionSelected.Render(label))
		} else {
			parts = append(parts, m.styles.Option.Render(label))
		}
	}
	return m.styles.Muted.Render("Paraphrase style: ") + strings.Join(parts, m.styles.Muted.Render(" | "))
}

func (m tuiModel) renderBanner() string {
	switch m.sess.Status.Kind {
	case session.StatusSuccess:
		return m.styles.SuccessBanner.Render(m.sess.Status.Text)
	case session.StatusError:
		return m.styles.ErrorBanner.Render(m.sess.Status.Text)
	default:
		return " "
	}
}

// runInteractive launches the TUI.
func runInteractive(cfg config.Config, logger *zap.Logger) error {
	p := tea.NewProgram(newTUIModel(cfg, logger), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run interface: %w", err)
	}
	return nil
}
