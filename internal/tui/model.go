package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/KandeChandrika/ITC-Financial-Analysis/internal/domain"
)

// AskPort is the TUI-facing subset of the answer pipeline.
type AskPort interface {
	Ask(ctx context.Context, query string) (domain.Answer, error)
}

// Options holds presentation knobs passed in from config.
type Options struct {
	PreviewChars int
	Timeout      time.Duration
}

// Model is the Bubble Tea model for the Q&A application.
type Model struct {
	pipeline AskPort
	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	renderer *glamour.TermRenderer

	answer   string
	sources  []domain.SourceChunk
	expanded []bool
	errText  string

	loading      bool
	showAbout    bool
	focusSources bool
	cursor       int
	ready        bool

	previewChars int
	timeout      time.Duration
}

type answerMsg domain.Answer

type answerErrMsg struct{ err error }

// New creates a new TUI model instance.
func New(pipeline AskPort, opts Options) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask about the sustainability report and press Enter"
	ti.Focus()
	ti.CharLimit = 0

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	if opts.PreviewChars <= 0 {
		opts.PreviewChars = 200
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}

	return Model{
		pipeline:     pipeline,
		input:        ti,
		viewport:     viewport.New(0, 0),
		spinner:      sp,
		previewChars: opts.PreviewChars,
		timeout:      opts.Timeout,
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key, window and pipeline events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := resultBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 2 + 1 + qh + 1 // header+spacer, status, query box, spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		if w := msg.Width - 4; w > 20 {
			m.renderer, _ = glamour.NewTermRenderer(
				glamour.WithAutoStyle(),
				glamour.WithWordWrap(w),
			)
		}
		m.viewport.SetContent(m.renderResults())
		return m, nil

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case answerMsg:
		m.loading = false
		m.errText = ""
		m.answer = msg.Text
		m.sources = msg.Sources
		m.expanded = make([]bool, len(msg.Sources))
		m.cursor = 0
		m.focusSources = false
		m.viewport.SetContent(m.renderResults())
		m.viewport.GotoTop()
		return m, nil

	case answerErrMsg:
		m.loading = false
		m.errText = msg.err.Error()
		m.viewport.SetContent(m.renderResults())
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		if m.loading {
			return m, nil
		}
		switch msg.String() {
		case "ctrl+a":
			m.showAbout = !m.showAbout
			return m, nil
		case "tab":
			if len(m.sources) > 0 {
				m.focusSources = !m.focusSources
				if m.focusSources {
					m.input.Blur()
				} else {
					m.input.Focus()
				}
				m.viewport.SetContent(m.renderResults())
			}
			return m, nil
		case "enter":
			if m.focusSources {
				return m.toggleSource(), nil
			}
			return m.submit()
		case " ", "space":
			if m.focusSources {
				return m.toggleSource(), nil
			}
		case "down":
			if m.focusSources && len(m.sources) > 0 {
				m.cursor = (m.cursor + 1) % len(m.sources)
				m.viewport.SetContent(m.renderResults())
				return m, nil
			}
		case "up":
			if m.focusSources && len(m.sources) > 0 {
				m.cursor = (m.cursor - 1 + len(m.sources)) % len(m.sources)
				m.viewport.SetContent(m.renderResults())
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	if m.focusSources {
		m.viewport, cmd = m.viewport.Update(msg)
	} else {
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

func (m Model) submit() (Model, tea.Cmd) {
	q := strings.TrimSpace(m.input.Value())
	if q == "" {
		return m, nil
	}
	m.loading = true
	m.errText = ""
	return m, tea.Batch(m.spinner.Tick, m.ask(q))
}

func (m Model) toggleSource() Model {
	if m.cursor < len(m.expanded) {
		m.expanded[m.cursor] = !m.expanded[m.cursor]
		m.viewport.SetContent(m.renderResults())
	}
	return m
}

func (m Model) ask(query string) tea.Cmd {
	pipeline := m.pipeline
	timeout := m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		ans, err := pipeline.Ask(ctx, query)
		if err != nil {
			return answerErrMsg{err}
		}
		return answerMsg(ans)
	}
}

// View renders the TUI layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := headerStyle.Render("Sustainability Report Q&A")
	sub := subtleStyle.Render("Answers come from the indexed report via Gemini.")
	var body string
	if m.showAbout {
		body = resultBoxStyle.Render(aboutText)
	} else {
		body = resultBoxStyle.Render(m.viewport.View())
	}
	input := queryBoxStyle.Render(m.input.View())
	return header + "\n" + sub + "\n" + body + "\n" + input + "\n" + m.statusLine()
}

func (m Model) statusLine() string {
	switch {
	case m.loading:
		return m.spinner.View() + " Generating response..."
	case m.errText != "":
		return errorStyle.Render("Error: " + m.errText + ". Adjust the query and try again.")
	case m.focusSources:
		return statusStyle.Render("sources: up/down select, enter toggles, tab back to input, ctrl+a about, ctrl+c quit")
	default:
		return statusStyle.Render("enter asks, tab inspects sources, ctrl+a about, ctrl+c quit")
	}
}

func (m Model) renderResults() string {
	var b strings.Builder
	if m.errText != "" {
		b.WriteString(errorStyle.Render("Error: " + m.errText))
		b.WriteString("\n\n")
	}
	if m.answer == "" {
		if m.errText == "" {
			b.WriteString("Ask a question about the sustainability report to get started.")
		}
		return b.String()
	}

	b.WriteString(sectionStyle.Render("Answer"))
	b.WriteString("\n")
	b.WriteString(m.renderAnswer())
	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Sources"))
	b.WriteString("\n")
	if len(m.sources) == 0 {
		b.WriteString("No source documents found.")
		return b.String()
	}
	for i, src := range m.sources {
		b.WriteString(m.renderSource(i, src))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderAnswer() string {
	if m.renderer != nil {
		if out, err := m.renderer.Render(m.answer); err == nil {
			return strings.TrimRight(out, "\n") + "\n"
		}
	}
	return m.answer + "\n"
}

func (m Model) renderSource(i int, src domain.SourceChunk) string {
	marker := "▸"
	if m.expanded[i] {
		marker = "▾"
	}
	title := fmt.Sprintf("%s Source %d", marker, i+1)
	if m.focusSources && i == m.cursor {
		title = selectedStyle.Render(title)
	}
	if !m.expanded[i] {
		return title
	}

	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n")
	for _, k := range sortedKeys(src.Metadata) {
		fmt.Fprintf(&b, "  %s: %s\n", k, src.Metadata[k])
	}
	fmt.Fprintf(&b, "  score: %.3f\n", src.Score)
	fmt.Fprintf(&b, "  preview: %s", previewOf(src.Content, m.previewChars))
	return b.String()
}

func sortedKeys(metadata map[string]string) []string {
	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// previewOf truncates content to n runes, never splitting one mid-way.
func previewOf(content string, n int) string {
	rs := []rune(content)
	if len(rs) <= n {
		return content
	}
	return string(rs[:n]) + "..."
}

const aboutText = `About

This app answers questions about a company's sustainability report using
retrieval-augmented generation:

  - a pre-built local vector store holds the embedded report chunks
  - Google Gemini embeds your question and generates the answer
  - the most relevant chunks are shown as collapsible sources

Build the store first with sustainability-index, then ask away.
The Google API key is read from the environment (GOOGLE_API_KEY by default).

Press ctrl+a to return.`

var (
	headerStyle    = lipgloss.NewStyle().Bold(true)
	subtleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	sectionStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	selectedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
