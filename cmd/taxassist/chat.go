// This file implements the interactive chat view using bubbletea.
// It is the conversation controller: a two-state machine (idle /
// awaiting reply) gated by the session log's in-flight flag.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/LakshmirajSunilSawant/tax-assistant/cmd/taxassist/ui"
	"github.com/LakshmirajSunilSawant/tax-assistant/internal/api"
	"github.com/LakshmirajSunilSawant/tax-assistant/internal/conversation"
)

// chatTransport is the slice of the API client the chat view needs.
// Narrowed to an interface so tests can drive the controller with a
// fake backend.
type chatTransport interface {
	SendMessage(ctx context.Context, text, conversationID, userID string) (*api.ChatReply, error)
	GetHistory(ctx context.Context, conversationID string) (*api.History, error)
	ResetConversation(ctx context.Context, conversationID string) (*api.Ack, error)
}

// Messages for tea updates. Chat round trips and slash commands fail
// differently: only a chat failure may close the in-flight window.
type (
	replyMsg         *api.ChatReply
	sendFailedMsg    struct{ err error }
	commandFailedMsg struct{ err error }
	noticeMsg        string
)

// commandFailedNotice is shown when a slash command's backend call
// fails. Kept apart from the chat failure text: no window to close.
const commandFailedNotice = "Sorry, I couldn't reach the tax service to run that command. Please try again."

// quickActions are suggestions shown while the conversation is young.
var quickActions = []string{
	"I'm a salaried employee",
	"I'm a freelancer",
	"I have rental income",
	"Check my deductions",
}

// chatModel is the model for the interactive chat view.
type chatModel struct {
	// UI components
	textinput textinput.Model
	viewport  viewport.Model
	spinner   spinner.Model
	styles    ui.Styles
	renderer  *glamour.TermRenderer

	// State
	log         *conversation.Log
	heldNotices []string
	width       int
	height      int
	ready       bool

	// Backend
	client  chatTransport
	userID  string
	timeout time.Duration
	logger  *zap.Logger
}

// newMarkdownRenderer builds the glamour renderer for the theme. Dark
// terminals use glamour's auto style; light mode pins the light style.
func newMarkdownRenderer(isDark bool, wrap int) *glamour.TermRenderer {
	if isDark {
		renderer, _ := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(wrap),
		)
		return renderer
	}
	renderer, _ := glamour.NewTermRenderer(
		glamour.WithStylePath("light"),
		glamour.WithWordWrap(wrap),
	)
	return renderer
}

// newChatModel initializes the chat view with a fresh conversation.
func newChatModel(client chatTransport, userID string, timeout time.Duration, styles ui.Styles, logger *zap.Logger) chatModel {
	ti := textinput.New()
	ti.Placeholder = "Type your message... (Enter to send, Ctrl+C to exit)"
	ti.Focus()
	ti.Prompt = "│ "
	ti.CharLimit = 4096
	ti.Width = 80
	ti.PromptStyle = styles.Prompt
	ti.TextStyle = styles.UserInput

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	vp := viewport.New(80, 20)

	renderer := newMarkdownRenderer(styles.Theme.IsDark, 80)

	if userID == "" {
		userID = api.AnonymousUser
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	m := chatModel{
		textinput: ti,
		viewport:  vp,
		spinner:   sp,
		styles:    styles,
		renderer:  renderer,
		log:       conversation.NewLog(conversation.NewConversationID()),
		client:    client,
		userID:    userID,
		timeout:   timeout,
		logger:    logger,
	}
	m.viewport.SetContent(m.renderHistory())
	return m
}

func (m chatModel) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.spinner.Tick,
	)
}

func (m chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		spCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyEnter:
			// Submit is gated by the in-flight flag: while a request
			// is pending, Enter is rejected, not queued.
			if !m.log.InFlight() {
				return m.handleSubmit()
			}
			return m, nil
		}

		if !m.log.InFlight() {
			m.textinput, tiCmd = m.textinput.Update(msg)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 4
		footerHeight := 3
		inputHeight := 3

		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, msg.Height-headerHeight-footerHeight-inputHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = msg.Height - headerHeight - footerHeight - inputHeight
		}

		m.textinput.Width = msg.Width - 4

		// Rebuild at the new width with the same style the model was
		// constructed with; resizing must not switch styles.
		m.renderer = newMarkdownRenderer(m.styles.Theme.IsDark, msg.Width-8)
		m.viewport.SetContent(m.renderHistory())

	case spinner.TickMsg:
		if m.log.InFlight() {
			m.spinner, spCmd = m.spinner.Update(msg)
			return m, spCmd
		}

	case replyMsg:
		m.log.AppendAssistant((*api.ChatReply)(msg))
		m.flushHeldNotices()
		m.viewport.SetContent(m.renderHistory())
		m.viewport.GotoBottom()

	case sendFailedMsg:
		// The fixed explanation is appended instead of the raw error;
		// the detail goes to the debug log only.
		m.logger.Warn("send failed", zap.Error(msg.err))
		m.log.AppendSyntheticError()
		m.flushHeldNotices()
		m.viewport.SetContent(m.renderHistory())
		m.viewport.GotoBottom()

	case commandFailedMsg:
		// Command failures never touch the in-flight window: a chat
		// round trip may still be pending and owns it.
		m.logger.Warn("command failed", zap.Error(msg.err))
		m.appendOrHoldNotice(commandFailedNotice)
		m.viewport.SetContent(m.renderHistory())
		m.viewport.GotoBottom()

	case noticeMsg:
		m.appendOrHoldNotice(string(msg))
		m.viewport.SetContent(m.renderHistory())
		m.viewport.GotoBottom()
	}

	m.viewport, vpCmd = m.viewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd, spCmd)
}

func (m chatModel) handleSubmit() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.textinput.Value())
	if input == "" {
		return m, nil
	}

	if strings.HasPrefix(input, "/") {
		return m.handleCommand(input)
	}

	if _, ok := m.log.AppendUser(input); !ok {
		return m, nil
	}

	m.textinput.Reset()
	m.viewport.SetContent(m.renderHistory())
	m.viewport.GotoBottom()

	return m, tea.Batch(
		m.spinner.Tick,
		m.sendMessage(input),
	)
}

// sendMessage performs the round trip off the UI loop. The request
// always runs to completion; there is no cancellation path back to
// idle other than resolution or rejection.
func (m chatModel) sendMessage(text string) tea.Cmd {
	conversationID := m.log.ConversationID()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		defer cancel()

		reply, err := m.client.SendMessage(ctx, text, conversationID, m.userID)
		if err != nil {
			return sendFailedMsg{err: err}
		}
		return replyMsg(reply)
	}
}

func (m chatModel) handleCommand(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	m.textinput.Reset()

	switch parts[0] {
	case "/quit", "/exit", "/q":
		return m, tea.Quit

	case "/clear":
		// Fresh conversation id; the old log is discarded, never stored.
		m.log = conversation.NewLog(conversation.NewConversationID())
		m.heldNotices = nil
		m.viewport.SetContent(m.renderHistory())
		return m, nil

	case "/reset":
		return m, m.resetConversation()

	case "/history":
		return m, m.fetchHistory()

	case "/help":
		help := `## Commands

| Command | Description |
|---------|-------------|
| /help | Show this help message |
| /clear | Start a new conversation |
| /reset | Ask the backend to discard this conversation |
| /history | Show the server-side transcript |
| /quit, /exit, /q | Exit |

**Enter** sends a message. **Ctrl+C** or **Esc** exits.`
		m.log.AppendNotice(help)
		m.viewport.SetContent(m.renderHistory())
		m.viewport.GotoBottom()
		return m, nil

	default:
		m.log.AppendNotice(fmt.Sprintf("Unknown command `%s`. Try `/help`.", parts[0]))
		m.viewport.SetContent(m.renderHistory())
		m.viewport.GotoBottom()
		return m, nil
	}
}

// resetConversation asks the backend to drop the session, then reseeds
// the local log. Reset is idempotent on the backend side.
func (m chatModel) resetConversation() tea.Cmd {
	conversationID := m.log.ConversationID()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		defer cancel()

		if _, err := m.client.ResetConversation(ctx, conversationID); err != nil {
			return commandFailedMsg{err: err}
		}
		return noticeMsg("Conversation reset. Let's start over — what type of income do you have?")
	}
}

// fetchHistory shows the backend transcript for this conversation.
func (m chatModel) fetchHistory() tea.Cmd {
	conversationID := m.log.ConversationID()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
		defer cancel()

		history, err := m.client.GetHistory(ctx, conversationID)
		if err != nil {
			return commandFailedMsg{err: err}
		}

		var sb strings.Builder
		sb.WriteString("## Server transcript\n\n")
		if len(history.Messages) == 0 {
			sb.WriteString("_No turns stored yet._")
		}
		for _, turn := range history.Messages {
			sb.WriteString(fmt.Sprintf("- **%s**: %s\n", turn.Role, turn.Content))
		}
		return noticeMsg(sb.String())
	}
}

// appendOrHoldNotice appends a notice now, or holds it until the
// in-flight window closes so command output is never dropped.
func (m *chatModel) appendOrHoldNotice(text string) {
	if _, ok := m.log.AppendNotice(text); !ok {
		m.heldNotices = append(m.heldNotices, text)
	}
}

// flushHeldNotices appends notices that arrived while a chat request
// was pending. Called after the window closes.
func (m *chatModel) flushHeldNotices() {
	for _, text := range m.heldNotices {
		m.log.AppendNotice(text)
	}
	m.heldNotices = nil
}

func (m chatModel) renderHistory() string {
	var sb strings.Builder

	for _, msg := range m.log.Messages() {
		if msg.Role == conversation.RoleUser {
			userStyle := m.styles.Bold.
				Foreground(m.styles.Theme.Primary).
				MarginTop(1)
			sb.WriteString(userStyle.Render("You") + "\n")
			sb.WriteString(m.styles.UserInput.Render(msg.Content))
			sb.WriteString("\n\n")
			continue
		}

		assistantStyle := m.styles.Bold.
			Foreground(m.styles.Theme.Accent).
			MarginTop(1)
		sb.WriteString(assistantStyle.Render("Tax Assistant") + "\n")

		content := msg.Content
		if card := renderPayloadCard(msg); card != "" {
			content += "\n\n" + card
		}
		sb.WriteString(m.safeRenderMarkdown(content))
		sb.WriteString("\n")
	}

	return sb.String()
}

// renderPayloadCard formats the structured payload attached to a
// message as a markdown card, mirroring the web client's result cards.
func renderPayloadCard(msg conversation.Message) string {
	if len(msg.Payload) == 0 {
		return ""
	}

	switch msg.Kind {
	case conversation.KindITRResult:
		var data struct {
			Form      string `json:"form"`
			Reason    string `json:"reason"`
			Reasoning string `json:"reasoning"`
		}
		if err := json.Unmarshal(msg.Payload, &data); err != nil || data.Form == "" {
			return ""
		}
		reason := data.Reason
		if reason == "" {
			reason = data.Reasoning
		}
		return fmt.Sprintf("> 📄 **Recommended ITR Form: %s**\n>\n> %s", data.Form, reason)

	case conversation.KindDeduction:
		var data struct {
			Deductions []struct {
				Section     string   `json:"section"`
				MaxLimit    *float64 `json:"max_limit"`
				Description string   `json:"description"`
			} `json:"deductions"`
			TotalPotentialDeduction *float64 `json:"total_potential_deduction"`
		}
		if err := json.Unmarshal(msg.Payload, &data); err != nil || len(data.Deductions) == 0 {
			return ""
		}
		var sb strings.Builder
		sb.WriteString("> 💰 **Suggested deductions**\n")
		for _, d := range data.Deductions {
			if d.MaxLimit != nil {
				sb.WriteString(fmt.Sprintf(">\n> - **%s** (up to ₹%.0f): %s\n", d.Section, *d.MaxLimit, d.Description))
			} else {
				sb.WriteString(fmt.Sprintf(">\n> - **%s**: %s\n", d.Section, d.Description))
			}
		}
		// A zero total is shown as ₹0, not hidden: only nil means the
		// backend omitted it.
		if data.TotalPotentialDeduction != nil {
			sb.WriteString(fmt.Sprintf(">\n> **Total potential deduction: ₹%.0f**", *data.TotalPotentialDeduction))
		}
		return sb.String()
	}

	return ""
}

// safeRenderMarkdown renders markdown with panic recovery.
func (m chatModel) safeRenderMarkdown(content string) (result string) {
	defer func() {
		if r := recover(); r != nil {
			result = content
		}
	}()

	if m.renderer != nil && content != "" {
		rendered, err := m.renderer.Render(content)
		if err == nil {
			return rendered
		}
	}
	return content
}

func (m chatModel) View() string {
	if !m.ready {
		return "Initializing..."
	}

	header := m.renderHeader()

	chatView := m.styles.Content.Render(m.viewport.View())

	if m.log.InFlight() {
		chatView += "\n" + m.styles.Spinner.Render(m.spinner.View()) + " Analyzing..."
	}

	inputStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.styles.Theme.Accent).
		Padding(0, 1)
	inputArea := inputStyle.Render(m.textinput.View())

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		chatView,
		inputArea,
		m.renderFooter(),
	)
}

func (m chatModel) renderHeader() string {
	title := m.styles.Header.Render(" Tax Filing Assistant ")
	subtitle := m.styles.Muted.Render(" Get personalized tax guidance")

	var status string
	if m.log.InFlight() {
		status = m.styles.Warning.Render("● Analyzing")
	} else {
		status = m.styles.Success.Render("● Online")
	}

	headerLine := lipgloss.JoinHorizontal(
		lipgloss.Center,
		title,
		"  ",
		status,
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		headerLine,
		subtitle,
		m.styles.RenderDivider(m.width),
	)
}

func (m chatModel) renderFooter() string {
	// Quick suggestions only while the conversation is young, same
	// rule as the web client.
	if m.log.Len() <= 2 {
		hints := make([]string, len(quickActions))
		for i, action := range quickActions {
			hints[i] = "“" + action + "”"
		}
		return m.styles.Footer.Render("Try: " + strings.Join(hints, " · "))
	}

	return m.styles.Footer.Render("Enter: send • /help: commands • Ctrl+C: exit")
}

// runInteractiveChat starts the interactive chat view.
func runInteractiveChat(client chatTransport, userID string, timeout time.Duration, styles ui.Styles, logger *zap.Logger) error {
	p := tea.NewProgram(
		newChatModel(client, userID, timeout, styles, logger),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
