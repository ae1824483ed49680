package cli

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/scam-ico/scam-ico/internal/app"
	"github.com/scam-ico/scam-ico/internal/cli/render"
	"github.com/scam-ico/scam-ico/internal/domain"
	"github.com/scam-ico/scam-ico/internal/domain/config"
	"github.com/scam-ico/scam-ico/internal/usecase"
	"github.com/spf13/cobra"
)

// NewDashboardCmd creates the dashboard command
func NewDashboardCmd() *cobra.Command {
	flags := &icoFlags{}

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Interactive ICO dashboard",
		Long: `Open a terminal dashboard showing the tokens left in the ICO and the
balances of every wallet account.

Keys:
  ↑/↓    select account
  s      buy WETH with ETH
  d      mint magic WETH (test networks)
  f      participate in the ICO with WETH
  r/F5   refresh
  q/esc  quit`,
		Args: cobra.NoArgs,
		Annotations: map[string]string{
			annotationQuiet:     "true",
			annotationNoTimeout: "true",
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			network, err := selectNetwork(cmd, app)
			if err != nil {
				return err
			}

			backend := &appBackend{app: app, network: network, ico: flags.ico}
			model := newDashboardModel(cmd.Context(), backend, network)

			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("dashboard failed: %w", err)
			}
			return nil
		},
	}

	addICOFlags(cmd, flags, false)
	return cmd
}

// dashboardBackend is what the dashboard needs from the app
type dashboardBackend interface {
	Balances(ctx context.Context) (*usecase.ShowBalancesResult, error)
	Act(ctx context.Context, action dashboardAction, account int, amount *big.Int) (*usecase.TokenActionResult, error)
}

// dashboardAction is a token transaction started from the dashboard
type dashboardAction string

const (
	actionDeposit     dashboardAction = "deposit"
	actionMint        dashboardAction = "mint"
	actionParticipate dashboardAction = "participate"
)

func (a dashboardAction) prompt() string {
	switch a {
	case actionDeposit:
		return "ETH to wrap"
	case actionMint:
		return "WETH to mint"
	default:
		return "WETH to spend on SCM"
	}
}

func (a dashboardAction) verb() string {
	switch a {
	case actionDeposit:
		return "Deposited"
	case actionMint:
		return "Minted"
	default:
		return "Spent"
	}
}

// appBackend runs dashboard actions through the app's use cases
type appBackend struct {
	app     *app.App
	network *config.Network
	ico     string
}

func (b *appBackend) Balances(ctx context.Context) (*usecase.ShowBalancesResult, error) {
	return b.app.ShowBalances.Run(ctx, usecase.ShowBalancesParams{
		Network:    b.network,
		ICOAddress: b.ico,
	})
}

func (b *appBackend) Act(ctx context.Context, action dashboardAction, account int, amount *big.Int) (*usecase.TokenActionResult, error) {
	params := usecase.TokenActionParams{
		Network:    b.network,
		ICOAddress: b.ico,
		Account:    account,
		Amount:     amount,
	}
	switch action {
	case actionDeposit:
		return b.app.DepositWETH.Run(ctx, params)
	case actionMint:
		return b.app.MintWETH.Run(ctx, params)
	default:
		return b.app.Participate.Run(ctx, params)
	}
}

type balancesMsg struct {
	result *usecase.ShowBalancesResult
	err    error
}

type actionMsg struct {
	action dashboardAction
	result *usecase.TokenActionResult
	err    error
}

var (
	bannerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).Border(lipgloss.RoundedBorder()).Padding(0, 2)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	faintStyle    = lipgloss.NewStyle().Faint(true)
	statusOK      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	statusErr     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// dashboardModel is the bubbletea model of the dashboard
type dashboardModel struct {
	ctx     context.Context
	backend dashboardBackend
	// only the mock token on test networks can mint
	mintable bool

	data    *usecase.ShowBalancesResult
	cursor  int
	loading bool

	// pending is set while an amount is being typed
	pending dashboardAction
	input   string

	status    string
	statusErr bool
}

func newDashboardModel(ctx context.Context, backend dashboardBackend, network *config.Network) dashboardModel {
	return dashboardModel{
		ctx:      ctx,
		backend:  backend,
		mintable: domain.StrategyFor(network).Mintable(),
		loading:  true,
	}
}

// Init loads the first balances
func (m dashboardModel) Init() tea.Cmd {
	return m.refresh()
}

func (m dashboardModel) refresh() tea.Cmd {
	ctx, backend := m.ctx, m.backend
	return func() tea.Msg {
		result, err := backend.Balances(ctx)
		return balancesMsg{result: result, err: err}
	}
}

func (m dashboardModel) act(action dashboardAction, account int, amount *big.Int) tea.Cmd {
	ctx, backend := m.ctx, m.backend
	return func() tea.Msg {
		result, err := backend.Act(ctx, action, account, amount)
		return actionMsg{action: action, result: result, err: err}
	}
}

// Update handles messages and updates the model
func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case balancesMsg:
		m.loading = false
		if msg.err != nil {
			m.setStatus(render.FormatError(msg.err.Error()), true)
			return m, nil
		}
		m.data = msg.result
		if m.cursor >= len(m.data.Balances) {
			m.cursor = max(len(m.data.Balances)-1, 0)
		}
		return m, nil

	case actionMsg:
		if msg.err != nil {
			m.loading = false
			m.setStatus(render.FormatError(msg.err.Error()), true)
			return m, nil
		}
		m.setStatus(fmt.Sprintf("%s %s WETH", msg.action.verb(), render.FormatTokens(msg.result.Amount)), false)
		return m, m.refresh()

	case tea.KeyMsg:
		if m.pending != "" {
			return m.updateInput(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m dashboardModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.data != nil && m.cursor < len(m.data.Balances)-1 {
			m.cursor++
		}
	case "r", "f5":
		if !m.loading {
			m.loading = true
			return m, m.refresh()
		}
	case "s":
		m.startInput(actionDeposit)
	case "d":
		if !m.mintable {
			m.setStatus("Magic WETH is only available on test networks", true)
			return m, nil
		}
		m.startInput(actionMint)
	case "f":
		m.startInput(actionParticipate)
	}
	return m, nil
}

func (m *dashboardModel) startInput(action dashboardAction) {
	if m.loading || m.data == nil || len(m.data.Balances) == 0 {
		return
	}
	m.pending = action
	m.input = ""
	m.status = ""
}

func (m dashboardModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEsc:
		m.pending = ""
		m.input = ""
		return m, nil
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
		return m, nil
	case tea.KeyEnter:
		action := m.pending
		m.pending = ""
		amount, err := domain.ParseEther(m.input)
		m.input = ""
		if err != nil {
			m.setStatus(render.FormatError(err.Error()), true)
			return m, nil
		}
		m.loading = true
		m.setStatus(fmt.Sprintf("Sending %s...", action), false)
		return m, m.act(action, m.cursor, amount)
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			if (r >= '0' && r <= '9') || r == '.' {
				m.input += string(r)
			}
		}
	}
	return m, nil
}

func (m *dashboardModel) setStatus(status string, isErr bool) {
	m.status = status
	m.statusErr = isErr
}

// View renders the UI
func (m dashboardModel) View() string {
	var b strings.Builder

	if m.data == nil {
		if m.loading {
			b.WriteString("Loading ICO...\n")
		}
		m.writeStatus(&b)
		b.WriteString(faintStyle.Render("q: quit  r/F5: refresh") + "\n")
		return b.String()
	}

	ico := m.data.Context
	banner := fmt.Sprintf("SCAM ICO · %s\n%s SCM left", ico.Network, render.FormatTokens(m.data.Remaining))
	b.WriteString(bannerStyle.Render(banner) + "\n\n")

	for i, bal := range m.data.Balances {
		line := fmt.Sprintf("%d  %s", i, bal.Account.Hex())
		if bal.Error != nil {
			line += "  " + bal.Error.Error()
		} else {
			line += fmt.Sprintf("  %s  %s WETH  %s SCM", render.FormatEther(bal.ETH), render.FormatTokens(bal.WETH), render.FormatTokens(bal.SCM))
		}
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("▸ "+line) + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}
	b.WriteString("\n")

	if m.pending != "" {
		b.WriteString(fmt.Sprintf("%s for account %d: %s█\n\n", m.pending.prompt(), m.cursor, m.input))
		b.WriteString(faintStyle.Render("enter: send  esc: cancel") + "\n")
		return b.String()
	}

	m.writeStatus(&b)
	keys := "↑/↓: select  s: buy WETH  "
	if m.mintable {
		keys += "d: magic WETH  "
	}
	keys += "f: participate  r/F5: refresh  q: quit"
	b.WriteString(faintStyle.Render(keys) + "\n")
	return b.String()
}

func (m dashboardModel) writeStatus(b *strings.Builder) {
	if m.status == "" {
		return
	}
	style := statusOK
	if m.statusErr {
		style = statusErr
	}
	b.WriteString(style.Render(m.status) + "\n\n")
}
