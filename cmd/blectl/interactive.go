package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
	"tinygo.org/x/bluetooth"

	"github.com/bluekit/ble-host/hostenv"
	"github.com/bluekit/ble-host/hub"
	"github.com/bluekit/ble-host/system"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#2563EB")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	okStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#90EE90"))

	pendingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD580"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type monitorModel struct {
	err       error
	scanErr   error
	cfg       *Config
	logger    *zap.Logger
	h         *hub.Hub
	sys       *system.Adapter
	input     textinput.Model
	services  []string
	devices   []deviceMsg
	scanCh    chan tea.Msg
	addr      string
	resolving bool
	scanning  bool
	state     monitorState
}

type monitorState int

const (
	stateEnterService monitorState = iota
	stateStatus
	stateScanning
)

func newMonitorModel(cfg *Config, logger *zap.Logger) *monitorModel {
	ti := textinput.New()
	ti.Placeholder = cfg.Service
	ti.Prompt = "service: "
	ti.SetValue(cfg.Service)
	ti.Width = 40
	ti.Focus()

	return &monitorModel{
		cfg:      cfg,
		logger:   logger,
		input:    ti,
		services: hostenv.Default().Names(),
		state:    stateEnterService,
	}
}

type resolvedMsg struct {
	err  error
	sys  *system.Adapter
	addr string
}

type deviceMsg struct {
	addr string
	name string
	rssi int16
}

type scanDoneMsg struct {
	err error
}

func (m *monitorModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *monitorModel) resolve() tea.Msg {
	ctx, cancel := context.WithTimeout(context.Background(), m.cfg.Timeout())
	defer cancel()

	a, err := m.h.Adapter(ctx)
	if err != nil {
		return resolvedMsg{err: err}
	}

	addr, err := a.Address()
	if err != nil {
		return resolvedMsg{err: err}
	}

	sys, _ := a.(*system.Adapter)
	return resolvedMsg{addr: addr, sys: sys}
}

// startScan launches the platform scan in its own goroutine and feeds
// discoveries back into the update loop as messages. The scan stops on its
// own when the window elapses; StopScan cuts it short.
func (m *monitorModel) startScan() tea.Cmd {
	raw := m.sys.Underlying()
	ch := make(chan tea.Msg, 32)

	m.scanCh = ch
	m.devices = nil
	m.scanErr = nil
	m.scanning = true
	m.state = stateScanning

	go func() {
		stop := time.AfterFunc(m.cfg.ScanDuration(), func() {
			_ = raw.StopScan()
		})
		defer stop.Stop()

		seen := make(map[string]bool)
		err := raw.Scan(func(_ *bluetooth.Adapter, res bluetooth.ScanResult) {
			addr := res.Address.String()
			if seen[addr] {
				return
			}
			seen[addr] = true
			select {
			case ch <- deviceMsg{addr: addr, name: res.LocalName(), rssi: res.RSSI}:
			default:
			}
		})
		ch <- scanDoneMsg{err: err}
	}()

	return m.nextScanEvent
}

func (m *monitorModel) nextScanEvent() tea.Msg {
	return <-m.scanCh
}

func (m *monitorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.state != stateEnterService || msg.String() == "ctrl+c" {
				return m, tea.Quit
			}

		case "enter":
			if m.state == stateEnterService {
				name := strings.TrimSpace(m.input.Value())
				if name == "" {
					name = m.cfg.Service
				}
				m.h = hub.New(hostenv.System(),
					hub.WithLogger(m.logger),
					hub.WithService(name))
				m.state = stateStatus
				m.resolving = true
				m.err = nil
				m.addr = ""
				m.sys = nil
				return m, m.resolve
			}

		case "r":
			// Retry: a failed resolution is not cached, so this attempts
			// construction again; a successful one answers from cache.
			if m.state == stateStatus && !m.resolving {
				m.resolving = true
				m.err = nil
				return m, m.resolve
			}

		case "c":
			scannable := m.err == nil && !m.resolving && m.sys != nil
			if (m.state == stateStatus || m.state == stateScanning) && !m.scanning && scannable {
				return m, m.startScan()
			}

		case "x":
			if m.state == stateScanning && m.scanning {
				_ = m.sys.Underlying().StopScan()
			}

		case "s":
			if m.state == stateStatus && !m.resolving {
				m.state = stateEnterService
				m.input.Focus()
				return m, textinput.Blink
			}
			if m.state == stateScanning && !m.scanning {
				m.state = stateStatus
			}

		case "esc":
			if m.state == stateStatus && !m.resolving {
				m.state = stateEnterService
				m.input.Focus()
				return m, textinput.Blink
			}
			if m.state == stateScanning && !m.scanning {
				m.state = stateStatus
			}
		}

	case resolvedMsg:
		m.resolving = false
		m.err = msg.err
		m.addr = msg.addr
		m.sys = msg.sys

	case deviceMsg:
		m.devices = append(m.devices, msg)
		return m, m.nextScanEvent

	case scanDoneMsg:
		m.scanning = false
		m.scanErr = msg.err
	}

	if m.state == stateEnterService {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *monitorModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("blectl"))
	b.WriteString(" host bluetooth monitor\n\n")

	switch m.state {
	case stateEnterService:
		b.WriteString("Resolve handles for a host service:\n\n")
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		if len(m.services) > 0 {
			b.WriteString(labelStyle.Render("registered:"))
			b.WriteString(" ")
			b.WriteString(strings.Join(m.services, ", "))
			b.WriteString("\n\n")
		}
		b.WriteString(helpStyle.Render("enter resolve • ctrl+c quit"))

	case stateStatus:
		b.WriteString(labelStyle.Render("Service:"))
		b.WriteString(" ")
		b.WriteString(m.h.Service())
		b.WriteString("\n")
		b.WriteString(m.resolvedLine("Manager", m.h.ManagerResolved()))
		b.WriteString(m.resolvedLine("Adapter", m.h.AdapterResolved()))

		b.WriteString("\n")
		switch {
		case m.resolving:
			b.WriteString(pendingStyle.Render("Resolving..."))
		case m.err != nil:
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		default:
			b.WriteString(labelStyle.Render("Address:"))
			b.WriteString(" ")
			b.WriteString(okStyle.Render(m.addr))
		}
		b.WriteString("\n\n")
		if m.err == nil && !m.resolving && m.sys != nil {
			b.WriteString(helpStyle.Render("r retry • c scan • s service • q quit"))
		} else {
			b.WriteString(helpStyle.Render("r retry • s service • q quit"))
		}

	case stateScanning:
		b.WriteString(labelStyle.Render("Scan:"))
		b.WriteString(fmt.Sprintf(" %s window\n\n", m.cfg.ScanDuration()))

		for _, d := range m.devices {
			name := d.name
			if name == "" {
				name = "(unknown)"
			}
			b.WriteString(fmt.Sprintf("%s  %4d dBm  %s\n", d.addr, d.rssi, name))
		}

		b.WriteString("\n")
		switch {
		case m.scanning:
			b.WriteString(pendingStyle.Render("Scanning..."))
		case m.scanErr != nil:
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.scanErr)))
		default:
			b.WriteString(okStyle.Render(fmt.Sprintf("%d device(s)", len(m.devices))))
		}
		b.WriteString("\n\n")
		if m.scanning {
			b.WriteString(helpStyle.Render("x stop • q quit"))
		} else {
			b.WriteString(helpStyle.Render("c rescan • s status • q quit"))
		}
	}

	return b.String()
}

func (m *monitorModel) resolvedLine(label string, resolved bool) string {
	state := pendingStyle.Render("not resolved")
	if resolved {
		state = okStyle.Render("resolved")
	}
	return labelStyle.Render(label+":") + " " + state + "\n"
}

func runMonitor(cfg *Config, logger *zap.Logger) error {
	p := tea.NewProgram(newMonitorModel(cfg, logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
