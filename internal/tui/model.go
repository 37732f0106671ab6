// Package tui renders the self-check as a full-screen dashboard: overall
// and per-worker progress, host CPU and memory sparklines, and the summary
// table once every case has run.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/bigcalc/internal/cli"
	"github.com/agbru/bigcalc/internal/config"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/format"
	"github.com/agbru/bigcalc/internal/orchestration"
	"github.com/agbru/bigcalc/internal/sysmon"
)

const (
	tickInterval = 500 * time.Millisecond
	// sampleHistory is the number of CPU and memory samples kept.
	sampleHistory = 120
	// maxWorkerRows bounds the per-worker bars; further workers only count
	// toward the overall bar.
	maxWorkerRows = 8
	minBarWidth   = 10
)

// ProgressMsg carries one aggregated worker update.
type ProgressMsg struct {
	WorkerIndex     int
	Value           float64
	AverageProgress float64
	ETA             time.Duration
}

// ProgressDoneMsg is sent once the progress channel is closed.
type ProgressDoneMsg struct{}

// TickMsg drives the elapsed timer and the host sampling.
type TickMsg time.Time

// SysStatsMsg carries one host sample.
type SysStatsMsg struct {
	CPUPercent float64
	MemPercent float64
}

// CheckCompleteMsg carries the outcome of RunSelfCheck.
type CheckCompleteMsg struct {
	Results []orchestration.CheckResult
	Err     error
}

// Model is the bubbletea model of the self-check dashboard.
type Model struct {
	ctx     context.Context
	cancel  context.CancelFunc
	ref     *programRef
	cfg     config.AppConfig
	opts    orchestration.CheckOptions
	version string
	workers int

	keymap KeyMap
	help   help.Model

	progress []float64
	average  float64
	eta      time.Duration
	cpu      *RingBuffer
	mem      *RingBuffer

	start    time.Time
	end      time.Time
	done     bool
	summary  string
	err      error
	exitCode int

	width  int
	height int
}

// NewModel prepares a dashboard for the self-check described by cfg. The
// run starts with Init.
func NewModel(ctx context.Context, cfg config.AppConfig, opts orchestration.CheckOptions, version string) Model {
	ctx, cancel := context.WithCancel(ctx)
	workers := orchestration.WorkerCount(cfg)
	return Model{
		ctx:      ctx,
		cancel:   cancel,
		ref:      &programRef{},
		cfg:      cfg,
		opts:     opts,
		version:  version,
		workers:  workers,
		keymap:   DefaultKeyMap(),
		help:     help.New(),
		progress: make([]float64, workers),
		cpu:      NewRingBuffer(sampleHistory),
		mem:      NewRingBuffer(sampleHistory),
		start:    time.Now(),
		exitCode: apperrors.ExitErrorCanceled,
	}
}

// Init starts the self-check and the sampling ticker.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		startCheckCmd(m.ctx, m.ref, m.cfg, m.opts),
		sampleSysStatsCmd(),
		tickCmd(),
	)
}

// Update handles input, progress and completion messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keymap.Quit):
			m.cancel()
			return m, tea.Quit
		case key.Matches(msg, m.keymap.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
		return m, nil

	case ProgressMsg:
		if msg.WorkerIndex >= 0 && msg.WorkerIndex < len(m.progress) {
			m.progress[msg.WorkerIndex] = msg.Value
		}
		m.average = msg.AverageProgress
		m.eta = msg.ETA
		return m, nil

	case ProgressDoneMsg:
		m.eta = 0
		return m, nil

	case TickMsg:
		if m.done {
			return m, nil
		}
		return m, tea.Batch(sampleSysStatsCmd(), tickCmd())

	case SysStatsMsg:
		m.cpu.Push(msg.CPUPercent)
		m.mem.Push(msg.MemPercent)
		return m, nil

	case CheckCompleteMsg:
		m.done = true
		m.end = time.Now()
		var sb strings.Builder
		m.exitCode = orchestration.AnalyzeCheckResults(msg.Results, cli.CLIResultPresenter{}, &sb)
		m.summary = sb.String()
		if msg.Err != nil {
			m.err = msg.Err
			if errors.Is(msg.Err, context.DeadlineExceeded) {
				m.err = apperrors.TimeoutError{Operation: "selfcheck", Limit: m.cfg.Timeout}
			}
			m.exitCode = apperrors.ExitCodeFor(m.err)
		}
		return m, nil
	}
	return m, nil
}

// ExitCode returns the process exit code for the run: the self-check
// verdict once it completed, ExitErrorCanceled before.
func (m Model) ExitCode() int {
	return m.exitCode
}

// View renders the dashboard.
func (m Model) View() string {
	width := m.width
	if width == 0 {
		width = 80
	}
	inner := max(width-4, minBarWidth)

	sections := []string{m.headerView(), m.progressView(inner), m.hostView(inner)}
	if m.done {
		sections = append(sections, panelStyle.Width(width-2).Render(strings.TrimRight(m.summary, "\n")))
	}
	sections = append(sections, m.help.View(m.keymap))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) headerView() string {
	title := "bigcalc self-check"
	if m.version != "" && m.version != "dev" {
		title += " " + m.version
	}
	elapsed := time.Since(m.start)
	if m.done {
		elapsed = m.end.Sub(m.start)
	}
	return fmt.Sprintf("%s %s %s %s",
		titleStyle.Render(title),
		dimStyle.Render("|"),
		dimStyle.Render("Elapsed: "+format.FormatExecutionDuration(elapsed)),
		m.statusView())
}

func (m Model) statusView() string {
	switch {
	case !m.done:
		return statusRunStyle.Render("RUNNING")
	case m.err != nil:
		return statusBadStyle.Render("INTERRUPTED: " + m.err.Error())
	case m.exitCode != apperrors.ExitSuccess:
		return statusBadStyle.Render("MISMATCH")
	default:
		return statusOKStyle.Render("OK")
	}
}

func (m Model) progressView(inner int) string {
	lines := []string{
		dimStyle.Render(fmt.Sprintf("seed %d | %d workers | %d cases per property | up to %d words",
			m.cfg.Seed, m.workers, m.cfg.Iterations, m.cfg.MaxWords)),
		barStyle.Render(format.FormatProgressBarWithETA(m.average, m.eta, max(inner-30, minBarWidth))),
	}
	for i, v := range m.progress {
		if i == maxWorkerRows {
			lines = append(lines, dimStyle.Render(fmt.Sprintf("… %d more workers", len(m.progress)-maxWorkerRows)))
			break
		}
		lines = append(lines, fmt.Sprintf("%s %s %s",
			dimStyle.Render(fmt.Sprintf("worker %-2d", i)),
			barStyle.Render(format.ProgressBar(v, max(inner-20, minBarWidth))),
			valueStyle.Render(fmt.Sprintf("%5.1f%%", v*100))))
	}
	return panelStyle.Width(inner + 2).Render(strings.Join(lines, "\n"))
}

func (m Model) hostView(inner int) string {
	sparkWidth := max(inner-16, minBarWidth)
	cpu := fmt.Sprintf("%s %s %s",
		dimStyle.Render("CPU"),
		cpuStyle.Render(RenderSparkline(m.cpu.Slice(), sparkWidth)),
		valueStyle.Render(fmt.Sprintf("%5.1f%%", m.cpu.Last())))
	mem := fmt.Sprintf("%s %s %s",
		dimStyle.Render("MEM"),
		memStyle.Render(RenderSparkline(m.mem.Slice(), sparkWidth)),
		valueStyle.Render(fmt.Sprintf("%5.1f%%", m.mem.Last())))
	return panelStyle.Width(inner + 2).Render(cpu + "\n" + mem)
}

// Run shows the dashboard until the user quits, then writes the summary to
// out and returns the exit code.
func Run(ctx context.Context, cfg config.AppConfig, opts orchestration.CheckOptions, version string, out io.Writer, progOpts ...tea.ProgramOption) int {
	// The ui theme is chosen after package initialization.
	initStyles()

	model := NewModel(ctx, cfg, opts, version)
	defer model.cancel()

	p := tea.NewProgram(model, append([]tea.ProgramOption{tea.WithAltScreen()}, progOpts...)...)
	model.ref.SetProgram(p)

	finalModel, err := p.Run()
	if err != nil {
		return apperrors.ExitErrorGeneric
	}
	m, ok := finalModel.(Model)
	if !ok {
		return apperrors.ExitErrorGeneric
	}
	if m.summary != "" {
		fmt.Fprint(out, m.summary)
	}
	return m.ExitCode()
}

// startCheckCmd runs the self-check and reports its outcome as a
// CheckCompleteMsg.
func startCheckCmd(ctx context.Context, ref *programRef, cfg config.AppConfig, opts orchestration.CheckOptions) tea.Cmd {
	return func() tea.Msg {
		results, err := orchestration.RunSelfCheck(ctx, cfg, opts, &TUIProgressReporter{ref: ref}, io.Discard)
		return CheckCompleteMsg{Results: results, Err: err}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func sampleSysStatsCmd() tea.Cmd {
	return func() tea.Msg {
		s := sysmon.Sample()
		return SysStatsMsg{CPUPercent: s.CPUPercent, MemPercent: s.MemPercent}
	}
}
