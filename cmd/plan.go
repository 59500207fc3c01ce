package cmd

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/devkit-labs/wsprov/internal/manifest"
	"github.com/devkit-labs/wsprov/internal/plan"
	"github.com/devkit-labs/wsprov/internal/pm"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Resolve, write the mise config and record state",
	Long: `Resolve the selected packs for this host, write the mise configuration
and record the result in the state directory for 'status' and 'diff'.
With --dry-run nothing is written; the plan and the installer commands it
implies are printed instead.`,
	Args: cobra.NoArgs,
	RunE: runPlan,
}

var flagDryRun bool

func init() {
	rootCmd.AddCommand(planCmd)
	planCmd.Flags().BoolVarP(&flagDryRun, "dry-run", "n", false, "print the plan without writing anything")
}

func runPlan(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd, !flagDryRun)
	if err != nil {
		return err
	}
	defer s.Close()

	out := cmd.OutOrStdout()

	if flagDryRun {
		p := plan.Build(s.resolver)
		printPlan(out, p)
		mgr, ok := pm.ForChannel(s.resolver.Family())
		if !ok {
			mgr = pm.Detect()
		}
		label := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("8"))
		fmt.Fprintf(out, "  %s\n", label.Render("Commands:"))
		for _, line := range plan.Commands(p, mgr) {
			fmt.Fprintf(out, "    %s\n", line)
		}
		fmt.Fprintln(out)
		return nil
	}

	sp := newSpinner(out)
	planner := &plan.Planner{
		Log: s.log,
		OnStep: func(step, total int, label string) {
			sp.setLabel(fmt.Sprintf("[%d/%d] %s", step, total, label))
		},
	}

	sp.start()
	result, err := planner.Apply(&plan.Selection{Preferences: s.prefs}, s.resolver)
	sp.stop(err)
	if err != nil {
		return fmt.Errorf("plan failed: %w", err)
	}

	printSuccess(out, result, s.log.LogPath())
	return nil
}

// ── spinner ───────────────────────────────────────────────────────────────────

// spinner renders a rotating indicator with a label that updates in-place
// while the plan is applied.
type spinner struct {
	out     io.Writer
	mu      sync.Mutex
	label   string
	done    chan struct{}
	stopped chan struct{} // closed when the render loop has exited
}

func newSpinner(out io.Writer) *spinner {
	return &spinner{out: out, done: make(chan struct{}), stopped: make(chan struct{})}
}

func (s *spinner) setLabel(l string) {
	s.mu.Lock()
	s.label = l
	s.mu.Unlock()
}

// start launches the render loop in a goroutine.
func (s *spinner) start() {
	frames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

	go func() {
		defer close(s.stopped)
		i := 0
		for {
			select {
			case <-s.done:
				return
			case <-time.After(80 * time.Millisecond):
				s.mu.Lock()
				label := s.label
				frame := frames[i%len(frames)]
				i++
				// \r returns to column 0; \033[K clears to end of line.
				fmt.Fprintf(s.out, "\r\033[K  %s %s", frame, label)
				s.mu.Unlock()
			}
		}
	}()
}

// stop halts the spinner and prints a final status line. It waits for the
// render loop to exit so no frame can follow the status line.
func (s *spinner) stop(err error) {
	close(s.done)
	<-s.stopped

	s.mu.Lock()
	defer s.mu.Unlock()

	fmt.Fprint(s.out, "\r\033[K")
	if err == nil {
		ok := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
		fmt.Fprintf(s.out, "  %s %s\n", ok.Render("✓"), s.label)
	} else {
		bad := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
		fmt.Fprintf(s.out, "  %s %s\n", bad.Render("✗"), s.label)
	}
}

// ── success banner ────────────────────────────────────────────────────────────

func printSuccess(out io.Writer, r *plan.Result, logPath string) {
	ok := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	val := lipgloss.NewStyle().Foreground(lipgloss.Color("14"))

	fmt.Fprintln(out)
	fmt.Fprintln(out, ok.Render("✓ Plan recorded")+dim.Render(fmt.Sprintf("  (%s)", r.Duration.Round(time.Millisecond))))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  Mise config: %s\n", val.Render(r.MiseConfigPath))
	fmt.Fprintf(out, "  State:       %s\n", val.Render(r.StatePath))
	if logPath != "" {
		fmt.Fprintf(out, "  Log:         %s\n", val.Render(logPath))
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %s\n", dim.Render(summary(r.Plan)))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %s\n", dim.Render("Next steps:"))
	fmt.Fprintf(out, "    mise install\n")
	if mgr, ok := pm.ForChannel(manifest.Channel(r.Plan.Family)); ok && len(r.Plan.SystemPackages) > 0 {
		fmt.Fprintf(out, "    wsprov list system | xargs %s\n", strings.Join(mgr.InstallCommand(nil), " "))
	}
	fmt.Fprintln(out)
}
