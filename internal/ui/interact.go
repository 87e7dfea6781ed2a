// This file adds the plain (non-full-screen) interaction primitives used by
// one-shot CLI commands: a yes/no prompt and a line spinner for a single
// long-running step. The full-screen menu uses bubbletea/lipgloss directly;
// these helpers use fatih/color instead, matching how a scripted/piped
// invocation expects plain, line-oriented output with no alt-screen.
package ui

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Confirm prints prompt followed by " [y/N]: " and reads a line from stdin.
// Only "y" or "yes" (case-insensitive) counts as confirmed.
func Confirm(prompt string) (bool, error) {
	return confirmWithDefault(prompt, false)
}

// DangerConfirm is Confirm with the prompt rendered in the error color, for
// destructive actions (permanent deletes, registry edits).
func DangerConfirm(prompt string) (bool, error) {
	fmt.Print(color.New(color.FgRed, color.Bold).Sprint(prompt) + " [y/N]: ")
	return readConfirmLine()
}

func confirmWithDefault(prompt string, _ bool) (bool, error) {
	fmt.Print(color.New(color.FgYellow).Sprint(prompt) + " [y/N]: ")
	return readConfirmLine()
}

func readConfirmLine() (bool, error) {
	line, err := ReadLine("")
	if err != nil && line == "" {
		return false, err
	}
	answer := strings.ToLower(line)
	return answer == "y" || answer == "yes", nil
}

// ReadLine prints prompt (if non-empty) with no trailing newline, then reads
// and trims a single line from stdin — the shared primitive behind Confirm
// and any other plain-CLI free-text input (app selection, search refinement).
func ReadLine(prompt string) (string, error) {
	if prompt != "" {
		fmt.Print(prompt)
	}
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// InlineSpinner animates SpinnerFrames on the current line while a step
// runs, then replaces the line with a final success/error/plain message.
type InlineSpinner struct {
	mu      sync.Mutex
	stopCh  chan struct{}
	doneCh  chan struct{}
	running bool
}

// NewInlineSpinner constructs a stopped spinner ready for Start.
func NewInlineSpinner() *InlineSpinner {
	return &InlineSpinner{}
}

// Start begins animating label on the current terminal line.
func (s *InlineSpinner) Start(label string) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})
	s.running = true
	s.mu.Unlock()

	go func() {
		defer close(s.doneCh)
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		frame := 0
		for {
			select {
			case <-s.stopCh:
				return
			case <-ticker.C:
				glyph := color.New(color.FgCyan).Sprint(SpinnerFrames[frame%len(SpinnerFrames)])
				fmt.Printf("\r%s %s", glyph, label)
				frame++
			}
		}
	}()
}

// Stop halts the animation and prints a final success-styled line.
func (s *InlineSpinner) Stop(message string) {
	s.finish(color.New(color.FgGreen).Sprint(IconCheck) + " " + message)
}

// StopWithError halts the animation and prints a final error-styled line.
func (s *InlineSpinner) StopWithError(message string) {
	s.finish(color.New(color.FgRed).Sprint(IconCross) + " " + message)
}

func (s *InlineSpinner) finish(line string) {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	close(s.stopCh)
	s.running = false
	s.mu.Unlock()
	<-s.doneCh
	fmt.Printf("\r%s\n", line+strings.Repeat(" ", 10))
}

// ShowBrandBanner renders the small header shown above the interactive menu.
func ShowBrandBanner() string {
	title := color.New(color.FgHiWhite, color.Bold).Sprint("lightc")
	tag := MutedStyle().Render("safety-gated disk cleanup")
	return fmt.Sprintf("  %s  %s\n", title, tag)
}
