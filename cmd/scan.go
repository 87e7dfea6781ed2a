package cmd

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/cy-infamous/lightc/internal/category"
	"github.com/cy-infamous/lightc/internal/orchestrator"
	"github.com/cy-infamous/lightc/internal/ui"
)

var scanJunkCmd = &cobra.Command{
	Use:   "scan-junk [category...]",
	Short: "Scan junk categories for deletion candidates",
	Long: `Scans every junk category (or the given subset) and reports per-category
candidates and combined totals. Nothing is deleted by this command.

Examples:
  lightc scan-junk
  lightc scan-junk "Browser Cache" "Thumbnail Cache"`,
	Run: runScanJunk,
}

var scanCategoryCmd = &cobra.Command{
	Use:   "scan-category [category]",
	Short: "Scan a single junk category",
	Long: `Scans one junk category. When no category name is given, opens an
interactive filterable picker over the category catalog.`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScanCategory,
}

func runScanJunk(cmd *cobra.Command, args []string) {
	results, totalSize, totalItems, err := orchestrator.ScanJunk(context.Background(), args)
	if err != nil {
		fatal(cmd, err)
	}

	for _, r := range results {
		fmt.Printf("  %s %-24s %6d items  %s\n",
			ui.IconFolder, r.Category, len(r.Items), ui.FormatSize(r.TotalSize))
	}
	fmt.Println(ui.Divider(60))
	fmt.Printf("  %s Total: %s across %s\n",
		ui.IconCheck, ui.FormatSize(totalSize), ui.FormatCount(totalItems, "item"))
}

func runScanCategory(cmd *cobra.Command, args []string) {
	name := ""
	if len(args) > 0 {
		name = args[0]
	} else {
		picked, err := pickCategory()
		if err != nil {
			fatal(cmd, err)
		}
		if picked == "" {
			fmt.Println(ui.MutedStyle().Render("  No category selected."))
			return
		}
		name = picked
	}

	result, err := orchestrator.ScanCategoryByName(context.Background(), name)
	if err != nil {
		fatal(cmd, err)
	}

	fmt.Printf("  %s %s — %s across %s\n",
		ui.IconFolder, result.Category, ui.FormatSize(result.TotalSize), ui.FormatCount(len(result.Items), "item"))
	for _, item := range result.Items {
		fmt.Printf("    %s %-60s %s\n", ui.IconBullet, ui.FormatPathWidth(item.Path, 60), ui.FormatSize(item.LogicalSize))
	}
}

// categoryPickerModel is a minimal bubbletea wrapper around ui.Picker for
// choosing a single category from the catalog.
type categoryPickerModel struct {
	picker   *ui.Picker
	selected string
	quitting bool
}

func newCategoryPickerModel() categoryPickerModel {
	items := make([]ui.PickerItem, 0, len(category.All()))
	for _, c := range category.All() {
		def, _ := category.Get(c)
		items = append(items, ui.PickerItem{Name: def.DisplayName, Description: def.Description})
	}
	p := ui.NewPicker(items)
	p.Open()
	return categoryPickerModel{picker: p}
}

func (m categoryPickerModel) Init() tea.Cmd { return nil }

func (m categoryPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "q", "esc", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "up", "k":
		m.picker.MoveUp()
	case "down", "j":
		m.picker.MoveDown()
	case "enter":
		if sel := m.picker.Selected(); sel != nil {
			m.selected = sel.Name
		}
		return m, tea.Quit
	case "backspace":
		// no-op: category names are picked by cursor, not typed
	}
	return m, nil
}

func (m categoryPickerModel) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(ui.HeaderStyle().Render("  Choose a category") + "\n\n")
	for i, item := range m.picker.Filtered() {
		if i == m.picker.Cursor() {
			b.WriteString("  " + ui.IconArrow + " " + ui.BoldStyle().Render(item.Name) + "  " + ui.MutedStyle().Render(item.Description) + "\n")
		} else {
			b.WriteString("    " + item.Name + "\n")
		}
	}
	b.WriteString("\n" + ui.HintBarStyle().Render("  up/down navigate  "+ui.IconPipe+"  enter select  "+ui.IconPipe+"  q cancel") + "\n")
	return b.String()
}

func pickCategory() (string, error) {
	p := tea.NewProgram(newCategoryPickerModel())
	final, err := p.Run()
	if err != nil {
		return "", err
	}
	return final.(categoryPickerModel).selected, nil
}
