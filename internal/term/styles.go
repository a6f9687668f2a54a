package term

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("37"))  // dark green
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))   // red
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))  // yellow
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))  // cyan
	debugStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("250")) // light grey
)

func PrintSuccess(text string) {
	fmt.Fprintln(os.Stderr, successStyle.Render(text))
}
func PrintError(text string) {
	fmt.Fprintln(os.Stderr, errorStyle.Render(text))
}
func PrintWarning(text string) {
	fmt.Fprintln(os.Stderr, warningStyle.Render(text))
}
func PrintInfo(text string) {
	fmt.Fprintln(os.Stderr, infoStyle.Render(text))
}
func PrintDebug(text string) {
	fmt.Fprintln(os.Stderr, debugStyle.Render(text))
}
