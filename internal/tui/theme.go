package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Core palette
	Green       = lipgloss.Color("#00FF41")
	BrightGreen = lipgloss.Color("#39FF14")
	DarkGreen   = lipgloss.Color("#008F11")
	DimGreen    = lipgloss.Color("#003B00")
	Amber       = lipgloss.Color("#FFB000")
	BrightAmber = lipgloss.Color("#FFCC00")
	DarkAmber   = lipgloss.Color("#B37B00")
	DimAmber    = lipgloss.Color("#5C3F00")
	Cyan        = lipgloss.Color("#00D4AA")
	Black       = lipgloss.Color("#0D0208")
	MidGray     = lipgloss.Color("#3a3a4e")
	LightGray   = lipgloss.Color("#aaaaaa")
	White       = lipgloss.Color("#e0e0e0")
	Red         = lipgloss.Color("#FF4136")
	Gold        = lipgloss.Color("#FFD700")
)

// Theme is the set of styles one color scheme produces.
type Theme struct {
	Name string

	Accent lipgloss.Color
	Bright lipgloss.Color
	Dark   lipgloss.Color
	Dim    lipgloss.Color

	Banner      lipgloss.Style
	Prompt      lipgloss.Style
	Echo        lipgloss.Style
	Reply       lipgloss.Style
	Notice      lipgloss.Style
	Error       lipgloss.Style
	Help        lipgloss.Style
	Separator   lipgloss.Style
	StatusBar   lipgloss.Style
	InputBox    lipgloss.Style
	MenuBox     lipgloss.Style
	TableHeader lipgloss.Style
	TableCell   lipgloss.Style
	TableTitle  lipgloss.Style
}

// NewTheme builds the named theme. Unknown names get the green one.
func NewTheme(name string) Theme {
	t := Theme{Name: "green", Accent: Green, Bright: BrightGreen, Dark: DarkGreen, Dim: DimGreen}
	if name == "amber" {
		t = Theme{Name: "amber", Accent: Amber, Bright: BrightAmber, Dark: DarkAmber, Dim: DimAmber}
	}

	t.Banner = lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	t.Prompt = lipgloss.NewStyle().Foreground(t.Bright).Bold(true)
	t.Echo = lipgloss.NewStyle().Foreground(t.Dark)
	t.Reply = lipgloss.NewStyle().Foreground(White)
	t.Notice = lipgloss.NewStyle().Foreground(Gold)
	t.Error = lipgloss.NewStyle().Foreground(Red).Bold(true)
	t.Help = lipgloss.NewStyle().Foreground(t.Dark)
	t.Separator = lipgloss.NewStyle().Foreground(t.Dim)
	t.StatusBar = lipgloss.NewStyle().
		Background(t.Dark).
		Foreground(Black).
		Bold(true).
		Padding(0, 1)
	t.InputBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Dark).
		Padding(0, 1)
	t.MenuBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Accent).
		Padding(0, 1)
	t.TableHeader = lipgloss.NewStyle().Foreground(t.Bright).Bold(true).Padding(0, 1)
	t.TableCell = lipgloss.NewStyle().Foreground(White).Padding(0, 1)
	t.TableTitle = lipgloss.NewStyle().Foreground(Cyan).Bold(true)
	return t
}

const Banner = `
   ___           _      __              __
  / _ | ___ ___ (_)__ _/ /____ ____  / /_
 / __ |(_-<(_-</ (_-</ __/ _ '/ _ \/ __/
/_/ |_/___/___/_/___/\__/\_,_/_//_/\__/
`
