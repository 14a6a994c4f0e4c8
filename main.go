package main

import (
	"flag"
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"safecoll/pkg/logging"
	"safecoll/pkg/ui"
)

type Configuration struct {
	LogPath  string
	LogLevel string
	DemoMode bool
}

func main() {
	config := parseArguments()
	showSplashScreen()

	if err := initializeLogging(config); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logging.Close()

	session := ui.NewSession()
	if config.DemoMode {
		if err := session.LoadDemoData(); err != nil {
			log.Fatalf("Demo mode failed: %v", err)
		}
	}

	if err := startInteractiveMode(session); err != nil {
		log.Fatalf("Failed to start UI: %v", err)
	}
}

// parseArguments processes command-line flags
func parseArguments() Configuration {
	var config Configuration

	flag.StringVar(&config.LogPath, "log", "", "Log file path (empty for stdout)")
	flag.StringVar(&config.LogLevel, "level", "INFO", "Log level: DEBUG, INFO, WARN, ERROR")
	flag.BoolVar(&config.DemoMode, "demo", false, "Preload the containers with sample data")

	flag.Parse()

	return config
}

// showSplashScreen displays a welcome banner
func showSplashScreen() {
	splash := `
╔═══════════════════════════════════════════════════╗
║   ███████╗ █████╗ ███████╗███████╗                ║
║   ██╔════╝██╔══██╗██╔════╝██╔════╝                ║
║   ███████╗███████║█████╗  █████╗                  ║
║   ╚════██║██╔══██║██╔══╝  ██╔══╝                  ║
║   ███████║██║  ██║██║     ███████╗                ║
║   ╚══════╝╚═╝  ╚═╝╚═╝     ╚══════╝ coll           ║
║                                                   ║
║   Guarded in-memory containers for Go             ║
╚═══════════════════════════════════════════════════╝
`

	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#7C3AED")).
		Bold(true)

	fmt.Println(style.Render(splash))
}

func initializeLogging(config Configuration) error {
	return logging.Init(logging.Config{
		Level:      logging.LogLevel(config.LogLevel),
		OutputPath: config.LogPath,
		Format:     "text",
	})
}

// startInteractiveMode launches the Bubble Tea playground
func startInteractiveMode(session *ui.Session) error {
	model := ui.NewModel(session)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %v", err)
	}

	return nil
}
