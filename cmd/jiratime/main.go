package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/jiratime/jiratime/pkg/config"
	"github.com/jiratime/jiratime/pkg/jira"
	"github.com/jiratime/jiratime/pkg/logger"
	"github.com/jiratime/jiratime/pkg/ui"
)

const version = "0.1.0"

func main() {
	cfgPath := flag.String("config", "", "Path to config file (default: "+config.DefaultPath()+")")
	showHelp := flag.Bool("help", false, "Show help")
	showVersion := flag.Bool("version", false, "Show version")
	flag.Parse()

	if *showHelp {
		fmt.Println("Usage: jiratime [options]")
		fmt.Println("\nA TUI for browsing Jira boards and logging work.")
		fmt.Println("\nCredentials come from the config file or from")
		fmt.Println("JIRA_BASE_URL, JIRA_EMAIL and JIRA_API_TOKEN.")
		flag.PrintDefaults()
		os.Exit(0)
	}

	if *showVersion {
		fmt.Println("jiratime version " + version)
		os.Exit(0)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "jiratime needs an interactive terminal")
		os.Exit(1)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	log, closer, err := logger.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	client := jira.NewClient(cfg, log)
	m := ui.NewModel(client, cfg.PageSize, log)

	log.Info().Str("base_url", cfg.BaseURL).Msg("starting jiratime")
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running jiratime: %v\n", err)
		os.Exit(1)
	}
}
