// Command shopdesk is the terminal console for the shop management
// backend: resource pages for customers, jobs, stock, refunds,
// warranties and technicians, plus the notification center.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jmorales/shopdesk/internal/api"
	"github.com/jmorales/shopdesk/internal/app"
	"github.com/jmorales/shopdesk/internal/keys"
	"github.com/jmorales/shopdesk/internal/logging"
	"github.com/jmorales/shopdesk/internal/model"
	"github.com/jmorales/shopdesk/internal/notify"
	"github.com/jmorales/shopdesk/internal/session"
	"github.com/jmorales/shopdesk/internal/store"
)

func main() {
	configPath := flag.String("config", model.DefaultConfigPath(), "path to config file")
	flag.Parse()

	switch flag.Arg(0) {
	case "login":
		if err := runLogin(flag.Arg(1)); err != nil {
			fmt.Fprintln(os.Stderr, "login failed:", err)
			os.Exit(1)
		}
		fmt.Println("Session token stored.")
		return
	case "logout":
		if err := session.Clear(); err != nil {
			fmt.Fprintln(os.Stderr, "logout failed:", err)
			os.Exit(1)
		}
		fmt.Println("Session token removed.")
		return
	}

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// runLogin validates and stores a session token. When no token argument
// is given it is read from stdin, so tokens stay out of shell history.
func runLogin(token string) error {
	if token == "" {
		fmt.Print("Paste session token: ")
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		token = strings.TrimSpace(line)
	}
	return session.Save(token)
}

func run(configPath string) error {
	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		return err
	}

	log := logging.New(cfg.LogFile)

	st, err := store.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening local cache: %w", err)
	}
	defer st.Close()

	sessions := session.Store{}
	if sessions.Current() == nil {
		fmt.Fprintln(os.Stderr, "No session found. Run `shopdesk login` first,")
		fmt.Fprintln(os.Stderr, "or set "+session.EnvToken+" in the environment.")
	}

	client := api.NewClient(cfg.API.BaseURL, sessions, log)
	client.SetTimeout(time.Duration(cfg.API.TimeoutSec) * time.Second)

	poller := notify.New(
		api.NewNotifications(client),
		st,
		sessions,
		time.Duration(cfg.Notify.PollIntervalSec)*time.Second,
		cfg.Notify.RecentLimit,
		log,
	)

	root := app.New(app.Config{
		Client:   client,
		Store:    st,
		Sessions: sessions,
		Poller:   poller,
		Keys:     keys.DefaultKeyMap(),
		Log:      log,
	})

	p := tea.NewProgram(root, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running ui: %w", err)
	}

	log.Info().Msg("shutting down")
	return nil
}
