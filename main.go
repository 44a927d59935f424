package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/fokus/internal/engine"
	"github.com/sadopc/fokus/internal/notify"
	"github.com/sadopc/fokus/internal/store"
	"github.com/sadopc/fokus/internal/tui"
)

func main() {
	dbPath := ""
	if len(os.Args) > 1 {
		dbPath = os.Args[1]
	} else {
		p, err := store.DefaultDBPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		dbPath = p
	}

	s, err := store.New(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening database: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	// The scheduler fires into the program's event loop; the program
	// does not exist yet, so route through a late-bound pointer.
	var program *tea.Program
	scheduler := notify.New(func(a notify.Alert) {
		if program != nil {
			program.Send(tui.AlertFired(a))
		}
	})

	eng := engine.New(s, engine.WithNotifier(scheduler))

	app := tui.NewApp(eng, s)
	program = tea.NewProgram(app, tea.WithAltScreen(), tea.WithReportFocus())

	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
