package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"csfix/internal/driver"
	"csfix/internal/finder"
	"csfix/internal/ui"
)

type fixOutcome struct {
	report *driver.Report
	err    error
}

func runFixWithUI(ctx context.Context, title string, fnd *finder.Finder, opts driver.Options) (*driver.Report, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan fixOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		report, err := driver.FixPaths(ctx, fnd.Files(), optsCopy)
		outcomeCh <- fixOutcome{report: report, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	// программа могла выйти раньше (ctrl+c): дочитываем события, чтобы
	// воркеры не встали на полном канале
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.report, uiErr
	}
	return outcome.report, outcome.err
}
