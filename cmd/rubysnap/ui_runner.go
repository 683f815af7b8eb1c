package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"rubysnap/internal/harness"
	"rubysnap/internal/ui"
)

func runSuiteWithUI(ctx context.Context, title string, suite *harness.Suite, jobs int) ([]harness.Result, error) {
	cases := suite.Cases()
	names := make([]string, len(cases))
	for i, c := range cases {
		names[i] = c.Name
	}

	events := make(chan harness.Event, 256)
	resultCh := make(chan []harness.Result, 1)
	go func() {
		res := suite.Run(ctx, jobs, harness.ChannelSink{Ch: events})
		close(events)
		resultCh <- res
	}()

	model := ui.NewProgressModel(title, names, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout), tea.WithContext(ctx))
	_, uiErr := program.Run()
	// модель могла выйти раньше (ctrl+c): дочитываем канал, чтобы Run не встал
	go func() {
		for range events {
		}
	}()
	results := <-resultCh
	return results, uiErr
}
