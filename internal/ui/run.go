package ui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"luapretty/internal/pipeline"
)

// Run shows a progress screen on out while work runs. work reports to the
// sink it is given; the screen closes when work returns. The error of work
// wins over an error of the screen.
func Run(title string, out io.Writer, work func(pipeline.ProgressSink) error) error {
	events := make(chan pipeline.Event, 256)
	outcome := make(chan error, 1)

	go func() {
		err := work(pipeline.ChannelSink{Ch: events})
		close(events)
		outcome <- err
	}()

	program := tea.NewProgram(NewProgressModel(title, nil, events), tea.WithOutput(out), tea.WithInput(nil))
	_, uiErr := program.Run()
	if uiErr != nil {
		// экран упал: дочитываем события, чтобы работа не встала на канале
		for range events {
		}
	}
	if err := <-outcome; err != nil {
		return err
	}
	return uiErr
}
