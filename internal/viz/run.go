package viz

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/pyramid/internal/playback"
)

// Run shows the view full screen until the user quits.
func Run(opts Options) error {
	var p *tea.Program
	sched := playback.NewTickerScheduler(func(t playback.Timer) {
		p.Send(FrameTickMsg{Timer: t})
	})

	m := NewModel(sched, opts)
	defer m.Close()

	p = tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
