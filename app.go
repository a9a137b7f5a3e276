// Package main contains the application wiring and the AppManager which
// coordinates the sorting session, audio and the UI. This file
// centralizes the shared application state and the command loop used to
// serialize run-lifecycle operations.
//
// Maintenance notes / tips:
//   - Concurrency model: the application uses a single command-loop
//     goroutine (see `commandLoop`) to serialize Randomize/Start/Stop/
//     Reset operations. The sorting driver itself runs on its own
//     goroutine owned by the sorting.Session; the command loop only
//     starts and cancels it. Array state is read through
//     Model.Snapshot(), so the UI never sees a half-applied step.
//   - `cmdCh` is a buffered channel used to enqueue commands from the
//     UI. The current implementation drops commands when the channel
//     stays full to avoid blocking the UI.
//   - Repaints are driven by the model change notification; each
//     notification captures a snapshot and hands it to the bar panel
//     via fyne.Do.
package main

import (
	"SortViz/control"
	"SortViz/sorting"
	"SortViz/ui"
	"context"
	"embed"
	"log"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const chimeSampleRate = beep.SampleRate(44100)

// AppManager is the main application struct, holding all state.
type AppManager struct {
	mainWindow fyne.Window
	session    *sorting.Session
	defaults   sorting.Defaults

	cmdCh     chan control.Command
	cmdCtx    context.Context
	cmdCancel context.CancelFunc

	randomizeButton *widget.Button
	startButton     *widget.Button
	stopButton      *widget.Button
	resetButton     *widget.Button
	algoSelect      *widget.Select

	barPanel *ui.BarPanel
	audioOK  bool
}

// NewAppManager creates a new application manager.
func NewAppManager(content embed.FS) *AppManager {
	a := &AppManager{}
	a.defaults = sorting.LoadDefaults(content)
	a.session = sorting.NewSession(sorting.NewModel())
	a.initAudio()

	a.session.SetOnRunDone(func(cancelled bool) {
		a.UpdateControlButtonState()
		if !cancelled {
			a.PlayChime()
		}
	})

	// Use a larger buffer for the command channel to reduce drops under brief bursts.
	a.cmdCh = make(chan control.Command, 256)
	a.cmdCtx, a.cmdCancel = context.WithCancel(context.Background())
	go a.commandLoop()

	if err := a.session.Randomize(a.defaults.ArraySize, a.defaults.MinValue, a.defaults.MaxValue); err != nil {
		log.Fatalf("Initial randomize failed: %v", err)
	}

	return a
}

// Session returns the sorting session.
func (a *AppManager) Session() *sorting.Session { return a.session }

// Defaults returns the startup defaults.
func (a *AppManager) Defaults() sorting.Defaults { return a.defaults }

// SetDelay forwards a live speed-slider change to the scheduler.
func (a *AppManager) SetDelay(ms int) { a.session.SetDelay(ms) }

// EnqueueCommand posts a command to the internal command loop.
func (a *AppManager) EnqueueCommand(cmd control.Command) {
	// Try to enqueue the command but avoid blocking UI indefinitely. If the
	// channel stays full for the configured short timeout, drop and log.
	select {
	case a.cmdCh <- cmd:
	case <-time.After(150 * time.Millisecond):
		log.Printf("EnqueueCommand timeout: dropping command")
	}
}

func (a *AppManager) commandLoop() {
	for {
		select {
		case <-a.cmdCtx.Done():
			return
		case cmd := <-a.cmdCh:
			var err error
			switch cmd.Type {
			case control.CmdRandomize:
				err = a.session.Randomize(a.defaults.ArraySize, a.defaults.MinValue, a.defaults.MaxValue)
			case control.CmdStart:
				err = a.session.Start(cmd.Algorithm, cmd.DelayMs)
			case control.CmdStop:
				a.session.Stop()
			case control.CmdReset:
				// Reset waits for the driver to unwind; bounded by one
				// pending step delay.
				a.session.Reset()
			}
			if err != nil {
				log.Printf("Command %d rejected: %v", cmd.Type, err)
			}
			if cmd.Reply != nil {
				select {
				case cmd.Reply <- err:
				default:
				}
			}
		}
	}
}

// SetBarPanel wires the bar panel to the model change notification so
// every mutation repaints it with a coherent snapshot.
func (a *AppManager) SetBarPanel(p *ui.BarPanel) {
	a.barPanel = p
	model := a.session.Model()
	model.SetOnChange(func() {
		snap := model.Snapshot()
		fyne.Do(func() {
			p.SetSnapshot(snap)
		})
	})
	p.SetSnapshot(model.Snapshot())
}

// UpdateControlButtonState reconciles the control widgets with the run
// state: start, randomize and the algorithm selector are usable only
// while idle, stop only while running.
func (a *AppManager) UpdateControlButtonState() {
	running := a.session.Running()

	fyne.Do(func() {
		if a.startButton == nil {
			return
		}
		if running {
			a.startButton.Disable()
			a.randomizeButton.Disable()
			a.algoSelect.Disable()
			a.stopButton.Enable()
		} else {
			a.startButton.Enable()
			a.randomizeButton.Enable()
			a.algoSelect.Enable()
			a.stopButton.Disable()
		}
		a.resetButton.Enable()

		a.startButton.Refresh()
		a.randomizeButton.Refresh()
		a.stopButton.Refresh()
		a.resetButton.Refresh()
	})
}

func (a *AppManager) initAudio() {
	if err := speaker.Init(chimeSampleRate, chimeSampleRate.N(time.Second/10)); err != nil {
		log.Printf("Audio disabled: Failed to initialize speaker: %v", err)
		return
	}
	a.audioOK = true
}

// PlayChime plays a short tone when a run completes. The tone is
// synthesized so the binary ships no audio assets.
func (a *AppManager) PlayChime() {
	if !a.audioOK {
		return
	}
	tone, err := generators.SineTone(chimeSampleRate, 660)
	if err != nil {
		log.Printf("Failed to synthesize chime: %v", err)
		return
	}
	speaker.Play(beep.Take(chimeSampleRate.N(200*time.Millisecond), tone))
}

// ShowError surfaces a recoverable rejection as a dialog over the main
// window.
func (a *AppManager) ShowError(err error) {
	fyne.Do(func() {
		if a.mainWindow != nil {
			dialog.ShowError(err, a.mainWindow)
		}
	})
}

// HandleKeyRune handles key presses for the application: space toggles
// start/stop, r resets, n randomizes.
func (a *AppManager) HandleKeyRune(r rune) {
	switch r {
	case ' ':
		if !a.stopButton.Disabled() {
			a.stopButton.Tapped(&fyne.PointEvent{})
		} else if !a.startButton.Disabled() {
			a.startButton.Tapped(&fyne.PointEvent{})
		}
	case 'r', 'R':
		a.resetButton.Tapped(&fyne.PointEvent{})
	case 'n', 'N':
		if !a.randomizeButton.Disabled() {
			a.randomizeButton.Tapped(&fyne.PointEvent{})
		}
	}
}

// SetRandomizeButton sets the randomize button widget.
func (a *AppManager) SetRandomizeButton(btn *widget.Button) {
	a.randomizeButton = btn
}

// SetStartButton sets the start button widget.
func (a *AppManager) SetStartButton(btn *widget.Button) {
	a.startButton = btn
}

// SetStopButton sets the stop button widget.
func (a *AppManager) SetStopButton(btn *widget.Button) {
	a.stopButton = btn
}

// SetResetButton sets the reset button widget.
func (a *AppManager) SetResetButton(btn *widget.Button) {
	a.resetButton = btn
}

// SetAlgorithmSelect sets the algorithm selector widget.
func (a *AppManager) SetAlgorithmSelect(sel *widget.Select) {
	a.algoSelect = sel
}

// Shutdown stops any active run and the command loop so background
// goroutines can exit.
func (a *AppManager) Shutdown() {
	a.session.Stop()
	if a.cmdCancel != nil {
		a.cmdCancel()
	}
}
