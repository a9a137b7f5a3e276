package ui

import (
	"SortViz/control"
	"SortViz/i18n"
	"SortViz/sorting"
	"errors"
	"image/color"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// App is the interface the UI expects from the application manager.
type App interface {
	Defaults() sorting.Defaults
	EnqueueCommand(cmd control.Command)
	UpdateControlButtonState()
	ShowError(err error)
	HandleKeyRune(rune)
	SetDelay(ms int)
	SetBarPanel(*BarPanel)
	SetRandomizeButton(*widget.Button)
	SetStartButton(*widget.Button)
	SetStopButton(*widget.Button)
	SetResetButton(*widget.Button)
	SetAlgorithmSelect(*widget.Select)
}

// BarPanel renders a model snapshot as a bar histogram. Bar heights are
// scaled to the snapshot's maximum value; colors follow the three-color
// legend (default / comparing-or-swapping / confirmed-sorted). The
// panel is a pure function of the snapshot it was last given.
type BarPanel struct {
	widget.BaseWidget

	mu   sync.Mutex
	snap sorting.ModelSnapshot
}

// NewBarPanel creates the histogram panel and registers it with the
// application so model changes repaint it.
func NewBarPanel(a App) *BarPanel {
	p := &BarPanel{}
	p.ExtendBaseWidget(p)
	a.SetBarPanel(p)
	return p
}

// SetSnapshot replaces the rendered state. Must be called on the UI
// thread (the manager hops via fyne.Do).
func (p *BarPanel) SetSnapshot(snap sorting.ModelSnapshot) {
	p.mu.Lock()
	p.snap = snap
	p.mu.Unlock()
	p.Refresh()
}

func (p *BarPanel) snapshot() sorting.ModelSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snap
}

// CreateRenderer builds the canvas objects for the panel.
func (p *BarPanel) CreateRenderer() fyne.WidgetRenderer {
	background := canvas.NewRectangle(panelBackgroundColor)
	legend := canvas.NewText(i18n.T("White = default, Red = comparing, Green = sorted"), legendColor)
	legend.TextSize = 13
	return &barPanelRenderer{panel: p, background: background, legend: legend}
}

type barPanelRenderer struct {
	panel      *BarPanel
	background *canvas.Rectangle
	legend     *canvas.Text
	bars       []*canvas.Rectangle
	size       fyne.Size
}

func (r *barPanelRenderer) MinSize() fyne.Size {
	return fyne.NewSize(sorting.PanelMinWidth, sorting.PanelMinHeight)
}

func (r *barPanelRenderer) Layout(size fyne.Size) {
	r.size = size
	r.background.Resize(size)
	r.legend.Move(fyne.NewPos(sorting.LegendMargin, 6))
	r.layoutBars()
}

func (r *barPanelRenderer) layoutBars() {
	snap := r.panel.snapshot()
	n := len(snap.Values)
	if n == 0 || r.size.Width <= 0 {
		return
	}

	maxVal := 1
	for _, v := range snap.Values {
		if v > maxVal {
			maxVal = v
		}
	}

	barW := r.size.Width / float32(n)
	drawW := barW - sorting.BarGap
	if drawW < 1 {
		drawW = 1
	}
	// Keep headroom for the legend line.
	usable := r.size.Height - 30

	for i, bar := range r.bars {
		if i >= n {
			bar.Hide()
			continue
		}
		barH := float32(snap.Values[i]) / float32(maxVal) * usable
		bar.Show()
		bar.Move(fyne.NewPos(float32(i)*barW, r.size.Height-barH))
		bar.Resize(fyne.NewSize(drawW, barH))
	}
}

func (r *barPanelRenderer) Refresh() {
	snap := r.panel.snapshot()
	n := len(snap.Values)

	for len(r.bars) < n {
		r.bars = append(r.bars, canvas.NewRectangle(barDefaultColor))
	}

	for i := 0; i < n; i++ {
		c := barDefaultColor
		if i < len(snap.Sorted) && snap.Sorted[i] {
			c = barSortedColor
		}
		// Highlight wins over sorted, matching the legend priority.
		if snap.Highlighted(i) {
			c = barHighlightColor
		}
		r.bars[i].FillColor = c
	}

	r.layoutBars()
	canvas.Refresh(r.panel)
}

func (r *barPanelRenderer) Objects() []fyne.CanvasObject {
	objects := make([]fyne.CanvasObject, 0, len(r.bars)+2)
	objects = append(objects, r.background)
	for _, bar := range r.bars {
		objects = append(objects, bar)
	}
	objects = append(objects, r.legend)
	return objects
}

func (r *barPanelRenderer) Destroy() {}

// awaitReply waits briefly for the command loop's outcome and surfaces
// recoverable rejections as a dialog. Rejections the disabled controls
// already prevent are only logged by the command loop.
func awaitReply(a App, reply chan error) {
	select {
	case err := <-reply:
		if err != nil && errors.Is(err, sorting.ErrInvalidRange) {
			a.ShowError(err)
		}
	case <-time.After(250 * time.Millisecond):
	}
}

// BuildControls creates the control row: algorithm selector, the four
// action buttons and the speed slider. Each action maps 1:1 to a
// session operation through the command loop.
func BuildControls(a App) fyne.CanvasObject {
	defaults := a.Defaults()

	algoSelect := widget.NewSelect(sorting.AlgorithmNames(), nil)
	algoSelect.SetSelectedIndex(0)

	speedSlider := widget.NewSlider(float64(defaults.MinDelayMs), float64(defaults.MaxDelayMs))
	speedSlider.SetValue(float64(defaults.DefaultDelayMs))
	speedSlider.OnChanged = func(v float64) {
		// Read live by the scheduler; no apply step.
		a.SetDelay(int(v))
	}

	randomizeButton := widget.NewButton(i18n.T("Randomize"), func() {
		reply := make(chan error, 1)
		a.EnqueueCommand(control.Command{Type: control.CmdRandomize, Reply: reply})
		awaitReply(a, reply)
		a.UpdateControlButtonState()
	})

	startButton := widget.NewButton(i18n.T("Start"), func() {
		algo, err := sorting.ParseAlgorithm(algoSelect.Selected)
		if err != nil {
			return
		}
		reply := make(chan error, 1)
		a.EnqueueCommand(control.Command{
			Type:      control.CmdStart,
			Algorithm: algo,
			DelayMs:   int(speedSlider.Value),
			Reply:     reply,
		})
		awaitReply(a, reply)
		a.UpdateControlButtonState()
	})

	stopButton := widget.NewButton(i18n.T("Stop"), func() {
		reply := make(chan error, 1)
		a.EnqueueCommand(control.Command{Type: control.CmdStop, Reply: reply})
		awaitReply(a, reply)
		a.UpdateControlButtonState()
	})
	stopButton.Disable()

	resetButton := widget.NewButton(i18n.T("Reset"), func() {
		reply := make(chan error, 1)
		a.EnqueueCommand(control.Command{Type: control.CmdReset, Reply: reply})
		awaitReply(a, reply)
		a.UpdateControlButtonState()
	})

	a.SetRandomizeButton(randomizeButton)
	a.SetStartButton(startButton)
	a.SetStopButton(stopButton)
	a.SetResetButton(resetButton)
	a.SetAlgorithmSelect(algoSelect)

	sliderEnforcer := canvas.NewRectangle(color.Transparent)
	sliderEnforcer.SetMinSize(fyne.NewSize(200, 0))
	sliderBox := container.NewStack(sliderEnforcer, speedSlider)

	gap := canvas.NewRectangle(color.Transparent)
	gap.SetMinSize(fyne.NewSize(sorting.ControlsGap, 0))

	return container.NewHBox(
		widget.NewLabel(i18n.T("Algorithm:")),
		algoSelect,
		gap,
		randomizeButton,
		startButton,
		stopButton,
		resetButton,
		layout.NewSpacer(),
		widget.NewLabel(i18n.T("Speed:")),
		sliderBox,
	)
}

// CreateMainWindow builds the application window: control row on top,
// bar histogram filling the rest.
func CreateMainWindow(a App, fyneApp fyne.App) fyne.Window {
	title := fyneApp.Metadata().Name
	if title == "" {
		title = "SortViz"
	}
	w := fyneApp.NewWindow(title)

	panel := NewBarPanel(a)
	controls := BuildControls(a)

	w.Canvas().SetOnTypedRune(a.HandleKeyRune)

	w.SetContent(container.NewBorder(controls, nil, nil, nil, panel))
	a.UpdateControlButtonState()

	w.Resize(fyne.NewSize(sorting.PanelMinWidth, sorting.PanelMinHeight+60))
	return w
}
