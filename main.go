package main

import (
	"SortViz/ui"
	"embed"

	"fyne.io/fyne/v2/app"
)

//go:embed assets/*
var content embed.FS

func main() {
	fyneApp := app.New()
	fyneApp.Settings().SetTheme(ui.NewCustomTheme())

	a := NewAppManager(content)

	w := ui.CreateMainWindow(a, fyneApp)
	a.mainWindow = w

	w.SetOnClosed(a.Shutdown)

	w.ShowAndRun()
}
