package main

import "SortViz/ui"

// The manager must satisfy the full UI contract, including the dialog
// parenting that uses the stored main window.
var _ ui.App = (*AppManager)(nil)
