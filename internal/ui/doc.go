// Package ui is the Bubble Tea front end for invdash.
//
// Core pieces:
//   - View: a screen with its own Init/Update/View (Elm-style)
//   - ViewStack: stack-based navigation; the dashboard sits at the bottom
//   - DashboardView: the four preview panels backed by dashboard.Controller
//   - ListView: one page of a full customer, order or product list
//   - Overlay: popup views with a dismiss key (the activity log)
//   - KeybindRegistry: leader-key (SPC) command bindings, filtered by AppMode
//
// Pushing a list view unloads the dashboard; popping back reloads it.
package ui
