package ui

import "invdash/internal/dashboard"

// stackNavigator opens list views by pushing them onto the app's view stack.
type stackNavigator struct {
	app *AppModel
}

var _ dashboard.Navigator = stackNavigator{}

// Navigate implements dashboard.Navigator.
func (n stackNavigator) Navigate(target dashboard.ListTarget, args dashboard.ListArgs) {
	n.app.Stack.Push(NewListView(target, args, n.app.Source, n.app.PageSize))
}
