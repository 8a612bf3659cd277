package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	next     key.Binding
	prev     key.Binding
	submit   key.Binding
	video    key.Binding
	download key.Binding
	slides   key.Binding
	scrollUp key.Binding
	scrollDn key.Binding
	dismiss  key.Binding
	quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		next:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		prev:     key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
		submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "generate course")),
		video:    key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "generate video")),
		download: key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "download")),
		slides:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "slides/form")),
		scrollUp: key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "log up")),
		scrollDn: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "log down")),
		dismiss:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dismiss")),
		quit:     key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.submit, k.video, k.download, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.next, k.prev, k.submit},
		{k.video, k.download, k.slides},
		{k.scrollUp, k.scrollDn, k.dismiss, k.quit},
	}
}
