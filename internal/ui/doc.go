// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// A single screen mirrors the course generator page:
//   - the course form (topic, audience, duration) with tab navigation
//   - the three controls: generate course, generate video, download
//   - the agent status row and the scrolling activity log
//   - the course summary and the slide cards list
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Controller actions run inside tea.Cmds; their screen changes arrive through [Surface], a channel
// the model drains one message at a time, so the UI keeps handling keys while a request is in flight.
//
// Keyboard bindings (enter, ctrl+g, ctrl+d, tab, pgup/pgdn, esc) are listed via charmbracelet/bubbles/help.
package ui
