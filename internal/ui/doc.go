// Package ui contains the Bubble Tea program that presents the animal
// browser: a button grid on the left and a detail panel on the right.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function (key presses, mouse events, window resizes, loader results).
//   - Init queues the single catalogue load through the command bus. Until it
//     resolves the grid is empty and the welcome panel is shown.
//   - Activating a button (enter, space, digit or mouse click) calls
//     controller.OnActivate. Accepted activations re-render through
//     render.Render into the surface; rejected ones change nothing.
//
// State ownership:
//   - The controller owns the catalogue and the selection. The surface holds
//     the last fragments written by the renderer and is the only thing the
//     view reads selection data from.
//   - Keyboard focus and the jump query live in internal/ui/state.Grid and
//     never change the selection on their own.
//   - Artwork for the selected animal is requested asynchronously; results
//     are tagged with a sequence number so stale ones are dropped.
package ui
