// Package ui contains the Bubble Tea program that browses and edits kernel
// parameters.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which a typed
//     handler registry routes to focused functions.
//   - Key presses are translated by command.ParseKey into command values and
//     applied one at a time by Model.Dispatch. Dispatch is the only place
//     session state changes, so every transition can be tested without a
//     terminal.
//   - Timer events from an event.Source arrive as eventMsg values and expire
//     the status message.
//
// State ownership:
//   - Parameters belong to the Controller. Lists in internal/ui/state hold
//     handles to them, so an update made through the controller is visible on
//     the next render.
//   - The session is in exactly one of three modes: browsing, editing (an
//     input line is open), or a popup. Cursors and scroll offsets persist
//     across mode changes.
//
// Errors from the controller or clipboard never leave Dispatch; they become
// timed messages shown under the list.
package ui
