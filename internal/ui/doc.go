// Package ui contains the Bubble Tea program that powers the composer popup.
// The Model type focuses on message orchestration, while dedicated helpers own
// text input, trigger tracking, the candidate menu, mouse dismissal and
// rendering.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function (key presses, mouse events, focus changes, candidate results or
//     backend reloads).
//   - Every key that changes the surface content or cursor ends in
//     refreshTrigger (internal/ui/completion.go). It re-runs trigger detection
//     against the live surface, arms, updates or disarms the trigger, and
//     filters candidates for the current query inside the same Update call.
//   - While the menu is open the navigation and commit keys are consumed by
//     handleMenuKey (internal/ui/input.go) and never reach the surface.
//
// State ownership:
//   - The surface buffer (internal/surface) owns text runs, chips and the
//     cursor. The trigger package re-validates the armed span against it before
//     any commit mutates it.
//   - Menu state lives in internal/ui/state.Menu, which tracks items, the
//     highlight, the fixed position and viewport calculations.
//   - Candidates live in an internal/state store kept current by the
//     dispatcher, so filtering always sees the latest reloaded list.
//   - Per-query lookups run through the internal/ui/command bus. Results carry
//     a generation number and late ones are dropped.
//
// Mouse handling:
//   - syncLayout records the surface and menu rects on a hit map after every
//     update. While the menu is open a single pointer listener dismisses it
//     on presses outside both rects; it is detached on every close path.
//
// Backend interactions:
//   - A backend.Watcher streams candidate file reloads; Update waits for those
//     events and hands them to applyBackendEvent, which refreshes the store and
//     re-filters the open menu.
package ui
