// Package cdu runs a display session.
//
// A Dispatcher resolves raw button ids through the button map and routes
// them to the active page. Page navigation keys cycle the ordinary pages.
// While an error message is shown the error page takes every press, so the
// pilot must acknowledge it before anything else happens.
//
// A Session owns the application state and is its only writer. Its Run loop
// takes button presses, flight plan list updates and telemetry snapshots one
// at a time, and renders a full frame to the transport every render
// interval. Telemetry is polled on its own goroutine and the loop keeps only
// the newest snapshot.
package cdu
