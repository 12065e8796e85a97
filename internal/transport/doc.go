// Package transport delivers encoded display frames to the display surface
// over a WebSocket connection.
//
// Dial retries the connection with exponential backoff until it succeeds,
// the context is cancelled or the retry budget runs out. Once connected,
// Send writes one JSON text message per frame:
//
//	{"Target":"Display","Data":[["G","g",0],["N","g",0],...]}
//
// Incoming messages are read and discarded so that close frames and broken
// connections are noticed. After that Send returns ErrClosed and the session
// ends.
//
// When a capture directory is configured every sent frame is also appended
// to a JSON Lines file for offline inspection.
package transport
