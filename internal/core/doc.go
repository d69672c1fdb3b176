// Package core holds the pieces every screen view-model shares: the
// staged result type streamed by interactors, the copy-on-write
// notification queue, and the adapters that turn interactor streams into
// Bubble Tea messages.
//
// A view-model starts an operation with Flights, hands the returned
// channel to Receive, and gets one FlowMsg per streamed value back through
// its Update method. Fetches are keyed so that a newer request supersedes
// an older one; the superseded stream is cancelled and any message it
// already produced is dropped by Flights.Current.
package core
