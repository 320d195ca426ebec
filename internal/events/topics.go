// Package events names the bus topics shared between managers and
// dashboard controllers.
package events

const (
	// TopicCheckout fires after a successful payment; the dashboard
	// schedules the delayed navigation off it.
	TopicCheckout = "cart.checkout"

	// TopicNotice carries user-visible messages (one string argument).
	TopicNotice = "ui.notice"
)
