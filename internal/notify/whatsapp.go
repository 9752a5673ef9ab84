package notify

import (
	"fmt"
	"net/url"
	"strings"
)

// WhatsApp builds wa.me deep links for outbound customer messages. It is
// pure formatting; opening the link is the operator's job.
type WhatsApp struct {
	BusinessName string
}

// Link returns a wa.me URL that opens a chat with the given number and a
// prefilled message.
func (w WhatsApp) Link(phone, message string) string {
	phone = strings.TrimPrefix(strings.TrimSpace(phone), "+")
	return "https://wa.me/" + phone + "?text=" + escape(message)
}

// PickupReady is sent when a vehicle leaves the pipeline.
func (w WhatsApp) PickupReady(phone, name, plate string) string {
	msg := fmt.Sprintf("Hi %s, your car (%s) is ready at %s!", name, plate, w.BusinessName)
	return w.Link(phone, msg)
}

// LowCredit nudges a member whose prepaid balance is nearly spent.
func (w WhatsApp) LowCredit(phone, name string, balance int) string {
	msg := fmt.Sprintf("Hi %s, you have %d wash credit(s) left on your %s card. Top up on your next visit!", name, balance, w.BusinessName)
	return w.Link(phone, msg)
}

// VisitReminder targets customers that have gone quiet.
func (w WhatsApp) VisitReminder(phone, name string) string {
	msg := fmt.Sprintf("Hi %s, your car is due for a shine! See you this week?", name)
	return w.Link(phone, msg)
}

// escape percent-encodes for a URL query; wa.me wants %20 rather than '+'
// for spaces.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
