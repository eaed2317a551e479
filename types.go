package folionet

import (
	"time"
)

const (
	EventTypeInvestmentCreated = "investment.created"
	EventTypePurchaseCreated   = "purchase.created"
)

const (
	ChannelInvestments = "marketplace:investments"
	ChannelPurchases   = "marketplace:purchases"
)

// Event is the wire form of a marketplace notification published over
// redis pub/sub and relayed to realtime subscribers.
type Event struct {
	Type      string    `json:"type"`
	Body      any       `json:"body,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
