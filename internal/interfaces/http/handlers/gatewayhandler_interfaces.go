package handlers

import "skybridge/internal/node"

// GatewayService is the protocol surface handlers need from the bridge.
type GatewayService interface {
	NodeID() node.ID
	SendChat(msg node.Message) error
	DiscoverServers() ([]node.ID, error)
	UnreadMessages() ([]node.Message, error)
}
