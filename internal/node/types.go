// Package node implements the network-node worker: the single goroutine
// that owns node identity and network state, consumes gateway commands,
// and produces discovery and unread-message results.
package node

// ID identifies a node in the mesh network.
type ID uint8

// Kind classifies a node reported by a discovery sweep.
type Kind string

const (
	KindServer Kind = "server"
	KindClient Kind = "client"
	KindRelay  Kind = "relay"
)

// RequestType identifies the application-level chat request carried by a Message.
type RequestType string

const (
	RequestRegister   RequestType = "register"
	RequestSendTo     RequestType = "send_to"
	RequestClientList RequestType = "client_list"
)

// Content is the chat request payload of a Message.
type Content struct {
	Type RequestType `json:"type"`
	From ID          `json:"from,omitempty"`
	To   ID          `json:"to,omitempty"`
	Body string      `json:"body,omitempty"`
}

// Message is an application-level request addressed from one node to another.
// It is immutable once constructed; ownership transfers to the channel on send.
type Message struct {
	Source      ID      `json:"source"`
	Destination ID      `json:"destination"`
	SessionID   uint64  `json:"session_id"`
	Content     Content `json:"content"`
}

// DiscoveredNode is one (identifier, kind) entry of a discovery result.
type DiscoveredNode struct {
	ID   ID   `json:"id"`
	Kind Kind `json:"kind"`
}

// DiscoveredNodes is the worker's view of reachable nodes at the moment a
// fetch-discovered-nodes command was processed, in discovery order.
type DiscoveredNodes []DiscoveredNode

// UnreadMessages holds the messages accumulated since the previous fetch.
// May be empty.
type UnreadMessages []Message
