package node

// PacketKind discriminates the wire packets exchanged with the mesh transport.
type PacketKind string

const (
	// PacketDiscovery floods the mesh asking reachable nodes to announce themselves.
	PacketDiscovery PacketKind = "discovery"
	// PacketDiscoveryReply announces a node in response to a discovery flood.
	PacketDiscoveryReply PacketKind = "discovery_reply"
	// PacketChat carries an application Message between nodes.
	PacketChat PacketKind = "chat"
)

// Broadcast is the destination id of packets addressed to every reachable node.
const Broadcast ID = 0

// Packet is the unit exchanged with the mesh transport. The transport
// itself (radio, socket, simulator) is outside the worker; it only sees
// the two packet channels.
type Packet struct {
	Kind        PacketKind `json:"kind"`
	Source      ID         `json:"source"`
	Destination ID         `json:"destination"`
	// SweepID correlates discovery replies with the flood that caused them.
	SweepID uint64 `json:"sweep_id,omitempty"`
	// NodeKind is set on discovery replies.
	NodeKind Kind `json:"node_kind,omitempty"`
	// Message is set on chat packets.
	Message *Message `json:"message,omitempty"`
}
