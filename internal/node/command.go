package node

// Command is an operation the worker accepts over the command channel.
// Each value is consumed exactly once by the worker.
type Command interface {
	isCommand()
}

// InitializeDiscovery starts a discovery sweep of the mesh. The sweep is
// asynchronous; its outcome is observed later through FetchDiscoveredNodes.
type InitializeDiscovery struct{}

// FetchDiscoveredNodes asks the worker to publish its current view of
// reachable nodes on the discovery result channel.
type FetchDiscoveredNodes struct{}

// SendMessage asks the worker to route an application message into the mesh.
// Fire and forget: the sender never learns whether delivery succeeded.
type SendMessage struct {
	Message Message
}

// FetchUnreadMessages asks the worker to drain its unread-message buffer
// onto the unread result channel.
type FetchUnreadMessages struct{}

func (InitializeDiscovery) isCommand()  {}
func (FetchDiscoveredNodes) isCommand() {}
func (SendMessage) isCommand()          {}
func (FetchUnreadMessages) isCommand()  {}
