package node

import (
	"fmt"

	"skybridge/internal/shared/logger"
)

// ResultSink receives the results the worker produces. Publish methods
// must never block; they report false when the result was dropped.
type ResultSink interface {
	PublishDiscovery(DiscoveredNodes) bool
	PublishUnread(UnreadMessages) bool
}

// Worker owns all node state: the discovered-node table and the
// unread-message buffer. It processes one command at a time to
// completion on a single goroutine; nothing else touches its state.
type Worker struct {
	id      ID
	events  chan<- Event
	packets <-chan Packet
	wire    chan<- Packet
	cmds    <-chan Command
	results ResultSink
	stop    chan struct{}
	log     logger.Interface

	sweep  uint64
	known  DiscoveredNodes
	seen   map[ID]bool
	unread UnreadMessages
}

// NewWorker constructs the worker. packets/wire connect it to the mesh
// transport, cmds is the consuming side of the command channel, and
// results holds the producing sides of both result channels.
func NewWorker(
	id ID,
	events chan<- Event,
	packets <-chan Packet,
	wire chan<- Packet,
	cmds <-chan Command,
	results ResultSink,
	log logger.Interface,
) (*Worker, error) {
	if wire == nil || packets == nil {
		return nil, fmt.Errorf("worker %d: transport channels must not be nil", id)
	}
	if cmds == nil || results == nil {
		return nil, fmt.Errorf("worker %d: command source and result sink must not be nil", id)
	}
	return &Worker{
		id:      id,
		events:  events,
		packets: packets,
		wire:    wire,
		cmds:    cmds,
		results: results,
		stop:    make(chan struct{}),
		log:     log.Named("worker").With("node_id", id),
	}, nil
}

// Run is the worker's blocking execution loop. It returns when the
// command channel or the inbound packet channel is closed, or after
// Stop. Nobody joins this goroutine; the caller observes termination
// only through the result channels shutting down.
func (w *Worker) Run() {
	w.log.Info("worker started")
	for {
		select {
		case cmd, ok := <-w.cmds:
			if !ok {
				w.log.Info("command channel closed, worker exiting")
				return
			}
			w.handleCommand(cmd)
		case p, ok := <-w.packets:
			if !ok {
				w.log.Info("transport closed, worker exiting")
				return
			}
			w.handlePacket(p)
		case <-w.stop:
			w.log.Info("worker stopped")
			return
		}
	}
}

// Stop asks the execution loop to exit. Safe to call once.
func (w *Worker) Stop() {
	close(w.stop)
}

func (w *Worker) handleCommand(cmd Command) {
	switch c := cmd.(type) {
	case InitializeDiscovery:
		w.startSweep()
	case FetchDiscoveredNodes:
		snapshot := make(DiscoveredNodes, len(w.known))
		copy(snapshot, w.known)
		if !w.results.PublishDiscovery(snapshot) {
			w.log.Warnw("discovery result dropped, queue full")
		}
	case SendMessage:
		w.sendPacket(Packet{
			Kind:        PacketChat,
			Source:      w.id,
			Destination: c.Message.Destination,
			Message:     &c.Message,
		})
	case FetchUnreadMessages:
		drained := w.unread
		w.unread = nil
		if drained == nil {
			drained = UnreadMessages{}
		}
		if !w.results.PublishUnread(drained) {
			w.log.Warnw("unread result dropped, queue full", "count", len(drained))
		}
	default:
		w.log.Warnw("unknown command", "command", fmt.Sprintf("%T", cmd))
	}
}

// startSweep resets the node table and floods the mesh. Replies arriving
// on the inbound packet channel repopulate the table asynchronously.
func (w *Worker) startSweep() {
	w.sweep++
	w.known = nil
	w.seen = make(map[ID]bool)
	w.sendPacket(Packet{
		Kind:        PacketDiscovery,
		Source:      w.id,
		Destination: Broadcast,
		SweepID:     w.sweep,
	})
	w.emit(NewEvent(EventSweepStarted, w.id, fmt.Sprintf("sweep %d", w.sweep)))
}

func (w *Worker) handlePacket(p Packet) {
	switch p.Kind {
	case PacketDiscoveryReply:
		if p.SweepID != w.sweep {
			w.log.Debugw("stale discovery reply", "sweep", p.SweepID, "current", w.sweep)
			return
		}
		if w.seen == nil {
			w.seen = make(map[ID]bool)
		}
		if w.seen[p.Source] {
			return
		}
		w.seen[p.Source] = true
		w.known = append(w.known, DiscoveredNode{ID: p.Source, Kind: p.NodeKind})
		w.emit(NewEvent(EventNodeDiscovered, p.Source, string(p.NodeKind)))
	case PacketDiscovery:
		// Another node is sweeping; announce ourselves.
		w.sendPacket(Packet{
			Kind:        PacketDiscoveryReply,
			Source:      w.id,
			Destination: p.Source,
			SweepID:     p.SweepID,
			NodeKind:    KindClient,
		})
	case PacketChat:
		if p.Message == nil {
			w.log.Warnw("chat packet without message", "source", p.Source)
			return
		}
		if p.Message.Destination != w.id && p.Destination != w.id {
			return
		}
		w.unread = append(w.unread, *p.Message)
		w.emit(NewEvent(EventMessageReceived, p.Message.Source, p.Message.Content.Body))
	default:
		w.log.Debugw("ignoring packet", "kind", p.Kind, "source", p.Source)
	}
}

// sendPacket hands a packet to the transport without ever blocking the
// loop; a saturated transport drops the packet.
func (w *Worker) sendPacket(p Packet) {
	select {
	case w.wire <- p:
		w.emit(NewEvent(EventPacketSent, p.Destination, string(p.Kind)))
	default:
		w.log.Warnw("transport full, packet dropped", "kind", p.Kind, "destination", p.Destination)
	}
}

// emit notifies the event sink, dropping the event if nobody is listening.
func (w *Worker) emit(ev Event) {
	if w.events == nil {
		return
	}
	select {
	case w.events <- ev:
	default:
	}
}
