package p2p

import (
	"fmt"
	"net"
)

// Node identifies a peer discovered on the network, before any connection
// is established.
type Node struct {
	ID   string
	Host string
	Port int
}

func (n *Node) String() string {
	if n == nil {
		return "node[nil]"
	}
	return fmt.Sprintf("node[%s %s]", short(n.ID), net.JoinHostPort(n.Host, fmt.Sprint(n.Port)))
}

// Addr returns the node's host:port form.
func (n *Node) Addr() string { return net.JoinHostPort(n.Host, fmt.Sprint(n.Port)) }

// Channel is the handle for an established peer connection. Event payloads
// carry it so subscribers can attribute traffic to a peer; the bus itself
// never touches it.
type Channel struct {
	Node    *Node
	Inbound bool
}

func (c *Channel) String() string {
	if c == nil {
		return "channel[nil]"
	}
	dir := "out"
	if c.Inbound {
		dir = "in"
	}
	return fmt.Sprintf("channel[%s %s]", c.Node, dir)
}

// Hello is the decoded p2p handshake a peer sent on connect.
type Hello struct {
	P2PVersion   int
	ClientID     string
	Capabilities []string
	ListenPort   int
	PeerID       string
}

// Status is the decoded eth-subprotocol status a peer announced after the
// handshake.
type Status struct {
	ProtocolVersion int
	NetworkID       uint64
	TotalDifficulty uint64
	BestHash        string
	GenesisHash     string
}

func short(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
