// Package node assembles the event bus, its task runner, metrics and the
// block store into a runnable unit.
package node

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/runtofuture/ethereumj/internal/config"
	"github.com/runtofuture/ethereumj/internal/logging"
	"github.com/runtofuture/ethereumj/internal/metrics"
	"github.com/runtofuture/ethereumj/internal/p2p"
	"github.com/runtofuture/ethereumj/internal/p2p/message"
	"github.com/runtofuture/ethereumj/internal/publish"
	"github.com/runtofuture/ethereumj/internal/publish/event"
	"github.com/runtofuture/ethereumj/internal/storage"
)

type Node struct {
	cfg *config.NodeConfig
	log logging.Logger

	bus   *publish.Publisher
	queue *publish.DispatchQueue
	pool  *publish.WorkerPool

	store storage.BlockStore
	seen  *lru.Cache[common.Hash, struct{}]

	prom    *metrics.Prom
	httpSrv *http.Server
	stop    chan struct{}

	stopOnce sync.Once
}

func New(cfg *config.NodeConfig) (*Node, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logging.Init(cfg.LogLevel)

	n := &Node{
		cfg:  cfg,
		log:  logging.WithComponent("node"),
		stop: make(chan struct{}),
	}
	if cfg.Metrics.Enabled {
		n.prom = metrics.NewProm()
	}

	var executor publish.Executor
	switch cfg.Dispatch.Mode {
	case "inline":
		executor = publish.CallerRuns{}
	case "serial":
		n.queue = publish.NewDispatchQueue(cfg.Dispatch.QueueSize)
		executor = n.queue
	case "pool":
		n.pool = publish.NewWorkerPool(cfg.Dispatch.Workers, cfg.Dispatch.QueueSize)
		executor = n.pool
	default:
		return nil, fmt.Errorf("unknown dispatch mode %q", cfg.Dispatch.Mode)
	}
	if n.prom != nil {
		executor = n.prom.TimedExecutor(executor)
	}

	n.bus = publish.NewPublisher(executor)
	if n.prom != nil {
		n.bus.WithStats(n.prom)
	}

	if cfg.Database.InMemory {
		n.store = storage.NewInMemory()
	} else {
		store, err := storage.NewLevelDB(cfg.Database.Dir)
		if err != nil {
			return nil, fmt.Errorf("open block store: %w", err)
		}
		n.store = store
	}

	seen, err := lru.New[common.Hash, struct{}](cfg.SeenCacheSize)
	if err != nil {
		return nil, fmt.Errorf("create seen cache: %w", err)
	}
	n.seen = seen

	publish.SubscribeTo(n.bus, n.onBlockAdded)
	return n, nil
}

// Bus exposes the event bus for subscribers and producers.
func (n *Node) Bus() *publish.Publisher { return n.bus }

// Store exposes the block summary store.
func (n *Node) Store() storage.BlockStore { return n.store }

func (n *Node) onBlockAdded(e event.BlockAdded) {
	if e.Summary == nil || e.Summary.Block == nil {
		return
	}
	if err := n.store.SaveSummary(e.Summary); err != nil {
		n.log.Errorf("Failed to persist %s: %v", e.Summary, err)
	}
}

// HandleInbound publishes a MessageReceived event for the decoded wire
// message, dropping duplicates of recently seen payloads. Returns whether
// the message was published.
func (n *Node) HandleInbound(ch *p2p.Channel, msg message.Message) bool {
	key := common.BytesToHash(crypto.Keccak256(msg.Encoded()))
	if _, dup := n.seen.Get(key); dup {
		n.log.Debugf("Dropping duplicate %s from %s", msg.Command(), ch)
		return false
	}
	n.seen.Add(key, struct{}{})
	n.bus.Publish(event.MessageReceived{Channel: ch, Message: msg})
	return true
}

// NotifySent publishes a MessageSent event for an outbound wire message.
func (n *Node) NotifySent(ch *p2p.Channel, msg message.Message) {
	n.bus.Publish(event.MessageSent{Channel: ch, Message: msg})
}

// Start brings up the metrics endpoint and background gauges. It returns
// immediately; the bus itself needs no startup.
func (n *Node) Start() error {
	if n.prom != nil {
		mux := http.NewServeMux()
		mux.Handle("/metrics", n.prom.Handler())
		n.httpSrv = &http.Server{Addr: n.cfg.Metrics.ListenAddr, Handler: mux}
		go func() {
			n.log.Infof("Metrics listening on %s", n.cfg.Metrics.ListenAddr)
			if err := n.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				n.log.Errorf("Metrics server: %v", err)
			}
		}()
		go n.updateGauges()
	}
	return nil
}

func (n *Node) updateGauges() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-n.stop:
			return
		case <-ticker.C:
			n.prom.Subscribers.Set(float64(n.bus.SubscribersTotal()))
			if n.queue != nil {
				n.prom.QueueDepth.Set(float64(n.queue.Depth()))
			}
		}
	}
}

// Stop drains the dispatch queue, shuts the metrics endpoint down and closes
// the block store. Repeated calls are a no-op.
func (n *Node) Stop() error {
	var err error
	n.stopOnce.Do(func() {
		close(n.stop)
		if n.queue != nil {
			n.queue.Close()
		}
		if n.pool != nil {
			n.pool.Close()
		}
		if n.httpSrv != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = n.httpSrv.Shutdown(ctx)
		}
		err = n.store.Close()
	})
	return err
}
