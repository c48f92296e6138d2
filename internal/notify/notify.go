// Package notify forwards node reachability changes and baker faults to chat services.
package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/containrrr/shoutrrr"
	"github.com/containrrr/shoutrrr/pkg/router"
	"github.com/goodnatureofminers/tezwatch-backend/internal/model"
	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"
)

// DefaultQueueSize bounds the messages waiting for delivery.
const DefaultQueueSize = 64

// Sender delivers one message.
type Sender interface {
	Send(message string) error
}

// Notifier queues messages and delivers them from Run, so pollers never wait on a
// chat service. It implements poller.Notifier.
type Notifier struct {
	sender Sender
	queue  chan string
	logger *zap.Logger
}

// New creates a Notifier delivering through sender.
func New(sender Sender, logger *zap.Logger, queueSize int) (*Notifier, error) {
	if sender == nil {
		return nil, errors.New("notifier sender is required")
	}
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &Notifier{sender: sender, queue: make(chan string, queueSize), logger: logger}, nil
}

// Run delivers queued messages until ctx is done.
func (n *Notifier) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-n.queue:
			if err := n.sender.Send(msg); err != nil {
				n.logger.Warn("notification not delivered", zap.Error(err))
			}
		}
	}
}

// NodeReachabilityChanged reports a node going down or coming back.
func (n *Notifier) NodeReachabilityChanged(_ context.Context, rec model.NodeRecord) {
	name := rec.Name
	if name == "" {
		name = rec.URL
	}
	if rec.UnableToReach {
		n.enqueue(fmt.Sprintf("Tezos node %s is unreachable: %s", name, rec.Error))
		return
	}
	n.enqueue(fmt.Sprintf("Tezos node %s is reachable again", name))
}

// BakerFaults reports missed and double events of a baker in one message.
func (n *Notifier) BakerFaults(_ context.Context, rec model.BakerRecord, events []model.BakingEvent) {
	if len(events) == 0 {
		return
	}
	name := rec.Name
	if name == "" {
		name = rec.Address
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Baker %s:", name)
	for _, e := range events {
		fmt.Fprintf(&b, "\n- %s at level %d (cycle %d)", e.Kind, e.Level, e.Cycle)
	}
	n.enqueue(b.String())
}

func (n *Notifier) enqueue(msg string) {
	select {
	case n.queue <- msg:
	default:
		n.logger.Warn("notification queue full, dropping message", zap.String("message", msg))
	}
}

// ShoutrrrSender delivers to every configured shoutrrr URL.
type ShoutrrrSender struct {
	router *router.ServiceRouter
}

// NewShoutrrrSender parses urls, e.g. "telegram://token@telegram?chats=@channel".
func NewShoutrrrSender(urls ...string) (*ShoutrrrSender, error) {
	if len(urls) == 0 {
		return nil, errors.New("at least one notification url is required")
	}
	r, err := shoutrrr.CreateSender(urls...)
	if err != nil {
		return nil, fmt.Errorf("create shoutrrr sender: %w", err)
	}
	return &ShoutrrrSender{router: r}, nil
}

// Send delivers message to every service and reports each failure.
func (s *ShoutrrrSender) Send(message string) error {
	var result *multierror.Error
	for _, err := range s.router.Send(message, nil) {
		if err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}
