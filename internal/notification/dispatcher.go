package notification

import (
	"context"
	"log"
	"sync"
	"time"
)

// Dispatcher is the outbound event queue. Handlers call Enqueue and return;
// a background worker delivers each event to email and, for online users,
// the websocket hub. Failures are logged on this side of the queue and never
// reach the request that produced the event.
type Dispatcher struct {
	mailer Mailer
	hub    *Hub

	events chan Event
	done   chan struct{}
	wg     sync.WaitGroup
}

const queueSize = 256

func NewDispatcher(mailer Mailer, hub *Hub) *Dispatcher {
	d := &Dispatcher{
		mailer: mailer,
		hub:    hub,
		events: make(chan Event, queueSize),
		done:   make(chan struct{}),
	}
	d.wg.Add(1)
	go d.run()
	return d
}

// Enqueue never blocks a request handler: when the queue is full the event
// is dropped with a log line, matching the best-effort delivery contract.
func (d *Dispatcher) Enqueue(ev Event) {
	select {
	case d.events <- ev:
	default:
		log.Printf("notification queue full, dropping %s event %s for user %d",
			ev.Kind, ev.ID, ev.RecipientID)
	}
}

func (d *Dispatcher) run() {
	defer d.wg.Done()
	for {
		select {
		case ev := <-d.events:
			d.deliver(ev)
		case <-d.done:
			// drain whatever is already queued before exiting
			for {
				select {
				case ev := <-d.events:
					d.deliver(ev)
				default:
					return
				}
			}
		}
	}
}

func (d *Dispatcher) deliver(ev Event) {
	if d.hub != nil {
		d.hub.SendToUser(ev.RecipientID, ev)
	}

	if d.mailer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := d.mailer.Send(ctx, ev); err != nil {
		log.Printf("notification email failed: event=%s kind=%s user=%d err=%v",
			ev.ID, ev.Kind, ev.RecipientID, err)
	}
}

// Close stops the worker after draining the queue.
func (d *Dispatcher) Close() {
	close(d.done)
	d.wg.Wait()
}
