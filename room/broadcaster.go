package room

import (
	"sync"
	"time"

	l4g "github.com/alecthomas/log4go"

	"lockstep-arena/event"
	"lockstep-arena/transport"
)

// Broadcaster is the fixed-rate tick loop. Each cycle it advances every
// in-progress room whose current tick slice is complete and broadcasts the
// batch; rooms below completion are simply re-checked next cycle, nothing
// blocks.
type Broadcaster struct {
	rooms Table
	bus   transport.Bus
	rate  time.Duration

	exitChan chan struct{}
	wg       sync.WaitGroup
}

// NewBroadcaster creates a stopped broadcaster running at fps cycles per
// second.
func NewBroadcaster(rooms Table, bus transport.Bus, fps int) *Broadcaster {
	return &Broadcaster{
		rooms:    rooms,
		bus:      bus,
		rate:     time.Second / time.Duration(fps),
		exitChan: make(chan struct{}),
	}
}

// Start runs the tick loop until Stop.
func (b *Broadcaster) Start() {
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()

		ticker := time.NewTicker(b.rate)
		defer ticker.Stop()

		l4g.Info("[broadcaster] running, rate=[%v]", b.rate)
		for {
			select {
			case <-b.exitChan:
				return
			case <-ticker.C:
				b.Flush()
			}
		}
	}()
}

// Stop terminates the loop and waits for it.
func (b *Broadcaster) Stop() {
	close(b.exitChan)
	b.wg.Wait()
}

// Flush runs one broadcast cycle over every room.
func (b *Broadcaster) Flush() {
	for _, r := range b.rooms {
		tick, actions, ok := r.AdvanceTick()
		if !ok {
			continue
		}
		b.bus.ToRoom(r.ID(), event.New(event.Update, event.UpdateData{
			Tick:    tick,
			Actions: actions,
		}))
	}
}
