package room

import (
	"fmt"
	"sync"
	"time"

	l4g "github.com/alecthomas/log4go"

	"lockstep-arena/event"
	"lockstep-arena/transport"
)

// Monitor is the coarse periodic control loop of the room lifecycle: it
// starts rooms that filled up and closes rooms that lost a participant. A
// room stalled by a member who disconnected mid-tick is only released here,
// so the stall window is bounded by the monitor interval.
type Monitor struct {
	rooms    Table
	bus      transport.Bus
	interval time.Duration

	exitChan chan struct{}
	wg       sync.WaitGroup
}

// NewMonitor creates a stopped monitor.
func NewMonitor(rooms Table, bus transport.Bus, interval time.Duration) *Monitor {
	return &Monitor{
		rooms:    rooms,
		bus:      bus,
		interval: interval,
		exitChan: make(chan struct{}),
	}
}

// Start runs the monitor loop until Stop.
func (m *Monitor) Start() {
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()

		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		l4g.Info("[monitor] running, interval=[%v]", m.interval)
		for {
			select {
			case <-m.exitChan:
				return
			case <-ticker.C:
				m.Sweep()
			}
		}
	}()
}

// Stop terminates the loop and waits for it.
func (m *Monitor) Stop() {
	close(m.exitChan)
	m.wg.Wait()
}

// Sweep runs one monitor cycle over every room, independently.
func (m *Monitor) Sweep() {
	for _, r := range m.rooms {
		if r.CouldBeStarted() {
			entities, err := r.Start()
			if err != nil {
				continue
			}
			m.bus.ToRoom(r.ID(), event.New(event.Start, event.StartData{
				Entities: entities,
			}))
		}

		if r.CouldBeClosed() {
			history, released, err := r.Close()
			if err != nil {
				continue
			}
			m.bus.ToRoom(r.ID(), event.New(event.RoomClosed, event.RoomClosedData{
				Info:    fmt.Sprintf("room: %d closed", r.ID()),
				History: history,
			}))
			for _, connID := range released {
				m.bus.Leave(r.ID(), connID)
			}
		}
	}
}
