package main

import (
	"context"
	"fmt"
	"time"

	"github.com/leandrodaf/miditime/internal/logger"
	"github.com/leandrodaf/miditime/internal/midi/loopback"
	"github.com/leandrodaf/miditime/sdk/contracts"
	"github.com/leandrodaf/miditime/sdk/midi"
)

// sequencer plays an ascending scale into the device, one note per tick.
type sequencer struct {
	device contracts.Device
	log    contracts.Logger
	note   byte
	on     bool
}

func play(elapsedMs uint64, s *sequencer) {
	event := contracts.Event{Status: byte(contracts.NoteOff), Data1: s.note}
	if !s.on {
		event = contracts.Event{Status: byte(contracts.NoteOn), Data1: s.note, Data2: 90}
	}
	if err := s.device.WriteEvent(event); err != nil {
		s.log.Error("Failed to write MIDI event",
			s.log.Field().Uint8("status", event.Status),
			s.log.Field().Uint64("elapsedMs", elapsedMs),
			s.log.Field().Error("error", err))
		return
	}
	if s.on {
		s.note++
	}
	s.on = !s.on
}

func main() {
	log := logger.NewStandardLogger()
	device := loopback.New(log)

	poller, err := midi.NewPoller(device,
		contracts.WithLogger(log),
		contracts.WithLogLevel(contracts.InfoLevel),
		contracts.WithQueueCapacity(32),
		contracts.WithResolution(10),
		contracts.WithEventFilter(contracts.EventFilter{
			Commands: []contracts.MIDICommand{contracts.NoteOn, contracts.NoteOff},
		}),
	)
	if err != nil {
		log.Error("Failed to initialize MIDI poller", log.Field().Error("error", err))
		return
	}
	if err := poller.Start(); err != nil {
		log.Error("Failed to start MIDI poller", log.Field().Error("error", err))
		return
	}

	player, err := midi.StartTimer(250, sequencer{device: device, log: log, note: 60}, play, contracts.WithLogger(log))
	if err != nil {
		log.Error("Failed to start sequencer", log.Field().Error("error", err))
		return
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		queue := poller.Queue()
		for poller.Forwarded() < 16 || !queue.IsEmpty() {
			event, ok := queue.Dequeue()
			if !ok {
				midi.Sleep(5)
				continue
			}
			log.Info("MIDI Event",
				log.Field().Uint64("Timestamp", event.Timestamp),
				log.Field().Int("Command", int(event.Command())),
				log.Field().Int("Note", int(event.Data1)),
				log.Field().Int("Velocity", int(event.Data2)),
			)
		}
	}()

	fmt.Println("Playing a scale through the loopback device...")
	<-done

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := player.StopAndWait(ctx); err != nil {
		log.Error("Failed to stop sequencer", log.Field().Error("error", err))
	}
	if err := poller.Close(ctx); err != nil {
		log.Error("Failed to close MIDI poller", log.Field().Error("error", err))
	}
}
