package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go-avril/midi"
	"go-avril/sequencer"
	"go-avril/stream"
	"go-avril/theory"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}
	defer midi.CloseDriver()

	switch os.Args[1] {
	case "list":
		listPorts()
	case "scale":
		prefix := "FLUID"
		if len(os.Args) > 2 {
			prefix = os.Args[2]
		}
		playScale(prefix)
	default:
		usage()
	}
}

func usage() {
	fmt.Println("MIDI Test Scripts")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list            - List MIDI output ports")
	fmt.Println("  scale [prefix]  - Play a D major scale on the first matching port")
}

func listPorts() {
	fmt.Println("=== MIDI Output Ports ===")
	fmt.Println("(waiting up to 3 seconds...)")

	names, err := midi.OutPortNames(context.Background())
	if err != nil {
		fmt.Println("\nError:", err)
		fmt.Println("On macOS a hung CoreMIDI needs: sudo killall coreaudiod midiserver")
		return
	}
	for i, name := range names {
		fmt.Printf("  %d: %s\n", i, name)
	}
}

func playScale(prefix string) {
	out, err := midi.OpenOutput(context.Background(), prefix)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	defer out.Close()
	fmt.Printf("Playing on %s\n", out.Name())

	major, _ := theory.ScaleByName("major")
	key := theory.NewKey(theory.NewNote(theory.D, 4), major)
	var updates []stream.Event[sequencer.Pitch]
	for _, n := range key.NotesAscending(8)[1:] {
		updates = append(updates, stream.At(300*time.Millisecond, sequencer.Sound(n.Note())))
	}
	updates = append(updates, stream.At(600*time.Millisecond, sequencer.Silence))

	track := sequencer.Track{Name: "test", Channel: 1, Velocity: 100}
	pitch := stream.FromUpdates(sequencer.Sound(key.Tonic()), stream.FromEvents(updates...))
	if err := sequencer.NewPlayer(out).Play(context.Background(), track.Play(pitch)); err != nil {
		fmt.Println("Error:", err)
	}
}
