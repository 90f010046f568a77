package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/bep/debounce"
	"github.com/jsphweid/midivary/chord"
	"github.com/jsphweid/midivary/util"
	"github.com/spf13/cobra"
	gomidi "gitlab.com/gomidi/midi/v2"
)

// set by the driver file when built with -tags midi_native
var haveMidiDriver bool

var (
	listenPort     int
	listenDebounce time.Duration
)

func init() {
	listenCmd.Flags().IntVar(&listenPort, "port", 0, "MIDI input port number")
	listenCmd.Flags().DurationVar(&listenDebounce, "debounce", 50*time.Millisecond, "wait for the hand to settle before labelling")
	rootCmd.AddCommand(listenCmd)
}

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Labels chords played on a MIDI input",
	Long:  `Prints the chord under the fingers each time the set of held notes settles. Needs a build with -tags midi_native.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return listen(listenPort, listenDebounce)
	},
}

// heldNotes tracks the keys currently down. Driver callbacks and debounced
// reports run on different goroutines.
type heldNotes struct {
	mu      sync.Mutex
	pressed map[uint8]bool
}

func (h *heldNotes) press(key uint8) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pressed[key] = true
}

func (h *heldNotes) release(key uint8) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.pressed, key)
}

func (h *heldNotes) label() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	var pitches []int
	for _, key := range util.SortedKeys(h.pressed) {
		pitches = append(pitches, int(key))
	}
	return chord.Label(pitches)
}

func listen(port int, wait time.Duration) error {
	if !haveMidiDriver {
		return errors.New("no MIDI driver in this build (build with -tags midi_native)")
	}
	defer gomidi.CloseDriver()

	in, err := gomidi.InPort(port)
	if err != nil {
		return fmt.Errorf("can't open MIDI input port %d: %w", port, err)
	}

	held := &heldNotes{pressed: make(map[uint8]bool)}
	debounced := debounce.New(wait)
	report := func() { fmt.Println(held.label()) }

	stop, err := gomidi.ListenTo(in, func(msg gomidi.Message, timestampms int32) {
		var ch, key, vel uint8
		switch {
		case msg.GetNoteStart(&ch, &key, &vel):
			held.press(key)
			debounced(report)
		case msg.GetNoteEnd(&ch, &key):
			held.release(key)
			debounced(report)
		}
	})
	if err != nil {
		return err
	}
	defer stop()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	<-sigs
	return nil
}
