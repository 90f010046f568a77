//go:build midi_native

package cmd

import (
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver
)

func init() {
	haveMidiDriver = true
}
