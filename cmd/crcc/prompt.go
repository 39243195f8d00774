package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/GeorgeW-alt2/semi-turing-compression/pkg/crc"
)

func promptPreset(in io.Reader, out io.Writer) (string, error) {
	fmt.Fprintln(out, "Choose a standard polynomial:")
	for _, preset := range crc.Presets() {
		fmt.Fprintf(out, "%s: %s (0x%X)\n", preset.Choice,
			strings.ToUpper(preset.Name), preset.Params.Poly)
	}
	fmt.Fprint(out, "Enter your choice (1, 2, or 3): ")

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return line, nil
}

// resolvePreset uses the configured preset, or asks for one when none is
// configured. Unknown choices fall back to the default with a warning.
func resolvePreset(name string, in io.Reader, out io.Writer) (crc.Preset, error) {
	var err error
	if name == "" {
		name, err = promptPreset(in, out)
		if err != nil {
			return crc.Preset{}, err
		}
	}

	preset, err := crc.Lookup(name)
	if err == crc.ErrUnknownPreset {
		log.Printf("invalid choice %q, using %s", strings.TrimSpace(name), preset.Name)
	}
	return preset, nil
}
