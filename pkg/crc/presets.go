package crc

import (
	"errors"
	"sort"
	"strings"

	"github.com/thoas/go-funk"
)

var (
	ErrUnknownPreset = errors.New("unknown crc preset, using crc16")
)

const (
	DefaultPreset = "crc16"
)

// Preset is a named CRC variant offered to users.
type Preset struct {
	Name   string
	Choice string
	Params Params
}

var presets = map[string]Preset{
	"crc8": {
		Name:   "crc8",
		Choice: "1",
		Params: Params{Width: 8, Poly: 0x07},
	},
	"crc16": {
		Name:   "crc16",
		Choice: "2",
		Params: Params{Width: 16, Poly: 0x1021},
	},
	"crc32": {
		Name:   "crc32",
		Choice: "3",
		Params: Params{Width: 32, Poly: 0x04C11DB7},
	},
}

// Lookup resolves a preset by name or menu choice. Unknown input returns
// the default preset together with ErrUnknownPreset so the caller can warn
// and carry on.
func Lookup(nameOrChoice string) (Preset, error) {
	key := strings.ToLower(strings.TrimSpace(nameOrChoice))
	if preset, ok := presets[key]; ok {
		return preset, nil
	}
	for _, preset := range presets {
		if preset.Choice == key {
			return preset, nil
		}
	}
	return presets[DefaultPreset], ErrUnknownPreset
}

// Names returns the preset names in sorted order.
func Names() []string {
	names := funk.Keys(presets).([]string)
	sort.Strings(names)
	return names
}

// Presets returns every preset ordered by menu choice.
func Presets() []Preset {
	res := make([]Preset, 0, len(presets))
	for _, name := range Names() {
		res = append(res, presets[name])
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].Choice < res[j].Choice
	})
	return res
}
