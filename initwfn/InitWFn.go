// Package initwfn selects Gorgonia weight initialization schemes by
// name so that they can be described in configuration files.
package initwfn

import (
	"fmt"

	G "gorgonia.org/gorgonia"
)

// Type names a weight initialization scheme
type Type string

// Available initialization schemes
const (
	GlorotU Type = "GlorotU"
	GlorotN Type = "GlorotN"
	HeU     Type = "HeU"
	HeN     Type = "HeN"
	Zeroes  Type = "Zeroes"
	Ones    Type = "Ones"
)

// InitWFn describes a weight initialization scheme. InitWFns are YAML
// serializable so that the scheme can be chosen in configuration
// files. Gain scales the initialized weights and is ignored by the
// Zeroes and Ones schemes.
type InitWFn struct {
	Type Type    `yaml:"type"`
	Gain float64 `yaml:"gain"`
}

// NewGlorotN returns a Glorot Normal initializer description with the
// given gain. It is the default scheme for training configurations.
func NewGlorotN(gain float64) InitWFn {
	return InitWFn{Type: GlorotN, Gain: gain}
}

// Create returns the Gorgonia InitWFn that the description names
func (w InitWFn) Create() (G.InitWFn, error) {
	switch w.Type {
	case GlorotU:
		return G.GlorotU(w.Gain), nil
	case GlorotN:
		return G.GlorotN(w.Gain), nil
	case HeU:
		return G.HeU(w.Gain), nil
	case HeN:
		return G.HeN(w.Gain), nil
	case Zeroes:
		return G.Zeroes(), nil
	case Ones:
		return G.Ones(), nil
	}
	return nil, fmt.Errorf("create: no such initialization scheme %v", w.Type)
}

// String implements the fmt.Stringer interface
func (w InitWFn) String() string {
	return fmt.Sprintf("{%v InitWFn: Gain: %v}", w.Type, w.Gain)
}
