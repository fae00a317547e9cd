package initwfn

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func TestCreateKnownSchemes(t *testing.T) {
	for _, scheme := range []Type{GlorotU, GlorotN, HeU, HeN, Zeroes, Ones} {
		w := InitWFn{Type: scheme, Gain: 1.0}
		init, err := w.Create()
		if err != nil {
			t.Errorf("%v: unexpected error: %v", scheme, err)
		}
		if init == nil {
			t.Errorf("%v: Create returned nil", scheme)
		}
	}
}

func TestCreateUnknownScheme(t *testing.T) {
	w := InitWFn{Type: "NoSuchScheme"}
	if _, err := w.Create(); err == nil {
		t.Error("expected error for unknown scheme")
	}
}

func TestUnmarshalYAML(t *testing.T) {
	var w InitWFn
	data := "type: HeN\ngain: 2.0\n"
	if err := yaml.Unmarshal([]byte(data), &w); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if w.Type != HeN {
		t.Errorf("type = %v, expected HeN", w.Type)
	}
	if w.Gain != 2.0 {
		t.Errorf("gain = %v, expected 2", w.Gain)
	}
	if _, err := w.Create(); err != nil {
		t.Errorf("unexpected error creating parsed scheme: %v", err)
	}
}
