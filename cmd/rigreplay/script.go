package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/Carmen-Shannon/oxy-rig/engine/camera"
	"github.com/Carmen-Shannon/oxy-rig/engine/input"
	"github.com/Carmen-Shannon/oxy-rig/engine/look"
	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

var errBadScript = errors.New("bad script")

// Script is a recorded input session: a starting pose and one entry per tick.
type Script struct {
	Mode      string        `yaml:"mode"`
	Eye       []float32     `yaml:"eye"`
	Target    []float32     `yaml:"target"`
	LagWeight *float32      `yaml:"lag_weight"`
	DT        float32       `yaml:"dt"`
	Frames    []ScriptFrame `yaml:"frames"`
}

// ScriptFrame is the input for one tick, optionally repeated.
type ScriptFrame struct {
	// Mode switches the camera before the frame is applied.
	Mode    string      `yaml:"mode"`
	Motion  [][]float32 `yaml:"motion"`
	Wheel   []float32   `yaml:"wheel"`
	Keys    []string    `yaml:"keys"`
	Buttons []string    `yaml:"buttons"`
	Repeat  int         `yaml:"repeat"`
}

type step struct {
	switchTo *camera.Mode
	frame    input.Frame
}

type plan struct {
	mode      camera.Mode
	transform look.Transform
	lagWeight *float32
	dt        float32
	steps     []step
}

// ParseScript decodes a YAML script. Unknown fields are rejected.
func ParseScript(r io.Reader) (Script, error) {
	var s Script
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return s, fmt.Errorf("%w: empty", errBadScript)
		}
		return s, fmt.Errorf("%w: %w", errBadScript, err)
	}
	return s, nil
}

func parseScriptBytes(data []byte) (Script, error) {
	return ParseScript(bytes.NewReader(data))
}

// compile resolves names and vectors and expands repeats.
func (s Script) compile() (plan, error) {
	p := plan{
		mode:      camera.ModeOrbit,
		transform: look.NewTransform(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{}),
		lagWeight: s.LagWeight,
		dt:        s.DT,
	}
	if s.Mode != "" {
		m, err := camera.ParseMode(s.Mode)
		if err != nil {
			return p, fmt.Errorf("%w: %w", errBadScript, err)
		}
		p.mode = m
	}
	if s.Eye != nil {
		v, err := vec3(s.Eye)
		if err != nil {
			return p, fmt.Errorf("%w: eye: %w", errBadScript, err)
		}
		p.transform.Eye = v
	}
	if s.Target != nil {
		v, err := vec3(s.Target)
		if err != nil {
			return p, fmt.Errorf("%w: target: %w", errBadScript, err)
		}
		p.transform.Target = v
	}
	if s.DT < 0 {
		return p, fmt.Errorf("%w: dt %v", errBadScript, s.DT)
	}

	for i, f := range s.Frames {
		st, err := f.compile()
		if err != nil {
			return p, fmt.Errorf("%w: frame %d: %w", errBadScript, i, err)
		}
		repeat := f.Repeat
		if repeat < 0 {
			return p, fmt.Errorf("%w: frame %d: repeat %d", errBadScript, i, repeat)
		}
		if repeat == 0 {
			repeat = 1
		}
		p.steps = append(p.steps, st)
		for n := 1; n < repeat; n++ {
			// the mode switch only happens once
			p.steps = append(p.steps, step{frame: st.frame})
		}
	}
	return p, nil
}

func (f ScriptFrame) compile() (step, error) {
	var st step
	if f.Mode != "" {
		m, err := camera.ParseMode(f.Mode)
		if err != nil {
			return st, err
		}
		st.switchTo = &m
	}
	for _, m := range f.Motion {
		if len(m) != 2 {
			return st, fmt.Errorf("motion %v: want [dx, dy]", m)
		}
		st.frame.PointerMotion = append(st.frame.PointerMotion, mgl32.Vec2{m[0], m[1]})
	}
	st.frame.Wheel = append([]float32(nil), f.Wheel...)

	st.frame.Keys = input.NewKeySet()
	for _, name := range f.Keys {
		key, ok := input.KeyByName(name)
		if !ok {
			return st, fmt.Errorf("unknown key %q", name)
		}
		st.frame.Keys[key] = struct{}{}
	}
	st.frame.Buttons = input.NewButtonSet()
	for _, name := range f.Buttons {
		button, ok := input.ButtonByName(name)
		if !ok {
			return st, fmt.Errorf("unknown button %q", name)
		}
		st.frame.Buttons[button] = struct{}{}
	}
	return st, nil
}

func vec3(v []float32) (mgl32.Vec3, error) {
	if len(v) != 3 {
		return mgl32.Vec3{}, fmt.Errorf("%v: want [x, y, z]", v)
	}
	return mgl32.Vec3{v[0], v[1], v[2]}, nil
}
