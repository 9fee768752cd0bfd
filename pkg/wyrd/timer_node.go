package wyrd

import (
	"github.com/orneryd/wyrd/pkg/property"
)

// TimerNode turns a host-provided absolute clock into per-tick deltas.
// The host writes tickTime (seconds) before each update; the node outputs
// the difference to the previous tick as timeDelta, plus a running tick
// counter. The clock state is runtime-only and is not persisted: after a
// load the first update re-seeds the reference time and outputs a zero
// delta.
//
// Typical use links timeDelta to the timeDelta input of animation nodes.
type TimerNode struct {
	nodeBase

	lastTime float32
	seeded   bool
	ticks    int32
}

// newTimerNode builds the clock property trees.
func newTimerNode(name string, id uint64) (*TimerNode, error) {
	n := &TimerNode{
		nodeBase: nodeBase{name: name, id: id, dirty: true},
	}

	inputs := property.MakeStruct("IN", []property.TypeDesc{
		property.MakeType("tickTime", property.TypeFloat),
	})
	outputs := property.MakeStruct("OUT", []property.TypeDesc{
		property.MakeType("timeDelta", property.TypeFloat),
		property.MakeType("tick", property.TypeInt32),
	})

	var err error
	if n.rootIn, err = property.New(inputs, property.SemanticsAnimationInput, n); err != nil {
		return nil, err
	}
	if n.rootOut, err = property.New(outputs, property.SemanticsAnimationOutput, n); err != nil {
		return nil, err
	}
	return n, nil
}

// Update computes the delta against the previous tick time. A tick time
// running backwards is a host error.
func (n *TimerNode) Update() *RuntimeError {
	tickTime, _ := property.Get[float32](n.rootIn.Child("tickTime"))

	delta := float32(0)
	if n.seeded {
		delta = tickTime - n.lastTime
		if delta < 0 {
			return runtimeErrorf(n, "tick time moved backwards (%v after %v)", tickTime, n.lastTime)
		}
	}
	n.lastTime = tickTime
	n.seeded = true
	n.ticks++

	_ = n.rootOut.Child("timeDelta").SetOutput(delta)
	_ = n.rootOut.Child("tick").SetOutput(n.ticks)
	return nil
}
