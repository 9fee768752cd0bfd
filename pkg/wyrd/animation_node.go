package wyrd

import (
	"errors"
	"fmt"
	"sort"

	"github.com/chewxy/math32"

	"github.com/orneryd/wyrd/pkg/property"
)

// InterpolationType selects how an animation channel samples between two
// keyframes.
type InterpolationType uint8

const (
	// InterpolationStep holds the lower keyframe until the next timestamp.
	InterpolationStep InterpolationType = iota
	// InterpolationLinear interpolates component-wise between neighbors.
	InterpolationLinear
	// InterpolationCubic applies Hermite spline interpolation with
	// per-keyframe tangents, scaled by segment duration (glTF 2.0
	// Appendix C).
	InterpolationCubic
	// InterpolationLinearQuat is linear interpolation of Vec4f quaternions
	// followed by normalization.
	InterpolationLinearQuat
	// InterpolationCubicQuat is cubic interpolation of Vec4f quaternions
	// followed by normalization.
	InterpolationCubicQuat
)

// String returns the interpolation name as it appears in diagnostics.
func (t InterpolationType) String() string {
	switch t {
	case InterpolationStep:
		return "Step"
	case InterpolationLinear:
		return "Linear"
	case InterpolationCubic:
		return "Cubic"
	case InterpolationLinearQuat:
		return "LinearQuat"
	case InterpolationCubicQuat:
		return "CubicQuat"
	}
	return "Unknown"
}

func (t InterpolationType) isCubic() bool {
	return t == InterpolationCubic || t == InterpolationCubicQuat
}

func (t InterpolationType) isQuaternion() bool {
	return t == InterpolationLinearQuat || t == InterpolationCubicQuat
}

// Channel validation errors.
var (
	ErrChannelTimestamps = errors.New("channel timestamps must be a non-empty, strictly ascending Float data array")
	ErrChannelKeyframes  = errors.New("channel keyframes must match the timestamp count")
	ErrChannelTangents   = errors.New("cubic interpolation requires tangent arrays matching the keyframes in type and count")
	ErrChannelQuaternion = errors.New("quaternion interpolation requires Vec4f keyframes")
)

// AnimationChannel describes one animated output of an animation node. The
// referenced data arrays are engine-owned and shared between channels.
type AnimationChannel struct {
	Name          string
	Timestamps    *DataArray // Float, strictly ascending, >= 1 element
	Keyframes     *DataArray // same length as Timestamps
	Interpolation InterpolationType
	TangentsIn    *DataArray // required iff cubic
	TangentsOut   *DataArray // required iff cubic
}

// validate checks the channel invariants at node creation time.
func (c *AnimationChannel) validate() error {
	if c.Timestamps == nil || c.Timestamps.Type() != property.TypeFloat || c.Timestamps.Size() == 0 {
		return fmt.Errorf("channel '%s': %w", c.Name, ErrChannelTimestamps)
	}
	ts, _ := Data[float32](c.Timestamps)
	for i := 1; i < len(ts); i++ {
		if ts[i] <= ts[i-1] {
			return fmt.Errorf("channel '%s': %w", c.Name, ErrChannelTimestamps)
		}
	}
	if c.Keyframes == nil || c.Keyframes.Size() != c.Timestamps.Size() {
		return fmt.Errorf("channel '%s': %w", c.Name, ErrChannelKeyframes)
	}
	if c.Interpolation.isQuaternion() && c.Keyframes.Type() != property.TypeVec4f {
		return fmt.Errorf("channel '%s': %w", c.Name, ErrChannelQuaternion)
	}
	if c.Interpolation.isCubic() {
		for _, tangents := range []*DataArray{c.TangentsIn, c.TangentsOut} {
			if tangents == nil || tangents.Type() != c.Keyframes.Type() || tangents.Size() != c.Keyframes.Size() {
				return fmt.Errorf("channel '%s': %w", c.Name, ErrChannelTangents)
			}
		}
	} else if c.TangentsIn != nil || c.TangentsOut != nil {
		return fmt.Errorf("channel '%s': %w", c.Name, ErrChannelTangents)
	}
	return nil
}

// duration returns the channel's last timestamp.
func (c *AnimationChannel) duration() float32 {
	ts, _ := Data[float32](c.Timestamps)
	return ts[len(ts)-1]
}

// Animation node input child indices, fixed by construction order.
const (
	animInTimeDelta = iota
	animInPlay
	animInLoop
	animInRewindOnStop
	animInTimeRange
)

// Output child 0 is progress; channel outputs follow in channel order.
const animOutProgress = 0

// AnimationNode samples its channels at an internally accumulated play
// time. The host advances the clock by writing timeDelta (usually linked to
// a timer node) and controls playback through play, loop, rewindOnStop and
// timeRange. Outputs are the per-channel samples plus the normalized
// progress. The accumulated play time is runtime state and is not
// persisted.
type AnimationNode struct {
	nodeBase

	channels []AnimationChannel
	elapsed  float32
	// duration of the longest channel
	maxChannelDuration float32
}

// newAnimationNode validates the channels and builds the property trees.
func newAnimationNode(channels []AnimationChannel, name string, id uint64) (*AnimationNode, error) {
	n := &AnimationNode{
		nodeBase: nodeBase{name: name, id: id, dirty: true},
		channels: channels,
	}

	outChildren := []property.TypeDesc{
		property.MakeType("progress", property.TypeFloat),
	}
	for i := range channels {
		ch := &channels[i]
		if err := ch.validate(); err != nil {
			return nil, err
		}
		outChildren = append(outChildren, property.MakeType(ch.Name, ch.Keyframes.Type()))
		n.maxChannelDuration = math32.Max(n.maxChannelDuration, ch.duration())
	}

	inputs := property.MakeStruct("IN", []property.TypeDesc{
		property.MakeType("timeDelta", property.TypeFloat),
		property.MakeType("play", property.TypeBool),
		property.MakeType("loop", property.TypeBool),
		property.MakeType("rewindOnStop", property.TypeBool),
		property.MakeType("timeRange", property.TypeVec2f),
	})
	outputs := property.MakeStruct("OUT", outChildren)

	var err error
	if n.rootIn, err = property.New(inputs, property.SemanticsAnimationInput, n); err != nil {
		return nil, err
	}
	if n.rootOut, err = property.New(outputs, property.SemanticsAnimationOutput, n); err != nil {
		return nil, err
	}
	return n, nil
}

// Channels returns the node's channels for persistence and inspection.
func (n *AnimationNode) Channels() []AnimationChannel { return n.channels }

// IsDirty reports pending work: besides the usual input-change flag, a
// playing animation that has not reached its end (or loops) re-executes on
// every update even when no input changed, because its play time advances.
func (n *AnimationNode) IsDirty() bool {
	if n.dirty {
		return true
	}
	play, _ := property.Get[bool](n.rootIn.ChildAt(animInPlay))
	if !play {
		return false
	}
	loop, _ := property.Get[bool](n.rootIn.ChildAt(animInLoop))
	if loop {
		return true
	}
	timeRange, _ := property.Get[property.Vec2f](n.rootIn.ChildAt(animInTimeRange))
	if timeRange[1] <= 0 {
		timeRange[1] = n.maxChannelDuration
	}
	if timeRange[0] < 0 || timeRange[0] >= timeRange[1] {
		// invalid range: run so Update reports the error
		return true
	}
	return n.elapsed < timeRange[1]-timeRange[0]
}

// Duration returns the duration of the longest channel.
func (n *AnimationNode) Duration() float32 { return n.maxChannelDuration }

// Update advances the play time and samples every channel.
func (n *AnimationNode) Update() *RuntimeError {
	timeDelta, _ := property.Get[float32](n.rootIn.ChildAt(animInTimeDelta))
	if timeDelta < 0 {
		return runtimeErrorf(n, "cannot use negative timeDelta (%v)", timeDelta)
	}

	play, _ := property.Get[bool](n.rootIn.ChildAt(animInPlay))
	if !play {
		rewind, _ := property.Get[bool](n.rootIn.ChildAt(animInRewindOnStop))
		if n.elapsed > 0 && rewind {
			// rewind: reset progress and update once with zero timeDelta
			n.elapsed = 0
			timeDelta = 0
		} else {
			return nil
		}
	}

	userRange, _ := property.Get[property.Vec2f](n.rootIn.ChildAt(animInTimeRange))
	timeRange := userRange
	if timeRange[1] <= 0 {
		// end not set, play to the end of the longest channel
		timeRange[1] = n.maxChannelDuration
	}
	if timeRange[0] < 0 || timeRange[0] >= timeRange[1] {
		return runtimeErrorf(n, "time range begin must be smaller than end and not negative (given time range [%v, %v])",
			userRange[0], userRange[1])
	}
	duration := timeRange[1] - timeRange[0]

	loop, _ := property.Get[bool](n.rootIn.ChildAt(animInLoop))
	if n.elapsed >= duration && !loop {
		return nil
	}

	n.elapsed += timeDelta
	if loop {
		n.elapsed = math32.Mod(n.elapsed, duration)
	}
	n.elapsed = math32.Min(n.elapsed, duration)

	for i := range n.channels {
		if err := n.updateChannel(i, timeRange[0]); err != nil {
			return err
		}
	}

	_ = n.rootOut.ChildAt(animOutProgress).SetOutput(n.elapsed / duration)
	return nil
}

// updateChannel samples channel channelIdx at the current play time shifted
// by the time range begin and writes the channel output.
func (n *AnimationNode) updateChannel(channelIdx int, beginOffset float32) *RuntimeError {
	ch := &n.channels[channelIdx]
	ts, _ := Data[float32](ch.Timestamps)
	channelTime := n.elapsed + beginOffset

	// upper/lower timestamp neighbors of the elapsed time
	upper := sort.Search(len(ts), func(i int) bool { return ts[i] > channelTime })
	lower := upper
	if upper > 0 {
		lower = upper - 1
	}
	if upper == len(ts) {
		upper = len(ts) - 1
	}

	ratio := float32(0)
	segment := ts[upper] - ts[lower]
	if upper != lower {
		ratio = (channelTime - ts[lower]) / segment
	}
	// mathematically already in [0, 1]; clamp against float noise
	ratio = math32.Min(math32.Max(ratio, 0), 1)

	value := sampleChannel(ch, lower, upper, ratio, segment)

	if ch.Interpolation.isQuaternion() {
		q := value.(property.Vec4f)
		norm := 1 / math32.Sqrt(q[0]*q[0]+q[1]*q[1]+q[2]*q[2]+q[3]*q[3])
		value = property.Vec4f{q[0] * norm, q[1] * norm, q[2] * norm, q[3] * norm}
	}

	// progress sits at output 0, channel outputs are shifted by one
	if err := n.rootOut.ChildAt(channelIdx + 1).SetOutput(value); err != nil {
		return runtimeErrorf(n, "channel '%s': %v", ch.Name, err)
	}
	return nil
}

// sampleChannel computes the interpolated value for the bracketing keyframe
// pair. Interpolation happens in float space component-wise; integer
// channels round each component.
func sampleChannel(ch *AnimationChannel, lower, upper int, ratio, segment float32) any {
	if ch.Interpolation == InterpolationStep {
		return elementAt(ch.Keyframes, lower)
	}

	p0 := elementComponents(ch.Keyframes, lower)
	p1 := elementComponents(ch.Keyframes, upper)
	out := make([]float32, len(p0))

	if ch.Interpolation.isCubic() {
		// glTF 2.0 Appendix C: Hermite with tangents scaled by the segment
		// duration.
		m0 := elementComponents(ch.TangentsOut, lower)
		m1 := elementComponents(ch.TangentsIn, upper)
		t := ratio
		t2 := t * t
		t3 := t2 * t
		for i := range out {
			out[i] = (2*t3-3*t2+1)*p0[i] +
				(t3-2*t2+t)*segment*m0[i] +
				(-2*t3+3*t2)*p1[i] +
				(t3-t2)*segment*m1[i]
		}
	} else {
		for i := range out {
			out[i] = p0[i] + ratio*(p1[i]-p0[i])
		}
	}

	return componentsToValue(ch.Keyframes.Type(), out)
}

// elementAt returns element i as a property value.
func elementAt(d *DataArray, i int) any {
	switch data := d.data.(type) {
	case []float32:
		return data[i]
	case []property.Vec2f:
		return data[i]
	case []property.Vec3f:
		return data[i]
	case []property.Vec4f:
		return data[i]
	case []int32:
		return data[i]
	case []property.Vec2i:
		return data[i]
	case []property.Vec3i:
		return data[i]
	case []property.Vec4i:
		return data[i]
	}
	return nil
}

// elementComponents returns the float components of element i.
func elementComponents(d *DataArray, i int) []float32 {
	switch data := d.data.(type) {
	case []float32:
		return []float32{data[i]}
	case []property.Vec2f:
		return data[i][:]
	case []property.Vec3f:
		return data[i][:]
	case []property.Vec4f:
		return data[i][:]
	case []int32:
		return []float32{float32(data[i])}
	case []property.Vec2i:
		return []float32{float32(data[i][0]), float32(data[i][1])}
	case []property.Vec3i:
		return []float32{float32(data[i][0]), float32(data[i][1]), float32(data[i][2])}
	case []property.Vec4i:
		return []float32{float32(data[i][0]), float32(data[i][1]), float32(data[i][2]), float32(data[i][3])}
	}
	return nil
}

// componentsToValue reassembles a property value of the given type from
// float components, rounding for integer types.
func componentsToValue(t property.Type, c []float32) any {
	switch t {
	case property.TypeFloat:
		return c[0]
	case property.TypeVec2f:
		return property.Vec2f{c[0], c[1]}
	case property.TypeVec3f:
		return property.Vec3f{c[0], c[1], c[2]}
	case property.TypeVec4f:
		return property.Vec4f{c[0], c[1], c[2], c[3]}
	case property.TypeInt32:
		return roundComponent(c[0])
	case property.TypeVec2i:
		return property.Vec2i{roundComponent(c[0]), roundComponent(c[1])}
	case property.TypeVec3i:
		return property.Vec3i{roundComponent(c[0]), roundComponent(c[1]), roundComponent(c[2])}
	case property.TypeVec4i:
		return property.Vec4i{roundComponent(c[0]), roundComponent(c[1]), roundComponent(c[2]), roundComponent(c[3])}
	}
	return nil
}

func roundComponent(f float32) int32 {
	return int32(math32.Round(f))
}
