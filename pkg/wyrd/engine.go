package wyrd

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/orneryd/wyrd/pkg/graph"
	"github.com/orneryd/wyrd/pkg/property"
	"github.com/orneryd/wyrd/pkg/scene"
)

// Engine errors not tied to a specific subsystem.
var (
	ErrNotFound       = errors.New("object is not part of this engine")
	ErrDataArrayInUse = errors.New("data array is referenced by an animation node")
	ErrEmptyDataArray = errors.New("data array must not be empty")
	ErrUpdateFailed   = errors.New("engine update failed")
)

// EngineError is one diagnostic accumulated on the engine's error list.
// The list is cleared at the start of every public mutating call.
type EngineError struct {
	// Message is the human-readable diagnostic.
	Message string
	// Node references the offending node, if any.
	Node LogicNode
}

func (e EngineError) String() string {
	if e.Node != nil {
		return fmt.Sprintf("[%s] %s", e.Node.Name(), e.Message)
	}
	return e.Message
}

// EngineOptions configures an engine at creation.
type EngineOptions struct {
	// DisableDirtyTracking makes Update execute every node unconditionally
	// instead of skipping clean ones. Diagnostics only; there is no
	// per-node granularity.
	DisableDirtyTracking bool

	// Logger receives structured engine logs. Defaults to slog.Default().
	Logger *slog.Logger
}

// Engine owns all logic nodes, data arrays and the dependency state, and
// drives the per-tick evaluation. All returned node and property references
// are non-owning views valid for the engine's lifetime; the engine is not
// safe for concurrent use.
type Engine struct {
	opts   EngineOptions
	logger *slog.Logger

	nextID uint64

	scripts            []*ScriptNode
	interfaces         []*InterfaceNode
	animations         []*AnimationNode
	timers             []*TimerNode
	anchors            []*AnchorPointNode
	nodeBindings       []*NodeBinding
	appearanceBindings []*AppearanceBinding
	cameraBindings     []*CameraBinding
	renderPassBindings []*RenderPassBinding

	dataArrays []*DataArray

	deps *graph.Dependencies

	errs []EngineError
}

// NewEngine creates an empty engine.
func NewEngine(opts EngineOptions) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		opts:   opts,
		logger: logger,
		deps:   graph.NewDependencies(),
	}
}

// Errors returns the diagnostics accumulated since the last public
// mutating call.
func (e *Engine) Errors() []EngineError { return e.errs }

func (e *Engine) clearErrors() { e.errs = e.errs[:0] }

func (e *Engine) appendError(node LogicNode, format string, args ...any) {
	e.errs = append(e.errs, EngineError{Message: fmt.Sprintf(format, args...), Node: node})
}

func (e *Engine) allocID() uint64 {
	e.nextID++
	return e.nextID
}

// CreateScript compiles the script source and adds the resulting node.
func (e *Engine) CreateScript(source, name string) (*ScriptNode, error) {
	e.clearErrors()
	n, err := newScriptNode(source, name, e.allocID())
	if err != nil {
		e.appendError(nil, "%v", err)
		return nil, err
	}
	e.scripts = append(e.scripts, n)
	e.deps.AddNode(n)
	return n, nil
}

// CreateInterface adds an interface node with the given property schema.
func (e *Engine) CreateInterface(desc property.TypeDesc, name string) (*InterfaceNode, error) {
	e.clearErrors()
	n, err := newInterfaceNode(desc, name, e.allocID())
	if err != nil {
		e.appendError(nil, "%v", err)
		return nil, err
	}
	e.interfaces = append(e.interfaces, n)
	e.deps.AddNode(n)
	return n, nil
}

// CreateAnimationNode validates the channels and adds an animation node.
func (e *Engine) CreateAnimationNode(channels []AnimationChannel, name string) (*AnimationNode, error) {
	e.clearErrors()
	for i := range channels {
		for _, da := range []*DataArray{channels[i].Timestamps, channels[i].Keyframes, channels[i].TangentsIn, channels[i].TangentsOut} {
			if da != nil && !slices.Contains(e.dataArrays, da) {
				err := fmt.Errorf("channel '%s' data array: %w", channels[i].Name, ErrNotFound)
				e.appendError(nil, "%v", err)
				return nil, err
			}
		}
	}
	n, err := newAnimationNode(channels, name, e.allocID())
	if err != nil {
		e.appendError(nil, "%v", err)
		return nil, err
	}
	e.animations = append(e.animations, n)
	e.deps.AddNode(n)
	return n, nil
}

// CreateTimerNode adds a timer node.
func (e *Engine) CreateTimerNode(name string) (*TimerNode, error) {
	e.clearErrors()
	n, err := newTimerNode(name, e.allocID())
	if err != nil {
		e.appendError(nil, "%v", err)
		return nil, err
	}
	e.timers = append(e.timers, n)
	e.deps.AddNode(n)
	return n, nil
}

// CreateAnchorPoint adds an anchor point reading the given bindings. The
// anchor is ordered after both through implicit dependency edges.
func (e *Engine) CreateAnchorPoint(nodeBinding *NodeBinding, cameraBinding *CameraBinding, name string) (*AnchorPointNode, error) {
	e.clearErrors()
	if !slices.Contains(e.nodeBindings, nodeBinding) || !slices.Contains(e.cameraBindings, cameraBinding) {
		err := fmt.Errorf("anchor point '%s' bindings: %w", name, ErrNotFound)
		e.appendError(nil, "%v", err)
		return nil, err
	}
	n, err := newAnchorPointNode(nodeBinding, cameraBinding, name, e.allocID())
	if err != nil {
		e.appendError(nil, "%v", err)
		return nil, err
	}
	e.anchors = append(e.anchors, n)
	e.deps.AddNode(n)
	// the anchor reads binding state outside the link system
	_ = e.deps.AddImplicitDependency(nodeBinding, n)
	_ = e.deps.AddImplicitDependency(cameraBinding, n)
	return n, nil
}

// CreateNodeBinding adds a binding writing into a scene node.
func (e *Engine) CreateNodeBinding(bound *scene.Node, name string) (*NodeBinding, error) {
	e.clearErrors()
	n, err := newNodeBinding(bound, name, e.allocID())
	if err != nil {
		e.appendError(nil, "%v", err)
		return nil, err
	}
	e.nodeBindings = append(e.nodeBindings, n)
	e.deps.AddNode(n)
	return n, nil
}

// CreateAppearanceBinding adds a binding writing into appearance uniforms.
func (e *Engine) CreateAppearanceBinding(bound *scene.Appearance, name string) (*AppearanceBinding, error) {
	e.clearErrors()
	n, err := newAppearanceBinding(bound, name, e.allocID())
	if err != nil {
		e.appendError(nil, "%v", err)
		return nil, err
	}
	e.appearanceBindings = append(e.appearanceBindings, n)
	e.deps.AddNode(n)
	return n, nil
}

// CreateCameraBinding adds a binding writing into a camera.
func (e *Engine) CreateCameraBinding(bound *scene.Camera, name string) (*CameraBinding, error) {
	e.clearErrors()
	n, err := newCameraBinding(bound, name, e.allocID())
	if err != nil {
		e.appendError(nil, "%v", err)
		return nil, err
	}
	e.cameraBindings = append(e.cameraBindings, n)
	e.deps.AddNode(n)
	return n, nil
}

// CreateRenderPassBinding adds a binding writing into a render pass.
func (e *Engine) CreateRenderPassBinding(bound *scene.RenderPass, name string) (*RenderPassBinding, error) {
	e.clearErrors()
	n, err := newRenderPassBinding(bound, name, e.allocID())
	if err != nil {
		e.appendError(nil, "%v", err)
		return nil, err
	}
	e.renderPassBindings = append(e.renderPassBindings, n)
	e.deps.AddNode(n)
	return n, nil
}

// CreateDataArray copies the values into an engine-owned immutable buffer.
func CreateDataArray[T Element](e *Engine, values []T, name string) (*DataArray, error) {
	e.clearErrors()
	if len(values) == 0 {
		err := fmt.Errorf("data array '%s': %w", name, ErrEmptyDataArray)
		e.appendError(nil, "%v", err)
		return nil, err
	}
	d := newDataArray(values, name, e.allocID())
	e.dataArrays = append(e.dataArrays, d)
	return d, nil
}

// restoreDataArray adds a deserialized array under its persisted id.
func (e *Engine) restoreDataArray(d *DataArray) {
	e.dataArrays = append(e.dataArrays, d)
	e.nextID = max(e.nextID, d.id)
}

// Destroy removes a node, unlinking every link that touches it.
func (e *Engine) Destroy(node LogicNode) error {
	e.clearErrors()
	if !e.removeFromCollections(node) {
		err := fmt.Errorf("node '%s': %w", node.Name(), ErrNotFound)
		e.appendError(nil, "%v", err)
		return err
	}
	e.deps.RemoveNode(node)
	return nil
}

func (e *Engine) removeFromCollections(node LogicNode) bool {
	switch n := node.(type) {
	case *ScriptNode:
		return removeNode(&e.scripts, n)
	case *InterfaceNode:
		return removeNode(&e.interfaces, n)
	case *AnimationNode:
		return removeNode(&e.animations, n)
	case *TimerNode:
		return removeNode(&e.timers, n)
	case *AnchorPointNode:
		return removeNode(&e.anchors, n)
	case *NodeBinding:
		return removeNode(&e.nodeBindings, n)
	case *AppearanceBinding:
		return removeNode(&e.appearanceBindings, n)
	case *CameraBinding:
		return removeNode(&e.cameraBindings, n)
	case *RenderPassBinding:
		return removeNode(&e.renderPassBindings, n)
	}
	return false
}

func removeNode[T comparable](list *[]T, node T) bool {
	for i, n := range *list {
		if n == node {
			*list = append((*list)[:i], (*list)[i+1:]...)
			return true
		}
	}
	return false
}

// DestroyDataArray removes a data array. Arrays still referenced by an
// animation node cannot be destroyed.
func (e *Engine) DestroyDataArray(d *DataArray) error {
	e.clearErrors()
	for _, anim := range e.animations {
		for i := range anim.channels {
			ch := &anim.channels[i]
			if ch.Timestamps == d || ch.Keyframes == d || ch.TangentsIn == d || ch.TangentsOut == d {
				err := fmt.Errorf("data array '%s' used by animation node '%s': %w", d.name, anim.Name(), ErrDataArrayInUse)
				e.appendError(nil, "%v", err)
				return err
			}
		}
	}
	if !removeNode(&e.dataArrays, d) {
		err := fmt.Errorf("data array '%s': %w", d.name, ErrNotFound)
		e.appendError(nil, "%v", err)
		return err
	}
	return nil
}

// Link connects an output leaf to an input leaf, subject to the dependency
// validation rules. A request that would close a cycle is rejected with no
// side effects.
func (e *Engine) Link(out, in *property.Property) error {
	e.clearErrors()
	if err := e.deps.Link(out, in); err != nil {
		e.appendError(nil, "%v", err)
		return err
	}
	return nil
}

// Unlink removes a link created with Link.
func (e *Engine) Unlink(out, in *property.Property) error {
	e.clearErrors()
	if err := e.deps.Unlink(out, in); err != nil {
		e.appendError(nil, "%v", err)
		return err
	}
	return nil
}

// LinkedSource returns the output leaf driving in, or nil.
func (e *Engine) LinkedSource(in *property.Property) *property.Property {
	return e.deps.LinkedSource(in)
}

// Links returns every link of the engine in a deterministic order.
func (e *Engine) Links() []graph.Link {
	return e.deps.Links()
}

// Update executes one tick: every dirty node runs once in topological
// order, changed outputs propagate across links, and binding nodes forward
// their inputs into the scene. Returns an error on a cycle or on the first
// node runtime error; nodes that already ran keep their written outputs.
func (e *Engine) Update() error {
	e.clearErrors()

	order, err := e.deps.SortedNodes()
	if err != nil {
		e.appendError(nil, "%v", err)
		return err
	}

	executed := make([]LogicNode, 0, len(order))
	defer func() {
		for _, n := range executed {
			n.SetDirty(false)
		}
	}()

	for _, owner := range order {
		node := owner.(LogicNode)
		if !e.opts.DisableDirtyTracking && !node.IsDirty() {
			continue
		}
		if rerr := node.Update(); rerr != nil {
			e.appendError(node, "%s", rerr.Message)
			return fmt.Errorf("%w: %s", ErrUpdateFailed, rerr.Error())
		}
		e.propagateOutputs(node)
		executed = append(executed, node)
	}
	return nil
}

// propagateOutputs pushes every changed output leaf of the node to all
// linked inputs. Unchanged outputs do not fire; that is what makes dirty
// tracking observationally correct.
func (e *Engine) propagateOutputs(node LogicNode) {
	out := node.RootOutput()
	if out == nil {
		return
	}
	out.VisitLeaves(func(leaf *property.Property) {
		if leaf.Changed() {
			for _, target := range e.deps.LinkTargets(leaf) {
				// target type equals source type by link validation
				_ = target.SetFromSource(leaf.RawValue())
			}
		}
		leaf.ClearChanged()
	})
}

// Dependencies exposes the dependency tracker for tests and serialization.
func (e *Engine) Dependencies() *graph.Dependencies { return e.deps }

// allNodes returns every logic node ordered by id.
func (e *Engine) allNodes() []LogicNode {
	nodes := make([]LogicNode, 0,
		len(e.scripts)+len(e.interfaces)+len(e.animations)+len(e.timers)+len(e.anchors)+
			len(e.nodeBindings)+len(e.appearanceBindings)+len(e.cameraBindings)+len(e.renderPassBindings))
	for _, n := range e.scripts {
		nodes = append(nodes, n)
	}
	for _, n := range e.interfaces {
		nodes = append(nodes, n)
	}
	for _, n := range e.animations {
		nodes = append(nodes, n)
	}
	for _, n := range e.timers {
		nodes = append(nodes, n)
	}
	for _, n := range e.anchors {
		nodes = append(nodes, n)
	}
	for _, n := range e.nodeBindings {
		nodes = append(nodes, n)
	}
	for _, n := range e.appearanceBindings {
		nodes = append(nodes, n)
	}
	for _, n := range e.cameraBindings {
		nodes = append(nodes, n)
	}
	for _, n := range e.renderPassBindings {
		nodes = append(nodes, n)
	}
	slices.SortFunc(nodes, func(a, b LogicNode) int {
		return int(a.ID()) - int(b.ID())
	})
	return nodes
}

// Nodes returns every logic node ordered by id.
func (e *Engine) Nodes() []LogicNode { return e.allNodes() }

// DataArrays returns the engine's data arrays in creation order.
func (e *Engine) DataArrays() []*DataArray { return e.dataArrays }

// FindNodeByName returns the first node with the given name in id order,
// or nil.
func (e *Engine) FindNodeByName(name string) LogicNode {
	for _, n := range e.allNodes() {
		if n.Name() == name {
			return n
		}
	}
	return nil
}

// FindNodeByID returns the node with the given id, or nil.
func (e *Engine) FindNodeByID(id uint64) LogicNode {
	for _, n := range e.allNodes() {
		if n.ID() == id {
			return n
		}
	}
	return nil
}

// FindDataArrayByName returns the first data array with the given name, or
// nil.
func (e *Engine) FindDataArrayByName(name string) *DataArray {
	for _, d := range e.dataArrays {
		if d.name == name {
			return d
		}
	}
	return nil
}

// FindDataArrayByID returns the data array with the given id, or nil.
func (e *Engine) FindDataArrayByID(id uint64) *DataArray {
	for _, d := range e.dataArrays {
		if d.id == id {
			return d
		}
	}
	return nil
}
