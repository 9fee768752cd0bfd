// Package script hosts the embedded scripts behind Wyrd script nodes.
//
// Scripts are ECMAScript, executed on goja. Every script declares its
// property schema in an interface() function and its per-tick behavior in a
// run() function:
//
//	function interface() {
//	    IN.speed = Types.Float;
//	    IN.offsets = Types.Array(3, Types.Int32);
//	    OUT.position = Types.Vec3f;
//	}
//
//	function run() {
//	    OUT.position = [IN.speed, 0, 0];
//	}
//
// Each script gets its own goja runtime: scripts cannot observe or mutate
// another script's globals, and the runtime exposes no host capabilities
// beyond the IN/OUT trees and the Types declarations.
package script

import (
	"errors"
	"fmt"

	"github.com/dop251/goja"

	"github.com/orneryd/wyrd/pkg/property"
)

// Declaration and runtime errors.
var (
	ErrNoInterface = errors.New("no 'interface' function defined in the script")
	ErrNoRun       = errors.New("no 'run' function defined in the script")
)

// Script is a compiled script with its extracted property schema. Create
// one with Compile; drive it once per engine tick with Run.
type Script struct {
	name   string
	source string

	vm    *goja.Runtime
	runFn goja.Callable

	inputs  property.TypeDesc
	outputs property.TypeDesc
}

// Compile parses and executes the script source in a fresh, isolated
// runtime, verifies the interface/run contract and extracts the declared
// input and output schemas.
func Compile(source, name string) (*Script, error) {
	vm := goja.New()
	installTypes(vm)

	prog, err := goja.Compile(name, source, false)
	if err != nil {
		return nil, fmt.Errorf("script '%s': %w", name, err)
	}
	if _, err := vm.RunProgram(prog); err != nil {
		return nil, fmt.Errorf("script '%s': %w", name, err)
	}

	intfFn, ok := goja.AssertFunction(vm.Get("interface"))
	if !ok {
		return nil, fmt.Errorf("script '%s': %w", name, ErrNoInterface)
	}
	runFn, ok := goja.AssertFunction(vm.Get("run"))
	if !ok {
		return nil, fmt.Errorf("script '%s': %w", name, ErrNoRun)
	}

	// The interface function declares the schema by assigning type markers
	// onto the global IN/OUT objects.
	inObj := vm.NewObject()
	outObj := vm.NewObject()
	_ = vm.Set("IN", inObj)
	_ = vm.Set("OUT", outObj)

	if _, err := intfFn(goja.Undefined()); err != nil {
		return nil, fmt.Errorf("script '%s' interface(): %w", name, unwrapException(err))
	}

	s := &Script{
		name:   name,
		source: source,
		vm:     vm,
		runFn:  runFn,
	}
	if s.inputs, err = extractStruct(vm, "IN", inObj); err != nil {
		return nil, fmt.Errorf("script '%s': %w", name, err)
	}
	if s.outputs, err = extractStruct(vm, "OUT", outObj); err != nil {
		return nil, fmt.Errorf("script '%s': %w", name, err)
	}
	return s, nil
}

// Name returns the chunk name the script was compiled under.
func (s *Script) Name() string { return s.name }

// Source returns the script source for persistence.
func (s *Script) Source() string { return s.source }

// InputDesc returns the schema declared on IN, rooted in a struct named "IN".
func (s *Script) InputDesc() property.TypeDesc { return s.inputs }

// OutputDesc returns the schema declared on OUT, rooted in a struct named
// "OUT".
func (s *Script) OutputDesc() property.TypeDesc { return s.outputs }

// Run executes the script's run() function: the input tree is projected
// into the runtime as IN, run() executes, and every output the script
// assigned on OUT is written back into the output tree with type checking.
func (s *Script) Run(in, out *property.Property) error {
	inObj, err := valueToJS(s.vm, in)
	if err != nil {
		return err
	}
	outObj := s.vm.NewObject()
	_ = s.vm.Set("IN", inObj)
	_ = s.vm.Set("OUT", outObj)

	if _, err := s.runFn(goja.Undefined()); err != nil {
		return unwrapException(err)
	}

	return writeOutputs(out, outObj)
}

// unwrapException turns a goja exception into a plain error with the
// script's message text.
func unwrapException(err error) error {
	var exc *goja.Exception
	if errors.As(err, &exc) {
		return errors.New(exc.Error())
	}
	return err
}
