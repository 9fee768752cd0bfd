package wyrd

import (
	"github.com/orneryd/wyrd/pkg/property"
	"github.com/orneryd/wyrd/pkg/script"
)

// ScriptNode executes an embedded script on every update. The input and
// output schemas come from the script's interface() declaration; run()
// reads IN and writes OUT inside an isolated runtime.
type ScriptNode struct {
	nodeBase
	script *script.Script
}

// newScriptNode compiles the source and instantiates the declared property
// trees. Nodes start dirty so the first engine update executes them.
func newScriptNode(source, name string, id uint64) (*ScriptNode, error) {
	compiled, err := script.Compile(source, name)
	if err != nil {
		return nil, err
	}

	n := &ScriptNode{
		nodeBase: nodeBase{name: name, id: id, dirty: true},
		script:   compiled,
	}
	if n.rootIn, err = property.New(compiled.InputDesc(), property.SemanticsScriptInput, n); err != nil {
		return nil, err
	}
	if n.rootOut, err = property.New(compiled.OutputDesc(), property.SemanticsScriptOutput, n); err != nil {
		return nil, err
	}
	return n, nil
}

// Source returns the script source for persistence.
func (n *ScriptNode) Source() string { return n.script.Source() }

// Update runs the script. Script exceptions surface as runtime errors.
func (n *ScriptNode) Update() *RuntimeError {
	if err := n.script.Run(n.rootIn, n.rootOut); err != nil {
		return runtimeErrorf(n, "%v", err)
	}
	return nil
}
