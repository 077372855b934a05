package zimgraph

import (
	"fmt"
	"strings"
)

// UnknownModuleError reports a reference to a module name never declared.
type UnknownModuleError struct {
	LineNo int
	Name   string
}

func (e *UnknownModuleError) Error() string {
	return fmt.Sprintf("line %d: unknown module %q", e.LineNo, e.Name)
}

// DuplicateModuleError reports two instantiations of the same name.
type DuplicateModuleError struct {
	LineNo   int
	Name     string
	FirstDef int
}

func (e *DuplicateModuleError) Error() string {
	return fmt.Sprintf("line %d: module %q already declared at line %d", e.LineNo, e.Name, e.FirstDef)
}

// UnknownPortError reports a reference to a port or parameter that the
// named module's descriptor does not declare.
type UnknownPortError struct {
	LineNo int
	Module string
	Port   string
}

func (e *UnknownPortError) Error() string {
	return fmt.Sprintf("line %d: module %q has no port or parameter %q", e.LineNo, e.Module, e.Port)
}

// IncompatiblePortError reports a connection whose source and sink port
// kinds cannot be bridged per PortKind.Compatible.
type IncompatiblePortError struct {
	LineNo           int
	SinkKind, SrcKind string
}

func (e *IncompatiblePortError) Error() string {
	return fmt.Sprintf("line %d: cannot connect %s source into %s sink", e.LineNo, e.SrcKind, e.SinkKind)
}

// MultipleConnectionError reports a second connection bound to a sink
// port that does not support explicit summing. FirstDef is the line that
// declared the sink module.
type MultipleConnectionError struct {
	LineNo   int
	Module   string
	Port     string
	FirstDef int
}

func (e *MultipleConnectionError) Error() string {
	return fmt.Sprintf("line %d: %s.%s is already bound (module declared at line %d; last-bound-wins is an error on non-summing sinks)",
		e.LineNo, e.Module, e.Port, e.FirstDef)
}

// CycleError reports a dependency cycle found during topological sort,
// with the full cycle path for diagnostics, per spec scenario S4.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("cycle detected: [%s]", strings.Join(e.Path, ", "))
}

// OutputConflictError reports writes to both the bare `out` bus and one
// of its `out.left`/`out.right` faces in the same patch, per spec
// scenario S5.
type OutputConflictError struct {
	LineNo int
}

func (e *OutputConflictError) Error() string {
	return fmt.Sprintf("line %d: patch writes to both `out` and `out.left`/`out.right`", e.LineNo)
}

// ArityError reports a module constructor argument list inconsistent
// with the type's requirements (e.g. stereomix's channel-count arg).
type ArityError struct {
	LineNo int
	Module string
	Reason string
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("line %d: module %q: %s", e.LineNo, e.Module, e.Reason)
}
