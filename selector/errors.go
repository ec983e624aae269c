package selector

import "errors"

// ErrUnsatisfiable indicates no candidate route survives the supplied
// constraints.
var ErrUnsatisfiable = errors.New("selector: no route satisfies the provided constraints")
