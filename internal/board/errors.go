package board

import "errors"

// ErrInvariant indicates a structural invariant violation: a mutation that
// would corrupt the document (duplicate section names, cyclic section
// references, a mask clip off the mask track). Lookups that find nothing
// return nil instead; absence is a normal outcome, not an error.
var ErrInvariant = errors.New("storyboard invariant violation")
