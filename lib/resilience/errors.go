package resilience

import qldberrors "github.com/matthwyatt/qldb-go/lib/errors"

// ErrCircuitOpen is returned when a request is rejected because the circuit is open.
// This is an alias to the central error definition in lib/errors.
var ErrCircuitOpen = qldberrors.ErrCircuitOpen
