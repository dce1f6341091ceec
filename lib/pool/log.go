package pool

import (
	"github.com/matthwyatt/qldb-go/lib/logging"
)

var log = logging.GetLogger()
