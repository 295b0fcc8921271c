package resultset

import (
	loggerinternal "github.com/rdfsql/gosparql/internal/logger"
)

var logger = loggerinternal.NewProxy()
