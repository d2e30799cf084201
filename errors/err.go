package errors

import (
	"fmt"
)

var (
	ErrEmptyMessage       = fmt.Errorf("legacychat: empty message")
	ErrSessionBusy        = fmt.Errorf("legacychat: a turn is already in flight")
	ErrSessionNotFound    = fmt.Errorf("legacychat: session not found")
	ErrSessionClosed      = fmt.Errorf("legacychat: session closed")
	ErrEmbedding          = fmt.Errorf("legacychat: embedding failed")
	ErrSearch             = fmt.Errorf("legacychat: similarity search failed")
	ErrGeneration         = fmt.Errorf("legacychat: generation failed")
	ErrCatalogUnavailable = fmt.Errorf("legacychat: persona catalog unavailable")
	ErrInvalidConfig      = fmt.Errorf("legacychat: invalid config")
	ErrNotFound           = fmt.Errorf("legacychat: not found")
)
