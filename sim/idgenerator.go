package sim

import (
	"sync"

	"github.com/rs/xid"
)

var idGeneratorMutex sync.Mutex
var idGenerator IDGenerator

// IDGenerator can generate IDs
type IDGenerator interface {
	// Generate an ID
	Generate() string
}

// GetIDGenerator returns the ID generator used in the current simulation. The
// IDs are unique across goroutines and processes.
func GetIDGenerator() IDGenerator {
	idGeneratorMutex.Lock()
	defer idGeneratorMutex.Unlock()

	if idGenerator == nil {
		idGenerator = xidGenerator{}
	}

	return idGenerator
}

type xidGenerator struct{}

func (g xidGenerator) Generate() string {
	return xid.New().String()
}
