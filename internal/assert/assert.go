package assert

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Assert is a wrapper around assert.Assertions and testing.T
type Assert struct {
	*assert.Assertions
	T *testing.T
}

// New creates a new Assert object
func New(t *testing.T) *Assert {
	return &Assert{
		Assertions: assert.New(t),
		T:          t,
	}
}

// FixturePath returns fixtures/<test name>_<fixtureName>. Subtest separators
// are flattened so every fixture lives directly under fixtures/.
func (a *Assert) FixturePath(fixtureName string) string {
	name := strings.ReplaceAll(a.T.Name(), "/", "_")
	return filepath.Join("fixtures", fmt.Sprintf("%s_%s", name, fixtureName))
}

// EqualToFixture compares result byte for byte with a fixture file.
// If GEN_FIXTURE=true is set, it writes result to the fixture file and passes the test.
func (a *Assert) EqualToFixture(fixtureName string, result []byte) {
	fixturePath := a.FixturePath(fixtureName)

	if os.Getenv("GEN_FIXTURE") == "true" {
		err := os.MkdirAll(filepath.Dir(fixturePath), 0755)
		a.NoError(err, "Failed to create fixture directory")

		err = os.WriteFile(fixturePath, result, 0644)
		a.NoError(err, "Failed to write fixture file")
		return
	}

	expected, err := os.ReadFile(fixturePath)
	if !a.NoError(err, "Failed to read fixture file, run with GEN_FIXTURE=true to create it") {
		return
	}

	a.Equal(string(expected), string(result), "Result does not match fixture %s", fixturePath)
}
