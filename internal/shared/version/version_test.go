package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	oldVersion, oldCommit := Version, Commit
	t.Cleanup(func() { Version, Commit = oldVersion, oldCommit })

	Version, Commit = "v1.4.0", "0123456789abcdef"
	assert.Equal(t, "v1.4.0 (0123456)", String())

	Commit = "abc"
	assert.Equal(t, "v1.4.0 (abc)", String())
}
