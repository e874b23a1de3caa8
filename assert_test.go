package ftq

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssumeOnErr(t *testing.T) {
	assertT := assert.New(t)

	assertT.Equal(1, AssumeOnErr(func() (int, error) { return 1, nil }, -1))
	assertT.Equal(-1, AssumeOnErr(func() (int, error) { return 0, errTest }, -1))
	assertT.NotEmpty(AssumeOnErr(os.Executable, ""))
}
