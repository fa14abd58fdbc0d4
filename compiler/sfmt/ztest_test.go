package sfmt_test

import (
	"testing"

	"github.com/brimdata/vcl/ztest"
)

func TestZTest(t *testing.T) { ztest.Run(t, "testdata/ztest") }
