package log

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
)

func TestSetLogger(t *testing.T) {
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	AddFlags(flagSet)
	SetLogger(flagSet, true)
	assert.NotNil(t, Logger())
	SetLogger(flagSet, false)
	assert.NotNil(t, Logger())
}
