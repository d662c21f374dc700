package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionCommand(t *testing.T) {
	for _, version := range []string{"0.1.0", "1.2.3", "dev"} {
		t.Run(version, func(t *testing.T) {
			out := run(t, NewVersionCommand(version), "version")
			assert.Equal(t, "boolstep v"+version+"\nStep-by-step Boolean expression evaluator\n", out)
		})
	}

	cmd := NewVersionCommand("test")
	assert.Equal(t, "version", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
}
