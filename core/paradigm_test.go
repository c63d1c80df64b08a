package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseParadigm_KnownValues(t *testing.T) {
	for _, want := range AllParadigms() {
		got, err := ParseParadigm(want.String())
		assert.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestParseParadigm_Unknown(t *testing.T) {
	_, err := ParseParadigm("nonexistent")
	assert.ErrorIs(t, err, ErrUnknownParadigm)
	assert.Contains(t, err.Error(), "nonexistent")
}

func TestParadigm_Valid(t *testing.T) {
	assert.True(t, ParadigmSwarm.Valid())
	assert.False(t, Paradigm("").Valid())
	assert.False(t, Paradigm("Orchestra").Valid(), "paradigm names are case sensitive")
}
