package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGameValidate(t *testing.T) {
	assert.ErrorIs(t, (&Game{Name: " "}).Validate(), ErrGameNameRequired)
	assert.ErrorIs(t, (&Game{Name: "Rocket League", ReleaseYear: -2015}).Validate(), ErrGameReleaseYearInvalid)
	assert.NoError(t, (&Game{Name: "Rocket League", ReleaseYear: 2015}).Validate())
	// Unknown release year stays zero and passes.
	assert.NoError(t, (&Game{Name: "Homebrew Arena"}).Validate())
}
