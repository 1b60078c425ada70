package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDuration(t *testing.T) {
	d, err := ParseDuration(`{"streams":[],"format":{"filename":"a.mp4","duration":"12.480000"}}`)
	require.NoError(t, err)
	assert.InDelta(t, 12.48, d, 0.0001)
}

func TestParseDuration_Errors(t *testing.T) {
	_, err := ParseDuration(`not json`)
	assert.Error(t, err)

	_, err = ParseDuration(`{"format":{}}`)
	assert.Error(t, err)

	_, err = ParseDuration(`{"format":{"duration":"N/A"}}`)
	assert.Error(t, err)
}
