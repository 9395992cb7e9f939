package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeCharacterID_RoundTrip(t *testing.T) {
	for i, c := range Characters {
		idx := EncodeCharacterID(c.CharacterID)
		assert.Equal(t, int64(i), idx)
		assert.Equal(t, c.CharacterID, DecodeCharacterID(idx))
	}
}

func TestEncodeCharacterID_UnknownEncodesToZero(t *testing.T) {
	assert.Equal(t, int64(0), EncodeCharacterID("nonexistent-fighter"))
	assert.Equal(t, int64(0), EncodeCharacterID(""))
}

func TestDecodeCharacterID_OutOfRangeFallsBackToDefault(t *testing.T) {
	assert.Equal(t, DefaultCharacterID, DecodeCharacterID(-1))
	assert.Equal(t, DefaultCharacterID, DecodeCharacterID(int64(len(Characters))))
	assert.Equal(t, DefaultCharacterID, DecodeCharacterID(999))
}

func TestValidateCharacterID(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"known id passes through", "shadow-blade", "shadow-blade"},
		{"default id passes through", "iron-fist", "iron-fist"},
		{"unknown id falls back", "some-imposter", DefaultCharacterID},
		{"empty id falls back", "", DefaultCharacterID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidateCharacterID(tt.input))
		})
	}
}
