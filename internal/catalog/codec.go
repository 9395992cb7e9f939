package catalog

// Conversions between the stable string character id used by game logic and
// the compact numeric index used by the persistence layer. This is the only
// place that knows about the index mapping; reordering the Characters table
// invalidates old saves, which is why the table is append-only.

// EncodeCharacterID returns the catalog position of characterID. Unknown ids
// encode to 0 rather than failing.
func EncodeCharacterID(characterID string) int64 {
	for i, c := range Characters {
		if c.CharacterID == characterID {
			return int64(i)
		}
	}
	return 0
}

// DecodeCharacterID returns the catalog id at idx, or DefaultCharacterID when
// idx is out of range.
func DecodeCharacterID(idx int64) string {
	if idx >= 0 && idx < int64(len(Characters)) {
		return Characters[idx].CharacterID
	}
	return DefaultCharacterID
}

// ValidateCharacterID returns characterID unchanged when it resolves to a
// catalog entry and DefaultCharacterID otherwise. Empty input yields the
// default.
func ValidateCharacterID(characterID string) string {
	if characterID == "" {
		return DefaultCharacterID
	}
	if _, ok := CharacterByID(characterID); ok {
		return characterID
	}
	return DefaultCharacterID
}
