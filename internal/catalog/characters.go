package catalog

// Character is a playable fighter.
type Character struct {
	CharacterID  string `json:"characterId"`
	Name         string `json:"name"`
	Bio          string `json:"bio"`
	PortraitPath string `json:"portraitPath"`
}

// DefaultCharacterID is used whenever a character id fails to resolve.
const DefaultCharacterID = "iron-fist"

// Characters is the fighter roster in catalog order. Like Chapters, the order
// is part of the persistence contract (see EncodeCharacterID); append only.
var Characters = []Character{
	{
		CharacterID:  "iron-fist",
		Name:         "Iron Fist",
		Bio:          "A relentless brawler from the docks. Known for devastating punches and an iron will that never breaks.",
		PortraitPath: "/assets/generated/streetfighter-char-1-portrait.dim_768x768.png",
	},
	{
		CharacterID:  "shadow-blade",
		Name:         "Shadow Blade",
		Bio:          "Swift and deadly, this fighter strikes from the shadows. Speed and precision are their weapons.",
		PortraitPath: "/assets/generated/streetfighter-char-2-portrait.dim_768x768.png",
	},
	{
		CharacterID:  "thunder-kick",
		Name:         "Thunder Kick",
		Bio:          "A martial arts master with lightning-fast kicks. Discipline and honor guide every move.",
		PortraitPath: "/assets/generated/streetfighter-char-3-portrait.dim_768x768.png",
	},
}

// CharacterByID looks a fighter up by its stable string id.
func CharacterByID(characterID string) (Character, bool) {
	for _, c := range Characters {
		if c.CharacterID == characterID {
			return c, true
		}
	}
	return Character{}, false
}

// CharacterByIDOrDefault resolves characterID, falling back to the default
// fighter so every caller ends up with a playable selection.
func CharacterByIDOrDefault(characterID string) Character {
	if c, ok := CharacterByID(characterID); ok {
		return c
	}
	return Characters[0]
}
