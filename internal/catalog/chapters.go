package catalog

// ChallengeType tags the mini-game attached to a chapter. The challenge
// implementations live client-side; the server only folds their reward in.
type ChallengeType string

const (
	ChallengeFocus   ChallengeType = "focus"
	ChallengeTactics ChallengeType = "tactics"
	ChallengeWisdom  ChallengeType = "wisdom"
	ChallengeBrawl   ChallengeType = "brawl"
)

// Choice is one of the two story decisions a chapter offers. Effects map
// attribute names to signed deltas; a choice need not touch every attribute.
type Choice struct {
	ID      string         `json:"id"`
	Text    string         `json:"text"`
	Effects map[string]int `json:"effects"`
}

// Chapter is one episode of the campaign.
type Chapter struct {
	ID            int           `json:"id"`
	Title         string        `json:"title"`
	Background    string        `json:"background"`
	Narratives    []string      `json:"narratives"`
	Choices       []Choice      `json:"choices"`
	ChallengeType ChallengeType `json:"challengeType"`
}

// Chapters is the campaign content in play order. The slice order is part of
// the persistence contract (saved chapter indices point into it), so entries
// are append-only.
var Chapters = []Chapter{
	{
		ID:         0,
		Title:      "First Blood",
		Background: "/assets/generated/streetfight-alley-bg.dim_1920x1080.png",
		Narratives: []string{
			"The back alley reeks of garbage and broken dreams. You've been pushed around your whole life: by gangs, by the system, by everyone who thought you were nothing.",
			"Tonight, that changes. A local crew has been shaking down your neighborhood for weeks. They think they own these streets. They think no one will stand up to them.",
			"Three of them block your path, smirking. The leader cracks his knuckles. 'Wrong place, wrong time,' he says. But you're done running. Your fists clench. This is where you make your stand.",
		},
		Choices: []Choice{
			{
				ID:      "stand_ground",
				Text:    "Stand your ground and face them head-on",
				Effects: map[string]int{"virtue": 10, "courage": 10},
			},
			{
				ID:      "tactical_retreat",
				Text:    "Draw them into a narrow space where numbers don't matter",
				Effects: map[string]int{"wisdom": 10, "courage": 5},
			},
		},
		ChallengeType: ChallengeBrawl,
	},
	{
		ID:         1,
		Title:      "Underground Reputation",
		Background: "/assets/generated/streetfight-warehouse-bg.dim_1920x1080.png",
		Narratives: []string{
			"Word spreads fast on the streets. You took down three guys in that alley, and now people are talking. Some with respect, others with fear. A few with anger.",
			"An underground fight club operates out of an abandoned warehouse on the docks. They've heard about you. The organizer, a scarred veteran named Razor, offers you a spot in the next tournament.",
			"This isn't just about money or glory. Win here, and you earn real respect. Lose, and you might not walk out. The crowd roars as you step into the makeshift ring under flickering industrial lights.",
		},
		Choices: []Choice{
			{
				ID:      "aggressive_style",
				Text:    "Fight aggressively and overwhelm them with raw power",
				Effects: map[string]int{"courage": 15, "virtue": -5},
			},
			{
				ID:      "defensive_counter",
				Text:    "Stay defensive and counter their mistakes",
				Effects: map[string]int{"wisdom": 15, "virtue": 5},
			},
		},
		ChallengeType: ChallengeFocus,
	},
	{
		ID:         2,
		Title:      "King of the Streets",
		Background: "/assets/generated/streetfight-rooftop-bg.dim_1920x1080.png",
		Narratives: []string{
			"You've climbed the ranks. Every fighter in the city knows your name now. But there's one more challenge: the current champion, a brutal enforcer known only as 'The Hammer.'",
			"He's undefeated. Thirty-two fights, thirty-two knockouts. He doesn't just beat opponents; he breaks them. The final match is set on a rooftop overlooking the city. Neutral ground, no rules, no mercy.",
			"As the sun sets and the city lights flicker on below, you face him. This is it. Everything you've fought for comes down to this moment. Win, and you become a legend. Lose, and you're just another name forgotten in the gutter.",
		},
		Choices: []Choice{
			{
				ID:      "respect_challenge",
				Text:    "Offer a respectful challenge, fighter to fighter",
				Effects: map[string]int{"wisdom": 10, "virtue": 15},
			},
			{
				ID:      "no_mercy",
				Text:    "Show no mercy. This is survival of the strongest",
				Effects: map[string]int{"courage": 20, "virtue": -5},
			},
		},
		ChallengeType: ChallengeTactics,
	},
}

// ChapterCount returns the number of chapters in the campaign.
func ChapterCount() int {
	return len(Chapters)
}

// ChapterAt returns the chapter at index i, falling back to the first chapter
// when i is out of range. Loads from legacy or damaged saves must always land
// on playable content.
func ChapterAt(i int) Chapter {
	if i < 0 || i >= len(Chapters) {
		return Chapters[0]
	}
	return Chapters[i]
}

// LastNarrativeIndex returns the final narrative cursor position for chapter i.
func LastNarrativeIndex(i int) int {
	n := len(ChapterAt(i).Narratives)
	if n == 0 {
		return 0
	}
	return n - 1
}
