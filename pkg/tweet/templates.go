package tweet

// Pools holds template and substitution pools. Templates may use {url}, {topic}, {promise},
// {broken}, {pending} and {kept} placeholders.
type Pools struct {
	Jokes         []string `yaml:"jokes" json:"jokes,omitempty"`
	Observational []string `yaml:"observational" json:"observational,omitempty"`
	Sarcasm       []string `yaml:"sarcasm" json:"sarcasm,omitempty"`
	Promo         []string `yaml:"promo" json:"promo,omitempty"`
	Morning       []string `yaml:"morning" json:"morning,omitempty"`
	Afternoon     []string `yaml:"afternoon" json:"afternoon,omitempty"`
	Evening       []string `yaml:"evening" json:"evening,omitempty"`
	General       []string `yaml:"general" json:"general,omitempty"`
	Topics        []string `yaml:"topics" json:"topics,omitempty"`
	Promises      []string `yaml:"promises" json:"promises,omitempty"`
}

// Merge returns a copy of p where every empty pool is taken from defaults
func (p Pools) Merge(defaults Pools) Pools {
	res := p
	fill := func(dst *[]string, src []string) {
		if len(*dst) == 0 {
			*dst = src
		}
	}
	fill(&res.Jokes, defaults.Jokes)
	fill(&res.Observational, defaults.Observational)
	fill(&res.Sarcasm, defaults.Sarcasm)
	fill(&res.Promo, defaults.Promo)
	fill(&res.Morning, defaults.Morning)
	fill(&res.Afternoon, defaults.Afternoon)
	fill(&res.Evening, defaults.Evening)
	fill(&res.General, defaults.General)
	fill(&res.Topics, defaults.Topics)
	fill(&res.Promises, defaults.Promises)
	return res
}

// All returns every template across all pools
func (p Pools) All() []string {
	var res []string
	for _, pool := range [][]string{p.Jokes, p.Observational, p.Sarcasm, p.Promo, p.Morning, p.Afternoon, p.Evening, p.General} {
		res = append(res, pool...)
	}
	return res
}

// DefaultPages are site paths appended to the {url} placeholder
var DefaultPages = []string{"", "/promises", "/tier-list", "/wall-of-cope", "/failures"}

// DefaultPools returns the built-in templates
func DefaultPools() Pools {
	return Pools{
		Jokes: []string{
			"Keir Starmer walks into a bar. He orders a pint, then U-turns and orders water instead. Then U-turns again and leaves.",
			"My sat nav just did a Starmer. Promised to take me home, ended up somewhere completely different, and blamed the previous driver.",
			"Thinking about starting a Keir Starmer diet. You promise to lose weight but then just gain more and blame the last government.",
			"Keir Starmer's promises have a shorter lifespan than a Liz Truss premiership.",
			"Just saw Keir Starmer at a revolving door. He went around 14 times and called each one a 'difficult decision'.",
			"If Keir Starmer was a GPS: 'In 100 meters, make a U-turn. Actually, make one now. Actually, I inherited this route.'",
			"Starmer's commitment to his promises is like my commitment to the gym in January. Strong for about 3 days.",
			"Two Tier Keir: One rule for me accepting freebies, another rule for pensioners keeping their heating on.",
			"Keir Starmer could U-turn in a cul-de-sac.",
			"The only thing Starmer hasn't U-turned on is his ability to U-turn.",
			"Imagine being a Starmer promise. Born in a manifesto, dead by Tuesday.",
			"Starmer treats promises like Tinder matches. Swipes right enthusiastically, ghosts immediately after.",
			"Keir Starmer's energy policy: Promise green, deliver nothing, blame the weather.",
			"Day 1: Bold promise\nDay 2: Nuanced clarification\nDay 3: That's not what I meant\nDay 4: Actually, the Tories\nDay 5: New bold promise",
			"If broken promises were an Olympic sport, Starmer would finally win something for Britain.",
			"Just checked my energy bill. Thanks Keir. Really feeling that 'change' you promised. 🥲",
		},
		Observational: []string{
			"Remember when 'change' was the slogan? Good times.",
			"The audacity of promising change and then changing nothing except your promises.",
			"Somewhere, a Labour manifesto is being used as fiction in a creative writing class.",
			"Friendly reminder that 'difficult decisions' is politician for 'I'm doing the opposite of what I said'.",
			"Another day, another 'we inherited this mess' statement. The political equivalent of 'the dog ate my homework'.",
			"Keir's approval ratings are dropping faster than his promises.",
			"Weird how all those 'fully costed plans' suddenly became 'black holes' after the election. Almost like... no, couldn't be.",
			"It's not a broken promise, it's an 'evolving commitment to pragmatic governance'. Obviously.",
			"Plot twist: The change was the friends we lost along the way.",
			"Winter fuel payments are fine, just put on a jumper. - Someone who accepts free designer clothes",
			"The 'most working-class cabinet ever' sure does love those corporate hospitality boxes.",
		},
		Sarcasm: []string{
			"Give him time! It's only been *checks notes* long enough to break most major promises.",
			"But what about the 14 years of Tories? Checkmate, critics.",
			"To be fair, he never SPECIFICALLY said he'd keep his promises. We just assumed.",
			"The economy will improve any day now. Any day. Just wait. Keep waiting. Still waiting.",
			"Breaking: Government announces new policy. Experts predict U-turn by Thursday.",
			"In Starmer's defence, it's very hard to keep promises when you keep making new ones to break.",
			"Why keep one promise when you can break five? Efficiency.",
		},
		Promo: []string{
			"Tracking every broken promise at {url} 📋",
			"Full accountability tracker: {url}",
			"📋 Remember when he promised {promise}? Yeah, about that... {url}",
			"📊 The people have spoken. Check the Hall of Shame to see how {topic} is ranking: {url}",
			"💨 Today's dose of copium from Starmer defenders. Wall of Cope: {url}",
			"🎭 Two Tier Keir strikes again. Track the failures: {url}",
		},
		Morning: []string{
			"Good morning! Today's broken promise count: {broken}. Coffee won't fix it. {url}",
			"Rise and shine. Still waiting on {promise}. Day whatever. {url}",
			"Morning briefing: {broken} broken, {pending} pending, {kept} kept. Tea's gone cold too. {url}",
		},
		Afternoon: []string{
			"Lunchtime reading: how {topic} is going. Spoiler: badly. {url}",
			"Afternoon update: {pending} promises still 'under review'. {url}",
			"Half the day gone and still no sign of {promise}. {url}",
		},
		Evening: []string{
			"Evening roundup: {broken} broken promises and counting. Sleep well. {url}",
			"Winding down? The government isn't. Another U-turn is probably loading. {url}",
			"Tonight's scoreboard: kept {kept}, broken {broken}. {url}",
		},
		General: []string{
			"Promise tracker update: {broken} broken, {kept} kept. Keep up at {url}",
			"U-turn count update: we've lost track at this point. Full list: {url}",
			"The mental gymnastics required to defend {topic}... Wall of Cope: {url}",
		},
		Topics: []string{
			"winter fuel payments", "the freebies scandal", "NHS waiting times", "the housing crisis",
			"tax rises", "immigration policy", "the economy", "public services",
		},
		Promises: []string{
			"no tax rises for working people", "40,000 extra NHS appointments", "lower energy bills",
			"end the cost of living crisis", "secure borders", "get Britain building",
		},
	}
}
