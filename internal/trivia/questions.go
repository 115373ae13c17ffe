package trivia

// Question is one guess-the-anime round: a clue and the title that wins it.
type Question struct {
	Clue   string
	Answer string
}

// DefaultQuestions is the built-in question pool.
var DefaultQuestions = []Question{
	{
		Clue:   "What anime features a young ninja with a nine-tailed fox sealed inside him?",
		Answer: "Naruto",
	},
	{
		Clue:   "In which anime do humans fight giant humanoid creatures called Titans behind three massive walls?",
		Answer: "Attack on Titan",
	},
	{
		Clue:   "What anime follows Izuku Midoriya as he trains to become the world's greatest hero?",
		Answer: "My Hero Academia",
	},
	{
		Clue:   "Which anime features a boy who can turn into a Titan and fights to protect humanity?",
		Answer: "Attack on Titan",
	},
	{
		Clue:   "What shonen anime follows a team of ninjas from the Hidden Leaf Village?",
		Answer: "Naruto",
	},
}
