package mindrisk

// builtinLow, builtinModerate and builtinHigh form the corpus used when Train
// is given no data. It is small and only suitable for demonstrations.
var (
	builtinLow = []string{
		"I had a great day today and feel really happy",
		"Everything is going well in my life",
		"I'm feeling good and optimistic about the future",
		"I enjoyed spending time with friends today",
		"Work is going smoothly and I feel accomplished",
		"I'm grateful for the support I have from family",
		"I've been sleeping well and have good energy",
		"I'm excited about my upcoming plans",
		"I feel content and at peace with life",
		"Today was productive and I feel satisfied",
		"I'm looking forward to the weekend",
		"I feel balanced and centered",
		"My mood has been stable and positive",
		"I'm handling stress well lately",
		"Life feels manageable right now",
	}
	builtinModerate = []string{
		"I've been feeling a bit down lately",
		"Sometimes I feel stressed and overwhelmed",
		"I'm worried about several things in my life",
		"Sleep hasn't been great this week",
		"I feel anxious about the future sometimes",
		"Work pressure is getting to me",
		"I'm struggling to stay motivated",
		"I feel lonely sometimes",
		"My mood has been up and down recently",
		"I'm finding it hard to relax",
		"I've been more irritable than usual",
		"I'm having trouble concentrating",
		"I feel uncertain about things",
		"Social situations make me nervous",
		"I'm not as happy as I used to be",
		"I've been feeling tired a lot",
		"I'm worried about my relationships",
		"Sometimes I feel empty inside",
		"I'm dealing with some difficult emotions",
		"I feel like I'm not good enough sometimes",
	}
	builtinHigh = []string{
		"I feel completely hopeless about everything",
		"I don't see any point in going on",
		"I feel worthless and like a burden to everyone",
		"I've been having thoughts of harming myself",
		"Nothing brings me joy anymore",
		"I feel like I'm in a very dark place",
		"I've lost interest in everything I used to enjoy",
		"I feel trapped and can't see a way out",
		"Every day feels like a struggle to survive",
		"I feel disconnected from everyone around me",
		"I can't imagine things ever getting better",
		"I'm exhausted from trying to cope",
		"I feel like giving up on everything",
		"I have no energy or motivation to do anything",
		"I've been crying every day and feel desperate",
	}
)

// BuiltinCorpus returns fresh copies of the built-in texts and their labels:
// 15 low, 20 moderate and 15 high.
func BuiltinCorpus() ([]string, []string) {
	var texts, labels []string
	for _, group := range []struct {
		level RiskLevel
		texts []string
	}{
		{RiskLow, builtinLow},
		{RiskModerate, builtinModerate},
		{RiskHigh, builtinHigh},
	} {
		for _, text := range group.texts {
			texts = append(texts, text)
			labels = append(labels, string(group.level))
		}
	}
	return texts, labels
}
