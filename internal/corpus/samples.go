package corpus

// defaultSamples is the built-in passage set: quotes, facts, longer passages,
// and technology notes.
var defaultSamples = []string{
	"Be yourself; everyone else is already taken. Oscar Wilde's famous quote reminds us of the value of authenticity in a world that often encourages conformity.",
	"Two things are infinite: the universe and human stupidity; and I'm not sure about the universe. Einstein's humorous observation continues to resonate with people who observe human behavior.",
	"The only way to do great work is to love what you do. If you haven't found it yet, keep looking. Don't settle. Steve Jobs delivered this advice in his famous Stanford commencement speech.",
	"In three words I can sum up everything I've learned about life: it goes on. Robert Frost's simple yet profound observation captures the relentless forward movement of time.",

	"Octopuses have three hearts, nine brains, and blue blood. Their sophisticated nervous system allows them to solve complex puzzles and even use tools, making them among the most intelligent invertebrates.",
	"The Great Barrier Reef is the largest living structure on Earth, stretching over 1,400 miles. It's so massive that it can be seen from outer space and contains thousands of individual reef systems.",
	"A day on Venus is longer than a year on Venus. Due to its slow rotation, Venus takes 243 Earth days to complete one rotation, but only 225 Earth days to orbit the Sun.",
	"The human brain processes images in just 13 milliseconds, making visual processing far faster than previously believed. This remarkable speed allows us to make split-second decisions based on what we see.",

	"The ancient Library of Alexandria was one of the largest and most significant libraries of the ancient world. Founded in the 3rd century BCE, it functioned as a major center of scholarship and contained works by the greatest thinkers and writers of the ancient world.",
	"The first computer programmer was a woman named Ada Lovelace, who wrote the first algorithm designed to be processed by a machine in the mid-1800s. Her notes on Charles Babbage's Analytical Engine include what is recognized as the first computer program.",
	"The world's oldest known living tree is a Great Basin bristlecone pine named Methuselah, estimated to be over 4,850 years old. It was already ancient when the pyramids were being built in Egypt.",
	"The human body contains approximately 60,000 miles of blood vessels. If laid end to end, they would circle the Earth nearly two and a half times, demonstrating the incredible complexity of our circulatory system.",

	"Quantum computing harnesses the strange properties of quantum physics to process information in ways that classical computers cannot. Instead of using bits that are either 0 or 1, quantum computers use qubits that can exist in multiple states simultaneously.",
	"Blockchain technology creates a decentralized and immutable ledger that records transactions across many computers. This design makes the history of any digital asset transparent and verifiable without requiring a trusted third party.",
	"Machine learning algorithms improve automatically through experience, allowing computers to find insights without being explicitly programmed where to look. This capability powers many modern technologies from recommendation systems to autonomous vehicles.",
	"The Internet of Things refers to the billions of physical devices around the world that are connected to the internet, collecting and sharing data. This massive network is transforming how we live and work by making our environment smarter and more responsive.",
}
