// Package quotes serves random anime quotes.
package quotes

import "math/rand"

// Quote pairs a line with the character who said it.
type Quote struct {
	Text      string
	Character string
}

var pool = []Quote{
	{"People live their lives bound by what they accept as correct and true. That's how they define reality.", "Itachi Uchiha"},
	{"Wake up to reality! Nothing ever goes as planned in this world.", "Madara Uchiha"},
	{"If you don't like your destiny, don't accept it. Instead, have the courage to change it the way you want it to be.", "Naruto Uzumaki"},
	{"A dropout will beat a genius through hard work.", "Rock Lee"},
	{"A true master is an eternal student.", "Kenshin Himura"},
	{"The sword that kills is also the sword that saves. That is what the reverse blade is for.", "Kenshin Himura"},
	{"A lesson without pain is meaningless. That's because no one can gain without sacrificing something.", "Edward Elric"},
	{"A human's life span is too short to leave regrets behind.", "Alphonse Elric"},
	{"There's no such thing as a painless lesson. They just don't exist. Sacrifices are necessary. You can't gain anything without losing something first.", "Edward Elric"},
	{"Stand up and walk. Keep moving forward. You've got two good legs.", "Edward Elric"},
	{"To know sorrow is not terrifying. What is terrifying is to know you can't go back to happiness you could have.", "Matsumoto Rangiku"},
	{"If you want to know who you are, you have to look at your real self and acknowledge what you see.", "Urahara Kisuke"},
	{"Reject common sense to make the impossible possible.", "Kamina"},
	{"Don't believe in yourself. Believe in me! Believe in the Kamina who believes in you!", "Kamina"},
	{"The world is not perfect, but it's there for us trying the best it can.", "Spike Spiegel"},
	{"Whatever happens, happens.", "Spike Spiegel"},
	{"It's not about whether you win or lose, it's how good you looked doing it.", "Spike Spiegel"},
	{"No matter how hard or impossible it is, never lose sight of your goal.", "Monkey D. Luffy"},
	{"I don't want to conquer anything. I just think the guy with the most freedom in this whole ocean... is the Pirate King!", "Monkey D. Luffy"},
	{"I am a man who wants to become a swordsman that can cut nothing.", "Zoro Roronoa"},
	{"When do you think people die? When they are shot through the heart? No. When they are ravaged by an incurable disease? No. It's when they are forgotten.", "Dr. Hiriluk"},
	{"The difference between the novice and the master is that the master has failed more times than the novice has tried.", "Koro-sensei"},
	{"Even if we forget the faces of our friends, we will never forget the bonds that were carved into our souls.", "Ichigo Kurosaki"},
	{"If you don't take risks, you can't create a future!", "Monkey D. Luffy"},
	{"Being weak is nothing to be ashamed of. Staying weak is!", "Fuegoleon Vermillion"},
	{"The moment you think of giving up, think of the reason why you held on so long.", "Natsu Dragneel"},
	{"Sometimes life is like this tunnel. You can't always see the light at the end of the tunnel, but if you keep moving, you will come to a better place.", "Iroh"},
	{"In the darkest times, hope is something you give yourself. That is the meaning of inner strength.", "Iroh"},
	{"It is important to draw wisdom from different places. If you take it from only one place, it becomes rigid and stale.", "Iroh"},
	{"Pride is not the opposite of shame, but its source. True humility is the only antidote to shame.", "Iroh"},
	{"You are stronger than you believe. You have greater powers than you know.", "Aang"},
	{"There's nothing wrong with letting people who love you help you.", "Uncle Iroh"},
}

// Random picks a quote from the pool.
func Random() Quote {
	return pool[rand.Intn(len(pool))]
}
