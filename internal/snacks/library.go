package snacks

// library is the built-in snack collection grouped by source
var library = []Snack{
	{Text: "Broken things can still be beautiful.", Author: "Ernest Hemingway", Origin: "The Sun Also Rises", Source: SourceBooks},
	{Text: "Grief is love with nowhere to go.", Author: "Jamie Anderson", Origin: "What Surviving the Loss of a Loved One Taught Me", Source: SourceBooks},
	{Text: "You are allowed to take up space.", Author: "Rupi Kaur", Origin: "Milk and Honey", Source: SourceBooks},
	{Text: "Be soft. Do not let the world make you hard.", Author: "Iain Thomas", Origin: "I Wrote This For You", Source: SourceBooks},
	{Text: "We accept the love we think we deserve.", Author: "Stephen Chbosky", Origin: "The Perks of Being a Wallflower", Source: SourceBooks},
	{Text: "There is no greater agony than bearing an untold story.", Author: "Maya Angelou", Origin: "I Know Why the Caged Bird Sings", Source: SourceBooks},
	{Text: "You do not have to be good.", Author: "Mary Oliver", Origin: "Wild Geese", Source: SourceBooks},
	{Text: "What is broken is also where the light gets in.", Author: "Jeanette Winterson", Origin: "Written on the Body", Source: SourceBooks},
	{Text: "The wound is the place where the light enters you.", Author: "Rumi", Origin: "Collected Poems", Source: SourceBooks},
	{Text: "You can’t go back and change the beginning, but you can start where you are.", Author: "C.S. Lewis", Origin: "Mere Christianity", Source: SourceBooks},
	{Text: "Staying human is harder than it looks.", Author: "Ocean Vuong", Origin: "On Earth We're Briefly Gorgeous", Source: SourceBooks},
	{Text: "Sometimes courage is just breathing.", Author: "Andrea Gibson", Origin: "Take Me With You", Source: SourceBooks},
	{Text: "We are all just walking each other home.", Author: "Ram Dass", Origin: "Be Here Now", Source: SourceBooks},
	{Text: "Hope is a thing with feathers.", Author: "Emily Dickinson", Origin: "Collected Poems", Source: SourceBooks},
	{Text: "To love someone is to see them as they are.", Author: "James Baldwin", Origin: "The Fire Next Time", Source: SourceBooks},
	{Text: "The world breaks everyone.", Author: "Ernest Hemingway", Origin: "A Farewell to Arms", Source: SourceBooks},
	{Text: "You are enough exactly as you are.", Author: "Meghan Markle", Origin: "The Bench", Source: SourceBooks},
	{Text: "Vulnerability sounds like truth.", Author: "Brené Brown", Origin: "Daring Greatly", Source: SourceBooks},
	{Text: "We survive by remembering.", Author: "Toni Morrison", Origin: "Beloved", Source: SourceBooks},
	{Text: "Kindness is never wasted.", Author: "Aesop", Origin: "Fables", Source: SourceBooks},

	{Text: "There is a crack in everything, that’s how the light gets in.", Author: "Leonard Cohen", Origin: "Anthem", Source: SourceSongs},
	{Text: "You can be tired and still be brave.", Author: "Florence Welch", Origin: "Florence + The Machine (Interview)", Source: SourceSongs},
	{Text: "It’s a slow fade when you give yourself away.", Author: "Casting Crowns", Origin: "Slow Fade", Source: SourceSongs},
	{Text: "Even on my worst day, I’m still okay.", Author: "Chance the Rapper", Origin: "Blessings", Source: SourceSongs},
	{Text: "I’m still learning how to love myself.", Author: "Kendrick Lamar", Origin: "i", Source: SourceSongs},
	{Text: "You’re gonna be alright.", Author: "Lizzo", Origin: "Good as Hell", Source: SourceSongs},
	{Text: "I am not afraid to keep on living.", Author: "My Chemical Romance", Origin: "Famous Last Words", Source: SourceSongs},
	{Text: "We’re all just kids trying to figure it out.", Author: "Taylor Swift", Origin: "Innocent", Source: SourceSongs},
	{Text: "You don’t have to be alone.", Author: "Coldplay", Origin: "Fix You", Source: SourceSongs},
	{Text: "Sometimes you have to lose yourself to find yourself.", Author: "Lady Gaga", Origin: "Born This Way (Themes)", Source: SourceSongs},
	{Text: "This is me trying.", Author: "Taylor Swift", Origin: "This Is Me Trying", Source: SourceSongs},
	{Text: "You’re still standing.", Author: "Elton John", Origin: "I’m Still Standing", Source: SourceSongs},
	{Text: "I found love where it wasn’t supposed to be.", Author: "Hozier", Origin: "Someone New", Source: SourceSongs},
	{Text: "You don’t need to save me.", Author: "Billie Eilish", Origin: "My Future", Source: SourceSongs},
	{Text: "It’s okay not to be okay.", Author: "Logic", Origin: "1-800-273-8255", Source: SourceSongs},
	{Text: "We’re all looking for heaven.", Author: "Bon Iver", Origin: "Holocene", Source: SourceSongs},
	{Text: "I’m learning to let go.", Author: "Kacey Musgraves", Origin: "Slow Burn", Source: SourceSongs},
	{Text: "You are not a burden.", Author: "Sleeping At Last", Origin: "Atlas: One", Source: SourceSongs},
	{Text: "Love yourself first.", Author: "BTS", Origin: "Love Yourself", Source: SourceSongs},
	{Text: "This pain will be useful.", Author: "Sufjan Stevens", Origin: "Should Have Known Better", Source: SourceSongs},

	{Text: "It’s not your fault.", Author: "Sean Maguire", Origin: "Good Will Hunting", Source: SourceMovies},
	{Text: "You are not alone.", Author: "Christopher Robin", Origin: "Winnie the Pooh", Source: SourceMovies},
	{Text: "The smallest person can change the course of the future.", Author: "Galadriel", Origin: "The Lord of the Rings", Source: SourceMovies},
	{Text: "Just keep swimming.", Author: "Dory", Origin: "Finding Nemo", Source: SourceMovies},
	{Text: "We’re all pretty weird.", Author: "Andrew Clark", Origin: "The Breakfast Club", Source: SourceMovies},
	{Text: "Hope is a good thing.", Author: "Andy Dufresne", Origin: "The Shawshank Redemption", Source: SourceMovies},
	{Text: "You matter.", Author: "Joe Gardner", Origin: "Soul", Source: SourceMovies},
	{Text: "Sometimes the right path is not the easiest one.", Author: "Grandmother Willow", Origin: "Pocahontas", Source: SourceMovies},
	{Text: "You have more power than you know.", Author: "Professor X", Origin: "X-Men", Source: SourceMovies},
	{Text: "Life moves pretty fast.", Author: "Ferris Bueller", Origin: "Ferris Bueller’s Day Off", Source: SourceMovies},
	{Text: "We’re stronger together.", Author: "T’Challa", Origin: "Black Panther", Source: SourceMovies},
	{Text: "You are who you choose to be.", Author: "The Iron Giant", Origin: "The Iron Giant", Source: SourceMovies},
	{Text: "Your story matters.", Author: "Walter Mitty", Origin: "The Secret Life of Walter Mitty", Source: SourceMovies},
	{Text: "This is the beginning.", Author: "Sam", Origin: "The Two Towers", Source: SourceMovies},
	{Text: "Sometimes it’s the people no one expects.", Author: "Alan Turing", Origin: "The Imitation Game", Source: SourceMovies},
	{Text: "You are enough.", Author: "Gerda Wegener", Origin: "The Danish Girl", Source: SourceMovies},
	{Text: "We choose who we become.", Author: "Miles Morales", Origin: "Into the Spider-Verse", Source: SourceMovies},
	{Text: "Your mistakes don’t define you.", Author: "Po", Origin: "Kung Fu Panda", Source: SourceMovies},
	{Text: "It’s okay to be scared.", Author: "Remy", Origin: "Ratatouille", Source: SourceMovies},
	{Text: "We keep going.", Author: "Rocky Balboa", Origin: "Rocky", Source: SourceMovies},

	{Text: "Vulnerability is not weakness.", Author: "Brené Brown", Origin: "Unlocking Us", Source: SourcePodcasts},
	{Text: "You’re not behind — you’re learning.", Author: "Jay Shetty", Origin: "On Purpose", Source: SourcePodcasts},
	{Text: "You don’t have to hustle for worth.", Author: "Glennon Doyle", Origin: "We Can Do Hard Things", Source: SourcePodcasts},
	{Text: "Feelings are data.", Author: "Esther Perel", Origin: "Where Should We Begin?", Source: SourcePodcasts},
	{Text: "Rest is resistance.", Author: "Tricia Hersey", Origin: "The Nap Ministry Podcast", Source: SourcePodcasts},
	{Text: "Your pace is allowed.", Author: "Therapy for Black Girls", Origin: "Therapy for Black Girls Podcast", Source: SourcePodcasts},
	{Text: "Curiosity is kindness.", Author: "Krista Tippett", Origin: "On Being", Source: SourcePodcasts},
	{Text: "You are not broken.", Author: "Dr. Laurie Santos", Origin: "The Happiness Lab", Source: SourcePodcasts},
	{Text: "We grow through compassion.", Author: "Tara Brach", Origin: "Tara Brach Podcast", Source: SourcePodcasts},
	{Text: "Healing isn’t linear.", Author: "The Hilarious World of Depression", Origin: "Hilarious World of Depression", Source: SourcePodcasts},
	{Text: "You don’t need permission to change.", Author: "Rich Roll", Origin: "Rich Roll Podcast", Source: SourcePodcasts},
	{Text: "Presence is enough.", Author: "Sam Harris", Origin: "Making Sense", Source: SourcePodcasts},
	{Text: "Connection is medicine.", Author: "Dr. Vivek Murthy", Origin: "On Purpose", Source: SourcePodcasts},
	{Text: "Be gentle with yourself.", Author: "Ten Percent Happier", Origin: "Ten Percent Happier Podcast", Source: SourcePodcasts},
	{Text: "You’re allowed to rest.", Author: "Erica Chidi", Origin: "Come As You Are", Source: SourcePodcasts},
	{Text: "Growth requires grace.", Author: "Bishop T.D. Jakes", Origin: "The Potter’s Touch Podcast", Source: SourcePodcasts},
	{Text: "Your voice matters.", Author: "NPR Life Kit", Origin: "Life Kit", Source: SourcePodcasts},
	{Text: "Small steps still count.", Author: "Atomic Habits Podcast", Origin: "Atomic Habits", Source: SourcePodcasts},
	{Text: "Self-trust is built.", Author: "The Mindset Mentor", Origin: "Mindset Mentor", Source: SourcePodcasts},
	{Text: "You are becoming.", Author: "Oprah Winfrey", Origin: "SuperSoul", Source: SourcePodcasts},
}
