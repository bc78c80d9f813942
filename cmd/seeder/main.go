package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/poiesic/cinerec/catalog/badger"
	"github.com/poiesic/cinerec/core"
	"github.com/poiesic/cinerec/ingest"
)

var movies = []*core.Movie{
	{
		Title:       "The Matrix",
		Genres:      []string{"action", "science fiction"},
		Keywords:    []string{"simulation", "cyberpunk", "martial arts", "chosen one"},
		Overview:    "A computer hacker learns from mysterious rebels about the true nature of his reality and his role in the war against its controllers.",
		Popularity:  85.2,
		VoteAverage: 8.2,
		VoteCount:   24000,
	},
	{
		Title:       "Inception",
		Genres:      []string{"action", "science fiction", "thriller"},
		Keywords:    []string{"dream", "heist", "subconscious", "memory"},
		Overview:    "A thief who steals corporate secrets through dream-sharing technology is given the inverse task of planting an idea.",
		Popularity:  90.1,
		VoteAverage: 8.4,
		VoteCount:   34000,
	},
	{
		Title:       "Blade Runner",
		Genres:      []string{"science fiction", "thriller"},
		Keywords:    []string{"dystopia", "android", "neo-noir", "rain"},
		Overview:    "A blade runner must pursue and terminate four replicants who stole a ship in space and have returned to Earth.",
		Popularity:  55.7,
		VoteAverage: 7.9,
		VoteCount:   13000,
	},
	{
		Title:       "The Terminator",
		Genres:      []string{"action", "science fiction"},
		Keywords:    []string{"time travel", "cyborg", "dystopia"},
		Overview:    "A cyborg assassin is sent back in time to kill the mother of the future resistance leader.",
		Popularity:  58.4,
		VoteAverage: 7.7,
		VoteCount:   12500,
	},
	{
		Title:       "Alien",
		Genres:      []string{"horror", "science fiction"},
		Keywords:    []string{"spaceship", "alien", "isolation", "survival"},
		Overview:    "The crew of a commercial spacecraft encounters a deadly lifeform after investigating an unknown transmission.",
		Popularity:  70.3,
		VoteAverage: 8.1,
		VoteCount:   13900,
	},
	{
		Title:       "Aliens",
		Genres:      []string{"action", "horror", "science fiction"},
		Keywords:    []string{"alien", "marines", "survival", "rescue"},
		Overview:    "Ripley returns to the planet where her crew encountered the hostile alien creature, this time with a unit of marines.",
		Popularity:  65.8,
		VoteAverage: 7.9,
		VoteCount:   10200,
	},
	{
		Title:       "Heat",
		Genres:      []string{"action", "crime", "drama"},
		Keywords:    []string{"heist", "bank robbery", "los angeles", "obsession"},
		Overview:    "A group of professional bank robbers start to feel the heat from police when they unknowingly leave a clue at their latest heist.",
		Popularity:  63.2,
		VoteAverage: 7.9,
		VoteCount:   6700,
	},
	{
		Title:       "The Dark Knight",
		Genres:      []string{"action", "crime", "drama"},
		Keywords:    []string{"vigilante", "chaos", "anti-hero", "gotham"},
		Overview:    "Batman raises the stakes in his war on crime as the Joker wreaks havoc on Gotham.",
		Popularity:  95.3,
		VoteAverage: 8.5,
		VoteCount:   31000,
	},
	{
		Title:       "Mad Max: Fury Road",
		Genres:      []string{"action", "adventure", "science fiction"},
		Keywords:    []string{"post-apocalyptic", "desert", "car chase", "survival"},
		Overview:    "In a post-apocalyptic wasteland, Max teams up with Furiosa to flee a tyrant who controls the land's water supply.",
		Popularity:  77.9,
		VoteAverage: 7.6,
		VoteCount:   21000,
	},
	{
		Title:       "Interstellar",
		Genres:      []string{"adventure", "drama", "science fiction"},
		Keywords:    []string{"space", "wormhole", "time dilation", "father daughter relationship"},
		Overview:    "A team of explorers travel through a wormhole in space in an attempt to ensure humanity's survival.",
		Popularity:  92.6,
		VoteAverage: 8.4,
		VoteCount:   33000,
	},
	{
		Title:       "Spirited Away",
		Genres:      []string{"animation", "family", "fantasy"},
		Keywords:    []string{"spirit world", "bathhouse", "witch", "coming of age"},
		Overview:    "A young girl wanders into a world ruled by gods, witches, and spirits, where humans are changed into beasts.",
		Popularity:  88.1,
		VoteAverage: 8.5,
		VoteCount:   15000,
	},
	{
		Title:       "My Neighbor Totoro",
		Genres:      []string{"animation", "family", "fantasy"},
		Keywords:    []string{"forest spirit", "countryside", "sisters"},
		Overview:    "Two sisters move to the country with their father and discover the friendly forest spirits living nearby.",
		Popularity:  48.9,
		VoteAverage: 8.1,
		VoteCount:   7800,
	},
	{
		Title:       "Toy Story",
		Genres:      []string{"animation", "comedy", "family"},
		Keywords:    []string{"toys", "friendship", "jealousy", "rescue"},
		Overview:    "A cowboy doll is profoundly threatened when a new spaceman figure supplants him as the top toy in a boy's room.",
		Popularity:  74.4,
		VoteAverage: 8.0,
		VoteCount:   17500,
	},
	{
		Title:       "Finding Nemo",
		Genres:      []string{"animation", "family"},
		Keywords:    []string{"ocean", "father son relationship", "rescue", "fish"},
		Overview:    "After his son is captured in the Great Barrier Reef, a timid clownfish sets out to bring him home.",
		Popularity:  69.7,
		VoteAverage: 7.8,
		VoteCount:   18300,
	},
	{
		Title:       "The Godfather",
		Genres:      []string{"crime", "drama"},
		Keywords:    []string{"mafia", "family", "succession", "new york"},
		Overview:    "The aging patriarch of an organized crime dynasty transfers control of his clandestine empire to his reluctant son.",
		Popularity:  89.8,
		VoteAverage: 8.7,
		VoteCount:   19500,
	},
	{
		Title:       "Goodfellas",
		Genres:      []string{"crime", "drama"},
		Keywords:    []string{"mafia", "rise and fall", "betrayal", "new york"},
		Overview:    "The story of Henry Hill and his life in the mob, covering his relationship with his wife and his mob partners.",
		Popularity:  67.5,
		VoteAverage: 8.5,
		VoteCount:   12400,
	},
	{
		Title:       "Pulp Fiction",
		Genres:      []string{"crime", "thriller"},
		Keywords:    []string{"nonlinear timeline", "hitman", "boxing", "redemption"},
		Overview:    "The lives of two mob hitmen, a boxer, a gangster's wife, and a pair of diner bandits intertwine in four tales.",
		Popularity:  83.2,
		VoteAverage: 8.5,
		VoteCount:   26700,
	},
	{
		Title:       "The Shining",
		Genres:      []string{"horror", "thriller"},
		Keywords:    []string{"hotel", "isolation", "madness", "winter"},
		Overview:    "A family heads to an isolated hotel for the winter where a sinister presence influences the father into violence.",
		Popularity:  61.4,
		VoteAverage: 8.2,
		VoteCount:   16200,
	},
	{
		Title:       "Get Out",
		Genres:      []string{"horror", "mystery", "thriller"},
		Keywords:    []string{"hypnosis", "family visit", "social commentary"},
		Overview:    "A young man visits his girlfriend's parents for the weekend, where his simmering uneasiness becomes a nightmare.",
		Popularity:  52.3,
		VoteAverage: 7.6,
		VoteCount:   14100,
	},
	{
		Title:       "La La Land",
		Genres:      []string{"comedy", "drama", "music", "romance"},
		Keywords:    []string{"jazz", "los angeles", "dream", "musical"},
		Overview:    "While navigating their careers in Los Angeles, a pianist and an actress fall in love while attempting to reconcile their aspirations.",
		Popularity:  59.6,
		VoteAverage: 7.9,
		VoteCount:   16800,
	},
	{
		Title:       "The Notebook",
		Genres:      []string{"drama", "romance"},
		Keywords:    []string{"love", "memory", "social differences"},
		Overview:    "A poor yet passionate young man falls in love with a rich young woman, giving her a sense of freedom.",
		Popularity:  43.1,
		VoteAverage: 7.8,
		VoteCount:   11200,
	},
	{
		Title:       "Saving Private Ryan",
		Genres:      []string{"drama", "war"},
		Keywords:    []string{"world war ii", "normandy", "rescue", "sacrifice"},
		Overview:    "Following the Normandy landings, a group of soldiers goes behind enemy lines to retrieve a paratrooper whose brothers have been killed.",
		Popularity:  72.8,
		VoteAverage: 8.2,
		VoteCount:   14900,
	},
	{
		Title:       "Unforgiven",
		Genres:      []string{"drama", "western"},
		Keywords:    []string{"bounty", "retired gunslinger", "revenge"},
		Overview:    "A retired gunslinger reluctantly takes on one last job, with the help of his old partner and a young man.",
		Popularity:  38.2,
		VoteAverage: 7.9,
		VoteCount:   4300,
	},
	{
		Title:       "The Grand Budapest Hotel",
		Genres:      []string{"comedy", "drama"},
		Keywords:    []string{"hotel", "concierge", "painting", "interwar period"},
		Overview:    "A famous concierge and his protege become trusted friends amid a theft, a murder, and an inheritance dispute.",
		Popularity:  49.5,
		VoteAverage: 8.0,
		VoteCount:   13700,
	},
	{
		Title:       "Ocean's Eleven",
		Genres:      []string{"comedy", "crime", "thriller"},
		Keywords:    []string{"heist", "las vegas", "casino", "ensemble"},
		Overview:    "Danny Ocean and his ten accomplices plan to rob three Las Vegas casinos simultaneously.",
		Popularity:  41.8,
		VoteAverage: 7.4,
		VoteCount:   12000,
	},
	{
		Title:       "John Wick",
		Genres:      []string{"action", "thriller"},
		Keywords:    []string{"revenge", "hitman", "dog", "underworld"},
		Overview:    "An ex-hitman comes out of retirement to track down the gangsters who took everything from him.",
		Popularity:  68.9,
		VoteAverage: 7.4,
		VoteCount:   18600,
	},
}

var (
	dbPath      = flag.String("db", "./catalog_db", "path to the catalog database")
	csvFileName = flag.String("src", "", "CSV export to load instead of the built-in set")
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

func main() {
	backend, err := badger.OpenBackend(*dbPath, false)
	if err != nil {
		panic(err)
	}

	store, err := badger.NewMovieStore(backend)
	if err != nil {
		backend.Close()
		panic(err)
	}
	defer store.Close()

	ctx := context.Background()

	// Prefer a CSV export when one is given
	if *csvFileName != "" {
		file, err := os.Open(*csvFileName)
		if err != nil {
			panic(err)
		}
		defer file.Close()

		loader, err := ingest.NewLoader(store)
		if err != nil {
			panic(err)
		}
		defer loader.Release()

		stats, err := loader.LoadCSV(ctx, file, nil)
		if err != nil {
			panic(err)
		}
		fmt.Printf("Seeded %d movies from %s (%d rows, %d skipped)\n",
			stats.Loaded, *csvFileName, stats.Rows, stats.Skipped)
		return
	}

	added, err := store.AddMovies(ctx, movies...)
	if err != nil {
		panic(err)
	}
	fmt.Printf("Seeded %d movies\n", len(added))

	genres, err := store.Genres(ctx)
	if err != nil {
		panic(err)
	}
	fmt.Printf("Genre vocabulary: %v\n", genres)
}
