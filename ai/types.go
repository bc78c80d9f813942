package ai

// CanonicalGenres are the genre names used across TMDB-style catalogs.
// Extraction prompts embed the catalog's own genre list when one is
// available; this set is the fallback vocabulary and is also used to
// recognize genre mentions in free text.
var CanonicalGenres = []string{
	"action",
	"adventure",
	"animation",
	"comedy",
	"crime",
	"documentary",
	"drama",
	"family",
	"fantasy",
	"history",
	"horror",
	"music",
	"mystery",
	"romance",
	"science fiction",
	"thriller",
	"tv movie",
	"war",
	"western",
}
