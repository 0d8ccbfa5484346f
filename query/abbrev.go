package query

// abbreviations maps fan shorthand to the canonical song title it stands
// for. Keys are in normalized form (lowercase, punctuation stripped);
// values are expanded through the same normalization before matching.
var abbreviations = map[string]string{
	"yem":       "You Enjoy Myself",
	"bag":       "AC/DC Bag",
	"2001":      "Also Sprach Zarathustra",
	"dwd":       "Down with Disease",
	"hood":      "Harry Hood",
	"antelope":  "Run Like an Antelope",
	"mikes":     "Mike's Song",
	"weekapaug": "Weekapaug Groove",
	"gin":       "Bathtub Gin",
	"fluff":     "Fluffhead",
	"moma":      "The Moma Dance",
	"wolfmans":  "Wolfman's Brother",
	"divided":   "Divided Sky",
	"slave":     "Slave to the Traffic Light",
	"tweeprise": "Tweezer Reprise",
	"mango":     "The Mango Song",
	"cp":        "Crosseyed and Painless",
	"bowie":     "David Bowie",
	"lizards":   "The Lizards",
	"coil":      "The Squirming Coil",
	"jim":       "Runaway Jim",
	"bbfcfm":    "Big Black Furry Creature from Mars",
	"sloth":     "The Sloth",
	"melt":      "Split Open and Melt",
	"bdtnl":     "Backwards Down the Number Line",
	"sally":     "Suzy Greenberg",
	"tmwsiy":    "The Man Who Stepped Into Yesterday",
	"mfmf":      "My Friend, My Friend",
	"ctb":       "Cars Trucks Buses",
	"asihtos":   "A Song I Heard the Ocean Sing",
}
