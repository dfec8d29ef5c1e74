package icon

// Icon identifies a symbol in the registry.
type Icon int

const (
	Lua Icon = iota + 1
	Fail
	Success
	Progress
	Mark
	Search
	Play
	Pause
	Subtitle
	Star
	Link
	Question
	Volume
	Muted
)

var icons = map[Icon]glyphs{
	Lua: {
		emoji:   "🌙",
		nerd:    "",
		plain:   "Lua",
		kaomoji: "(=^･ω･^=)",
		squares: "◧",
	},
	Fail: {
		emoji:   "💀",
		nerd:    "",
		plain:   "X",
		kaomoji: "(×_×)",
		squares: "🟥",
	},
	Success: {
		emoji:   "🎉",
		nerd:    "",
		plain:   "Success",
		kaomoji: "(ᵔ◡ᵔ)",
		squares: "🟩",
	},
	Progress: {
		emoji:   "👻",
		nerd:    "",
		plain:   "Progress",
		kaomoji: "┌(・。・)┘♪",
		squares: "🟦",
	},
	Mark: {
		emoji:   "🍿",
		nerd:    "",
		plain:   "*",
		kaomoji: "(* ^ ω ^)",
		squares: "▣",
	},
	Search: {
		emoji:   "🔍",
		nerd:    "",
		plain:   "?",
		kaomoji: "⁀⊙﹏☉⁀",
		squares: "🔳",
	},
	Play: {
		emoji:   "▶️",
		nerd:    "",
		plain:   ">",
		kaomoji: "ᕕ( ᐛ )ᕗ",
		squares: "▶",
	},
	Pause: {
		emoji:   "⏸️",
		nerd:    "",
		plain:   "||",
		kaomoji: "(－ω－) zzZ",
		squares: "⏸",
	},
	Subtitle: {
		emoji:   "💬",
		nerd:    "",
		plain:   "CC",
		kaomoji: "(ﾉ◕ヮ◕)ﾉ",
		squares: "▤",
	},
	Star: {
		emoji:   "⭐",
		nerd:    "",
		plain:   "+",
		kaomoji: "☆*:.｡.o(≧▽≦)o.｡.:*☆",
		squares: "▩",
	},
	Link: {
		emoji:   "🔗",
		nerd:    "",
		plain:   "@",
		kaomoji: "(￣︶￣)↗",
		squares: "▥",
	},
	Question: {
		emoji:   "🤨",
		nerd:    "",
		plain:   "?",
		kaomoji: "(・_・ヾ",
		squares: "🟨",
	},
	Volume: {
		emoji:   "🔊",
		nerd:    "",
		plain:   "Vol",
		kaomoji: "ヾ(＾∇＾)",
		squares: "◨",
	},
	Muted: {
		emoji:   "🔇",
		nerd:    "",
		plain:   "Mute",
		kaomoji: "(￣ー￣)",
		squares: "◫",
	},
}
