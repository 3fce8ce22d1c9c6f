package icon

// Icon identifies a symbol in the registry.
type Icon int

const (
	Fail Icon = iota + 1
	Success
	Progress
	Mark
	Link
	Play
	Pause
	Ended
	VolumeUp
	VolumeOff
	Fullscreen
	Owner
	Viewer
	Film
)

var icons = map[Icon]*iconDef{
	Fail: {
		emoji:   "💀",
		nerd:    "\uf00d",
		plain:   "X",
		kaomoji: "(×_×)",
		squares: "▨",
	},
	Success: {
		emoji:   "🎉",
		nerd:    "\uf00c",
		plain:   "✓",
		kaomoji: "(ᵔ◡ᵔ)",
		squares: "▣",
	},
	Progress: {
		emoji:   "⏳",
		nerd:    "\uf110",
		plain:   "...",
		kaomoji: "(・_・)",
		squares: "▤",
	},
	Mark: {
		emoji:   "📌",
		nerd:    "\uf08d",
		plain:   "*",
		kaomoji: "(•̀ᴗ•́)",
		squares: "▪",
	},
	Link: {
		emoji:   "🔗",
		nerd:    "\uf0c1",
		plain:   "->",
		kaomoji: "(→_→)",
		squares: "▹",
	},
	Play: {
		emoji:   "▶️",
		nerd:    "\uf04b",
		plain:   ">",
		kaomoji: "(>‿<)",
		squares: "▶",
	},
	Pause: {
		emoji:   "⏸️",
		nerd:    "\uf04c",
		plain:   "||",
		kaomoji: "(-_-)",
		squares: "⏸",
	},
	Ended: {
		emoji:   "⏹️",
		nerd:    "\uf04d",
		plain:   "[]",
		kaomoji: "(￣ー￣)",
		squares: "■",
	},
	VolumeUp: {
		emoji:   "🔊",
		nerd:    "\uf028",
		plain:   "vol",
		kaomoji: "♪(´▽｀)",
		squares: "◧",
	},
	VolumeOff: {
		emoji:   "🔇",
		nerd:    "\uf026",
		plain:   "mute",
		kaomoji: "(｀ε´)",
		squares: "□",
	},
	Fullscreen: {
		emoji:   "🖥️",
		nerd:    "\uf065",
		plain:   "[ ]",
		kaomoji: "(⊙_⊙)",
		squares: "⛶",
	},
	Owner: {
		emoji:   "👑",
		nerd:    "\uf521",
		plain:   "owner",
		kaomoji: "(￣^￣)",
		squares: "◆",
	},
	Viewer: {
		emoji:   "👀",
		nerd:    "\uf06e",
		plain:   "viewer",
		kaomoji: "(◕‿◕)",
		squares: "◇",
	},
	Film: {
		emoji:   "🎬",
		nerd:    "\uf008",
		plain:   "#",
		kaomoji: "(°o°)",
		squares: "▦",
	},
}
