package anki

// The collection blob formats below follow Anki's schema 11 database
// layout, the same layout genanki and every other deck generator
// targets. Everything is plain JSON stuffed into the col table.

const latexPre = `\documentclass[12pt]{article}
\special{papersize=3in,5in}
\usepackage[utf8]{inputenc}
\usepackage{amssymb,amsmath}
\pagestyle{empty}
\setlength{\parindent}{0in}
\begin{document}
`

const latexPost = `\end{document}`

type Field struct {
	Name   string   `json:"name"`
	Ord    int      `json:"ord"`
	Sticky bool     `json:"sticky"`
	Rtl    bool     `json:"rtl"`
	Font   string   `json:"font"`
	Size   int      `json:"size"`
	Media  []string `json:"media"`
}

type Template struct {
	Name string `json:"name"`
	Ord  int    `json:"ord"`
	Qfmt string `json:"qfmt"`
	Afmt string `json:"afmt"`
	// browser-specific overrides, unused here but the keys must exist
	Bqfmt string `json:"bqfmt"`
	Bafmt string `json:"bafmt"`
	Did   *int64 `json:"did"`
}

type Model struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Type      int        `json:"type"`
	Mod       int64      `json:"mod"`
	Usn       int        `json:"usn"`
	SortField int        `json:"sortf"`
	Did       int64      `json:"did"`
	Templates []Template `json:"tmpls"`
	Fields    []Field    `json:"flds"`
	Css       string     `json:"css"`
	LatexPre  string     `json:"latexPre"`
	LatexPost string     `json:"latexPost"`
	Req       [][]any    `json:"req"`
}

// NewModel builds a model with the bookkeeping fields Anki expects
// populated. fieldNames order defines field ordinals.
func NewModel(id int64, name string, fieldNames []string, templates []Template, css string) Model {
	fields := make([]Field, len(fieldNames))
	for i, fieldName := range fieldNames {
		fields[i] = Field{
			Name:  fieldName,
			Ord:   i,
			Font:  "Liberation Sans",
			Size:  20,
			Media: []string{},
		}
	}
	return Model{
		ID:        id,
		Name:      name,
		SortField: 0,
		Templates: templates,
		Fields:    fields,
		Css:       css,
		LatexPre:  latexPre,
		LatexPost: latexPost,
		// every template renders as long as the first field is set
		Req: [][]any{{0, "any", []int{0}}},
	}
}

type deckJSON struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	Desc             string  `json:"desc"`
	Mod              int64   `json:"mod"`
	Usn              int     `json:"usn"`
	Collapsed        bool    `json:"collapsed"`
	BrowserCollapsed bool    `json:"browserCollapsed"`
	NewToday         [2]int  `json:"newToday"`
	RevToday         [2]int  `json:"revToday"`
	LrnToday         [2]int  `json:"lrnToday"`
	TimeToday        [2]int  `json:"timeToday"`
	Dyn              int     `json:"dyn"`
	ExtendNew        int     `json:"extendNew"`
	ExtendRev        int     `json:"extendRev"`
	Conf             int64   `json:"conf"`
}

type confJSON struct {
	ActiveDecks   []int64 `json:"activeDecks"`
	CurDeck       int64   `json:"curDeck"`
	NewSpread     int     `json:"newSpread"`
	CollapseTime  int     `json:"collapseTime"`
	TimeLim       int     `json:"timeLim"`
	EstTimes      bool    `json:"estTimes"`
	DueCounts     bool    `json:"dueCounts"`
	CurModel      int64   `json:"curModel,string"`
	NextPos       int     `json:"nextPos"`
	SortType      string  `json:"sortType"`
	SortBackwards bool    `json:"sortBackwards"`
	AddToCur      bool    `json:"addToCur"`
	DayLearnFirst bool    `json:"dayLearnFirst"`
}

// the stock "Default" options group every deck points at
const defaultDconf = `{"1": {
  "id": 1,
  "name": "Default",
  "mod": 0,
  "usn": 0,
  "maxTaken": 60,
  "timer": 0,
  "autoplay": true,
  "replayq": true,
  "dyn": false,
  "collapsed": false,
  "new": {"delays": [1, 10], "ints": [1, 4, 7], "initialFactor": 2500, "order": 1, "perDay": 20, "bury": false, "separate": true},
  "rev": {"perDay": 200, "ease4": 1.3, "ivlFct": 1, "maxIvl": 36500, "fuzz": 0.05, "minSpace": 1, "bury": false, "hardFactor": 1.2},
  "lapse": {"delays": [10], "leechAction": 0, "leechFails": 8, "minInt": 1, "mult": 0}
}}`
