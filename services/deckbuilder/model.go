package deckbuilder

import (
	"leetdeck/lib/anki"
)

// Fixed identifiers for the generated deck and note model. These
// must never change: Anki matches imports against them, so a new id
// would duplicate every card in an existing collection.
const (
	DeckId  int64 = 8465193621
	ModelId int64 = 1720556836001
)

const problemCss = `.card {
  font-family: arial;
  font-size: 16px;
  text-align: left;
  color: black;
  background-color: white;
}
.difficulty {
  font-weight: bold;
}
pre {
  background-color: #f6f6f6;
  padding: 8px;
  white-space: pre-wrap;
}
`

func NewProblemModel() anki.Model {
	templates := []anki.Template{
		{
			Name: "Problem",
			Ord:  0,
			Qfmt: "{{Front}}",
			Afmt: "{{FrontSide}}\n\n<hr id=\"answer\">\n\n{{Back}}",
		},
	}
	return anki.NewModel(ModelId, "LeetDeck Problem", []string{"Front", "Back"}, templates, problemCss)
}
