// Package messages holds the user-facing text of the text front end in
// English and Spanish.
package messages

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"noventagrados/game"
)

// Message keys. The English catalog entry of each key is the key itself.
const (
	Welcome        = "Welcome to Noventa Grados (undo mode: %s)."
	InputFormat    = "Enter moves as RC-RC with digits 0-6, for example 00-04. Type undo to take back a move or exit to quit."
	Prompt         = "%s to move: "
	InvalidFormat  = "Invalid format. Use RC-RC with digits 0-6."
	IllegalMove    = "Illegal move."
	NothingToUndo  = "No moves to undo."
	MoveUndone     = "Last move undone."
	Captured       = "Captured: %s"
	Winner         = "%s wins!"
	Draw           = "The game is a draw."
	AlreadyOver    = "The game is already over. Undo or exit."
	EndedByUser    = "Game ended by user."
	GameFinished   = "Game finished."
	colorWhite     = "White"
	colorBlack     = "Black"
	unknownColor   = "?"
)

var supported = []language.Tag{language.English, language.Spanish}

var matcher = language.NewMatcher(supported)

var spanish = map[string]string{
	Welcome:       "Bienvenido a Noventa Grados (modo deshacer: %s).",
	InputFormat:   "Introduzca jugadas como FC-FC con dígitos 0-6, por ejemplo 00-04. Escriba deshacer para anular una jugada o salir para terminar.",
	Prompt:        "Mueven %s: ",
	InvalidFormat: "Formato incorrecto. Use FC-FC con dígitos 0-6.",
	IllegalMove:   "Jugada ilegal.",
	NothingToUndo: "No hay jugadas que deshacer.",
	MoveUndone:    "Última jugada deshecha.",
	Captured:      "Capturadas: %s",
	Winner:        "¡Ganan %s!",
	Draw:          "La partida termina en tablas.",
	AlreadyOver:   "La partida ya ha terminado. Deshaga o salga.",
	EndedByUser:   "Partida terminada por el usuario.",
	GameFinished:  "Fin de la partida.",
	colorWhite:    "blancas",
	colorBlack:    "negras",
}

var builder = newCatalog()

func newCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, text := range spanish {
		if err := b.SetString(language.English, key, key); err != nil {
			panic(err)
		}
		if err := b.SetString(language.Spanish, key, text); err != nil {
			panic(err)
		}
	}
	return b
}

// Printer formats catalog messages for one language.
type Printer struct {
	tag language.Tag
	p   *message.Printer
}

// NewPrinter returns a printer for the closest supported match of lang.
// Unparseable or unsupported languages fall back to English.
func NewPrinter(lang string) *Printer {
	tag := language.English
	if parsed, err := language.Parse(lang); err == nil {
		_, idx, _ := matcher.Match(parsed)
		tag = supported[idx]
	}
	return &Printer{tag: tag, p: message.NewPrinter(tag, message.Catalog(builder))}
}

func (p *Printer) Language() language.Tag { return p.tag }

func (p *Printer) Sprintf(key string, args ...any) string {
	return p.p.Sprintf(key, args...)
}

// Color returns the localized name of a side.
func (p *Printer) Color(c game.Color) string {
	switch c {
	case game.White:
		return p.p.Sprintf(colorWhite)
	case game.Black:
		return p.p.Sprintf(colorBlack)
	default:
		return unknownColor
	}
}
