// Package textui plays a session over a line-oriented reader and writer,
// usually stdin and stdout.
package textui

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"

	"noventagrados/game"
	"noventagrados/messages"
	"noventagrados/session"
)

type UI struct {
	in      *bufio.Scanner
	out     io.Writer
	printer *messages.Printer
}

func New(in io.Reader, out io.Writer, p *messages.Printer) *UI {
	scanner := bufio.NewScanner(in)
	scanner.Split(bufio.ScanWords)
	return &UI{in: scanner, out: out, printer: p}
}

// Run drives s until the game is won, drawn or left. End of input counts as
// leaving. The returned error is an internal fault or a read error.
func (ui *UI) Run(s *session.Session) error {
	ui.println(messages.Welcome, s.Strategy())
	ui.println(messages.InputFormat)

	for {
		fmt.Fprint(ui.out, s.Render())
		fmt.Fprint(ui.out, ui.printer.Sprintf(messages.Prompt, ui.printer.Color(s.Turn())))

		token := "exit"
		if ui.in.Scan() {
			token = ui.in.Text()
		} else if err := ui.in.Err(); err != nil {
			return fmt.Errorf("read move: %w", err)
		} else {
			fmt.Fprintln(ui.out)
		}

		res, err := s.Submit(token)
		if err != nil {
			return err
		}
		if done := ui.report(s, res); done {
			break
		}
	}

	ui.println(messages.GameFinished)
	m := s.Metrics()
	log.Info().Msgf("moves: %d, captures: %d, undos: %d, rejected: %d", m.Moves, m.Captures, m.Undos, m.IllegalMoves+m.InvalidInputs)
	return nil
}

// report prints the answer to one input and tells whether the game loop ends.
func (ui *UI) report(s *session.Session, res session.Result) bool {
	switch res.Outcome {
	case session.GameEnded:
		ui.println(messages.EndedByUser)
		return true
	case session.NothingToUndo:
		ui.println(messages.NothingToUndo)
	case session.MoveUndone:
		ui.println(messages.MoveUndone)
	case session.InvalidFormat:
		ui.println(messages.InvalidFormat)
	case session.IllegalMove:
		ui.println(messages.IllegalMove)
	case session.GameAlreadyOver:
		ui.println(messages.AlreadyOver)
	case session.MoveApplied:
		ui.reportCaptures(res.Captured)
	case session.GameOver:
		ui.reportCaptures(res.Captured)
		fmt.Fprint(ui.out, s.Render())
		if res.Draw {
			ui.println(messages.Draw)
		} else {
			ui.println(messages.Winner, ui.printer.Color(res.Winner))
		}
		return true
	}
	return false
}

func (ui *UI) reportCaptures(captured []game.Piece) {
	if len(captured) == 0 {
		return
	}
	codes := make([]string, len(captured))
	for i, p := range captured {
		codes[i] = p.String()
	}
	ui.println(messages.Captured, strings.Join(codes, " "))
}

func (ui *UI) println(key string, args ...any) {
	fmt.Fprintln(ui.out, ui.printer.Sprintf(key, args...))
}
