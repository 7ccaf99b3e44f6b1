// Package dispatch classifies inbound webhook events and routes them to the
// conversation controller. Postback payloads are decoded once at this
// boundary into a closed Action value so downstream code never touches raw
// key=value strings.
package dispatch

import (
	"net/url"

	"github.com/kaodiag/facebot/bot/quiz"
)

// ActionKind enumerates everything the bot understands from a postback.
type ActionKind int

const (
	// ActionIgnore covers malformed or unrecognized payloads.
	ActionIgnore ActionKind = iota
	// ActionShowMenu requests the promotional menu.
	ActionShowMenu
	// ActionAnswerFace answers question one.
	ActionAnswerFace
	// ActionAnswerLine answers question two.
	ActionAnswerLine
)

func (k ActionKind) String() string {
	switch k {
	case ActionShowMenu:
		return "show_menu"
	case ActionAnswerFace:
		return "answer_face"
	case ActionAnswerLine:
		return "answer_line"
	default:
		return "ignore"
	}
}

// Action is a decoded postback payload.
type Action struct {
	Kind ActionKind
	Face quiz.FaceValue
	Line quiz.LineValue
}

// DecodePostback parses a postback data string (URL query encoding) into an
// Action. Out-of-enum answer values normalize to unknown; anything
// unparseable or without a recognized key decodes to ActionIgnore.
func DecodePostback(data string) Action {
	values, err := url.ParseQuery(data)
	if err != nil {
		return Action{Kind: ActionIgnore}
	}

	switch {
	case values.Get("action") == "main_menu":
		return Action{Kind: ActionShowMenu}
	case values.Has("face"):
		return Action{Kind: ActionAnswerFace, Face: quiz.ParseFace(values.Get("face"))}
	case values.Has("line"):
		return Action{Kind: ActionAnswerLine, Line: quiz.ParseLine(values.Get("line"))}
	default:
		return Action{Kind: ActionIgnore}
	}
}
