package session

import (
	"regexp"
	"strings"
	"unicode"

	"voice-assistant/internal/voice/interpreter"
	"voice-assistant/internal/voice/normalize"
)

// Action is what the assistant did with a command.
type Action string

const (
	ActionQuery  Action = "query"
	ActionRepeat Action = "repeat"
	ActionStop   Action = "stop"
)

// controlPhrases recognise whole utterances only, so "para" inside a
// business question never stops listening.
type controlPhrases struct {
	stop        *regexp.Regexp
	repeat      *regexp.Regexp
	stopped     string
	nothingSaid string
}

func controlPattern(courtesy, phrases string) *regexp.Regexp {
	return regexp.MustCompile(`^(?:(?:` + courtesy + `)\s+)?(?:` + phrases + `)(?:\s+(?:` + courtesy + `))?$`)
}

var controls = map[interpreter.Locale]controlPhrases{
	interpreter.Spanish: {
		stop:        controlPattern(`por favor|asistente`, `detente|deja de escuchar|para de escuchar|silencio|cancela`),
		repeat:      controlPattern(`por favor|asistente`, `repite|repitelo|repite eso|otra vez|puedes repetir`),
		stopped:     "Dejé de escuchar",
		nothingSaid: "Todavía no tengo ninguna respuesta para repetir",
	},
	interpreter.English: {
		stop:        controlPattern(`please|assistant`, `stop listening|stop|be quiet|cancel`),
		repeat:      controlPattern(`please|assistant`, `repeat|repeat that|say that again|again`),
		stopped:     "I stopped listening",
		nothingSaid: "I have nothing to repeat yet",
	},
}

// detectControl returns the control action for command, or ActionQuery when
// it is an ordinary question.
func detectControl(command string, phrases controlPhrases) Action {
	words := strings.FieldsFunc(normalize.Text(command), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	utterance := strings.Join(words, " ")

	switch {
	case utterance == "":
		return ActionQuery
	case phrases.stop.MatchString(utterance):
		return ActionStop
	case phrases.repeat.MatchString(utterance):
		return ActionRepeat
	}
	return ActionQuery
}
