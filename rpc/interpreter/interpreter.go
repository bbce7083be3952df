package interpreter

import (
	"fmt"
	"github.com/ValentinKolb/dictd/lib/store"
	"github.com/ValentinKolb/dictd/rpc/common"
	"strings"
	"unicode/utf8"
)

// Command is a parsed request line
type Command struct {
	Verb string
	Args []string
}

// Parse splits a line into verb and arguments.
// The boolean return value is false if the line contains no tokens at all.
func Parse(line string) (Command, bool) {
	if !utf8.ValidString(line) {
		line = strings.ToValidUTF8(line, string(utf8.RuneError))
	}

	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return Command{}, false
	}
	return Command{Verb: tokens[0], Args: tokens[1:]}, true
}

// Execute applies a parsed command to the store and returns the response line.
func Execute(cmd Command, s store.IStore) common.Response {
	switch cmd.Verb {
	case common.VerbGet:
		return get(cmd.Args, s)
	case common.VerbSet:
		return set(cmd.Args, s)
	case common.VerbClear:
		s.Clear()
		return common.NewAnswer(common.MsgCleared)
	case common.VerbAll:
		return all(s)
	default:
		return common.NewError(common.MsgCommandNotFound)
	}
}

// Interpret parses and executes a single line.
func Interpret(line string, s store.IStore) common.Response {
	cmd, ok := Parse(line)
	if !ok {
		return common.NewError(common.MsgCommandExpected)
	}
	return Execute(cmd, s)
}

// --------------------------------------------------------------------------
// Verbs
// --------------------------------------------------------------------------

func get(args []string, s store.IStore) common.Response {
	if len(args) < 1 {
		return common.NewError(common.MsgGetFormat)
	}

	description, ok := s.Get(args[0])
	if !ok {
		return common.NewError(common.MsgWordNotFound)
	}
	return common.NewAnswer(description)
}

func set(args []string, s store.IStore) common.Response {
	if len(args) < 2 {
		return common.NewError(common.MsgSetFormat)
	}

	// the description loses its original whitespace runs
	word, description := args[0], strings.Join(args[1:], " ")
	s.Set(word, description)
	return common.NewAnswer(fmt.Sprintf(common.MsgWordSet, word))
}

func all(s store.IStore) common.Response {
	words := s.Keys()
	if len(words) == 0 {
		return common.NewError(common.MsgNoWords)
	}
	return common.NewAnswer(fmt.Sprintf(common.MsgAvailableWords, strings.Join(words, ", ")))
}
