package search

import (
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// DEFAULT_ANSWER combines a found noun and verb into a single number.
const DEFAULT_ANSWER = "100 * noun + verb"

// Answer evaluates a Starlark integer expression over the found noun and
// verb, and the search target. An exhausted result has no answer.
func Answer(expr string, result Result, target int64) (value int64, err error) {
	err = result.Err()
	if err != nil {
		return
	}

	thread := starlark.Thread{Name: "answer"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{
		"noun":   starlark.MakeInt(result.Noun),
		"verb":   starlark.MakeInt(result.Verb),
		"target": starlark.MakeInt64(target),
	}

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "answer", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrAnswerExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrAnswerExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrAnswerExpression(expr)
		return
	}

	return
}
