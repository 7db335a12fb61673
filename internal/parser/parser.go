// Package parser folds a token sequence into a job.Job description: one or
// two job.ProcessSpecs, per-process redirection filenames, and a
// background flag (spec §4.2). It replaces the teacher's separate
// ParseWithBackground/ParsePipeLineWithBackground/ParseCommand helpers
// (which each handled one slice of the grammar and disagreed with each
// other on redirection tokens) with a single pass over one token stream.
package parser

import (
	"fmt"

	"myshell/internal/job"
)

// ParseError reports a syntactic misuse of <, >, 2>, | or &. The
// in-progress job is always discarded on this error.
type ParseError struct {
	msg string
}

func (e *ParseError) Error() string {
	return e.msg
}

func newParseError(format string, args ...any) *ParseError {
	return &ParseError{msg: fmt.Sprintf(format, args...)}
}

type cursor struct {
	tokens []string
	pos    int
}

func (c *cursor) isLast() bool {
	return c.pos == len(c.tokens)-1
}

// Parse consumes a token sequence into a Job. On success the Job has
// exactly one or two Process specs, each with non-empty argv. Empty input
// returns (nil, nil): nothing to do.
func Parse(tokens []string) (*job.Job, error) {
	if len(tokens) == 0 {
		return nil, nil
	}

	first := &job.ProcessSpec{}
	second := &job.ProcessSpec{}
	current := first
	inSecondProcess := false
	background := false

	c := &cursor{tokens: tokens}
	for c.pos < len(c.tokens) {
		tok := c.tokens[c.pos]
		switch tok {
		case "<":
			if len(current.Argv) == 0 || c.isLast() {
				return nil, newParseError("syntax error: `<' must be placed between two tokens")
			}
			c.pos++
			current.InputFile = c.tokens[c.pos]

		case ">":
			if len(current.Argv) == 0 || c.isLast() {
				return nil, newParseError("syntax error: `>' must be placed between two tokens")
			}
			c.pos++
			current.OutputFile = c.tokens[c.pos]

		case "2>":
			if len(current.Argv) == 0 || c.isLast() {
				return nil, newParseError("syntax error: `2>' must be placed between two tokens")
			}
			c.pos++
			current.ErrorFile = c.tokens[c.pos]

		case "|":
			if c.pos == 0 || c.isLast() || inSecondProcess {
				return nil, newParseError("syntax error: unexpected `|'")
			}
			inSecondProcess = true
			current = second

		case "&":
			if !c.isLast() {
				return nil, newParseError("syntax error: `&' must be the final token")
			}
			if c.pos == 0 {
				return nil, newParseError("syntax error: `&' cannot stand alone")
			}
			background = true

		default:
			current.Argv = append(current.Argv, tok)
		}
		c.pos++
	}

	if len(first.Argv) == 0 {
		return nil, newParseError("syntax error: empty command")
	}
	if inSecondProcess && len(second.Argv) == 0 {
		return nil, newParseError("syntax error: empty command after `|'")
	}

	j := &job.Job{
		Background: background,
		First:      first,
	}
	if inSecondProcess {
		j.Second = second
	}
	return j, nil
}
