package parser

import (
	"testing"

	"myshell/internal/token"
)

func parse(t *testing.T, line string) (*parsedJob, error) {
	t.Helper()
	j, err := Parse(token.Tokenize(line))
	if err != nil {
		return nil, err
	}
	if j == nil {
		return nil, nil
	}
	return &parsedJob{
		argv0:      first(j.First.Argv),
		background: j.Background,
		pipeline:   j.Second != nil,
	}, nil
}

// parsedJob is a small local projection so tests don't reach into
// myshell/internal/job's unexported fields.
type parsedJob struct {
	argv0      string
	background bool
	pipeline   bool
}

func first(s []string) string {
	if len(s) == 0 {
		return ""
	}
	return s[0]
}

func TestParse_Empty(t *testing.T) {
	j, err := parse(t, "")
	if err != nil || j != nil {
		t.Fatalf("expected (nil, nil) for empty input, got (%v, %v)", j, err)
	}
}

func TestParse_SimpleCommand(t *testing.T) {
	j, err := parse(t, "ls -la")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if j.argv0 != "ls" || j.background || j.pipeline {
		t.Errorf("unexpected parse result: %+v", j)
	}
}

func TestParse_Background(t *testing.T) {
	j, err := parse(t, "sleep 30 &")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !j.background {
		t.Errorf("expected background flag set")
	}
}

func TestParse_Pipeline(t *testing.T) {
	j, err := parse(t, "cat file | wc -l")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !j.pipeline {
		t.Errorf("expected pipeline")
	}
}

func TestParse_Redirections(t *testing.T) {
	tokens := token.Tokenize("cat < in.txt > out.txt 2> err.txt")
	j, err := Parse(tokens)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if j.First.InputFile != "in.txt" || j.First.OutputFile != "out.txt" || j.First.ErrorFile != "err.txt" {
		t.Errorf("unexpected redirection parse: %+v", j.First)
	}
}

func TestParse_RedirectInPipelineSecondProcess(t *testing.T) {
	tokens := token.Tokenize("cat file | wc -l > out.txt")
	j, err := Parse(tokens)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if j.Second.OutputFile != "out.txt" {
		t.Errorf("expected output redirection attached to second process, got %+v", j.Second)
	}
}

func TestParse_Errors(t *testing.T) {
	cases := []string{
		"ls <",
		"< ls",
		"ls >",
		"ls 2>",
		"|",
		"ls |",
		"| ls",
		"ls | wc |",
		"&",
		"ls & wc",
		"ls | |",
	}
	for _, line := range cases {
		t.Run(line, func(t *testing.T) {
			_, err := Parse(token.Tokenize(line))
			if err == nil {
				t.Errorf("expected parse error for %q", line)
			}
		})
	}
}

func TestParse_EmptyCommandAfterPipe(t *testing.T) {
	_, err := Parse(token.Tokenize("ls |"))
	if err == nil {
		t.Fatal("expected error for trailing pipe")
	}
}
