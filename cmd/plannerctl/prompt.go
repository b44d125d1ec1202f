package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Shivanand-hulikatti/event-planner/internal/form"
	"github.com/Shivanand-hulikatti/event-planner/internal/model"
)

// maxPrompts bounds how often a user is asked before giving up.
const maxPrompts = 50

var errNoInput = errors.New("input closed before the form was complete")

// prompter asks for missing or invalid form fields, one line per answer.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out}
}

// complete keeps asking for the first invalid field until the form submits
// cleanly. Valid values already on the form are never asked for again.
func (p *prompter) complete(f *form.Form, labels map[string]string) error {
	for n := 0; n < maxPrompts; n++ {
		ok, focus := f.Submit()
		if ok {
			return nil
		}
		label := labels[focus]
		if label == "" {
			label = focus
		}
		if f.Value(focus) != "" {
			printf(p.out, "  %s %s\n", label, f.Error(focus))
		}
		printf(p.out, "%s: ", label)

		line, err := p.in.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			if errors.Is(err, io.EOF) {
				return errNoInput
			}
			return fmt.Errorf("reading %s: %w", focus, err)
		}
		f.Change(focus, strings.TrimSpace(line))
		f.Blur(focus)
	}
	return fmt.Errorf("gave up after %d prompts", maxPrompts)
}

// submit validates a form without prompting and returns every field error.
func submit(f *form.Form, schema form.Schema) error {
	if ok, _ := f.Submit(); ok {
		return nil
	}
	if ve := schema.Validate(f.Values()); ve != nil {
		return ve
	}
	return &model.ValidationError{}
}
