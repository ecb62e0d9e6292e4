package main

import (
	"io"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"agentic-landing-site/internal/domain"
)

var fieldPrompts = map[domain.FormField]string{
	domain.FieldName:    "Your Name",
	domain.FieldEmail:   "Your Email",
	domain.FieldSubject: "Subject",
	domain.FieldMessage: "Your Message",
}

type prompter struct {
	stdio  terminal.Stdio
	active bool
}

// newPrompter only prompts when allowed and stdin is an interactive terminal
func newPrompter(in io.Reader, out, errOut io.Writer, allowed bool) *prompter {
	p := &prompter{}
	inFile, inOK := in.(*os.File)
	outFile, outOK := out.(*os.File)
	if !allowed || !inOK || !outOK || !isTerminal(inFile) {
		return p
	}
	p.stdio = terminal.Stdio{In: inFile, Out: outFile, Err: errOut}
	p.active = true
	return p
}

func (p *prompter) enabled() bool {
	return p.active
}

func (p *prompter) ask(field domain.FormField) (string, error) {
	var prompt survey.Prompt = &survey.Input{Message: fieldPrompts[field]}
	if field == domain.FieldMessage {
		prompt = &survey.Multiline{Message: fieldPrompts[field]}
	}

	var answer string
	err := survey.AskOne(prompt, &answer,
		survey.WithStdio(p.stdio.In, p.stdio.Out, p.stdio.Err),
		survey.WithValidator(survey.Required),
	)
	return answer, err
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
