package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	crfgen "github.com/andrewdmarques/Penn-VCC-CRF-Generator"
)

var errAborted = errors.New("selection aborted")

// pickForms asks which forms to render. All forms are preselected.
func pickForms(ctx context.Context, forms []crfgen.Form) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	options := make([]string, len(forms))
	labels := make(map[string]string, len(forms))
	for i, f := range forms {
		options[i] = fmt.Sprintf("%s (%d fields)", f.Name, len(f.Records))
		labels[options[i]] = f.Name
	}

	var out []string
	prompt := &survey.MultiSelect{
		Message:  "Forms to render:",
		Options:  options,
		Default:  options,
		PageSize: 15,
	}
	if err := survey.AskOne(prompt, &out, survey.WithValidator(survey.Required)); err != nil {
		return nil, translateSurveyErr(err)
	}

	names := make([]string, 0, len(out))
	for _, o := range out {
		names = append(names, labels[o])
	}
	return names, nil
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return errAborted
	}
	return err
}
