// presetify - camera raw presets from image metadata
// Copyright (C) 2024  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// errAborted is returned when the user interrupts a prompt.
var errAborted = errors.New("aborted by user")

// namer chooses the preset name for an image.
type namer interface {
	Name(ctx context.Context, source, suggested string) (string, error)
}

// fileNamer uses the name derived from the image file name.
type fileNamer struct{}

func (fileNamer) Name(_ context.Context, _, suggested string) (string, error) {
	return suggested, nil
}

// surveyNamer asks for each name on the terminal, offering the derived
// name as the default.
type surveyNamer struct{}

func (surveyNamer) Name(ctx context.Context, source, suggested string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var out string
	prompt := &survey.Input{
		Message: fmt.Sprintf("Preset name for %s:", source),
		Default: suggested,
	}
	err := survey.AskOne(prompt, &out, survey.WithValidator(survey.Required))
	if errors.Is(err, terminal.InterruptErr) {
		return "", errAborted
	} else if err != nil {
		return "", err
	}
	return out, nil
}
