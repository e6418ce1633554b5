// Copyright 2026 The Megu Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"io"
	"regexp"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// quotedPattern matches the %q-formatted values error messages carry:
// paths, namespaces, and drop types.
var quotedPattern = regexp.MustCompile(`"(?:[^"\\]|\\.)*"`)

// ErrorRenderer formats errors for the terminal.
type ErrorRenderer struct {
	label  lipgloss.Style
	quoted lipgloss.Style
}

// NewErrorRenderer styles output for w, detecting its color support.
func NewErrorRenderer(w io.Writer) *ErrorRenderer {
	return newErrorRenderer(lipgloss.NewRenderer(w))
}

// NewErrorRendererWithProfile forces a color profile; termenv.Ascii
// disables styling.
func NewErrorRendererWithProfile(w io.Writer, profile termenv.Profile) *ErrorRenderer {
	renderer := lipgloss.NewRenderer(w, termenv.WithProfile(profile))
	renderer.SetColorProfile(profile)
	return newErrorRenderer(renderer)
}

func newErrorRenderer(renderer *lipgloss.Renderer) *ErrorRenderer {
	return &ErrorRenderer{
		label:  renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
		quoted: renderer.NewStyle().Foreground(lipgloss.Color("6")),
	}
}

// Format returns "error: <message>" with the label and every quoted
// value styled.
func (r *ErrorRenderer) Format(err error) string {
	message := quotedPattern.ReplaceAllStringFunc(err.Error(), func(quoted string) string {
		return r.quoted.Render(quoted)
	})
	return r.label.Render("error:") + " " + message
}

// RenderError writes err to w as a single styled line.
func RenderError(w io.Writer, err error) {
	fmt.Fprintln(w, NewErrorRenderer(w).Format(err))
}
