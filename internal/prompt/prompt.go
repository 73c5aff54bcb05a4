// Package prompt collects the domain and classifier parameters from a console.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/banshee-data/halfspace.viz/internal/field"
	"github.com/mattn/go-isatty"
)

// Labels are the prompts, in the order the values are read.
var Labels = [7]string{"x1 min", "x1 max", "x2 min", "x2 max", "weight 1", "weight 2", "bias"}

const banner = "\nWelcome to the binary classifier visualizer!\n" +
	"Please provide the bounds of the axes and the weights of the halfspace classifier.\n=====\n\n"

// ParseError reports a console value that could not be read as a real number.
type ParseError struct {
	Label string
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	if errors.Is(e.Err, io.ErrUnexpectedEOF) {
		return fmt.Sprintf("%s: input ended before a value was entered", e.Label)
	}
	return fmt.Sprintf("%s: cannot parse %q as a number: %v", e.Label, e.Input, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Prompter reads the seven scalars line by line.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer

	// Echo controls whether the banner, prompts and equation are written.
	Echo bool
}

// New returns a Prompter reading from in and writing prompts to out.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out, Echo: true}
}

// NewStdio returns a Prompter on the process's stdin and stdout. Prompts are
// suppressed when stdin is not a terminal so piped runs stay quiet.
func NewStdio() *Prompter {
	p := New(os.Stdin, os.Stdout)
	p.Echo = isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	return p
}

// Read prompts for the bounds and weights in order. The first value that does
// not parse aborts the read with a *ParseError.
func (p *Prompter) Read() (field.Domain, field.Weights, error) {
	p.printf("%s", banner)

	var vals [7]float64
	for i, label := range Labels {
		v, err := p.readFloat(label)
		if err != nil {
			return field.Domain{}, field.Weights{}, err
		}
		vals[i] = v
	}

	d, w := fromValues(vals)
	p.printf("\nEquation given:\n%s\n", w.Equation())
	return d, w, nil
}

func (p *Prompter) readFloat(label string) (float64, error) {
	p.printf("%s: ", label)

	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return 0, &ParseError{Label: label, Err: err}
	}

	text := strings.TrimSpace(line)
	v, perr := strconv.ParseFloat(text, 64)
	if perr != nil {
		return 0, &ParseError{Label: label, Input: text, Err: perr}
	}
	return v, nil
}

func (p *Prompter) printf(format string, a ...interface{}) {
	if p.Echo && p.out != nil {
		fmt.Fprintf(p.out, format, a...)
	}
}

// ParseParams parses the seven values as one comma-separated list in prompt
// order: x1 min, x1 max, x2 min, x2 max, weight 1, weight 2, bias.
func ParseParams(s string) (field.Domain, field.Weights, error) {
	parts := strings.Split(s, ",")
	if len(parts) != len(Labels) {
		return field.Domain{}, field.Weights{}, fmt.Errorf("expected %d comma-separated values, got %d", len(Labels), len(parts))
	}

	var vals [7]float64
	for i, part := range parts {
		part = strings.TrimSpace(part)
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return field.Domain{}, field.Weights{}, &ParseError{Label: Labels[i], Input: part, Err: err}
		}
		vals[i] = v
	}
	d, w := fromValues(vals)
	return d, w, nil
}

func fromValues(v [7]float64) (field.Domain, field.Weights) {
	return field.Domain{X1Min: v[0], X1Max: v[1], X2Min: v[2], X2Max: v[3]},
		field.Weights{W1: v[4], W2: v[5], Bias: v[6]}
}
