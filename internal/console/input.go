// Package console is the interactive text adapter: a numbered menu over
// the engine's operations, with prompt helpers that re-ask until the
// input is valid.
package console

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Prompter reads validated values from an input stream. Every method
// loops until it gets a valid value; the boolean is false when the input
// stream ends.
type Prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out}
}

func (p *Prompter) readLine(prompt string) (string, bool) {
	fmt.Fprintf(p.out, "%s: ", prompt)
	if !p.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(p.in.Text()), true
}

// RequiredText reads a non-empty string of at most 100 characters.
func (p *Prompter) RequiredText(prompt string) (string, bool) {
	for {
		value, ok := p.readLine(prompt)
		if !ok {
			return "", false
		}
		if value != "" && utf8.RuneCountInString(value) <= 100 {
			return value, true
		}
		fmt.Fprintln(p.out, "Invalid text: must be between 1 and 100 characters.")
	}
}

// PositiveInt reads an integer greater than zero.
func (p *Prompter) PositiveInt(prompt string) (int, bool) {
	for {
		value, ok := p.readLine(prompt)
		if !ok {
			return 0, false
		}
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n, true
		}
		fmt.Fprintln(p.out, "Invalid value: enter a positive whole number.")
	}
}

// NonNegativeInt reads an integer greater than or equal to zero.
func (p *Prompter) NonNegativeInt(prompt string) (int, bool) {
	for {
		value, ok := p.readLine(prompt)
		if !ok {
			return 0, false
		}
		if n, err := strconv.Atoi(value); err == nil && n >= 0 {
			return n, true
		}
		fmt.Fprintln(p.out, "Invalid value: enter a whole number of zero or more.")
	}
}

// NonNegativeDecimal reads a decimal greater than or equal to zero.
// Comma decimal separators are accepted.
func (p *Prompter) NonNegativeDecimal(prompt string) (decimal.Decimal, bool) {
	for {
		value, ok := p.readLine(prompt)
		if !ok {
			return decimal.Zero, false
		}
		value = strings.ReplaceAll(value, ",", ".")
		if d, err := decimal.NewFromString(value); err == nil && !d.IsNegative() {
			return d, true
		}
		fmt.Fprintln(p.out, "Invalid value: use a number like 12.50.")
	}
}

// DecimalGreaterThan reads a decimal strictly greater than min.
func (p *Prompter) DecimalGreaterThan(prompt string, min decimal.Decimal) (decimal.Decimal, bool) {
	for {
		value, ok := p.readLine(fmt.Sprintf("%s (greater than %s)", prompt, min.StringFixed(2)))
		if !ok {
			return decimal.Zero, false
		}
		value = strings.ReplaceAll(value, ",", ".")
		if d, err := decimal.NewFromString(value); err == nil && d.GreaterThan(min) {
			return d, true
		}
		fmt.Fprintf(p.out, "Invalid value: must be greater than %s.\n", min.StringFixed(2))
	}
}

// Confirm asks a yes/no question; anything other than y/yes is no.
func (p *Prompter) Confirm(message string) bool {
	fmt.Fprintf(p.out, "%s (y/N): ", message)
	if !p.in.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(p.in.Text()))
	return answer == "y" || answer == "yes"
}
