package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"github.com/vyrodovalexey/agrostock/internal/model"
)

// Prompt errors.
var (
	// ErrCancelled is returned by every prompt when the operator types the
	// cancel token. Operations pass it up unchanged.
	ErrCancelled = errors.New("operation cancelled")

	// ErrEndOfInput is returned when input is exhausted. It wraps ErrCancelled.
	ErrEndOfInput = fmt.Errorf("%w: end of input", ErrCancelled)

	// ErrLineTooLong rejects an answer longer than MaxLineBytes.
	ErrLineTooLong = fmt.Errorf("answer is too long (over %d bytes), try again", MaxLineBytes)
)

// MaxLineBytes bounds one line of operator input, line terminator included.
const MaxLineBytes = 4096

// readLine prints msg and reads one line of input with surrounding space removed.
// A line longer than MaxLineBytes is consumed in full and rejected with ErrLineTooLong.
func (c *Console) readLine(msg string) (string, error) {
	fmt.Fprint(c.out, msg)

	line, truncated, err := readBounded(c.in, MaxLineBytes)
	if errors.Is(err, io.EOF) {
		fmt.Fprintln(c.out)
		return "", ErrEndOfInput
	}
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	if truncated {
		return "", ErrLineTooLong
	}

	return trimLine(line), nil
}

// readBounded reads through the next newline. Once the line exceeds limit
// bytes the rest of it is discarded and truncated is true. It returns io.EOF
// only when no bytes were left to read.
func readBounded(r *bufio.Reader, limit int) (string, bool, error) {
	var buf []byte
	truncated := false

	for {
		chunk, err := r.ReadSlice('\n')
		if !truncated {
			if len(buf)+len(chunk) > limit {
				truncated = true
				buf = nil
			} else {
				buf = append(buf, chunk...)
			}
		}

		switch {
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case errors.Is(err, io.EOF):
			if len(buf) == 0 && !truncated {
				return "", false, io.EOF
			}
			return string(buf), truncated, nil
		case err != nil:
			return "", false, err
		default:
			return string(buf), truncated, nil
		}
	}
}

// ask prompts with msg until parse accepts the answer or the operator cancels.
// Rejected answers are reported with the parse error's message.
func ask[T any](c *Console, msg string, parse func(string) (T, error)) (T, error) {
	var zero T

	for {
		line, err := c.readLine(msg)
		if errors.Is(err, ErrLineTooLong) {
			c.warn(err.Error())
			continue
		}
		if err != nil {
			return zero, err
		}

		if IsCancel(line) {
			return zero, ErrCancelled
		}

		value, err := parse(line)
		if err == nil {
			return value, nil
		}

		c.warn(err.Error())
	}
}

func (c *Console) askPositive(msg string) (decimal.Decimal, error) {
	return ask(c, msg, ParsePositive)
}

func (c *Console) askDate(msg string) (model.Date, error) {
	return ask(c, msg, ParseDate)
}

func (c *Console) askText(msg string) (string, error) {
	return ask(c, msg, ParseText)
}

func (c *Console) confirm(msg string) (bool, error) {
	return ask(c, msg, ParseYesNo)
}

// askChoice reads a menu selection. Only the cancel token is rejected.
func (c *Console) askChoice(msg string) (string, error) {
	return ask(c, msg, func(s string) (string, error) { return s, nil })
}

func (c *Console) warn(msg string) {
	fmt.Fprintf(c.out, "⚠ %s\n", msg)
}
