package console

import (
	"bufio"
	"context"
	"io"
	"strings"
)

type lineResult struct {
	line string
	err  error
}

// lineReader reads lines on its own goroutine so a blocked read never
// holds up cancellation. The goroutine exits at end of input or when ctx
// is done.
type lineReader struct {
	lines <-chan lineResult
}

func newLineReader(ctx context.Context, r io.Reader) *lineReader {
	ch := make(chan lineResult)
	go func() {
		defer close(ch)
		br := bufio.NewReader(r)
		for {
			line, err := br.ReadString('\n')
			if line != "" {
				select {
				case ch <- lineResult{line: trimNewline(line)}:
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				select {
				case ch <- lineResult{err: err}:
				case <-ctx.Done():
				}
				return
			}
		}
	}()
	return &lineReader{lines: ch}
}

// next blocks for the next line. It returns io.EOF once input is exhausted.
func (r *lineReader) next(ctx context.Context) (string, error) {
	select {
	case res, ok := <-r.lines:
		if !ok {
			return "", io.EOF
		}
		return res.line, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// trimNewline strips the line terminator only; other whitespace is input.
func trimNewline(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}
