package dlist

import (
	"fmt"
	"io"
	"os"
)

// Fprint writes the head-to-tail traversal to w as a single line:
// the "[head] " marker, each value followed by a space, the "[null]"
// terminator, and a newline. An empty list yields "[head] [null]\n".
func (l *List) Fprint(w io.Writer) error {
	if _, err := io.WriteString(w, "[head] "); err != nil {
		return err
	}

	for n := l.head; n != nil; n = n.next {
		if _, err := fmt.Fprintf(w, "%d ", n.value); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, "[null]\n")

	return err
}

// FprintBackward writes the tail-to-head traversal to w, framed by
// "[tail] " and "[null]" the same way [List.Fprint] frames the forward
// traversal.
func (l *List) FprintBackward(w io.Writer) error {
	if _, err := io.WriteString(w, "[tail] "); err != nil {
		return err
	}

	for n := l.tail; n != nil; n = n.prev {
		if _, err := fmt.Fprintf(w, "%d ", n.value); err != nil {
			return err
		}
	}

	_, err := io.WriteString(w, "[null]\n")

	return err
}

// Print writes the forward traversal to standard output.
func (l *List) Print() {
	_ = l.Fprint(os.Stdout)
}

// PrintBackward writes the backward traversal to standard output.
func (l *List) PrintBackward() {
	_ = l.FprintBackward(os.Stdout)
}
