package project

import "strings"

const crlf = "\r\n"

type writer struct {
	sb strings.Builder
}

func (w *writer) line(parts ...string) {
	for _, p := range parts {
		w.sb.WriteString(p)
	}
	w.sb.WriteString(crlf)
}

func (w *writer) String() string {
	return w.sb.String()
}
