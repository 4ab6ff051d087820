// This file is part of Dotmatrix.
//
// Dotmatrix is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Dotmatrix is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Dotmatrix.  If not, see <https://www.gnu.org/licenses/>.

// Package logger is the central log for the entire application. There
// is no provision for multiple logs; everything that wants to leave a
// note does so through the package level functions.
//
// Entries are kept in memory. They can be echoed to an io.Writer as
// they arrive with SetEcho() or written out in bulk with Write() and
// Tail(). Immediately adjacent duplicate entries are folded into one
// entry with a repeat count.
package logger

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// Entry represents a single line/entry in the log.
type Entry struct {
	Timestamp time.Time
	Tag       string
	Detail    string
	Repeated  int
}

func (e Entry) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%s: %s", e.Tag, e.Detail))
	if e.Repeated > 0 {
		s.WriteString(fmt.Sprintf(" (repeat x%d)", e.Repeated+1))
	}
	s.WriteString("\n")
	return s.String()
}

type logger struct {
	crit sync.Mutex

	maxEntries int
	entries    []Entry

	echo io.Writer
}

// maximum number of entries in the central logger.
const maxCentral = 256

// only allowing one central log for the entire application.
var central = &logger{
	maxEntries: maxCentral,
	entries:    make([]Entry, 0, maxCentral),
}

func (l *logger) log(tag, detail string) {
	l.crit.Lock()
	defer l.crit.Unlock()

	// remove newline characters. the log is line-oriented
	tag = strings.ReplaceAll(tag, "\n", "")
	detail = strings.ReplaceAll(detail, "\n", "")

	if len(l.entries) > 0 {
		last := &l.entries[len(l.entries)-1]
		if last.Tag == tag && last.Detail == detail {
			last.Repeated++
			last.Timestamp = time.Now()
			return
		}
	}

	e := Entry{Timestamp: time.Now(), Tag: tag, Detail: detail}
	l.entries = append(l.entries, e)

	// maintain maximum length
	if len(l.entries) > l.maxEntries {
		l.entries = l.entries[len(l.entries)-l.maxEntries:]
	}

	if l.echo != nil {
		io.WriteString(l.echo, e.String())
	}
}

// Log adds an entry to the central logger.
func Log(tag, detail string) {
	central.log(tag, detail)
}

// Logf adds a formatted entry to the central logger.
func Logf(tag, detail string, args ...interface{}) {
	central.log(tag, fmt.Sprintf(detail, args...))
}

// Clear all entries from the central logger.
func Clear() {
	central.crit.Lock()
	defer central.crit.Unlock()
	central.entries = central.entries[:0]
}

// Write contents of central logger to io.Writer.
func Write(output io.Writer) {
	central.crit.Lock()
	defer central.crit.Unlock()
	for _, e := range central.entries {
		io.WriteString(output, e.String())
	}
}

// Tail writes the last number of entries to io.Writer.
func Tail(output io.Writer, number int) {
	central.crit.Lock()
	defer central.crit.Unlock()

	if number > len(central.entries) {
		number = len(central.entries)
	}
	for _, e := range central.entries[len(central.entries)-number:] {
		io.WriteString(output, e.String())
	}
}

// SetEcho to print entries to io.Writer as they arrive. A nil writer
// turns echoing off.
func SetEcho(output io.Writer) {
	central.crit.Lock()
	defer central.crit.Unlock()
	central.echo = output
}

// BorrowLog gives the provided function the critical section and access
// to the list of log entries.
func BorrowLog(f func([]Entry)) {
	central.crit.Lock()
	defer central.crit.Unlock()
	f(central.entries)
}
