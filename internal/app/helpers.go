package app

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/blackwell-systems/brpctl/internal/content"
	"github.com/blackwell-systems/brpctl/internal/util"
)

// dateLayouts are accepted by every --date and --start flag.
var dateLayouts = []string{"2006-01-02", "2 January 2006"}

// parseDate reads a calendar date in loc.
func parseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD or \"2 January 2006\")", s)
}

// parseIndex converts a 1-based track argument into a slice index.
func parseIndex(s string, n int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid track number %q", s)
	}
	if i < 1 || i > n {
		return 0, fmt.Errorf("track %d out of range (have %d)", i, n)
	}
	return i - 1, nil
}

// printField prints a label/value pair aligned with the others.
func printField(label, value string) {
	fmt.Printf("  %-14s %s\n", color.CyanString(label+":"), value)
}

func humanBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}

// describeFetchError turns a fetch failure into a message for the reader.
func describeFetchError(err error, path string) string {
	switch {
	case errors.Is(err, content.ErrCorruptRemote):
		return "content unavailable: the source returned a chapter that could not be read"
	case errors.Is(err, content.ErrCorruptCache):
		return fmt.Sprintf("cached chapter is corrupt: %s (remove it or run 'brpctl cache verify --remove')", path)
	case errors.Is(err, content.ErrStorageUnavailable):
		return fmt.Sprintf("cannot write the chapter cache: %v", err)
	case errors.Is(err, content.ErrNotFound):
		return "content unavailable: the source has no such chapter"
	case errors.Is(err, content.ErrRateLimited):
		return "the source is rate limiting requests, try again later"
	case errors.Is(err, content.ErrTransport):
		return fmt.Sprintf("could not reach the source, check your connection and retry (%v)", err)
	default:
		return err.Error()
	}
}

// requireConfirm asks for a typed confirmation on stdin. Without a
// terminal to ask on, the caller must pass --force instead.
func requireConfirm(want string) (bool, error) {
	if !util.IsInputTTY() {
		return false, fmt.Errorf("refusing to prompt without a terminal (use --force)")
	}
	return confirm(os.Stdin, want), nil
}

// confirm reads one line from r and reports whether it equals want.
func confirm(r io.Reader, want string) bool {
	fmt.Printf("Type '%s' to confirm: ", want)
	line, _ := bufio.NewReader(r).ReadString('\n')
	return strings.TrimSpace(line) == want
}
