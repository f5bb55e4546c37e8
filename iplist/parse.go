package iplist

import (
	"bufio"
	"io"
	"net/netip"
	"os"
	"strings"

	"github.com/tuannh982/iplist/utils/collections"

	log "github.com/sirupsen/logrus"
)

// loader runs the line validation routine into a fresh working set.
// The caller swaps the working set in only after the whole input was consumed.
type loader struct {
	ignoreInvalid bool
	working       collections.Set[string]
	lineNo        int
	skipped       int
	log           *log.Entry
}

func newLoader(ignoreInvalid bool, logger *log.Entry) *loader {
	return &loader{
		ignoreInvalid: ignoreInvalid,
		working:       collections.NewStringSet(),
		log:           logger,
	}
}

// cleanLine trims the line and drops everything from the first '#'.
func cleanLine(raw string) string {
	line := strings.TrimSpace(raw)
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = strings.TrimSpace(line[:i])
	}
	return line
}

// classify returns nil for an IPv4 literal, ErrIPv4Only for any IPv6 literal
// (mapped and zoned forms included) and ErrInvalidAddress otherwise.
func classify(line string) error {
	addr, err := netip.ParseAddr(line)
	if err != nil {
		return ErrInvalidAddress
	}
	if !addr.Is4() {
		return ErrIPv4Only
	}
	return nil
}

func (ld *loader) feed(raw string) error {
	ld.lineNo++
	line := cleanLine(raw)
	if line == "" {
		return nil
	}
	if err := classify(line); err != nil {
		if !ld.ignoreInvalid {
			return &AddressError{Kind: err, Line: ld.lineNo, Text: line}
		}
		ld.skipped++
		if err == ErrIPv4Only {
			ld.log.Debugf("Ignoring IPv6 address: %s", line)
		} else {
			ld.log.Debugf("Ignoring invalid IP address: %s", line)
		}
		return nil
	}
	// duplicates collapse
	_ = ld.working.Add(line)
	return nil
}

func (ld *loader) readList(lines []string) error {
	for _, raw := range lines {
		if err := ld.feed(raw); err != nil {
			return err
		}
	}
	return nil
}

func (ld *loader) readFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return &PathError{Kind: ErrFileAccess, Path: path, Err: err}
	}
	defer closeOrWarn(f, ld.log)

	// no line length limit: an oversized line is just another invalid address
	r := bufio.NewReader(f)
	for {
		line, err := r.ReadString('\n')
		if err != nil && err != io.EOF {
			return &PathError{Kind: ErrFileAccess, Path: path, Err: err}
		}
		if line != "" {
			if ferr := ld.feed(strings.TrimRight(line, "\r\n")); ferr != nil {
				return ferr
			}
		}
		if err == io.EOF {
			return nil
		}
	}
}

func closeOrWarn(c io.Closer, logger *log.Entry) {
	if err := c.Close(); err != nil {
		logger.Warnf("Failed to close file: %v", err)
	}
}
