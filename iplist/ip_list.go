// Package iplist holds a validated set of IPv4 addresses loaded from a
// newline-delimited file or from an in-memory list.
//
// Each input line is trimmed, anything after the first '#' is dropped, and
// the remainder must be an IPv4 literal. Invalid literals and IPv6 literals
// either fail the load or, in ignore-invalid mode, are skipped. A load builds
// a fresh set and replaces the stored one only when it succeeds.
//
// An IPList is not safe for concurrent use.
package iplist

import (
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/alessio/shellescape"
	"github.com/tuannh982/iplist/utils/collections"
	"golang.org/x/exp/slices"

	log "github.com/sirupsen/logrus"
)

const sourceList = "list"

type IPList struct {
	filePath      string
	ignoreInvalid bool
	ips           collections.Set[string]
	// lines dropped by the last load in ignore-invalid mode
	skipped int
	log     *log.Entry
}

// Options configures New. Exactly one of FilePath and Addresses must be set;
// a nil Addresses slice means "not given", an empty one is a valid empty list.
type Options struct {
	FilePath      string
	Addresses     []string
	IgnoreInvalid bool
	// Logger receives load and export events. Nil means logrus.StandardLogger().
	Logger log.FieldLogger
}

func New(opts Options) (*IPList, error) {
	if opts.FilePath == "" && opts.Addresses == nil {
		return nil, fmt.Errorf("%w: neither was given", ErrConfiguration)
	}
	if opts.FilePath != "" && opts.Addresses != nil {
		return nil, fmt.Errorf("%w: both were given", ErrConfiguration)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.StandardLogger()
	}
	source := opts.FilePath
	if source == "" {
		source = sourceList
	}
	l := &IPList{
		filePath:      opts.FilePath,
		ignoreInvalid: opts.IgnoreInvalid,
		ips:           collections.NewStringSet(),
		log:           logger.WithField("source", source),
	}
	if opts.Addresses != nil {
		if err := l.loadFromList(opts.Addresses); err != nil {
			return nil, err
		}
		return l, nil
	}
	if err := l.Read(); err != nil {
		return nil, err
	}
	return l, nil
}

func discardLogger() *log.Logger {
	logger := log.New()
	logger.Out = io.Discard
	return logger
}

// FromFile loads path without logging. Use New with Options.Logger to observe the load.
func FromFile(path string, ignoreInvalid bool) (*IPList, error) {
	return New(Options{FilePath: path, IgnoreInvalid: ignoreInvalid, Logger: discardLogger()})
}

// FromList loads addresses without logging. A nil slice is treated as empty.
func FromList(addresses []string, ignoreInvalid bool) (*IPList, error) {
	if addresses == nil {
		addresses = []string{}
	}
	return New(Options{Addresses: addresses, IgnoreInvalid: ignoreInvalid, Logger: discardLogger()})
}

func (l *IPList) loadFromList(addresses []string) error {
	l.log.Debug("Loading IP list from provided list")
	ld := newLoader(l.ignoreInvalid, l.log)
	if err := ld.readList(addresses); err != nil {
		return err
	}
	l.commit(ld)
	l.log.Infof("Loaded %d IPs from list", l.ips.Size())
	return nil
}

// Read loads the backing file, replacing the current set. On failure the
// current set is kept.
func (l *IPList) Read() error {
	if l.filePath == "" {
		return fmt.Errorf("cannot read from file: %w", ErrNoBackingFile)
	}
	l.log.Debugf("Reading IP list from %s", l.filePath)
	ld := newLoader(l.ignoreInvalid, l.log)
	if err := ld.readFile(l.filePath); err != nil {
		return err
	}
	l.commit(ld)
	l.log.Infof("Loaded %d IPs from %s", l.ips.Size(), l.filePath)
	return nil
}

func (l *IPList) Reload() error {
	if l.filePath == "" {
		return fmt.Errorf("cannot reload: %w", ErrNoBackingFile)
	}
	l.log.Debug("Reloading IP list")
	return l.Read()
}

func (l *IPList) commit(ld *loader) {
	l.ips = ld.working
	l.skipped = ld.skipped
}

// Add inserts a single IPv4 literal. Unlike loading, it always rejects
// invalid and IPv6 input, whatever the ignore-invalid mode.
func (l *IPList) Add(ip string) error {
	if err := classify(ip); err != nil {
		return &AddressError{Kind: err, Text: ip}
	}
	_ = l.ips.Add(ip)
	return nil
}

// Remove deletes ip and reports whether it was present.
func (l *IPList) Remove(ip string) bool {
	return l.ips.Remove(ip) == nil
}

func (l *IPList) Contains(ip string) bool {
	return l.ips.Contains(ip)
}

func (l *IPList) Len() int {
	return l.ips.Size()
}

// Equal compares address sets only; the source and mode are not part of it.
func (l *IPList) Equal(other *IPList) bool {
	if other == nil {
		return false
	}
	return l.ips.Equals(other.ips)
}

// Addresses returns a sorted copy of the set.
func (l *IPList) Addresses() []string {
	ips := l.ips.Entries()
	slices.Sort(ips)
	return ips
}

func (l *IPList) FilePath() string {
	return l.filePath
}

func (l *IPList) IgnoreInvalid() bool {
	return l.ignoreInvalid
}

// Skipped returns how many lines the last load dropped in ignore-invalid mode.
func (l *IPList) Skipped() int {
	return l.skipped
}

// QuotedAbsPath returns the backing file path with "~" expanded, made
// absolute and quoted for a POSIX shell.
func (l *IPList) QuotedAbsPath() (string, error) {
	if l.filePath == "" {
		return "", fmt.Errorf("cannot quote path: %w", ErrNoBackingFile)
	}
	path, err := expandUser(l.filePath)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return shellescape.Quote(abs), nil
}

// expandUser resolves a leading "~" or "~name". Unknown users leave the path unchanged.
func expandUser(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	name, rest := path[1:], ""
	if i := strings.IndexRune(name, filepath.Separator); i >= 0 {
		name, rest = name[:i], name[i:]
	}
	if name == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, rest), nil
	}
	u, err := user.Lookup(name)
	if err != nil {
		return path, nil
	}
	return filepath.Join(u.HomeDir, rest), nil
}

func (l *IPList) source() string {
	if l.filePath == "" {
		return sourceList
	}
	return l.filePath
}

func (l *IPList) String() string {
	return fmt.Sprintf("IPList with %d IPs from %s", l.ips.Size(), l.source())
}

func (l *IPList) GoString() string {
	info := "from_list=true"
	if l.filePath != "" {
		info = "file_path=" + l.filePath
	}
	return fmt.Sprintf("IPList(%s, ignore_invalid=%t, ip_count=%d)", info, l.ignoreInvalid, l.ips.Size())
}
