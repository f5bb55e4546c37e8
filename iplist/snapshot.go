package iplist

import (
	"encoding/json"

	log "github.com/sirupsen/logrus"
)

// Snapshot describes how to rebuild an equivalent IPList. File-backed lists
// keep only the path and are re-read on restore; list-backed lists carry
// their validated addresses.
type Snapshot struct {
	FilePath      string   `json:"file_path,omitempty"`
	IgnoreInvalid bool     `json:"ignore_invalid"`
	Addresses     []string `json:"addresses,omitempty"`
}

func (l *IPList) Snapshot() Snapshot {
	if l.filePath != "" {
		return Snapshot{FilePath: l.filePath, IgnoreInvalid: l.ignoreInvalid}
	}
	return Snapshot{IgnoreInvalid: l.ignoreInvalid, Addresses: l.Addresses()}
}

func Restore(s Snapshot, logger log.FieldLogger) (*IPList, error) {
	addresses := s.Addresses
	if s.FilePath == "" && addresses == nil {
		addresses = []string{}
	}
	return New(Options{
		FilePath:      s.FilePath,
		Addresses:     addresses,
		IgnoreInvalid: s.IgnoreInvalid,
		Logger:        logger,
	})
}

func (l *IPList) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.Snapshot())
}

func (l *IPList) UnmarshalJSON(data []byte) error {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	var logger log.FieldLogger
	if l.log != nil {
		logger = l.log.Logger
	}
	restored, err := Restore(s, logger)
	if err != nil {
		return err
	}
	*l = *restored
	return nil
}
