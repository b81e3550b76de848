package topology

import (
	"context"
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// RouteSequence is one direction of a line as published by the route API.
type RouteSequence struct {
	LineID      string   `json:"lineId" bson:"lineId"`
	Direction   string   `json:"direction" bson:"direction"`
	Mode        string   `json:"mode" bson:"mode"`
	LineStrings []string `json:"lineStrings" bson:"lineStrings"`
}

// RouteSequenceFile loads a JSON array of route sequences.
type RouteSequenceFile struct {
	Path string
}

// Load implements Provider.
func (p *RouteSequenceFile) Load(_ context.Context, includeBuses bool) (*Dataset, error) {
	data, err := os.ReadFile(p.Path)
	if err != nil {
		return nil, errors.Wrap(err, "File open")
	}
	var seqs []RouteSequence
	if err := json.Unmarshal(data, &seqs); err != nil {
		return nil, errors.Wrap(err, "Can't parse route sequences")
	}
	return FromSequences(seqs, includeBuses), nil
}

// FromSequences converts route sequences into a dataset. Sequences whose
// geometry does not decode are logged and skipped.
func FromSequences(seqs []RouteSequence, includeBuses bool) *Dataset {
	d := NewDataset()
	for _, seq := range seqs {
		if seq.LineID == "" || (IsBusMode(seq.Mode) && !includeBuses) {
			continue
		}
		for _, s := range seq.LineStrings {
			segs, err := DecodeLineStrings(s)
			if err != nil {
				logrus.WithField("line", seq.LineID).Warnf("skipping line string: %v", err)
				continue
			}
			for _, seg := range segs {
				d.AddSegment(seq.LineID, seq.Mode, seg)
			}
		}
	}
	return d
}
