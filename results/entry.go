// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package results reads synthesizer benchmark result files.
//
// A result file is a JSON array of entries, one per evaluation of a
// synthesizer on a dataset at a given step:
//
//	[{"dataset": "adult", "step": 0,
//	  "performance": [{"name": "DecisionTree", "accuracy": 0.81, "f1": 0.62}]}]
//
// The file name without its ".json" extension identifies the
// synthesizer (the "model").
package results

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// An Entry is one evaluation of a synthesizer on a dataset.
type Entry struct {
	Dataset     string  `json:"dataset"`
	Step        int     `json:"step"`
	Performance []Score `json:"performance"`
}

// SynthesizerName returns the name under which e's scores are
// reported for model: model itself at step 0, and model_<step>
// otherwise.
func (e *Entry) SynthesizerName(model string) string {
	if e.Step == 0 {
		return model
	}
	return model + "_" + strconv.Itoa(e.Step)
}

// A Metric is one named score value.
type Metric struct {
	Name  string
	Value float64
}

// A Score holds the metrics of one evaluator model, in the order they
// appear in the result file. Fields other than "name" that are not
// numbers are dropped when decoding.
type Score struct {
	Name    string
	Metrics []Metric
}

var null = []byte("null")

func (s *Score) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("performance score must be an object, got %s", data)
	}
	*s = Score{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key := tok.(string)
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		if key == "name" {
			var name string
			if err := json.Unmarshal(raw, &name); err == nil {
				s.Name = name
			}
			continue
		}
		if bytes.Equal(raw, null) {
			continue
		}
		var v float64
		if err := json.Unmarshal(raw, &v); err != nil {
			continue
		}
		s.Metrics = append(s.Metrics, Metric{key, v})
	}
	_, err = dec.Token()
	return err
}

func (s Score) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	name, err := json.Marshal(s.Name)
	if err != nil {
		return nil, err
	}
	buf.WriteString(`"name":`)
	buf.Write(name)
	for _, m := range s.Metrics {
		k, err := json.Marshal(m.Name)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(m.Value)
		if err != nil {
			return nil, fmt.Errorf("metric %s: %w", m.Name, err)
		}
		buf.WriteByte(',')
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// A Set is the content of one result file.
type Set struct {
	Model   string
	Entries []Entry
}
