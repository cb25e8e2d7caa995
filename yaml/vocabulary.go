// Package yaml loads staffscout configuration from YAML files.
package yaml

import (
	"bytes"
	"errors"
	"io"
	"os"

	"github.com/fwojciec/staffscout"
	"gopkg.in/yaml.v3"
)

// LoadVocabulary reads the vocabulary overlay at path on top of a copy of
// base. Lists present in the file replace the base lists; maps are merged
// key by key. Unknown keys are rejected so typos do not pass silently.
func LoadVocabulary(path string, base *staffscout.Vocabulary) (*staffscout.Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, staffscout.Errorf(staffscout.ENOTFOUND, "vocabulary file %q not found", path)
		}
		return nil, err
	}
	return ParseVocabulary(data, base)
}

// ParseVocabulary decodes a YAML overlay on top of a copy of base.
func ParseVocabulary(data []byte, base *staffscout.Vocabulary) (*staffscout.Vocabulary, error) {
	v := cloneVocabulary(base)

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return nil, staffscout.Errorf(staffscout.EINVALID, "invalid vocabulary: %v", err)
	}
	return v, nil
}

// cloneVocabulary copies the maps of base so decoding never mutates it.
func cloneVocabulary(base *staffscout.Vocabulary) *staffscout.Vocabulary {
	if base == nil {
		return &staffscout.Vocabulary{}
	}
	v := *base
	v.RelevanceByLanguage = make(map[string][]string, len(base.RelevanceByLanguage))
	for k, kws := range base.RelevanceByLanguage {
		v.RelevanceByLanguage[k] = kws
	}
	v.CountryLanguage = make(map[string]string, len(base.CountryLanguage))
	for k, lang := range base.CountryLanguage {
		v.CountryLanguage[k] = lang
	}
	return &v
}
