package profile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
)

// LoadResume accepts either a JSON profile or plain resume text and returns
// the parsed record.
func LoadResume(data []byte) (*ResumeProfile, error) {
	if looksLikeJSON(data) {
		return DecodeResume(data)
	}
	return ParseResume(string(data)), nil
}

// LoadJob accepts either a JSON profile or plain posting text.
func LoadJob(data []byte) (*JobProfile, error) {
	if looksLikeJSON(data) {
		return DecodeJob(data)
	}
	return ParseJob(string(data)), nil
}

// DecodeResume decodes a loose JSON resume profile. Skills may be bare
// strings or objects, dates may use several layouts, and an end date of
// "present" (or similar) marks a still-open role.
func DecodeResume(data []byte) (*ResumeProfile, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse resume json: %w", err)
	}

	var p ResumeProfile
	if err := decodeLoose(raw, &p); err != nil {
		return nil, fmt.Errorf("decode resume profile: %w", err)
	}
	return &p, nil
}

// DecodeJob decodes a loose JSON job profile.
func DecodeJob(data []byte) (*JobProfile, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse job json: %w", err)
	}

	var p JobProfile
	if err := decodeLoose(raw, &p); err != nil {
		return nil, fmt.Errorf("decode job profile: %w", err)
	}
	return &p, nil
}

func decodeLoose(input, target any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.ComposeDecodeHookFunc(skillRecordHook, dateHook),
		WeaklyTypedInput: true,
		TagName:          "json",
		Result:           target,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}

func looksLikeJSON(data []byte) bool {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '{'
}

var (
	skillRecordType = reflect.TypeOf(SkillRecord{})
	timeType        = reflect.TypeOf(time.Time{})
	timePtrType     = reflect.TypeOf(&time.Time{})
)

// skillRecordHook turns a bare skill string into a SkillRecord.
func skillRecordHook(from, to reflect.Type, data any) (any, error) {
	if to != skillRecordType || from.Kind() != reflect.String {
		return data, nil
	}
	return SkillRecord{Name: strings.TrimSpace(data.(string))}, nil
}

// dateHook parses date strings into time.Time fields. For pointer targets,
// open-ended markers decode to nil.
func dateHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String {
		return data, nil
	}
	s := strings.TrimSpace(data.(string))

	switch to {
	case timePtrType:
		if s == "" || isOpenEnded(s) {
			return (*time.Time)(nil), nil
		}
		t, err := parseDateToken(s)
		if err != nil {
			return nil, err
		}
		return &t, nil
	case timeType:
		t, err := parseDateToken(s)
		if err != nil {
			return nil, err
		}
		return t, nil
	}
	return data, nil
}

func isOpenEnded(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "present", "current", "now", "ongoing":
		return true
	}
	return false
}
