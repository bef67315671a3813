package feargreed

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	fencePattern = regexp.MustCompile("(?s)^```[A-Za-z]*\\s*\\n?(.*?)\\n?\\s*```$")
	validate     = validator.New()
)

// ParseError reports a model reply that could not be turned into Scores.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse model scores: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// StripCodeFence removes an optional Markdown code fence (```json ... ```) around a reply.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if m := fencePattern.FindStringSubmatch(s); len(m) > 1 {
		return strings.TrimSpace(m[1])
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```JSON")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// looseNumber accepts a JSON number or a numeric string.
type looseNumber float64

func (n *looseNumber) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("not a number: %q", s)
		}
		*n = looseNumber(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*n = looseNumber(f)
	return nil
}

type modelReply struct {
	MomentumScore     *looseNumber `json:"momentumScore" validate:"required,gte=0,lte=100"`
	NewsScore         *looseNumber `json:"newsScore" validate:"required,gte=0,lte=100"`
	FundamentalsScore *looseNumber `json:"fundamentalsScore" validate:"omitempty,gte=0,lte=100"`
	HeadlineNumber    *looseNumber `json:"headlineNumber"`
}

// ParseScores strips fences from a model reply and decodes it. Momentum and news are
// required for every variant; fundamentals are required for VariantFull.
func ParseScores(raw string, v Variant) (Scores, error) {
	body := StripCodeFence(raw)
	if body == "" {
		return Scores{}, &ParseError{Raw: raw, Err: errors.New("empty reply")}
	}

	var r modelReply
	if err := json.Unmarshal([]byte(body), &r); err != nil {
		return Scores{}, &ParseError{Raw: raw, Err: err}
	}
	if err := validate.Struct(r); err != nil {
		return Scores{}, &ParseError{Raw: raw, Err: err}
	}

	s := Scores{
		Momentum: float64(*r.MomentumScore),
		News:     float64(*r.NewsScore),
	}
	if v == VariantFull {
		if r.FundamentalsScore == nil {
			return Scores{}, &ParseError{Raw: raw, Err: errors.New("fundamentalsScore is required")}
		}
		s.Fundamentals = float64(*r.FundamentalsScore)
	}
	if r.HeadlineNumber != nil {
		s.HeadlineNumber = headlineIndex(float64(*r.HeadlineNumber))
	}
	return s, nil
}

// headlineIndex rounds n into [0, MaxInt32]. NaN maps to 0, which selects the first headline.
func headlineIndex(n float64) int {
	switch {
	case math.IsNaN(n) || n <= 0:
		return 0
	case n >= math.MaxInt32:
		return math.MaxInt32
	}
	return int(math.Round(n))
}
