package wire

import (
	"strconv"
	"strings"
)

// ResultKind classifies a decoded response.
type ResultKind int

const (
	// KindText carries the raw response verbatim: either raw-output mode is
	// on, or no numeric token was found.
	KindText ResultKind = iota
	// KindScalar carries exactly one parsed value.
	KindScalar
	// KindVector carries several parsed values in token order.
	KindVector
)

func (k ResultKind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindVector:
		return "vector"
	default:
		return "text"
	}
}

// Result is a decoded learner response. Raw always holds the original text.
type Result struct {
	Kind   ResultKind
	Scalar float64
	Vector []float64
	Raw    string
}

// Decode interprets a raw response line.
//
// In raw-output mode the text passes through untouched. Otherwise the text
// is whitespace-split and each token parsed as a float; tokens that fail to
// parse (echoed tags, diagnostics) are silently dropped. One surviving value
// decodes to a scalar, several to a vector, and none to the raw text
// fallback. A wholly non-numeric response is not an error, just nothing to
// parse.
func Decode(raw string, rawOutput bool) Result {
	if rawOutput {
		return Result{Kind: KindText, Raw: raw}
	}

	var values []float64
	for _, tok := range strings.Fields(raw) {
		if v, err := strconv.ParseFloat(tok, 64); err == nil {
			values = append(values, v)
		}
	}

	switch len(values) {
	case 0:
		return Result{Kind: KindText, Raw: raw}
	case 1:
		return Result{Kind: KindScalar, Scalar: values[0], Raw: raw}
	default:
		return Result{Kind: KindVector, Vector: values, Raw: raw}
	}
}

// String renders the result for human display.
func (r Result) String() string {
	switch r.Kind {
	case KindScalar:
		return strconv.FormatFloat(r.Scalar, 'g', -1, 64)
	case KindVector:
		parts := make([]string, len(r.Vector))
		for i, v := range r.Vector {
			parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		return strings.Join(parts, " ")
	default:
		return r.Raw
	}
}
