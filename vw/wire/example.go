package wire

import (
	"strings"
)

// labelKind enumerates the header presence chain. Importance is only
// meaningful with a response, and base only with importance, so the three
// optional fields collapse into four explicit shapes instead of a trio of
// independently-optional parameters that silently drop each other.
type labelKind int

const (
	labelNone labelKind = iota
	labelResponse
	labelWeighted
	labelWeightedBase
)

// Label is the header portion of an example line: the response value and its
// optional importance weight and base. Construct one with NoLabel, NewLabel,
// WeightedLabel, or WeightedLabelWithBase.
type Label struct {
	kind       labelKind
	response   float64
	importance float64
	base       float64
}

// NoLabel is the header of an unlabeled (prediction-only) example.
func NoLabel() Label {
	return Label{kind: labelNone}
}

// NewLabel builds a header carrying just a response value.
func NewLabel(response float64) Label {
	return Label{kind: labelResponse, response: response}
}

// WeightedLabel builds a header carrying a response and its importance
// weight.
func WeightedLabel(response, importance float64) Label {
	return Label{kind: labelWeighted, response: response, importance: importance}
}

// WeightedLabelWithBase builds a header carrying response, importance, and
// base (for residual regression).
func WeightedLabelWithBase(response, importance, base float64) Label {
	return Label{kind: labelWeightedBase, response: response, importance: importance, base: base}
}

func (l Label) tokens() []string {
	switch l.kind {
	case labelResponse:
		return []string{formatNumber(l.response)}
	case labelWeighted:
		return []string{formatNumber(l.response), formatNumber(l.importance)}
	case labelWeightedBase:
		return []string{formatNumber(l.response), formatNumber(l.importance), formatNumber(l.base)}
	default:
		return nil
	}
}

// Encode assembles one complete example line from a header, an optional tag
// (empty string means no tag), and the namespaces in order.
//
// The header segment space-joins the label tokens and the tag token. A
// present tag renders with a literal apostrophe prefix so the learner never
// confuses it with a label field; an absent tag still contributes an empty
// token to keep field counting unambiguous on the consumer side. When the
// label is absent but a tag is present, an empty token holds the label slot
// so the tag stays in second position.
//
// Each namespace contributes one further pipe-delimited segment. With no
// namespaces, one empty segment is still emitted: the grammar requires at
// least the bare pipe.
func Encode(label Label, tag string, namespaces ...*Namespace) string {
	tokens := label.tokens()
	if tag != "" {
		if len(tokens) == 0 {
			tokens = append(tokens, "")
		}
		tokens = append(tokens, "'"+tag)
	} else {
		tokens = append(tokens, "")
	}

	segments := make([]string, 0, len(namespaces)+1)
	segments = append(segments, strings.Join(tokens, " "))
	if len(namespaces) == 0 {
		segments = append(segments, "")
	}
	for _, ns := range namespaces {
		segments = append(segments, ns.Render())
	}
	return strings.Join(segments, "|")
}

// EncodeFeatures is the bare-features convenience: it wraps the given
// features in one anonymous namespace under DefaultPolicy and encodes the
// line.
func EncodeFeatures(label Label, tag string, features ...Feature) (string, error) {
	ns, err := NewNamespace("", features...)
	if err != nil {
		return "", err
	}
	return Encode(label, tag, ns), nil
}
