package wire

import (
	"strings"
)

// Feature is one labeled numeric signal within a namespace.
type Feature struct {
	Label string
	Value float64
	// HasValue distinguishes an explicit weight from the implicit weight 1.
	HasValue bool
}

// F builds a feature with the implicit weight 1.
func F(label string) Feature {
	return Feature{Label: label}
}

// FV builds a feature with an explicit value.
func FV(label string, value float64) Feature {
	return Feature{Label: label, Value: value, HasValue: true}
}

func (f Feature) render() string {
	if !f.HasValue {
		return f.Label
	}
	return f.Label + ":" + formatNumber(f.Value)
}

// Policy controls how namespace names and feature labels are sanitized, and
// whether rendered text is frozen after the first render.
type Policy struct {
	// Escape replaces reserved characters with their escape sequences.
	// When set, Validate is ignored: escaping already guarantees protocol
	// safety without rejecting input.
	Escape bool
	// Validate rejects names and labels containing reserved characters.
	// Only consulted when Escape is off.
	Validate bool
	// CacheRender freezes the rendered text after the first Render call.
	// Features added after that are invisible; callers opting in must not
	// mutate the namespace once rendered.
	CacheRender bool
}

// DefaultPolicy escapes reserved characters, matching the learner's
// expectations without ever rejecting caller input.
func DefaultPolicy() Policy {
	return Policy{Escape: true, Validate: true}
}

// Namespace is a named, independently-weighted group of features within one
// example line.
type Namespace struct {
	name     string
	scale    float64
	hasScale bool

	features []Feature
	policy   Policy

	// One-way freeze: empty until the first Render under CacheRender.
	cached string
	frozen bool
}

// NewNamespace builds a namespace under DefaultPolicy. An empty name makes
// the namespace anonymous.
func NewNamespace(name string, features ...Feature) (*Namespace, error) {
	return NewNamespaceWith(DefaultPolicy(), name, features...)
}

// NewNamespaceWith builds a namespace under an explicit policy.
func NewNamespaceWith(policy Policy, name string, features ...Feature) (*Namespace, error) {
	cleaned, err := sanitize(policy, name)
	if err != nil {
		return nil, err
	}
	ns := &Namespace{name: cleaned, policy: policy}
	if err := ns.AddFeatures(features...); err != nil {
		return nil, err
	}
	return ns, nil
}

func sanitize(policy Policy, token string) (string, error) {
	if policy.Escape {
		return Escape(token), nil
	}
	if policy.Validate {
		if err := Validate(token); err != nil {
			return "", err
		}
	}
	return token, nil
}

// SetScale sets the namespace-level importance weight, rendered as
// "name:scale" in the leading token.
func (ns *Namespace) SetScale(scale float64) *Namespace {
	ns.scale = scale
	ns.hasScale = true
	return ns
}

// Name returns the sanitized namespace name.
func (ns *Namespace) Name() string {
	return ns.name
}

// Len returns the number of features held.
func (ns *Namespace) Len() int {
	return len(ns.features)
}

// AddFeature appends one explicitly-valued feature, applying the namespace's
// escape/validate policy to the label. Values are numeric and never escaped.
func (ns *Namespace) AddFeature(label string, value float64) error {
	return ns.add(FV(label, value))
}

// AddBareFeature appends a feature with the implicit weight 1.
func (ns *Namespace) AddBareFeature(label string) error {
	return ns.add(F(label))
}

// AddFeatures appends features in order, stopping at the first label the
// policy rejects.
func (ns *Namespace) AddFeatures(features ...Feature) error {
	for _, f := range features {
		if err := ns.add(f); err != nil {
			return err
		}
	}
	return nil
}

func (ns *Namespace) add(f Feature) error {
	label, err := sanitize(ns.policy, f.Label)
	if err != nil {
		return err
	}
	f.Label = label
	ns.features = append(ns.features, f)
	return nil
}

// Render produces the namespace's segment text: the name token (with
// optional ":scale"), each feature as "label[:value]", space-joined, with a
// trailing empty token so the segment ends in a space before the next pipe.
// An anonymous namespace contributes an empty leading token.
//
// Without CacheRender, Render is idempotent and side-effect free. With it,
// the first render freezes the text and later feature additions are
// invisible.
func (ns *Namespace) Render() string {
	if ns.frozen {
		return ns.cached
	}

	tokens := make([]string, 0, len(ns.features)+2)
	head := ns.name
	if head != "" && ns.hasScale {
		head += ":" + formatNumber(ns.scale)
	}
	tokens = append(tokens, head)
	for _, f := range ns.features {
		tokens = append(tokens, f.render())
	}
	tokens = append(tokens, "")
	out := strings.Join(tokens, " ")

	if ns.policy.CacheRender {
		ns.cached = out
		ns.frozen = true
	}
	return out
}
