package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamespaceRender(t *testing.T) {
	tests := []struct {
		name     string
		build    func(t *testing.T) *Namespace
		expected string
	}{
		{
			name: "named with valued features",
			build: func(t *testing.T) *Namespace {
				ns, err := NewNamespace("MetricFeatures", FV("height", 1.5), FV("length", 2.0))
				require.NoError(t, err)
				return ns
			},
			expected: "MetricFeatures height:1.5 length:2.0 ",
		},
		{
			name: "named with scale",
			build: func(t *testing.T) *Namespace {
				ns, err := NewNamespace("MetricFeatures", FV("height", 1.5))
				require.NoError(t, err)
				return ns.SetScale(3.28)
			},
			expected: "MetricFeatures:3.28 height:1.5 ",
		},
		{
			name: "anonymous namespace leads with empty token",
			build: func(t *testing.T) *Namespace {
				ns, err := NewNamespace("", F("fuzzy"), FV("x", 2.0))
				require.NoError(t, err)
				return ns
			},
			expected: " fuzzy x:2.0 ",
		},
		{
			name: "bare features render without values",
			build: func(t *testing.T) *Namespace {
				ns, err := NewNamespace("Tags", F("red"), F("tall"))
				require.NoError(t, err)
				return ns
			},
			expected: "Tags red tall ",
		},
		{
			name: "zero-valued feature keeps its value",
			build: func(t *testing.T) *Namespace {
				ns, err := NewNamespace("N", FV("off", 0))
				require.NoError(t, err)
				return ns
			},
			expected: "N off:0.0 ",
		},
		{
			name: "empty namespace is just the separator tokens",
			build: func(t *testing.T) *Namespace {
				ns, err := NewNamespace("")
				require.NoError(t, err)
				return ns
			},
			expected: " ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.build(t).Render())
		})
	}
}

func TestNamespaceEscapesNameAndLabels(t *testing.T) {
	ns, err := NewNamespace("My Metrics", FV("New York", 1.0))
	require.NoError(t, err)
	assert.Equal(t, `My\_Metrics New\_York:1.0 `, ns.Render())
}

func TestNamespaceValidateMode(t *testing.T) {
	policy := Policy{Validate: true}

	_, err := NewNamespaceWith(policy, "bad name")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidCharacter)

	ns, err := NewNamespaceWith(policy, "good")
	require.NoError(t, err)

	// Rejection happens at construction time, not render time.
	err = ns.AddFeature("label|pipe", 1.0)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidCharacter)
	assert.Equal(t, 0, ns.Len())

	require.NoError(t, ns.AddBareFeature("fine"))
	assert.Equal(t, "good fine ", ns.Render())
}

func TestEscapeSupersedesValidate(t *testing.T) {
	// Both flags on: escaping wins, nothing is rejected.
	ns, err := NewNamespaceWith(Policy{Escape: true, Validate: true}, "a b", F("c:d"))
	require.NoError(t, err)
	assert.Equal(t, `a\_b c\;d `, ns.Render())
}

func TestNamespaceNoPolicyPassesThrough(t *testing.T) {
	// Neither escaping nor validation: caller owns protocol safety.
	ns, err := NewNamespaceWith(Policy{}, "raw name")
	require.NoError(t, err)
	assert.Equal(t, "raw name ", ns.Render())
}

func TestRenderIdempotentWithoutCache(t *testing.T) {
	ns, err := NewNamespace("A", FV("x", 2.0))
	require.NoError(t, err)

	first := ns.Render()
	assert.Equal(t, first, ns.Render())

	require.NoError(t, ns.AddBareFeature("y"))
	assert.Equal(t, "A x:2.0 y ", ns.Render(), "uncached render must see new features")
}

func TestCacheRenderFreezesFirstRender(t *testing.T) {
	policy := DefaultPolicy()
	policy.CacheRender = true

	ns, err := NewNamespaceWith(policy, "A", FV("x", 2.0))
	require.NoError(t, err)

	first := ns.Render()
	require.NoError(t, ns.AddBareFeature("y"))
	second := ns.Render()

	assert.Equal(t, first, second, "feature added between renders must be invisible")
	assert.Equal(t, "A x:2.0 ", second)
}

func TestCacheRenderNotFrozenBeforeFirstRender(t *testing.T) {
	policy := DefaultPolicy()
	policy.CacheRender = true

	ns, err := NewNamespaceWith(policy, "A")
	require.NoError(t, err)
	require.NoError(t, ns.AddBareFeature("late"))

	assert.Equal(t, "A late ", ns.Render())
}
