package condition_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelrule/engine/internal/condition"
)

type leaf struct {
	Name string `json:"name"`
}

type doc struct {
	Status string `json:"status"`
	Leaf   *leaf  `json:"leaf"`
	Nested *doc   `json:"nested"`
}

func TestLookup(t *testing.T) {
	d := doc{Status: "ready", Leaf: &leaf{Name: "a"}}

	v, ok := condition.Lookup(d, "status")
	require.True(t, ok)
	assert.Equal(t, "ready", v)

	v, ok = condition.Lookup(d, "leaf.name")
	require.True(t, ok)
	assert.Equal(t, "a", v)

	_, ok = condition.Lookup(d, "nested.leaf.name")
	assert.False(t, ok, "nil intermediate pointer must resolve as absent")

	_, ok = condition.Lookup(d, "does_not_exist")
	assert.False(t, ok, "missing field must resolve as absent")
}

func TestFieldCondition(t *testing.T) {
	present := doc{Leaf: &leaf{Name: "a"}}
	absent := doc{}

	isSet := condition.Field("leaf", false)
	isNotSet := condition.Field("leaf", true)

	assert.True(t, isSet.Evaluate(present))
	assert.False(t, isSet.Evaluate(absent))
	assert.False(t, isNotSet.Evaluate(present))
	assert.True(t, isNotSet.Evaluate(absent))

	// A broken intermediate path counts as absent.
	assert.True(t, condition.Field("nested.leaf.name", true).Evaluate(present))
}

func TestValueCondition(t *testing.T) {
	d := doc{Status: "ready"}
	assert.True(t, condition.Value("status", "ready").Evaluate(d))
	assert.False(t, condition.Value("status", "none").Evaluate(d))
	assert.False(t, condition.Value("missing", "x").Evaluate(d))
}

func TestRequireCombinesChildren(t *testing.T) {
	d := doc{Status: "ready", Leaf: &leaf{Name: "a"}}
	all := condition.Require(
		condition.Value("status", "ready"),
		condition.Field("leaf", false),
	)
	assert.True(t, all.Evaluate(d))

	notAll := condition.Require(
		condition.Value("status", "ready"),
		condition.Field("leaf", true),
	)
	assert.False(t, notAll.Evaluate(d))

	nested := condition.Require(all, condition.Value("status", "ready"))
	assert.True(t, nested.Evaluate(d))
}
