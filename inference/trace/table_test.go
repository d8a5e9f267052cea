package trace

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/orrollo/NxBRE/inference"
)

func TestFactTable(t *testing.T) {
	facts := []*inference.Atom{
		inference.NewAtom("likes", inference.NewIndividual("Alice"), inference.NewIndividual("Bob")),
		inference.NewAtom("age", inference.NewIndividual("Alice"), inference.NewIndividual(int64(30))),
	}

	out := FactTable(facts)
	assert.Contains(t, out, "signature")
	assert.Contains(t, out, "likes{Alice,Bob}")
	assert.Contains(t, out, "age{Alice,30}")
	assert.Contains(t, out, "_2 facts_")

	// Sorted by signature: age2 before likes2.
	assert.Less(t, strings.Index(out, "age2"), strings.Index(out, "likes2"))
}

func TestFactTableEmpty(t *testing.T) {
	assert.Equal(t, "_Empty working memory_", FactTable(nil))
}
