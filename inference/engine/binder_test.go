package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapBinderCompute(t *testing.T) {
	binder := NewMapBinder()
	binder.Register("Sum", func(args map[string]interface{}) (interface{}, error) {
		return args["a"].(int64) + args["b"].(int64), nil
	})

	result, err := binder.Compute("Sum", map[string]interface{}{"a": int64(2), "b": int64(3)})
	require.NoError(t, err)
	assert.Equal(t, int64(5), result)
}

func TestMapBinderUnsupportedOperation(t *testing.T) {
	binder := NewMapBinder()

	_, err := binder.Compute("Missing", nil)
	assert.ErrorIs(t, err, ErrUnsupportedOperation)
	assert.Contains(t, err.Error(), "Missing")
}

func TestBinderFunction(t *testing.T) {
	binder := NewMapBinder()
	binder.Register("StartsWith", func(args map[string]interface{}) (interface{}, error) {
		s, ok := args["value"].(string)
		if !ok {
			return false, nil
		}
		prefix := args["arg0"].(string)
		return len(s) >= len(prefix) && s[:len(prefix)] == prefix, nil
	})

	fn := BinderFunction(binder, "StartsWith", "Al")
	assert.Equal(t, "StartsWith(Al)", fn.String())
	assert.True(t, fn.Evaluate("Alice"))
	assert.False(t, fn.Evaluate("Bob"))
	assert.False(t, fn.Evaluate(int64(7)))

	// An unregistered operation rejects every candidate instead of failing.
	unknown := BinderFunction(binder, "Nope")
	assert.False(t, unknown.Evaluate("anything"))
}
