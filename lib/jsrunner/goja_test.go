//go:build !js || !wasm

package jsrunner_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oss.terrastruct.com/boardlogic/lib/jsrunner"
)

func TestGojaRunnerEvaluatesExpressions(t *testing.T) {
	r := jsrunner.NewJSRunner()
	assert.Equal(t, jsrunner.Goja, r.Engine())

	v, err := r.RunString("2 + 3")
	require.NoError(t, err)
	assert.Equal(t, int64(5), v.Export())
}

func TestGojaRunnerSetAndGetGlobal(t *testing.T) {
	r := jsrunner.NewJSRunner()
	require.NoError(t, r.Set("scenarioName", "self-connection"))

	v, err := r.RunString("scenarioName + '-scaled'")
	require.NoError(t, err)
	assert.Equal(t, "self-connection-scaled", v.Export())
}

func TestGojaRunnerMustGetMissingKeyErrors(t *testing.T) {
	r := jsrunner.NewJSRunner()
	_, err := r.MustGet("doesNotExist")
	assert.Error(t, err)
}

func TestGojaRunnerWaitPromiseResolvesImmediately(t *testing.T) {
	r := jsrunner.NewJSRunner()
	v, err := r.RunString("Promise.resolve(42)")
	require.NoError(t, err)

	result, err := r.WaitPromise(context.Background(), v)
	require.NoError(t, err)
	assert.Equal(t, int64(42), result)
}

func TestGojaRunnerGeneratesPointerEventScenario(t *testing.T) {
	r := jsrunner.NewJSRunner()
	v, err := r.RunString(`
		(function() {
			var events = [];
			for (var i = 0; i < 3; i++) {
				events.push({x: i * 10, y: i * 5});
			}
			return JSON.stringify(events);
		})()
	`)
	require.NoError(t, err)
	assert.Contains(t, v.String(), `"x":20`)
}
