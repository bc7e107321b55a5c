package agent

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planora/planora/internal/schema"
)

func TestDescriptorsCoverAllKinds(t *testing.T) {
	descs := []Descriptor{
		Weather(""),
		Activities(""),
		Planner(""),
	}

	kinds := make(map[schema.Kind]bool)
	for _, d := range descs {
		kinds[d.Kind] = true
		require.Len(t, d.Card.Skills, 1, "%s card must declare exactly one skill", d.Name)
		assert.NotEmpty(t, d.Card.Skills[0].Examples, "%s skill needs example documents", d.Name)
		assert.True(t, d.Card.Capabilities.Streaming)
		assert.Equal(t, "1.0.0", d.Card.Version)
	}
	for _, k := range schema.Kinds() {
		assert.True(t, kinds[k], "no descriptor for kind %s", k)
	}
}

// Skill examples are part of the caller-facing contract, so every example
// must validate against its agent's request schema.
func TestSkillExamplesValidate(t *testing.T) {
	reg, err := schema.NewRegistry()
	require.NoError(t, err)

	for _, d := range []Descriptor{Weather(""), Activities(""), Planner("")} {
		for i, example := range d.Card.Skills[0].Examples {
			assert.NoError(t, reg.ValidateRequest(d.Kind, []byte(example)),
				"%s example %d does not validate", d.Name, i)
		}
	}
}

func TestCardPublishesPublicURL(t *testing.T) {
	d := Weather("https://agents.example.com/weather")
	raw, err := json.Marshal(d.Card)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "https://agents.example.com/weather", decoded["url"])
	assert.Equal(t, false, decoded["supportsAuthenticatedExtendedCard"])
}
