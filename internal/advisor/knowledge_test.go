package advisor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKnowledge(t *testing.T) {
	kb := DefaultKnowledge()

	assert.Len(t, kb.Crops, 6)
	assert.Contains(t, kb.Crops, "wheat")
	assert.Contains(t, kb.Crops, "rice")
	assert.Equal(t, "6.0-7.5", kb.Crops["wheat"].PHRange)

	assert.Contains(t, kb.Diseases, "rust")
	assert.Contains(t, kb.Deficiencies, "nitrogen_deficiency")
	assert.Contains(t, kb.Pests, "aphids")
	assert.Contains(t, kb.Irrigation, "drip_irrigation")
	assert.Contains(t, kb.Weather, "frost")
}

func TestLoadKnowledgeFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb.json")
	payload := `{
		"crop_info": {
			"barley": {
				"growing_season": "November to April",
				"optimal_temperature": "12-25°C",
				"water_requirement": "390-430 mm",
				"soil_type": "Loamy",
				"ph_range": "6.5-8.0"
			}
		},
		"weather_advice": {"hail": "Use protective netting"}
	}`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o600))

	kb := LoadKnowledge(path, nil)
	require.Contains(t, kb.Crops, "barley")
	assert.Equal(t, "November to April", kb.Crops["barley"].GrowingSeason)
	assert.Equal(t, "Use protective netting", kb.Weather["hail"])
}

func TestLoadKnowledgeFallsBackOnMissingFile(t *testing.T) {
	kb := LoadKnowledge("/nonexistent/kb.json", nil)
	assert.Contains(t, kb.Crops, "wheat")
}

func TestLoadKnowledgeFallsBackOnMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	kb := LoadKnowledge(path, nil)
	assert.Contains(t, kb.Crops, "wheat")
}

func TestLoadKnowledgeEmptyPathUsesDefault(t *testing.T) {
	kb := LoadKnowledge("", nil)
	assert.Contains(t, kb.Crops, "tomato")
}
