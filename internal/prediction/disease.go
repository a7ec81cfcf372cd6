package prediction

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"
)

const diseaseModelName = "CropDiseaseDetector_CNN_v1"

type diseaseInfo struct {
	severity int
	urgency  string
}

var diseases = map[string]diseaseInfo{
	"healthy":        {severity: 0, urgency: "none"},
	"leaf_blight":    {severity: 3, urgency: "medium"},
	"powdery_mildew": {severity: 2, urgency: "low"},
	"rust":           {severity: 4, urgency: "high"},
	"bacterial_spot": {severity: 3, urgency: "medium"},
	"mosaic_virus":   {severity: 5, urgency: "critical"},
	"root_rot":       {severity: 4, urgency: "high"},
	"anthracnose":    {severity: 3, urgency: "medium"},
	"downy_mildew":   {severity: 2, urgency: "low"},
	"fusarium_wilt":  {severity: 5, urgency: "critical"},
}

var diseaseTreatments = map[string]string{
	"healthy":        "No treatment needed. Continue regular monitoring.",
	"leaf_blight":    "Apply Mancozeb (2.5g/L) or Copper oxychloride. Remove infected leaves.",
	"powdery_mildew": "Apply Sulfur dust or Karathane spray (2g/L). Improve air circulation.",
	"rust":           "Apply Propiconazole or Tebuconazole (1ml/L). Use resistant varieties next season.",
	"bacterial_spot": "Apply Streptomycin (0.5g/L) + Copper spray. Avoid overhead irrigation.",
	"mosaic_virus":   "Remove infected plants. Control aphid vectors. No cure available.",
	"root_rot":       "Improve drainage. Apply Trichoderma. Avoid overwatering.",
	"anthracnose":    "Apply Carbendazim (1g/L). Remove infected plant parts.",
	"downy_mildew":   "Apply Metalaxyl + Mancozeb. Reduce humidity around plants.",
	"fusarium_wilt":  "Soil solarization. Use resistant varieties. Apply biocontrol agents.",
}

var preventionTips = map[string][]string{
	"healthy":        {"Continue crop rotation", "Monitor regularly", "Maintain plant spacing"},
	"leaf_blight":    {"Use certified seeds", "Crop rotation", "Remove crop debris"},
	"powdery_mildew": {"Ensure air circulation", "Avoid overhead watering", "Plant resistant varieties"},
	"rust":           {"Use resistant varieties", "Apply fungicide preventively", "Remove alternate hosts"},
	"bacterial_spot": {"Use disease-free seeds", "Avoid working with wet plants", "Copper spray prevention"},
	"mosaic_virus":   {"Control aphids", "Use virus-free seeds", "Remove infected plants immediately"},
	"root_rot":       {"Improve drainage", "Avoid overwatering", "Soil solarization"},
	"anthracnose":    {"Remove infected parts", "Avoid overhead irrigation", "Apply fungicide in humid weather"},
	"downy_mildew":   {"Improve ventilation", "Avoid evening irrigation", "Use resistant varieties"},
	"fusarium_wilt":  {"Soil solarization", "Crop rotation (4+ years)", "Use resistant rootstocks"},
}

var severityLabels = []string{"None", "Very Low", "Low", "Medium", "High", "Critical"}

// weightedChoice is a candidate label with its draw probability. Weights for
// each candidate set sum to 1.
type weightedChoice struct {
	label  string
	weight float64
}

// DiseaseDetector classifies crop disease from extracted leaf features and
// environmental conditions. The candidate set depends on the humidity and
// temperature bucket; selection within the set is a weighted random draw.
type DiseaseDetector struct {
	rng *lockedRand
	now func() time.Time
}

// NewDiseaseDetector creates a disease detector. A nil rng is time-seeded.
func NewDiseaseDetector(rng *rand.Rand) *DiseaseDetector {
	return &DiseaseDetector{rng: newLockedRand(rng), now: time.Now}
}

// Detect classifies the disease for the given feature mapping. Low affected
// area together with low spot density short-circuits to healthy.
func (d *DiseaseDetector) Detect(features Features) Result {
	spotDensity := features.Float("spot_density", 0)
	affectedArea := features.Float("affected_area_pct", 0)
	humidity := features.Float("humidity", 60)
	temperature := features.Float("temperature", 25)

	var disease string
	var confidence float64

	if affectedArea < 5 && spotDensity < 0.1 {
		disease = "healthy"
		confidence = 0.92
	} else {
		var candidates []weightedChoice
		switch {
		case humidity > 80 && temperature > 25:
			candidates = []weightedChoice{{"leaf_blight", 0.4}, {"downy_mildew", 0.35}, {"anthracnose", 0.25}}
		case humidity > 70 && temperature < 22:
			candidates = []weightedChoice{{"powdery_mildew", 0.4}, {"rust", 0.35}, {"bacterial_spot", 0.25}}
		case spotDensity > 0.5:
			candidates = []weightedChoice{{"bacterial_spot", 0.4}, {"anthracnose", 0.3}, {"rust", 0.3}}
		default:
			candidates = []weightedChoice{{"leaf_blight", 0.5}, {"mosaic_virus", 0.3}, {"fusarium_wilt", 0.2}}
		}
		disease = d.draw(candidates)
		confidence = math.Min(0.95, 0.75+spotDensity*0.15+affectedArea/100*0.1)
	}

	info := diseases[disease]

	return newResult(titleCase(strings.ReplaceAll(disease, "_", " ")), round2(confidence), map[string]any{
		"disease":               disease,
		"severity":              info.severity,
		"severity_label":        severityLabels[info.severity],
		"urgency":               info.urgency,
		"affected_area_pct":     affectedArea,
		"treatment":             diseaseTreatments[disease],
		"prevention_tips":       diseasePreventionTips(disease),
		"estimated_yield_impact": fmt.Sprintf("-%d%% if untreated", info.severity*8),
	}, diseaseModelName, d.now)
}

// draw picks a label according to the candidates' weights.
func (d *DiseaseDetector) draw(candidates []weightedChoice) string {
	r := d.rng.Float64()
	cumulative := 0.0
	for _, c := range candidates {
		cumulative += c.weight
		if r < cumulative {
			return c.label
		}
	}
	return candidates[len(candidates)-1].label
}

func diseasePreventionTips(disease string) []string {
	if tips, ok := preventionTips[disease]; ok {
		return tips
	}
	return []string{"Monitor regularly", "Maintain good hygiene", "Consult expert"}
}

// titleCase upper-cases the first letter of each space-separated word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
