package advisor

import (
	"encoding/json"
	"os"

	"github.com/agrimind/agri-ai-platform/pkg/logging"
)

// KnowledgeBase is the agronomic reference data the dialogue engine draws
// on. It is loaded once at engine construction and read-only thereafter.
type KnowledgeBase struct {
	Crops        map[string]CropInfo       `json:"crop_info"`
	Diseases     map[string]DiseaseInfo    `json:"disease_treatments"`
	Deficiencies map[string]DeficiencyInfo `json:"fertilizer_guide"`
	Pests        map[string]PestInfo       `json:"pest_control"`
	Irrigation   map[string]IrrigationTip  `json:"irrigation_tips"`
	Weather      map[string]string         `json:"weather_advice"`
}

// CropInfo holds agronomic facts for one crop.
type CropInfo struct {
	GrowingSeason      string   `json:"growing_season"`
	OptimalTemperature string   `json:"optimal_temperature"`
	WaterRequirement   string   `json:"water_requirement"`
	SoilType           string   `json:"soil_type"`
	PHRange            string   `json:"ph_range"`
	MajorDiseases      []string `json:"major_diseases,omitempty"`
	FertilizerNPK      string   `json:"fertilizer_npk,omitempty"`
	YieldPotential     string   `json:"yield_potential,omitempty"`
}

// DiseaseInfo describes symptoms and treatment for one disease.
type DiseaseInfo struct {
	Symptoms   string `json:"symptoms"`
	Prevention string `json:"prevention"`
	Treatment  string `json:"treatment"`
	Dosage     string `json:"dosage"`
}

// DeficiencyInfo maps a nutrient deficiency to its remedy.
type DeficiencyInfo struct {
	Symptoms string `json:"symptoms"`
	Solution string `json:"solution"`
	Timing   string `json:"timing"`
}

// PestInfo describes identification and control methods for one pest.
type PestInfo struct {
	Identification  string `json:"identification"`
	Damage          string `json:"damage"`
	OrganicControl  string `json:"organic_control"`
	ChemicalControl string `json:"chemical_control"`
}

// IrrigationTip describes the traits of one irrigation method.
type IrrigationTip struct {
	Benefits      string `json:"benefits"`
	SuitableCrops string `json:"suitable_crops"`
	Maintenance   string `json:"maintenance,omitempty"`
	Efficiency    string `json:"efficiency,omitempty"`
}

// LoadKnowledge reads a knowledge base from a JSON file. A missing or
// malformed file is not an error; the built-in default is returned instead.
func LoadKnowledge(path string, logger *logging.Logger) *KnowledgeBase {
	if logger == nil {
		logger = logging.Default()
	}
	if path == "" {
		return DefaultKnowledge()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("knowledge base file unavailable, using built-in default", "path", path, "error", err)
		return DefaultKnowledge()
	}

	var kb KnowledgeBase
	if err := json.Unmarshal(data, &kb); err != nil {
		logger.Warn("knowledge base file malformed, using built-in default", "path", path, "error", err)
		return DefaultKnowledge()
	}

	logger.Info("knowledge base loaded", "path", path, "crops", len(kb.Crops))
	return &kb
}

// DefaultKnowledge returns the built-in knowledge base.
func DefaultKnowledge() *KnowledgeBase {
	return &KnowledgeBase{
		Crops: map[string]CropInfo{
			"wheat": {
				GrowingSeason:      "October to April (Rabi)",
				OptimalTemperature: "15-25°C",
				WaterRequirement:   "450-650 mm",
				SoilType:           "Well-drained loamy soil",
				PHRange:            "6.0-7.5",
				MajorDiseases:      []string{"Rust", "Powdery Mildew", "Leaf Blight"},
				FertilizerNPK:      "120:60:40 kg/ha",
				YieldPotential:     "4-6 tons/ha",
			},
			"rice": {
				GrowingSeason:      "June to November (Kharif)",
				OptimalTemperature: "20-35°C",
				WaterRequirement:   "1200-1400 mm",
				SoilType:           "Clay or clay loam",
				PHRange:            "5.5-6.5",
				MajorDiseases:      []string{"Blast", "Bacterial Leaf Blight", "Sheath Rot"},
				FertilizerNPK:      "100:50:50 kg/ha",
				YieldPotential:     "5-8 tons/ha",
			},
			"maize": {
				GrowingSeason:      "June to September",
				OptimalTemperature: "21-30°C",
				WaterRequirement:   "500-800 mm",
				SoilType:           "Well-drained sandy loam",
				PHRange:            "5.8-7.0",
				MajorDiseases:      []string{"Leaf Blight", "Downy Mildew", "Stalk Rot"},
				FertilizerNPK:      "150:75:40 kg/ha",
				YieldPotential:     "6-10 tons/ha",
			},
			"cotton": {
				GrowingSeason:      "April to December",
				OptimalTemperature: "21-30°C",
				WaterRequirement:   "700-1200 mm",
				SoilType:           "Black cotton soil",
				PHRange:            "6.0-8.0",
				MajorDiseases:      []string{"Bacterial Blight", "Fusarium Wilt", "Root Rot"},
				FertilizerNPK:      "80:40:40 kg/ha",
				YieldPotential:     "2-3 tons/ha",
			},
			"tomato": {
				GrowingSeason:      "Year-round (varies by region)",
				OptimalTemperature: "20-27°C",
				WaterRequirement:   "400-600 mm",
				SoilType:           "Well-drained sandy loam",
				PHRange:            "6.0-7.0",
				MajorDiseases:      []string{"Early Blight", "Late Blight", "Mosaic Virus"},
				FertilizerNPK:      "100:50:50 kg/ha",
				YieldPotential:     "30-50 tons/ha",
			},
			"potato": {
				GrowingSeason:      "October to March",
				OptimalTemperature: "15-20°C",
				WaterRequirement:   "500-700 mm",
				SoilType:           "Light sandy loam",
				PHRange:            "5.5-6.5",
				MajorDiseases:      []string{"Late Blight", "Early Blight", "Black Scurf"},
				FertilizerNPK:      "150:100:100 kg/ha",
				YieldPotential:     "25-40 tons/ha",
			},
		},
		Diseases: map[string]DiseaseInfo{
			"rust": {
				Symptoms:   "Orange-brown pustules on leaves",
				Prevention: "Use resistant varieties, proper spacing",
				Treatment:  "Propiconazole or Tebuconazole spray",
				Dosage:     "1ml per liter of water",
			},
			"powdery_mildew": {
				Symptoms:   "White powdery growth on leaves",
				Prevention: "Avoid overhead irrigation, ensure air circulation",
				Treatment:  "Sulfur dust or Karathane spray",
				Dosage:     "2g per liter of water",
			},
			"leaf_blight": {
				Symptoms:   "Brown lesions on leaves",
				Prevention: "Crop rotation, remove infected debris",
				Treatment:  "Mancozeb or Copper oxychloride",
				Dosage:     "2.5g per liter of water",
			},
			"bacterial_blight": {
				Symptoms:   "Water-soaked lesions, wilting",
				Prevention: "Use disease-free seeds, avoid waterlogging",
				Treatment:  "Streptomycin + Copper spray",
				Dosage:     "0.5g + 3g per liter",
			},
		},
		Deficiencies: map[string]DeficiencyInfo{
			"nitrogen_deficiency": {
				Symptoms: "Yellowing of older leaves, stunted growth",
				Solution: "Apply urea (46% N) at 50-100 kg/ha",
				Timing:   "Split application recommended",
			},
			"phosphorus_deficiency": {
				Symptoms: "Purple coloration, poor root development",
				Solution: "Apply DAP or SSP at 50-75 kg/ha",
				Timing:   "At sowing time",
			},
			"potassium_deficiency": {
				Symptoms: "Leaf edge browning, weak stems",
				Solution: "Apply MOP at 40-60 kg/ha",
				Timing:   "At sowing or first irrigation",
			},
		},
		Pests: map[string]PestInfo{
			"aphids": {
				Identification:  "Small soft-bodied insects, often green or black",
				Damage:          "Suck plant sap, transmit viruses",
				OrganicControl:  "Neem oil spray (5ml/L), ladybug release",
				ChemicalControl: "Imidacloprid (0.5ml/L)",
			},
			"whiteflies": {
				Identification:  "Tiny white flying insects",
				Damage:          "Suck sap, transmit viruses, honeydew excretion",
				OrganicControl:  "Yellow sticky traps, neem spray",
				ChemicalControl: "Thiamethoxam (0.3g/L)",
			},
			"caterpillars": {
				Identification:  "Larvae of moths/butterflies",
				Damage:          "Chew leaves and fruits",
				OrganicControl:  "Bt spray, hand picking",
				ChemicalControl: "Chlorantraniliprole (0.3ml/L)",
			},
		},
		Irrigation: map[string]IrrigationTip{
			"drip_irrigation": {
				Benefits:      "50% water savings, precise application",
				SuitableCrops: "Vegetables, fruits, cotton",
				Maintenance:   "Clean filters weekly, check emitters",
			},
			"sprinkler_irrigation": {
				Benefits:      "Uniform distribution, frost protection",
				SuitableCrops: "Field crops, lawns",
				Maintenance:   "Check nozzles, avoid wind drift",
			},
			"flood_irrigation": {
				Benefits:      "Low initial cost, simple operation",
				SuitableCrops: "Rice, sugarcane",
				Efficiency:    "40-50% (improve with laser leveling)",
			},
		},
		Weather: map[string]string{
			"heat_wave":  "Increase irrigation frequency, apply mulch, provide shade for sensitive crops",
			"frost":      "Cover plants, irrigate before frost, use windbreaks",
			"heavy_rain": "Ensure drainage, apply fungicide preventively, stake tall plants",
			"drought":    "Mulching, reduce planting density, use drought-tolerant varieties",
		},
	}
}
