package advisor

import (
	"fmt"
	"sort"
	"strings"
)

// knownCrops is the fixed list used for crop-name extraction, shared across
// builders. First substring match wins.
var knownCrops = []string{"wheat", "rice", "maize", "cotton", "tomato", "potato", "soybean", "sugarcane", "onion"}

// extractCrop returns the first known crop mentioned in the message, or "".
func extractCrop(message string) string {
	message = strings.ToLower(message)
	for _, crop := range knownCrops {
		if strings.Contains(message, crop) {
			return crop
		}
	}
	return ""
}

var greetingVariants = []string{
	"Hello! I'm AgriBot, your agricultural assistant. How can I help you today?",
	"Namaste! Welcome to AgriBot. I can help you with crop information, disease identification, fertilizer recommendations, and more. What would you like to know?",
	"Hi there! I'm here to help with all your farming questions. Ask me about crops, pests, irrigation, or anything agriculture-related!",
}

var thanksVariants = []string{
	"You're welcome! Feel free to ask if you have more questions. Happy farming!",
	"Glad I could help! Best wishes for a great harvest!",
	"My pleasure! Don't hesitate to return for more agricultural guidance.",
}

var goodbyeVariants = []string{
	"Goodbye! Wishing you a bountiful harvest!",
	"Take care! Visit again for agricultural advice. Happy farming!",
	"See you soon! May your fields flourish!",
}

// buildResponse dispatches the resolved intent to its builder.
func (e *Engine) buildResponse(intent Intent, message string) string {
	switch intent {
	case IntentGreeting:
		return e.pick(greetingVariants)
	case IntentCropInfo:
		return e.buildCropInfo(message)
	case IntentDisease:
		return e.buildDisease(message)
	case IntentFertilizer:
		return e.buildFertilizer(message)
	case IntentPest:
		return e.buildPest(message)
	case IntentIrrigation:
		return e.buildIrrigation(message)
	case IntentWeather:
		return e.buildWeather(message)
	case IntentPrice:
		return e.buildPrice(message)
	case IntentSeason:
		return e.buildSeason(message)
	case IntentSoil:
		return e.buildSoil(message)
	case IntentYield:
		return e.buildYield(message)
	case IntentOrganic:
		return e.buildOrganic()
	case IntentHelp:
		return buildHelp()
	case IntentThanks:
		return e.pick(thanksVariants)
	case IntentGoodbye:
		return e.pick(goodbyeVariants)
	default:
		return buildGeneral(message)
	}
}

// pick chooses a random variant.
func (e *Engine) pick(variants []string) string {
	return variants[e.rng.Intn(len(variants))]
}

func (e *Engine) buildCropInfo(message string) string {
	crop := extractCrop(message)
	if crop == "" {
		return "Which crop would you like to know about? I can provide information on wheat, rice, maize, cotton, tomato, potato, and more."
	}

	info, ok := e.kb.Crops[crop]
	if !ok {
		return fmt.Sprintf("I have basic information about %s. For detailed guidance, please consult your local agricultural extension office or use our Crop Yield Predictor tool.", crop)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s Growing Guide:\n\n", titleWord(crop))
	fmt.Fprintf(&b, "Season: %s\n", orDefault(info.GrowingSeason, "Varies by region"))
	fmt.Fprintf(&b, "Temperature: %s\n", orDefault(info.OptimalTemperature, "20-30°C"))
	fmt.Fprintf(&b, "Water Requirement: %s\n", orDefault(info.WaterRequirement, "500-800mm"))
	fmt.Fprintf(&b, "Soil Type: %s\n", orDefault(info.SoilType, "Well-drained loamy soil"))
	fmt.Fprintf(&b, "pH Range: %s\n", orDefault(info.PHRange, "6.0-7.0"))

	if len(info.MajorDiseases) > 0 {
		fmt.Fprintf(&b, "\nCommon Diseases: %s\n", strings.Join(info.MajorDiseases, ", "))
	}
	if info.FertilizerNPK != "" {
		fmt.Fprintf(&b, "Recommended NPK: %s\n", info.FertilizerNPK)
	}
	if info.YieldPotential != "" {
		fmt.Fprintf(&b, "Yield Potential: %s\n", info.YieldPotential)
	}
	return b.String()
}

// symptomAdvice maps symptom keywords to first-line guidance, checked
// independently so several can apply to one message.
var symptomAdvice = []struct {
	keyword string
	advice  string
}{
	{"yellow", "Yellow leaves may indicate nitrogen deficiency or viral infection."},
	{"brown", "Brown spots often indicate fungal diseases like leaf blight."},
	{"spots", "Spots on leaves could be bacterial or fungal infections."},
	{"wilting", "Wilting may indicate root rot, fusarium wilt, or water stress."},
	{"powder", "White powdery coating suggests powdery mildew infection."},
}

func (e *Engine) buildDisease(message string) string {
	var b strings.Builder
	b.WriteString("Crop Disease Guidance:\n\n")

	lower := strings.ToLower(message)
	var found []string
	for _, s := range symptomAdvice {
		if strings.Contains(lower, s.keyword) {
			found = append(found, fmt.Sprintf("- %s leaves: %s", titleWord(s.keyword), s.advice))
		}
	}

	if len(found) > 0 {
		b.WriteString("Based on your description:\n")
		b.WriteString(strings.Join(found, "\n"))
		b.WriteString("\n\nRecommendations:\n")
		b.WriteString("1. Take clear photos of affected plants\n")
		b.WriteString("2. Use our Disease Detection tool for AI-based diagnosis\n")
		b.WriteString("3. Isolate severely affected plants\n")
		b.WriteString("4. Avoid overhead irrigation\n")
		return b.String()
	}

	// Known disease named directly in the message. Keys are scanned in
	// sorted order so a message naming several diseases always resolves
	// to the same one.
	for _, name := range sortedKeys(e.kb.Diseases) {
		info := e.kb.Diseases[name]
		if strings.Contains(lower, strings.ReplaceAll(name, "_", " ")) {
			fmt.Fprintf(&b, "%s:\n", titleWord(strings.ReplaceAll(name, "_", " ")))
			fmt.Fprintf(&b, "Symptoms: %s\n", info.Symptoms)
			fmt.Fprintf(&b, "Prevention: %s\n", info.Prevention)
			fmt.Fprintf(&b, "Treatment: %s (%s)\n", info.Treatment, info.Dosage)
			return b.String()
		}
	}

	b.WriteString("To help identify the disease, please describe:\n")
	b.WriteString("- What symptoms do you see? (spots, wilting, color changes)\n")
	b.WriteString("- Which crop is affected?\n")
	b.WriteString("- How long have you noticed this?\n\n")
	b.WriteString("Tip: Use our Disease Detection feature to upload a photo for instant AI diagnosis!")
	return b.String()
}

func (e *Engine) buildFertilizer(message string) string {
	var b strings.Builder
	b.WriteString("Fertilizer Guidance:\n\n")

	lower := strings.ToLower(message)

	// Each nutrient section is triggered independently and concatenated.
	nutrients := []struct {
		keywords   []string
		deficiency string
		label      string
	}{
		{[]string{"nitrogen", "yellow"}, "nitrogen_deficiency", "Nitrogen Deficiency"},
		{[]string{"phosphorus", "purple"}, "phosphorus_deficiency", "Phosphorus Deficiency"},
		{[]string{"potassium", "edge"}, "potassium_deficiency", "Potassium Deficiency"},
	}
	for _, n := range nutrients {
		if !containsAny(lower, n.keywords) {
			continue
		}
		info, ok := e.kb.Deficiencies[n.deficiency]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "%s:\n", n.label)
		fmt.Fprintf(&b, "- Symptoms: %s\n", info.Symptoms)
		fmt.Fprintf(&b, "- Solution: %s\n", info.Solution)
		fmt.Fprintf(&b, "- Timing: %s\n\n", info.Timing)
	}

	if crop := extractCrop(message); crop != "" {
		if info, ok := e.kb.Crops[crop]; ok && info.FertilizerNPK != "" {
			fmt.Fprintf(&b, "Recommended NPK for %s: %s\n\n", titleWord(crop), info.FertilizerNPK)
		}
	}

	// A short reply so far means no deficiency section matched; a bare crop
	// NPK line still gets the general primer appended.
	if b.Len() < 100 {
		b.WriteString("General NPK Guidelines:\n")
		b.WriteString("- N (Nitrogen): For leafy growth\n")
		b.WriteString("- P (Phosphorus): For roots and flowers\n")
		b.WriteString("- K (Potassium): For overall plant health\n\n")
		b.WriteString("Tell me your crop and I'll provide specific recommendations!")
	}
	return b.String()
}

func (e *Engine) buildPest(message string) string {
	var b strings.Builder
	b.WriteString("Pest Control Guidance:\n\n")

	lower := strings.ToLower(message)
	for _, name := range sortedKeys(e.kb.Pests) {
		info := e.kb.Pests[name]
		// Singular keyword matches the plural KB key ("aphid" -> "aphids").
		if strings.Contains(lower, strings.TrimSuffix(name, "s")) {
			fmt.Fprintf(&b, "%s Control:\n\n", titleWord(name))
			fmt.Fprintf(&b, "Identification: %s\n", info.Identification)
			fmt.Fprintf(&b, "Damage: %s\n", info.Damage)
			fmt.Fprintf(&b, "Organic Control: %s\n", info.OrganicControl)
			fmt.Fprintf(&b, "Chemical Control: %s\n\n", info.ChemicalControl)
			b.WriteString("Prevention Tips:\n")
			b.WriteString("- Regular monitoring of crops\n")
			b.WriteString("- Maintain field hygiene\n")
			b.WriteString("- Use resistant varieties\n")
			return b.String()
		}
	}

	b.WriteString("Common pests and quick solutions:\n\n")
	b.WriteString("Aphids: Neem oil spray (5ml/L)\n")
	b.WriteString("Caterpillars: Bt spray or hand picking\n")
	b.WriteString("Whiteflies: Yellow sticky traps\n")
	b.WriteString("Mites: Increase humidity, apply miticide\n\n")
	b.WriteString("Tell me which pest you're dealing with for specific advice!")
	return b.String()
}

// cropWaterGuide holds total-season water guidance per crop for the
// irrigation builder.
var cropWaterGuide = map[string][3]string{
	"rice":   {"High", "1200-1400mm", "Standing water for most of growth"},
	"wheat":  {"Medium", "450-650mm", "4-6 irrigations at critical stages"},
	"maize":  {"Medium", "500-800mm", "Critical at tasseling and grain filling"},
	"cotton": {"Medium-High", "700-1200mm", "Avoid water stress at flowering"},
	"tomato": {"Medium", "400-600mm", "Regular watering, avoid waterlogging"},
	"potato": {"Medium", "500-700mm", "Keep soil consistently moist"},
}

func (e *Engine) buildIrrigation(message string) string {
	var b strings.Builder
	b.WriteString("Irrigation Guidance:\n\n")

	if crop := extractCrop(message); crop != "" {
		if guide, ok := cropWaterGuide[crop]; ok {
			fmt.Fprintf(&b, "%s Water Requirements:\n", titleWord(crop))
			fmt.Fprintf(&b, "- Water Need: %s\n", guide[0])
			fmt.Fprintf(&b, "- Total Requirement: %s\n", guide[1])
			fmt.Fprintf(&b, "- Tip: %s\n\n", guide[2])
		}
	}

	b.WriteString("Irrigation Methods Comparison:\n\n")
	for _, name := range sortedKeys(e.kb.Irrigation) {
		tip := e.kb.Irrigation[name]
		fmt.Fprintf(&b, "%s:\n", titleWord(strings.ReplaceAll(name, "_", " ")))
		fmt.Fprintf(&b, "- Benefits: %s\n", tip.Benefits)
		fmt.Fprintf(&b, "- Best for: %s\n\n", tip.SuitableCrops)
	}

	b.WriteString("Tip: Use our Smart Irrigation tool for real-time recommendations!")
	return b.String()
}

func (e *Engine) buildWeather(message string) string {
	var b strings.Builder
	b.WriteString("Weather Advisory:\n\n")
	start := b.Len()

	lower := strings.ToLower(message)
	if containsAny(lower, []string{"rain", "monsoon"}) {
		b.WriteString("Rainy Season Tips:\n")
		b.WriteString("- " + orDefault(e.kb.Weather["heavy_rain"], "Ensure proper field drainage") + "\n")
		b.WriteString("- Harvest mature crops before heavy rain\n\n")
	}
	if containsAny(lower, []string{"heat", "hot", "drought"}) {
		b.WriteString("Heat Protection:\n")
		b.WriteString("- " + orDefault(e.kb.Weather["heat_wave"], "Increase irrigation frequency and apply mulch") + "\n")
		b.WriteString("- Irrigate during cooler hours\n\n")
	}
	if containsAny(lower, []string{"frost", "cold"}) {
		b.WriteString("Frost Protection:\n")
		b.WriteString("- " + orDefault(e.kb.Weather["frost"], "Cover plants and irrigate before frost") + "\n")
		b.WriteString("- Harvest sensitive crops\n\n")
	}

	if b.Len() == start {
		b.WriteString("Weather affects farming in many ways. What specific weather concern do you have?\n")
		b.WriteString("- Heavy rain / monsoon\n")
		b.WriteString("- Heat wave / drought\n")
		b.WriteString("- Frost / cold\n")
		b.WriteString("- Wind / storms")
	}
	return b.String()
}

func (e *Engine) buildPrice(message string) string {
	var b strings.Builder
	b.WriteString("Market Price Guidance:\n\n")

	if crop := extractCrop(message); crop != "" {
		fmt.Fprintf(&b, "For current %s rates, check your nearest mandi or the e-NAM portal; prices vary by region and grade.\n\n", titleWord(crop))
	}

	b.WriteString("Selling Tips:\n")
	b.WriteString("- Compare rates across nearby mandis before selling\n")
	b.WriteString("- Grade and clean your produce for better prices\n")
	b.WriteString("- Avoid distress selling right after harvest when supply peaks\n\n")
	b.WriteString("Tip: Use our Price Predictor tool for a short-term price outlook!")
	return b.String()
}

func (e *Engine) buildSeason(message string) string {
	var b strings.Builder
	b.WriteString("Sowing Season Guide:\n\n")

	if crop := extractCrop(message); crop != "" {
		if info, ok := e.kb.Crops[crop]; ok && info.GrowingSeason != "" {
			fmt.Fprintf(&b, "%s: %s\n\n", titleWord(crop), info.GrowingSeason)
		}
	}

	b.WriteString("Kharif (monsoon) crops: sown June-July, harvested September-October. Examples: rice, maize, cotton.\n")
	b.WriteString("Rabi (winter) crops: sown October-November, harvested March-April. Examples: wheat, mustard, potato.\n")
	b.WriteString("Zaid (summer) crops: sown March-June between the main seasons. Examples: vegetables, melons.\n")
	return b.String()
}

func (e *Engine) buildSoil(message string) string {
	var b strings.Builder
	b.WriteString("Soil Health Guidance:\n\n")

	lower := strings.ToLower(message)
	if strings.Contains(lower, "acidic") {
		b.WriteString("Acidic soil (pH below 6.0): apply agricultural lime to raise pH; most crops prefer 6.0-7.0.\n\n")
	}
	if strings.Contains(lower, "alkaline") {
		b.WriteString("Alkaline soil (pH above 7.5): add elemental sulfur, gypsum, or organic matter to lower pH.\n\n")
	}

	if crop := extractCrop(message); crop != "" {
		if info, ok := e.kb.Crops[crop]; ok {
			fmt.Fprintf(&b, "%s prefers %s with pH %s.\n\n", titleWord(crop),
				strings.ToLower(orDefault(info.SoilType, "well-drained loamy soil")),
				orDefault(info.PHRange, "6.0-7.0"))
		}
	}

	b.WriteString("General Tips:\n")
	b.WriteString("- Test soil every 2-3 years for pH and NPK levels\n")
	b.WriteString("- Add organic matter (compost, FYM) to improve structure\n")
	b.WriteString("- Avoid working waterlogged soil to prevent compaction\n")
	return b.String()
}

func (e *Engine) buildYield(message string) string {
	var b strings.Builder
	b.WriteString("Yield Improvement Guidance:\n\n")

	if crop := extractCrop(message); crop != "" {
		if info, ok := e.kb.Crops[crop]; ok && info.YieldPotential != "" {
			fmt.Fprintf(&b, "%s yield potential: %s under good management.\n\n", titleWord(crop), info.YieldPotential)
		}
	}

	b.WriteString("Key factors that drive yield:\n")
	b.WriteString("- Timely sowing within the crop's season window\n")
	b.WriteString("- Balanced NPK application based on soil testing\n")
	b.WriteString("- Irrigation at critical growth stages\n")
	b.WriteString("- Early pest and disease control\n\n")
	b.WriteString("Tip: Use our Crop Yield Predictor for an estimate tailored to your conditions!")
	return b.String()
}

func (e *Engine) buildOrganic() string {
	var b strings.Builder
	b.WriteString("Organic Farming Guidance:\n\n")
	b.WriteString("Nutrients: compost, farmyard manure, vermicompost, and green manuring replace synthetic NPK.\n")
	b.WriteString("Pest control: neem oil spray (5ml/L), Bt spray for caterpillars, sticky traps, and beneficial insects like ladybugs.\n")
	b.WriteString("Disease control: Trichoderma soil treatment, copper-based sprays (permitted), and resistant varieties.\n")
	b.WriteString("Soil health: crop rotation with legumes, mulching, and minimal tillage.\n\n")
	b.WriteString("Certification takes 2-3 transition years; contact your regional organic certification body to begin.")
	return b.String()
}

func buildHelp() string {
	return `AgriBot Help Menu:

I can assist you with:

Crop Information
Ask: "How to grow wheat?" or "Tell me about rice cultivation"

Disease Identification
Ask: "My tomato leaves have spots" or "Yellow leaves on my crop"

Fertilizer Guidance
Ask: "What fertilizer for wheat?" or "Nitrogen deficiency symptoms"

Pest Control
Ask: "How to control aphids?" or "Caterpillar in my field"

Irrigation
Ask: "Water requirement for rice" or "Best irrigation method"

Weather Advice
Ask: "How to protect from frost?" or "Monsoon farming tips"

Market Prices
Ask: "Wheat price today" or "Best time to sell rice"

Tips:
- Be specific about your crop
- Describe symptoms clearly
- Mention your region if relevant

Type your question to get started!`
}

func buildGeneral(message string) string {
	return fmt.Sprintf(`I understand you're asking about: %q

I'm specialized in agricultural topics. I can help with:

- Crop cultivation and care
- Disease identification and treatment
- Fertilizer recommendations
- Pest control
- Irrigation guidance
- Weather advisories
- Market information

Could you rephrase your question or ask about one of these topics?

Type "help" to see all my capabilities!`, message)
}

// sortedKeys returns the map's keys in sorted order. Map iteration order is
// random in Go, and replies must be stable for a given message.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// titleWord upper-cases the first letter of each word.
func titleWord(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
