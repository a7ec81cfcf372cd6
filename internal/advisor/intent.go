package advisor

import (
	"context"
	"regexp"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var intentTracer = otel.Tracer("agrimind/intent-classifier")

// Intent is a coarse classification of a chat message's topic, used to
// select a response builder.
type Intent string

const (
	IntentGreeting   Intent = "greeting"
	IntentCropInfo   Intent = "crop_info"
	IntentDisease    Intent = "disease"
	IntentFertilizer Intent = "fertilizer"
	IntentPest       Intent = "pest"
	IntentIrrigation Intent = "irrigation"
	IntentWeather    Intent = "weather"
	IntentPrice      Intent = "price"
	IntentSeason     Intent = "season"
	IntentSoil       Intent = "soil"
	IntentYield      Intent = "yield"
	IntentOrganic    Intent = "organic"
	IntentHelp       Intent = "help"
	IntentThanks     Intent = "thanks"
	IntentGoodbye    Intent = "goodbye"
	IntentGeneral    Intent = "general"
)

// Classification confidence: fixed for a pattern match, lower for the
// general fallback.
const (
	matchConfidence    = 0.85
	fallbackConfidence = 0.5
)

type intentPattern struct {
	intent Intent
	regex  *regexp.Regexp
}

// intentPatterns is evaluated in declaration order and the first match wins.
// The order is a contract: a message matching several patterns resolves to
// the earliest one, so later patterns are unreachable for that text.
var intentPatterns = []intentPattern{
	{IntentGreeting, regexp.MustCompile(`(?i)\b(hello|hi|hey|good morning|good evening|namaste)\b`)},
	{IntentCropInfo, regexp.MustCompile(`(?i)\b(grow|plant|cultivate|crop|farming)\b.*\b(wheat|rice|maize|cotton|tomato|potato|soybean)\b`)},
	{IntentDisease, regexp.MustCompile(`(?i)\b(disease|infection|sick|yellow|brown|spots|wilting|dying)\b`)},
	{IntentFertilizer, regexp.MustCompile(`(?i)\b(fertilizer|npk|nitrogen|phosphorus|potassium|nutrient|deficiency)\b`)},
	{IntentPest, regexp.MustCompile(`(?i)\b(pest|insect|bug|aphid|caterpillar|worm|beetle|mite)\b`)},
	{IntentIrrigation, regexp.MustCompile(`(?i)\b(water|irrigation|irrigate|watering|moisture|dry|wet)\b`)},
	{IntentWeather, regexp.MustCompile(`(?i)\b(weather|rain|temperature|frost|heat|cold|monsoon)\b`)},
	{IntentPrice, regexp.MustCompile(`(?i)\b(price|market|sell|rate|mandi|cost)\b`)},
	{IntentSeason, regexp.MustCompile(`(?i)\b(season|when to plant|sowing time|harvest time|kharif|rabi)\b`)},
	{IntentSoil, regexp.MustCompile(`(?i)\b(soil|ph|acidic|alkaline|clay|sandy|loamy)\b`)},
	{IntentYield, regexp.MustCompile(`(?i)\b(yield|production|output|harvest|tons|quintals)\b`)},
	{IntentOrganic, regexp.MustCompile(`(?i)\b(organic|natural|chemical-free|bio|compost)\b`)},
	{IntentHelp, regexp.MustCompile(`(?i)\b(help|what can you do|options|commands)\b`)},
	{IntentThanks, regexp.MustCompile(`(?i)\b(thank|thanks|thankyou|appreciate)\b`)},
	{IntentGoodbye, regexp.MustCompile(`(?i)\b(bye|goodbye|see you|quit|exit)\b`)},
}

// IntentClassifier resolves a chat message to an intent by scanning the
// ordered pattern table.
type IntentClassifier struct {
	patterns []intentPattern
}

// NewIntentClassifier creates a classifier over the built-in pattern table.
func NewIntentClassifier() *IntentClassifier {
	return &IntentClassifier{patterns: intentPatterns}
}

// Classify returns the first matching intent and its confidence. Messages
// matching no pattern resolve to the general fallback.
func (c *IntentClassifier) Classify(ctx context.Context, message string) (Intent, float64) {
	_, span := intentTracer.Start(ctx, "intent.classify")
	defer span.End()

	message = strings.ToLower(message)
	for _, p := range c.patterns {
		if p.regex.MatchString(message) {
			span.SetAttributes(
				attribute.String("intent", string(p.intent)),
				attribute.Float64("confidence", matchConfidence),
			)
			return p.intent, matchConfidence
		}
	}

	span.SetAttributes(attribute.String("intent", string(IntentGeneral)))
	return IntentGeneral, fallbackConfidence
}
