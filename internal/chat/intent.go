package chat

import (
	"strings"

	"github.com/HendryAvila/plantcare/internal/advisor"
)

// intentRule maps a keyword set to an intent.
type intentRule struct {
	intent   advisor.Intent
	keywords []string
}

// intentTable is evaluated top to bottom; the first rule with a keyword
// contained in the lowercased query wins. French keywords are kept for
// users of the original mobile app.
var intentTable = []intentRule{
	{advisor.IntentStatus, []string{"state", "condition", "how", "état", "etat"}},
	{advisor.IntentWatering, []string{"watering", "water", "arrosage"}},
	{advisor.IntentTemperature, []string{"temperature", "heat", "cold", "température", "chaleur", "froid"}},
	{advisor.IntentHumidity, []string{"humidity", "humidité", "humidite"}},
	{advisor.IntentDiagnostic, []string{"problem", "help", "advice", "problème", "probleme", "aide", "conseil"}},
}

// ResolveIntent classifies a free-text query. No match is IntentFallback.
func ResolveIntent(text string) advisor.Intent {
	q := strings.ToLower(text)
	for _, rule := range intentTable {
		for _, kw := range rule.keywords {
			if strings.Contains(q, kw) {
				return rule.intent
			}
		}
	}
	return advisor.IntentFallback
}
