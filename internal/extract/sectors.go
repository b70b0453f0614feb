package extract

import "strings"

// sectorKeywords maps each sector tag to the substrings that indicate it.
// Matching is deliberately crude: any keyword appearing anywhere in the
// text tags the sector. Downstream scoring and human review filter further.
var sectorKeywords = []struct {
	Sector   string
	Keywords []string
}{
	{"orphan_care", []string{"orphan", "orphanage", "residential care", "children's home", "foster"}},
	{"child_welfare", []string{"child welfare", "child protection", "vulnerable children", "ovc", "street children"}},
	{"education", []string{"education", "school", "learning", "training", "literacy", "student", "teacher"}},
	{"health", []string{"health", "medical", "hospital", "clinic", "healthcare", "nutrition", "disease"}},
	{"food_security", []string{"food security", "hunger", "malnutrition", "food", "feeding", "meal"}},
	{"water_sanitation", []string{"water", "sanitation", "wash", "hygiene", "toilet"}},
	{"agriculture", []string{"agriculture", "farming", "crop", "livestock", "garden"}},
	{"community_development", []string{"community", "development", "empowerment", "capacity building"}},
	{"psychosocial", []string{"counseling", "mental health", "trauma", "psychosocial", "wellbeing"}},
}

// Sectors classifies text into sector tags. The result is never empty:
// text matching no sector keyword is tagged "general".
func Sectors(text string) []string {
	var sectors []string
	for _, sk := range sectorKeywords {
		for _, kw := range sk.Keywords {
			if strings.Contains(text, kw) {
				sectors = append(sectors, sk.Sector)
				break
			}
		}
	}
	if len(sectors) == 0 {
		return []string{"general"}
	}
	return sectors
}
