// Package registry holds the static catalogue of donor feed sources.
package registry

import (
	"sort"

	"donorscan/internal/model"
)

// List returns all configured feed sources ordered by priority tier,
// highest tier first. Order within a tier is stable across calls.
func List() []model.Source {
	out := make([]model.Source, len(sources))
	copy(out, sources)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority.Rank() < out[j].Priority.Rank()
	})
	return out
}

var sources = []model.Source{
	// Major aggregators.
	{
		Name:     "FundsForNGOs - All Grants",
		URL:      "https://www2.fundsforngos.org/feed/",
		Category: "aggregator",
		Keywords: []string{"tanzania", "east africa", "africa", "children", "orphan", "education"},
		Priority: model.PriorityHigh,
	},
	{
		Name:     "Devex - Funding Opportunities",
		URL:      "https://www.devex.com/news/feed.rss",
		Category: "aggregator",
		Keywords: []string{"tanzania", "east africa", "africa", "children"},
		Priority: model.PriorityHigh,
	},
	{
		Name:     "GrantWatch - Africa",
		URL:      "https://www.grantwatch.com/rss.xml",
		Category: "aggregator",
		Keywords: []string{"africa", "children", "education", "tanzania"},
		Priority: model.PriorityHigh,
	},
	{
		Name:     "Foundation Directory Online",
		URL:      "https://fconline.foundationcenter.org/rss/",
		Category: "aggregator",
		Keywords: []string{"africa", "children", "education"},
		Priority: model.PriorityMedium,
	},

	// Child-focused organizations.
	{
		Name:     "Save the Children International",
		URL:      "https://www.savethechildren.net/rss.xml",
		Category: "children",
		Keywords: []string{"tanzania", "africa", "children", "orphan"},
		Priority: model.PriorityVeryHigh,
	},
	{
		Name:     "UNICEF - East and Southern Africa",
		URL:      "https://www.unicef.org/esa/press-releases/rss.xml",
		Category: "UN",
		Keywords: []string{"tanzania", "east africa", "children", "orphan"},
		Priority: model.PriorityVeryHigh,
	},
	{
		Name:     "World Vision International",
		URL:      "https://www.wvi.org/rss.xml",
		Category: "children",
		Keywords: []string{"tanzania", "africa", "children", "orphan", "vulnerable"},
		Priority: model.PriorityVeryHigh,
	},
	{
		Name:     "ChildFund International",
		URL:      "https://www.childfund.org/feed/",
		Category: "children",
		Keywords: []string{"africa", "children", "education", "tanzania"},
		Priority: model.PriorityVeryHigh,
	},
	{
		Name:     "SOS Children's Villages",
		URL:      "https://www.sos-childrensvillages.org/news/rss",
		Category: "children",
		Keywords: []string{"africa", "children", "orphan", "family care"},
		Priority: model.PriorityVeryHigh,
	},

	// Education.
	{
		Name:     "Global Partnership for Education",
		URL:      "https://www.globalpartnership.org/rss.xml",
		Category: "education",
		Keywords: []string{"tanzania", "africa", "education", "children"},
		Priority: model.PriorityHigh,
	},
	{
		Name:     "Education Cannot Wait",
		URL:      "https://www.educationcannotwait.org/feed/",
		Category: "education",
		Keywords: []string{"africa", "education", "children", "crisis"},
		Priority: model.PriorityHigh,
	},
	{
		Name:     "Room to Read",
		URL:      "https://www.roomtoread.org/feed/",
		Category: "education",
		Keywords: []string{"africa", "education", "children", "literacy"},
		Priority: model.PriorityHigh,
	},
	{
		Name:     "UNESCO Education",
		URL:      "http://www.unevoc.unesco.org/unevoc_rss.xml",
		Category: "UN",
		Keywords: []string{"education", "africa", "children"},
		Priority: model.PriorityMedium,
	},

	// Health and nutrition.
	{
		Name:     "WHO Africa",
		URL:      "https://www.afro.who.int/rss.xml",
		Category: "UN",
		Keywords: []string{"tanzania", "africa", "health", "children"},
		Priority: model.PriorityMedium,
	},
	{
		Name:     "Gavi Alliance (Vaccines)",
		URL:      "https://www.gavi.org/rss.xml",
		Category: "foundation",
		Keywords: []string{"tanzania", "africa", "health", "children"},
		Priority: model.PriorityMedium,
	},
	{
		Name:     "Global Fund",
		URL:      "https://www.theglobalfund.org/data/rss-feeds/updates/",
		Category: "foundation",
		Keywords: []string{"tanzania", "africa", "health"},
		Priority: model.PriorityMedium,
	},
	{
		Name:     "Nutrition International",
		URL:      "https://www.nutritionintl.org/feed/",
		Category: "foundation",
		Keywords: []string{"africa", "nutrition", "children", "tanzania"},
		Priority: model.PriorityMedium,
	},

	// Food security and agriculture.
	{
		Name:     "World Food Programme (WFP)",
		URL:      "https://www.wfp.org/news/rss.xml",
		Category: "UN",
		Keywords: []string{"tanzania", "africa", "food", "children", "nutrition"},
		Priority: model.PriorityHigh,
	},
	{
		Name:     "Food and Agriculture Organization (FAO)",
		URL:      "https://www.fao.org/news/rss/en/",
		Category: "UN",
		Keywords: []string{"tanzania", "africa", "agriculture", "food", "nutrition"},
		Priority: model.PriorityMedium,
	},
	{
		Name:     "CGIAR - Agricultural Research",
		URL:      "https://www.cgiar.org/news/feed/",
		Category: "multilateral",
		Keywords: []string{"tanzania", "africa", "agriculture", "food"},
		Priority: model.PriorityMedium,
	},
	{
		Name:     "Alliance for a Green Revolution in Africa (AGRA)",
		URL:      "https://agra.org/feed/",
		Category: "foundation",
		Keywords: []string{"tanzania", "east africa", "agriculture", "food"},
		Priority: model.PriorityMedium,
	},
	{
		Name:     "International Fund for Agricultural Development (IFAD)",
		URL:      "https://www.ifad.org/en/rss",
		Category: "multilateral",
		Keywords: []string{"tanzania", "africa", "agriculture", "rural"},
		Priority: model.PriorityMedium,
	},

	// Community development.
	{
		Name:     "UNDP Africa",
		URL:      "https://www.undp.org/africa/rss.xml",
		Category: "UN",
		Keywords: []string{"tanzania", "east africa", "africa", "development"},
		Priority: model.PriorityMedium,
	},
	{
		Name:     "UN OCHA East Africa",
		URL:      "https://www.unocha.org/rss/east-and-central-africa.xml",
		Category: "UN",
		Keywords: []string{"tanzania", "east africa", "humanitarian"},
		Priority: model.PriorityMedium,
	},

	// Bilateral donors.
	{
		Name:     "USAID - Business Opportunities",
		URL:      "https://www.usaid.gov/rss/business.xml",
		Category: "bilateral",
		Keywords: []string{"tanzania", "east africa", "africa", "children", "education"},
		Priority: model.PriorityHigh,
	},
	{
		Name:     "UK FCDO - News",
		URL:      "https://www.gov.uk/government/organisations/foreign-commonwealth-development-office.atom",
		Category: "bilateral",
		Keywords: []string{"tanzania", "africa", "development", "children"},
		Priority: model.PriorityMedium,
	},

	// Regional organizations.
	{
		Name:     "African Development Bank",
		URL:      "https://www.afdb.org/en/news-and-events/adf/rss",
		Category: "multilateral",
		Keywords: []string{"tanzania", "east africa", "development"},
		Priority: model.PriorityMedium,
	},
	{
		Name:     "East African Community",
		URL:      "https://www.eac.int/rss",
		Category: "regional",
		Keywords: []string{"tanzania", "east africa"},
		Priority: model.PriorityMedium,
	},

	// General funding and grants.
	{
		Name:     "ReliefWeb - Funding Announcements",
		URL:      "https://reliefweb.int/updates?query=grant+OR+funding&format=rss",
		Category: "aggregator",
		Keywords: []string{"tanzania", "africa", "children", "education"},
		Priority: model.PriorityHigh,
	},
	{
		Name:     "GlobalGiving - Tanzania",
		URL:      "https://www.globalgiving.org/aboutus/media/rss/",
		Category: "platform",
		Keywords: []string{"tanzania", "africa", "children"},
		Priority: model.PriorityHigh,
	},
	{
		Name:     "Humentum",
		URL:      "https://www.humentum.org/feed",
		Category: "aggregator",
		Keywords: []string{"africa", "grant", "funding", "ngo"},
		Priority: model.PriorityMedium,
	},

	// Faith-based organizations.
	{
		Name:     "Catholic Relief Services",
		URL:      "https://www.crs.org/rss.xml",
		Category: "faith_based",
		Keywords: []string{"africa", "tanzania", "children", "community"},
		Priority: model.PriorityHigh,
	},
}
