package rod

// Selectors holds the XPath expressions for the elements the search flow
// interacts with. The defaults match the site's explore view; they change
// whenever the site's markup does.
type Selectors struct {
	CookieClose    string
	CachedCity     string
	FromInput      string
	AirportList    string
	AirportOption  string
	Anywhere       string
	SearchButton   string
	ResultsLoaded  string
	LoadMoreButton string
}

// DefaultSelectors returns the selectors for the site's current markup.
func DefaultSelectors() Selectors {
	return Selectors{
		CookieClose:    "//div[@class='dDYU-close dDYU-mod-variant-default dDYU-mod-size-default']",
		CachedCity:     "//div[@class='vvTc-item-button']",
		FromInput:      "//input[@class='k_my-input']",
		AirportList:    "//ul[@class='QHyi QHyi-mod-variant-bordered-first QHyi-pres-padding-default QHyi-mod-alignment-left']",
		AirportOption:  "//div[@class='JyN0-checkbox']",
		Anywhere:       "//button[@class='hpCj hpCj-pres-item-horizon hpCj-clickable hpCj-anywhere']",
		SearchButton:   "//button[@class='Iqt3 Iqt3-mod-bold Button-No-Standard-Style Iqt3-mod-variant-solid Iqt3-mod-theme-progress Iqt3-mod-shape-rounded-small Iqt3-mod-shape-mod-default Iqt3-mod-spacing-default Iqt3-mod-size-large-legacy Iqt3-mod-animation-search']",
		ResultsLoaded:  "//div[@class='_ihz _irp _iqB _ilc _iai']",
		LoadMoreButton: "//button[@class='xzUt xzUt- xzUt- xzUt-mod-bold xzUt-mod-theme-action xzUt-mod-variant-solid xzUt-mod-shape-rounded-small xzUt-mod-shape-mod-default xzUt-mod-spacing-default xzUt-mod-shadow-none xzUt-mod-size-medium Button-No-Standard-Style ']",
	}
}
