package openfoodfacts

import "fmt"

// AttributionInfo credits the product database. Its data is ODbL licensed and
// must be attributed wherever results are shown.
type AttributionInfo struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Website      string `json:"website"`
	Contribute   string `json:"contribute"`
	License      string `json:"license"`
	Products     string `json:"products"`
	Countries    string `json:"countries"`
	Contributors string `json:"contributors"`
}

// Attribution is the credit shown alongside product results.
var Attribution = AttributionInfo{
	Name:         "Open Food Facts",
	Description:  "Free, open, collaborative database of food products from around the world",
	Website:      "https://world.openfoodfacts.org",
	Contribute:   "https://github.com/openfoodfacts",
	License:      "Open Database License (ODbL)",
	Products:     "3,000,000+",
	Countries:    "180+",
	Contributors: "50,000+",
}

// Text renders the attribution for display.
func (a AttributionInfo) Text() string {
	return fmt.Sprintf("Powered by %s\n\n%s\n\n• %s products\n• %s countries\n• %s contributors\n\nLicense: %s\n\nLearn more: %s\nContribute: %s\n",
		a.Name, a.Description, a.Products, a.Countries, a.Contributors, a.License, a.Website, a.Contribute)
}
