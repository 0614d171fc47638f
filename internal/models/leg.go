package models

type LegType struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	IconURL       string     `json:"iconSvgUrl,omitempty"`
	AllowedColors []LegColor `json:"allowedColors"`
}

type LegColor struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Code       string  `json:"code"`
	Hex        string  `json:"hex,omitempty"`
	PriceDelta float64 `json:"priceDelta"`
}

// LegConfig is one row of a variant's leg options.
type LegConfig struct {
	LegTypeID  string   `json:"legTypeId"`
	ColorID    string   `json:"colorId"`
	DeltaPrice *float64 `json:"deltaPrice,omitempty"`
	IsDefault  bool     `json:"isDefault,omitempty"`
}

// LegCatalog is the full set of leg types and colors offered.
type LegCatalog struct {
	Types  []LegType  `json:"types"`
	Colors []LegColor `json:"colors"`
}
