package models

// Measurement unit codes for ingredients. The stored value is the code;
// API output and the shopping list use the display label.
var UnitLabels = map[string]string{
	"g":             "g",
	"glass":         "glass",
	"as_your_taste": "to taste",
	"big_spoon":     "tbsp",
	"pc":            "pc",
	"ml":            "ml",
	"little_cpoon":  "tsp",
	"drop":          "drop",
	"asterisk":      "star",
	"pinch":         "pinch",
	"handful":       "handful",
	"piece":         "piece",
	"kg":            "kg",
	"package":       "package",
	"bundle":        "bundle",
	"slice":         "slice",
	"pot":           "jar",
	"packing":       "packing",
	"tooth":         "clove",
	"layer":         "layer",
	"pack":          "pack",
	"carcass":       "carcass",
	"pod":           "pod",
	"twig":          "sprig",
	"bottle":        "bottle",
	"l":             "l",
	"loaf":          "loaf",
	"bag":           "sachet",
	"leaf":          "leaf",
	"stem":          "stem",
}

const DefaultUnit = "g"

func IsValidUnit(code string) bool {
	_, ok := UnitLabels[code]
	return ok
}

// UnitLabel resolves a unit code to its display label. Unknown codes
// fall back to the code itself so stored data always renders.
func UnitLabel(code string) string {
	if label, ok := UnitLabels[code]; ok {
		return label
	}
	return code
}
