package brew

import (
	"math"
	"strconv"
)

// Ratio computes the water-to-coffee brew ratio rounded to one decimal,
// formatted without a trailing zero ("16.7", "16"). A zero or negative
// coffee weight degrades to the sentinel "0" instead of failing; display
// robustness wins over strictness here.
func Ratio(coffeeWeight, totalWaterWeight float64) string {
	if coffeeWeight <= 0 {
		return "0"
	}
	r := math.Round(totalWaterWeight/coffeeWeight*10) / 10
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// RatioLabel renders the ratio in the conventional "1:16.7" form.
func RatioLabel(coffeeWeight, totalWaterWeight float64) string {
	return "1:" + Ratio(coffeeWeight, totalWaterWeight)
}

// TotalTime is the recipe's brew duration: the time of the last pour, or
// "0:00" when there are no pours.
func TotalTime(pours []Pour) string {
	if len(pours) == 0 {
		return "0:00"
	}
	return pours[len(pours)-1].Time
}
