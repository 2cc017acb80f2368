package brew

import (
	"fmt"
	"math"
)

// Grinder identifiers. Each model gets a linear microns-per-click
// approximation; real burr geometry is non-linear but this is close enough
// for a starting point.
const (
	GrinderComandanteC40 = "comandante-c40"
	Grinder1ZpressoJX    = "1zpresso-jx"
	GrinderTimemoreC2    = "timemore-c2"
	GrinderBaratzaEncore = "baratza-encore"
)

type grinderModel struct {
	name            string
	micronsPerClick float64
	format          func(clicks int) string
}

func clicksFormat(clicks int) string {
	return fmt.Sprintf("%d clicks", clicks)
}

// The JX dial is read in rotations; one full rotation is 10 clicks.
func rotationsFormat(clicks int) string {
	return fmt.Sprintf("%d.%d rotations", clicks/10, clicks%10)
}

var grinders = map[string]grinderModel{
	GrinderComandanteC40: {name: "Comandante C40", micronsPerClick: 30, format: clicksFormat},
	Grinder1ZpressoJX:    {name: "1Zpresso JX", micronsPerClick: 12.5, format: rotationsFormat},
	GrinderTimemoreC2:    {name: "Timemore C2", micronsPerClick: 15, format: clicksFormat},
	GrinderBaratzaEncore: {name: "Baratza Encore", micronsPerClick: 20, format: clicksFormat},
}

// GrinderIDs returns the known grinder identifiers in a stable order.
func GrinderIDs() []string {
	return []string{GrinderComandanteC40, Grinder1ZpressoJX, GrinderTimemoreC2, GrinderBaratzaEncore}
}

// GrinderName returns the display name for a grinder id, or "" when unknown.
func GrinderName(grinderID string) string {
	return grinders[grinderID].name
}

// ClickSetting converts an absolute grind size in microns to the grinder's
// human-readable setting. Unknown grinder ids yield an empty string rather
// than an error so callers can render unconditionally.
func ClickSetting(grinderID string, microns int) string {
	g, ok := grinders[grinderID]
	if !ok {
		return ""
	}
	clicks := int(math.Round(float64(microns) / g.micronsPerClick))
	return g.format(clicks)
}

// MaxGrindSize is the top of the supported grind range in microns.
const MaxGrindSize = 1400

var grindLabels = []string{
	"Extra Fine",
	"Fine",
	"Medium-Fine",
	"Medium",
	"Medium-Coarse",
	"Coarse",
	"Extra Coarse",
}

// GrindLabels returns the ordered qualitative bucket names, finest first.
func GrindLabels() []string {
	return append([]string(nil), grindLabels...)
}

// GrindLabel buckets a grind size into a qualitative label. The 0..MaxGrindSize
// range is split into equal bands, one per label; the band index is floor
// based, so a value exactly on a boundary lands in the upper band. Values
// outside the range clamp to the nearest bucket.
func GrindLabel(microns int) string {
	bandWidth := MaxGrindSize / len(grindLabels)
	idx := microns / bandWidth
	if idx < 0 {
		idx = 0
	}
	if idx >= len(grindLabels) {
		idx = len(grindLabels) - 1
	}
	return grindLabels[idx]
}
