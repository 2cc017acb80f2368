package brew

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestEncodeSlug(t *testing.T) {
	id := "0b39a3b2-6c8e-4f1e-9a5d-2b1f0c8d7e6f"

	assert.Equal(t, "v60-"+id, EncodeSlug("V60", id))
	assert.Equal(t, "kalita-wave-"+id, EncodeSlug("Kalita Wave", id))
	assert.Equal(t, "aeropress-inverted-"+id, EncodeSlug("AeroPress (inverted)", id))
}

func TestSlugRoundTrip(t *testing.T) {
	methods := []string{"V60", "Kalita Wave 185", "Chemex", "origami / flat", ""}
	for _, method := range methods {
		id := uuid.NewString()
		assert.Equal(t, id, DecodeSlug(EncodeSlug(method, id)), "method %q", method)
	}
}

func TestDecodeSlugShortInput(t *testing.T) {
	assert.Equal(t, "v60", DecodeSlug("v60"))
	assert.Equal(t, "", DecodeSlug(""))
	assert.Equal(t, "short-slug", DecodeSlug("short-slug"))
}

func TestDecodeSlugExactLength(t *testing.T) {
	id := uuid.NewString()
	assert.Equal(t, id, DecodeSlug(id))
}
