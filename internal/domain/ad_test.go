package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAd_HighlightsSkipsEmptyRows(t *testing.T) {
	ad := Ad{
		Image1:   "https://cdn.test/1.jpg",
		Heading1: "Beach games",
		Heading3: "Sunset cruise",
	}

	rows := ad.Highlights()
	require.Len(t, rows, 2)
	assert.Equal(t, "Beach games", rows[0].Heading)
	assert.Equal(t, "Sunset cruise", rows[1].Heading)
}

func TestAd_TitleAndRank(t *testing.T) {
	ad := Ad{Name: "Goa"}
	assert.Equal(t, "Goa", ad.Title())
	assert.Equal(t, 0, ad.Rank())

	p := 7
	ad.Heading = "Goa by the sea"
	ad.Priority = &p
	assert.Equal(t, "Goa by the sea", ad.Title())
	assert.Equal(t, 7, ad.Rank())
}

func TestText_Scan(t *testing.T) {
	var txt Text
	require.NoError(t, txt.Scan(nil))
	assert.Equal(t, Text(""), txt)

	require.NoError(t, txt.Scan([]byte("north")))
	assert.Equal(t, "north", txt.String())

	assert.Error(t, txt.Scan(42))
}
