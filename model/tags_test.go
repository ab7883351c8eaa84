package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTag(t *testing.T) {
	tests := []struct {
		tag     string
		name    string
		key     bool
		skip    bool
		cardMin *int
		cardMax *int
	}{
		{"", "", false, false, nil, nil},
		{"-", "", false, true, nil, nil},
		{"acronym", "acronym", false, false, nil, nil},
		{"acronym,key", "acronym", true, false, nil, nil},
		{"key", "", true, false, nil, nil},
		{"name,card=0..1", "name", false, false, intPtr(0), intPtr(1)},
		{"tags,card=1..", "tags", false, false, intPtr(1), nil},
		{"tags, card=0+", "tags", false, false, intPtr(0), nil},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			ft, err := ParseTag(tt.tag)
			require.NoError(t, err)
			assert.Equal(t, tt.name, ft.Name)
			assert.Equal(t, tt.key, ft.Key)
			assert.Equal(t, tt.skip, ft.Skip)
			assert.Equal(t, tt.cardMin, ft.CardMin)
			assert.Equal(t, tt.cardMax, ft.CardMax)
		})
	}
}

func TestParseTag_Errors(t *testing.T) {
	for _, tag := range []string{
		"name,bogus",
		"name,card=x..1",
		"name,card=1..y",
		"name,card=1",
		"name,card=z+",
	} {
		t.Run(tag, func(t *testing.T) {
			_, err := ParseTag(tag)
			assert.Error(t, err)
		})
	}
}
