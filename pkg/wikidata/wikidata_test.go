package wikidata_test

import (
	"testing"

	"github.com/sib-swiss/wikidata-orthologs-bot/pkg/wikidata"
	"github.com/stretchr/testify/assert"
)

func TestNumericID(t *testing.T) {
	tests := []struct {
		msg string
		qid string
		res int64
	}{
		{"item", "Q14818098", 14818098},
		{"property", "P684", 684},
		{"small", "Q1", 1},
		{"empty", "", 0},
		{"bare prefix", "Q", 0},
		{"no prefix", "14818098", 0},
		{"garbage", "Q14x98", 0},
	}

	for _, v := range tests {
		assert.Equal(t, v.res, wikidata.NumericID(v.qid), v.msg)
	}
}
