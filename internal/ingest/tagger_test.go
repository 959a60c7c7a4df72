package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var testVocabulary = []string{
	"hadron", "quark", "pion", "kaon", "proton", "decay", "qcd",
	"form factor", "drell-yan",
}

func TestTaggerMatchesTermsInTitleAndAbstract(t *testing.T) {
	tagger := NewTagger(testVocabulary)

	tags := tagger.Match(
		"New measurement of pion decay",
		"We study kaon and pion interactions at threshold.",
	)

	assert.Contains(t, tags, "pion")
	assert.Contains(t, tags, "decay")
	assert.Contains(t, tags, "kaon")
	assert.NotContains(t, tags, "proton")
}

func TestTaggerNoMatches(t *testing.T) {
	tagger := NewTagger(testVocabulary)

	tags := tagger.Match("Superconductivity in thin films", "We report transport measurements.")
	assert.Empty(t, tags)
}

func TestTaggerPluralTolerance(t *testing.T) {
	tagger := NewTagger(testVocabulary)

	tags := tagger.Match("Pions and kaons in dense matter", "")
	assert.Contains(t, tags, "pion")
	assert.Contains(t, tags, "kaon")
}

func TestTaggerWholeWordOnly(t *testing.T) {
	tagger := NewTagger(testVocabulary)

	// "protonic" must not match "proton".
	tags := tagger.Match("Protonic conduction in oxides", "")
	assert.NotContains(t, tags, "proton")
}

func TestTaggerCaseInsensitive(t *testing.T) {
	tagger := NewTagger(testVocabulary)

	tags := tagger.Match("QCD sum rules", "Drell-Yan production at the LHC")
	assert.Contains(t, tags, "qcd")
	assert.Contains(t, tags, "drell-yan")
}

func TestTaggerMultiWordTerm(t *testing.T) {
	tagger := NewTagger(testVocabulary)

	tags := tagger.Match("Electromagnetic form factors of the nucleon", "")
	assert.Contains(t, tags, "form factor")
}

func TestContainsAny(t *testing.T) {
	terms := []string{"hadron", "QCD", "quark"}

	assert.True(t, ContainsAny("A study of Quark matter", terms))
	assert.True(t, ContainsAny("hadronization effects", terms), "substring match, no word boundary")
	assert.False(t, ContainsAny("Gravitational waves from mergers", terms))
	assert.False(t, ContainsAny("anything", nil))
}
