package benchmark

import (
	"strings"
	"testing"

	"github.com/Adithya-Monish-Kumar-K/searchindex/internal/indexer/collector"
	"github.com/Adithya-Monish-Kumar-K/searchindex/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/searchindex/internal/indexer/language"
)

var sampleTexts = map[string]string{
	"short": "The quick brown fox jumps over the lazy dog",
	"medium": `Distributed search engines process queries across multiple shards to achieve
        horizontal scalability. Each shard maintains its own inverted index and responds
        to queries independently. Results are merged using a global ranking algorithm
        that accounts for term frequency and inverse document frequency across the
        entire corpus. This architecture enables sub-second query latency even with
        billions of documents spread across hundreds of nodes.`,
	"long": strings.Repeat(`Information retrieval systems form the backbone of modern search
        infrastructure. These systems combine tokenization, stemming, and stop word
        removal to normalize text into searchable terms. The inverted index maps each
        term to the documents containing it. `, 20),
}

func BenchmarkSplit(b *testing.B) {
	en := language.English()
	for name, text := range sampleTexts {
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(text)))
			for i := 0; i < b.N; i++ {
				_ = en.Split(text)
			}
		})
	}
}

func BenchmarkStem(b *testing.B) {
	words := language.English().Split(sampleTexts["long"])
	for _, lang := range []language.Ruleset{language.English(), language.Snowball("de"), language.Snowball("fr")} {
		b.Run(lang.Lang(), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = lang.Stem(words[i%len(words)])
			}
		})
	}
}

// BenchmarkStemCache compares cached stemming against the bare stemmer on a
// repetitive vocabulary.
func BenchmarkStemCache(b *testing.B) {
	en := language.English()
	words := en.Split(sampleTexts["long"])
	cache := index.NewStemCache(0)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = cache.Stem(words[i%len(words)], en.Stem)
	}
}

func BenchmarkCollect(b *testing.B) {
	en := language.English()
	tree := page(0).Tree
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = collector.Collect(tree, en)
	}
}
