package zxml_test

import (
	"bytes"
	"encoding/xml"
	"io"
	"strings"
	"testing"

	"github.com/outerhaven/zxml"
)

// buildBenchmarkDoc synthesizes a document shaped like the teacher's
// SwissProt fixture (deeply repetitive nested elements, attributes, and
// character data) without depending on an external .xml.gz asset.
func buildBenchmarkDoc(records int) []byte {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	b.WriteString(`<root>`)
	for i := 0; i < records; i++ {
		b.WriteString(`<entry id="e" kind="protein"><name>Example Protein</name><seq>MKTAYIAKQRQISFVKSHFSRQLEERLGLIEVQAPILSRVGDGTQDNLSGAEKAVQVKVKALPDAQFEVVHSLAKWKRQTLGQHDFSAGEGLYTHMKALRPDEDRLSPLHSVYVDQWDWELVMGDGDRQFSTLKSTVEAIWAGIKATEAAVSEEFGLAPFLPDQIHFVHSQELLSRYPDLDAKGRERAIAKDLGAVFLVGIGGKLSDGHRHDVRAPDYDDWSTPSELGHAGLNGDILVWNPVLEDAFELSSMGIRVDADTLKHQLALTGDEDRLELEWHQALLRGEMPQTIGGGIGQSRLTMLLLQLPHIGQVQAGVWPAAVRESVPSLL</seq></entry>`)
	}
	b.WriteString(`</root>`)
	return []byte(b.String())
}

func BenchmarkStdlibDecoder(b *testing.B) {
	data := buildBenchmarkDoc(200)
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		d := xml.NewDecoder(bytes.NewReader(data))
		for {
			_, err := d.RawToken()
			if err == io.EOF {
				break
			} else if err != nil {
				b.Fatalf("unexpected error: %v", err)
			}
		}
	}
}

func BenchmarkZXMLParser(b *testing.B) {
	data := buildBenchmarkDoc(200)
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		p := zxml.New(data)
		for {
			_, ok, err := p.Next()
			if err != nil {
				b.Fatalf("unexpected error: %v", err)
			}
			if !ok {
				break
			}
		}
	}
}
