package search

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/simple"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/mapping"
)

// buildIndexMapping creates the mapping for listing documents.
//
// Names and addresses use the simple analyzer: listing names are mostly
// Italian, and English stemming mangles them. Descriptions are English
// prose and get stemming. City, category and slug are keywords for exact
// filtering and faceting.
func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = simple.Name

	doc := bleve.NewDocumentMapping()

	name := bleve.NewTextFieldMapping()
	name.Analyzer = simple.Name
	name.Store = true
	name.IncludeTermVectors = true
	doc.AddFieldMappingsAt("name", name)

	address := bleve.NewTextFieldMapping()
	address.Analyzer = simple.Name
	address.Store = true
	doc.AddFieldMappingsAt("address", address)

	short := bleve.NewTextFieldMapping()
	short.Analyzer = en.AnalyzerName
	short.Store = true
	doc.AddFieldMappingsAt("short", short)

	for _, field := range []string{"id", "city", "category", "slug"} {
		kw := bleve.NewTextFieldMapping()
		kw.Analyzer = keyword.Name
		kw.Store = true
		doc.AddFieldMappingsAt(field, kw)
	}

	// Returned with hits, never searched.
	for _, field := range []string{"image", "link"} {
		stored := bleve.NewTextFieldMapping()
		stored.Index = false
		stored.Store = true
		doc.AddFieldMappingsAt(field, stored)
	}

	indexMapping.AddDocumentMapping("_default", doc)
	return indexMapping
}
