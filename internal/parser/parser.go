// # internal/parser/parser.go
package parser

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"pypm/internal/model"
)

// Parser turns a file path into a classified ParseResult. It is a pure
// function of file contents, modulo the Parse Cache short-circuit.
type Parser struct {
	loader    *GrammarLoader
	pool      *ParserPool
	cache     *Cache
	extractor pythonExtractor
}

func New(cache *Cache) (*Parser, error) {
	loader, err := NewGrammarLoader()
	if err != nil {
		return nil, err
	}
	return &Parser{
		loader: loader,
		pool:   NewParserPool(loader.Language()),
		cache:  cache,
	}, nil
}

// ParseFile reads, pre-filters, decodes and (if needed) parses path,
// consulting and populating the Parse Cache keyed by FileFingerprint.
func (p *Parser) ParseFile(path model.FilePath) (model.ParseResult, model.Warning, error) {
	fp, err := fingerprint(string(path))
	if err != nil {
		return model.ParseResult{}, model.Warning{}, err
	}

	if p.cache != nil {
		if cached, ok := p.cache.Get(fp); ok {
			return cached, model.Warning{}, nil
		}
	}

	raw, err := os.ReadFile(string(path))
	if err != nil {
		return model.ParseResult{}, model.Warning{
			Kind:    model.WarningPermission,
			Subject: string(path),
			Message: err.Error(),
		}, nil
	}

	// Pre-filter: the overwhelming majority of non-import files never
	// reach the syntax parser.
	if !bytes.Contains(raw, []byte("import")) {
		empty := model.ParseResult{}
		if p.cache != nil {
			p.cache.Put(fp, empty)
		}
		return empty, model.Warning{}, nil
	}

	source, decodeErr := decode(raw)
	if decodeErr != nil {
		return model.ParseResult{}, model.Warning{
			Kind:    model.WarningMalformedInput,
			Subject: string(path),
			Message: "undecodable as UTF-8 or Latin-1",
		}, nil
	}

	if strings.EqualFold(filepath.Ext(string(path)), ".ipynb") {
		var err error
		source, err = concatenateNotebookCells(source)
		if err != nil {
			return model.ParseResult{}, model.Warning{
				Kind:    model.WarningMalformedInput,
				Subject: string(path),
				Message: "malformed notebook JSON: " + err.Error(),
			}, nil
		}
	}

	result, warn, err := p.extract(source, string(path))
	if err != nil {
		return model.ParseResult{}, warn, nil
	}

	if p.cache != nil {
		p.cache.Put(fp, result)
	}
	return result, warn, nil
}

func (p *Parser) extract(source []byte, path string) (model.ParseResult, model.Warning, error) {
	sp := p.pool.Get()
	defer p.pool.Put(sp)

	tree := sp.Parse(source, nil)
	if tree == nil {
		return model.ParseResult{}, model.Warning{
			Kind:    model.WarningMalformedInput,
			Subject: path,
			Message: "syntax tree could not be produced",
		}, nil
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		// A syntax error yields an empty result plus a warning; never fatal.
		return model.ParseResult{}, model.Warning{
			Kind:    model.WarningMalformedInput,
			Subject: path,
			Message: "syntax error",
		}, nil
	}

	return p.extractor.Extract(root, source), model.Warning{}, nil
}

// decode tries UTF-8 first, then falls back to a byte-for-byte Latin-1
// (ISO-8859-1) reinterpretation.
func decode(raw []byte) ([]byte, error) {
	if utf8.Valid(raw) {
		return raw, nil
	}
	runes := make([]rune, len(raw))
	for i, b := range raw {
		runes[i] = rune(b)
	}
	return []byte(string(runes)), nil
}

// fingerprint stats path and builds its FileFingerprint cache key.
func fingerprint(path string) (model.FileFingerprint, error) {
	info, err := os.Stat(path)
	if err != nil {
		return model.FileFingerprint{}, err
	}
	return model.FileFingerprint{
		Path:         path,
		SizeBytes:    info.Size(),
		ModTimeNanos: info.ModTime().UnixNano(),
	}, nil
}
