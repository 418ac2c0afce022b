package proof

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/piprate/json-gold/ld"
)

// Canonicalization algorithms. CanonicalJSON is the default: the content
// is rendered as compact UTF-8 JSON with object keys in lexicographic
// order. URDNA2015 normalizes the content as an RDF dataset and requires a
// document loader able to resolve the credential's JSON-LD contexts.
const (
	AlgorithmCanonicalJSON = "CanonicalJSON"
	AlgorithmURDNA2015     = ld.AlgorithmURDNA2015
)

// ProcessorOpt configures canonicalization.
type ProcessorOpt func(*ProcessorOptions)

// ProcessorOptions holds canonicalization configuration.
type ProcessorOptions struct {
	algorithm      string
	documentLoader ld.DocumentLoader
}

// WithAlgorithm selects the canonicalization algorithm.
func WithAlgorithm(algorithm string) ProcessorOpt {
	return func(o *ProcessorOptions) {
		o.algorithm = algorithm
	}
}

// WithDocumentLoader sets the JSON-LD document loader used by URDNA2015.
func WithDocumentLoader(loader ld.DocumentLoader) ProcessorOpt {
	return func(o *ProcessorOptions) {
		o.documentLoader = loader
	}
}

// Canonicalize produces the deterministic byte form of a credential's
// content with the proof field excluded. Signing and verification both go
// through this routine; two contents that are logically equal canonicalize
// to identical bytes and any field change alters the output.
func Canonicalize(content map[string]interface{}, opts ...ProcessorOpt) ([]byte, error) {
	options := ProcessorOptions{algorithm: AlgorithmCanonicalJSON}
	for _, opt := range opts {
		opt(&options)
	}

	doc, err := normalizeContent(content)
	if err != nil {
		return nil, err
	}
	delete(doc, "proof")

	switch options.algorithm {
	case AlgorithmCanonicalJSON:
		return marshalCanonicalJSON(doc)
	case AlgorithmURDNA2015:
		return normalizeRDF(doc, options.documentLoader)
	default:
		return nil, fmt.Errorf("unknown canonicalization algorithm %q", options.algorithm)
	}
}

// normalizeContent round-trips the content through JSON so typed values
// (Proof structs, time values, typed models) collapse to the same plain
// map form the verifier sees after parsing a credential off the wire.
func normalizeContent(content map[string]interface{}) (map[string]interface{}, error) {
	encoded, err := json.Marshal(content)
	if err != nil {
		return nil, fmt.Errorf("marshal content: %w", err)
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(encoded, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal content: %w", err)
	}
	return doc, nil
}

// marshalCanonicalJSON renders the document as compact JSON. The encoder
// writes object keys in sorted order, which makes the output independent of
// in-memory field order.
func marshalCanonicalJSON(doc map[string]interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode canonical JSON: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func normalizeRDF(doc map[string]interface{}, loader ld.DocumentLoader) ([]byte, error) {
	processor := ld.NewJsonLdProcessor()
	options := ld.NewJsonLdOptions("")
	options.Format = "application/n-quads"
	options.Algorithm = ld.AlgorithmURDNA2015
	if loader != nil {
		options.DocumentLoader = loader
	}

	normalized, err := processor.Normalize(doc, options)
	if err != nil {
		return nil, fmt.Errorf("normalize document: %w", err)
	}
	return []byte(normalized.(string)), nil
}
