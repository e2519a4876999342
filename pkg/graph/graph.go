package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/lineagemap/pkg/dag"
)

// =============================================================================
// Graph Serialization API
// =============================================================================

// MarshalGraph converts an indexed family graph to JSON bytes.
// Nodes and edges keep graph insertion order for deterministic output.
func MarshalGraph(g *dag.DAG) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeGraphTo(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteGraphFile writes an indexed family graph to a JSON file.
// The file is created with 0644 permissions.
func WriteGraphFile(g *dag.DAG, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeGraphTo(g, f)
}

// WriteGraph writes an indexed family graph as JSON to an io.Writer.
func WriteGraph(g *dag.DAG, w io.Writer) error {
	return writeGraphTo(g, w)
}

// UnmarshalGraph decodes JSON bytes into a Graph.
func UnmarshalGraph(data []byte) (Graph, error) {
	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return Graph{}, fmt.Errorf("decode: %w", err)
	}
	return g, nil
}

func writeGraphTo(g *dag.DAG, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FromDAG(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
