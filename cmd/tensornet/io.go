package main

import (
	"fmt"
	"io"
	"os"

	"github.com/born-ml/tensornet/internal/codec"
	"github.com/born-ml/tensornet/internal/tensor"
)

// readTensor decodes a tensor document from path, or stdin when path is "-".
func readTensor(path string) (*tensor.RawTensor, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	doc, err := codec.Decode[codec.Document](r)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return doc.Tensor()
}

// writeTensors writes named results as a JSON object to path, or stdout
// when path is empty.
func writeTensors(path string, tensors map[string]*tensor.RawTensor) error {
	docs := make(map[string]codec.Document, len(tensors))
	for name, t := range tensors {
		docs[name] = codec.FromTensor(t)
	}
	if path == "" {
		return codec.Write(os.Stdout, docs)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := codec.Write(f, docs); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
